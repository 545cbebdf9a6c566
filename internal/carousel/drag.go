package carousel

import "github.com/pders01/showreel/internal/debuglog"

// PointerCapture routes pointer events to the track while a drag is in
// progress, even when the pointer leaves its bounds.
type PointerCapture interface {
	Capture(pointerID int) error
	Release(pointerID int) error
}

type noCapture struct{}

func (noCapture) Capture(int) error { return nil }
func (noCapture) Release(int) error { return nil }

// Drag converts pointer down/move/up into scroll offsets. The offset follows
// the pointer 1:1 scaled by sensitivity; there is no inertia.
type Drag struct {
	capture     PointerCapture
	sensitivity float64

	dragging   bool
	pointerID  int
	startX     float64
	baseOffset float64
}

// NewDrag returns a drag controller. A nil capture disables capture calls and
// a non-positive sensitivity falls back to 1.
func NewDrag(capture PointerCapture, sensitivity float64) *Drag {
	if capture == nil {
		capture = noCapture{}
	}
	if sensitivity <= 0 {
		sensitivity = 1
	}
	return &Drag{capture: capture, sensitivity: sensitivity}
}

// Dragging reports whether a pointer is captured. Only used for cursor styling.
func (d *Drag) Dragging() bool { return d.dragging }

// Down starts a drag from screen position x with the track at currentOffset.
func (d *Drag) Down(pointerID int, x, currentOffset float64) {
	if err := d.capture.Capture(pointerID); err != nil {
		debuglog.Debugf("pointer capture %d: %v", pointerID, err)
	}
	d.dragging = true
	d.pointerID = pointerID
	d.startX = x
	d.baseOffset = currentOffset
}

// Move returns the offset for pointer position x. ok is false when no drag is
// in progress or the event belongs to another pointer.
func (d *Drag) Move(pointerID int, x float64) (offset float64, ok bool) {
	if !d.dragging || pointerID != d.pointerID {
		return 0, false
	}
	return d.baseOffset + (d.startX-x)*d.sensitivity, true
}

// Up ends the drag. Releasing an already released pointer is not an error.
func (d *Drag) Up(pointerID int) {
	if !d.dragging || pointerID != d.pointerID {
		return
	}
	d.dragging = false
	if err := d.capture.Release(pointerID); err != nil {
		debuglog.Debugf("pointer release %d ignored: %v", pointerID, err)
	}
}

// Leave behaves like Up.
func (d *Drag) Leave(pointerID int) { d.Up(pointerID) }

// Rebase shifts the captured base offset by delta. The normalizer calls it
// when it jumps the track mid-drag so the next move keeps the jump.
func (d *Drag) Rebase(delta float64) {
	if d.dragging {
		d.baseOffset += delta
	}
}
