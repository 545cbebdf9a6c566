package carousel

import (
	"context"
	"errors"
	"time"

	"github.com/pders01/showreel/internal/debuglog"
)

// ErrStopped is returned by Send after the driver shut down.
var ErrStopped = errors.New("driver stopped")

// DriverConfig holds the timings a Driver schedules.
type DriverConfig struct {
	ShuffleInterval  time.Duration
	FrameInterval    time.Duration
	ExpandDuration   time.Duration
	CollapseDuration time.Duration
	// AutoAdvance moves the strip this many offset units every frame while
	// it is not being dragged. Zero disables it.
	AutoAdvance float64
	Autoplay    *Autoplay
}

// DefaultDriverConfig mirrors the reference timings.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{
		ShuffleInterval:  5 * time.Second,
		FrameInterval:    16 * time.Millisecond,
		ExpandDuration:   700 * time.Millisecond,
		CollapseDuration: 700 * time.Millisecond,
	}
}

type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

// PointerEvent is a pointer event on the strip, X in screen units.
type PointerEvent struct {
	Kind PointerKind
	ID   int
	X    float64
}

// ClickEvent is a click on a showcase slot.
type ClickEvent struct{ Slot int }

// ScrollEvent is a natural scroll of the strip.
type ScrollEvent struct{ Delta float64 }

// Snapshot is the derived state emitted after every mutation.
type Snapshot struct {
	Seq       uint64       `json:"seq"`
	Reason    string       `json:"reason"`
	Offset    float64      `json:"offset"`
	Dragging  bool         `json:"dragging"`
	Order     []int        `json:"order,omitempty"`
	Active    int          `json:"active"`
	Expansion string       `json:"expansion,omitempty"`
	Visuals   []SlotVisual `json:"visuals,omitempty"`
	Pulse     *Pulse       `json:"pulse,omitempty"`
}

// Driver hosts a Strip and/or a Showcase on a single goroutine. Input
// events, the shuffle timer, frame callbacks and transition completions are
// all serialized through its loop, and every timer is released on Close.
type Driver struct {
	strip *Strip
	show  *Showcase
	cfg   DriverConfig
	emit  func(Snapshot)

	events chan any
	done   chan struct{}
	cancel context.CancelFunc
	seq    uint64
}

// NewDriver wires a driver. strip or show may be nil; emit receives
// snapshots on the driver goroutine and must not block for long.
func NewDriver(strip *Strip, show *Showcase, cfg DriverConfig, emit func(Snapshot)) *Driver {
	def := DefaultDriverConfig()
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.ExpandDuration <= 0 {
		cfg.ExpandDuration = def.ExpandDuration
	}
	if cfg.CollapseDuration <= 0 {
		cfg.CollapseDuration = def.CollapseDuration
	}
	if emit == nil {
		emit = func(Snapshot) {}
	}
	return &Driver{
		strip:  strip,
		show:   show,
		cfg:    cfg,
		emit:   emit,
		events: make(chan any),
		done:   make(chan struct{}),
	}
}

// Start launches the loop. It stops when ctx is cancelled or Close is called.
func (d *Driver) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	go d.run(ctx)
}

// Send delivers an input event to the loop.
func (d *Driver) Send(ctx context.Context, ev any) error {
	select {
	case d.events <- ev:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop and waits until every timer is released.
func (d *Driver) Close() {
	if d.cancel != nil {
		d.cancel()
		<-d.done
	}
}

// Done is closed when the loop has exited.
func (d *Driver) Done() <-chan struct{} { return d.done }

func (d *Driver) run(ctx context.Context) {
	defer close(d.done)

	var (
		shuffleC   <-chan time.Time
		advanceC   <-chan time.Time
		frameTimer *time.Timer
		frameC     <-chan time.Time
		transTimer *time.Timer
		transC     <-chan time.Time
		transID    uint64
	)
	if d.show != nil && d.cfg.ShuffleInterval > 0 {
		t := time.NewTicker(d.cfg.ShuffleInterval)
		defer t.Stop()
		shuffleC = t.C
	}
	if d.strip != nil && d.cfg.AutoAdvance != 0 {
		t := time.NewTicker(d.cfg.FrameInterval)
		defer t.Stop()
		advanceC = t.C
	}
	defer func() {
		if frameTimer != nil {
			frameTimer.Stop()
		}
		if transTimer != nil {
			transTimer.Stop()
		}
	}()

	scheduleFrame := func() {
		if d.strip == nil || !d.strip.FramePending() || frameC != nil {
			return
		}
		frameTimer = time.NewTimer(d.cfg.FrameInterval)
		frameC = frameTimer.C
	}
	scheduleTransition := func(t Transition) {
		dur := d.cfg.ExpandDuration
		if t.Phase == Collapsing {
			dur = d.cfg.CollapseDuration
		}
		if transTimer != nil {
			transTimer.Stop()
		}
		transTimer = time.NewTimer(dur)
		transC = transTimer.C
		transID = t.ID
	}

	if d.strip != nil && !d.strip.Seeded() {
		d.strip.Seed()
	}
	d.publish("start", nil)

	for {
		select {
		case <-ctx.Done():
			debuglog.Debugf("driver stopped: %v", ctx.Err())
			return

		case <-shuffleC:
			if pulse, ok := d.show.Tick(); ok {
				d.publish("shuffle", &pulse)
			}

		case <-advanceC:
			if !d.strip.Dragging() {
				d.strip.ScrollBy(d.cfg.AutoAdvance)
				scheduleFrame()
				d.publish("advance", nil)
			}

		case <-frameC:
			frameC = nil
			if d.strip.Frame() {
				d.publish("wrap", nil)
			}

		case <-transC:
			transC = nil
			next, ok := d.show.Complete(transID)
			if !ok {
				continue
			}
			if next != nil {
				scheduleTransition(*next)
			}
			d.publish("transition", nil)

		case ev := <-d.events:
			reason, changed := d.apply(ev, scheduleTransition)
			scheduleFrame()
			if changed {
				d.publish(reason, nil)
			}
		}
	}
}

func (d *Driver) apply(ev any, onTransition func(Transition)) (string, bool) {
	switch e := ev.(type) {
	case PointerEvent:
		if d.strip == nil {
			return "", false
		}
		switch e.Kind {
		case PointerDown:
			d.interact()
			d.strip.PointerDown(e.ID, e.X)
			return "drag-start", true
		case PointerMove:
			return "drag", d.strip.PointerMove(e.ID, e.X)
		case PointerUp:
			d.strip.PointerUp(e.ID)
			return "drag-end", true
		case PointerLeave:
			d.strip.PointerLeave(e.ID)
			return "drag-end", true
		}
	case ScrollEvent:
		if d.strip == nil {
			return "", false
		}
		d.strip.ScrollBy(e.Delta)
		return "scroll", true
	case ClickEvent:
		if d.show == nil {
			return "", false
		}
		d.interact()
		t, ok := d.show.Click(e.Slot)
		if !ok {
			return "", false
		}
		onTransition(t)
		return "click", true
	default:
		debuglog.Warnf("driver: unknown event %T", ev)
	}
	return "", false
}

func (d *Driver) interact() {
	if d.cfg.Autoplay != nil {
		d.cfg.Autoplay.Interact()
	}
}

func (d *Driver) publish(reason string, pulse *Pulse) {
	d.seq++
	snap := Snapshot{Seq: d.seq, Reason: reason, Active: -1, Pulse: pulse}
	if d.strip != nil {
		snap.Offset = d.strip.Offset()
		snap.Dragging = d.strip.Dragging()
	}
	if d.show != nil {
		snap.Order = d.show.Order()
		snap.Active = d.show.Active()
		snap.Expansion = d.show.Expansion().String()
		snap.Visuals = d.show.Visuals()
	}
	d.emit(snap)
}
