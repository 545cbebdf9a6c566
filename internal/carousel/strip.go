package carousel

// StripOptions tunes a Strip. Zero values pick the reference behavior.
type StripOptions struct {
	Repetitions int
	Sensitivity float64
	Mode        WrapMode
	Capture     PointerCapture
}

// Strip is the draggable infinite track: a Track, its scroll offset, a Drag
// controller and a Normalizer applied at most once per frame.
type Strip struct {
	track *Track
	drag  *Drag
	norm  *Normalizer

	offset  float64
	seeded  bool
	pending bool
}

func NewStrip(catalogLen int, itemWidth float64, opts StripOptions) (*Strip, error) {
	reps := opts.Repetitions
	if reps == 0 {
		reps = MinRepetitions
	}
	track, err := NewTrack(catalogLen, reps, itemWidth)
	if err != nil {
		return nil, err
	}
	return &Strip{
		track: track,
		drag:  NewDrag(opts.Capture, opts.Sensitivity),
		norm:  NewNormalizer(track.Span(), opts.Mode),
	}, nil
}

func (s *Strip) Track() *Track { return s.track }
func (s *Strip) Offset() float64 { return s.offset }
func (s *Strip) Dragging() bool { return s.drag.Dragging() }
func (s *Strip) Seeded() bool { return s.seeded }
func (s *Strip) FramePending() bool { return s.pending }

// Seed centers the strip on the start of the middle repetition.
func (s *Strip) Seed() {
	s.offset = s.track.Span()
	s.seeded = true
	s.pending = false
}

// Layout applies a new item width. The first call seeds the offset; later
// calls rescale it so the same item stays under the viewport edge.
func (s *Strip) Layout(itemWidth float64) error {
	old := s.track.ItemWidth()
	if err := s.track.SetItemWidth(itemWidth); err != nil {
		return err
	}
	s.norm.SetSpan(s.track.Span())
	if !s.seeded {
		s.Seed()
		return nil
	}
	if old != itemWidth {
		s.setOffset(s.offset / old * itemWidth)
	}
	return nil
}

func (s *Strip) PointerDown(pointerID int, x float64) {
	if !s.seeded {
		s.Seed()
	}
	s.drag.Down(pointerID, x, s.offset)
}

// PointerMove reports whether the offset changed.
func (s *Strip) PointerMove(pointerID int, x float64) bool {
	off, ok := s.drag.Move(pointerID, x)
	if !ok {
		return false
	}
	s.setOffset(off)
	return true
}

func (s *Strip) PointerUp(pointerID int) { s.drag.Up(pointerID) }
func (s *Strip) PointerLeave(pointerID int) { s.drag.Leave(pointerID) }

// ScrollBy applies a natural scroll (wheel, keys or auto-advance).
func (s *Strip) ScrollBy(delta float64) {
	if !s.seeded {
		s.Seed()
	}
	s.setOffset(s.offset + delta)
}

// CenterOn scrolls so catalog item idx sits in the middle of the viewport.
func (s *Strip) CenterOn(idx int, viewport float64) {
	if !s.seeded {
		s.Seed()
	}
	s.setOffset(s.track.OffsetOf(idx) - (viewport-s.track.ItemWidth())/2)
}

func (s *Strip) setOffset(off float64) {
	if off == s.offset {
		return
	}
	s.offset = off
	s.pending = true
}

// Frame runs the coalesced normalization and reports whether it jumped.
func (s *Strip) Frame() bool {
	s.pending = false
	n := s.norm.Normalize(s.offset)
	if n == s.offset {
		return false
	}
	s.drag.Rebase(n - s.offset)
	s.offset = n
	return true
}

// Visible lists the cells to render for a viewport of the given width.
func (s *Strip) Visible(viewport float64) []Occurrence {
	return s.track.Occurrences(s.offset, viewport)
}
