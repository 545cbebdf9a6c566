package carousel

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// DefaultPulse is the entrance effect length for a newly active slot.
const DefaultPulse = 600 * time.Millisecond

// Showcase rotates a small set of slots and lets one be expanded. It owns
// FocusOrder and, through its Expander, the ExpansionState.
type Showcase struct {
	order    []int
	active   int
	rng      *rand.Rand
	expander *Expander
	pulse    time.Duration
	lowEnd   bool
}

type ShowcaseOption func(*Showcase)

// WithRand injects the random source used for shuffling.
func WithRand(r *rand.Rand) ShowcaseOption {
	return func(s *Showcase) { s.rng = r }
}

// WithPulse sets the entrance pulse duration.
func WithPulse(d time.Duration) ShowcaseOption {
	return func(s *Showcase) { s.pulse = d }
}

// WithLowEnd drops the entrance pulse on constrained devices.
func WithLowEnd(lowEnd bool) ShowcaseOption {
	return func(s *Showcase) { s.lowEnd = lowEnd }
}

func NewShowcase(slots int, opts ...ShowcaseOption) (*Showcase, error) {
	if slots < 1 {
		return nil, fmt.Errorf("showcase needs at least one slot, got %d", slots)
	}
	s := &Showcase{
		order:    make([]int, slots),
		expander: NewExpander(),
		pulse:    DefaultPulse,
	}
	for i := range s.order {
		s.order[i] = i
	}
	s.active = s.order[slots-1]
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(0)
	}
	return s, nil
}

func (s *Showcase) Slots() int { return len(s.order) }
func (s *Showcase) Active() int { return s.active }
func (s *Showcase) Expansion() ExpansionState { return s.expander.State() }

// Order returns a copy of the focus order; the last element is active.
func (s *Showcase) Order() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Tick runs one shuffle step. It does nothing while a slot is expanded or a
// transition is running. ok is false when the tick was skipped; the pulse is
// zero-valued on low-end devices.
func (s *Showcase) Tick() (pulse Pulse, ok bool) {
	if s.expander.Suppressed() {
		return Pulse{}, false
	}
	s.order = Shuffle(s.order, s.rng)
	s.active = s.order[len(s.order)-1]
	if s.lowEnd || s.pulse <= 0 {
		return Pulse{Slot: s.active, From: 1, To: 1}, true
	}
	return Pulse{Slot: s.active, From: 0.5, To: 1, Duration: s.pulse}, true
}

// Click forwards a click on slot to the expand/collapse machine.
func (s *Showcase) Click(slot int) (Transition, bool) {
	if slot < 0 || slot >= len(s.order) {
		return Transition{}, false
	}
	return s.expander.Click(slot)
}

// Complete reports a finished transition.
func (s *Showcase) Complete(id uint64) (*Transition, bool) {
	return s.expander.Complete(id)
}

// Visuals returns the per-slot visual tuple, indexed by slot.
func (s *Showcase) Visuals() []SlotVisual {
	return Visuals(s.order, s.expander.State())
}
