package carousel

import "fmt"

// Phase is the coarse state of the expand/collapse machine.
type Phase int

const (
	Collapsed Phase = iota
	Expanding
	Expanded
	Collapsing
)

func (p Phase) String() string {
	switch p {
	case Collapsed:
		return "collapsed"
	case Expanding:
		return "expanding"
	case Expanded:
		return "expanded"
	case Collapsing:
		return "collapsing"
	default:
		return "unknown"
	}
}

// ExpansionState is the phase plus the slot it applies to. Slot is -1 when
// collapsed.
type ExpansionState struct {
	Phase Phase
	Slot  int
}

func (s ExpansionState) String() string {
	if s.Phase == Collapsed {
		return s.Phase.String()
	}
	return fmt.Sprintf("%s(%d)", s.Phase, s.Slot)
}

// InFlight reports whether a visual transition is running.
func (s ExpansionState) InFlight() bool {
	return s.Phase == Expanding || s.Phase == Collapsing
}

// Transition identifies one running expand or collapse animation. The
// renderer hands ID back to Complete when the animation ends.
type Transition struct {
	ID    uint64
	Phase Phase
	Slot  int
}

// Expander owns the ExpansionState. Clicks are accepted only while
// Collapsed or Expanded; clicks during a transition are dropped.
type Expander struct {
	state   ExpansionState
	seq     uint64
	current uint64
	queued  int
}

func NewExpander() *Expander {
	return &Expander{state: ExpansionState{Phase: Collapsed, Slot: -1}, queued: -1}
}

func (e *Expander) State() ExpansionState { return e.state }

// Suppressed reports whether shuffling must pause.
func (e *Expander) Suppressed() bool { return e.state.Phase != Collapsed }

// Click handles a click on slot. Clicking another slot while one is
// expanded collapses the open slot and expands the clicked one afterwards.
func (e *Expander) Click(slot int) (Transition, bool) {
	switch e.state.Phase {
	case Collapsed:
		return e.begin(Expanding, slot), true
	case Expanded:
		if slot != e.state.Slot {
			e.queued = slot
		}
		return e.begin(Collapsing, e.state.Slot), true
	default:
		return Transition{}, false
	}
}

// Complete finishes the transition with the given id. A stale id is ignored.
// When a queued expansion exists it starts immediately and is returned.
func (e *Expander) Complete(id uint64) (next *Transition, ok bool) {
	if id == 0 || id != e.current || !e.state.InFlight() {
		return nil, false
	}
	e.current = 0
	switch e.state.Phase {
	case Expanding:
		e.state.Phase = Expanded
	case Collapsing:
		e.state = ExpansionState{Phase: Collapsed, Slot: -1}
		if e.queued >= 0 {
			slot := e.queued
			e.queued = -1
			t := e.begin(Expanding, slot)
			return &t, true
		}
	}
	return nil, true
}

func (e *Expander) begin(phase Phase, slot int) Transition {
	e.seq++
	e.current = e.seq
	e.state = ExpansionState{Phase: phase, Slot: slot}
	return Transition{ID: e.seq, Phase: phase, Slot: slot}
}
