package carousel

import "time"

// Rank is a slot's depth in the focus order.
type Rank int

const (
	RankBack Rank = iota
	RankMiddle
	RankFront
)

func (r Rank) String() string {
	switch r {
	case RankFront:
		return "front"
	case RankMiddle:
		return "middle"
	default:
		return "back"
	}
}

// RankOf maps a position in a focus order of length n to its rank. The last
// position is the active slot.
func RankOf(position, n int) Rank {
	switch {
	case position == n-1:
		return RankFront
	case position == n-2:
		return RankMiddle
	default:
		return RankBack
	}
}

// SlotVisual is what the rendering layer needs to draw one slot.
type SlotVisual struct {
	Slot     int     `json:"slot"`
	Rank     Rank    `json:"rank"`
	Scale    float64 `json:"scale"`
	Offset   float64 `json:"offset"`
	Opacity  float64 `json:"opacity"`
	Stack    int     `json:"stack"`
	Expanded bool    `json:"expanded,omitempty"`
}

var rankVisuals = [...]SlotVisual{
	RankBack:   {Rank: RankBack, Scale: 0.9, Offset: 3, Opacity: 1, Stack: 0},
	RankMiddle: {Rank: RankMiddle, Scale: 0.95, Offset: 6, Opacity: 1, Stack: 10},
	RankFront:  {Rank: RankFront, Scale: 1.02, Offset: 10, Opacity: 1, Stack: 20},
}

// ExpandedStack puts the expanded slot above every ranked slot.
const ExpandedStack = 30

// Visuals derives per-slot visuals from the focus order and expansion
// state. The result is indexed by slot.
func Visuals(order []int, st ExpansionState) []SlotVisual {
	out := make([]SlotVisual, len(order))
	for pos, slot := range order {
		v := rankVisuals[RankOf(pos, len(order))]
		v.Slot = slot
		if st.Phase != Collapsed {
			if slot == st.Slot {
				v.Scale, v.Offset, v.Stack, v.Expanded = 1, 0, ExpandedStack, true
			} else {
				v.Opacity = 0
			}
		}
		out[slot] = v
	}
	return out
}

// Pulse is the transient entrance effect for a newly active slot.
type Pulse struct {
	Slot     int           `json:"slot"`
	From     float64       `json:"from"`
	To       float64       `json:"to"`
	Duration time.Duration `json:"duration"`
}

// ScaleAt interpolates the pulse scale after elapsed time (ease-out quad).
func (p Pulse) ScaleAt(elapsed time.Duration) float64 {
	if p.Duration <= 0 || elapsed >= p.Duration {
		return p.To
	}
	if elapsed <= 0 {
		return p.From
	}
	t := float64(elapsed) / float64(p.Duration)
	t = 1 - (1-t)*(1-t)
	return p.From + (p.To-p.From)*t
}
