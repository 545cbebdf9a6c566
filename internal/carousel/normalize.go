package carousel

import (
	"fmt"
	"math"
	"strings"
)

// WrapMode selects where the normalizer re-centers the offset.
type WrapMode int

const (
	// WrapEdges jumps one span back once the offset reaches the third
	// repetition and one span forward once it reaches zero.
	WrapEdges WrapMode = iota
	// WrapMiddle keeps the offset inside the middle repetition [span, 2*span].
	WrapMiddle
)

func (m WrapMode) String() string {
	switch m {
	case WrapEdges:
		return "edges"
	case WrapMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// ParseWrapMode accepts "edges" (or empty) and "middle".
func ParseWrapMode(s string) (WrapMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "edges":
		return WrapEdges, nil
	case "middle":
		return WrapMiddle, nil
	default:
		return WrapEdges, fmt.Errorf("unknown wrap mode %q", s)
	}
}

// Normalizer silently moves an offset by whole spans. Repetitions are
// identical, so the visible content does not change.
type Normalizer struct {
	span float64
	mode WrapMode
}

func NewNormalizer(span float64, mode WrapMode) *Normalizer {
	return &Normalizer{span: span, mode: mode}
}

func (n *Normalizer) SetSpan(span float64) { n.span = span }

// Normalize returns the wrapped offset. Applying it twice is a no-op.
func (n *Normalizer) Normalize(offset float64) float64 {
	if n.span <= 0 {
		return offset
	}
	if math.IsNaN(offset) || math.IsInf(offset, 0) {
		return n.span
	}
	span := n.span
	switch n.mode {
	case WrapMiddle:
		// Result lies in [span, 2*span]; in-range offsets are untouched.
		switch {
		case offset < span:
			r := math.Mod(offset, span)
			if r < 0 {
				r += span
			}
			offset = span + r
		case offset > 2*span:
			r := math.Mod(offset, span)
			if r == 0 {
				r = span
			}
			offset = span + r
		}
		if offset > 2*span {
			offset -= span
		}
	default:
		// Result lies in (0, 2*span).
		switch {
		case offset >= 2*span:
			offset = span + math.Mod(offset, span)
		case offset <= 0:
			offset = span + math.Mod(offset, span)
		}
		if offset >= 2*span {
			offset -= span
		}
		if offset <= 0 {
			offset += span
		}
	}
	return offset
}
