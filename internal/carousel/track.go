package carousel

import (
	"fmt"
	"math"
)

// MinRepetitions is the smallest repetition count that lets the visible
// window shift one catalog length in either direction without exposing an edge.
const MinRepetitions = 3

// Track is a catalog of items repeated end to end to fake an infinite strip.
type Track struct {
	catalogLen  int
	repetitions int
	itemWidth   float64
}

// NewTrack builds a track of catalogLen items repeated repetitions times,
// each occupying itemWidth offset units (card plus gap).
func NewTrack(catalogLen, repetitions int, itemWidth float64) (*Track, error) {
	if catalogLen < 1 {
		return nil, fmt.Errorf("catalog must hold at least one item, got %d", catalogLen)
	}
	if repetitions < MinRepetitions {
		return nil, fmt.Errorf("track needs at least %d repetitions, got %d", MinRepetitions, repetitions)
	}
	if itemWidth <= 0 || math.IsNaN(itemWidth) || math.IsInf(itemWidth, 0) {
		return nil, fmt.Errorf("item width must be positive, got %v", itemWidth)
	}
	return &Track{catalogLen: catalogLen, repetitions: repetitions, itemWidth: itemWidth}, nil
}

func (t *Track) CatalogLen() int { return t.catalogLen }
func (t *Track) Repetitions() int { return t.repetitions }
func (t *Track) ItemWidth() float64 { return t.itemWidth }
func (t *Track) Len() int { return t.catalogLen * t.repetitions }
func (t *Track) Span() float64 { return float64(t.catalogLen) * t.itemWidth }
func (t *Track) TotalWidth() float64 { return float64(t.Len()) * t.itemWidth }

// ItemAt maps a track position onto its catalog index.
func (t *Track) ItemAt(position int) int {
	i := position % t.catalogLen
	if i < 0 {
		i += t.catalogLen
	}
	return i
}

// SetItemWidth changes the per-item width, e.g. after a viewport resize.
func (t *Track) SetItemWidth(w float64) error {
	if w <= 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		return fmt.Errorf("item width must be positive, got %v", w)
	}
	t.itemWidth = w
	return nil
}

// OffsetOf returns the offset that puts catalog item idx at the left edge of
// the viewport inside the middle repetition.
func (t *Track) OffsetOf(idx int) float64 {
	return t.Span() + float64(t.ItemAt(idx))*t.itemWidth
}

// Occurrence is one rendered cell of the track.
type Occurrence struct {
	Position int     // index into the repeated track
	Item     int     // index into the catalog
	X        float64 // left edge relative to the viewport; may be negative
}

// Occurrences lists the track cells intersecting [offset, offset+viewport).
func (t *Track) Occurrences(offset, viewport float64) []Occurrence {
	if viewport <= 0 {
		return nil
	}
	first := int(math.Floor(offset / t.itemWidth))
	if first < 0 {
		first = 0
	}
	var out []Occurrence
	for p := first; p < t.Len(); p++ {
		x := float64(p)*t.itemWidth - offset
		if x >= viewport {
			break
		}
		if x+t.itemWidth <= 0 {
			continue
		}
		out = append(out, Occurrence{Position: p, Item: t.ItemAt(p), X: x})
	}
	return out
}
