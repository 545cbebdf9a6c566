package carousel

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWrapMode(t *testing.T) {
	m, err := ParseWrapMode("")
	require.NoError(t, err)
	assert.Equal(t, WrapEdges, m)

	m, err = ParseWrapMode(" Middle ")
	require.NoError(t, err)
	assert.Equal(t, WrapMiddle, m)

	_, err = ParseWrapMode("bounce")
	assert.Error(t, err)
}

func TestNormalizeEdges(t *testing.T) {
	n := NewNormalizer(60, WrapEdges)
	tests := []struct {
		in, want float64
	}{
		{60, 60},
		{119, 119},
		{120, 60},
		{130, 70},
		{0, 60},
		{-10, 50},
		{-130, 50},
		{250, 70},
		{1, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Normalize(tt.in), "Normalize(%v)", tt.in)
	}
}

func TestNormalizeMiddleKeepsOffsetInMiddleRepetition(t *testing.T) {
	const span = 60.0
	n := NewNormalizer(span, WrapMiddle)
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		in := (r.Float64() - 0.5) * 10 * span
		got := n.Normalize(in)
		require.GreaterOrEqual(t, got, span, "input %v", in)
		require.LessOrEqual(t, got, 2*span, "input %v", in)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	for _, mode := range []WrapMode{WrapEdges, WrapMiddle} {
		n := NewNormalizer(42, mode)
		for i := 0; i < 2000; i++ {
			once := n.Normalize((r.Float64() - 0.5) * 1000)
			assert.Equal(t, once, n.Normalize(once), "mode %s", mode)
		}
	}
}

func TestNormalizeDegenerateInput(t *testing.T) {
	n := NewNormalizer(60, WrapEdges)
	assert.Equal(t, 60.0, n.Normalize(math.Inf(1)))

	zero := NewNormalizer(0, WrapEdges)
	assert.Equal(t, -5.0, zero.Normalize(-5))
}

func TestNormalizeHugeOffsetsReturnInRange(t *testing.T) {
	const span = 60.0
	inputs := []float64{1e12, -1e12, 1e17, -1e17, 2.0000000000000006e+17, math.MaxFloat64, -math.MaxFloat64}

	edges := NewNormalizer(span, WrapEdges)
	middle := NewNormalizer(span, WrapMiddle)
	for _, in := range inputs {
		got := edges.Normalize(in)
		assert.Greater(t, got, 0.0, "edges Normalize(%g)", in)
		assert.Less(t, got, 2*span, "edges Normalize(%g)", in)
		assert.Equal(t, got, edges.Normalize(got), "edges idempotent at %g", in)

		got = middle.Normalize(in)
		assert.GreaterOrEqual(t, got, span, "middle Normalize(%g)", in)
		assert.LessOrEqual(t, got, 2*span, "middle Normalize(%g)", in)
		assert.Equal(t, got, middle.Normalize(got), "middle idempotent at %g", in)
	}
}

func TestNormalizeMiddleMatchesStepwiseWrap(t *testing.T) {
	n := NewNormalizer(60, WrapMiddle)
	tests := []struct {
		in, want float64
	}{
		{60, 60},
		{120, 120},
		{130, 70},
		{180, 120},
		{0, 60},
		{-60, 60},
		{-10, 110},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Normalize(tt.in), "Normalize(%v)", tt.in)
	}
}
