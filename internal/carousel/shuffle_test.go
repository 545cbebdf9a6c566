package carousel

import (
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffleIsBijection(t *testing.T) {
	r := NewRand(42)
	order := []int{0, 1, 2, 3, 4}
	for i := 0; i < 500; i++ {
		next := Shuffle(order, r)
		sorted := append([]int(nil), next...)
		sort.Ints(sorted)
		require.Equal(t, []int{0, 1, 2, 3, 4}, sorted)
		order = next
	}
}

func TestShuffleLeavesInputUntouched(t *testing.T) {
	order := []int{0, 1, 2}
	_ = Shuffle(order, NewRand(1))
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestShuffleIsUniform(t *testing.T) {
	const trials = 60000
	r := NewRand(2024)
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		counts[fmt.Sprint(Shuffle([]int{0, 1, 2}, r))]++
	}
	require.Len(t, counts, 6, "every ordering of three slots must occur")
	for perm, n := range counts {
		assert.InDelta(t, 1.0/6, float64(n)/trials, 0.01, "ordering %s", perm)
	}
}

func TestSeededRandIsReproducible(t *testing.T) {
	a := Shuffle([]int{0, 1, 2, 3, 4, 5}, NewRand(9))
	b := Shuffle([]int{0, 1, 2, 3, 4, 5}, NewRand(9))
	assert.Equal(t, a, b)
}
