package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// policyPlayer rejects playback until the host has seen an interaction.
type policyPlayer struct {
	unlocked bool
	playing  map[int]bool
}

func (p *policyPlayer) Play(slot int) error {
	if !p.unlocked {
		return ErrAutoplayBlocked
	}
	if p.playing == nil {
		p.playing = map[int]bool{}
	}
	p.playing[slot] = true
	return nil
}

func TestAutoplayRetriesOnInteraction(t *testing.T) {
	p := &policyPlayer{}
	a := NewAutoplay(p)

	assert.Equal(t, 0, a.Start(0, 1, 2))
	assert.Equal(t, []int{0, 1, 2}, a.Pending())

	assert.Equal(t, 0, a.Interact(), "still blocked")

	p.unlocked = true
	assert.Equal(t, 3, a.Interact())
	assert.Empty(t, a.Pending())
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, p.playing)

	assert.Equal(t, 0, a.Interact(), "nothing left to retry")
}

func TestAutoplayStartsImmediatelyWhenAllowed(t *testing.T) {
	a := NewAutoplay(&policyPlayer{unlocked: true})
	assert.Equal(t, 2, a.Start(0, 1))
	assert.Empty(t, a.Pending())
}
