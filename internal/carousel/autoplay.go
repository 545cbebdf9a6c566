package carousel

import (
	"errors"
	"sort"

	"github.com/pders01/showreel/internal/debuglog"
)

// ErrAutoplayBlocked is returned by players whose host refuses to start
// playback without a prior user interaction.
var ErrAutoplayBlocked = errors.New("autoplay blocked")

// Player starts looping playback for a slot.
type Player interface {
	Play(slot int) error
}

// Autoplay starts every slot and remembers the ones the host rejected. The
// rejected ones are retried on the next user interaction, never surfaced.
type Autoplay struct {
	player  Player
	pending map[int]struct{}
}

func NewAutoplay(player Player) *Autoplay {
	return &Autoplay{player: player, pending: make(map[int]struct{})}
}

// Start tries to play each slot and returns how many started.
func (a *Autoplay) Start(slots ...int) int {
	started := 0
	for _, slot := range slots {
		if a.try(slot) {
			started++
		}
	}
	return started
}

// Interact retries every rejected slot. Call it on click or key press.
func (a *Autoplay) Interact() int {
	if len(a.pending) == 0 {
		return 0
	}
	started := 0
	for _, slot := range a.Pending() {
		if a.try(slot) {
			started++
		}
	}
	return started
}

// Pending lists the slots waiting for an interaction, in slot order.
func (a *Autoplay) Pending() []int {
	out := make([]int, 0, len(a.pending))
	for slot := range a.pending {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}

func (a *Autoplay) try(slot int) bool {
	if err := a.player.Play(slot); err != nil {
		debuglog.Debugf("autoplay slot %d deferred: %v", slot, err)
		a.pending[slot] = struct{}{}
		return false
	}
	delete(a.pending, slot)
	return true
}
