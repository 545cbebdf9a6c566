package tui

import "github.com/pders01/showreel/internal/carousel"

// previewPlayer loops the inline slot previews. With requireInteraction set it
// behaves like a browser that blocks autoplay until the first gesture.
type previewPlayer struct {
	playing            []bool
	requireInteraction bool
	interacted         bool
}

func newPreviewPlayer(slots int, requireInteraction bool) *previewPlayer {
	return &previewPlayer{playing: make([]bool, slots), requireInteraction: requireInteraction}
}

func (p *previewPlayer) Play(slot int) error {
	if p.requireInteraction && !p.interacted {
		return carousel.ErrAutoplayBlocked
	}
	if slot >= 0 && slot < len(p.playing) {
		p.playing[slot] = true
	}
	return nil
}

func (p *previewPlayer) Playing(slot int) bool {
	return slot >= 0 && slot < len(p.playing) && p.playing[slot]
}
