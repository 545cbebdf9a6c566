package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/showreel/internal/carousel"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/search"
)

const (
	partnerCardWidth = 18
	partnerGap       = 2
)

type pulseState struct {
	pulse carousel.Pulse
	start time.Time
}

type transitionState struct {
	t     carousel.Transition
	start time.Time
	dur   time.Duration
}

// progress returns how far the transition has run, in [0, 1].
func (ts *transitionState) progress(now time.Time) float64 {
	if ts.dur <= 0 {
		return 1
	}
	p := float64(now.Sub(ts.start)) / float64(ts.dur)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// mount builds the carousels over the current catalog. Every timer scheduled
// under the previous generation is dropped when it fires.
func (a *App) mount() error {
	a.gen++
	a.frameScheduled = false
	a.pulse = nil
	a.trans = nil
	a.dragging = false

	cc := a.config.Carousel
	mode, err := carousel.ParseWrapMode(cc.WrapMode)
	if err != nil {
		return wrapErr("carousel", err)
	}

	services, err := carousel.NewStrip(len(a.catalog.Services), a.serviceItemWidth(), carousel.StripOptions{
		Repetitions: cc.Repetitions,
		Sensitivity: cc.DragSensitivity,
		Mode:        mode,
	})
	if err != nil {
		return wrapErr("services strip", err)
	}
	services.Seed()
	a.services = services

	a.partners = nil
	if len(a.catalog.Partners) > 0 {
		partners, err := carousel.NewStrip(len(a.catalog.Partners), partnerCardWidth+partnerGap, carousel.StripOptions{
			Repetitions: cc.PartnerRepetitions,
			Mode:        mode,
		})
		if err != nil {
			return wrapErr("partner marquee", err)
		}
		partners.Seed()
		a.partners = partners
	}
	// Strips must cover the current width before the first frame draws them.
	a.fitStrips()

	slots := min(a.config.Showcase.Slots, len(a.catalog.Videos))
	show, err := carousel.NewShowcase(slots,
		carousel.WithRand(a.rng),
		carousel.WithPulse(a.config.Showcase.PulseDuration),
		carousel.WithLowEnd(a.lowEnd),
	)
	if err != nil {
		return wrapErr("showcase", err)
	}
	a.showcase = show
	if a.slotCursor >= slots {
		a.slotCursor = slots - 1
	}

	interacted := a.preview != nil && a.preview.interacted
	a.preview = newPreviewPlayer(slots, a.config.Showcase.Autoplay == "interaction")
	a.preview.interacted = interacted
	a.autoplay = carousel.NewAutoplay(a.preview)
	all := make([]int, slots)
	for i := range all {
		all[i] = i
	}
	started := a.autoplay.Start(all...)

	if err := a.searcher.Index(search.Documents(a.catalog)); err != nil {
		debuglog.Warnf("indexing catalog: %v", err)
	}

	debuglog.WithFields(map[string]any{
		"gen":      a.gen,
		"services": len(a.catalog.Services),
		"videos":   slots,
		"partners": len(a.catalog.Partners),
		"playing":  started,
	}).Infof("mounted carousels")
	return nil
}

func (a *App) serviceItemWidth() float64 {
	return float64(a.config.Carousel.CardWidth + a.config.Carousel.Gap)
}

func (a *App) frameInterval() time.Duration {
	if d := a.config.Carousel.FrameInterval; d > 0 {
		return d
	}
	return 16 * time.Millisecond
}

func (a *App) marqueeRunning() bool {
	return a.partners != nil && !a.lowEnd && !a.marqueeHover && !a.marqueePaused &&
		a.config.Carousel.MarqueeSpeed != 0
}

// animating reports whether another frame is needed.
func (a *App) animating() bool {
	switch {
	case a.services != nil && a.services.FramePending():
		return true
	case a.partners != nil && a.partners.FramePending():
		return true
	case a.view == ViewPartners && a.marqueeRunning():
		return true
	case a.pulse != nil, a.trans != nil:
		return true
	}
	return false
}

// scheduleFrame arms at most one frame tick at a time.
func (a *App) scheduleFrame() tea.Cmd {
	if a.frameScheduled || !a.animating() {
		return nil
	}
	a.frameScheduled = true
	gen := a.gen
	return tea.Tick(a.frameInterval(), func(t time.Time) tea.Msg {
		return frameMsg{gen: gen, at: t}
	})
}

func (a *App) onFrame(msg frameMsg) tea.Cmd {
	if msg.gen != a.gen {
		return nil
	}
	a.frameScheduled = false

	if a.view == ViewPartners && a.marqueeRunning() {
		a.partners.ScrollBy(a.config.Carousel.MarqueeSpeed)
	}
	if a.services.FramePending() && a.services.Frame() {
		debuglog.Debugf("services strip wrapped to %.1f", a.services.Offset())
	}
	if a.partners != nil && a.partners.FramePending() {
		a.partners.Frame()
	}
	if a.pulse != nil && a.now().Sub(a.pulse.start) >= a.pulse.pulse.Duration {
		a.pulse = nil
	}
	return a.scheduleFrame()
}

func (a *App) scheduleShuffle() tea.Cmd {
	interval := a.config.Showcase.ShuffleInterval
	if interval <= 0 || a.showcase == nil {
		return nil
	}
	gen := a.gen
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return shuffleMsg{gen: gen, at: t}
	})
}

func (a *App) onShuffle(msg shuffleMsg) tea.Cmd {
	if msg.gen != a.gen {
		return nil
	}
	if pulse, ok := a.showcase.Tick(); ok {
		debuglog.Debugf("showcase shuffled: order=%v active=%d", a.showcase.Order(), a.showcase.Active())
		if pulse.Duration > 0 && !a.lowEnd {
			a.pulse = &pulseState{pulse: pulse, start: a.now()}
		}
	}
	return tea.Batch(a.scheduleShuffle(), a.scheduleFrame())
}

// clickSlot is a click on a showcase slot, from the mouse or a digit key.
func (a *App) clickSlot(slot int) tea.Cmd {
	a.interact()
	t, ok := a.showcase.Click(slot)
	if !ok {
		return nil
	}
	a.slotCursor = slot
	return a.startTransition(t)
}

func (a *App) startTransition(t carousel.Transition) tea.Cmd {
	dur := a.config.Showcase.ExpandDuration
	if t.Phase == carousel.Collapsing {
		dur = a.config.Showcase.CollapseDuration
	}
	a.trans = &transitionState{t: t, start: a.now(), dur: dur}
	gen, id := a.gen, t.ID
	return tea.Batch(
		tea.Tick(dur, func(time.Time) tea.Msg { return transitionDoneMsg{gen: gen, id: id} }),
		a.scheduleFrame(),
	)
}

func (a *App) onTransitionDone(msg transitionDoneMsg) tea.Cmd {
	if msg.gen != a.gen {
		return nil
	}
	next, ok := a.showcase.Complete(msg.id)
	if !ok {
		debuglog.Debugf("stale transition %d ignored", msg.id)
		return nil
	}
	a.trans = nil
	if next != nil {
		return a.startTransition(*next)
	}
	return nil
}

// interact marks a user gesture and retries deferred previews.
func (a *App) interact() {
	if a.preview == nil || a.preview.interacted {
		return
	}
	a.preview.interacted = true
	if n := a.autoplay.Interact(); n > 0 {
		a.setStatus(fmt.Sprintf("Playing %d previews", n), StatusInfo)
	}
}
