package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/showreel/internal/carousel"
)

const dragPointer = 0

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if isLeftPress(msg) && msg.Y == 0 {
		if v, ok := tabAt(msg.X); ok {
			return a.switchView(v)
		}
		return nil
	}

	switch a.view {
	case ViewHome:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return cmd
	case ViewServices:
		return a.mouseServices(msg)
	case ViewShowcase:
		return a.mouseShowcase(msg)
	case ViewPartners:
		return a.mousePartners(msg)
	case ViewContact:
		return a.mouseContact(msg)
	}
	return nil
}

func isLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}

// tabAt maps a column of the tab bar to its section.
func tabAt(x int) (View, bool) {
	col := lipgloss.Width(LogoStyle.Render(CompactLogo))
	for _, v := range tabViews {
		w := lipgloss.Width(TabStyle.Render(v.String()))
		if x >= col && x < col+w {
			return v, true
		}
		col += w
	}
	return 0, false
}

// mouseServices turns press/motion/release over the strip into a drag. The
// drag keeps following the pointer after it leaves the strip rows until the
// button is released. A release without movement is a click that centers
// the card under the pointer.
func (a *App) mouseServices(msg tea.MouseMsg) tea.Cmd {
	inStrip := msg.Y >= sectionTop && msg.Y < sectionTop+cardHeight
	x := float64(msg.X)
	step := a.serviceItemWidth() / 2

	switch {
	case msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelDown || msg.Button == tea.MouseButtonWheelRight):
		a.services.ScrollBy(step)
	case msg.Action == tea.MouseActionPress && (msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelLeft):
		a.services.ScrollBy(-step)
	case isLeftPress(msg) && inStrip:
		a.interact()
		a.services.PointerDown(dragPointer, x)
		a.dragging = true
		a.dragOrigin = msg.X
		a.dragMoved = false
	case msg.Action == tea.MouseActionMotion && a.dragging:
		if a.services.PointerMove(dragPointer, x) && msg.X != a.dragOrigin {
			a.dragMoved = true
		}
	case msg.Action == tea.MouseActionRelease && a.dragging:
		a.services.PointerUp(dragPointer)
		a.dragging = false
		if !a.dragMoved && inStrip {
			if item, ok := a.serviceAt(msg.X); ok {
				a.services.CenterOn(item, float64(a.width))
			}
		}
	default:
		return nil
	}
	return a.scheduleFrame()
}

// serviceAt returns the catalog item drawn at column x.
func (a *App) serviceAt(x int) (int, bool) {
	cw := a.config.Carousel.CardWidth
	for _, o := range a.services.Visible(float64(a.width)) {
		left := int(math.Floor(o.X))
		if x >= left && x < left+cw {
			return o.Item, true
		}
	}
	return 0, false
}

func (a *App) mouseShowcase(msg tea.MouseMsg) tea.Cmd {
	if !isLeftPress(msg) || msg.Y < sectionTop {
		return nil
	}
	row := msg.Y - sectionTop

	if st := a.showcase.Expansion(); st.Phase != carousel.Collapsed {
		x, w := a.expandedBox()
		if row < slotHeight+slotMaxLift+2 && msg.X >= x && msg.X < x+w {
			return a.clickSlot(st.Slot)
		}
		return nil
	}

	if row >= slotHeight+slotMaxLift {
		return nil
	}
	bw, xs := a.slotGrid()
	for slot, x0 := range xs {
		if msg.X >= x0 && msg.X < x0+bw {
			return a.clickSlot(slot)
		}
	}
	return nil
}

// mousePartners pauses the marquee while the pointer hovers it.
func (a *App) mousePartners(msg tea.MouseMsg) tea.Cmd {
	hover := msg.Y >= sectionTop && msg.Y < sectionTop+partnerHeight
	if hover == a.marqueeHover {
		return nil
	}
	a.marqueeHover = hover
	return a.scheduleFrame()
}

func (a *App) mouseContact(msg tea.MouseMsg) tea.Cmd {
	if !isLeftPress(msg) {
		return nil
	}
	field, ok := contactFieldAt(msg.Y)
	if !ok {
		return nil
	}
	cmd := a.focusField(field)
	if field == fieldSubmit {
		return tea.Batch(cmd, a.submitContactForm())
	}
	return cmd
}
