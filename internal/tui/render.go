package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/showreel/internal/carousel"
	"github.com/pders01/showreel/internal/catalog"
)

// Screen layout. Rows are absolute terminal rows so mouse hit-testing and
// rendering agree.
const (
	contentTop   = 2 // tab bar + separator
	chromeHeight = 4 // plus separator + status bar at the bottom
	sectionTop   = contentTop + 3
	formTop      = sectionTop

	cardHeight    = 8
	partnerHeight = 3
	slotHeight    = 9
	slotMaxLift   = 2
	slotGap       = 2
	slotMargin    = 1
)

// cell is a run of text drawn with one style.
type cell struct {
	text  string
	style lipgloss.Style
}

// renderStrip draws the visible occurrences of a strip, clipping the cards
// cut by either viewport edge. lines returns exactly height rows of
// cardWidth runes for a catalog item.
func renderStrip(s *carousel.Strip, viewport, cardWidth, height int, lines func(item int) ([]string, lipgloss.Style)) string {
	if viewport <= 0 {
		return ""
	}
	occ := s.Visible(float64(viewport))
	rows := make([][]cell, height)
	cursor := make([]int, height)
	for _, o := range occ {
		x := int(math.Floor(o.X))
		card, style := lines(o.Item)
		from, to := max(x, 0), min(x+cardWidth, viewport)
		if from >= to {
			continue
		}
		for r := 0; r < height; r++ {
			if from > cursor[r] {
				rows[r] = append(rows[r], cell{text: strings.Repeat(" ", from-cursor[r]), style: EmptyStyle})
			}
			rows[r] = append(rows[r], cell{text: clipRunes(card[r], from-x, to-x), style: style})
			cursor[r] = to
		}
	}
	out := make([]string, height)
	for r := range rows {
		var b strings.Builder
		for _, c := range rows[r] {
			b.WriteString(c.style.Render(c.text))
		}
		if cursor[r] < viewport {
			b.WriteString(strings.Repeat(" ", viewport-cursor[r]))
		}
		out[r] = b.String()
	}
	return strings.Join(out, "\n")
}

// boxLines frames body in a box exactly width runes wide and len(body)+2 tall.
func boxLines(body []string, width int, rounded bool) []string {
	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if rounded {
		tl, tr, bl, br = "╭", "╮", "╰", "╯"
	}
	inner := width - 2
	out := make([]string, 0, len(body)+2)
	out = append(out, tl+strings.Repeat("─", inner)+tr)
	for _, l := range body {
		out = append(out, "│ "+padRight(l, inner-2)+" │")
	}
	return append(out, bl+strings.Repeat("─", inner)+br)
}

func serviceCard(s catalog.Service, width int) []string {
	inner := width - 4
	body := make([]string, 0, cardHeight-2)
	title := wrapLines(s.Title, inner, 2)
	for len(title) < 2 {
		title = append(title, "")
	}
	body = append(body, title...)
	body = append(body, "")
	desc := wrapLines(s.Description, inner, cardHeight-5)
	for len(desc) < cardHeight-5 {
		desc = append(desc, "")
	}
	body = append(body, desc...)
	return boxLines(body, width, false)
}

func partnerCard(p catalog.Partner, width int) []string {
	name := truncateEnd(p.Name, width-4)
	pad := (width - 4 - len([]rune(name))) / 2
	return boxLines([]string{strings.Repeat(" ", pad) + name}, width, true)
}

// focusedItem is the catalog item whose cell covers the viewport center.
func focusedItem(s *carousel.Strip, viewport int) int {
	t := s.Track()
	center := s.Offset() + float64(viewport)/2
	return t.ItemAt(int(math.Floor(center / t.ItemWidth())))
}

func (a *App) renderHome() string {
	b := a.catalog.Brand
	hero := lipgloss.JoinVertical(lipgloss.Center,
		GetCompactBanner(b.Tagline),
		"",
		HighlightStyle.Render(b.Name),
		"",
		ActiveTabStyle.Render(b.CTA+" →"),
	)
	hero = lipgloss.NewStyle().Width(a.width).Align(lipgloss.Center).Render(hero)
	return lipgloss.JoinVertical(lipgloss.Top, hero, "", a.viewport.View())
}

func (a *App) aboutMarkdown() string {
	var md strings.Builder
	md.WriteString("## " + a.catalog.About.Heading + "\n\n")
	md.WriteString(a.catalog.About.Body + "\n")
	return md.String()
}

// refreshAbout re-renders the about section for the current width.
func (a *App) refreshAbout() {
	r, err := a.getRenderer()
	if err != nil {
		a.viewport.SetContent(a.aboutMarkdown())
		return
	}
	out, err := r.Render(a.aboutMarkdown())
	if err != nil {
		a.viewport.SetContent(a.aboutMarkdown())
		return
	}
	a.viewport.SetContent(out)
}

func (a *App) renderServices() string {
	cw := a.config.Carousel.CardWidth
	focused := focusedItem(a.services, a.width)
	strip := renderStrip(a.services, a.width, cw, cardHeight, func(item int) ([]string, lipgloss.Style) {
		style := CardStyle
		if item == focused {
			style = ActiveCardStyle
		}
		return serviceCard(a.catalog.Services[item], cw), style
	})

	subtitle := "drag or ←/→ to browse"
	if a.services.Dragging() {
		subtitle = "dragging…"
	}
	svc := a.catalog.Services[focused]
	detail := lipgloss.NewStyle().Width(min(a.width-2, 80)).PaddingLeft(1).Render(
		lipgloss.JoinVertical(lipgloss.Top,
			HeaderStyle.Render(svc.Title),
			svc.Description,
			renderMuted(truncateMiddle(svc.Image, a.width-4)),
		),
	)
	return lipgloss.JoinVertical(lipgloss.Top,
		renderHeader("› services", subtitle, a.width),
		"",
		strip,
		"",
		detail,
	)
}

func (a *App) renderPartners() string {
	if a.partners == nil {
		return renderCentered(a.width, a.height-chromeHeight, renderMuted("No partners yet"))
	}
	strip := renderStrip(a.partners, a.width, partnerCardWidth, partnerHeight, func(item int) ([]string, lipgloss.Style) {
		return partnerCard(a.catalog.Partners[item], partnerCardWidth), CardStyle
	})
	subtitle := "Trusted by"
	switch {
	case a.lowEnd:
		subtitle += " • static on this device"
	case a.marqueePaused || a.marqueeHover:
		subtitle += " • paused"
	}
	return lipgloss.JoinVertical(lipgloss.Top,
		renderHeader("› partners", subtitle, a.width),
		"",
		strip,
	)
}

// slotGrid returns the base slot width and each slot's left column.
func (a *App) slotGrid() (int, []int) {
	n := a.showcase.Slots()
	bw := (a.width - 2*slotMargin - (n-1)*slotGap) / n
	if bw < 12 {
		bw = 12
	}
	xs := make([]int, n)
	for i := range xs {
		xs[i] = slotMargin + i*(bw+slotGap)
	}
	return bw, xs
}

// expandedBox returns the left column and width of the expanded slot for the
// current transition progress.
func (a *App) expandedBox() (x, w int) {
	bw, xs := a.slotGrid()
	st := a.showcase.Expansion()
	full := a.width - 2*slotMargin
	p := 1.0
	if a.trans != nil {
		p = a.trans.progress(a.now())
		if a.trans.t.Phase == carousel.Collapsing {
			p = 1 - p
		}
	}
	x0 := xs[st.Slot]
	x = int(math.Round(float64(x0) + float64(slotMargin-x0)*p))
	w = int(math.Round(float64(bw) + float64(full-bw)*p))
	return x, w
}

func (a *App) renderShowcase() string {
	st := a.showcase.Expansion()
	header := renderHeader("› showcase", fmt.Sprintf("%s • click or 1-%d to expand", st, a.showcase.Slots()), a.width)
	if st.Phase != carousel.Collapsed {
		x, w := a.expandedBox()
		return lipgloss.JoinVertical(lipgloss.Top, header, "", a.renderExpanded(st.Slot, x, w))
	}

	bw, _ := a.slotGrid()
	visuals := a.showcase.Visuals()
	cols := make([]string, 0, 2*len(visuals))
	for slot, v := range visuals {
		if slot > 0 {
			cols = append(cols, strings.Repeat(" ", slotGap))
		}
		cols = append(cols, a.renderSlot(slot, v, bw))
	}
	grid := lipgloss.NewStyle().PaddingLeft(slotMargin).Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	return lipgloss.JoinVertical(lipgloss.Top, header, "", grid)
}

func (a *App) slotScale(v carousel.SlotVisual) float64 {
	scale := v.Scale
	if a.pulse != nil && a.pulse.pulse.Slot == v.Slot {
		scale *= a.pulse.pulse.ScaleAt(a.now().Sub(a.pulse.start))
	}
	return scale
}

func (a *App) renderSlot(slot int, v carousel.SlotVisual, bw int) string {
	cellStyle := lipgloss.NewStyle().Width(bw).Height(slotHeight + slotMaxLift)
	if v.Opacity == 0 {
		return cellStyle.Render("")
	}
	scale := a.slotScale(v)
	w := clampInt(int(math.Round(float64(bw)*scale/1.02)), 8, bw)
	h := clampInt(int(math.Round(float64(slotHeight)*scale/1.02)), 5, slotHeight)
	lift := slotMaxLift - int(v.Offset/5)

	video := a.catalog.Videos[slot]
	play := "⏸ tap to play"
	if a.preview.Playing(slot) {
		play = "▶ looping"
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(truncateEnd(video.Title, w-4)),
		renderMuted(play),
		renderMuted(truncateMiddle(video.URL, w-4)),
	)

	border := lipgloss.RoundedBorder()
	color := MutedColor
	switch v.Rank {
	case carousel.RankFront:
		border, color = lipgloss.ThickBorder(), AccentColor
	case carousel.RankMiddle:
		color = SecondaryColor
	}
	if slot == a.slotCursor {
		color = HighlightColor
	}
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Faint(v.Rank == carousel.RankBack).
		Padding(0, 1).
		Width(w - 2).
		Height(h - 2).
		Render(body)
	return cellStyle.Render(lipgloss.NewStyle().
		PaddingTop(max(lift, 0)).
		PaddingLeft((bw - w) / 2).
		Render(box))
}

func (a *App) renderExpanded(slot, x, w int) string {
	video := a.catalog.Videos[slot]
	lines := []string{
		HighlightStyle.Render(video.Title),
		"",
		truncateMiddle(video.URL, w-6),
	}
	if video.Poster != "" {
		lines = append(lines, renderMuted("poster: "+truncateMiddle(video.Poster, w-14)))
	}
	lines = append(lines, "", renderHelp("o: open in player • enter/click: collapse"))
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2).
		Width(max(w-2, 8)).
		Height(slotHeight + slotMaxLift).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.NewStyle().PaddingLeft(max(x, 0)).Render(box)
}

func (a *App) renderSearch() string {
	inputWidth := a.width - 8
	if inputWidth < 10 {
		inputWidth = a.width - 4
	}
	a.searchInput.Width = inputWidth

	helpText := ""
	switch {
	case a.searchInput.Focused():
		helpText = "Type to search • Tab/↓: results • Esc: back"
	case len(a.searchList.Items()) > 0:
		helpText = "↑↓: navigate • Enter: select • Tab/↑: search box • Esc: back"
	default:
		helpText = "No results found • Tab/↑: search box • Esc: back"
	}

	return lipgloss.JoinVertical(lipgloss.Top,
		HeaderStyle.Render("› search the catalog"),
		"",
		renderInputFrame(a.searchInput.View(), a.searchInput.Focused(), inputWidth),
		renderMuted(helpText),
		"",
		a.searchList.View(),
	)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
