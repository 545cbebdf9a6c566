package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/showreel/internal/carousel"
	"github.com/pders01/showreel/internal/catalog"
)

func TestServiceCardShape(t *testing.T) {
	s := catalog.Service{
		Title:       "Media production & motion graphics",
		Description: strings.Repeat("lots of words here ", 20),
	}
	lines := serviceCard(s, 24)
	require.Len(t, lines, cardHeight)
	for i, l := range lines {
		assert.Equal(t, 24, len([]rune(l)), "line %d", i)
	}
	assert.True(t, strings.HasSuffix(strings.TrimRight(lines[cardHeight-2], " │"), "…"))
}

func TestPartnerCardShape(t *testing.T) {
	lines := partnerCard(catalog.Partner{Name: "A very long partner name"}, partnerCardWidth)
	require.Len(t, lines, partnerHeight)
	for _, l := range lines {
		assert.Equal(t, partnerCardWidth, len([]rune(l)))
	}
	assert.Contains(t, lines[1], "…")
}

func TestRenderStripFillsViewport(t *testing.T) {
	strip, err := carousel.NewStrip(4, 10, carousel.StripOptions{})
	require.NoError(t, err)
	strip.Seed()
	strip.ScrollBy(3)

	card := func(item int) ([]string, lipgloss.Style) {
		ch := string(rune('a' + item))
		return []string{strings.Repeat(ch, 8), strings.Repeat(ch, 8)}, lipgloss.NewStyle()
	}
	out := renderStrip(strip, 25, 8, 2, card)
	rows := strings.Split(out, "\n")
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, 25, lipgloss.Width(r))
	}
	// Offset 43 starts 3 columns into item 0 of the middle repetition.
	assert.True(t, strings.HasPrefix(rows[0], "aaaaa  bbbbbbbb"), rows[0])
}

func TestRenderStripZeroViewport(t *testing.T) {
	strip, err := carousel.NewStrip(2, 10, carousel.StripOptions{})
	require.NoError(t, err)
	assert.Empty(t, renderStrip(strip, 0, 8, 1, nil))
}

func TestFocusedItem(t *testing.T) {
	strip, err := carousel.NewStrip(5, 10, carousel.StripOptions{})
	require.NoError(t, err)
	strip.Seed()
	strip.CenterOn(3, 40)
	assert.Equal(t, 3, focusedItem(strip, 40))
}

func TestBoxLines(t *testing.T) {
	box := boxLines([]string{"hi"}, 8, true)
	assert.Equal(t, []string{"╭──────╮", "│ hi   │", "╰──────╯"}, box)
}

func TestExpandedBoxInterpolates(t *testing.T) {
	app := newTestApp(t)
	app.switchView(ViewShowcase)
	bw, xs := app.slotGrid()
	app.press("3")

	x, w := app.expandedBox()
	assert.Equal(t, xs[2], x)
	assert.Equal(t, bw, w)

	app.clock.advance(app.config.Showcase.ExpandDuration)
	x, w = app.expandedBox()
	assert.Equal(t, slotMargin, x)
	assert.Equal(t, app.width-2*slotMargin, w)
}

func TestSlotGrid(t *testing.T) {
	app := newTestApp(t)
	bw, xs := app.slotGrid()
	require.Len(t, xs, 3)
	assert.Equal(t, slotMargin, xs[0])
	assert.Equal(t, bw+slotGap, xs[1]-xs[0])
	assert.LessOrEqual(t, xs[2]+bw, app.width-slotMargin)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 1, clampInt(-3, 1, 5))
	assert.Equal(t, 5, clampInt(9, 1, 5))
	assert.Equal(t, 3, clampInt(3, 1, 5))
}
