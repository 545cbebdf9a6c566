package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/showreel/internal/config"
)

func TestCustomModifierKey(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) { c.Keys.Modifier = "alt" })
	assert.Equal(t, "alt+", app.keyHandler.modifierKey)

	app.press("ctrl+s")
	assert.Equal(t, ViewHome, app.view, "ctrl is not the modifier")
}

func TestCustomBindings(t *testing.T) {
	app := newTestApp(t, func(c *config.Config) {
		c.Keys.Bindings.Right = "d"
		c.Keys.Bindings.Contact = "m"
	})
	app.switchView(ViewServices)
	start := app.services.Offset()

	app.press("d")
	assert.InDelta(t, start+app.serviceItemWidth(), app.services.Offset(), 1e-9)

	app.press("m")
	assert.Equal(t, ViewContact, app.view)
}

func TestAdjacentViewWraps(t *testing.T) {
	app := newTestApp(t)
	kh := app.keyHandler

	assert.Equal(t, ViewServices, kh.adjacentView(1))
	assert.Equal(t, ViewContact, kh.adjacentView(-1))

	app.switchView(ViewContact)
	assert.Equal(t, ViewHome, kh.adjacentView(1))

	app.switchView(ViewPartners)
	app.press("/")
	require.Equal(t, ViewSearch, app.view)
	assert.Equal(t, ViewContact, kh.adjacentView(1), "search steps from the section it was opened on")
}

func TestHelpPerView(t *testing.T) {
	app := newTestApp(t)
	for _, v := range append(tabViews, ViewSearch) {
		app.view = v
		help := app.keyHandler.GetHelpForCurrentView()
		assert.NotEmpty(t, help, "view %s", v)
	}

	app.view = ViewShowcase
	assert.Contains(t, strings.Join(app.keyHandler.GetHelpForCurrentView(), " "), "1-3")

	app.view = ViewContact
	assert.Contains(t, strings.Join(app.keyHandler.GetHelpForCurrentView(), " "), "ctrl+s: send")
}

func TestHelpToggle(t *testing.T) {
	app := newTestApp(t)
	app.switchView(ViewShowcase)
	assert.Contains(t, app.getCustomStatusBar(), "?: more")

	app.press("?")
	assert.True(t, app.showHelp)
	assert.NotContains(t, app.getCustomStatusBar(), "?: more")
}

func TestSanitizeSearchInput(t *testing.T) {
	kh := newTestApp(t).keyHandler

	tests := []struct {
		in, want string
	}{
		{"  brand  ", "brand"},
		{"social\tmedia", "social media"},
		{"a\n\nb", "a b"},
		{"many    spaces", "many spaces"},
		{strings.Repeat("x", 300), strings.Repeat("x", 256)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kh.sanitizeSearchInput(tt.in))
	}
}

func TestShortQueryDoesNotSearch(t *testing.T) {
	app := newTestApp(t)
	app.press("/")

	app.press("b")
	assert.Equal(t, "b", app.searchQuery)
	assert.Empty(t, app.searchResults)
	assert.NotEqual(t, MsgSearching, app.status)
}

func TestSearchTabMovesToResults(t *testing.T) {
	app := newTestApp(t)
	app.press("/")
	app.press("reel")
	app.Update(app.performSearch("reel")())
	require.NotEmpty(t, app.searchResults)

	app.press("tab")
	assert.Equal(t, ViewSearch, app.view)
	assert.False(t, app.searchInput.Focused())

	app.press("/")
	assert.True(t, app.searchInput.Focused())
}

func TestShowcaseCursorWraps(t *testing.T) {
	app := newTestApp(t)
	app.switchView(ViewShowcase)

	app.press("left")
	assert.Equal(t, 2, app.slotCursor)
	app.press("right")
	assert.Equal(t, 0, app.slotCursor)
}

func TestOpenExpandedVideoWithModifier(t *testing.T) {
	app := newTestApp(t)
	app.switchView(ViewShowcase)
	app.press("3")
	app.completeTransition(t)
	app.slotCursor = 0

	cmd := app.press("ctrl+o")
	require.NotNil(t, cmd)
	app.Update(cmd())
	require.Len(t, app.opener.opened, 1)
	assert.Equal(t, app.catalog.Videos[2].URL, app.opener.opened[0])
}

func TestPartnersPauseToggle(t *testing.T) {
	app := newTestApp(t)
	app.switchView(ViewPartners)
	require.True(t, app.marqueeRunning())

	app.press("p")
	assert.True(t, app.marqueePaused)
	assert.False(t, app.marqueeRunning())

	app.press("p")
	assert.True(t, app.marqueeRunning())
}

func TestQuitFromAnyView(t *testing.T) {
	app := newTestApp(t)
	app.switchView(ViewShowcase)
	cmd := app.press("q")
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
