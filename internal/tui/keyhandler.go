package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pders01/showreel/internal/carousel"
	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/search"
)

type KeyHandler struct {
	app         *App
	config      *config.Config
	keys        config.KeyBindings
	modifierKey string
}

func NewKeyHandler(app *App, cfg *config.Config) *KeyHandler {
	modifierKey := cfg.Keys.Modifier + "+"
	return &KeyHandler{app: app, config: cfg, keys: cfg.Keys.Bindings, modifierKey: modifierKey}
}

func (kh *KeyHandler) HandleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	kh.app.interact()

	if kh.isInTextInputMode() {
		return kh.handleTextInputMode(msg)
	}

	if model, cmd, handled := kh.handleCustomKeys(key); handled {
		return model, cmd
	}

	return kh.delegateToCharm(msg)
}

func (kh *KeyHandler) isInTextInputMode() bool {
	switch kh.app.view {
	case ViewContact:
		return true
	case ViewSearch:
		return kh.app.searchInput.Focused()
	default:
		return false
	}
}

func (kh *KeyHandler) handleTextInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return kh.app, tea.Quit
	case kh.keys.Back, "esc":
		return kh.navigateBack()
	}

	if kh.app.view == ViewContact {
		return kh.handleContactKeys(msg)
	}

	switch key {
	case "enter":
		if items := kh.app.searchList.Items(); len(items) > 0 {
			if i, ok := items[0].(searchResultItem); ok {
				return kh.selectSearchResult(i)
			}
		}
		return kh.app, nil
	case "tab", "down":
		if len(kh.app.searchList.Items()) > 0 {
			kh.app.searchInput.Blur()
			kh.app.searchList.Select(0)
		}
		return kh.app, nil
	default:
		return kh.delegateToSearchInput(msg)
	}
}

func (kh *KeyHandler) handleContactKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	app := kh.app
	switch msg.String() {
	case "tab":
		return app, app.focusField(app.focus + 1)
	case "shift+tab":
		return app, app.focusField(app.focus - 1)
	case kh.modifierKey + "s":
		return app, app.submitContactForm()
	case "enter":
		switch {
		case app.focus == fieldSubmit:
			return app, app.submitContactForm()
		case app.focus < fieldMessage:
			return app, app.focusField(app.focus + 1)
		}
	}
	if app.focus == fieldSubmit {
		return app, nil
	}
	return app, app.updateFocusedField(msg)
}

// delegateToSearchInput feeds the key to the search box and runs the query
// when its text changed.
func (kh *KeyHandler) delegateToSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	app := kh.app
	var cmd tea.Cmd
	app.searchInput, cmd = app.searchInput.Update(msg)

	query := kh.sanitizeSearchInput(app.searchInput.Value())
	if query == app.searchQuery {
		return app, cmd
	}
	app.searchQuery = query
	if len([]rune(query)) < 2 {
		app.searchResults = nil
		app.searchList.SetItems([]list.Item{})
		return app, cmd
	}
	app.setStatus(MsgSearching, StatusInfo)
	return app, tea.Batch(cmd, app.performSearch(query))
}

// handleCustomKeys handles only our custom action keys
func (kh *KeyHandler) handleCustomKeys(key string) (tea.Model, tea.Cmd, bool) {
	app := kh.app

	if app.view == ViewSearch {
		switch key {
		case "tab", "shift+tab", "/":
			return app, nil, false
		}
	}

	switch key {
	case "ctrl+c", kh.keys.Quit:
		return app, tea.Quit, true
	case kh.keys.Back:
		model, cmd := kh.navigateBack()
		return model, cmd, true
	case kh.keys.Search, kh.modifierKey + "s":
		model, cmd := kh.enterSearchMode()
		return model, cmd, true
	case kh.keys.Contact:
		return app, app.switchView(ViewContact), true
	case kh.keys.NextView:
		return app, app.switchView(kh.adjacentView(1)), true
	case "shift+tab":
		return app, app.switchView(kh.adjacentView(-1)), true
	case kh.keys.Help:
		app.showHelp = !app.showHelp
		return app, nil, true
	case kh.modifierKey + "r":
		return app, app.refresh(), true
	}

	switch app.view {
	case ViewHome:
		return kh.handleHomeKeys(key)
	case ViewServices:
		return kh.handleServicesKeys(key)
	case ViewShowcase:
		return kh.handleShowcaseKeys(key)
	case ViewPartners:
		return kh.handlePartnersKeys(key)
	default:
		return app, nil, false
	}
}

func (kh *KeyHandler) adjacentView(step int) View {
	cur := kh.app.view
	if cur == ViewSearch {
		cur = kh.app.previousView
	}
	for i, v := range tabViews {
		if v == cur {
			n := len(tabViews)
			return tabViews[((i+step)%n+n)%n]
		}
	}
	return ViewHome
}

func (kh *KeyHandler) handleHomeKeys(key string) (tea.Model, tea.Cmd, bool) {
	if key == kh.keys.Expand {
		return kh.app, kh.app.switchView(ViewContact), true
	}
	return kh.app, nil, false
}

func (kh *KeyHandler) handleServicesKeys(key string) (tea.Model, tea.Cmd, bool) {
	app := kh.app
	step := app.serviceItemWidth()
	switch key {
	case kh.keys.Left, "left":
		app.services.ScrollBy(-step)
	case kh.keys.Right, "right":
		app.services.ScrollBy(step)
	default:
		return app, nil, false
	}
	return app, app.scheduleFrame(), true
}

func (kh *KeyHandler) handleShowcaseKeys(key string) (tea.Model, tea.Cmd, bool) {
	app := kh.app
	n := app.showcase.Slots()
	switch key {
	case kh.keys.Left, "left":
		app.slotCursor = (app.slotCursor - 1 + n) % n
		return app, nil, true
	case kh.keys.Right, "right":
		app.slotCursor = (app.slotCursor + 1) % n
		return app, nil, true
	case kh.keys.Expand, " ", "space":
		return app, app.clickSlot(app.slotCursor), true
	case kh.keys.OpenMedia, kh.modifierKey + "o":
		slot := app.slotCursor
		if st := app.showcase.Expansion(); st.Phase != carousel.Collapsed {
			slot = st.Slot
		}
		return app, app.openVideo(app.catalog.Videos[slot]), true
	}
	if d, err := strconv.Atoi(key); err == nil && d >= 1 && d <= n {
		return app, app.clickSlot(d - 1), true
	}
	return app, nil, false
}

func (kh *KeyHandler) handlePartnersKeys(key string) (tea.Model, tea.Cmd, bool) {
	app := kh.app
	if app.partners == nil {
		return app, nil, false
	}
	switch key {
	case kh.keys.Left, "left":
		app.partners.ScrollBy(-(partnerCardWidth + partnerGap))
	case kh.keys.Right, "right":
		app.partners.ScrollBy(partnerCardWidth + partnerGap)
	case " ", "space", "p":
		app.marqueePaused = !app.marqueePaused
	default:
		return app, nil, false
	}
	return app, app.scheduleFrame(), true
}

// delegateToCharm lets Charm handle all keys we don't intercept
func (kh *KeyHandler) delegateToCharm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	app := kh.app

	switch app.view {
	case ViewHome:
		app.viewport, cmd = app.viewport.Update(msg)
		return app, cmd

	case ViewSearch:
		switch msg.String() {
		case "tab", "shift+tab", "/", "i":
			app.searchInput.Focus()
			return app, nil
		case "up":
			if len(app.searchList.Items()) > 0 && app.searchList.Index() == 0 {
				app.searchInput.Focus()
				return app, nil
			}
		}

		app.searchList, cmd = app.searchList.Update(msg)
		if msg.String() == "enter" {
			if i, ok := app.searchList.SelectedItem().(searchResultItem); ok {
				return kh.selectSearchResult(i)
			}
		}
		return app, cmd

	default:
		return app, nil
	}
}

// selectSearchResult jumps to the section holding the result and brings the
// matching item into view.
func (kh *KeyHandler) selectSearchResult(item searchResultItem) (tea.Model, tea.Cmd) {
	app := kh.app
	if item.result == nil {
		return app, nil
	}
	doc := item.result.Doc
	kh.resetSearch()

	switch doc.Kind {
	case search.KindService:
		cmd := app.switchView(ViewServices)
		app.services.CenterOn(doc.Index, float64(app.width))
		return app, tea.Batch(cmd, app.scheduleFrame())

	case search.KindVideo:
		cmd := app.switchView(ViewShowcase)
		if doc.Index >= app.showcase.Slots() {
			return app, cmd
		}
		app.slotCursor = doc.Index
		if st := app.showcase.Expansion(); st.Phase == carousel.Collapsed || st.Slot != doc.Index {
			return app, tea.Batch(cmd, app.clickSlot(doc.Index))
		}
		return app, cmd

	case search.KindPartner:
		cmd := app.switchView(ViewPartners)
		if app.partners != nil {
			app.partners.CenterOn(doc.Index, float64(app.width))
		}
		return app, tea.Batch(cmd, app.scheduleFrame())
	}
	return app, nil
}

func (kh *KeyHandler) resetSearch() {
	kh.app.searchInput.Reset()
	kh.app.searchQuery = ""
	kh.app.searchResults = nil
	kh.app.searchList.SetItems([]list.Item{})
}

// navigateBack implements smart back navigation
func (kh *KeyHandler) navigateBack() (tea.Model, tea.Cmd) {
	app := kh.app
	switch app.view {
	case ViewSearch:
		kh.resetSearch()
		return app, app.switchView(app.previousView)
	case ViewHome:
		return app, tea.Quit
	default:
		return app, app.switchView(ViewHome)
	}
}

// enterSearchMode transitions to search view
func (kh *KeyHandler) enterSearchMode() (tea.Model, tea.Cmd) {
	app := kh.app
	if app.view == ViewSearch {
		return app, app.searchInput.Focus()
	}
	cmd := tea.Batch(app.switchView(ViewSearch), app.searchInput.Focus())
	kh.resetSearch()

	engineName := fmt.Sprintf("%T", app.searcher)
	if ds, ok := app.searcher.(search.DebugStatser); ok {
		if n, err := ds.DocCount(); err == nil {
			app.setStatus(fmt.Sprintf("Search: %s • idx: %d", engineName, n), StatusInfo)
			return app, cmd
		}
	}
	app.setStatus(fmt.Sprintf("Search: %s", engineName), StatusInfo)
	return app, cmd
}

// sanitizeSearchInput sanitizes and limits search input length
func (kh *KeyHandler) sanitizeSearchInput(input string) string {
	input = strings.TrimSpace(input)

	if len(input) > 256 {
		input = input[:256]
	}

	input = strings.ReplaceAll(input, "\n", " ")
	input = strings.ReplaceAll(input, "\r", " ")
	input = strings.ReplaceAll(input, "\t", " ")

	for strings.Contains(input, "  ") {
		input = strings.ReplaceAll(input, "  ", " ")
	}

	return strings.TrimSpace(input)
}

// GetHelpForCurrentView returns only our custom help text (Charm handles the rest)
func (kh *KeyHandler) GetHelpForCurrentView() []string {
	k := kh.keys
	global := []string{k.NextView + ": next", k.Search + ": search", k.Contact + ": contact", k.Quit + ": quit"}

	switch kh.app.view {
	case ViewHome:
		return append([]string{k.Expand + ": contact us", "↑↓: scroll"}, global...)
	case ViewServices:
		return append([]string{"drag/←→: browse", k.Left + "/" + k.Right + ": step"}, global...)
	case ViewShowcase:
		return append([]string{
			fmt.Sprintf("1-%d/click: expand", kh.app.showcase.Slots()),
			k.Expand + ": toggle",
			k.OpenMedia + ": open",
		}, global...)
	case ViewPartners:
		return append([]string{"p: pause", "←→: nudge"}, global...)
	case ViewContact:
		return []string{"tab: next field", kh.modifierKey + "s: send", k.Back + ": back"}
	case ViewSearch:
		return []string{"enter: select", "tab: results", k.Back + ": back"}
	default:
		return global
	}
}
