package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/showreel/internal/catalog"
	"github.com/pders01/showreel/internal/search"
)

type View int

const (
	ViewHome View = iota
	ViewServices
	ViewShowcase
	ViewPartners
	ViewContact
	ViewSearch
)

// tabViews are the sections reachable with next/previous view, in page order.
var tabViews = []View{ViewHome, ViewServices, ViewShowcase, ViewPartners, ViewContact}

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewServices:
		return "services"
	case ViewShowcase:
		return "showcase"
	case ViewPartners:
		return "partners"
	case ViewContact:
		return "contact"
	case ViewSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Timer messages carry the mount generation they were scheduled under.
// Anything older than the current generation is dropped on arrival.
type frameMsg struct {
	gen uint64
	at  time.Time
}

type shuffleMsg struct {
	gen uint64
	at  time.Time
}

type transitionDoneMsg struct {
	gen uint64
	id  uint64
}

type searchResultsMsg struct {
	query   string
	results []searchResultItem
}

type contactSubmittedMsg struct {
	token uint64
	err   error
}

type feedImportedMsg struct {
	videos []catalog.Video
	cached bool
	err    error
}

type catalogReloadedMsg struct {
	catalog *catalog.Catalog
	err     error
}

// CatalogReloaded wraps a hot-reloaded catalog for tea.Program.Send.
func CatalogReloaded(c *catalog.Catalog, err error) tea.Msg {
	return catalogReloadedMsg{catalog: c, err: err}
}

type videoOpenedMsg struct {
	title string
	err   error
}

type errorMsg struct {
	err error
}

type searchResultItem struct {
	result *search.Result
}

func (i searchResultItem) Title() string {
	prefix := "◆ "
	switch i.result.Doc.Kind {
	case search.KindVideo:
		prefix = "▶ "
	case search.KindPartner:
		prefix = "◇ "
	}
	return lipgloss.NewStyle().
		Foreground(SecondaryColor).
		Bold(true).
		Render(prefix + i.result.Doc.Title)
}

func (i searchResultItem) Description() string {
	desc := i.result.Doc.Description
	if desc == "" {
		desc = i.result.Doc.URL
	}
	return lipgloss.NewStyle().
		Foreground(MutedColor).
		Render(fmt.Sprintf("%s • %s", i.result.Doc.Kind, truncateEnd(desc, 60)))
}

func (i searchResultItem) FilterValue() string {
	return i.result.Doc.Title + " " + i.result.Doc.Description
}
