package tui

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pders01/showreel/internal/carousel"
	"github.com/pders01/showreel/internal/catalog"
	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/contact"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/device"
	"github.com/pders01/showreel/internal/media"
	"github.com/pders01/showreel/internal/search"
	"github.com/pders01/showreel/internal/storage"
)

// Opener hands a video URL to an external player.
type Opener interface {
	Open(url string) error
}

// Submitter delivers a contact request.
type Submitter interface {
	Submit(ctx context.Context, req contact.Request) (*contact.Response, error)
}

// Deps are the collaborators NewApp wires in. Nil fields get defaults built
// from the config; Store and Importer stay optional.
type Deps struct {
	Catalog  *catalog.Catalog
	Store    *storage.Store
	Searcher search.Searcher
	Launcher Opener
	Contact  Submitter
	Importer *catalog.Importer
	Device   device.Profile
}

type App struct {
	config     *config.Config
	catalog    *catalog.Catalog
	store      *storage.Store
	searcher   search.Searcher
	launcher   Opener
	contact    Submitter
	importer   *catalog.Importer
	keyHandler *KeyHandler
	rng        *rand.Rand
	now        func() time.Time

	profile    device.Profile
	lowEnd     bool

	// carousels, rebuilt by mount
	gen            uint64
	frameScheduled bool
	services       *carousel.Strip
	partners       *carousel.Strip
	showcase       *carousel.Showcase
	autoplay       *carousel.Autoplay
	preview        *previewPlayer
	pulse          *pulseState
	trans          *transitionState
	slotCursor     int
	dragging       bool
	dragOrigin     int
	dragMoved      bool
	marqueeHover   bool
	marqueePaused  bool

	form     contact.Form
	inputs   []textinput.Model
	message  textarea.Model
	focus    int
	formHint string

	searchInput   textinput.Model
	searchList    list.Model
	searchResults []searchResultItem
	searchQuery   string

	viewport        viewport.Model
	view            View
	previousView    View
	showHelp        bool
	width           int
	height          int
	status          string
	statusKind      StatusKind
	err             error
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func NewApp(cfg *config.Config, deps Deps) (*App, error) {
	cat := deps.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			return nil, err
		}
	}
	if deps.Searcher == nil {
		deps.Searcher = search.NewEngine(nil)
	}
	if deps.Launcher == nil {
		deps.Launcher = media.NewLauncher(cfg.Media)
	}
	if deps.Contact == nil && cfg.Contact.Endpoint != "" {
		deps.Contact = contact.NewClient(cfg.Contact.Endpoint, cfg.Contact.Timeout)
	}

	ApplyTheme(cfg.UI.Colors)

	searchList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	searchList.Title = "› results"
	searchList.SetShowStatusBar(false)
	searchList.SetShowHelp(false)
	searchList.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = "Search services, videos and partners..."

	inputs, message := newContactInputs()

	app := &App{
		config:      cfg,
		catalog:     cat,
		store:       deps.Store,
		searcher:    deps.Searcher,
		launcher:    deps.Launcher,
		contact:     deps.Contact,
		importer:    deps.Importer,
		rng:         carousel.NewRand(cfg.Showcase.Seed),
		now:         time.Now,
		profile:     deps.Device,
		inputs:      inputs,
		message:     message,
		searchInput: si,
		searchList:  searchList,
		viewport:    viewport.New(0, 0),
		view:        ViewHome,
	}
	app.evaluateDevice()
	app.keyHandler = NewKeyHandler(app, cfg)

	if err := app.mount(); err != nil {
		return nil, err
	}
	app.refreshAbout()
	return app, nil
}

// evaluateDevice re-runs the low-end heuristic, e.g. after a resize.
func (a *App) evaluateDevice() {
	prev := a.lowEnd
	low, rule := a.config.Device.LowEnd(a.profile)
	a.lowEnd = low
	if low != prev {
		debuglog.Infof("low-end mode %v (rule: %s)", low, rule)
	}
}

func (a *App) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := (a.width * 9) / 10
	if wordWrapWidth > 100 {
		wordWrapWidth = 100
	}
	if wordWrapWidth < 40 {
		wordWrapWidth = 40
	}
	if a.width < 50 {
		wordWrapWidth = a.width - 4
		if wordWrapWidth < 20 {
			wordWrapWidth = 20
		}
	}

	if a.glamourRenderer == nil || abs(a.rendererWidth-wordWrapWidth) > 10 {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		a.glamourRenderer = r
		a.rendererWidth = wordWrapWidth
	}

	return a.glamourRenderer, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.EnableMouseAllMotion,
		a.scheduleShuffle(),
	}
	if a.importer != nil && a.config.Catalog.FeedURL != "" {
		a.setStatus(MsgImportingFeed, StatusInfo)
		cmds = append(cmds, a.importFeed())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return a.keyHandler.HandleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case frameMsg:
		return a, a.onFrame(msg)

	case shuffleMsg:
		return a, a.onShuffle(msg)

	case transitionDoneMsg:
		return a, a.onTransitionDone(msg)

	case searchResultsMsg:
		if a.view == ViewSearch && msg.query == a.searchQuery {
			a.searchResults = msg.results
			items := make([]list.Item, len(msg.results))
			for i, result := range msg.results {
				items[i] = result
			}
			a.searchList.SetItems(items)
			if len(msg.results) == 0 {
				a.setStatus(MsgNoResults, StatusInfo)
			} else {
				a.setStatus(MsgResultsCount(len(msg.results)), StatusInfo)
			}
		}
		return a, nil

	case contactSubmittedMsg:
		a.onContactSubmitted(msg)
		return a, nil

	case videoOpenedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		player := ""
		if p, ok := a.launcher.(interface{ Player() string }); ok {
			player = p.Player()
		}
		a.setStatus(MsgOpened(msg.title, player), StatusSuccess)
		return a, nil

	case feedImportedMsg:
		return a, a.onFeedImported(msg)

	case catalogReloadedMsg:
		return a, a.onCatalogReloaded(msg)

	case errorMsg:
		a.err = msg.err
		return a, nil
	}

	// Blink and other component messages go to the focused widget.
	switch a.view {
	case ViewHome:
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			var cmd tea.Cmd
			a.viewport, cmd = a.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	case ViewContact:
		cmds = append(cmds, a.updateFocusedField(msg))
	case ViewSearch:
		var cmd tea.Cmd
		a.searchInput, cmd = a.searchInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	a.profile.ViewportWidth = width
	a.evaluateDevice()

	heroHeight := len(LogoLines) + 7
	a.viewport.Width = width
	a.viewport.Height = max(height-chromeHeight-heroHeight, 3)
	a.searchList.SetSize(width, max(height-chromeHeight-8, 5))
	a.refreshAbout()
	a.fitStrips()
}

// fitStrips adds repetitions when the viewport grows wider than the strips
// can cover without exposing an edge.
func (a *App) fitStrips() {
	refit := func(s *carousel.Strip, floor int) *carousel.Strip {
		t := s.Track()
		need := max(floor, carousel.MinRepetitions+int(math.Ceil(float64(a.width)/t.Span())))
		if t.Repetitions() >= need {
			return s
		}
		mode, _ := carousel.ParseWrapMode(a.config.Carousel.WrapMode)
		next, err := carousel.NewStrip(t.CatalogLen(), t.ItemWidth(), carousel.StripOptions{
			Repetitions: need,
			Sensitivity: a.config.Carousel.DragSensitivity,
			Mode:        mode,
		})
		if err != nil {
			debuglog.Warnf("refitting strip: %v", err)
			return s
		}
		next.Seed()
		next.ScrollBy(s.Offset() - t.Span())
		next.Frame()
		debuglog.Debugf("strip refit to %d repetitions for width %d", need, a.width)
		return next
	}
	a.services = refit(a.services, a.config.Carousel.Repetitions)
	if a.partners != nil {
		a.partners = refit(a.partners, a.config.Carousel.PartnerRepetitions)
	}
}

func (a *App) updateFocusedField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.focus < fieldMessage:
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	case a.focus == fieldMessage:
		a.message, cmd = a.message.Update(msg)
	}
	return cmd
}

func (a *App) setStatus(msg string, kind StatusKind) {
	a.status = msg
	a.statusKind = kind
	a.err = nil
}

// switchView leaves the current section. A drag in progress is released and
// the frame loop picks up the new section's animations.
func (a *App) switchView(v View) tea.Cmd {
	if a.dragging {
		a.services.PointerLeave(0)
		a.dragging = false
	}
	a.marqueeHover = false
	if v != ViewSearch {
		a.previousView = v
	}
	a.view = v
	var cmd tea.Cmd
	if v == ViewContact {
		cmd = a.focusField(a.focus)
	}
	return tea.Batch(cmd, a.scheduleFrame())
}

func (a *App) View() string {
	if a.width == 0 {
		return ""
	}
	var content string
	switch a.view {
	case ViewHome:
		content = a.renderHome()
	case ViewServices:
		content = a.renderServices()
	case ViewShowcase:
		content = a.renderShowcase()
	case ViewPartners:
		content = a.renderPartners()
	case ViewContact:
		content = a.renderContact()
	case ViewSearch:
		content = a.renderSearch()
	}

	body := ContentWrapper(a.width, a.height-chromeHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Top,
		renderTabs(a.view, a.width),
		renderSeparator(a.width),
		body,
		renderSeparator(a.width),
		a.getCustomStatusBar(),
	)
}

func (a *App) getCustomStatusBar() string {
	line := ""
	switch {
	case a.err != nil:
		line = ErrorMessageStyle.Render(fmt.Sprintf("✗ %s", userFacing(a.err)))
	case a.status != "":
		line = a.statusKind.style().Render(a.status)
	}

	commands := a.keyHandler.GetHelpForCurrentView()
	if !a.showHelp && len(commands) > 4 {
		commands = append(commands[:4:4], a.config.Keys.Bindings.Help+": more")
	}
	help := renderMuted(strings.Join(commands, " • "))
	if line != "" {
		line += renderMuted(" │ ") + help
	} else {
		line = help
	}
	return StatusBarStyle.Width(a.width).MaxHeight(1).Render(line)
}
