package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/contact"
)

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (f *fakeOpener) Open(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = append(f.opened, url)
	return f.err
}

type fakeSubmitter struct {
	mu   sync.Mutex
	got  []contact.Request
	err  error
	resp *contact.Response
}

func (f *fakeSubmitter) Submit(_ context.Context, req contact.Request) (*contact.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &contact.Response{OK: true}, nil
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

type testApp struct {
	*App
	opener    *fakeOpener
	submitter *fakeSubmitter
	clock     *testClock
}

func newTestApp(t *testing.T, mutate ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.TestConfig()
	for _, m := range mutate {
		m(cfg)
	}
	opener := &fakeOpener{}
	submitter := &fakeSubmitter{}
	app, err := NewApp(cfg, Deps{Launcher: opener, Contact: submitter})
	require.NoError(t, err)

	clock := &testClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
	app.now = clock.now
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &testApp{App: app, opener: opener, submitter: submitter, clock: clock}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func (ta *testApp) press(keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = ta.Update(key(k))
	}
	return cmd
}

func (ta *testApp) mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.Cmd {
	_, cmd := ta.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return cmd
}

// completeTransition delivers the completion for the transition in flight.
func (ta *testApp) completeTransition(t *testing.T) {
	t.Helper()
	require.NotNil(t, ta.trans, "no transition in flight")
	ta.Update(transitionDoneMsg{gen: ta.gen, id: ta.trans.t.ID})
}
