package media

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/validation"
)

var ErrNoPlayer = errors.New("no video player found")

// Launcher opens showcase videos in an external player.
type Launcher struct {
	player   string
	registry *PlayerRegistry
	start    func(name string, args ...string) error
}

// NewLauncher picks the first installed player configured for this OS and
// falls back to the default opener.
func NewLauncher(cfg config.MediaConfig) *Launcher {
	home, _ := os.UserHomeDir()
	registry, err := NewPlayerRegistry(filepath.Join(home, ".config", "showreel", "players.toml"))
	if err != nil {
		debuglog.Warnf("player definitions: %v", err)
		registry = &PlayerRegistry{players: map[string]PlayerDefinition{}, goos: runtime.GOOS}
	}

	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = cfg.Darwin
	case "windows":
		candidates = cfg.Windows
	default:
		candidates = cfg.Linux
	}

	player := findCommand(candidates...)
	if player == "" {
		player = cfg.DefaultOpener
	}
	return &Launcher{player: player, registry: registry, start: startDetached}
}

// Player is the command Open will run.
func (l *Launcher) Player() string { return l.player }

// Open starts the player on url. URLs that are not plain http(s), or that
// could be read as a player flag, are refused.
func (l *Launcher) Open(raw string) error {
	if l.player == "" {
		return ErrNoPlayer
	}
	url, err := validation.MediaURL(raw)
	if err != nil {
		return err
	}
	args, err := l.registry.Args(l.player, url)
	if err != nil {
		args = []string{url}
	}
	if err := l.start(l.player, args...); err != nil {
		return fmt.Errorf("failed to start %s: %w", l.player, err)
	}
	debuglog.Infof("opened %s with %s", url, l.player)
	return nil
}

// startDetached starts GUI applications without waiting on them.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
