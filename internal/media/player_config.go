package media

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

//go:embed players.toml
var playersTOML []byte

// PlayerDefinition defines how a media player should be invoked
type PlayerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	Args        []string `toml:"args"`
}

// PlayersConfig holds all player definitions
type PlayersConfig struct {
	Players map[string]PlayerDefinition `toml:"players"`
}

// PlayerRegistry manages player definitions
type PlayerRegistry struct {
	players map[string]PlayerDefinition
	goos    string
}

// NewPlayerRegistry creates a registry from the embedded TOML, merged with
// the definitions found in userPaths. Unreadable user files are skipped.
func NewPlayerRegistry(userPaths ...string) (*PlayerRegistry, error) {
	var config PlayersConfig
	if err := toml.Unmarshal(playersTOML, &config); err != nil {
		return nil, fmt.Errorf("parsing players.toml: %w", err)
	}

	registry := &PlayerRegistry{players: config.Players, goos: runtime.GOOS}
	for _, path := range userPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var user PlayersConfig
		if err := toml.Unmarshal(data, &user); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		for name, def := range user.Players {
			registry.players[name] = def
		}
	}
	return registry, nil
}

// Args returns the arguments for playerName followed by url. Unknown players
// get the url alone.
func (r *PlayerRegistry) Args(playerName, url string) ([]string, error) {
	player, ok := r.players[playerName]
	if !ok {
		return []string{url}, nil
	}
	if len(player.Platforms) > 0 && !contains(player.Platforms, r.goos) {
		return nil, fmt.Errorf("%s not supported on %s", playerName, r.goos)
	}
	args := append([]string(nil), player.Args...)
	return append(args, url), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
