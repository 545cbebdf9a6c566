package media

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/validation"
)

type startCall struct {
	name string
	args []string
}

func recordingLauncher(player string, registry *PlayerRegistry, err error) (*Launcher, *[]startCall) {
	var calls []startCall
	l := &Launcher{
		player:   player,
		registry: registry,
		start: func(name string, args ...string) error {
			calls = append(calls, startCall{name, args})
			return err
		},
	}
	return l, &calls
}

func TestRegistryArgs(t *testing.T) {
	r, err := NewPlayerRegistry()
	require.NoError(t, err)
	r.goos = "linux"

	args, err := r.Args("mpv", "https://cdn.test/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, []string{"--loop-file=inf", "--really-quiet", "https://cdn.test/a.mp4"}, args)

	args, err = r.Args("some-player", "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"u"}, args)

	_, err = r.Args("iina", "u")
	assert.Error(t, err, "iina is darwin only")
}

func TestRegistryUserOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[players.mpv]
platforms = ["linux"]
args = ["--fs"]
`), 0o644))

	r, err := NewPlayerRegistry(path, filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	r.goos = "linux"

	args, err := r.Args("mpv", "u")
	require.NoError(t, err)
	assert.Equal(t, []string{"--fs", "u"}, args)
}

func TestRegistryBrokenUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.toml")
	require.NoError(t, os.WriteFile(path, []byte("[players.mpv\n"), 0o644))

	_, err := NewPlayerRegistry(path)
	assert.Error(t, err)
}

func TestLauncherOpen(t *testing.T) {
	r, err := NewPlayerRegistry()
	require.NoError(t, err)
	r.goos = "linux"

	l, calls := recordingLauncher("vlc", r, nil)
	require.NoError(t, l.Open("https://cdn.test/a.mp4"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "vlc", (*calls)[0].name)
	assert.Equal(t, []string{"--loop", "--quiet", "https://cdn.test/a.mp4"}, (*calls)[0].args)
}

func TestLauncherOpenUnsupportedPlatformFallsBackToURL(t *testing.T) {
	r, err := NewPlayerRegistry()
	require.NoError(t, err)
	r.goos = "windows"

	l, calls := recordingLauncher("iina", r, nil)
	require.NoError(t, l.Open("https://cdn.test/a.mp4"))
	assert.Equal(t, []string{"https://cdn.test/a.mp4"}, (*calls)[0].args)
}

func TestLauncherOpenErrors(t *testing.T) {
	l, _ := recordingLauncher("", &PlayerRegistry{}, nil)
	assert.ErrorIs(t, l.Open("https://cdn.test/a.mp4"), ErrNoPlayer)

	r, _ := NewPlayerRegistry()
	l, _ = recordingLauncher("mpv", r, errors.New("exec failed"))
	assert.ErrorContains(t, l.Open("https://cdn.test/a.mp4"), "failed to start mpv")
}

func TestLauncherRefusesUnsafeURLs(t *testing.T) {
	r, _ := NewPlayerRegistry()
	l, calls := recordingLauncher("mpv", r, nil)
	for _, u := range []string{"-oexec", "file:///etc/passwd", "https://cdn.test/a b.mp4"} {
		assert.ErrorIs(t, l.Open(u), validation.ErrInvalidURL, u)
	}
	assert.Empty(t, *calls)
}

func TestNewLauncherFallsBackToOpener(t *testing.T) {
	cfg := config.MediaConfig{
		Darwin:        []string{"definitely-not-installed-player"},
		Linux:         []string{"definitely-not-installed-player"},
		Windows:       []string{"definitely-not-installed-player"},
		DefaultOpener: "my-opener",
	}
	l := NewLauncher(cfg)
	assert.Equal(t, "my-opener", l.Player())
}

func TestFindCommand(t *testing.T) {
	assert.Empty(t, findCommand("definitely-not-installed-player"))
	if runtime.GOOS != "windows" {
		assert.Equal(t, "sh", findCommand("definitely-not-installed-player", "sh"))
	}
}
