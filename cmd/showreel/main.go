package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pders01/showreel/internal/catalog"
	"github.com/pders01/showreel/internal/config"
	"github.com/pders01/showreel/internal/debuglog"
	"github.com/pders01/showreel/internal/device"
	"github.com/pders01/showreel/internal/search"
	"github.com/pders01/showreel/internal/storage"
	"github.com/pders01/showreel/internal/tui"
)

// Version is the version of the application, set at build time
var Version = "dev"

var (
	configPath string
	dbPath     string
	debug      bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:   "showreel",
	Short: "Agency showreel in your terminal",
	Long: `showreel browses an agency's services, showcase reels and partners in an
interactive terminal UI, and ships the contact API the form posts to.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database file (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to the log file")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Skip startup banner")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.Database.Path = expandTilde(dbPath)
	}

	level := debuglog.ParseLogLevel(cfg.Log.Level)
	if debug {
		level = debuglog.LevelDebug
	}
	if err := debuglog.Setup(level, cfg.Log.File); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func openStore(cfg *config.Config) (*storage.Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return storage.NewStore(cfg.Database.Path, cfg.Database.Timeout)
}

// openSearcher prefers the on-disk bleve index and falls back to the
// in-memory engine when it cannot be opened.
func openSearcher(cfg *config.Config) (search.Searcher, func()) {
	if cfg.Database.SearchIndex == "" {
		return search.NewEngine(nil), func() {}
	}
	engine, err := search.NewBleveEngine(cfg.Database.SearchIndex)
	if err != nil {
		debuglog.Warnf("bleve index unavailable, using in-memory search: %v", err)
		return search.NewEngine(nil), func() {}
	}
	return engine, func() {
		if err := engine.Close(); err != nil {
			debuglog.Warnf("closing search index: %v", err)
		}
	}
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	if !quiet {
		tui.ShowBanner(Version)
	}

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	searcher, closeSearcher := openSearcher(cfg)
	defer closeSearcher()

	deps := tui.Deps{
		Catalog:  cat,
		Store:    store,
		Searcher: searcher,
		Device:   device.Detect(cfg.Device.NetworkClass, 0),
	}
	if cfg.Catalog.FeedURL != "" {
		deps.Importer = catalog.NewImporter(cfg.Catalog.HTTPTimeout, cfg.Catalog.UserAgent)
	}

	app, err := tui.NewApp(cfg, deps)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseAllMotion())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		go func() {
			err := catalog.Watch(ctx, cfg.Catalog.Path, catalog.DefaultDebounce, func(c *catalog.Catalog, err error) {
				p.Send(tui.CatalogReloaded(c, err))
			})
			if err != nil {
				debuglog.Warnf("catalog watch stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
