package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pders01/showreel/internal/device"
	"github.com/pders01/showreel/internal/validation"
)

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Carousel CarouselConfig `mapstructure:"carousel"`
	Showcase ShowcaseConfig `mapstructure:"showcase"`
	Device   DeviceConfig   `mapstructure:"device"`
	Contact  ContactConfig  `mapstructure:"contact"`
	UI       UIConfig       `mapstructure:"ui"`
	Media    MediaConfig    `mapstructure:"media"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Log      LogConfig      `mapstructure:"log"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchIndex string        `mapstructure:"search_index"`
}

// CatalogConfig points at optional catalog overrides. An empty Path uses the
// built-in catalog.
type CatalogConfig struct {
	Path        string        `mapstructure:"path"`
	FeedURL     string        `mapstructure:"feed_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	UserAgent   string        `mapstructure:"user_agent"`
	Watch       bool          `mapstructure:"watch"`
}

type CarouselConfig struct {
	Repetitions        int           `mapstructure:"repetitions"`
	CardWidth          int           `mapstructure:"card_width"`
	Gap                int           `mapstructure:"gap"`
	DragSensitivity    float64       `mapstructure:"drag_sensitivity"`
	FrameInterval      time.Duration `mapstructure:"frame_interval"`
	WrapMode           string        `mapstructure:"wrap_mode"`
	MarqueeSpeed       float64       `mapstructure:"marquee_speed"`
	PartnerRepetitions int           `mapstructure:"partner_repetitions"`
}

type ShowcaseConfig struct {
	Slots            int           `mapstructure:"slots"`
	ShuffleInterval  time.Duration `mapstructure:"shuffle_interval"`
	ExpandDuration   time.Duration `mapstructure:"expand_duration"`
	CollapseDuration time.Duration `mapstructure:"collapse_duration"`
	PulseDuration    time.Duration `mapstructure:"pulse_duration"`
	Seed             uint64        `mapstructure:"seed"`
	// Autoplay is "auto" to start previews immediately or "interaction" to
	// wait for the first key press or click.
	Autoplay string `mapstructure:"autoplay"`
}

type DeviceConfig struct {
	NetworkClass     string   `mapstructure:"network_class"`
	SlowNetworks     []string `mapstructure:"slow_networks"`
	MinMemoryGB      float64  `mapstructure:"min_memory_gb"`
	MinCores         int      `mapstructure:"min_cores"`
	MinViewportWidth int      `mapstructure:"min_viewport_width"`
	// ForceLowEnd skips detection.
	ForceLowEnd bool `mapstructure:"force_low_end"`
}

func deviceDefaults(t device.Thresholds) DeviceConfig {
	return DeviceConfig{
		SlowNetworks:     t.SlowNetworks,
		MinMemoryGB:      t.MinMemoryGB,
		MinCores:         t.MinCores,
		MinViewportWidth: t.MinViewportWidth,
	}
}

// Thresholds returns the configured low-end rules.
func (c DeviceConfig) Thresholds() device.Thresholds {
	return device.Thresholds{
		SlowNetworks:     c.SlowNetworks,
		MinMemoryGB:      c.MinMemoryGB,
		MinCores:         c.MinCores,
		MinViewportWidth: c.MinViewportWidth,
	}
}

// LowEnd decides low-end mode for p. ForceLowEnd wins over detection.
func (c DeviceConfig) LowEnd(p device.Profile) (bool, string) {
	if c.ForceLowEnd {
		return true, "forced"
	}
	return c.Thresholds().LowEnd(p)
}

type ContactConfig struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Listen          string        `mapstructure:"listen"`
	AllowAllOrigins bool          `mapstructure:"allow_all_origins"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type UIConfig struct {
	Colors UIColors `mapstructure:"colors"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type MediaConfig struct {
	Darwin        []string `mapstructure:"darwin"`
	Linux         []string `mapstructure:"linux"`
	Windows       []string `mapstructure:"windows"`
	DefaultOpener string   `mapstructure:"default_opener"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit      string `mapstructure:"quit"`
	Search    string `mapstructure:"search"`
	Contact   string `mapstructure:"contact"`
	Left      string `mapstructure:"left"`
	Right     string `mapstructure:"right"`
	Expand    string `mapstructure:"expand"`
	OpenMedia string `mapstructure:"open_media"`
	NextView  string `mapstructure:"next_view"`
	Back      string `mapstructure:"back"`
	Help      string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dataDir := filepath.Join(homeDir, ".showreel")

	return &Config{
		Database: DatabaseConfig{
			Path:        filepath.Join(dataDir, "showreel.db"),
			Timeout:     1 * time.Second,
			SearchIndex: filepath.Join(dataDir, "index.bleve"),
		},
		Catalog: CatalogConfig{
			HTTPTimeout: 30 * time.Second,
			UserAgent:   "showreel/1.0 (https://github.com/pders01/showreel)",
		},
		Carousel: CarouselConfig{
			Repetitions:        3,
			CardWidth:          24,
			Gap:                2,
			DragSensitivity:    1,
			FrameInterval:      16 * time.Millisecond,
			WrapMode:           "edges",
			MarqueeSpeed:       0.25,
			PartnerRepetitions: 4,
		},
		Showcase: ShowcaseConfig{
			Slots:            3,
			ShuffleInterval:  5 * time.Second,
			ExpandDuration:   700 * time.Millisecond,
			CollapseDuration: 700 * time.Millisecond,
			PulseDuration:    600 * time.Millisecond,
			Autoplay:         "auto",
		},
		Device: deviceDefaults(device.DefaultThresholds()),
		Contact: ContactConfig{
			Endpoint:        "http://localhost:8080/api/contact",
			Listen:          ":8080",
			AllowAllOrigins: true,
			Timeout:         10 * time.Second,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#FF6B6B",
				Secondary:  "#4ECDC4",
				Accent:     "#95E1D3",
				Background: "#1A1A2E",
				Surface:    "#16213E",
				Text:       "#EAEAEA",
				Muted:      "#94A3B8",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
		},
		Media: MediaConfig{
			Darwin:        []string{"iina", "mpv", "vlc"},
			Linux:         []string{"mpv", "vlc", "mplayer"},
			Windows:       []string{"mpv", "vlc"},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:      "q",
				Search:    "/",
				Contact:   "c",
				Left:      "h",
				Right:     "l",
				Expand:    "enter",
				OpenMedia: "o",
				NextView:  "tab",
				Back:      "esc",
				Help:      "?",
			},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dataDir, "showreel.log"),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// envKeys are the settings that can be overridden from the environment,
// e.g. SHOWREEL_CONTACT_ENDPOINT.
var envKeys = []string{
	"database.path",
	"catalog.path",
	"catalog.feed_url",
	"contact.endpoint",
	"contact.listen",
	"device.network_class",
	"device.force_low_end",
	"showcase.seed",
	"log.level",
	"log.file",
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "showreel")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SHOWREEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// Decoding onto the defaults keeps every field the file leaves out.
	config := defaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values the carousel cannot run with.
func (c *Config) Validate() error {
	if c.Carousel.Repetitions < 3 {
		return fmt.Errorf("carousel.repetitions must be at least 3, got %d", c.Carousel.Repetitions)
	}
	if c.Carousel.CardWidth < 1 {
		return fmt.Errorf("carousel.card_width must be positive, got %d", c.Carousel.CardWidth)
	}
	if c.Carousel.Gap < 0 {
		return fmt.Errorf("carousel.gap must not be negative, got %d", c.Carousel.Gap)
	}
	if s := c.Carousel.DragSensitivity; math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return fmt.Errorf("carousel.drag_sensitivity must be a positive number, got %v", s)
	}
	if s := c.Carousel.MarqueeSpeed; math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("carousel.marquee_speed must be a finite number, got %v", s)
	}
	if c.Showcase.Slots < 1 {
		return fmt.Errorf("showcase.slots must be positive, got %d", c.Showcase.Slots)
	}
	switch c.Showcase.Autoplay {
	case "", "auto", "interaction":
	default:
		return fmt.Errorf("showcase.autoplay must be auto or interaction, got %q", c.Showcase.Autoplay)
	}
	urls := validation.NewPermissiveURLValidator()
	for key, u := range map[string]string{
		"catalog.feed_url": c.Catalog.FeedURL,
		"contact.endpoint": c.Contact.Endpoint,
	} {
		if u == "" {
			continue
		}
		if _, err := urls.ValidateAndNormalize(u); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Database.SearchIndex = expandPath(cfg.Database.SearchIndex)
	cfg.Catalog.Path = expandPath(cfg.Catalog.Path)
	cfg.Log.File = expandPath(cfg.Log.File)
}

func Save(config *Config, path string) error {
	v := viper.New()

	// Durations as strings for TOML readability
	v.Set("database", map[string]any{
		"path":         config.Database.Path,
		"timeout":      config.Database.Timeout.String(),
		"search_index": config.Database.SearchIndex,
	})
	v.Set("catalog", map[string]any{
		"path":         config.Catalog.Path,
		"feed_url":     config.Catalog.FeedURL,
		"http_timeout": config.Catalog.HTTPTimeout.String(),
		"user_agent":   config.Catalog.UserAgent,
		"watch":        config.Catalog.Watch,
	})
	v.Set("carousel", map[string]any{
		"repetitions":         config.Carousel.Repetitions,
		"card_width":          config.Carousel.CardWidth,
		"gap":                 config.Carousel.Gap,
		"drag_sensitivity":    config.Carousel.DragSensitivity,
		"frame_interval":      config.Carousel.FrameInterval.String(),
		"wrap_mode":           config.Carousel.WrapMode,
		"marquee_speed":       config.Carousel.MarqueeSpeed,
		"partner_repetitions": config.Carousel.PartnerRepetitions,
	})
	v.Set("showcase", map[string]any{
		"slots":             config.Showcase.Slots,
		"shuffle_interval":  config.Showcase.ShuffleInterval.String(),
		"expand_duration":   config.Showcase.ExpandDuration.String(),
		"collapse_duration": config.Showcase.CollapseDuration.String(),
		"pulse_duration":    config.Showcase.PulseDuration.String(),
		"seed":              config.Showcase.Seed,
		"autoplay":          config.Showcase.Autoplay,
	})
	v.Set("device", map[string]any{
		"network_class":      config.Device.NetworkClass,
		"slow_networks":      config.Device.SlowNetworks,
		"min_memory_gb":      config.Device.MinMemoryGB,
		"min_cores":          config.Device.MinCores,
		"min_viewport_width": config.Device.MinViewportWidth,
		"force_low_end":      config.Device.ForceLowEnd,
	})
	v.Set("contact", map[string]any{
		"endpoint":          config.Contact.Endpoint,
		"listen":            config.Contact.Listen,
		"allow_all_origins": config.Contact.AllowAllOrigins,
		"allowed_origins":   config.Contact.AllowedOrigins,
		"timeout":           config.Contact.Timeout.String(),
	})
	c := config.UI.Colors
	v.Set("ui", map[string]any{
		"colors": map[string]any{
			"primary":    c.Primary,
			"secondary":  c.Secondary,
			"accent":     c.Accent,
			"background": c.Background,
			"surface":    c.Surface,
			"text":       c.Text,
			"muted":      c.Muted,
			"error":      c.Error,
			"success":    c.Success,
		},
	})
	v.Set("media", map[string]any{
		"darwin":         config.Media.Darwin,
		"linux":          config.Media.Linux,
		"windows":        config.Media.Windows,
		"default_opener": config.Media.DefaultOpener,
	})
	b := config.Keys.Bindings
	v.Set("keys", map[string]any{
		"modifier": config.Keys.Modifier,
		"bindings": map[string]any{
			"quit":       b.Quit,
			"search":     b.Search,
			"contact":    b.Contact,
			"left":       b.Left,
			"right":      b.Right,
			"expand":     b.Expand,
			"open_media": b.OpenMedia,
			"next_view":  b.NextView,
			"back":       b.Back,
			"help":       b.Help,
		},
	})
	v.Set("log", map[string]any{
		"level": config.Log.Level,
		"file":  config.Log.File,
	})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}
