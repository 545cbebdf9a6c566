package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	cfg := defaultConfig()
	cfg.Database = DatabaseConfig{
		Path:    ":memory:",
		Timeout: 1 * time.Second,
	}
	cfg.Catalog.HTTPTimeout = 5 * time.Second
	cfg.Catalog.UserAgent = "showreel-test/1.0"
	cfg.Carousel.FrameInterval = time.Millisecond
	cfg.Showcase.ShuffleInterval = 20 * time.Millisecond
	cfg.Showcase.ExpandDuration = 5 * time.Millisecond
	cfg.Showcase.CollapseDuration = 5 * time.Millisecond
	cfg.Showcase.Seed = 42
	cfg.Contact.Listen = "127.0.0.1:0"
	cfg.Log = LogConfig{Level: "none"}
	return cfg
}
