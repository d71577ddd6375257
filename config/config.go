package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config holds runtime configuration for the viewer. Fields may be loaded
// from a JSON file and overridden by command-line flags.
type Config struct {
	Debug bool `json:"debug"`

	// Backend endpoints
	APIBaseURL string `json:"api_base_url"`
	APIToken   string `json:"api_token"`

	// Playback / polling cadence in milliseconds
	PlayIntervalMs int `json:"play_interval_ms"`
	PollIntervalMs int `json:"poll_interval_ms"`

	// Time-of-day filter window (HH:MM)
	FilterStart string `json:"filter_start"`
	FilterEnd   string `json:"filter_end"`

	// Image cache capacity per viewing session
	CacheCapacity int `json:"cache_capacity"`

	// Preview pane dimensions
	PreviewWidth  int `json:"preview_width"`
	PreviewHeight int `json:"preview_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		APIBaseURL:     "http://127.0.0.1:8470",
		PlayIntervalMs: 1000,
		PollIntervalMs: 4000,
		FilterStart:    "00:00",
		FilterEnd:      "23:59",
		CacheCapacity:  512,
		PreviewWidth:   480,
		PreviewHeight:  270,
	}
}

// DefaultPath resolves the config file location under the XDG config dir.
func DefaultPath() string {
	path, err := xdg.ConfigFile(filepath.Join("tracklens", "config.json"))
	if err != nil {
		return "tracklens.json"
	}
	return path
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultConfig().APIBaseURL
	}
	if c.PlayIntervalMs <= 0 {
		c.PlayIntervalMs = 1000
	}
	if c.PollIntervalMs < 500 {
		c.PollIntervalMs = 4000
	}
	if c.FilterStart == "" {
		c.FilterStart = "00:00"
	}
	if c.FilterEnd == "" {
		c.FilterEnd = "23:59"
	}
	if c.CacheCapacity <= 0 {
		c.CacheCapacity = 512
	}
	if c.PreviewWidth < 100 {
		c.PreviewWidth = 480
	}
	if c.PreviewHeight < 100 {
		c.PreviewHeight = 270
	}
	return nil
}

// PlayInterval returns the autoplay cadence as a duration.
func (c *Config) PlayInterval() time.Duration {
	return time.Duration(c.PlayIntervalMs) * time.Millisecond
}

// PollInterval returns the live-view poll cadence as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Load attempts to read configuration from the given JSON file path. If the
// file does not exist it returns DefaultConfig(). On JSON error it returns
// defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
