// Package config loads the wristwx TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
)

// DefaultPath is looked up in the working directory when -config is not given.
const DefaultPath = "wristwx.toml"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the whole configuration file.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Marquee MarqueeConfig `toml:"marquee"`
	Phone   PhoneConfig   `toml:"phone"`
	Log     LogConfig     `toml:"log"`
}

// DisplayConfig sizes the emulated screen.
type DisplayConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Scale is the desktop window magnification.
	Scale int `toml:"scale"`
}

// MarqueeConfig holds the scrolling constants.
type MarqueeConfig struct {
	BoundOffset int `toml:"bound_offset"`
	Gap         int `toml:"gap"`
	SettleTicks int `toml:"settle_ticks"`
	// TickMillis is the period of the marquee timer.
	TickMillis int `toml:"tick_ms"`
}

// PhoneConfig selects the weather source of the phone companion.
// Script wins over OWMURL when both are set.
type PhoneConfig struct {
	Script    string  `toml:"script"`
	OWMURL    string  `toml:"owm_url"`
	Lat       float64 `toml:"lat"`
	Lon       float64 `toml:"lon"`
	TimeoutMS int     `toml:"timeout_ms"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Display: DisplayConfig{Width: 144, Height: 168, Scale: 3},
		Marquee: MarqueeConfig{BoundOffset: 20, Gap: 30, SettleTicks: 100, TickMillis: 50},
		Phone:   PhoneConfig{TimeoutMS: 15000},
	}
}

// Load reads path from fs over the defaults. A missing file yields the defaults.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path on fs.
func Save(fs afero.Fs, path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Validate rejects geometry and timing the watch cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Display.Width <= 0 || c.Display.Height <= 0:
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	case c.Display.Scale <= 0:
		return fmt.Errorf("%w: display scale %d", ErrInvalid, c.Display.Scale)
	case c.Marquee.BoundOffset < 0:
		return fmt.Errorf("%w: marquee bound_offset %d", ErrInvalid, c.Marquee.BoundOffset)
	case c.Marquee.Gap < 0:
		return fmt.Errorf("%w: marquee gap %d", ErrInvalid, c.Marquee.Gap)
	case c.Marquee.SettleTicks < 0:
		return fmt.Errorf("%w: marquee settle_ticks %d", ErrInvalid, c.Marquee.SettleTicks)
	case c.Marquee.TickMillis <= 0:
		return fmt.Errorf("%w: marquee tick_ms %d", ErrInvalid, c.Marquee.TickMillis)
	case c.Phone.TimeoutMS < 0:
		return fmt.Errorf("%w: phone timeout_ms %d", ErrInvalid, c.Phone.TimeoutMS)
	}
	return nil
}
