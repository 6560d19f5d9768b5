// Package config loads runtime settings for the tetrad binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Display modes.
const (
	ModeWindow = "window"
	ModeTUI    = "tui"
)

// Config is the top-level settings file.
type Config struct {
	// TickRate is the number of engine ticks per second.
	TickRate int `yaml:"tick_rate"`
	// Seed for the shape randomizer; 0 seeds from the clock.
	Seed    uint64  `yaml:"seed"`
	Audio   Audio   `yaml:"audio"`
	Display Display `yaml:"display"`
	Log     Log     `yaml:"log"`
}

type Audio struct {
	// Muted silences sound effects; Music controls the background theme.
	Muted      bool    `yaml:"muted"`
	Music      bool    `yaml:"music"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

type Display struct {
	Mode string `yaml:"mode"`
	// Scale is the size of one cell in pixels.
	Scale      int  `yaml:"scale"`
	DebugUI    bool `yaml:"debug_ui"`
	Animations bool `yaml:"animations"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		TickRate: 60,
		Audio: Audio{
			Music:      true,
			Volume:     0.5,
			SampleRate: 44100,
		},
		Display: Display{
			Mode:       ModeWindow,
			Scale:      32,
			Animations: true,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Interval is the time between engine ticks.
func (c Config) Interval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.TickRate <= 0 || c.TickRate > 1000 {
		errs = append(errs, fmt.Errorf("tick_rate %d out of range 1..1000", c.TickRate))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume %v out of range 0..1", c.Audio.Volume))
	}
	switch c.Audio.SampleRate {
	case 22050, 44100, 48000:
	default:
		errs = append(errs, fmt.Errorf("audio.sample_rate %d unsupported", c.Audio.SampleRate))
	}
	if c.Display.Mode != ModeWindow && c.Display.Mode != ModeTUI {
		errs = append(errs, fmt.Errorf("display.mode %q is not %q or %q", c.Display.Mode, ModeWindow, ModeTUI))
	}
	if c.Display.Scale < 8 || c.Display.Scale > 128 {
		errs = append(errs, fmt.Errorf("display.scale %d out of range 8..128", c.Display.Scale))
	}
	if _, err := c.Log.parseLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
