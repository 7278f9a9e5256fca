package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/maze-chase/parameter"
	"github.com/lixenwraith/maze-chase/sim"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config holds all runtime settings of the game
type Config struct {
	// Level
	Level      string `yaml:"level"`       // Level file, empty selects the built-in board
	WatchLevel bool   `yaml:"watch_level"` // Reload the level file on change

	// Timing
	TickRate        int           `yaml:"tick_rate"`
	IntroWait       time.Duration `yaml:"intro_wait"`
	ScaredTime      time.Duration `yaml:"scared_time"`
	ScaredSkipEvery int           `yaml:"scared_skip_every"`
	ChompInterval   time.Duration `yaml:"chomp_interval"`
	DeathTicks      int           `yaml:"death_ticks"`

	// Audio
	Mute   bool    `yaml:"mute"`
	Volume float64 `yaml:"volume"` // Base-2 gain offset

	// Debug
	ShowField bool   `yaml:"show_field"` // Draw pursuit distances on empty cells
	LogDir    string `yaml:"log_dir"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		WatchLevel:      true,
		TickRate:        parameter.TickRate,
		IntroWait:       parameter.IntroWait,
		ScaredTime:      parameter.ScaredTime,
		ScaredSkipEvery: parameter.ScaredSkipMoveEvery,
		ChompInterval:   parameter.ChompInterval,
		DeathTicks:      parameter.DeathTicks,
		LogDir:          "logs",
	}
}

// Load reads a YAML config over the defaults.
// If the file doesn't exist, returns defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0 || c.TickRate > 1000:
		return fmt.Errorf("%w: tick_rate %d out of range 1..1000", ErrInvalid, c.TickRate)
	case c.IntroWait < 0:
		return fmt.Errorf("%w: intro_wait %s is negative", ErrInvalid, c.IntroWait)
	case c.ScaredTime < 0:
		return fmt.Errorf("%w: scared_time %s is negative", ErrInvalid, c.ScaredTime)
	case c.ScaredSkipEvery < 1:
		return fmt.Errorf("%w: scared_skip_every %d must be at least 1", ErrInvalid, c.ScaredSkipEvery)
	case c.ChompInterval < 0:
		return fmt.Errorf("%w: chomp_interval %s is negative", ErrInvalid, c.ChompInterval)
	case c.DeathTicks < 1:
		return fmt.Errorf("%w: death_ticks %d must be at least 1", ErrInvalid, c.DeathTicks)
	}
	return nil
}

// TickInterval returns the simulation step duration
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Settings converts the timings to ticks at TickRate
func (c Config) Settings() sim.Settings {
	return sim.Settings{
		IntroTicks:      sim.TicksFor(c.IntroWait, c.TickRate),
		CountdownLead:   sim.TicksFor(parameter.IntroCountLead, c.TickRate),
		ScaredTicks:     sim.TicksFor(c.ScaredTime, c.TickRate),
		ScaredSkipEvery: c.ScaredSkipEvery,
		ChompTicks:      sim.TicksFor(c.ChompInterval, c.TickRate),
		DeathTicks:      c.DeathTicks,
	}
}
