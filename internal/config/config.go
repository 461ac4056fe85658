package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/ui"
)

const (
	DefaultTickMs       = 50
	// DefaultRevealStepMs of zero keeps the per-item delays from the page
	// content instead of a uniform stagger.
	DefaultRevealStepMs = 0
	DefaultTheme        = "savibe"
	DefaultLogLevel     = "info"
	DefaultListen       = "127.0.0.1:8080"
	DefaultDataDir      = ".savibe"

	EnvPrefix = "SAVIBE_"
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	ParticleCount   int      `yaml:"particle_count" env:"PARTICLE_COUNT"`
	Palette         []string `yaml:"palette" env:"PALETTE" envSeparator:","`
	TickMs          int      `yaml:"tick_ms" env:"TICK_MS"`
	Seed            uint64   `yaml:"seed" env:"SEED"`
	Theme           string   `yaml:"theme" env:"THEME"`
	RevealStepMs    int      `yaml:"reveal_step_ms" env:"REVEAL_STEP_MS"`
	ScrollThreshold int      `yaml:"scroll_threshold" env:"SCROLL_THRESHOLD"`
	ContentFile     string   `yaml:"content_file" env:"CONTENT_FILE"`
	LogLevel        string   `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile         string   `yaml:"log_file" env:"LOG_FILE"`
	Listen          string   `yaml:"listen" env:"LISTEN"`
	DataDir         string   `yaml:"data_dir" env:"DATA_DIR"`
}

func DefaultConfig() *Config {
	return &Config{
		ParticleCount:   particles.PageCount,
		Palette:         particles.DefaultPalette.Strings(),
		TickMs:          DefaultTickMs,
		Theme:           DefaultTheme,
		RevealStepMs:    DefaultRevealStepMs,
		ScrollThreshold: ui.DefaultScrollThreshold,
		LogLevel:        DefaultLogLevel,
		Listen:          DefaultListen,
		DataDir:         DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFile overlays the keys present in a YAML file onto c.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from SAVIBE_* variables. Unset variables leave
// the current value alone.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ParticleCount < 0 || c.ParticleCount > particles.MaxCount {
		return fmt.Errorf("%w: particle_count %d outside [0, %d]", ErrInvalidConfig, c.ParticleCount, particles.MaxCount)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalidConfig, c.TickMs)
	}
	if c.RevealStepMs < 0 {
		return fmt.Errorf("%w: reveal_step_ms %d", ErrInvalidConfig, c.RevealStepMs)
	}
	if _, err := c.PaletteColors(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) PaletteColors() (particles.Palette, error) {
	p := make(particles.Palette, len(c.Palette))
	for i, s := range c.Palette {
		p[i] = particles.Color(s)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

func (c *Config) RevealStep() time.Duration {
	return time.Duration(c.RevealStepMs) * time.Millisecond
}

// AnimatorConfig assumes Validate has passed.
func (c *Config) AnimatorConfig() animator.Config {
	p, _ := c.PaletteColors()
	return animator.Config{
		Count:    c.ParticleCount,
		Palette:  p,
		Interval: c.TickInterval(),
	}
}
