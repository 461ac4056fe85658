package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/config"
	"github.com/savibeshop/savibe/internal/content"
	"github.com/savibeshop/savibe/internal/logging"
	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/viz"
)

// loadSettings layers defaults, preset, config file, SAVIBE_* environment
// and finally the flags the user actually set.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.ApplyPreset(p)
	}

	if configFile != "" {
		if err := cfg.ApplyFile(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.ParticleCount = particleCount
	}
	if flags.Changed("palette") {
		p, err := particles.ParsePalette(paletteFlag)
		if err != nil {
			return nil, fmt.Errorf("--palette: %w", err)
		}
		cfg.Palette = p.Strings()
	}
	if flags.Changed("tick-ms") {
		cfg.TickMs = tickMs
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("reveal-step-ms") {
		cfg.RevealStepMs = revealStepMs
	}
	if flags.Changed("content") {
		cfg.ContentFile = contentFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Lookup("listen") != nil && flags.Changed("listen") {
		cfg.Listen = listen
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, ok := viz.GetTheme(cfg.Theme); !ok {
		return nil, fmt.Errorf("%w: unknown theme %q (available: %v)", config.ErrInvalidConfig, cfg.Theme, viz.ThemeNames())
	}
	return cfg, nil
}

func loadContent(cfg *config.Config) (*content.Page, error) {
	if cfg.ContentFile == "" {
		return content.Default(), nil
	}
	page, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}
	return page, nil
}

func newAnimator(cfg *config.Config, log *zap.Logger, opts ...animator.Option) *animator.Animator {
	base := []animator.Option{
		animator.WithSource(particles.NewSource(cfg.Seed)),
		animator.WithLogger(log),
	}
	return animator.New(cfg.AnimatorConfig(), append(base, opts...)...)
}

// resolveSeed fixes a time based seed when none is configured, so the seed
// that actually ran can be stored.
func resolveSeed(cfg *config.Config) {
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
}

func paletteCycle(cfg *config.Config) []particles.Palette {
	current := cfg.AnimatorConfig().Palette
	for _, p := range viz.DefaultPalettes {
		if slices.Equal(p, current) {
			return viz.DefaultPalettes
		}
	}
	return append([]particles.Palette{current}, viz.DefaultPalettes...)
}

// terminalLogger keeps the screen for the renderer.
func terminalLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.ForTerminal(cfg.LogLevel, cfg.LogFile)
}

func consoleLogger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFile)
}
