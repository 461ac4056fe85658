package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/savibeshop/savibe/internal/particles"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ParticleCount != 150 {
		t.Errorf("expected 150 particles, got %d", cfg.ParticleCount)
	}
	if cfg.TickInterval() != 50*time.Millisecond {
		t.Errorf("expected 50ms tick, got %v", cfg.TickInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
	ac := cfg.AnimatorConfig()
	if ac.Count != 150 || len(ac.Palette) != 3 {
		t.Errorf("unexpected animator config %+v", ac)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "savibe.yaml")
	data := []byte("particle_count: 42\npalette: [\"#112233\"]\ntheme: noir\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ParticleCount != 42 {
		t.Errorf("expected 42, got %d", cfg.ParticleCount)
	}
	if cfg.Theme != "noir" {
		t.Errorf("expected theme noir, got %s", cfg.Theme)
	}
	if cfg.TickMs != DefaultTickMs {
		t.Errorf("unset keys should keep defaults, got tick %d", cfg.TickMs)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SAVIBE_PARTICLE_COUNT", "77")
	t.Setenv("SAVIBE_PALETTE", "#000000,#ffffff")
	t.Setenv("SAVIBE_SEED", "9")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env failed: %v", err)
	}
	if cfg.ParticleCount != 77 {
		t.Errorf("expected 77, got %d", cfg.ParticleCount)
	}
	if len(cfg.Palette) != 2 || cfg.Palette[1] != "#ffffff" {
		t.Errorf("unexpected palette %v", cfg.Palette)
	}
	if cfg.Seed != 9 {
		t.Errorf("expected seed 9, got %d", cfg.Seed)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("unset env should keep theme, got %s", cfg.Theme)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	t.Setenv("SAVIBE_TICK_MS", "fast")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("expected error for non-numeric tick")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative count", func(c *Config) { c.ParticleCount = -1 }},
		{"oversized count", func(c *Config) { c.ParticleCount = particles.MaxCount + 1 }},
		{"zero tick", func(c *Config) { c.TickMs = 0 }},
		{"negative reveal", func(c *Config) { c.RevealStepMs = -5 }},
		{"bad color", func(c *Config) { c.Palette = []string{"purple"} }},
		{"empty palette", func(c *Config) { c.Palette = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("landing")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if p.ParticleCount != 150 {
		t.Errorf("expected 150, got %d", p.ParticleCount)
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyPreset(GetPreset("storm"))
	if cfg.ParticleCount != 400 || cfg.TickMs != 30 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	cfg.Palette[0] = "#000000"
	if Presets["storm"].Palette[0] == "#000000" {
		t.Error("ApplyPreset must copy the palette")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset config invalid: %v", err)
	}
}

func TestApplyFileOverPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "savibe.yaml")
	if err := os.WriteFile(path, []byte("tick_ms: 70\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.ApplyPreset(GetPreset("storm"))
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("apply file failed: %v", err)
	}
	if cfg.ParticleCount != 400 {
		t.Errorf("preset count lost, got %d", cfg.ParticleCount)
	}
	if cfg.TickMs != 70 {
		t.Errorf("file should override preset tick, got %d", cfg.TickMs)
	}

	if err := cfg.ApplyFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
