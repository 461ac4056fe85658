package config

import "sort"

var Presets = map[string]*Config{
	"landing": {
		ParticleCount: 150, TickMs: 50,
		Palette: []string{"#8B5CF6", "#EC4899", "#6366F1"},
	},
	"component": {
		ParticleCount: 100, TickMs: 50,
		Palette: []string{"#8B5CF6", "#EC4899", "#6366F1"},
	},
	"calm": {
		ParticleCount: 60, TickMs: 90,
		Palette: []string{"#C4B5FD", "#F9A8D4"},
	},
	"storm": {
		ParticleCount: 400, TickMs: 30,
		Palette: []string{"#8B5CF6", "#EC4899", "#6366F1", "#F472B6", "#A78BFA"},
	},
	"mono": {
		ParticleCount: 120, TickMs: 50,
		Palette: []string{"#FFFFFF"},
	},
}

// GetPreset returns nil for an unknown name.
func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset copies the particle settings of a preset onto c.
func (c *Config) ApplyPreset(p *Config) {
	c.ParticleCount = p.ParticleCount
	c.TickMs = p.TickMs
	c.Palette = append([]string(nil), p.Palette...)
}
