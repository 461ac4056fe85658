package viz

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/savibeshop/savibe/internal/particles"
)

// TickMsg advances the particle field by one step. Ticks carry the field
// generation and the chain they were scheduled by; a tick from a replaced
// field or an abandoned chain is dropped, so re-initializing never leaves
// two tick loops running.
type TickMsg struct {
	Time       time.Time
	Generation uint64
	Chain      uint64
}

func tickCmd(d time.Duration, gen, chain uint64) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Generation: gen, Chain: chain}
	})
}

func (t TickMsg) current(f particles.Field, chain uint64) bool {
	return t.Generation == f.Generation && t.Chain == chain
}

// DefaultPalettes are cycled with the palette key.
var DefaultPalettes = []particles.Palette{
	particles.DefaultPalette,
	{"#F472B6", "#FB7185", "#FDBA74"},
	{"#22D3EE", "#818CF8", "#C084FC"},
	{"#FFFFFF", "#E9D5FF"},
}

func nextPalette(ps []particles.Palette, cur particles.Palette) (particles.Palette, int) {
	if len(ps) == 0 {
		return cur, 0
	}
	for i, p := range ps {
		if slices.Equal(p, cur) {
			j := (i + 1) % len(ps)
			return ps[j], j
		}
	}
	return ps[0], 0
}

const countStep = 25
