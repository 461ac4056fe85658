// Package ensemble advances several independently seeded particle fields in
// parallel, headlessly.
package ensemble

import (
	"context"
	"sync"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/metrics"
	"github.com/savibeshop/savibe/internal/particles"
)

// cancelEvery is how many ticks run between context checks.
const cancelEvery = 64

type Result struct {
	Seed    uint64
	Field   particles.Field
	Ticks   int
	Metrics map[string]float64
}

type Ensemble struct {
	cfg       animator.Config
	numRuns   int
	seedStart uint64
}

// New runs numRuns fields seeded seedStart, seedStart+1, and so on.
func New(cfg animator.Config, numRuns int, seedStart uint64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, ticks int) ([]Result, error) {
	results := make([]Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = run(ctx, e.cfg, e.seedStart+uint64(idx), ticks)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func run(ctx context.Context, cfg animator.Config, seed uint64, ticks int) (Result, error) {
	ms := metrics.Default()
	f := particles.Initialize(cfg.Count, cfg.Palette, particles.NewSource(seed))
	ms.Observe(f)
	for i := 0; i < ticks; i++ {
		if i%cancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		f = particles.Advance(f)
		ms.Observe(f)
	}
	return Result{Seed: seed, Field: f, Ticks: ticks, Metrics: ms.Values()}, nil
}
