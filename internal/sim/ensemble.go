package sim

import (
	"context"
	"sync"

	"github.com/lruiz/demonsim/internal/config"
)

// Ensemble runs the same configuration under consecutive seeds, one clock
// per goroutine. Clocks share nothing, so the only serialization point is
// collecting the results.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := *e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			clock, err := NewClock(&cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			clock.AddMetric(NewGateActivity())
			results[idx], errs[idx] = clock.Run(ctx)
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
