package sim

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/render"
)

// RunResult is one headless ensemble member.
type RunResult struct {
	Seed    int64
	Frames  int
	Stats   Stats
	Metrics map[string]float64
}

// Ensemble runs independent headless loops concurrently, seeding run i with
// seedStart+i. A zero seedStart takes the base seed from the clock, so every
// run of an unseeded ensemble is seeded the same way.
type Ensemble struct {
	cfg        config.Config
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
	logger     *log.Logger
}

func NewEnsemble(cfg config.Config, numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics}
}

func (e *Ensemble) SetLogger(l *log.Logger) { e.logger = l }

func (e *Ensemble) Run(ctx context.Context, frames int) ([]*RunResult, error) {
	results := make([]*RunResult, e.numRuns)
	errs := make([]error, e.numRuns)

	base := e.seedStart
	if base == 0 {
		base = time.Now().UnixNano()
	}

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = base + int64(idx)

			var metrics []Metric
			if e.newMetrics != nil {
				metrics = e.newMetrics()
			}
			opts := make([]Option, 0, len(metrics)+1)
			if e.logger != nil {
				opts = append(opts, WithLogger(e.logger.With("run", idx)))
			}
			for _, m := range metrics {
				opts = append(opts, WithObserver(m))
			}

			loop := New(cfgCopy, render.Discard{}, opts...)
			sched := &FrameScheduler{}
			if err := loop.Start(sched); err != nil {
				errs[idx] = err
				return
			}
			n, err := RunFrames(ctx, sched, frames)
			loop.Stop()
			if err != nil {
				errs[idx] = err
				return
			}

			values := make(map[string]float64, len(metrics))
			for _, m := range metrics {
				values[m.Name()] = m.Value()
			}
			results[idx] = &RunResult{
				Seed:    cfgCopy.Seed,
				Frames:  n,
				Stats:   loop.Stats(),
				Metrics: values,
			}
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
