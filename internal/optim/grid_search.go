package optim

import (
	"context"
	"errors"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/heartswarm/internal/automation"
	"github.com/san-kum/heartswarm/internal/config"
	"github.com/san-kum/heartswarm/internal/experiment"
	"github.com/san-kum/heartswarm/internal/logx"
	"github.com/san-kum/heartswarm/internal/sim"
)

// ErrNoResult is returned when no grid point produced a metric value.
var ErrNoResult = errors.New("optim: no grid point evaluated")

// Objective scores one parameter assignment; lower is better.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates every point of the grid and returns the one with the
// lowest objective. Points whose objective fails are skipped.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	if err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &bestParams); err != nil {
		return bestParams, best, err
	}
	if bestParams == nil {
		return nil, best, ErrNoResult
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		val, err := objective(ctx, current)
		if err != nil || math.IsNaN(val) {
			return nil
		}
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}

// MetricObjective runs a headless experiment of frames frames for each grid
// point, with the point's parameters written over base, and returns the
// named metric.
func MetricObjective(base config.Config, frames int, metricName string, logger *log.Logger) Objective {
	if logger == nil {
		logger = logx.Discard()
	}
	registry := experiment.NewRegistry()
	return func(ctx context.Context, params map[string]float64) (float64, error) {
		cfg := base
		for name, v := range params {
			var err error
			if cfg, err = automation.SetParam(cfg, name, v); err != nil {
				return 0, err
			}
		}

		m, err := registry.GetMetric(metricName)
		if err != nil {
			return 0, err
		}
		exp := experiment.New(cfg, frames)
		exp.SetLogger(logger)
		exp.Setup(nil, []sim.Metric{m})
		res, err := exp.Run(ctx)
		if err != nil {
			return 0, err
		}
		logger.Debug("grid point", "params", params, metricName, res.Metrics[metricName])
		return res.Metrics[metricName], nil
	}
}
