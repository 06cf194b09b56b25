package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/heartswarm/internal/metrics"
	"github.com/san-kum/heartswarm/internal/sim"
)

// Registry maps metric names to constructors so every run gets fresh
// accumulators.
type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["target_distance"] = func() sim.Metric { return metrics.NewTargetDistance() }
	r.metrics["leader_speed"] = func() sim.Metric { return metrics.NewLeaderSpeed() }
	r.metrics["skip_rate"] = func() sim.Metric { return metrics.NewSkipRate() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every registered metric, in
// name order.
func (r *Registry) DefaultMetrics() []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name]())
	}
	return out
}
