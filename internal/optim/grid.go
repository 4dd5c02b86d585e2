package optim

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/googly/internal/automation"
	"github.com/san-kum/googly/internal/config"
	"github.com/san-kum/googly/internal/sim"
)

// ErrNoCandidates means every grid point failed to build or diverged.
var ErrNoCandidates = errors.New("optim: no grid point produced a stable run")

// GridSearch minimises a run metric over the cartesian product of
// parameter ranges.
type GridSearch struct {
	params []string
	ranges [][]float64
	logger *slog.Logger
}

// Best is the winning grid point.
type Best struct {
	Params    map[string]float64
	Value     float64
	Evaluated int
}

func NewGridSearch(params []string, ranges [][]float64, logger *slog.Logger) (*GridSearch, error) {
	if len(params) == 0 || len(params) != len(ranges) {
		return nil, fmt.Errorf("optim: %d params with %d ranges", len(params), len(ranges))
	}
	check := config.DefaultConfig()
	for i, name := range params {
		if err := check.Set(name, 0); err != nil {
			return nil, err
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("optim: empty range for %s", name)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GridSearch{params: params, ranges: ranges, logger: logger}, nil
}

// Search runs base once per grid point and returns the point with the
// lowest value of metric. Points that fail validation or diverge are
// skipped.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, metric string) (Best, error) {
	best := Best{Value: math.Inf(1)}
	if err := g.search(ctx, 0, *base, map[string]float64{}, metric, &best); err != nil {
		return best, err
	}
	if best.Params == nil {
		return best, ErrNoCandidates
	}
	return best, nil
}

func (g *GridSearch) search(ctx context.Context, depth int, cfg config.Config, current map[string]float64, metric string, best *Best) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.params) {
		best.Evaluated++
		val, ok, err := g.evaluate(ctx, &cfg, metric)
		if err != nil || !ok {
			return err
		}
		if val < best.Value {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	name := g.params[depth]
	for _, v := range g.ranges[depth] {
		next := cfg
		if err := next.Set(name, v); err != nil {
			return err
		}
		current[name] = v
		if err := g.search(ctx, depth+1, next, current, metric, best); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}

// evaluate reports ok=false for points that should be skipped. Only
// context cancellation and unknown metrics are errors.
func (g *GridSearch) evaluate(ctx context.Context, cfg *config.Config, metric string) (float64, bool, error) {
	if err := cfg.Validate(); err != nil {
		g.logger.Debug("skipping grid point", "error", err)
		return 0, false, nil
	}
	s, err := automation.NewSimulator(cfg, g.logger)
	if err != nil {
		g.logger.Debug("skipping grid point", "error", err)
		return 0, false, nil
	}
	result, err := s.Run(ctx, sim.RunConfig(cfg))
	if err != nil {
		return 0, false, err
	}
	if len(result.Errors) > 0 {
		return 0, false, nil
	}
	val, ok := result.Metrics[metric]
	if !ok {
		return 0, false, fmt.Errorf("optim: unknown metric %q", metric)
	}
	return val, true, nil
}
