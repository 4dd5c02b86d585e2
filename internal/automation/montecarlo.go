package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/googly/internal/config"
	"github.com/san-kum/googly/internal/sim"
)

// Trial is one scattered-start run.
type Trial struct {
	Seed    int64
	Metrics map[string]float64
	Stable  bool
}

// RunMonteCarlo repeats base with trials different scatter seeds, starting
// at seed. A zero seed starts at 1 since seed 0 means no scatter.
func RunMonteCarlo(ctx context.Context, base *config.Config, trials int, seed int64, logger *slog.Logger) ([]Trial, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = 1
	}

	out := make([]Trial, 0, trials)
	for i := 0; i < trials; i++ {
		cfg := *base
		cfg.Run.Seed = seed + int64(i)

		s, err := NewSimulator(&cfg, logger)
		if err != nil {
			return out, fmt.Errorf("trial %d: %w", i, err)
		}
		result, err := s.Run(ctx, sim.RunConfig(&cfg))
		if err != nil {
			return out, fmt.Errorf("trial %d: %w", i, err)
		}

		out = append(out, Trial{
			Seed:    cfg.Run.Seed,
			Metrics: result.Metrics,
			Stable:  len(result.Errors) == 0,
		})
		if (i+1)%10 == 0 {
			logger.Debug("monte carlo progress", "done", i+1, "trials", trials)
		}
	}
	return out, nil
}

// Summary aggregates trials.
type Summary struct {
	Stable, Unstable int
	MeanSettle       float64
	WorstSettle      float64
}

// Summarize averages settle time over stable trials only.
func Summarize(trials []Trial) Summary {
	var sum Summary
	for _, t := range trials {
		if !t.Stable {
			sum.Unstable++
			continue
		}
		sum.Stable++
		st := t.Metrics["settle_time"]
		sum.MeanSettle += st
		sum.WorstSettle = max(sum.WorstSettle, st)
	}
	if sum.Stable > 0 {
		sum.MeanSettle /= float64(sum.Stable)
	}
	return sum
}
