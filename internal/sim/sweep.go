package sim

import (
	"context"
	"fmt"
	"sync"
)

// BuildFunc constructs a simulator for one swept parameter value.
type BuildFunc func(value float64) (*Simulator, error)

// Sweep runs one simulator per value concurrently. Simulators are built
// on the calling goroutine since scene node IDs are not safe to allocate
// in parallel; only Run fans out.
func Sweep(ctx context.Context, values []float64, build BuildFunc, cfg Config) ([]*Result, error) {
	sims := make([]*Simulator, len(values))
	for i, v := range values {
		s, err := build(v)
		if err != nil {
			return nil, fmt.Errorf("build %g: %w", v, err)
		}
		sims[i] = s
	}

	results := make([]*Result, len(values))
	errs := make([]error, len(values))

	var wg sync.WaitGroup
	for i := range sims {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = sims[idx].Run(ctx, cfg)
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
