package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/googly/internal/analysis"
	"github.com/san-kum/googly/internal/config"
	"github.com/san-kum/googly/internal/sim"
	"github.com/san-kum/googly/internal/storage"
)

// Scenario is a scripted list of runs, loaded from yaml.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Preset (or the defaults) is the base; Motion, Seed and
// Params override it.
type Step struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Motion string             `yaml:"motion"`
	Seed   int64              `yaml:"seed"`
	Params map[string]float64 `yaml:"params"`
}

// StepResult pairs a step with its run. RunID is empty when no store was
// given.
type StepResult struct {
	Step   string
	RunID  string
	Result *sim.Result
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

// Config resolves the step into a validated configuration.
func (s Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", s.Preset)
		}
	}
	if s.Motion != "" {
		cfg.Host.Motion = s.Motion
	}
	if s.Seed != 0 {
		cfg.Run.Seed = s.Seed
	}

	names := make([]string, 0, len(s.Params))
	for name := range s.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cfg.Set(name, s.Params[name]); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s Step) label(i int) string {
	switch {
	case s.Name != "":
		return s.Name
	case s.Preset != "":
		return s.Preset
	}
	return fmt.Sprintf("step%d", i+1)
}

// RunScenario runs every step in order and saves each to store when it is
// non-nil. It stops at the first failing step and returns what finished.
func RunScenario(ctx context.Context, sc *Scenario, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		name := step.label(i)
		logger.Info("scenario step", "scenario", sc.Name, "step", i+1, "of", len(sc.Steps), "name", name)

		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		s, err := NewSimulator(cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := s.Run(ctx, sim.RunConfig(cfg))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: name, Result: result}
		if store != nil {
			sr.RunID, err = store.Save(storage.NewRunInfo(name, cfg, s.Rig().Options()), result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// NewSimulator builds a simulator from cfg with the standard metrics and
// the wobble spectrum attached.
func NewSimulator(cfg *config.Config, logger *slog.Logger) (*sim.Simulator, error) {
	s, err := sim.FromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}
	for _, m := range sim.DefaultMetrics() {
		s.AddMetric(m)
	}
	s.AddMetric(analysis.NewWobble())
	return s, nil
}
