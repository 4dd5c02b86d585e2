package main

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/googly/internal/config"
)

// resolveConfig layers defaults, the --preset, the --config file and any
// flags the user set, in that order, then validates the result.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	floats := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"dt", &cfg.Run.Dt, dt},
		{"time", &cfg.Run.Duration, duration},
		{"gravity", &cfg.Physics.Gravity, gravity},
		{"damping", &cfg.Physics.Damping, damping},
		{"amplitude", &cfg.Host.Amplitude, amplitude},
		{"frequency", &cfg.Host.Frequency, frequency},
		{"eye-radius", &cfg.Rig.EyeRadius, eyeRadius},
		{"eye-spacing", &cfg.Rig.EyeSpacing, eyeSpacing},
		{"iris-radius", &cfg.Rig.IrisRadius, irisRadius},
		{"inward", &cfg.Rig.InwardRotation, inward},
	}
	for _, f := range floats {
		if flags.Changed(f.name) {
			*f.dst = f.val
		}
	}
	if flags.Changed("seed") {
		cfg.Run.Seed = seed
	}
	if flags.Changed("motion") {
		cfg.Host.Motion = motion
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger returns a text logger on w. Unknown level names fall back to
// info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// parseGrid reads --grid entries of the form name=v1,v2,...
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, entry := range entries {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("bad grid %q (want name=v1,v2)", entry)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}
