package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownParam is returned by Set for names outside Params.
var ErrUnknownParam = errors.New("config: unknown parameter")

var setters = map[string]func(*Config, float64){
	"gravity":         func(c *Config, v float64) { c.Physics.Gravity = v },
	"damping":         func(c *Config, v float64) { c.Physics.Damping = v },
	"amplitude":       func(c *Config, v float64) { c.Host.Amplitude = v },
	"frequency":       func(c *Config, v float64) { c.Host.Frequency = v },
	"eye_radius":      func(c *Config, v float64) { c.Rig.EyeRadius = v },
	"eye_spacing":     func(c *Config, v float64) { c.Rig.EyeSpacing = v },
	"iris_radius":     func(c *Config, v float64) { c.Rig.IrisRadius = v },
	"inward_rotation": func(c *Config, v float64) { c.Rig.InwardRotation = v },
	"dt":              func(c *Config, v float64) { c.Run.Dt = v },
	"duration":        func(c *Config, v float64) { c.Run.Duration = v },
}

// Set assigns a numeric parameter by its yaml name. The result is not
// validated.
func (c *Config) Set(name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	set(c, v)
	return nil
}

// Params lists the names accepted by Set.
func Params() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
