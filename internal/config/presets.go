package config

import "sort"

// Presets are partial configs layered over DefaultConfig by GetPreset.
var Presets = map[string]*Config{
	"desk": {
		Host: HostConfig{Motion: "still"},
	},
	"jiggle": {
		Physics: PhysicsConfig{Gravity: 0.981, Damping: 0.01},
		Host:    HostConfig{Motion: "shake", Amplitude: 0.05, Frequency: 3},
	},
	"nod": {
		Physics: PhysicsConfig{Gravity: 0.981, Damping: 0.02},
		Host:    HostConfig{Motion: "nod", Amplitude: 0.6, Frequency: 1},
	},
	"dizzy": {
		Physics: PhysicsConfig{Gravity: 0.981, Damping: 0.005},
		Host:    HostConfig{Motion: "spin", Amplitude: 1, Frequency: 0.5},
	},
	"orbit": {
		Physics: PhysicsConfig{Gravity: 0.5, Damping: 0.01},
		Host:    HostConfig{Motion: "orbit", Amplitude: 0.2, Frequency: 0.75},
	},
	"suzanne": {
		Rig:     RigConfig{EyeRadius: 0.25, EyeSpacing: 0.7, InwardRotation: 0.1},
		Physics: PhysicsConfig{Gravity: 0.5, Damping: 0.01},
		Host:    HostConfig{Motion: "shake", Amplitude: 0.5, Frequency: 1},
	},
}

// GetPreset returns a full config built from the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	overlay(cfg, p)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// overlay copies every non-zero field of src onto dst.
func overlay(dst, src *Config) {
	setF := func(d *float64, s float64) {
		if s != 0 {
			*d = s
		}
	}
	setF(&dst.Rig.EyeRadius, src.Rig.EyeRadius)
	setF(&dst.Rig.EyeSpacing, src.Rig.EyeSpacing)
	setF(&dst.Rig.IrisRadius, src.Rig.IrisRadius)
	setF(&dst.Rig.InwardRotation, src.Rig.InwardRotation)
	setF(&dst.Physics.Gravity, src.Physics.Gravity)
	setF(&dst.Physics.Damping, src.Physics.Damping)
	setF(&dst.Run.Dt, src.Run.Dt)
	setF(&dst.Run.Duration, src.Run.Duration)
	setF(&dst.Host.Amplitude, src.Host.Amplitude)
	setF(&dst.Host.Frequency, src.Host.Frequency)
	if src.Run.Seed != 0 {
		dst.Run.Seed = src.Run.Seed
	}
	if src.Host.Motion != "" {
		dst.Host.Motion = src.Host.Motion
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}
