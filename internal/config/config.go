package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/googly/internal/eyes"
)

const (
	DefaultDt        = 1.0 / 60.0
	DefaultDuration  = 10.0
	DefaultMotion    = "shake"
	DefaultAmplitude = 0.1
	DefaultFrequency = 1.5
	DefaultLogLevel  = "info"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Rig      RigConfig     `yaml:"rig"`
	Physics  PhysicsConfig `yaml:"physics"`
	Run      RunConfig     `yaml:"run"`
	Host     HostConfig    `yaml:"host"`
	LogLevel string        `yaml:"log_level"`
}

type RigConfig struct {
	EyeRadius      float64 `yaml:"eye_radius"`
	EyeSpacing     float64 `yaml:"eye_spacing"`
	IrisRadius     float64 `yaml:"iris_radius"`
	InwardRotation float64 `yaml:"inward_rotation"`
}

type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"`
	Damping float64 `yaml:"damping"`
}

type RunConfig struct {
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
}

// HostConfig describes how the model carrying the eyes moves.
type HostConfig struct {
	Motion    string  `yaml:"motion"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

func DefaultConfig() *Config {
	return &Config{
		Rig: RigConfig{
			EyeRadius:      eyes.DefaultEyeRadius,
			EyeSpacing:     eyes.DefaultEyeSpacing,
			InwardRotation: eyes.DefaultInwardRotation,
		},
		Physics: PhysicsConfig{
			Gravity: eyes.DefaultGravity,
			Damping: eyes.DefaultDamping,
		},
		Run: RunConfig{
			Dt:       DefaultDt,
			Duration: DefaultDuration,
		},
		Host: HostConfig{
			Motion:    DefaultMotion,
			Amplitude: DefaultAmplitude,
			Frequency: DefaultFrequency,
		},
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in the file at path onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulator cannot run with. Degenerate rig
// radii are allowed; they collapse the irises to the socket centre.
func (c *Config) Validate() error {
	if c.Run.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Run.Dt)
	}
	if c.Run.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Run.Duration)
	}
	if c.Physics.Damping < 0 || c.Physics.Damping > 1 {
		return fmt.Errorf("%w: damping must be in [0, 1], got %g", ErrInvalid, c.Physics.Damping)
	}
	if c.Host.Frequency < 0 {
		return fmt.Errorf("%w: host frequency must be non-negative, got %g", ErrInvalid, c.Host.Frequency)
	}
	return nil
}

// RigOptions converts the rig section into eyes.Options.
func (c *Config) RigOptions() eyes.Options {
	return eyes.Options{
		EyeRadius:      c.Rig.EyeRadius,
		EyeSpacing:     c.Rig.EyeSpacing,
		IrisRadius:     c.Rig.IrisRadius,
		InwardRotation: c.Rig.InwardRotation,
	}
}

// Steps is the number of fixed updates a run performs.
func (c *Config) Steps() int {
	return int(c.Run.Duration / c.Run.Dt)
}
