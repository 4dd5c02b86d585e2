package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnstable indicates an iris position became NaN or Inf.
var ErrUnstable = errors.New("sim: iris position diverged (NaN or Inf)")

// Sample is the rig state after one frame. Iris positions are in their
// socket's local frame; Head is the host's world position.
type Sample struct {
	Time  float64
	Left  mgl64.Vec3
	Right mgl64.Vec3
	Head  mgl64.Vec3
}

// SampleColumns names the entries returned by Sample.Values.
var SampleColumns = []string{"left_x", "left_y", "right_x", "right_y", "head_x", "head_y", "head_z"}

// Values flattens the sample (without time) in SampleColumns order. Iris z
// is always zero and is omitted.
func (s Sample) Values() []float64 {
	return []float64{s.Left[0], s.Left[1], s.Right[0], s.Right[1], s.Head[0], s.Head[1], s.Head[2]}
}

func (s Sample) IsValid() bool {
	for _, v := range s.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt            float64
	Duration      float64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		Duration:      10.0,
		ValidateState: true,
	}
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Column extracts one SampleColumns series from the run.
func (r *Result) Column(i int) []float64 {
	out := make([]float64, len(r.Samples))
	for k, s := range r.Samples {
		out[k] = s.Values()[i]
	}
	return out
}

func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for k, s := range r.Samples {
		out[k] = s.Time
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e SimError) Unwrap() error { return e.Wrapped }
