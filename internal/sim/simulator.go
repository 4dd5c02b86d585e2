package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/eyes"
	"github.com/san-kum/googly/internal/scene"
)

// Simulator drives an eye rig glued to a moving head.
type Simulator struct {
	rig       *eyes.Rig
	head      *scene.Node
	motion    Motion
	logger    *slog.Logger
	metrics   []Metric
	observers []Observer

	t     float64
	nudge mgl64.Vec3
	start [2]mgl64.Vec3
}

// New parents the rig under a fresh head node. A nil motion keeps the
// head still and a nil logger uses slog.Default.
func New(rig *eyes.Rig, motion Motion, logger *slog.Logger) (*Simulator, error) {
	if motion == nil {
		motion = Still{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	head := scene.NewGroup("head")
	if err := head.AddChild(rig.Node()); err != nil {
		return nil, fmt.Errorf("attach rig: %w", err)
	}
	s := &Simulator{
		rig:    rig,
		head:   head,
		motion: motion,
		logger: logger,
	}
	s.markStart()
	s.Reset()
	return s, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Rig() *eyes.Rig     { return s.rig }
func (s *Simulator) Head() *scene.Node  { return s.head }
func (s *Simulator) Motion() Motion     { return s.motion }
func (s *Simulator) Time() float64      { return s.t }
func (s *Simulator) Offset() mgl64.Vec3 { return s.nudge }

// Nudge shifts the head by d on top of its motion until the next Reset.
func (s *Simulator) Nudge(d mgl64.Vec3) {
	s.nudge = s.nudge.Add(d)
}

// Reset rewinds the clock, drops any nudge and puts both irises back at
// their starting offsets, at rest.
func (s *Simulator) Reset() {
	s.t = 0
	s.nudge = mgl64.Vec3{}
	s.pose()
	s.rig.Left().Iris.SetPosition(s.start[0])
	s.rig.Right().Iris.SetPosition(s.start[1])
	s.rig.Reset()
}

// markStart records the current iris offsets as the pose Reset returns to.
func (s *Simulator) markStart() {
	s.start = [2]mgl64.Vec3{s.rig.Left().Iris.Position(), s.rig.Right().Iris.Position()}
}

// Start returns the left and right iris offsets Reset restores.
func (s *Simulator) Start() (left, right mgl64.Vec3) {
	return s.start[0], s.start[1]
}

func (s *Simulator) pose() {
	s.motion.Apply(s.head, s.t)
	s.head.Translate(s.nudge)
}

// Step advances the head motion and the rig by one frame.
func (s *Simulator) Step(dt float64) (Sample, error) {
	s.t += dt
	s.pose()
	if err := s.rig.Update(dt); err != nil {
		return Sample{}, err
	}
	return s.Sample(), nil
}

func (s *Simulator) Sample() Sample {
	return Sample{
		Time:  s.t,
		Left:  s.rig.Left().Iris.Position(),
		Right: s.rig.Right().Iris.Position(),
		Head:  s.head.WorldPosition(),
	}
}

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Samples: make([]Sample, 0, steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.Reset()
	s.record(result, s.Sample())

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		sample, err := s.Step(cfg.Dt)
		if err != nil {
			result.Errors = append(result.Errors, SimError{Time: s.t, Step: i, Wrapped: err})
			break
		}
		if cfg.ValidateState && !sample.IsValid() {
			result.Errors = append(result.Errors, SimError{Time: s.t, Step: i, Wrapped: ErrUnstable})
			s.logger.Warn("iris diverged", "step", i, "time", s.t)
			break
		}

		result.StepsTaken++
		s.record(result, sample)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run complete",
		"motion", s.motion.Name(),
		"steps", result.StepsTaken,
		"errors", len(result.Errors))

	return result, nil
}

func (s *Simulator) record(r *Result, sample Sample) {
	r.Samples = append(r.Samples, sample)
	for _, m := range s.metrics {
		m.Observe(sample)
	}
	for _, obs := range s.observers {
		obs.OnStep(sample)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
