package sim

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/config"
	"github.com/san-kum/googly/internal/eyes"
)

// FromConfig builds the rig, host motion and simulator a config describes.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Simulator, error) {
	rig, err := eyes.NewRig(cfg.RigOptions())
	if err != nil {
		return nil, err
	}
	rig.SetGravity(cfg.Physics.Gravity)
	rig.SetDamping(cfg.Physics.Damping)

	motion, err := NewMotion(cfg.Host.Motion, cfg.Host.Amplitude, cfg.Host.Frequency)
	if err != nil {
		return nil, err
	}

	s, err := New(rig, motion, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Run.Seed != 0 {
		s.Scatter(cfg.Run.Seed)
	}
	return s, nil
}

// RunConfig extracts the run section of a config.
func RunConfig(cfg *config.Config) Config {
	return Config{
		Dt:            cfg.Run.Dt,
		Duration:      cfg.Run.Duration,
		ValidateState: true,
	}
}

// Scatter moves both irises to random points inside their clamp disks,
// at rest, and makes that the pose Reset returns to. The same seed always
// gives the same start.
func (s *Simulator) Scatter(seed int64) {
	rng := rand.New(rand.NewSource(seed))
	for _, e := range []eyes.Eye{s.rig.Left(), s.rig.Right()} {
		r := e.Physics.MaxOffset() * math.Sqrt(rng.Float64())
		theta := 2 * math.Pi * rng.Float64()
		if r < 0 {
			r = 0
		}
		e.Iris.SetPosition(mgl64.Vec3{r * math.Cos(theta), r * math.Sin(theta), 0})
	}
	s.markStart()
	s.Reset()
}
