package sim

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/googly/internal/scene"
)

var ErrUnknownMotion = errors.New("sim: unknown host motion")

// Motion poses the host node (the head the eyes are glued to) at time t.
type Motion interface {
	Name() string
	Apply(head *scene.Node, t float64)
}

type Still struct{}

func (Still) Name() string { return "still" }
func (Still) Apply(head *scene.Node, t float64) {
	head.SetPosition(mgl64.Vec3{})
	head.SetRotation(mgl64.QuatIdent())
}

// Shake slides the head side to side.
type Shake struct{ Amplitude, Frequency float64 }

func (Shake) Name() string { return "shake" }
func (m Shake) Apply(head *scene.Node, t float64) {
	head.SetPosition(mgl64.Vec3{m.Amplitude * wave(m.Frequency, t), 0, 0})
	head.SetRotation(mgl64.QuatIdent())
}

// Nod tips the head forward and back about X; Amplitude is in radians.
type Nod struct{ Amplitude, Frequency float64 }

func (Nod) Name() string { return "nod" }
func (m Nod) Apply(head *scene.Node, t float64) {
	head.SetPosition(mgl64.Vec3{})
	head.SetEulerRotation(m.Amplitude*wave(m.Frequency, t), 0, 0)
}

// Spin rolls the head continuously about its forward axis; Amplitude
// scales the number of turns per period.
type Spin struct{ Amplitude, Frequency float64 }

func (Spin) Name() string { return "spin" }
func (m Spin) Apply(head *scene.Node, t float64) {
	head.SetPosition(mgl64.Vec3{})
	head.SetEulerRotation(0, 0, m.Amplitude*2*math.Pi*m.Frequency*t)
}

// Orbit moves the head around a circle in the XY plane.
type Orbit struct{ Amplitude, Frequency float64 }

func (Orbit) Name() string { return "orbit" }
func (m Orbit) Apply(head *scene.Node, t float64) {
	s, c := math.Sincos(2 * math.Pi * m.Frequency * t)
	head.SetPosition(mgl64.Vec3{m.Amplitude * c, m.Amplitude * s, 0})
	head.SetRotation(mgl64.QuatIdent())
}

func wave(freq, t float64) float64 {
	return math.Sin(2 * math.Pi * freq * t)
}

var motions = map[string]func(a, f float64) Motion{
	"still": func(a, f float64) Motion { return Still{} },
	"shake": func(a, f float64) Motion { return Shake{a, f} },
	"nod":   func(a, f float64) Motion { return Nod{a, f} },
	"spin":  func(a, f float64) Motion { return Spin{a, f} },
	"orbit": func(a, f float64) Motion { return Orbit{a, f} },
}

func NewMotion(name string, amplitude, frequency float64) (Motion, error) {
	ctor, ok := motions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMotion, name)
	}
	return ctor(amplitude, frequency), nil
}

func Motions() []string {
	names := make([]string, 0, len(motions))
	for k := range motions {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
