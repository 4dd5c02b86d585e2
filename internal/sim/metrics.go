package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// MaxExcursion tracks the largest planar iris offset seen on either eye.
type MaxExcursion struct {
	max float64
}

func NewMaxExcursion() *MaxExcursion { return &MaxExcursion{} }

func (m *MaxExcursion) Name() string { return "max_excursion" }

func (m *MaxExcursion) Observe(s Sample) {
	m.max = math.Max(m.max, math.Max(planar(s.Left), planar(s.Right)))
}

func (m *MaxExcursion) Value() float64 { return m.max }
func (m *MaxExcursion) Reset()         { m.max = 0 }

// PathLength sums the distance both irises travel inside their sockets.
type PathLength struct {
	total float64
	prev  *Sample
}

func NewPathLength() *PathLength { return &PathLength{} }

func (m *PathLength) Name() string { return "path_length" }

func (m *PathLength) Observe(s Sample) {
	if m.prev != nil {
		m.total += s.Left.Sub(m.prev.Left).Len() + s.Right.Sub(m.prev.Right).Len()
	}
	m.prev = &s
}

func (m *PathLength) Value() float64 { return m.total }

func (m *PathLength) Reset() {
	m.total = 0
	m.prev = nil
}

// SettleTime reports the last time either iris moved faster than
// Threshold (socket units per second).
type SettleTime struct {
	Threshold float64
	last      float64
	prev      *Sample
}

func NewSettleTime(threshold float64) *SettleTime {
	return &SettleTime{Threshold: threshold}
}

func (m *SettleTime) Name() string { return "settle_time" }

func (m *SettleTime) Observe(s Sample) {
	if m.prev != nil {
		dt := s.Time - m.prev.Time
		if dt > 0 {
			step := math.Max(s.Left.Sub(m.prev.Left).Len(), s.Right.Sub(m.prev.Right).Len())
			if step/dt > m.Threshold {
				m.last = s.Time
			}
		}
	}
	m.prev = &s
}

func (m *SettleTime) Value() float64 { return m.last }

func (m *SettleTime) Reset() {
	m.last = 0
	m.prev = nil
}

// DefaultMetrics returns a fresh set of the standard run metrics.
func DefaultMetrics() []Metric {
	return []Metric{NewMaxExcursion(), NewPathLength(), NewSettleTime(0.01)}
}

func planar(v mgl64.Vec3) float64 {
	return math.Hypot(v[0], v[1])
}
