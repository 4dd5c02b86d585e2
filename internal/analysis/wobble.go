package analysis

import (
	"github.com/san-kum/googly/internal/sim"
)

// Wobble reports the dominant oscillation frequency of the left iris, taken
// from whichever socket axis moves the most.
type Wobble struct {
	xs, ys []float64
	start  float64
	end    float64
}

func NewWobble() *Wobble { return &Wobble{} }

func (w *Wobble) Name() string { return "wobble_hz" }

func (w *Wobble) Observe(s sim.Sample) {
	if len(w.xs) == 0 {
		w.start = s.Time
	}
	w.end = s.Time
	w.xs = append(w.xs, s.Left[0])
	w.ys = append(w.ys, s.Left[1])
}

func (w *Wobble) Value() float64 {
	n := len(w.xs)
	if n < 2 || w.end <= w.start {
		return 0
	}
	dt := (w.end - w.start) / float64(n-1)

	trace := w.ys
	if spread(w.xs) > spread(w.ys) {
		trace = w.xs
	}
	return DominantFrequency(trace, dt)
}

func (w *Wobble) Reset() {
	w.xs = w.xs[:0]
	w.ys = w.ys[:0]
	w.start, w.end = 0, 0
}

func spread(values []float64) float64 {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return hi - lo
}
