package analysis

import (
	"strings"

	"github.com/san-kum/googly/internal/sim"
)

var _ sim.Metric = (*Wobble)(nil)

type Point struct{ X, Y float64 }

// Portrait is a planar trajectory, usually an iris path in socket space.
type Portrait struct {
	Points []Point
}

// IrisPath collects the left (or right) iris offsets from samples.
func IrisPath(samples []sim.Sample, left bool) *Portrait {
	p := &Portrait{Points: make([]Point, 0, len(samples))}
	for _, s := range samples {
		v := s.Right
		if left {
			v = s.Left
		}
		p.Points = append(p.Points, Point{v[0], v[1]})
	}
	return p
}

// ASCII draws the path on a width x height grid. The view is square and
// centred on the origin with radius bound, so the socket rim sits at the
// edges. A bound of zero fits the path instead.
func (p *Portrait) ASCII(width, height int, bound float64) string {
	if p == nil || len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	if bound <= 0 {
		for _, pt := range p.Points {
			bound = max(bound, abs(pt.X), abs(pt.Y))
		}
		if bound == 0 {
			bound = 1
		}
	}
	bound *= 1.1

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x + bound) / (2 * bound) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y+bound)/(2*bound)*float64(height-1)) }

	c0, r0 := col(0), row(0)
	for r := range grid {
		grid[r][c0] = '│'
	}
	for c := range grid[r0] {
		grid[r0][c] = '─'
	}
	grid[r0][c0] = '┼'

	for _, pt := range p.Points {
		c, r := col(pt.X), row(pt.Y)
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
