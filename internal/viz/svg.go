package viz

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/googly/internal/analysis"
)

// CanvasSVG draws every lit braille dot as a circle, scale pixels apart.
func CanvasSVG(c *Canvas, scale float64, theme Theme) string {
	if c == nil {
		return ""
	}
	pw, ph := c.PixelSize()
	w, h := float64(pw)*scale, float64(ph)*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, w, h, w, h, theme.Primary)

	r := scale * 0.4
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if c.IsSet(x, y) {
				fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
			}
		}
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

// PathSVG plots iris paths in a square socket view of radius bound. The
// socket rim is drawn as a circle and each path gets its own stroke.
func PathSVG(paths []*analysis.Portrait, bound float64, size int, theme Theme) string {
	if bound <= 0 {
		bound = 1
	}
	half := float64(size) / 2
	scale := half / (bound * 1.1)
	strokes := []lipgloss.Color{theme.Primary, theme.Accent, theme.Secondary}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-dasharray="4 4"/>
`, size, size, size, size, half, half, bound*scale, theme.Muted)

	for i, p := range paths {
		if p == nil || len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, strokes[i%len(strokes)])
		for j, pt := range p.Points {
			cmd := " L"
			if j == 0 {
				cmd = "M"
			}
			fmt.Fprintf(&sb, "%s%.1f,%.1f", cmd, half+pt.X*scale, half-pt.Y*scale)
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG saves svg to path.
func WriteSVG(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
