package scene

import "fmt"

// Blending selects how a material's fragments combine with what is already drawn.
type Blending uint8

const (
	NormalBlending Blending = iota
	AdditiveBlending
	SubtractiveBlending
	MultiplyBlending
)

func (b Blending) String() string {
	switch b {
	case NormalBlending:
		return "normal"
	case AdditiveBlending:
		return "additive"
	case SubtractiveBlending:
		return "subtractive"
	case MultiplyBlending:
		return "multiply"
	default:
		return fmt.Sprintf("blending(%d)", uint8(b))
	}
}

// MaterialParams is the styling record handed to a MaterialFactory.
type MaterialParams struct {
	Color       uint32 // 0xRRGGBB
	Roughness   float64
	Metalness   float64
	Transparent bool
	Opacity     float64
	Blending    Blending
}

// Material is a shared, reference-held surface description.
type Material struct {
	Kind string
	MaterialParams
}

// MaterialFactory builds a material from styling params.
type MaterialFactory func(MaterialParams) *Material

const (
	KindStandard = "standard"
	KindBasic    = "basic"
)

// NewStandardMaterial is the default physically-based material.
func NewStandardMaterial(p MaterialParams) *Material {
	return newMaterial(KindStandard, p)
}

// NewBasicMaterial is an unlit material; roughness and metalness are ignored
// by renderers but kept for inspection.
func NewBasicMaterial(p MaterialParams) *Material {
	return newMaterial(KindBasic, p)
}

func newMaterial(kind string, p MaterialParams) *Material {
	if p.Opacity == 0 {
		p.Opacity = 1
	}
	return &Material{Kind: kind, MaterialParams: p}
}

// RGB splits the packed color into 8-bit channels.
func (m *Material) RGB() (r, g, b uint8) {
	return uint8(m.Color >> 16), uint8(m.Color >> 8), uint8(m.Color)
}

// Hex formats the color as #rrggbb.
func (m *Material) Hex() string {
	return fmt.Sprintf("#%06x", m.Color&0xffffff)
}
