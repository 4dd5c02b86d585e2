package eyes

import "github.com/san-kum/googly/internal/scene"

const (
	DefaultEyeRadius      = 0.02
	DefaultEyeSpacing     = 0.05
	DefaultInwardRotation = 0.1
	DefaultGravity        = 0.981
	DefaultDamping        = 0.01
	DefaultWidthSegments  = 6
	DefaultHeightSegments = 12

	// irisRatio sizes the iris relative to the socket when IrisRadius is unset.
	irisRatio = 0.5
)

// Options configures a Rig. Zero-valued fields fall back to the Default*
// constants, except InwardRotation where zero is a valid choice: a zero
// Options gives parallel sockets. Start from DefaultOptions for the usual
// slight inward turn.
type Options struct {
	EyeRadius      float64
	EyeSpacing     float64
	IrisRadius     float64 // 0 means EyeRadius * 0.5
	InwardRotation float64 // radians each socket turns toward the centre

	// MaterialFactory builds the three shared materials. nil selects
	// scene.NewStandardMaterial.
	MaterialFactory scene.MaterialFactory

	WidthSegments  int
	HeightSegments int
}

func DefaultOptions() Options {
	return Options{
		EyeRadius:      DefaultEyeRadius,
		EyeSpacing:     DefaultEyeSpacing,
		IrisRadius:     DefaultEyeRadius * irisRatio,
		InwardRotation: DefaultInwardRotation,
		WidthSegments:  DefaultWidthSegments,
		HeightSegments: DefaultHeightSegments,
	}
}

func (o Options) withDefaults() Options {
	if o.EyeRadius == 0 {
		o.EyeRadius = DefaultEyeRadius
	}
	if o.EyeSpacing == 0 {
		o.EyeSpacing = DefaultEyeSpacing
	}
	if o.IrisRadius == 0 {
		o.IrisRadius = o.EyeRadius * irisRatio
	}
	if o.MaterialFactory == nil {
		o.MaterialFactory = scene.NewStandardMaterial
	}
	if o.WidthSegments <= 0 {
		o.WidthSegments = DefaultWidthSegments
	}
	if o.HeightSegments <= 0 {
		o.HeightSegments = DefaultHeightSegments
	}
	return o
}

// MaxOffset is the radius of the clamp circle the iris centre stays within.
func (o Options) MaxOffset() float64 {
	o = o.withDefaults()
	return o.EyeRadius - o.IrisRadius
}

// Styling applied to each material slot at construction.
var (
	whiteParams = scene.MaterialParams{Color: 0xffffff, Roughness: 0.3}
	irisParams  = scene.MaterialParams{Color: 0x050505, Roughness: 0.2}
	capParams   = scene.MaterialParams{
		Color:       0x000000,
		Transparent: true,
		Blending:    scene.AdditiveBlending,
		Roughness:   0.01,
	}
)
