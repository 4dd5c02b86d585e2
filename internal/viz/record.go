package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
)

// Recorder rasterizes canvas frames into an animated GIF.
type Recorder struct {
	frames []*image.Paletted
	delay  int // hundredths of a second per frame
}

const (
	dotW = 4
	dotH = 4
)

var errNoFrames = errors.New("viz: no frames recorded")

func NewRecorder(delay int) *Recorder {
	return &Recorder{delay: delay}
}

func (r *Recorder) Len() int { return len(r.frames) }

// Capture appends the canvas as one frame, each braille dot drawn as a
// dotW x dotH block.
func (r *Recorder) Capture(c *Canvas) {
	pw, ph := c.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, pw*dotW, ph*dotH), color.Palette{color.Black, color.White})
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

// Save writes the recorded frames to path and clears the recorder.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, &anim); err != nil {
		return err
	}
	r.frames = r.frames[:0]
	return nil
}
