// Package gif provides an animated GIF encoder for record.
//
// Frames are dithered to the Plan 9 palette with Floyd-Steinberg error
// diffusion. GIF delays are in hundredths of a second, so rates above
// 100 fps are clamped.
//
// Importing this package registers the encoder as "gif":
//
//	import _ "github.com/gogpu/palette/record/backends/gif"
package gif

import (
	"errors"
	"image"
	"image/color/palette"
	"image/draw"
	stdgif "image/gif"
	"io"

	"github.com/gogpu/palette/record"
)

func init() {
	record.Register("gif", func() record.Encoder {
		return New()
	})
}

// ErrNotStarted is returned when frames are written before Begin.
var ErrNotStarted = errors.New("gif: encoder not started")

// Encoder writes looping animated GIFs.
type Encoder struct {
	w     io.Writer
	delay int
	anim  stdgif.GIF
}

// New creates a GIF encoder.
func New() *Encoder {
	return &Encoder{}
}

// Extension implements record.Encoder.
func (e *Encoder) Extension() string { return ".gif" }

// Begin implements record.Encoder.
func (e *Encoder) Begin(w io.Writer, width, height, fps int) error {
	if width <= 0 || height <= 0 {
		return errors.New("gif: invalid frame size")
	}
	if fps <= 0 {
		return errors.New("gif: invalid frame rate")
	}
	e.w = w
	e.delay = Delay(fps)
	e.anim = stdgif.GIF{}
	return nil
}

// Delay converts a frame rate to a GIF frame delay in centiseconds,
// rounded, and at least 1.
func Delay(fps int) int {
	return max(1, (100+fps/2)/fps)
}

// WriteFrame implements record.Encoder.
func (e *Encoder) WriteFrame(f *record.Frame) error {
	if e.w == nil {
		return ErrNotStarted
	}
	dst := image.NewPaletted(f.Bounds(), palette.Plan9)
	draw.FloydSteinberg.Draw(dst, dst.Bounds(), f.Image(), image.Point{})
	e.anim.Image = append(e.anim.Image, dst)
	e.anim.Delay = append(e.anim.Delay, e.delay)
	return nil
}

// End implements record.Encoder.
func (e *Encoder) End() error {
	if e.w == nil {
		return ErrNotStarted
	}
	defer func() {
		e.w = nil
		e.anim = stdgif.GIF{}
	}()
	return stdgif.EncodeAll(e.w, &e.anim)
}
