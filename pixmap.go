package palette

import (
	"image"
	"image/color"

	"github.com/gogpu/palette/internal/blend"
)

// Pixmap is a fixed-size RGBA8 pixel buffer.
//
// Pixels are stored premultiplied, row-major, 4 bytes per pixel, which is
// the same layout as image.RGBA. Every coordinate access is clipped: writes
// outside the buffer are no-ops and reads return Transparent.
//
// A Pixmap is not safe for concurrent use.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // premultiplied RGBA, 4 bytes per pixel
}

// NewPixmap creates a new fully transparent pixmap with the given dimensions.
// Non-positive dimensions produce an empty pixmap.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw premultiplied pixel data.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

func (p *Pixmap) offset(x, y int) (int, bool) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, false
	}
	return (y*p.width + x) * 4, true
}

// Blend composites c over the pixel at (x, y) using the "over" operator:
// out = src*srcA + dst*(1-srcA).
func (p *Pixmap) Blend(x, y int, c Color) {
	i, ok := p.offset(x, y)
	if !ok || c.A == 0 {
		return
	}
	sr, sg, sb, sa := blend.Premultiply(c.R, c.G, c.B, c.A)
	d := p.data[i : i+4 : i+4]
	d[0], d[1], d[2], d[3] = blend.Over(sr, sg, sb, sa, d[0], d[1], d[2], d[3])
}

// SetPixel replaces the pixel at (x, y) with c.
func (p *Pixmap) SetPixel(x, y int, c Color) {
	i, ok := p.offset(x, y)
	if !ok {
		return
	}
	d := p.data[i : i+4 : i+4]
	d[0], d[1], d[2], d[3] = blend.Premultiply(c.R, c.G, c.B, c.A)
}

// Pixel returns the straight-alpha color of the pixel at (x, y).
func (p *Pixmap) Pixel(x, y int) Color {
	i, ok := p.offset(x, y)
	if !ok {
		return Transparent
	}
	r, g, b, a := blend.Unpremultiply(p.data[i], p.data[i+1], p.data[i+2], p.data[i+3])
	return Color{R: r, G: g, B: b, A: a}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c Color) {
	r, g, b, a := blend.Premultiply(c.R, c.G, c.B, c.A)
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Draw composites src over p. Both pixmaps must have the same dimensions;
// otherwise only the overlapping top-left region is drawn.
func (p *Pixmap) Draw(src *Pixmap) {
	if src.width == p.width && src.height == p.height {
		blend.Span(p.data, src.data, p.width*p.height)
		return
	}
	w := min(p.width, src.width)
	h := min(p.height, src.height)
	for y := 0; y < h; y++ {
		blend.Span(p.data[y*p.width*4:], src.data[y*src.width*4:], w)
	}
}

// Clone returns an independent deep copy of p.
func (p *Pixmap) Clone() *Pixmap {
	data := make([]uint8, len(p.data))
	copy(data, p.data)
	return &Pixmap{width: p.width, height: p.height, data: data}
}

// Equal reports whether p and q have identical dimensions and pixels.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if p.width != q.width || p.height != q.height {
		return false
	}
	for i := range p.data {
		if p.data[i] != q.data[i] {
			return false
		}
	}
	return true
}

// ToImage converts the pixmap to an image.RGBA. The result does not share
// memory with p.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	i, ok := p.offset(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}
