package record

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Frame is one captured picture in packed 8-bit RGB, row-major, 3 bytes per
// pixel. Alpha is dropped: frames are captured from opaque composites.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// rawRGBA is implemented by premultiplied RGBA8 buffers with a tight stride
// and a zero origin, such as palette.Pixmap.
type rawRGBA interface {
	image.Image
	Data() []uint8
}

// NewFrame copies img into a new Frame.
func NewFrame(img image.Image) *Frame {
	b := img.Bounds()
	f := &Frame{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, b.Dx()*b.Dy()*3),
	}

	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < f.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			packRGB(f.Pix[y*f.Width*3:(y+1)*f.Width*3], row)
		}
	case rawRGBA:
		data := src.Data()
		if b.Min == (image.Point{}) && len(data) == f.Width*f.Height*4 {
			packRGB(f.Pix, data)
			break
		}
		f.copyGeneric(img)
	default:
		f.copyGeneric(img)
	}
	return f
}

func (f *Frame) copyGeneric(img image.Image) {
	b := img.Bounds()
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			f.Pix[i+0] = c.R
			f.Pix[i+1] = c.G
			f.Pix[i+2] = c.B
			i += 3
		}
	}
}

// packRGB drops the alpha byte of every RGBA pixel in src into dst.
func packRGB(dst, src []byte) {
	for i, j := 0, 0; i+2 < len(dst); i, j = i+3, j+4 {
		dst[i+0] = src[j+0]
		dst[i+1] = src[j+1]
		dst[i+2] = src[j+2]
	}
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Image expands the frame to an opaque image.RGBA for encoders.
func (f *Frame) Image() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	for i, j := 0, 0; i < len(f.Pix); i, j = i+3, j+4 {
		img.Pix[j+0] = f.Pix[i+0]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// Scale returns f resampled to width x height. It returns f itself when the
// size already matches.
func (f *Frame) Scale(width, height int) *Frame {
	if f.Width == width && f.Height == height {
		return f
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), f.Image(), f.Bounds(), xdraw.Src, nil)
	return NewFrame(dst)
}
