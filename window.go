package palette

import (
	"image"
	"image/color"
	"strconv"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PanelWidth is the width of the side panel to the right of the canvas on
// the window surface.
const PanelWidth = 200

// Side panel geometry.
const (
	panelPad      = 8
	previewSize   = 64
	lineHeight    = 16
	thumbWidth    = 40
	thumbHeight   = 30
	layerRowGap   = 4
	labelBaseline = 11
)

var (
	panelBackground = color.RGBA{R: 0xe8, G: 0xe8, B: 0xe8, A: 0xff}
	panelText       = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	panelDimmed     = color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	panelActive     = color.RGBA{R: 0xc4, G: 0xd8, B: 0xf0, A: 0xff}
	thumbBorder     = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
)

var titleCaser = cases.Title(language.English)

// WindowSurface renders the whole application surface: the composited
// canvas on the left and a PanelWidth side panel showing the brush preview,
// brush and symmetry labels, and the layer list (top layer first, the
// active layer highlighted, hidden layers dimmed).
func (s *Session) WindowSurface() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width+PanelWidth, s.height))
	xdraw.Draw(img, image.Rect(0, 0, s.width, s.height), s.Composite(), image.Point{}, xdraw.Src)

	panel := image.Rect(s.width, 0, s.width+PanelWidth, s.height)
	xdraw.Draw(img, panel, image.NewUniform(panelBackground), image.Point{}, xdraw.Src)

	x := panel.Min.X + panelPad
	y := panelPad

	preview := BrushPreview(s.brush, previewSize)
	xdraw.Draw(img, image.Rect(x, y, x+previewSize, y+previewSize), preview, image.Point{}, xdraw.Src)
	y += previewSize + panelPad

	drawLabel(img, x, y, panelText, titleCaser.String(s.brush.Type.String())+" brush, size "+strconv.Itoa(s.brush.Size))
	y += lineHeight
	drawLabel(img, x, y, panelText, "Color "+s.brush.Color.Hex()+", opacity "+strconv.Itoa(int(s.brush.Opacity)))
	y += lineHeight
	drawLabel(img, x, y, panelText, "Symmetry: "+titleCaser.String(s.symmetry.String()))
	y += lineHeight
	if s.recorder.Active() {
		drawLabel(img, x, y, panelText, "Recording "+titleCaser.String(s.recorder.Scope().String()))
	}
	y += lineHeight + panelPad

	active := s.stack.ActiveIndex()
	for i := s.stack.Len() - 1; i >= 0 && y+thumbHeight <= s.height; i-- {
		l := s.stack.Layer(i)
		row := image.Rect(panel.Min.X, y-layerRowGap/2, panel.Max.X, y+thumbHeight+layerRowGap/2)
		if i == active {
			xdraw.Draw(img, row, image.NewUniform(panelActive), image.Point{}, xdraw.Src)
		}
		drawThumbnail(img, image.Rect(x, y, x+thumbWidth, y+thumbHeight), l.pixmap)

		fg := panelText
		if !l.visible {
			fg = panelDimmed
		}
		name := l.name
		if l.locked {
			name += " (locked)"
		}
		drawLabel(img, x+thumbWidth+panelPad, y+(thumbHeight-lineHeight)/2, fg, name)
		y += thumbHeight + layerRowGap
	}
	return img
}

// BrushPreview returns a size x size white square with a single dab of b
// stamped in the centre. Scatter brushes preview as a round disc.
func BrushPreview(b BrushState, size int) *Pixmap {
	p := NewPixmap(size, size)
	p.Clear(White)
	b = b.Normalize()
	c := Point{X: size / 2, Y: size / 2}
	if b.Type == BrushSoft {
		stampSoft(c, b, p)
	} else {
		stampRound(c, b, p)
	}
	return p
}

// drawThumbnail draws a downscaled copy of src over white into r with a
// one pixel border.
func drawThumbnail(dst *image.RGBA, r image.Rectangle, src *Pixmap) {
	xdraw.Draw(dst, r, image.NewUniform(thumbBorder), image.Point{}, xdraw.Src)
	inner := r.Inset(1)
	xdraw.Draw(dst, inner, image.White, image.Point{}, xdraw.Src)
	xdraw.ApproxBiLinear.Scale(dst, inner, src, src.Bounds(), xdraw.Over, nil)
}

// drawLabel draws text with its top edge at y.
func drawLabel(dst *image.RGBA, x, y int, c color.Color, text string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+labelBaseline),
	}
	d.DrawString(text)
}
