package palette

import (
	"image/color"
	"testing"
)

func TestNewPixmapTransparent(t *testing.T) {
	pm := NewPixmap(4, 3)
	if pm.Width() != 4 || pm.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 4*3*4 {
		t.Fatalf("len(Data()) = %d, want %d", len(pm.Data()), 4*3*4)
	}
	for i, v := range pm.Data() {
		if v != 0 {
			t.Fatalf("Data()[%d] = %d, want 0", i, v)
		}
	}
}

func TestNewPixmapNegativeSize(t *testing.T) {
	pm := NewPixmap(-1, 5)
	if pm.Width() != 0 || len(pm.Data()) != 0 {
		t.Errorf("NewPixmap(-1, 5) = %dx%d with %d bytes, want empty", pm.Width(), pm.Height(), len(pm.Data()))
	}
}

func TestPixmapBlend(t *testing.T) {
	tests := []struct {
		name string
		bg   Color
		src  Color
		want Color
	}{
		{"opaque over transparent", Transparent, Red, Red},
		{"half over transparent", Transparent, Red.WithAlpha(128), Color{255, 0, 0, 128}},
		{"half over white", White, Red.WithAlpha(128), Color{255, 127, 127, 255}},
		{"opaque over white", White, Blue, Blue},
		{"zero alpha is no-op", White, Red.WithAlpha(0), White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := NewPixmap(2, 2)
			pm.Clear(tt.bg)
			pm.Blend(1, 1, tt.src)
			if got := pm.Pixel(1, 1); got != tt.want {
				t.Errorf("Pixel(1, 1) = %v, want %v", got, tt.want)
			}
			if got := pm.Pixel(0, 0); got != tt.bg {
				t.Errorf("untouched Pixel(0, 0) = %v, want %v", got, tt.bg)
			}
		})
	}
}

func TestPixmapClipping(t *testing.T) {
	pm := NewPixmap(3, 3)
	before := pm.Clone()

	for _, p := range []Point{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {-100, 100}} {
		pm.Blend(p.X, p.Y, Red)
		pm.SetPixel(p.X, p.Y, Red)
		if got := pm.Pixel(p.X, p.Y); got != Transparent {
			t.Errorf("Pixel(%d, %d) = %v, want transparent", p.X, p.Y, got)
		}
	}
	if !pm.Equal(before) {
		t.Error("out-of-bounds writes modified the pixmap")
	}
}

func TestPixmapSetPixelPremultiplies(t *testing.T) {
	pm := NewPixmap(1, 1)
	pm.SetPixel(0, 0, Color{R: 255, G: 0, B: 0, A: 128})
	d := pm.Data()
	if d[0] != 128 || d[1] != 0 || d[2] != 0 || d[3] != 128 {
		t.Errorf("raw = %v, want [128 0 0 128]", d)
	}
	if got, want := pm.At(0, 0), (color.RGBA{128, 0, 0, 128}); got != want {
		t.Errorf("At(0, 0) = %v, want %v", got, want)
	}
}

func TestPixmapDraw(t *testing.T) {
	dst := NewPixmap(2, 1)
	dst.Clear(White)
	src := NewPixmap(2, 1)
	src.SetPixel(0, 0, Blue)

	dst.Draw(src)
	if got := dst.Pixel(0, 0); got != Blue {
		t.Errorf("Pixel(0, 0) = %v, want %v", got, Blue)
	}
	if got := dst.Pixel(1, 0); got != White {
		t.Errorf("transparent source changed Pixel(1, 0) to %v", got)
	}
}

func TestPixmapDrawSizeMismatch(t *testing.T) {
	dst := NewPixmap(3, 3)
	src := NewPixmap(2, 4)
	src.Clear(Green)

	dst.Draw(src)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := Transparent
			if x < 2 {
				want = Green
			}
			if got := dst.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPixmapCloneIndependent(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.SetPixel(0, 0, Red)
	c := pm.Clone()
	pm.SetPixel(0, 0, Blue)

	if got := c.Pixel(0, 0); got != Red {
		t.Errorf("clone Pixel(0, 0) = %v, want %v", got, Red)
	}
	if c.Equal(pm) {
		t.Error("clone should differ after the original changed")
	}
}

func TestPixmapToImage(t *testing.T) {
	pm := NewPixmap(2, 1)
	pm.SetPixel(1, 0, Green)
	img := pm.ToImage()
	if img.Bounds() != pm.Bounds() {
		t.Fatalf("Bounds = %v, want %v", img.Bounds(), pm.Bounds())
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("RGBAAt(1, 0) = %v", got)
	}
	img.Pix[0] = 99
	if pm.Data()[0] == 99 {
		t.Error("ToImage shares memory with the pixmap")
	}
}
