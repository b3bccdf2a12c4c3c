package palette

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/palette/record"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.width != DefaultWidth || o.height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", o.width, o.height, DefaultWidth, DefaultHeight)
	}
	if o.background != White {
		t.Errorf("background = %v, want white", o.background)
	}
	if o.recorder != record.DefaultConfig() {
		t.Errorf("recorder = %+v, want %+v", o.recorder, record.DefaultConfig())
	}
	if o.historyCap != DefaultHistoryCapacity {
		t.Errorf("historyCap = %d, want %d", o.historyCap, DefaultHistoryCapacity)
	}
}

func TestWithSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"both", 320, 200, 320, 200},
		{"zero width keeps default", 0, 50, DefaultWidth, 50},
		{"negative height keeps default", 10, -1, 10, DefaultHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(WithSize(tt.w, tt.h))
			if s.Width() != tt.wantW || s.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", s.Width(), s.Height(), tt.wantW, tt.wantH)
			}
			if s.Stack().Width() != tt.wantW {
				t.Errorf("stack width = %d, want %d", s.Stack().Width(), tt.wantW)
			}
		})
	}
}

func TestWithBackgroundOpaque(t *testing.T) {
	s := NewSession(WithSize(2, 2), WithBackground(Red.WithAlpha(3)))
	if got := s.Composite().Pixel(0, 0); got != Red {
		t.Errorf("background = %v, want opaque red", got)
	}
}

func TestWithHistoryCapacity(t *testing.T) {
	if got := NewSession(WithHistoryCapacity(5)).History().Capacity(); got != 5 {
		t.Errorf("Capacity() = %d, want 5", got)
	}
	if got := NewSession(WithHistoryCapacity(-3)).History().Capacity(); got != DefaultHistoryCapacity {
		t.Errorf("Capacity() = %d, want %d", got, DefaultHistoryCapacity)
	}
}

func TestWithRecorder(t *testing.T) {
	s := NewSession(WithRecorder(record.Config{FPS: 30, Encoder: "gif"}))
	if s.Recorder().FPS() != 30 || s.Recorder().Capacity() != 30*record.WindowSeconds {
		t.Errorf("FPS=%d Capacity=%d", s.Recorder().FPS(), s.Recorder().Capacity())
	}
}

func TestWithRandSourceReproducible(t *testing.T) {
	stroke := func() *Pixmap {
		s := NewSession(WithSize(40, 40), WithRandSource(rand.NewPCG(5, 6)))
		s.SetBrush(BrushState{Color: Black, Size: 8, Opacity: 255, Type: BrushScatter})
		s.PointerDown(5, 5)
		s.PointerMove(35, 30)
		s.PointerUp()
		return s.Composite()
	}
	if !stroke().Equal(stroke()) {
		t.Error("seeded scatter strokes differ")
	}
}

func TestWithSeedReproducible(t *testing.T) {
	scatter := BrushState{Color: Blue, Size: 8, Opacity: 255, Type: BrushScatter}
	paint := func(seed uint64) *Pixmap {
		s := NewSession(WithSize(32, 32), WithSeed(seed))
		s.SetBrush(scatter)
		s.PointerDown(4, 16)
		s.PointerMove(28, 16)
		s.PointerUp()
		return s.Composite()
	}
	if !paint(7).Equal(paint(7)) {
		t.Error("same seed produced different scatter strokes")
	}
	if paint(7).Equal(paint(8)) {
		t.Error("different seeds produced identical scatter strokes")
	}
}
