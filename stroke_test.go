package palette

import (
	"image"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSamplePoints(t *testing.T) {
	tests := []struct {
		name       string
		start, end Point
		want       []Point
	}{
		{"same point", Pt(5, 5), Pt(5, 5), []Point{{5, 5}, {5, 5}}},
		{"horizontal", Pt(0, 0), Pt(3, 0), []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}},
		{"reverse diagonal", Pt(2, 2), Pt(0, 0), []Point{{2, 2}, {1, 1}, {0, 0}}},
		{"shallow", Pt(0, 0), Pt(4, 1), []Point{{0, 0}, {1, 0}, {2, 1}, {3, 1}, {4, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SamplePoints(tt.start, tt.end)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SamplePoints(%v, %v) mismatch (-want +got):\n%s", tt.start, tt.end, diff)
			}
		})
	}
}

func TestSamplePointsNoGaps(t *testing.T) {
	pairs := [][2]Point{
		{Pt(0, 0), Pt(10, 3)},
		{Pt(-5, 40), Pt(17, -9)},
		{Pt(799, 0), Pt(0, 599)},
	}
	for _, pr := range pairs {
		start, end := pr[0], pr[1]
		pts := SamplePoints(start, end)
		n := max(abs(end.X-start.X), abs(end.Y-start.Y), 1)
		if len(pts) != n+1 {
			t.Errorf("%v->%v: %d points, want %d", start, end, len(pts), n+1)
		}
		if pts[0] != start || pts[len(pts)-1] != end {
			t.Errorf("%v->%v: endpoints %v, %v", start, end, pts[0], pts[len(pts)-1])
		}
		for i := 1; i < len(pts); i++ {
			d := pts[i].Sub(pts[i-1])
			if abs(d.X) > 1 || abs(d.Y) > 1 {
				t.Errorf("%v->%v: gap between %v and %v", start, end, pts[i-1], pts[i])
			}
		}
	}
}

func TestAppendSamplePointsReusesBuffer(t *testing.T) {
	buf := make([]Point, 0, 16)
	got := AppendSamplePoints(buf, Pt(0, 0), Pt(2, 0))
	if len(got) != 3 || &got[0] != &buf[:1][0] {
		t.Errorf("AppendSamplePoints did not append into the given buffer")
	}
}

func TestClipSegment(t *testing.T) {
	r := image.Rect(0, 0, 10, 10)
	tests := []struct {
		name       string
		a, b       Point
		wantA      Point
		wantB      Point
		wantInside bool
	}{
		{"inside", Pt(1, 1), Pt(3, 4), Pt(1, 1), Pt(3, 4), true},
		{"exits right", Pt(5, 5), Pt(1_000_000_000, 5), Pt(5, 5), Pt(9, 5), true},
		{"crosses", Pt(-10, 5), Pt(20, 5), Pt(0, 5), Pt(9, 5), true},
		{"far diagonal", Pt(0, 0), Pt(1_000_000_000, 1_000_000_000), Pt(0, 0), Pt(9, 9), true},
		{"misses left", Pt(-5, -5), Pt(-1, 20), Point{}, Point{}, false},
		{"parallel outside", Pt(20, 0), Pt(20, 5), Point{}, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := ClipSegment(tt.a, tt.b, r)
			if ok != tt.wantInside {
				t.Fatalf("ClipSegment(%v, %v) ok = %v, want %v", tt.a, tt.b, ok, tt.wantInside)
			}
			if ok && (a != tt.wantA || b != tt.wantB) {
				t.Errorf("ClipSegment(%v, %v) = %v, %v, want %v, %v", tt.a, tt.b, a, b, tt.wantA, tt.wantB)
			}
		})
	}
	if _, _, ok := ClipSegment(Pt(0, 0), Pt(1, 1), image.Rectangle{}); ok {
		t.Error("ClipSegment on an empty rectangle reported a hit")
	}
}

func TestDrawStrokeContinuous(t *testing.T) {
	e := NewBrushEngine(rand.NewPCG(1, 1))
	pm := NewPixmap(20, 5)
	e.DrawStroke(Pt(1, 2), Pt(18, 2), BrushState{Color: Red, Size: 1, Opacity: 255}, pm)

	for x := 1; x <= 18; x++ {
		if got := pm.Pixel(x, 2); got != Red {
			t.Errorf("Pixel(%d, 2) = %v, want red", x, got)
		}
	}
	if n := countPainted(pm); n != 18 {
		t.Errorf("painted %d pixels, want 18", n)
	}
}
