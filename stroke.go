package palette

import (
	"image"
	"math"
)

// SamplePoints interpolates the pointer movement from start to end.
//
// With n = max(|dx|, |dy|, 1) it returns n+1 points
// round(start + (end-start)*i/n) for i in 0..n. The first point is start, the
// last is end, and consecutive points are at most one pixel apart along the
// dominant axis, so strokes have no gaps whatever the pointer sampling rate.
func SamplePoints(start, end Point) []Point {
	return AppendSamplePoints(nil, start, end)
}

// AppendSamplePoints is SamplePoints appending to dst.
func AppendSamplePoints(dst []Point, start, end Point) []Point {
	dx := end.X - start.X
	dy := end.Y - start.Y
	n := max(abs(dx), abs(dy), 1)

	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		dst = append(dst, Point{
			X: int(math.Round(float64(start.X) + float64(dx)*t)),
			Y: int(math.Round(float64(start.Y) + float64(dy)*t)),
		})
	}
	return dst
}

// ClipSegment clips the segment from a to b to r, whose Max edges are
// exclusive. Clipped endpoints are rounded to the nearest pixel. It reports
// false when the segment misses r.
func ClipSegment(a, b Point, r image.Rectangle) (Point, Point, bool) {
	if r.Empty() {
		return a, b, false
	}
	x0, y0 := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	t0, t1 := 0.0, 1.0

	// Liang-Barsky: each pair is (p, q) for one edge.
	edges := [4][2]float64{
		{-dx, x0 - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - x0},
		{-dy, y0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = max(t0, t)
		} else {
			t1 = min(t1, t)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	at := func(t float64) Point {
		return Point{X: int(math.Round(x0 + dx*t)), Y: int(math.Round(y0 + dy*t))}
	}
	return at(t0), at(t1), true
}

// DrawStroke stamps b at every point sampled between start and end.
func (e *BrushEngine) DrawStroke(start, end Point, b BrushState, dst *Pixmap) {
	for _, p := range SamplePoints(start, end) {
		e.Stamp(p, b, dst)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
