package palette

import (
	"fmt"
	"strings"
)

// SymmetryMode selects across which canvas axes strokes are mirrored.
type SymmetryMode uint8

const (
	SymmetryNone       SymmetryMode = iota
	SymmetryHorizontal              // mirror across the vertical centre line
	SymmetryVertical                // mirror across the horizontal centre line
	SymmetryBoth                    // both axes, four points per input
)

// String returns the lower-case mode name.
func (m SymmetryMode) String() string {
	switch m {
	case SymmetryNone:
		return "none"
	case SymmetryHorizontal:
		return "horizontal"
	case SymmetryVertical:
		return "vertical"
	case SymmetryBoth:
		return "both"
	default:
		return fmt.Sprintf("SymmetryMode(%d)", uint8(m))
	}
}

// ParseSymmetryMode parses a mode name as produced by String.
func ParseSymmetryMode(s string) (SymmetryMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return SymmetryNone, nil
	case "horizontal":
		return SymmetryHorizontal, nil
	case "vertical":
		return SymmetryVertical, nil
	case "both":
		return SymmetryBoth, nil
	}
	return SymmetryNone, fmt.Errorf("%w: %q", ErrUnknownSymmetry, s)
}

// Mirror expands p into the points painted for mode around center, in the
// order original, x-reflection, y-reflection, xy-reflection. Points are
// not deduplicated.
func Mirror(p Point, mode SymmetryMode, center Point) []Point {
	return AppendMirror(make([]Point, 0, 4), p, mode, center)
}

// AppendMirror is Mirror appending to dst.
func AppendMirror(dst []Point, p Point, mode SymmetryMode, center Point) []Point {
	dst = append(dst, p)
	rx := 2*center.X - p.X
	ry := 2*center.Y - p.Y
	switch mode {
	case SymmetryHorizontal:
		dst = append(dst, Point{X: rx, Y: p.Y})
	case SymmetryVertical:
		dst = append(dst, Point{X: p.X, Y: ry})
	case SymmetryBoth:
		dst = append(dst,
			Point{X: rx, Y: p.Y},
			Point{X: p.X, Y: ry},
			Point{X: rx, Y: ry},
		)
	}
	return dst
}
