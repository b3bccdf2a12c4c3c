package palette

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"
)

// BrushType selects the shape algorithm used by BrushEngine.Stamp.
type BrushType uint8

const (
	// BrushRound paints a hard-edged disc at constant opacity.
	BrushRound BrushType = iota
	// BrushSoft paints a disc whose opacity falls off linearly to zero at
	// the brush radius.
	BrushSoft
	// BrushScatter places one randomly offset dot per stamp.
	BrushScatter
)

// String returns the lower-case brush name.
func (t BrushType) String() string {
	switch t {
	case BrushRound:
		return "round"
	case BrushSoft:
		return "soft"
	case BrushScatter:
		return "scatter"
	default:
		return fmt.Sprintf("BrushType(%d)", uint8(t))
	}
}

// Next cycles round -> soft -> scatter -> round.
func (t BrushType) Next() BrushType {
	if t >= BrushScatter {
		return BrushRound
	}
	return t + 1
}

// ParseBrushType parses a brush name as produced by String.
func ParseBrushType(s string) (BrushType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "round", "":
		return BrushRound, nil
	case "soft":
		return BrushSoft, nil
	case "scatter":
		return BrushScatter, nil
	}
	return BrushRound, fmt.Errorf("%w: %q", ErrUnknownBrush, s)
}

// BrushState is the brush configuration read by the engine. It is a plain
// value; the session owns the current one and passes it to every stamp.
type BrushState struct {
	// Color is the paint color. Its alpha is ignored: Opacity controls
	// coverage.
	Color Color
	// Size is the brush diameter for round brushes and the radius for soft
	// and scatter brushes. Values are clamped to [1, MaxBrushSize].
	Size int
	// Opacity is the alpha written at full strength, 0-255.
	Opacity uint8
	// Type selects the shape algorithm.
	Type BrushType
}

// DefaultBrush returns a black round brush of size 12 at full opacity.
func DefaultBrush() BrushState {
	return BrushState{Color: Black, Size: 12, Opacity: 255, Type: BrushRound}
}

// MaxBrushSize is the largest brush size a stamp honours.
const MaxBrushSize = 50

// Normalize returns b with Size clamped to [1, MaxBrushSize].
func (b BrushState) Normalize() BrushState {
	b.Size = min(max(b.Size, 1), MaxBrushSize)
	return b
}

// Reach returns how far from its centre a stamp of b can paint.
func (b BrushState) Reach() int {
	return b.Normalize().Size
}

// BrushEngine stamps brush shapes onto pixmaps.
//
// The engine holds the random source used by scatter brushes so that tests
// and replays can seed it. It is not safe for concurrent use.
type BrushEngine struct {
	rng *rand.Rand
}

// NewBrushEngine creates an engine drawing scatter offsets from src.
// A nil src is seeded from the clock.
func NewBrushEngine(src rand.Source) *BrushEngine {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	return &BrushEngine{rng: rand.New(src)}
}

// Stamp applies one brush dab centred on p to dst. Pixels falling outside
// dst are clipped.
func (e *BrushEngine) Stamp(p Point, b BrushState, dst *Pixmap) {
	b = b.Normalize()
	switch b.Type {
	case BrushSoft:
		stampSoft(p, b, dst)
	case BrushScatter:
		e.stampScatter(p, b, dst)
	default:
		stampRound(p, b, dst)
	}
}

// stampRound fills a disc of diameter Size with constant alpha. Size 1 is
// exactly the centre pixel.
func stampRound(p Point, b BrushState, dst *Pixmap) {
	c := b.Color.WithAlpha(b.Opacity)
	r := float64(b.Size) / 2
	r2 := r * r
	ext := int(math.Ceil(r))
	for dy := -ext; dy <= ext; dy++ {
		for dx := -ext; dx <= ext; dx++ {
			if float64(dx*dx+dy*dy) <= r2 {
				dst.Blend(p.X+dx, p.Y+dy, c)
			}
		}
	}
}

// stampSoft writes every offset in [-Size, Size)^2 within Size of the centre
// at opacity*(1-d/Size).
func stampSoft(p Point, b BrushState, dst *Pixmap) {
	size := float64(b.Size)
	for dx := -b.Size; dx < b.Size; dx++ {
		for dy := -b.Size; dy < b.Size; dy++ {
			d := math.Sqrt(float64(dx*dx + dy*dy))
			if d > size {
				continue
			}
			a := SoftAlpha(b.Opacity, d, size)
			if a == 0 {
				continue
			}
			dst.Blend(p.X+dx, p.Y+dy, b.Color.WithAlpha(a))
		}
	}
}

// SoftAlpha is the soft brush falloff: opacity at the centre, linearly
// decreasing to zero at distance size, truncated to an integer.
func SoftAlpha(opacity uint8, d, size float64) uint8 {
	if size <= 0 || d >= size {
		return 0
	}
	if d <= 0 {
		return opacity
	}
	return uint8(float64(opacity) * (1 - d/size))
}

// stampScatter places one dot at p plus an offset drawn uniformly from
// [-Size, Size]^2.
func (e *BrushEngine) stampScatter(p Point, b BrushState, dst *Pixmap) {
	off := e.ScatterOffset(b.Size)
	dst.Blend(p.X+off.X, p.Y+off.Y, b.Color.WithAlpha(b.Opacity))
}

// ScatterOffset draws one scatter offset for the given size.
func (e *BrushEngine) ScatterOffset(size int) Point {
	if size < 1 {
		size = 1
	}
	n := 2*size + 1
	return Point{X: e.rng.IntN(n) - size, Y: e.rng.IntN(n) - size}
}
