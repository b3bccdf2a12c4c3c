package palette

import "errors"

// Errors reported by palette operations.
var (
	// ErrLastLayer is returned when deleting the only remaining layer.
	ErrLastLayer = errors.New("palette: cannot remove last layer")

	// ErrLayerIndex is returned for a layer index outside the stack.
	ErrLayerIndex = errors.New("palette: layer index out of range")

	// ErrInvalidOrder is returned when a reorder is not a permutation of
	// the current layers.
	ErrInvalidOrder = errors.New("palette: order is not a permutation of the layers")

	// ErrLayerLocked is returned when a stroke targets a locked layer.
	ErrLayerLocked = errors.New("palette: active layer is locked")

	// ErrInvalidColor is returned by ParseHex for malformed input.
	ErrInvalidColor = errors.New("palette: invalid color")

	// ErrUnsupportedFormat is returned when an export path has an unknown
	// image extension.
	ErrUnsupportedFormat = errors.New("palette: unsupported image format")

	// ErrUnknownBrush is returned by ParseBrushType for unknown names.
	ErrUnknownBrush = errors.New("palette: unknown brush type")

	// ErrUnknownSymmetry is returned by ParseSymmetryMode for unknown names.
	ErrUnknownSymmetry = errors.New("palette: unknown symmetry mode")
)

// IsRefusal reports whether err is one of the refusals that the session
// ignores instead of surfacing: deleting the last layer, bad indices or
// orders, and strokes on locked layers.
func IsRefusal(err error) bool {
	return errors.Is(err, ErrLastLayer) ||
		errors.Is(err, ErrLayerIndex) ||
		errors.Is(err, ErrInvalidOrder) ||
		errors.Is(err, ErrLayerLocked)
}
