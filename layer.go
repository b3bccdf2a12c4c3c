package palette

import (
	"fmt"
	"strconv"
)

// LayerID identifies a layer for the lifetime of its stack. IDs are never
// reused, so a stale ID cannot alias a newer layer.
type LayerID uint64

// Layer is a named transparent raster combined with the other layers of a
// LayerStack via alpha blending.
//
// The layer exclusively owns its pixmap. History snapshots hold copies,
// never references, so painting after a snapshot cannot alter history.
type Layer struct {
	id      LayerID
	name    string
	pixmap  *Pixmap
	visible bool
	locked  bool
}

// ID returns the layer's stable identity.
func (l *Layer) ID() LayerID { return l.id }

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Pixmap returns the layer's pixel buffer.
func (l *Layer) Pixmap() *Pixmap { return l.pixmap }

// Visible reports whether the layer takes part in compositing.
func (l *Layer) Visible() bool { return l.visible }

// Locked reports whether strokes are refused on this layer.
func (l *Layer) Locked() bool { return l.locked }

// LayerStack is an ordered collection of layers, bottom to top.
//
// The stack always holds at least one layer. Exactly one layer is the active
// stamping target; it is tracked as an index into the stack, never as a
// second owner of the layer, and defaults to the top layer.
//
// Thread safety: LayerStack is not safe for concurrent access.
type LayerStack struct {
	width, height int
	layers        []*Layer
	active        int // -1 selects the top layer
	nextID        LayerID
}

// NewLayerStack creates a stack of width x height layers holding a single
// transparent "Layer 1".
func NewLayerStack(width, height int) *LayerStack {
	s := &LayerStack{
		width:  width,
		height: height,
		layers: make([]*Layer, 0, 4),
		active: -1,
	}
	s.AddLayer("")
	return s
}

// Width returns the canvas width shared by all layers.
func (s *LayerStack) Width() int { return s.width }

// Height returns the canvas height shared by all layers.
func (s *LayerStack) Height() int { return s.height }

// Len returns the number of layers.
func (s *LayerStack) Len() int { return len(s.layers) }

// Layer returns the layer at index i (0 is the bottom), or nil.
func (s *LayerStack) Layer(i int) *Layer {
	if i < 0 || i >= len(s.layers) {
		return nil
	}
	return s.layers[i]
}

// Layers returns the layers bottom to top. The slice is a copy; the layers
// are shared.
func (s *LayerStack) Layers() []*Layer {
	out := make([]*Layer, len(s.layers))
	copy(out, s.layers)
	return out
}

// IndexOf returns the stack index of the layer with the given ID, or -1.
func (s *LayerStack) IndexOf(id LayerID) int {
	for i, l := range s.layers {
		if l.id == id {
			return i
		}
	}
	return -1
}

// AddLayer appends a new transparent layer on top and makes it active.
// An empty name becomes "Layer N" where N is the new stack length.
func (s *LayerStack) AddLayer(name string) *Layer {
	if name == "" {
		name = "Layer " + strconv.Itoa(len(s.layers)+1)
	}
	s.nextID++
	l := &Layer{
		id:      s.nextID,
		name:    name,
		pixmap:  NewPixmap(s.width, s.height),
		visible: true,
	}
	s.layers = append(s.layers, l)
	s.active = len(s.layers) - 1
	return l
}

// DeleteLayer removes the layer at index and re-selects the top layer.
// Deleting the only layer is refused with ErrLastLayer.
func (s *LayerStack) DeleteLayer(index int) error {
	if len(s.layers) == 1 {
		return ErrLastLayer
	}
	if index < 0 || index >= len(s.layers) {
		return fmt.Errorf("%w: %d", ErrLayerIndex, index)
	}
	copy(s.layers[index:], s.layers[index+1:])
	s.layers[len(s.layers)-1] = nil
	s.layers = s.layers[:len(s.layers)-1]
	s.active = len(s.layers) - 1
	return nil
}

// Reorder replaces the stack order with order, given bottom to top as layer
// identities. order must be a permutation of the current layers. The active
// layer keeps its identity.
func (s *LayerStack) Reorder(order []LayerID) error {
	if len(order) != len(s.layers) {
		return fmt.Errorf("%w: got %d ids for %d layers", ErrInvalidOrder, len(order), len(s.layers))
	}
	byID := make(map[LayerID]*Layer, len(s.layers))
	for _, l := range s.layers {
		byID[l.id] = l
	}
	activeID := s.Active().id

	next := make([]*Layer, len(order))
	for i, id := range order {
		l, ok := byID[id]
		if !ok {
			return fmt.Errorf("%w: unknown or repeated id %d", ErrInvalidOrder, id)
		}
		delete(byID, id)
		next[i] = l
	}

	s.layers = next
	if s.active >= 0 {
		s.active = s.IndexOf(activeID)
	}
	return nil
}

// Select makes the layer at index the active stamping target.
func (s *LayerStack) Select(index int) error {
	if index < 0 || index >= len(s.layers) {
		return fmt.Errorf("%w: %d", ErrLayerIndex, index)
	}
	s.active = index
	return nil
}

// Active returns the active layer. When no layer was selected the top layer
// is active.
func (s *LayerStack) Active() *Layer {
	return s.layers[s.ActiveIndex()]
}

// ActiveIndex returns the stack index of the active layer.
func (s *LayerStack) ActiveIndex() int {
	if s.active < 0 || s.active >= len(s.layers) {
		return len(s.layers) - 1
	}
	return s.active
}

// SetVisible shows or hides the layer at index.
func (s *LayerStack) SetVisible(index int, visible bool) error {
	l := s.Layer(index)
	if l == nil {
		return fmt.Errorf("%w: %d", ErrLayerIndex, index)
	}
	l.visible = visible
	return nil
}

// SetLocked locks or unlocks the layer at index.
func (s *LayerStack) SetLocked(index int, locked bool) error {
	l := s.Layer(index)
	if l == nil {
		return fmt.Errorf("%w: %d", ErrLayerIndex, index)
	}
	l.locked = locked
	return nil
}

// Reset drops every layer and starts over with a single "Layer 1".
func (s *LayerStack) Reset() {
	clear(s.layers)
	s.layers = s.layers[:0]
	s.active = -1
	s.AddLayer("")
}

// Composite returns a fresh raster: background (made opaque) with every
// visible layer drawn over it bottom to top. Hidden layers are skipped.
func (s *LayerStack) Composite(background Color) *Pixmap {
	out := NewPixmap(s.width, s.height)
	s.CompositeInto(out, background)
	return out
}

// CompositeInto is Composite writing into an existing pixmap of the stack's
// size.
func (s *LayerStack) CompositeInto(dst *Pixmap, background Color) {
	dst.Clear(background.WithAlpha(255))
	for _, l := range s.layers {
		if l.visible {
			dst.Draw(l.pixmap)
		}
	}
}
