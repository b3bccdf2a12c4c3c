package palette

import "github.com/gogpu/palette/record"

// Command is an input event or configuration change forwarded by the host
// shell. This is a sealed interface: only types in this package implement
// it. Apply commands with Session.Dispatch.
type Command interface {
	// Name returns the command's event name, e.g. "pointer_down".
	Name() string

	apply(s *Session) error
}

// PointerDown begins a stroke.
type PointerDown struct{ X, Y int }

// PointerMove extends the current stroke.
type PointerMove struct{ X, Y int }

// PointerUp ends the current stroke.
type PointerUp struct{}

// SetBrush replaces the brush.
type SetBrush struct{ Brush BrushState }

// SetSymmetry sets the mirror mode.
type SetSymmetry struct{ Mode SymmetryMode }

// AddLayer adds a layer on top. An empty Label is generated.
type AddLayer struct{ Label string }

// DeleteLayer removes the layer at Index.
type DeleteLayer struct{ Index int }

// ReorderLayers sets the stack order, bottom to top.
type ReorderLayers struct{ Order []LayerID }

// SelectLayer makes the layer at Index active.
type SelectLayer struct{ Index int }

// SetLayerVisible shows or hides the layer at Index.
type SetLayerVisible struct {
	Index   int
	Visible bool
}

// SetLayerLocked locks or unlocks the layer at Index.
type SetLayerLocked struct {
	Index  int
	Locked bool
}

// Undo reverts the last stroke.
type Undo struct{}

// Redo re-applies the last undone stroke.
type Redo struct{}

// NewCanvas resets the session to a single empty layer.
type NewCanvas struct{}

// ExportPNG flattens and writes the canvas to Path.
type ExportPNG struct{ Path string }

// StartRecording begins frame capture.
type StartRecording struct{ Scope record.Scope }

// StopRecording ends frame capture and encodes to Path.
type StopRecording struct{ Path string }

func (PointerDown) Name() string     { return "pointer_down" }
func (PointerMove) Name() string     { return "pointer_move" }
func (PointerUp) Name() string       { return "pointer_up" }
func (SetBrush) Name() string        { return "set_brush" }
func (SetSymmetry) Name() string     { return "set_symmetry" }
func (AddLayer) Name() string        { return "add_layer" }
func (DeleteLayer) Name() string     { return "delete_layer" }
func (ReorderLayers) Name() string   { return "reorder_layers" }
func (SelectLayer) Name() string     { return "select_active_layer" }
func (SetLayerVisible) Name() string { return "set_layer_visible" }
func (SetLayerLocked) Name() string  { return "set_layer_locked" }
func (Undo) Name() string            { return "undo" }
func (Redo) Name() string            { return "redo" }
func (NewCanvas) Name() string       { return "new_canvas" }
func (ExportPNG) Name() string       { return "export_png" }
func (StartRecording) Name() string  { return "start_recording" }
func (StopRecording) Name() string   { return "stop_recording" }

func (c PointerDown) apply(s *Session) error { return s.PointerDown(c.X, c.Y) }

func (c PointerMove) apply(s *Session) error {
	s.PointerMove(c.X, c.Y)
	return nil
}

func (PointerUp) apply(s *Session) error {
	s.PointerUp()
	return nil
}

func (c SetBrush) apply(s *Session) error {
	s.SetBrush(c.Brush)
	return nil
}

func (c SetSymmetry) apply(s *Session) error {
	s.SetSymmetry(c.Mode)
	return nil
}

func (c AddLayer) apply(s *Session) error {
	s.AddLayer(c.Label)
	return nil
}

func (c DeleteLayer) apply(s *Session) error     { return s.DeleteLayer(c.Index) }
func (c ReorderLayers) apply(s *Session) error   { return s.ReorderLayers(c.Order) }
func (c SelectLayer) apply(s *Session) error     { return s.SelectLayer(c.Index) }
func (c SetLayerVisible) apply(s *Session) error { return s.SetLayerVisible(c.Index, c.Visible) }
func (c SetLayerLocked) apply(s *Session) error  { return s.SetLayerLocked(c.Index, c.Locked) }
func (c ExportPNG) apply(s *Session) error       { return s.ExportPNG(c.Path) }
func (c StopRecording) apply(s *Session) error   { return s.StopRecording(c.Path) }

func (Undo) apply(s *Session) error {
	s.Undo()
	return nil
}

func (Redo) apply(s *Session) error {
	s.Redo()
	return nil
}

func (NewCanvas) apply(s *Session) error {
	s.NewCanvas()
	return nil
}

func (c StartRecording) apply(s *Session) error {
	s.StartRecording(c.Scope)
	return nil
}
