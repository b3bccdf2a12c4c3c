package palette

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/palette/record"

	// Built-in recording encoders.
	_ "github.com/gogpu/palette/record/backends/avi"
	_ "github.com/gogpu/palette/record/backends/gif"
)

// Session is one painting session: the layer stack, its history, the brush
// and symmetry configuration, and the frame recorder.
//
// A Session is driven by the host's input events, either through its methods
// or by dispatching Commands. Every operation runs synchronously on the
// calling goroutine. A Session is not safe for concurrent use; the host
// serializes events.
type Session struct {
	width, height int
	background    Color

	stack    *LayerStack
	history  *History
	engine   *BrushEngine
	recorder *record.Recorder
	log      *slog.Logger

	brush    BrushState
	symmetry SymmetryMode

	drawing bool
	last    Point

	samples  []Point
	mirrored []Point
}

// NewSession creates a session with a single transparent layer.
//
// Example:
//
//	s := palette.NewSession(palette.WithSize(800, 600))
//	s.SetBrush(palette.BrushState{Color: palette.Red, Size: 4, Opacity: 255})
//	s.PointerDown(10, 10)
//	s.PointerMove(200, 120)
//	s.PointerUp()
//	err := s.ExportPNG("out.png")
func NewSession(opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Session{
		width:      o.width,
		height:     o.height,
		background: o.background,
		stack:      NewLayerStack(o.width, o.height),
		history:    NewHistory(o.historyCap),
		engine:     NewBrushEngine(o.randSource),
		recorder:   record.New(o.recorder),
		log:        o.logger,
		brush:      DefaultBrush(),
		symmetry:   SymmetryNone,
	}
}

// logger returns the WithLogger override, or the package logger at the
// time of the call.
func (s *Session) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return Logger()
}

// Width returns the canvas width.
func (s *Session) Width() int { return s.width }

// Height returns the canvas height.
func (s *Session) Height() int { return s.height }

// Center returns the mirror centre (W/2, H/2).
func (s *Session) Center() Point { return Point{X: s.width / 2, Y: s.height / 2} }

// Stack returns the layer stack.
func (s *Session) Stack() *LayerStack { return s.stack }

// History returns the undo manager.
func (s *Session) History() *History { return s.history }

// Recorder returns the frame recorder.
func (s *Session) Recorder() *record.Recorder { return s.recorder }

// Engine returns the brush engine.
func (s *Session) Engine() *BrushEngine { return s.engine }

// Brush returns the current brush.
func (s *Session) Brush() BrushState { return s.brush }

// Symmetry returns the current symmetry mode.
func (s *Session) Symmetry() SymmetryMode { return s.symmetry }

// Drawing reports whether a stroke is in progress.
func (s *Session) Drawing() bool { return s.drawing }

// SetBrush replaces the brush used by subsequent stamps.
func (s *Session) SetBrush(b BrushState) {
	s.brush = b.Normalize()
}

// SetSymmetry sets the mirror mode for subsequent stamps.
func (s *Session) SetSymmetry(m SymmetryMode) {
	s.symmetry = m
}

// PointerDown begins a stroke at (x, y). The whole stack is snapshotted for
// undo before anything is painted. A stroke on a locked layer is refused.
func (s *Session) PointerDown(x, y int) error {
	active := s.stack.Active()
	if active.locked {
		return fmt.Errorf("%w: %q", ErrLayerLocked, active.name)
	}
	s.history.Push(s.stack)
	s.drawing = true
	s.last = Point{X: x, Y: y}
	s.logger().Debug("palette: stroke started", "layer", active.name, "x", x, "y", y,
		"snapshot", s.history.Seq(),
		"brush", s.brush.Type.String(), "symmetry", s.symmetry.String())
	return nil
}

// PointerMove extends the active stroke to (x, y): the movement is sampled
// without gaps, each sample is mirrored, and every mirrored point is
// stamped onto the active layer. Moves outside a stroke are ignored.
//
// Only the part of the movement within the brush's reach of the canvas is
// sampled, so far off-canvas pointer positions cost nothing.
func (s *Session) PointerMove(x, y int) {
	if !s.drawing {
		return
	}
	p := Point{X: x, Y: y}
	dst := s.stack.Active().pixmap
	center := s.Center()

	s.samples = s.samples[:0]
	reach := image.Rect(0, 0, s.width, s.height).Inset(-s.brush.Reach())
	if a, b, ok := ClipSegment(s.last, p, reach); ok {
		s.samples = AppendSamplePoints(s.samples, a, b)
	}
	for _, q := range s.samples {
		s.mirrored = AppendMirror(s.mirrored[:0], q, s.symmetry, center)
		for _, m := range s.mirrored {
			s.engine.Stamp(m, s.brush, dst)
		}
	}
	s.last = p
	s.redraw()
}

// PointerUp ends the active stroke.
func (s *Session) PointerUp() {
	s.drawing = false
}

// redraw is the canvas-mutating redraw hook: while recording it captures
// the canvas or the whole window surface.
func (s *Session) redraw() {
	if !s.recorder.Active() {
		return
	}
	var img image.Image
	if s.recorder.Scope() == record.ScopeWindow {
		img = s.WindowSurface()
	} else {
		img = s.Composite()
	}
	s.recorder.Capture(img)
}

// Composite returns the visible layers flattened onto the session
// background.
func (s *Session) Composite() *Pixmap {
	return s.stack.Composite(s.background)
}

// AddLayer adds a transparent layer on top and makes it active.
func (s *Session) AddLayer(name string) *Layer {
	l := s.stack.AddLayer(name)
	s.logger().Debug("palette: layer added", "name", l.name, "layers", s.stack.Len())
	return l
}

// DeleteLayer removes the layer at index. The last layer cannot be removed.
func (s *Session) DeleteLayer(index int) error {
	return s.stack.DeleteLayer(index)
}

// ReorderLayers sets the stack order, bottom to top.
func (s *Session) ReorderLayers(order []LayerID) error {
	return s.stack.Reorder(order)
}

// SelectLayer selects the active layer.
func (s *Session) SelectLayer(index int) error {
	return s.stack.Select(index)
}

// SetLayerVisible shows or hides a layer.
func (s *Session) SetLayerVisible(index int, visible bool) error {
	return s.stack.SetVisible(index, visible)
}

// SetLayerLocked locks or unlocks a layer.
func (s *Session) SetLayerLocked(index int, locked bool) error {
	return s.stack.SetLocked(index, locked)
}

// Undo reverts the most recent stroke. It reports false when there is
// nothing to undo.
func (s *Session) Undo() bool {
	ok := s.history.Undo(s.stack)
	if !ok {
		s.logger().Debug("palette: nothing to undo")
	}
	return ok
}

// Redo re-applies the most recently undone stroke. It reports false when
// there is nothing to redo.
func (s *Session) Redo() bool {
	ok := s.history.Redo(s.stack)
	if !ok {
		s.logger().Debug("palette: nothing to redo")
	}
	return ok
}

// NewCanvas discards all layers and history and starts over with a single
// empty layer. Brush, symmetry and any running recording are kept.
func (s *Session) NewCanvas() {
	s.drawing = false
	s.stack.Reset()
	s.history.Clear()
	s.logger().Info("palette: new canvas", "width", s.width, "height", s.height)
}

// ExportPNG flattens the visible layers onto white and writes them to path
// in the format implied by its extension. An empty path is a no-op.
func (s *Session) ExportPNG(path string) error {
	if path == "" {
		s.logger().Debug("palette: export skipped, no path")
		return nil
	}
	if err := Export(path, s.stack); err != nil {
		return err
	}
	s.logger().Info("palette: exported", "path", path, "width", s.width, "height", s.height)
	return nil
}

// StartRecording starts capturing frames of the given scope. When no encoder
// is available the recorder stays idle; poll Recording to find out.
func (s *Session) StartRecording(scope record.Scope) {
	s.recorder.Start(scope)
}

// StopRecording ends a recording and encodes it to path. It is a no-op when
// not recording.
func (s *Session) StopRecording(path string) error {
	return s.recorder.Stop(path)
}

// Recording reports whether frames are being captured.
func (s *Session) Recording() bool {
	return s.recorder.Active()
}

// Dispatch applies a command. Refusals (deleting the last layer, bad
// indices, strokes on locked layers) are logged and swallowed; only real
// failures such as I/O errors are returned.
func (s *Session) Dispatch(cmd Command) error {
	err := cmd.apply(s)
	if err != nil && IsRefusal(err) {
		s.logger().Debug("palette: command refused", "command", cmd.Name(), "err", err)
		return nil
	}
	return err
}
