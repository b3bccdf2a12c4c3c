// Package script reads painting sessions written as YAML event lists and
// applies them to a palette.Session.
//
// A script looks like:
//
//	canvas:
//	  width: 320
//	  height: 240
//	events:
//	  - op: set_brush
//	    color: "#ff0000"
//	    size: 6
//	  - op: set_symmetry
//	    mode: both
//	  - op: stroke
//	    points: [[10, 10], [120, 80], [200, 40]]
//	  - op: export_png
//	    path: out.png
//
// Every event maps onto one palette command, except stroke, which expands
// to pointer_down, one pointer_move per following point, and pointer_up.
package script

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/palette"
	"github.com/gogpu/palette/record"
)

// Event operations.
const (
	OpPointerDown     = "pointer_down"
	OpPointerMove     = "pointer_move"
	OpPointerUp       = "pointer_up"
	OpStroke          = "stroke"
	OpSetBrush        = "set_brush"
	OpCycleBrush      = "cycle_brush"
	OpSetSymmetry     = "set_symmetry"
	OpAddLayer        = "add_layer"
	OpDeleteLayer     = "delete_layer"
	OpReorderLayers   = "reorder_layers"
	OpSelectLayer     = "select_active_layer"
	OpSetLayerVisible = "set_layer_visible"
	OpSetLayerLocked  = "set_layer_locked"
	OpUndo            = "undo"
	OpRedo            = "redo"
	OpNewCanvas       = "new_canvas"
	OpExportPNG       = "export_png"
	OpStartRecording  = "start_recording"
	OpStopRecording   = "stop_recording"
)

// ErrUnknownOp is returned for an event whose op is not recognized.
var ErrUnknownOp = errors.New("script: unknown op")

// Canvas is the optional canvas size header of a script.
type Canvas struct {
	Width  int `yaml:"width" json:"width,omitempty"`
	Height int `yaml:"height" json:"height,omitempty"`
}

// Script is a decoded event script.
type Script struct {
	Canvas Canvas  `yaml:"canvas"`
	Events []Event `yaml:"events"`

	// Seed seeds scatter brushes. Zero leaves the session's random source
	// seeded from the clock.
	Seed uint64 `yaml:"seed,omitempty"`
}

// Event is one scripted input event. Only the fields relevant to Op are
// read. Pointer fields are optional overrides: set_brush leaves unset
// fields at their current value.
type Event struct {
	Op string `yaml:"op" json:"op"`

	X      int      `yaml:"x,omitempty" json:"x,omitempty"`
	Y      int      `yaml:"y,omitempty" json:"y,omitempty"`
	Points [][2]int `yaml:"points,omitempty" json:"points,omitempty"`

	Color   string `yaml:"color,omitempty" json:"color,omitempty"`
	Size    *int   `yaml:"size,omitempty" json:"size,omitempty"`
	Opacity *int   `yaml:"opacity,omitempty" json:"opacity,omitempty"`
	Brush   string `yaml:"brush,omitempty" json:"brush,omitempty"`
	Mode    string `yaml:"mode,omitempty" json:"mode,omitempty"`

	Name    string `yaml:"name,omitempty" json:"name,omitempty"`
	Index   int    `yaml:"index,omitempty" json:"index,omitempty"`
	Order   []int  `yaml:"order,omitempty" json:"order,omitempty"`
	Visible *bool  `yaml:"visible,omitempty" json:"visible,omitempty"`
	Locked  *bool  `yaml:"locked,omitempty" json:"locked,omitempty"`

	Path  string `yaml:"path,omitempty" json:"path,omitempty"`
	Scope string `yaml:"scope,omitempty" json:"scope,omitempty"`
}

// Parse decodes a script from r. Unknown fields are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	for i, ev := range s.Events {
		if err := ev.validate(); err != nil {
			return nil, fmt.Errorf("script: event %d: %w", i, err)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("script: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Options returns the session options implied by the script header.
func (s *Script) Options() []palette.Option {
	var opts []palette.Option
	if s.Canvas.Width != 0 || s.Canvas.Height != 0 {
		opts = append(opts, palette.WithSize(s.Canvas.Width, s.Canvas.Height))
	}
	if s.Seed != 0 {
		opts = append(opts, palette.WithSeed(s.Seed))
	}
	return opts
}

// Replayable reports whether e only changes session state. Exports and
// recordings write files; they are skipped when a session is rebuilt.
func (e Event) Replayable() bool {
	switch e.Op {
	case OpExportPNG, OpStartRecording, OpStopRecording:
		return false
	}
	return true
}

func (e Event) validate() error {
	switch e.Op {
	case OpPointerDown, OpPointerMove, OpPointerUp, OpCycleBrush,
		OpAddLayer, OpDeleteLayer, OpReorderLayers, OpSelectLayer,
		OpUndo, OpRedo, OpNewCanvas, OpExportPNG, OpStopRecording:
		return nil
	case OpStroke:
		if len(e.Points) == 0 {
			return errors.New("stroke needs at least one point")
		}
	case OpSetBrush:
		if e.Color != "" {
			if _, err := palette.ParseHex(e.Color); err != nil {
				return err
			}
		}
		if e.Size != nil && (*e.Size < 1 || *e.Size > palette.MaxBrushSize) {
			return fmt.Errorf("size %d out of range 1-%d", *e.Size, palette.MaxBrushSize)
		}
		if e.Opacity != nil && (*e.Opacity < 0 || *e.Opacity > 255) {
			return fmt.Errorf("opacity %d out of range 0-255", *e.Opacity)
		}
		if _, err := palette.ParseBrushType(e.Brush); err != nil {
			return err
		}
	case OpSetSymmetry:
		if _, err := palette.ParseSymmetryMode(e.Mode); err != nil {
			return err
		}
	case OpSetLayerVisible:
		if e.Visible == nil {
			return errors.New("set_layer_visible needs visible")
		}
	case OpSetLayerLocked:
		if e.Locked == nil {
			return errors.New("set_layer_locked needs locked")
		}
	case OpStartRecording:
		if _, err := record.ParseScope(e.Scope); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownOp, e.Op)
	}
	return nil
}

// Commands converts e into the palette commands it stands for, resolving
// relative values (partial brush updates, reorder by index) against the
// current state of s.
func (e Event) Commands(s *palette.Session) ([]palette.Command, error) {
	if err := e.validate(); err != nil {
		return nil, err
	}
	switch e.Op {
	case OpPointerDown:
		return one(palette.PointerDown{X: e.X, Y: e.Y}), nil
	case OpPointerMove:
		return one(palette.PointerMove{X: e.X, Y: e.Y}), nil
	case OpPointerUp:
		return one(palette.PointerUp{}), nil
	case OpStroke:
		cmds := make([]palette.Command, 0, len(e.Points)+2)
		first := e.Points[0]
		cmds = append(cmds, palette.PointerDown{X: first[0], Y: first[1]})
		if len(e.Points) == 1 {
			cmds = append(cmds, palette.PointerMove{X: first[0], Y: first[1]})
		}
		for _, p := range e.Points[1:] {
			cmds = append(cmds, palette.PointerMove{X: p[0], Y: p[1]})
		}
		return append(cmds, palette.PointerUp{}), nil
	case OpSetBrush:
		return one(palette.SetBrush{Brush: e.brush(s.Brush())}), nil
	case OpCycleBrush:
		b := s.Brush()
		b.Type = b.Type.Next()
		return one(palette.SetBrush{Brush: b}), nil
	case OpSetSymmetry:
		m, _ := palette.ParseSymmetryMode(e.Mode)
		return one(palette.SetSymmetry{Mode: m}), nil
	case OpAddLayer:
		return one(palette.AddLayer{Label: e.Name}), nil
	case OpDeleteLayer:
		return one(palette.DeleteLayer{Index: e.Index}), nil
	case OpReorderLayers:
		return one(palette.ReorderLayers{Order: layerIDs(s.Stack(), e.Order)}), nil
	case OpSelectLayer:
		return one(palette.SelectLayer{Index: e.Index}), nil
	case OpSetLayerVisible:
		return one(palette.SetLayerVisible{Index: e.Index, Visible: *e.Visible}), nil
	case OpSetLayerLocked:
		return one(palette.SetLayerLocked{Index: e.Index, Locked: *e.Locked}), nil
	case OpUndo:
		return one(palette.Undo{}), nil
	case OpRedo:
		return one(palette.Redo{}), nil
	case OpNewCanvas:
		return one(palette.NewCanvas{}), nil
	case OpExportPNG:
		return one(palette.ExportPNG{Path: e.Path}), nil
	case OpStartRecording:
		scope, _ := record.ParseScope(e.Scope)
		return one(palette.StartRecording{Scope: scope}), nil
	case OpStopRecording:
		return one(palette.StopRecording{Path: e.Path}), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownOp, e.Op)
}

// brush applies the set fields of e over cur.
func (e Event) brush(cur palette.BrushState) palette.BrushState {
	if e.Color != "" {
		cur.Color = palette.Hex(e.Color)
	}
	if e.Size != nil {
		cur.Size = *e.Size
	}
	if e.Opacity != nil {
		cur.Opacity = uint8(*e.Opacity)
	}
	if e.Brush != "" {
		cur.Type, _ = palette.ParseBrushType(e.Brush)
	}
	return cur
}

// layerIDs maps current stack indices to layer identities. Unknown indices
// map to an ID no layer has, so the reorder is refused.
func layerIDs(stack *palette.LayerStack, order []int) []palette.LayerID {
	ids := make([]palette.LayerID, len(order))
	for i, idx := range order {
		if l := stack.Layer(idx); l != nil {
			ids[i] = l.ID()
		}
	}
	return ids
}

func one(c palette.Command) []palette.Command { return []palette.Command{c} }

// Apply dispatches every event of events to s in order. It stops at the
// first error; refusals are not errors.
func Apply(s *palette.Session, events []Event) error {
	for i, ev := range events {
		if err := ApplyEvent(s, ev); err != nil {
			return fmt.Errorf("script: event %d (%s): %w", i, ev.Op, err)
		}
	}
	return nil
}

// ApplyEvent dispatches a single event to s.
func ApplyEvent(s *palette.Session, ev Event) error {
	cmds, err := ev.Commands(s)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		if err := s.Dispatch(c); err != nil {
			return err
		}
	}
	return nil
}
