// Package palette provides a layered raster painting engine for Go.
//
// # Overview
//
// palette keeps an ordered stack of fixed-size transparent layers, stamps
// brush dabs onto the active layer along pointer movements (optionally
// mirrored about the canvas centre), snapshots the whole stack for
// stroke-granular undo and redo, flattens the visible layers for export, and
// samples the composited canvas into a rolling frame window that is encoded
// to a video file when recording stops.
//
// # Quick Start
//
//	import "github.com/gogpu/palette"
//
//	s := palette.NewSession(palette.WithSize(800, 600))
//	s.SetBrush(palette.BrushState{Color: palette.Red, Size: 8, Opacity: 255})
//	s.SetSymmetry(palette.SymmetryBoth)
//
//	s.PointerDown(100, 100)
//	s.PointerMove(300, 180)
//	s.PointerUp()
//
//	s.Undo()
//	s.Redo()
//
//	if err := s.ExportPNG("out.png"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Pixels
//
// Pixmap stores premultiplied RGBA with 8 bits per channel, the same layout
// as image.RGBA. Colors passed to the API are straight (non-premultiplied)
// Color values. All compositing is Porter-Duff source-over with exact
// rounding.
//
// # Brushes
//
// Three brush types are provided:
//   - BrushRound: a disc of diameter Size at constant opacity
//   - BrushSoft: radius Size with alpha falling off linearly to the edge
//   - BrushScatter: one dot per sample, offset randomly within Size
//
// Movements are sampled so that consecutive stamps are never more than one
// pixel apart in either axis.
//
// # Commands
//
// Hosts that forward input as events can build Command values and apply them
// with Session.Dispatch. Refusals such as deleting the last layer are logged
// and ignored; I/O errors are returned.
//
// # Recording
//
// Recording lives in the record sub-package. Encoders register themselves by
// name, like database/sql drivers. The session imports the built-in "avi"
// (Motion-JPEG) and "gif" encoders.
//
// # Logging
//
// palette produces no log output by default. Call SetLogger to enable it.
package palette
