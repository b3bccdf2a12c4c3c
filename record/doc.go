// Package record captures composited canvas frames and encodes them into a
// video file.
//
// # Architecture
//
// The package has three parts:
//
//   - Recorder: an idle/recording state machine holding a bounded queue
//     of RGB frames (a one-minute rolling window at the configured rate)
//   - Frame: one captured picture in packed 8-bit RGB
//   - Encoder: writes a sequence of frames to a container format
//
// Encoders are registered by name, following the database/sql driver
// pattern. Import a backend for its side effect to make it available:
//
//	import _ "github.com/gogpu/palette/record/backends/avi"
//
//	rec := record.New(record.Config{FPS: 15, Encoder: "avi"})
//	rec.Start(record.ScopeCanvas)
//	rec.Capture(canvas) // after every canvas-mutating redraw
//	err := rec.Stop("out.avi")
//
// If the configured encoder is not registered, Start leaves the recorder
// idle: recording is a capability of the host build, not an error of the
// painting session.
//
// # Built-in Backends
//
//   - avi: Motion-JPEG in a RIFF AVI container
//   - gif: animated GIF, Floyd-Steinberg dithered to a fixed palette
package record
