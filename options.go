package palette

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gogpu/palette/record"
)

// Default canvas dimensions.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Option configures a Session during creation.
//
// Example:
//
//	s := palette.NewSession(
//	    palette.WithSize(1024, 768),
//	    palette.WithRecorder(record.Config{FPS: 30, Encoder: "gif"}),
//	)
type Option func(*options)

// options holds optional configuration for Session creation.
type options struct {
	width, height int
	background    Color
	randSource    rand.Source
	logger        *slog.Logger
	recorder      record.Config
	historyCap    int
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		width:      DefaultWidth,
		height:     DefaultHeight,
		background: White,
		recorder:   record.DefaultConfig(),
		historyCap: DefaultHistoryCapacity,
	}
}

// WithSize sets the fixed canvas dimensions. Non-positive values keep the
// defaults.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithBackground sets the opaque color layers are composited onto for
// display and recording. Exports always use white.
func WithBackground(c Color) Option {
	return func(o *options) {
		o.background = c.WithAlpha(255)
	}
}

// WithRandSource sets the random source used by scatter brushes. Seed it to
// make scatter strokes reproducible.
func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.randSource = src
	}
}

// WithSeed seeds the scatter random source with a PCG generator. Sessions
// created with the same seed stamp identical scatter strokes.
func WithSeed(seed uint64) Option {
	return WithRandSource(rand.NewPCG(seed, seed))
}

// WithLogger sets a session-specific logger instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRecorder configures frame recording.
func WithRecorder(cfg record.Config) Option {
	return func(o *options) {
		o.recorder = cfg
	}
}

// WithHistoryCapacity sets the undo depth. Non-positive values select
// DefaultHistoryCapacity.
func WithHistoryCapacity(n int) Option {
	return func(o *options) {
		o.historyCap = n
	}
}
