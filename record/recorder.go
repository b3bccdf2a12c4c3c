package record

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
)

// State is the recorder lifecycle state.
type State uint8

const (
	Idle State = iota
	Recording
)

// String returns the state name.
func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// Scope selects what a recording captures.
type Scope uint8

const (
	// ScopeCanvas captures the composited canvas only.
	ScopeCanvas Scope = iota
	// ScopeWindow captures the whole application surface.
	ScopeWindow
)

// String returns the scope name.
func (s Scope) String() string {
	if s == ScopeWindow {
		return "window"
	}
	return "canvas"
}

// ParseScope parses "canvas" or "window".
func ParseScope(s string) (Scope, error) {
	switch s {
	case "canvas", "":
		return ScopeCanvas, nil
	case "window", "full-window", "full_window":
		return ScopeWindow, nil
	}
	return ScopeCanvas, fmt.Errorf("record: unknown scope %q", s)
}

// Defaults used by DefaultConfig and by New for zero fields.
const (
	DefaultFPS     = 15
	DefaultEncoder = "avi"

	// DefaultOutput is the file name, without extension, used by Stop when
	// no path is given.
	DefaultOutput = "palette_recording"

	// WindowSeconds is the length of the rolling frame window.
	WindowSeconds = 60
)

// Config configures a Recorder.
type Config struct {
	// FPS is the encoded frame rate and, times WindowSeconds, the queue
	// capacity. Zero selects DefaultFPS.
	FPS int
	// Encoder is the registered encoder name. Empty selects DefaultEncoder.
	Encoder string
}

// DefaultConfig returns 15 fps Motion-JPEG AVI recording.
func DefaultConfig() Config {
	return Config{FPS: DefaultFPS, Encoder: DefaultEncoder}
}

// Recorder accumulates captured frames while recording and encodes them on
// Stop.
//
// States are idle and recording; Start and Stop are the only transitions.
// The frame queue is bounded at FPS*WindowSeconds frames, evicting the
// oldest first, so memory holds at most a one-minute rolling window.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	cfg   Config
	state State
	scope Scope

	// ring buffer of captured frames
	frames []*Frame
	head   int
	count  int
}

// New creates an idle recorder.
func New(cfg Config) *Recorder {
	if cfg.FPS <= 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Encoder == "" {
		cfg.Encoder = DefaultEncoder
	}
	return &Recorder{cfg: cfg}
}

// Config returns the effective configuration.
func (r *Recorder) Config() Config { return r.cfg }

// State returns the current lifecycle state.
func (r *Recorder) State() State { return r.state }

// Active reports whether the recorder is recording.
func (r *Recorder) Active() bool { return r.state == Recording }

// Scope returns the scope of the current or last recording.
func (r *Recorder) Scope() Scope { return r.scope }

// FPS returns the configured frame rate.
func (r *Recorder) FPS() int { return r.cfg.FPS }

// Capacity returns the maximum number of queued frames.
func (r *Recorder) Capacity() int { return r.cfg.FPS * WindowSeconds }

// Len returns the number of queued frames.
func (r *Recorder) Len() int { return r.count }

// Start begins a recording of the given scope with an empty queue.
//
// If the configured encoder is unavailable in this build, Start logs a
// warning and the recorder stays idle.
func (r *Recorder) Start(scope Scope) {
	if !IsRegistered(r.cfg.Encoder) {
		Logger().Warn("record: encoder unavailable, recording disabled",
			"encoder", r.cfg.Encoder, "available", Encoders())
		return
	}
	r.reset()
	r.scope = scope
	r.state = Recording
	Logger().Info("record: recording started",
		"scope", scope.String(), "fps", r.cfg.FPS, "encoder", r.cfg.Encoder)
}

// Capture appends a copy of img to the queue while recording. When the
// queue is full the oldest frame is evicted. Capture is a no-op when idle.
func (r *Recorder) Capture(img image.Image) {
	if r.state != Recording {
		return
	}
	r.push(NewFrame(img))
}

// Stop ends the recording and encodes every queued frame into path at the
// configured rate. The resolution is that of the first queued frame; frames
// of another size are rescaled.
//
// An empty path selects DefaultOutput plus the encoder extension. The file is
// closed and the queue cleared whatever the outcome. Stop on an idle
// recorder, or with no captured frames, writes nothing and returns nil.
func (r *Recorder) Stop(path string) (err error) {
	if r.state != Recording {
		return nil
	}
	r.state = Idle
	frames := r.drain()
	if len(frames) == 0 {
		Logger().Debug("record: stopped with no frames")
		return nil
	}

	enc, err := NewEncoder(r.cfg.Encoder)
	if err != nil {
		return err
	}
	if path == "" {
		path = DefaultOutput + enc.Extension()
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("record: create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("record: close output: %w", cerr))
		}
	}()

	if err := encodeFrames(enc, f, frames, r.cfg.FPS); err != nil {
		return err
	}

	Logger().Info("record: recording written",
		"path", path, "frames", len(frames), "fps", r.cfg.FPS,
		"width", frames[0].Width, "height", frames[0].Height)
	return nil
}

func encodeFrames(enc Encoder, w io.Writer, frames []*Frame, fps int) error {
	width, height := frames[0].Width, frames[0].Height
	if err := enc.Begin(w, width, height, fps); err != nil {
		return fmt.Errorf("record: begin stream: %w", err)
	}
	for i, fr := range frames {
		if err := enc.WriteFrame(fr.Scale(width, height)); err != nil {
			return fmt.Errorf("record: frame %d: %w", i, err)
		}
	}
	if err := enc.End(); err != nil {
		return fmt.Errorf("record: end stream: %w", err)
	}
	return nil
}

func (r *Recorder) push(f *Frame) {
	if r.count < r.Capacity() {
		// head stays 0 until the queue first fills
		r.frames = append(r.frames, f)
		r.count++
		return
	}
	r.frames[r.head] = f
	r.head = (r.head + 1) % len(r.frames)
}

// drain returns the queued frames oldest first and empties the queue.
func (r *Recorder) drain() []*Frame {
	out := make([]*Frame, 0, r.count)
	for i := 0; i < r.count; i++ {
		out = append(out, r.frames[(r.head+i)%len(r.frames)])
	}
	r.reset()
	return out
}

func (r *Recorder) reset() {
	clear(r.frames)
	r.frames = r.frames[:0]
	r.head = 0
	r.count = 0
}
