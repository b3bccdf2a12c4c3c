package record

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrUnknownEncoder is returned by NewEncoder for unregistered names.
var ErrUnknownEncoder = errors.New("record: unknown encoder")

// Encoder writes a sequence of equally sized frames to a container format.
//
// The recorder calls Begin once, WriteFrame for every frame in capture
// order, then End. Encoders may buffer frames until End.
type Encoder interface {
	// Extension returns the file extension of the container, including the
	// leading dot.
	Extension() string

	// Begin starts a stream of width x height frames at fps frames per
	// second, written to w.
	Begin(w io.Writer, width, height, fps int) error

	// WriteFrame appends one frame. Its size matches the Begin dimensions.
	WriteFrame(f *Frame) error

	// End flushes the stream. The writer is not closed.
	End() error
}

// EncoderFactory creates a new encoder instance.
// Factories are registered via Register() and called by NewEncoder().
type EncoderFactory func() Encoder

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	encoders   = make(map[string]EncoderFactory)
)

// Register registers an encoder factory with the given name.
// It is typically called from init() in backend packages:
//
//	func init() {
//	    record.Register("avi", func() record.Encoder { return New(DefaultQuality) })
//	}
//
// Register panics if factory is nil or the name is already registered, so
// duplicate registrations surface during program initialization.
func Register(name string, factory EncoderFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("record: Register factory is nil")
	}
	if _, dup := encoders[name]; dup {
		panic("record: Register called twice for " + name)
	}
	encoders[name] = factory
}

// Unregister removes an encoder from the registry.
// This is primarily useful for tests. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(encoders, name)
}

// NewEncoder creates a new encoder instance by name.
// The error mentions a likely forgotten backend import.
func NewEncoder(name string) (Encoder, error) {
	registryMu.RLock()
	factory, ok := encoders[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownEncoder, name)
	}
	return factory(), nil
}

// Encoders returns the registered encoder names, sorted alphabetically.
func Encoders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if an encoder with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := encoders[name]
	return ok
}
