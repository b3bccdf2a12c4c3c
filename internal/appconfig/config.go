// Package appconfig loads the palette command-line configuration.
package appconfig

import (
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/palette"
	"github.com/gogpu/palette/record"
)

// EnvPrefix prefixes environment overrides, e.g. PALETTE_CANVAS_WIDTH.
const EnvPrefix = "PALETTE"

// DefaultConfigFile is the file name looked up by the CLI when no --config
// flag is given.
const DefaultConfigFile = "palette.yaml"

// Config is the top-level application configuration.
type Config struct {
	Canvas    CanvasConfig    `mapstructure:"canvas" yaml:"canvas"`
	Brush     BrushConfig     `mapstructure:"brush" yaml:"brush"`
	Symmetry  string          `mapstructure:"symmetry" yaml:"symmetry"`
	History   HistoryConfig   `mapstructure:"history" yaml:"history"`
	Recording RecordingConfig `mapstructure:"recording" yaml:"recording"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Journal   JournalConfig   `mapstructure:"journal" yaml:"journal"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

// CanvasConfig sets the fixed canvas size.
type CanvasConfig struct {
	Width      int    `mapstructure:"width" yaml:"width"`
	Height     int    `mapstructure:"height" yaml:"height"`
	Background string `mapstructure:"background" yaml:"background"`
}

// BrushConfig is the initial brush.
type BrushConfig struct {
	Color   string `mapstructure:"color" yaml:"color"`
	Size    int    `mapstructure:"size" yaml:"size"`
	Opacity int    `mapstructure:"opacity" yaml:"opacity"`
	Type    string `mapstructure:"type" yaml:"type"`
}

// HistoryConfig bounds undo.
type HistoryConfig struct {
	Capacity int `mapstructure:"capacity" yaml:"capacity"`
}

// RecordingConfig configures frame recording.
type RecordingConfig struct {
	FPS     int    `mapstructure:"fps" yaml:"fps"`
	Encoder string `mapstructure:"encoder" yaml:"encoder"`
	Output  string `mapstructure:"output" yaml:"output"`
	Scope   string `mapstructure:"scope" yaml:"scope"`
}

// ExportConfig sets the default export target.
type ExportConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// JournalConfig enables the SQLite event journal when Path is set.
type JournalConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls CLI logging.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	b := palette.DefaultBrush()
	return Config{
		Canvas: CanvasConfig{
			Width:      palette.DefaultWidth,
			Height:     palette.DefaultHeight,
			Background: palette.White.Hex(),
		},
		Brush: BrushConfig{
			Color:   b.Color.Hex(),
			Size:    b.Size,
			Opacity: int(b.Opacity),
			Type:    b.Type.String(),
		},
		Symmetry: palette.SymmetryNone.String(),
		History:  HistoryConfig{Capacity: palette.DefaultHistoryCapacity},
		Recording: RecordingConfig{
			FPS:     record.DefaultFPS,
			Encoder: record.DefaultEncoder,
			Scope:   record.ScopeCanvas.String(),
		},
		Export: ExportConfig{Path: "palette.png"},
		Log:    LogConfig{Level: "info"},
	}
}

// Validate checks every field and names the offending key on failure.
func (c Config) Validate() error {
	if c.Canvas.Width <= 0 {
		return fmt.Errorf("canvas.width must be positive, got %d", c.Canvas.Width)
	}
	if c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas.height must be positive, got %d", c.Canvas.Height)
	}
	if _, err := palette.ParseHex(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas.background: %w", err)
	}
	if _, err := palette.ParseHex(c.Brush.Color); err != nil {
		return fmt.Errorf("brush.color: %w", err)
	}
	if c.Brush.Size < 1 || c.Brush.Size > palette.MaxBrushSize {
		return fmt.Errorf("brush.size must be within 1-%d, got %d", palette.MaxBrushSize, c.Brush.Size)
	}
	if c.Brush.Opacity < 0 || c.Brush.Opacity > 255 {
		return fmt.Errorf("brush.opacity must be within 0-255, got %d", c.Brush.Opacity)
	}
	if _, err := palette.ParseBrushType(c.Brush.Type); err != nil {
		return fmt.Errorf("brush.type: %w", err)
	}
	if _, err := palette.ParseSymmetryMode(c.Symmetry); err != nil {
		return fmt.Errorf("symmetry: %w", err)
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1, got %d", c.History.Capacity)
	}
	if c.Recording.FPS < 1 || c.Recording.FPS > 120 {
		return fmt.Errorf("recording.fps must be within 1-120, got %d", c.Recording.FPS)
	}
	if strings.TrimSpace(c.Recording.Encoder) == "" {
		return fmt.Errorf("recording.encoder is required")
	}
	if _, err := record.ParseScope(c.Recording.Scope); err != nil {
		return fmt.Errorf("recording.scope: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

// BrushState returns the configured brush. c must be valid.
func (c Config) BrushState() palette.BrushState {
	t, _ := palette.ParseBrushType(c.Brush.Type)
	return palette.BrushState{
		Color:   palette.Hex(c.Brush.Color),
		Size:    c.Brush.Size,
		Opacity: uint8(c.Brush.Opacity),
		Type:    t,
	}
}

// SymmetryMode returns the configured symmetry. c must be valid.
func (c Config) SymmetryMode() palette.SymmetryMode {
	m, _ := palette.ParseSymmetryMode(c.Symmetry)
	return m
}

// SessionOptions returns the palette options for a session built from c.
func (c Config) SessionOptions() []palette.Option {
	return []palette.Option{
		palette.WithSize(c.Canvas.Width, c.Canvas.Height),
		palette.WithBackground(palette.Hex(c.Canvas.Background)),
		palette.WithHistoryCapacity(c.History.Capacity),
		palette.WithRecorder(record.Config{FPS: c.Recording.FPS, Encoder: c.Recording.Encoder}),
	}
}

// YAML renders c in the configuration file format.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
