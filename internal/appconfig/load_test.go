package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/palette"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.BrushState(); got != palette.DefaultBrush() {
		t.Errorf("BrushState() = %+v, want default brush", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
canvas:
  width: 320
  height: 240
brush:
  color: "#ff0000"
  size: 4
  type: soft
symmetry: both
recording:
  fps: 24
  encoder: gif
journal:
  path: /tmp/palette.db
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.Canvas.Width != 320 || cfg.Canvas.Height != 240 {
		t.Errorf("canvas = %+v", cfg.Canvas)
	}
	want := palette.BrushState{Color: palette.Red, Size: 4, Opacity: 255, Type: palette.BrushSoft}
	if got := cfg.BrushState(); got != want {
		t.Errorf("BrushState() = %+v, want %+v", got, want)
	}
	if cfg.SymmetryMode() != palette.SymmetryBoth {
		t.Errorf("SymmetryMode() = %v, want both", cfg.SymmetryMode())
	}
	if cfg.Recording.FPS != 24 || cfg.Recording.Encoder != "gif" {
		t.Errorf("recording = %+v", cfg.Recording)
	}
	if cfg.Journal.Path != "/tmp/palette.db" || cfg.Log.Level != "debug" {
		t.Errorf("journal=%q log=%q", cfg.Journal.Path, cfg.Log.Level)
	}
	// Keys absent from the file keep their defaults.
	if cfg.History.Capacity != palette.DefaultHistoryCapacity || cfg.Export.Path != "palette.png" {
		t.Errorf("defaults lost: history=%d export=%q", cfg.History.Capacity, cfg.Export.Path)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PALETTE_CANVAS_WIDTH", "1024")
	t.Setenv("PALETTE_RECORDING_ENCODER", "gif")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load = %v", err)
	}
	if cfg.Canvas.Width != 1024 || cfg.Recording.Encoder != "gif" {
		t.Errorf("env overrides not applied: width=%d encoder=%q", cfg.Canvas.Width, cfg.Recording.Encoder)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		key  string
	}{
		{"width", "canvas:\n  width: 0\n", "canvas.width"},
		{"height", "canvas:\n  height: -4\n", "canvas.height"},
		{"background", "canvas:\n  background: blue\n", "canvas.background"},
		{"color", "brush:\n  color: \"#12\"\n", "brush.color"},
		{"size", "brush:\n  size: 0\n", "brush.size"},
		{"size too large", "brush:\n  size: 51\n", "brush.size"},
		{"opacity", "brush:\n  opacity: 256\n", "brush.opacity"},
		{"type", "brush:\n  type: airbrush\n", "brush.type"},
		{"symmetry", "symmetry: radial\n", "symmetry"},
		{"history", "history:\n  capacity: 0\n", "history.capacity"},
		{"fps", "recording:\n  fps: 0\n", "recording.fps"},
		{"scope", "recording:\n  scope: desktop\n", "recording.scope"},
		{"level", "log:\n  level: loud\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.key) {
				t.Fatalf("expected %s error, got %v", tt.key, err)
			}
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	want := DefaultConfig()
	want.Canvas.Width = 640
	want.Symmetry = "vertical"
	data, err := want.YAML()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load(YAML()) = %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "error"} {
		if _, err := ParseLevel(s); err != nil {
			t.Errorf("ParseLevel(%q) = %v", s, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("ParseLevel(verbose) = nil error")
	}
}
