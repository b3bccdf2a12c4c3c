package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testScript = `
canvas:
  width: 48
  height: 32
events:
  - op: set_brush
    color: "#ff0000"
    size: 2
  - op: stroke
    points: [[4, 4], [40, 20]]
  - op: add_layer
    name: ink
  - op: set_brush
    color: "#0000ff"
    brush: soft
    size: 4
  - op: stroke
    points: [[10, 25], [30, 5]]
  - op: delete_layer
    index: 9
`

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := submain(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func readImage(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}

func sameImage(a, b image.Image) bool {
	if a.Bounds() != b.Bounds() {
		return false
	}
	r := a.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			r1, g1, b1, a1 := a.At(x, y).RGBA()
			r2, g2, b2, a2 := b.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return false
			}
		}
	}
	return true
}

func TestRunScriptAndReplayJournal(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeFile(t, dir, "paint.yaml", testScript)
	out := filepath.Join(dir, "out.png")
	db := filepath.Join(dir, "journal.db")

	if _, stderr, code := run(t, "run", scriptPath, "-o", out, "--journal", db); code != 0 {
		t.Fatalf("run exit %d: %s", code, stderr)
	}
	img := readImage(t, out)
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Fatalf("export bounds = %v, want 48x32", b)
	}

	replayed := filepath.Join(dir, "replayed.png")
	if _, stderr, code := run(t, "journal", "replay", db, "-o", replayed); code != 0 {
		t.Fatalf("journal replay exit %d: %s", code, stderr)
	}
	if !sameImage(img, readImage(t, replayed)) {
		t.Error("replayed journal differs from the original export")
	}

	stdout, _, code := run(t, "journal", "list", db)
	if code != 0 {
		t.Fatalf("journal list exit %d", code)
	}
	if lines := strings.Count(stdout, "\n"); lines != 6 {
		t.Errorf("journal list printed %d lines, want 6:\n%s", lines, stdout)
	}
}

func TestJournalReplayScatter(t *testing.T) {
	const src = `
canvas: {width: 40, height: 30}
events:
  - op: set_brush
    brush: scatter
    color: "#00aa00"
    size: 6
  - op: stroke
    points: [[3, 3], [36, 26]]
`
	dir := t.TempDir()
	out := filepath.Join(dir, "live.png")
	db := filepath.Join(dir, "journal.db")
	if _, stderr, code := run(t, "run", writeFile(t, dir, "scatter.yaml", src), "-o", out, "--journal", db); code != 0 {
		t.Fatalf("run exit %d: %s", code, stderr)
	}
	replayed := filepath.Join(dir, "replayed.png")
	if _, stderr, code := run(t, "journal", "replay", db, "-o", replayed); code != 0 {
		t.Fatalf("journal replay exit %d: %s", code, stderr)
	}
	if !sameImage(readImage(t, out), readImage(t, replayed)) {
		t.Error("replayed scatter stroke differs from the live export")
	}
}

func TestJournalHoldsLatestRun(t *testing.T) {
	const stroke = `
canvas: {width: 16, height: 8}
events:
  - op: set_brush
    color: "%s"
    size: 1
  - op: stroke
    points: [%s]
`
	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	first := writeFile(t, dir, "first.yaml", fmt.Sprintf(stroke, "#ff0000", "[5, 2], [10, 2]"))
	second := writeFile(t, dir, "second.yaml", fmt.Sprintf(stroke, "#0000ff", "[2, 6], [12, 6]"))

	firstOut := filepath.Join(dir, "first.png")
	secondOut := filepath.Join(dir, "second.png")
	if _, stderr, code := run(t, "run", first, "-o", firstOut, "--journal", db); code != 0 {
		t.Fatalf("first run exit %d: %s", code, stderr)
	}
	if _, stderr, code := run(t, "run", second, "-o", secondOut, "--journal", db); code != 0 {
		t.Fatalf("second run exit %d: %s", code, stderr)
	}

	replayed := filepath.Join(dir, "replayed.png")
	if _, stderr, code := run(t, "journal", "replay", db, "-o", replayed); code != 0 {
		t.Fatalf("journal replay exit %d: %s", code, stderr)
	}
	img := readImage(t, replayed)
	if !sameImage(readImage(t, secondOut), img) {
		t.Error("replay does not match the latest run")
	}
	if _, g, _, _ := img.At(5, 2).RGBA(); g != 0xffff {
		t.Error("replay still contains the first run's stroke")
	}
}

func TestJournalReplaySkipsFileEvents(t *testing.T) {
	dir := t.TempDir()
	side := filepath.Join(dir, "side.png")
	src := testScript + "  - op: export_png\n    path: " + side + "\n"
	db := filepath.Join(dir, "journal.db")
	if _, stderr, code := run(t, "run", writeFile(t, dir, "paint.yaml", src), "-o", filepath.Join(dir, "out.png"), "--journal", db); code != 0 {
		t.Fatalf("run exit %d: %s", code, stderr)
	}
	if err := os.Remove(side); err != nil {
		t.Fatalf("export_png did not run: %v", err)
	}

	if _, stderr, code := run(t, "journal", "replay", db, "-o", filepath.Join(dir, "replayed.png")); code != 0 {
		t.Fatalf("journal replay exit %d: %s", code, stderr)
	}
	if _, err := os.Stat(side); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("replay rewrote %s", side)
	}
}

func TestRunWithRecording(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeFile(t, dir, "paint.yaml", testScript)
	cfg := writeFile(t, dir, "palette.yaml", "recording:\n  encoder: gif\n  fps: 10\n")
	rec := filepath.Join(dir, "session.gif")

	_, stderr, code := run(t, "-c", cfg, "run", scriptPath, "-o", filepath.Join(dir, "out.png"), "--record", "--record-output", rec)
	if code != 0 {
		t.Fatalf("run exit %d: %s", code, stderr)
	}
	if fi, err := os.Stat(rec); err != nil || fi.Size() == 0 {
		t.Errorf("recording not written: %v", err)
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing script", []string{"run", filepath.Join(dir, "nope.yaml")}, "open"},
		{"bad script", []string{"run", writeFile(t, dir, "bad.yaml", "events:\n  - op: fly\n")}, "unknown op"},
		{"bad config", []string{"-c", writeFile(t, dir, "cfg.yaml", "brush:\n  size: 0\n"), "version"}, "brush.size"},
		{"missing journal", []string{"journal", "replay", filepath.Join(dir, "none.db")}, "does not exist"},
		{"no args", []string{"run"}, "accepts 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := run(t, tt.args...)
			if code != 1 {
				t.Fatalf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to mention %q", stderr, tt.want)
			}
		})
	}
}

func TestEncoders(t *testing.T) {
	stdout, _, code := run(t, "encoders")
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if stdout != "avi\ngif\n" {
		t.Errorf("encoders = %q, want avi and gif", stdout)
	}
}

func TestConfigAndVersion(t *testing.T) {
	stdout, _, code := run(t, "config")
	if code != 0 || !strings.Contains(stdout, "width: 800") {
		t.Errorf("config exit %d, output:\n%s", code, stdout)
	}
	stdout, _, code = run(t, "version")
	if code != 0 || !strings.HasPrefix(stdout, "palette ") {
		t.Errorf("version exit %d, output %q", code, stdout)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "b", "c"); got != "b" {
		t.Errorf("firstNonEmpty = %q, want b", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q, want empty", got)
	}
}
