package main

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/myeditor/internal/appstate"
	"github.com/example/myeditor/internal/config"
	"github.com/example/myeditor/internal/display"
	"github.com/example/myeditor/internal/theme"
)

func testRoot(t *testing.T) (*root, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("MYEDITOR_THEME", "")
	r := newRootWith(config.New(), nil)
	var stdout, stderr bytes.Buffer
	r.stdout = &stdout
	r.stderr = &stderr
	return r, &stdout, &stderr
}

const sampleDrawing = `[
  {"type": "rectangle", "x1": 10, "y1": 10, "x2": 60, "y2": 40},
  {"type": "line", "x1": 0, "y1": 0, "x2": 90, "y2": 70},
  {"type": "triangle", "x1": 0, "y1": 0, "x2": 1, "y2": 1}
]`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.json")
	if err := os.WriteFile(path, []byte(sampleDrawing), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestRunWithoutCommandIsUsageError(t *testing.T) {
	for _, args := range [][]string{nil, {"bogus"}} {
		r, _, _ := testRoot(t)
		err := r.Run(args)
		var uerr *UsageError
		if !errors.As(err, &uerr) {
			t.Fatalf("Run(%q) = %v, want UsageError", args, err)
		}
		if help := uerr.Error(); !strings.Contains(help, "render") || !strings.Contains(help, "-theme") {
			t.Fatalf("help text missing commands or flags:\n%s", help)
		}
	}
}

func TestSubcommandHelpRenders(t *testing.T) {
	r, _, _ := testRoot(t)
	cmd, err := parseRenderCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	help := (&UsageError{of: cmd}).Error()
	if !strings.Contains(help, "myeditor render") || !strings.Contains(help, "-to-clipboard") {
		t.Fatalf("render help:\n%s", help)
	}
	help = (&UsageError{of: &versionCmd{r: r}}).Error()
	if !strings.HasPrefix(help, "Usage: myeditor version") {
		t.Fatalf("version help:\n%s", help)
	}
}

func TestThemePrecedence(t *testing.T) {
	r, _, stderr := testRoot(t)
	r.config.Theme = "high_contrast"
	if got := r.resolveTheme(); got.Background != mustTheme(t, r, "high_contrast").Background {
		t.Fatalf("config theme not used")
	}
	t.Setenv("MYEDITOR_THEME", "dark")
	if got := r.resolveTheme(); got.Background != mustTheme(t, r, "dark").Background {
		t.Fatalf("environment did not override config")
	}
	r.themeName = "default"
	if got := r.resolveTheme(); got.Background != theme.Default().Background {
		t.Fatalf("flag did not override environment")
	}
	r.themeName = "no-such-theme"
	r.resolveTheme()
	if !strings.Contains(stderr.String(), "no-such-theme") {
		t.Fatalf("missing warning, stderr %q", stderr.String())
	}
}

func TestRunVersion(t *testing.T) {
	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"version"}); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "myeditor version "+version) {
		t.Fatalf("stdout %q", stdout.String())
	}
}

func TestListPrintsTable(t *testing.T) {
	r, stdout, stderr := testRoot(t)
	if err := r.Run([]string{"list", writeSample(t)}); err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout.String())
	}
	if f := strings.Fields(lines[0]); strings.Join(f, " ") != "# Kind x1 y1 x2 y2" {
		t.Fatalf("header %q", lines[0])
	}
	if f := strings.Fields(lines[1]); strings.Join(f, " ") != "1 rectangle 10 10 60 40" {
		t.Fatalf("row %q", lines[1])
	}
	if !strings.Contains(stderr.String(), "skipped 1 malformed") {
		t.Fatalf("stderr %q", stderr.String())
	}
}

func TestRenderPNGAndSVG(t *testing.T) {
	drawing := writeSample(t)
	dir := t.TempDir()

	r, _, _ := testRoot(t)
	out := filepath.Join(dir, "out.png")
	if err := r.Run([]string{"render", "-file", drawing, "-output", out}); err != nil {
		t.Fatalf("render png: %v", err)
	}
	img := decodePNG(t, out)
	if got := img.Bounds().Size(); got != image.Pt(90+renderMargin, 70+renderMargin) {
		t.Fatalf("fitted size %v", got)
	}

	r, _, _ = testRoot(t)
	if err := r.Run([]string{"render", "-file", drawing, "-output", out, "-width", "50", "-height", "40", "-scale", "2"}); err != nil {
		t.Fatalf("render scaled: %v", err)
	}
	if got := decodePNG(t, out).Bounds().Size(); got != image.Pt(100, 80) {
		t.Fatalf("scaled size %v", got)
	}

	r, _, _ = testRoot(t)
	svg := filepath.Join(dir, "out.svg")
	if err := r.Run([]string{"render", "-file", drawing, "-output", svg}); err != nil {
		t.Fatalf("render svg: %v", err)
	}
	data, err := os.ReadFile(svg)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.Contains(string(data), "<svg") || !strings.Contains(string(data), "<rect") {
		t.Fatalf("svg output:\n%s", data)
	}
}

func TestRenderSizeIsBounded(t *testing.T) {
	huge := filepath.Join(t.TempDir(), "huge.json")
	data := `[{"type":"ellipse","x1":10,"y1":10,"x2":1e10,"y2":1e10}]`
	if err := os.WriteFile(huge, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r, _, _ := testRoot(t)
	list, _, err := readDrawing(huge, 10)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if w, h := fitSize(list); w != maxRenderSize || h != maxRenderSize {
		t.Fatalf("fitted size %dx%d, want the %d cap", w, h, maxRenderSize)
	}
	out := filepath.Join(t.TempDir(), "out.png")
	if err := r.Run([]string{"render", "-file", huge, "-output", out, "-width", "100", "-height", "100"}); err != nil {
		t.Fatalf("render: %v", err)
	}

	r, _, _ = testRoot(t)
	if err := r.Run([]string{"render", "-file", huge, "-output", out, "-width", "9000"}); err == nil {
		t.Fatalf("oversized width accepted")
	}
	r, _, _ = testRoot(t)
	err = r.Run([]string{"render", "-file", huge, "-output", out, "-width", "100", "-height", "100", "-scale", "1000"})
	if err == nil || !strings.Contains(err.Error(), "exceed") {
		t.Fatalf("oversized scale: %v", err)
	}
}

func TestListHonoursCapacity(t *testing.T) {
	r, stdout, stderr := testRoot(t)
	if err := r.Run([]string{"list", "-capacity", "1", writeSample(t)}); err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), stdout.String())
	}
	if !strings.Contains(stderr.String(), "dropped 1 over capacity") {
		t.Fatalf("stderr %q", stderr.String())
	}

	r, _, _ = testRoot(t)
	r.config.Capacity = 1
	cmd, err := parseRenderCmd(nil, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.capacity != 1 {
		t.Fatalf("render capacity %d, want the configured 1", cmd.capacity)
	}
}

func TestRenderToClipboard(t *testing.T) {
	original := writeImageClipboard
	sentinel := errors.New("no display")
	var copied image.Image
	writeImageClipboard = func(img image.Image) error {
		copied = img
		return sentinel
	}
	t.Cleanup(func() { writeImageClipboard = original })

	r, _, _ := testRoot(t)
	out := filepath.Join(t.TempDir(), "out.png")
	err := r.Run([]string{"render", "-file", writeSample(t), "-output", out, "-to-clipboard"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped clipboard error, got %v", err)
	}
	if copied == nil {
		t.Fatalf("clipboard not called")
	}

	if _, err := parseRenderCmd([]string{"-output", "x.svg", "-to-clip"}, r); err == nil || !strings.Contains(err.Error(), "PNG") {
		t.Fatalf("svg to clipboard: %v", err)
	}
}

func TestRenderMissingFile(t *testing.T) {
	r, _, _ := testRoot(t)
	err := r.Run([]string{"render", "-file", filepath.Join(t.TempDir(), "missing.json")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestEditBuildsState(t *testing.T) {
	original := runWindow
	var got *appstate.AppState
	runWindow = func(st *appstate.AppState) { got = st }
	t.Cleanup(func() { runWindow = original })

	r, _, _ := testRoot(t)
	if err := r.Run([]string{"edit", "-kind", "star", "-capacity", "5", "mine.json"}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if got == nil {
		t.Fatalf("window not started")
	}
	if got.Kind.String() != "star" || got.Capacity != 5 || got.File != "mine.json" {
		t.Fatalf("state kind %v capacity %d file %q", got.Kind, got.Capacity, got.File)
	}
	if got.Size.X <= 0 || got.Size.Y <= 0 {
		t.Fatalf("window size %v", got.Size)
	}

	r, _, _ = testRoot(t)
	if err := r.Run([]string{"edit", "-kind", "hexagon"}); err == nil {
		t.Fatalf("unknown kind accepted")
	}
	if _, err := parseEditCmd([]string{"-capacity", "0"}, r); err == nil {
		t.Fatalf("zero capacity accepted")
	}
}

func TestKindsMarksDefault(t *testing.T) {
	r, stdout, _ := testRoot(t)
	r.config.Kind = "cube"
	if err := r.Run([]string{"kinds"}); err != nil {
		t.Fatalf("kinds: %v", err)
	}
	if !strings.Contains(stdout.String(), "* cube") || !strings.Contains(stdout.String(), "  line_circles") {
		t.Fatalf("kinds output:\n%s", stdout.String())
	}
}

func TestMonitorsLists(t *testing.T) {
	original := listMonitors
	listMonitors = func() ([]display.Monitor, error) {
		return []display.Monitor{
			{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1920, 1080), Primary: true},
			{Index: 1, Name: "DP-2", Rect: image.Rect(1920, 0, 3200, 1024)},
		}, nil
	}
	t.Cleanup(func() { listMonitors = original })

	r, stdout, _ := testRoot(t)
	if err := r.Run([]string{"monitors"}); err != nil {
		t.Fatalf("monitors: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "* 0: HDMI-1") || !strings.Contains(out, "1280x1024+1920+0") {
		t.Fatalf("monitors output:\n%s", out)
	}
}

func mustTheme(t *testing.T, r *root, name string) *theme.Theme {
	t.Helper()
	th, err := r.themes.Load(name)
	if err != nil {
		t.Fatalf("load %s: %v", name, err)
	}
	return th
}

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return img
}
