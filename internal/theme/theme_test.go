package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Mine\n# comment\nRectFill: #FF000080\nStarFill: gold\nBogus: #000000\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Mine" {
		t.Fatalf("name %q", th.Name)
	}
	if th.RectFill != (color.RGBA{255, 0, 0, 128}) {
		t.Fatalf("RectFill %v", th.RectFill)
	}
	if th.StarFill != (color.RGBA{255, 215, 0, 255}) {
		t.Fatalf("StarFill %v", th.StarFill)
	}
	if th.ShapeOutline != Default().ShapeOutline {
		t.Fatalf("unset field lost its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("RectFill: #12\n")); err == nil {
		t.Fatalf("expected error for short hex")
	}
	if _, err := Parse(strings.NewReader("RectFill: notacolor\n")); err == nil {
		t.Fatalf("expected error for unknown name")
	}
}

func TestDefaultFillPolicy(t *testing.T) {
	d := Default()
	if d.EllipseFill.A != 0 {
		t.Fatalf("ellipse fill should be transparent")
	}
	if d.RectFill != (color.RGBA{255, 255, 0, 255}) || d.StarFill != d.RectFill {
		t.Fatalf("rect and star fills should be yellow")
	}
}

func TestLoaderEmbeddedAndInline(t *testing.T) {
	l := &Loader{ConfigDir: t.TempDir(), SystemDir: t.TempDir()}
	for _, name := range []string{"dark", "high_contrast", "light"} {
		if _, err := l.Load(name); err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
	}
	sunny := Default()
	if err := sunny.Set("CanvasBackground", "lightyellow"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	l.Inline = map[string]*Theme{"sunny": sunny}
	th, err := l.Load("sunny")
	if err != nil {
		t.Fatalf("Load inline: %v", err)
	}
	if th.CanvasBackground != (color.RGBA{255, 255, 224, 255}) {
		t.Fatalf("inline background %v", th.CanvasBackground)
	}
	if _, err := l.Load("nope"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
	names := l.Available()
	if names[0] != "default" || len(names) != 5 {
		t.Fatalf("available %v", names)
	}
}

func TestLoaderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mine.theme"), []byte("Highlight: #00FF00\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	l := &Loader{ConfigDir: dir, SystemDir: t.TempDir()}
	th, err := l.Load("mine")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Highlight != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("highlight %v", th.Highlight)
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {255, 255, 0, 0}} {
		got, err := ParseColor(Hex(c))
		if err != nil || got != c {
			t.Fatalf("ParseColor(Hex(%v)) = %v, %v", c, got, err)
		}
	}
}
