package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
capacity = 40
kind = star
file = "/tmp/drawing.json"

[notify]
save = true
load = false
copy = true

[theme.my_custom_theme]
Background = #111111
rectfill = gold
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.Capacity != 40 {
		t.Errorf("Expected capacity 40, got %d", cfg.Capacity)
	}
	if cfg.Kind != "star" {
		t.Errorf("Expected kind 'star', got '%s'", cfg.Kind)
	}
	if cfg.File != "/tmp/drawing.json" {
		t.Errorf("Expected file '/tmp/drawing.json', got '%s'", cfg.File)
	}

	if !cfg.Notify.Save {
		t.Error("Expected notify.save to be true")
	}
	if cfg.Notify.Load {
		t.Error("Expected notify.load to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}

	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
	if theme.RectFill.R != 0xFF || theme.RectFill.G != 0xD7 {
		t.Errorf("Unexpected RectFill color: %+v", theme.RectFill)
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{
		"capacity = none\n",
		"capacity = 0\n",
		"[notify]\nsave = maybe\n",
		"[theme.x]\nRectFill = #12\n",
	} {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
capacity = 12
kind = cube
file = /home/user/drawing.json

[notify]
save = true
load = true
copy = false

[theme.custom]
Name = custom
Background = #000000
EllipseFill = #00FF0080
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme || cfg.Capacity != cfg2.Capacity || cfg.Kind != cfg2.Kind || cfg.File != cfg2.File {
		t.Errorf("Root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.rc")
	if err := os.WriteFile(path, []byte("kind = ellipse\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("HOME", t.TempDir())
	l := NewLoader("1.0", path)
	if got := l.GetConfigPath(); got != path {
		t.Fatalf("config path %q, want %q", got, path)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kind != "ellipse" {
		t.Fatalf("kind %q", cfg.Kind)
	}
}

func TestLoaderMissingReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	l := NewLoader("1.0", "")
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Theme != "" || cfg.Capacity != 0 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}
