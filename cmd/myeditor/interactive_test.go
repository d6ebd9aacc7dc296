package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestInteractive(t *testing.T, args ...string) (*interactiveCmd, *strings.Builder) {
	t.Helper()
	r, _, _ := testRoot(t)
	var out strings.Builder
	r.stdout = &out
	r.activeTheme = r.resolveTheme()
	args = append([]string{"-file", filepath.Join(t.TempDir(), "drawing.json")}, args...)
	c, err := parseInteractiveCmd(args, r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := c.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return c, &out
}

func run(t *testing.T, c *interactiveCmd, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := c.executeLine(line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
}

func TestInteractiveDrawAndList(t *testing.T) {
	c, out := newTestInteractive(t)
	run(t, c, "kind rectangle", "down 10 10", "move 20 20", "status", "up 30 40", "list", "status")
	got := out.String()
	if !strings.Contains(got, "Dragging") {
		t.Fatalf("status during drag:\n%s", got)
	}
	if !strings.Contains(got, "1  rectangle  10  10  30  40") {
		t.Fatalf("list output:\n%s", got)
	}
	if !strings.Contains(got, "Shapes: 1/112 | Kind: Rectangle") {
		t.Fatalf("status output:\n%s", got)
	}
}

func TestInteractiveSelectDeleteAndPersist(t *testing.T) {
	c, out := newTestInteractive(t)
	run(t, c, "kind point", "down 1 1", "down 2 2", "down 3 3", "select 2", "delete")
	if n := len(c.ed.Shapes()); n != 2 {
		t.Fatalf("got %d shapes", n)
	}
	run(t, c, "save", "clear", "load")
	if n := len(c.ed.Shapes()); n != 2 {
		t.Fatalf("reloaded %d shapes", n)
	}
	if x, _, _, _ := c.ed.Shapes()[1].Coords(); x != 3 {
		t.Fatalf("second shape x %v, want 3", x)
	}
	if !strings.Contains(out.String(), "Loaded 2 shapes") {
		t.Fatalf("output:\n%s", out.String())
	}
	run(t, c, "delete 1", "select none")
	if _, err := c.executeLine("delete"); err == nil {
		t.Fatalf("delete without selection succeeded")
	}
	if _, err := c.executeLine("delete 9"); err == nil {
		t.Fatalf("delete of a missing shape succeeded")
	}
}

func TestInteractiveExport(t *testing.T) {
	c, _ := newTestInteractive(t)
	dir := t.TempDir()
	png := filepath.Join(dir, "out.png")
	svg := filepath.Join(dir, "out.svg")
	run(t, c, "kind star", "down 10 10", "up 60 60", "export "+png, "export "+svg)
	decodePNG(t, png)
	data, err := os.ReadFile(svg)
	if err != nil || !strings.Contains(string(data), "<polygon") {
		t.Fatalf("svg %v:\n%s", err, data)
	}
}

func TestInteractiveErrors(t *testing.T) {
	c, _ := newTestInteractive(t)
	tests := []struct {
		line string
		want string
	}{
		{"down 1", "requires x y"},
		{"move a 2", "invalid x"},
		{"down Inf 1", "invalid x"},
		{"move 1 NaN", "invalid y"},
		{"up -inf 3", "invalid x"},
		{"kind hexagon", "unknown"},
		{"select 0", "invalid shape number"},
		{"load " + filepath.Join(t.TempDir(), "missing.json"), "missing.json"},
	}
	for _, tt := range tests {
		_, err := c.executeLine(tt.line)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%q: got %v, want error containing %q", tt.line, err, tt.want)
		}
	}
	if _, err := c.executeLine("fly away"); !errors.Is(err, errUnknownCommand) {
		t.Fatalf("unknown command: %v", err)
	}
	if done, err := c.executeLine("exit"); !done || err != nil {
		t.Fatalf("exit: %v %v", done, err)
	}
	if done, err := c.executeLine("   # comment"); done || err != nil {
		t.Fatalf("comment: %v %v", done, err)
	}
}

func TestInteractiveExecFlags(t *testing.T) {
	c, out := newTestInteractive(t, "-e", "kind line", "-e", "down 0 0", "-e", "up 5 5", "-e", "exit", "-e", "clear")
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := len(c.ed.Shapes()); n != 1 {
		t.Fatalf("commands after exit ran, %d shapes", n)
	}
	if strings.Contains(out.String(), "Enter commands") {
		t.Fatalf("prompt shown in immediate mode")
	}
}

func TestInteractiveReadsStdin(t *testing.T) {
	c, out := newTestInteractive(t)
	c.stdin = strings.NewReader("kind ellipse\nbogus\ndown 5 5\nup 9 9\nexit\ndown 1 1\n")
	var errs strings.Builder
	c.stderr = &errs
	if err := c.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if n := len(c.ed.Shapes()); n != 1 {
		t.Fatalf("got %d shapes", n)
	}
	if !strings.Contains(errs.String(), "bogus") {
		t.Fatalf("stderr %q", errs.String())
	}
	if !strings.Contains(out.String(), "Enter commands") {
		t.Fatalf("stdout %q", out.String())
	}
}
