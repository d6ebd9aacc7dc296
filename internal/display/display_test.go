package display

import (
	"errors"
	"image"
	"testing"
)

type fakeBackend struct {
	monitors []Monitor
	err      error
}

func (f fakeBackend) ListMonitors() ([]Monitor, error) { return f.monitors, f.err }

func withBackend(t *testing.T, b platformBackend) {
	t.Helper()
	prev := backend
	backend = b
	t.Cleanup(func() { backend = prev })
}

var layout = []Monitor{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 1280, 1024)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(1280, 0, 3200, 1080), Primary: true},
}

func TestFindMonitor(t *testing.T) {
	tests := []struct {
		selector string
		want     string
		wantErr  bool
	}{
		{"", "eDP-1", false},
		{"primary", "eDP-1", false},
		{"#0", "HDMI-1", false},
		{"1", "eDP-1", false},
		{"hdmi", "HDMI-1", false},
		{"5", "", true},
		{"dp-9", "", true},
	}
	for _, tt := range tests {
		got, err := FindMonitor(layout, tt.selector)
		if (err != nil) != tt.wantErr {
			t.Fatalf("FindMonitor(%q) error = %v", tt.selector, err)
		}
		if !tt.wantErr && got.Name != tt.want {
			t.Fatalf("FindMonitor(%q) = %s, want %s", tt.selector, got.Name, tt.want)
		}
	}
	if _, err := FindMonitor(nil, ""); !errors.Is(err, errNoMonitors) {
		t.Fatalf("expected errNoMonitors, got %v", err)
	}
}

func TestWindowSize(t *testing.T) {
	if got := WindowSize(layout[1]); got != image.Pt(1440, 810) {
		t.Fatalf("WindowSize = %v", got)
	}
	small := Monitor{Rect: image.Rect(0, 0, 800, 600)}
	if got := WindowSize(small); got != MinWindowSize {
		t.Fatalf("small monitor = %v, want %v", got, MinWindowSize)
	}
	if got := WindowSize(Monitor{}); got != DefaultWindowSize {
		t.Fatalf("empty monitor = %v", got)
	}
}

func TestPreferredWindowSize(t *testing.T) {
	withBackend(t, fakeBackend{monitors: layout})
	got, err := PreferredWindowSize("hdmi")
	if err != nil {
		t.Fatalf("PreferredWindowSize: %v", err)
	}
	if got != image.Pt(960, 768) {
		t.Fatalf("size = %v", got)
	}

	withBackend(t, fakeBackend{err: errors.New("no X")})
	got, err = PreferredWindowSize("")
	if err == nil || got != DefaultWindowSize {
		t.Fatalf("expected default size and error, got %v %v", got, err)
	}
}
