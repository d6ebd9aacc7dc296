// Package display discovers the monitor layout so the editor window can be
// sized to the screen it opens on.
package display

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

type platformBackend interface {
	ListMonitors() ([]Monitor, error)
}

var backend platformBackend = newBackend()

var errNoMonitors = errors.New("no monitors available")

// Monitor describes an individual monitor in the display layout.
type Monitor struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// DefaultWindowSize is used when no monitor information is available.
var DefaultWindowSize = image.Pt(1024, 720)

// MinWindowSize is the smallest window WindowSize will suggest.
var MinWindowSize = image.Pt(640, 480)

// ListMonitors retrieves all monitors using the platform backend.
func ListMonitors() ([]Monitor, error) {
	return backend.ListMonitors()
}

// FindMonitor resolves a monitor selector against the provided list. An
// empty selector or "primary" picks the primary monitor, falling back to the
// first one. Numeric selectors (optionally prefixed with #) pick by index;
// anything else matches a substring of the output name.
func FindMonitor(monitors []Monitor, selector string) (Monitor, error) {
	if len(monitors) == 0 {
		return Monitor{}, errNoMonitors
	}
	lower := strings.ToLower(strings.TrimSpace(selector))
	if lower == "" || lower == "primary" {
		for _, mon := range monitors {
			if mon.Primary {
				return mon, nil
			}
		}
		return monitors[0], nil
	}
	lower = strings.TrimPrefix(lower, "#")
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx < 0 || idx >= len(monitors) {
			return Monitor{}, fmt.Errorf("monitor index %d out of range", idx)
		}
		return monitors[idx], nil
	}
	for _, mon := range monitors {
		if strings.Contains(strings.ToLower(mon.Name), lower) {
			return mon, nil
		}
	}
	return Monitor{}, fmt.Errorf("monitor %q not found", selector)
}

// WindowSize suggests an initial window size covering three quarters of
// mon, clamped to MinWindowSize.
func WindowSize(mon Monitor) image.Point {
	if mon.Rect.Empty() {
		return DefaultWindowSize
	}
	size := image.Pt(mon.Rect.Dx()*3/4, mon.Rect.Dy()*3/4)
	if size.X < MinWindowSize.X {
		size.X = MinWindowSize.X
	}
	if size.Y < MinWindowSize.Y {
		size.Y = MinWindowSize.Y
	}
	return size
}

// PreferredWindowSize looks up the monitor named by selector and returns
// the window size for it. Lookup failures fall back to DefaultWindowSize and
// are returned so callers can log them.
func PreferredWindowSize(selector string) (image.Point, error) {
	monitors, err := ListMonitors()
	if err != nil {
		return DefaultWindowSize, err
	}
	mon, err := FindMonitor(monitors, selector)
	if err != nil {
		return DefaultWindowSize, err
	}
	return WindowSize(mon), nil
}
