package notify

import (
	"errors"
	"image"
	"os"
	"strings"
	"testing"

	"github.com/example/myeditor/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func captureSend(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, err := os.Stat(opts.IconPath)
			s.iconExisted = err == nil
		}
		got = append(got, s)
		return nil
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := captureSend(t)
	n := New(DefaultPreferences())
	n.Save("a.json")
	n.Load("a.json")
	n.Copy("", nil)
	var nilNotifier *Notifier
	nilNotifier.Save("a.json")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications", len(*got))
	}
}

func TestSaveUsesTemplate(t *testing.T) {
	got := captureSend(t)
	prefs := DefaultPreferences()
	prefs.Events[EventSave] = EventPreference{Template: "Wrote %s"}
	n := New(prefs)
	n.Enable(EventSave, true)
	n.Save("/tmp/drawing.json")
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if (*got)[0].title != "MyEditor" || (*got)[0].body != "Wrote /tmp/drawing.json" {
		t.Fatalf("unexpected notification %+v", (*got)[0])
	}
}

func TestCopyAttachesPreview(t *testing.T) {
	got := captureSend(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.body != "Copied drawing to clipboard" {
		t.Fatalf("body %q", s.body)
	}
	if !s.iconExisted {
		t.Fatalf("preview icon missing while notifying")
	}
	if _, err := os.Stat(s.opts.IconPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("preview not removed: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("MYEDITOR_NOTIFY_TITLE", "Shapes")
	t.Setenv("MYEDITOR_NOTIFY_LOAD_TEXT", "Opened %s")
	prefs := LoadPreferences()
	if prefs.Title != "Shapes" {
		t.Fatalf("title %q", prefs.Title)
	}
	if !strings.HasPrefix(prefs.Events[EventLoad].Template, "Opened") {
		t.Fatalf("load template %q", prefs.Events[EventLoad].Template)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Fatalf("save template changed: %q", prefs.Events[EventSave].Template)
	}
}
