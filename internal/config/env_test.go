package config

import "testing"

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("MYEDITOR_THEME", " dark ")
	t.Setenv("MYEDITOR_NOTIFY_SAVE_TEXT", "Wrote %s")
	t.Setenv("MYEDITOR_NOTIFY_TITLE", "")
	env, err := LoadEnvironment()
	if err != nil {
		t.Fatalf("LoadEnvironment: %v", err)
	}
	if env.Theme != "dark" {
		t.Fatalf("theme %q", env.Theme)
	}
	if env.NotifySaveText != "Wrote %s" || env.NotifyTitle != "" {
		t.Fatalf("notify settings %+v", env)
	}
}
