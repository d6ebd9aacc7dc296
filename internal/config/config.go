package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/myeditor/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Load bool
	Copy bool
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	Capacity int    // 0 uses the editor default
	Kind     string // initial shape kind
	File     string // drawing opened on start and written by save
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Notify: Notify{
			Save: false,
			Load: false,
			Copy: false,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Capacity > 0 {
		fmt.Fprintf(&sb, "capacity = %d\n", c.Capacity)
	}
	if c.Kind != "" {
		fmt.Fprintf(&sb, "kind = %s\n", c.Kind)
	}
	if c.File != "" {
		fmt.Fprintf(&sb, "file = %s\n", c.File)
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "load = %v\n", c.Notify.Load)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, field := range theme.Fields() {
			col, _ := t.Get(field)
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
