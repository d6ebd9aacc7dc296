package main

import (
	"flag"
	"fmt"

	"github.com/example/myeditor/internal/appstate"
	"github.com/example/myeditor/internal/display"
	"github.com/example/myeditor/internal/editor"
	"github.com/example/myeditor/internal/shapes"
)

// runWindow is replaced in tests.
var runWindow = func(st *appstate.AppState) { st.Run() }

// editCmd opens the drawing window.
type editCmd struct {
	*root
	fs       *flag.FlagSet
	file     string
	kind     string
	capacity int
	monitor  string
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", defaultString(r.config.File, appstate.DefaultFile), "drawing file opened on start and written by Ctrl+S")
	fs.StringVar(&e.kind, "kind", defaultString(r.config.Kind, shapes.KindLine.String()), "initial shape kind")
	fs.IntVar(&e.capacity, "capacity", defaultInt(r.config.Capacity, editor.DefaultCapacity), "maximum number of shapes")
	fs.StringVar(&e.monitor, "monitor", "", "size the window for this monitor (index, #index or name)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 {
		e.file = fs.Arg(0)
	} else if fs.NArg() > 1 {
		return nil, &UsageError{of: e}
	}
	if e.capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1, got %d", e.capacity)
	}
	return e, nil
}

func (e *editCmd) Run() error {
	k, err := shapes.ParseKind(e.kind)
	if err != nil {
		return err
	}
	size, err := display.PreferredWindowSize(e.monitor)
	if err != nil && e.monitor != "" {
		fmt.Fprintf(e.stderr, "warning: %v. using %dx%d.\n", err, size.X, size.Y)
	}
	st := appstate.New(
		appstate.WithTheme(e.activeTheme),
		appstate.WithThemes(e.themes),
		appstate.WithKind(k),
		appstate.WithCapacity(e.capacity),
		appstate.WithFile(e.file),
		appstate.WithWindowSize(size),
		appstate.WithNotifier(e.notifier),
	)
	runWindow(st)
	return nil
}

func defaultString(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func defaultInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
