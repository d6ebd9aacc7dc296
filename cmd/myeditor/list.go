package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/myeditor/internal/appstate"
	"github.com/example/myeditor/internal/display"
	"github.com/example/myeditor/internal/editor"
	"github.com/example/myeditor/internal/shapes"
)

type listCmd struct {
	*root
	fs       *flag.FlagSet
	file     string
	capacity int
}

func parseListCmd(args []string, r *root) (*listCmd, error) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	cmd := &listCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.file, "file", defaultString(r.config.File, appstate.DefaultFile), "drawing to list")
	fs.IntVar(&cmd.capacity, "capacity", defaultInt(r.config.Capacity, editor.DefaultCapacity), "maximum number of shapes to read")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", cmd.capacity)
	}
	switch fs.NArg() {
	case 0:
	case 1:
		cmd.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *listCmd) Run() error {
	list, rep, err := readDrawing(c.file, c.capacity)
	if err != nil {
		return err
	}
	if err := writeTable(c.stdout, appstate.Rows(list)); err != nil {
		return err
	}
	fmt.Fprintln(c.stderr, rep.Summary())
	for _, p := range rep.Problems {
		fmt.Fprintf(c.stderr, "  %v\n", p)
	}
	return nil
}

func (c *listCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// writeTable prints rows under the same headings as the window's table.
func writeTable(w io.Writer, rows []appstate.TableRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(appstate.TableColumns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row.Cells(), "\t"))
	}
	return tw.Flush()
}

type kindsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseKindsCmd(args []string, r *root) (*kindsCmd, error) {
	fs := flag.NewFlagSet("kinds", flag.ContinueOnError)
	cmd := &kindsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *kindsCmd) Run() error {
	fmt.Fprintln(c.stdout, "available shape kinds (* marks the default kind):")
	def := defaultString(c.config.Kind, shapes.KindLine.String())
	for _, k := range shapes.Kinds() {
		marker := " "
		if strings.EqualFold(def, k.String()) {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %-13s %s\n", marker, k.String(), k.Label())
	}
	return nil
}

func (c *kindsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// listMonitors is replaced in tests.
var listMonitors = display.ListMonitors

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	cmd := &monitorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *monitorsCmd) Run() error {
	monitors, err := listMonitors()
	if err != nil {
		return err
	}
	if len(monitors) == 0 {
		fmt.Fprintln(c.stdout, "no monitors available")
		return nil
	}
	fmt.Fprintln(c.stdout, "available monitors (* marks the primary monitor):")
	for _, m := range monitors {
		marker := " "
		if m.Primary {
			marker = "*"
		}
		size := display.WindowSize(m)
		fmt.Fprintf(c.stdout, "%s %d: %-10s %dx%d+%d+%d window %dx%d\n", marker, m.Index, m.Name,
			m.Rect.Dx(), m.Rect.Dy(), m.Rect.Min.X, m.Rect.Min.Y, size.X, size.Y)
	}
	fmt.Fprintln(c.stdout, "selectors: primary, <index>, #<index>, name substring")
	return nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}
