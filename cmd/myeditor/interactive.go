package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/example/myeditor/internal/appstate"
	"github.com/example/myeditor/internal/canvas"
	"github.com/example/myeditor/internal/editor"
	"github.com/example/myeditor/internal/shapes"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var errUnknownCommand = errors.New("unknown command")

// interactiveCmd drives an editor from text commands, one per line. It uses
// the same operations as the window with an offscreen canvas.
type interactiveCmd struct {
	*root
	fs       *flag.FlagSet
	execs    commandList
	file     string
	width    int
	height   int
	capacity int

	stdin io.Reader
	ed    *editor.Editor
	cv    *canvas.Canvas
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	c := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.Var(&c.execs, "e", "execute a command and exit (may be specified multiple times)")
	fs.StringVar(&c.file, "file", defaultString(r.config.File, appstate.DefaultFile), "default file for save, load and export")
	fs.IntVar(&c.width, "width", 800, "canvas width used by export")
	fs.IntVar(&c.height, "height", 600, "canvas height used by export")
	fs.IntVar(&c.capacity, "capacity", defaultInt(r.config.Capacity, editor.DefaultCapacity), "maximum number of shapes")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCmd) start() error {
	if c.ed != nil {
		return nil
	}
	k, err := shapes.ParseKind(defaultString(c.config.Kind, shapes.KindLine.String()))
	if err != nil {
		return err
	}
	c.cv = canvas.New(c.width, c.height, c.activeTheme)
	c.ed = editor.New(c.cv,
		editor.WithCapacity(c.capacity),
		editor.WithKind(k),
		editor.WithMessageListener(func(msg string) { fmt.Fprintln(c.stdout, msg) }),
	)
	return nil
}

func (c *interactiveCmd) Run() error {
	if err := c.start(); err != nil {
		return err
	}
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(c.stdin)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command and reports whether the session should end.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 || strings.HasPrefix(args[0], "#") {
		return false, nil
	}
	name, rest := strings.ToLower(args[0]), args[1:]
	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		c.printHelp()
	case "kind":
		if len(rest) != 1 {
			return false, fmt.Errorf("kind requires a name")
		}
		k, err := shapes.ParseKind(rest[0])
		if err != nil {
			return false, err
		}
		return false, c.ed.SetShapeKind(k)
	case "down", "move", "up":
		x, y, err := parsePoint(name, rest)
		if err != nil {
			return false, err
		}
		switch name {
		case "down":
			c.ed.OnPointerDown(x, y)
		case "move":
			c.ed.OnPointerMove(x, y)
		case "up":
			c.ed.OnPointerUp(x, y)
		}
	case "select":
		i, err := parseIndex(name, rest)
		if err != nil {
			return false, err
		}
		c.ed.SelectAt(i)
	case "delete":
		if len(rest) == 0 {
			if !c.ed.DeleteSelected() {
				return false, fmt.Errorf("no shape selected")
			}
			return false, nil
		}
		i, err := parseIndex(name, rest)
		if err != nil {
			return false, err
		}
		if !c.ed.DeleteAt(i) {
			return false, fmt.Errorf("no shape %s", rest[0])
		}
	case "abort":
		c.ed.Abort()
	case "clear":
		c.ed.ClearAll()
	case "save":
		return false, c.ed.SaveFile(c.pathArg(rest))
	case "load":
		_, err := c.ed.LoadFile(c.pathArg(rest))
		return false, err
	case "export":
		return false, c.export(rest)
	case "list":
		return false, writeTable(c.stdout, appstate.Rows(c.ed.Shapes()))
	case "status":
		fmt.Fprintln(c.stdout, c.ed.Status())
		if i, ok := c.ed.Selected(); ok {
			fmt.Fprintf(c.stdout, "Selected: %d\n", i+1)
		}
		if c.ed.Dragging() {
			fmt.Fprintln(c.stdout, "Dragging")
		}
	default:
		return false, fmt.Errorf("%w: %s", errUnknownCommand, args[0])
	}
	return false, nil
}

func (c *interactiveCmd) pathArg(rest []string) string {
	if len(rest) > 0 {
		return strings.Join(rest, " ")
	}
	return c.file
}

func (c *interactiveCmd) export(rest []string) error {
	out := appstate.ExportPath(c.file)
	if len(rest) > 0 {
		out = strings.Join(rest, " ")
	}
	if isSVG(out) {
		s := canvas.NewSVG(c.width, c.height, c.activeTheme)
		for _, sh := range c.ed.Shapes() {
			sh.Draw(s)
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if _, err := s.WriteTo(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", out, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	} else {
		cv := canvas.New(c.width, c.height, c.activeTheme)
		for _, sh := range c.ed.Shapes() {
			sh.Draw(cv)
		}
		if err := writePNGFile(out, cv.Image()); err != nil {
			return err
		}
	}
	fmt.Fprintf(c.stdout, "Exported %s\n", out)
	return nil
}

func parsePoint(name string, args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("%s requires x y", name)
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, 0, fmt.Errorf("%s: invalid x %q", name, args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil || math.IsInf(y, 0) || math.IsNaN(y) {
		return 0, 0, fmt.Errorf("%s: invalid y %q", name, args[1])
	}
	return x, y, nil
}

// parseIndex reads a one-based shape index as shown by list. "none" clears.
func parseIndex(name string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%s requires a shape number", name)
	}
	if strings.EqualFold(args[0], "none") {
		return editor.NoSelection, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s: invalid shape number %q", name, args[0])
	}
	return n - 1, nil
}

func (c *interactiveCmd) printHelp() {
	fmt.Fprintln(c.stdout, `commands:
  kind <name>          select the kind for the next shape
  down <x> <y>         press the pointer
  move <x> <y>         drag the pointer
  up <x> <y>           release the pointer
  abort                cancel the drag in progress
  select <n>|none      select shape n as shown by list
  delete [n]           delete shape n or the selection
  clear                remove every shape
  save [file]          write the drawing as JSON
  load [file]          replace the drawing from JSON
  export [file]        write a .png or .svg image
  list                 print the shape table
  status               print the shape counter and kind
  exit                 end the session`)
}
