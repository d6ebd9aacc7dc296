// Package editor holds the drawing session: the shape collection, the
// pointer controller and the operations the window and the CLI call.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/example/myeditor/internal/shapefile"
	"github.com/example/myeditor/internal/shapes"
)

// Canvas is a Surface that can also be wiped in one call.
type Canvas interface {
	shapes.Surface
	Clear()
}

// highlight is the frame drawn around the selected shape.
var highlight = shapes.Paint{Stroke: shapes.InkHighlight, Width: 1, Dash: 3}

const highlightMargin = 3

// Option configures an Editor.
type Option func(*Editor)

// WithCapacity sets the maximum number of shapes.
func WithCapacity(n int) Option {
	return func(e *Editor) { e.capacity = n }
}

// WithMessageListener registers a callback invoked with every status
// message the editor produces.
func WithMessageListener(fn func(msg string)) Option {
	return func(e *Editor) { e.onMessage = fn }
}

// WithKind sets the initial shape kind.
func WithKind(k shapes.Kind) Option {
	return func(e *Editor) {
		if k.Valid() {
			e.kind = k
		}
	}
}

// Editor is one drawing session bound to a canvas.
type Editor struct {
	canvas   Canvas
	capacity int
	kind     shapes.Kind

	shapes    *Collection
	control   *Controller
	message   string
	onMessage func(string)
}

// New creates an editor drawing into canvas.
func New(canvas Canvas, opts ...Option) *Editor {
	e := &Editor{canvas: canvas, capacity: DefaultCapacity, kind: shapes.KindLine}
	for _, o := range opts {
		o(e)
	}
	e.shapes = NewCollection(e.capacity)
	e.control = NewController(e.shapes, canvas)
	e.control.kind = e.kind
	e.shapes.OnChange(e.Redraw)
	e.shapes.OnSelect(func(int) { e.Redraw() })
	return e
}

func (e *Editor) Collection() *Collection { return e.shapes }
func (e *Editor) Controller() *Controller { return e.control }
func (e *Editor) Kind() shapes.Kind       { return e.control.Kind() }
func (e *Editor) Shapes() []shapes.Shape  { return e.shapes.Shapes() }
func (e *Editor) Selected() (int, bool)   { return e.shapes.Selected() }
func (e *Editor) Usage() (n, max int)     { return e.shapes.Len(), e.shapes.Cap() }
func (e *Editor) Message() string         { return e.message }
func (e *Editor) Dragging() bool          { return e.control.State() == Dragging }

// Status renders the counter and current kind for the status bar.
func (e *Editor) Status() string {
	n, max := e.Usage()
	return fmt.Sprintf("Shapes: %d/%d | Kind: %s", n, max, e.Kind().Label())
}

func (e *Editor) setMessage(format string, args ...any) {
	e.message = fmt.Sprintf(format, args...)
	log.Print(e.message)
	if e.onMessage != nil {
		e.onMessage(e.message)
	}
}

func (e *Editor) report(err error) {
	if errors.Is(err, ErrCapacityReached) {
		e.setMessage("Shape limit reached (%d/%d)", e.shapes.Len(), e.shapes.Cap())
		return
	}
	e.setMessage("%v", err)
}

// OnPointerDown forwards a button press at (x, y).
func (e *Editor) OnPointerDown(x, y float64) {
	if err := e.control.PointerDown(x, y); err != nil {
		e.report(err)
	}
}

// OnPointerMove forwards pointer motion with the button held.
func (e *Editor) OnPointerMove(x, y float64) {
	e.control.PointerMove(x, y)
}

// OnPointerUp forwards a button release.
func (e *Editor) OnPointerUp(x, y float64) {
	if err := e.control.PointerUp(x, y); err != nil {
		e.report(err)
	}
}

// SetShapeKind selects the kind for the next shape.
func (e *Editor) SetShapeKind(k shapes.Kind) error {
	if err := e.control.SetKind(k); err != nil {
		return err
	}
	e.setMessage("Kind: %s", k.Label())
	return nil
}

// Abort cancels a drag in progress.
func (e *Editor) Abort() {
	e.control.Abort()
}

// ClearAll removes every shape.
func (e *Editor) ClearAll() {
	e.control.Abort()
	e.shapes.Clear()
	e.setMessage("Cleared")
}

// DeleteAt removes the shape at index i.
func (e *Editor) DeleteAt(i int) bool {
	if !e.shapes.Delete(i) {
		return false
	}
	e.setMessage("Deleted shape %d", i+1)
	return true
}

// DeleteSelected removes the selected shape, if any.
func (e *Editor) DeleteSelected() bool {
	i, ok := e.shapes.Selected()
	if !ok {
		return false
	}
	return e.DeleteAt(i)
}

// SelectAt selects the shape at index i, or clears the selection when i is
// out of range.
func (e *Editor) SelectAt(i int) {
	e.shapes.Select(i)
}

// ShapeAt returns the index of the topmost shape whose bounds contain
// (x, y), or NoSelection.
func (e *Editor) ShapeAt(x, y float64) int {
	p := shapes.Pt{X: x, Y: y}
	list := e.shapes.Shapes()
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Bounds().Inset(-highlightMargin).Contains(p) {
			return i
		}
	}
	return NoSelection
}

// Redraw repaints every committed shape in order, the selection frame on top
// and the rubber band of a drag in progress.
func (e *Editor) Redraw() {
	e.canvas.Clear()
	for _, s := range e.shapes.Shapes() {
		s.Draw(e.canvas)
	}
	if i, ok := e.shapes.Selected(); ok {
		e.canvas.Rect(e.shapes.At(i).Bounds().Inset(-highlightMargin), highlight)
	}
	e.control.repaint()
}

// Save writes the drawing as JSON.
func (e *Editor) Save(w io.Writer) error {
	return shapefile.Encode(w, e.shapes.Shapes())
}

// Load replaces the drawing with the shapes read from r. The collection is
// left untouched when the document cannot be parsed.
func (e *Editor) Load(r io.Reader) (shapefile.Report, error) {
	list, rep, err := shapefile.Decode(r, e.shapes.Cap())
	if err != nil {
		e.setMessage("Load failed: %v", err)
		return rep, err
	}
	for _, p := range rep.Problems {
		log.Printf("load: %v", p)
	}
	e.control.Abort()
	e.shapes.Replace(list)
	e.setMessage("%s", rep.Summary())
	return rep, nil
}

// SaveFile writes the drawing to path.
func (e *Editor) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		e.setMessage("Save failed: %v", err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := e.Save(f); err != nil {
		f.Close()
		e.setMessage("Save failed: %v", err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		e.setMessage("Save failed: %v", err)
		return fmt.Errorf("save %s: %w", path, err)
	}
	e.setMessage("Saved %d shapes to %s", e.shapes.Len(), path)
	return nil
}

// LoadFile replaces the drawing with the contents of path.
func (e *Editor) LoadFile(path string) (shapefile.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		e.setMessage("Load failed: %v", err)
		return shapefile.Report{}, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()
	rep, err := e.Load(f)
	if err != nil {
		return rep, fmt.Errorf("load %s: %w", path, err)
	}
	return rep, nil
}
