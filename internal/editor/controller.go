package editor

import (
	"errors"
	"fmt"

	"github.com/example/myeditor/internal/shapes"
)

// ErrCapacityReached is returned when a shape cannot be started or committed
// because the collection is full.
var ErrCapacityReached = errors.New("shape capacity reached")

// State is the phase of the drawing controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Controller turns pointer gestures into committed shapes. While dragging it
// keeps the handles of the rubber band so each frame replaces the last.
type Controller struct {
	store   *Collection
	surface shapes.Surface
	kind    shapes.Kind

	state          State
	current        shapes.Shape
	startX, startY float64
	rubber         []shapes.Handle
}

// NewController creates an idle controller drawing lines into store.
func NewController(store *Collection, surface shapes.Surface) *Controller {
	return &Controller{store: store, surface: surface, kind: shapes.KindLine}
}

func (c *Controller) State() State          { return c.state }
func (c *Controller) Kind() shapes.Kind     { return c.kind }
func (c *Controller) Current() shapes.Shape { return c.current }

// SetKind selects the kind used by the next pointer-down. A drag in progress
// is abandoned.
func (c *Controller) SetKind(k shapes.Kind) error {
	if !k.Valid() {
		return &shapes.UnknownKindError{Name: k.String()}
	}
	c.Abort()
	c.kind = k
	return nil
}

// PointerDown starts a new shape at (x, y). Points are committed straight
// away; every other kind enters the dragging state.
func (c *Controller) PointerDown(x, y float64) error {
	if c.state == Dragging {
		c.Abort()
	}
	if c.store.Full() {
		return ErrCapacityReached
	}
	s, err := shapes.New(c.kind)
	if err != nil {
		return err
	}
	s.SetCoords(x, y, x, y)
	if c.kind.Instant() {
		if !c.store.Add(s) {
			return ErrCapacityReached
		}
		return nil
	}
	c.current = s
	c.startX, c.startY = x, y
	c.state = Dragging
	c.rubber = s.DrawPreview(c.surface)
	return nil
}

// PointerMove updates the rubber band. It does nothing when idle.
func (c *Controller) PointerMove(x, y float64) {
	if c.state != Dragging {
		return
	}
	c.erase()
	c.current.SetCoords(c.startX, c.startY, x, y)
	c.rubber = c.current.DrawPreview(c.surface)
}

// PointerUp commits the shape being dragged. The controller is idle
// afterwards whether or not the collection accepted it.
func (c *Controller) PointerUp(x, y float64) error {
	if c.state != Dragging {
		return nil
	}
	s := c.current
	s.SetCoords(c.startX, c.startY, x, y)
	c.reset()
	if !c.store.Add(s) {
		return ErrCapacityReached
	}
	return nil
}

// Abort drops the shape being dragged, if any.
func (c *Controller) Abort() {
	if c.state != Dragging {
		return
	}
	c.reset()
}

// repaint draws the rubber band again after the surface was wiped. The old
// handles are gone with the wipe so they are not erased.
func (c *Controller) repaint() {
	if c.state != Dragging {
		return
	}
	c.rubber = c.current.DrawPreview(c.surface)
}

func (c *Controller) reset() {
	c.erase()
	c.current = nil
	c.state = Idle
}

func (c *Controller) erase() {
	for _, h := range c.rubber {
		c.surface.Erase(h)
	}
	c.rubber = nil
}
