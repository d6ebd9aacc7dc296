package editor

import (
	"log"

	"github.com/example/myeditor/internal/shapes"
)

// DefaultCapacity is the number of shapes a collection holds unless
// configured otherwise.
const DefaultCapacity = 112

// NoSelection is reported to selection listeners when nothing is selected.
const NoSelection = -1

type changeListener struct {
	id int
	fn func()
}

type selectListener struct {
	id int
	fn func(index int)
}

// Collection is the ordered, bounded store of committed shapes. Insertion
// order is drawing order. It is not safe for concurrent use; all mutation
// happens on the UI event loop.
type Collection struct {
	items    []shapes.Shape
	capacity int
	selected int

	nextID   int
	onChange []changeListener
	onSelect []selectListener
}

// NewCollection creates an empty collection. A capacity below one falls back
// to DefaultCapacity.
func NewCollection(capacity int) *Collection {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Collection{capacity: capacity, selected: NoSelection}
}

func (c *Collection) Len() int   { return len(c.items) }
func (c *Collection) Cap() int   { return c.capacity }
func (c *Collection) Full() bool { return len(c.items) >= c.capacity }

// Shapes returns a copy of the sequence in drawing order.
func (c *Collection) Shapes() []shapes.Shape {
	out := make([]shapes.Shape, len(c.items))
	copy(out, c.items)
	return out
}

// At returns the shape at index i or nil when out of range.
func (c *Collection) At(i int) shapes.Shape {
	if i < 0 || i >= len(c.items) {
		return nil
	}
	return c.items[i]
}

// Selected returns the selected index, if any.
func (c *Collection) Selected() (int, bool) {
	return c.selected, c.selected != NoSelection
}

// Add appends s unless the collection is full.
func (c *Collection) Add(s shapes.Shape) bool {
	if s == nil || c.Full() {
		return false
	}
	c.items = append(c.items, s)
	c.notifyChange()
	return true
}

// Delete removes the shape at index. The selection keeps pointing at the
// same shape, or is cleared when that shape is the one removed.
func (c *Collection) Delete(index int) bool {
	if index < 0 || index >= len(c.items) {
		return false
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	switch {
	case c.selected == index:
		c.selected = NoSelection
	case c.selected > index:
		c.selected--
	}
	c.notifyChange()
	return true
}

// Clear removes every shape and the selection.
func (c *Collection) Clear() {
	c.items = nil
	c.selected = NoSelection
	c.notifyChange()
}

// Select marks index as selected, or clears the selection when index is out
// of range.
func (c *Collection) Select(index int) {
	if index >= 0 && index < len(c.items) {
		c.selected = index
	} else {
		c.selected = NoSelection
	}
	c.notifySelect()
}

// Replace swaps in a whole new sequence, keeping at most Cap() shapes, and
// clears the selection.
func (c *Collection) Replace(list []shapes.Shape) {
	items := make([]shapes.Shape, 0, len(list))
	for _, s := range list {
		if s == nil {
			continue
		}
		if len(items) == c.capacity {
			break
		}
		items = append(items, s)
	}
	c.items = items
	c.selected = NoSelection
	c.notifyChange()
	c.notifySelect()
}

// OnChange registers fn to run after every add, delete, clear or replace.
// The returned function unregisters it.
func (c *Collection) OnChange(fn func()) (remove func()) {
	c.nextID++
	id := c.nextID
	c.onChange = append(c.onChange, changeListener{id: id, fn: fn})
	return func() {
		for i, l := range c.onChange {
			if l.id == id {
				c.onChange = append(c.onChange[:i:i], c.onChange[i+1:]...)
				return
			}
		}
	}
}

// OnSelect registers fn to receive the selected index, NoSelection when
// cleared. The returned function unregisters it.
func (c *Collection) OnSelect(fn func(index int)) (remove func()) {
	c.nextID++
	id := c.nextID
	c.onSelect = append(c.onSelect, selectListener{id: id, fn: fn})
	return func() {
		for i, l := range c.onSelect {
			if l.id == id {
				c.onSelect = append(c.onSelect[:i:i], c.onSelect[i+1:]...)
				return
			}
		}
	}
}

func (c *Collection) notifyChange() {
	listeners := append([]changeListener(nil), c.onChange...)
	for _, l := range listeners {
		guard("change", l.fn)
	}
}

func (c *Collection) notifySelect() {
	listeners := append([]selectListener(nil), c.onSelect...)
	idx := c.selected
	for _, l := range listeners {
		fn := l.fn
		guard("selection", func() { fn(idx) })
	}
}

// guard runs a single listener so that a panic is logged instead of
// stopping the remaining listeners.
func guard(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s listener: %v", event, r)
		}
	}()
	fn()
}
