package editor

import (
	"testing"

	"github.com/example/myeditor/internal/shapes"
)

func line(t *testing.T, x float64) shapes.Shape {
	t.Helper()
	s, err := shapes.NewAt(shapes.KindLine, x, 0, x, 10)
	if err != nil {
		t.Fatalf("NewAt: %v", err)
	}
	return s
}

func TestCollectionCapacity(t *testing.T) {
	c := NewCollection(3)
	for i := 0; i < 3; i++ {
		if !c.Add(line(t, float64(i))) {
			t.Fatalf("add %d rejected", i)
		}
	}
	if !c.Full() {
		t.Fatalf("collection should be full")
	}
	if c.Add(line(t, 9)) {
		t.Fatalf("add past capacity accepted")
	}
	if c.Len() != 3 {
		t.Fatalf("len %d", c.Len())
	}
	if NewCollection(0).Cap() != DefaultCapacity {
		t.Fatalf("zero capacity should use the default")
	}
}

func TestCollectionDeleteShiftsSelection(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		remove   int
		want     int
	}{
		{"before selection", 2, 0, 1},
		{"selected", 2, 2, NoSelection},
		{"after selection", 1, 3, 1},
		{"nothing selected", NoSelection, 1, NoSelection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollection(10)
			for i := 0; i < 4; i++ {
				c.Add(line(t, float64(i)))
			}
			c.Select(tt.selected)
			if !c.Delete(tt.remove) {
				t.Fatalf("delete %d failed", tt.remove)
			}
			if got, _ := c.Selected(); got != tt.want {
				t.Fatalf("selected %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollectionDeleteOutOfRange(t *testing.T) {
	c := NewCollection(4)
	c.Add(line(t, 1))
	changes := 0
	c.OnChange(func() { changes++ })
	if c.Delete(5) || c.Delete(-1) {
		t.Fatalf("out of range delete succeeded")
	}
	if changes != 0 || c.Len() != 1 {
		t.Fatalf("collection changed: %d notifications, len %d", changes, c.Len())
	}
}

func TestCollectionSelectOutOfRangeClears(t *testing.T) {
	c := NewCollection(4)
	c.Add(line(t, 1))
	var got []int
	c.OnSelect(func(i int) { got = append(got, i) })
	c.Select(0)
	c.Select(7)
	if len(got) != 2 || got[0] != 0 || got[1] != NoSelection {
		t.Fatalf("notifications %v", got)
	}
	if _, ok := c.Selected(); ok {
		t.Fatalf("selection should be cleared")
	}
}

func TestCollectionListenersIsolated(t *testing.T) {
	c := NewCollection(4)
	var order []string
	c.OnChange(func() { order = append(order, "a") })
	c.OnChange(func() { panic("boom") })
	c.OnChange(func() {
		order = append(order, "c")
		if c.Len() != 1 {
			t.Errorf("listener saw len %d before state update", c.Len())
		}
	})
	if !c.Add(line(t, 1)) {
		t.Fatalf("add failed")
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Fatalf("listener order %v", order)
	}
}

func TestCollectionRemoveListener(t *testing.T) {
	c := NewCollection(4)
	calls := 0
	remove := c.OnChange(func() { calls++ })
	c.Add(line(t, 1))
	remove()
	c.Add(line(t, 2))
	if calls != 1 {
		t.Fatalf("listener called %d times", calls)
	}
}

func TestCollectionReplace(t *testing.T) {
	c := NewCollection(2)
	c.Add(line(t, 1))
	c.Select(0)
	var events []string
	c.OnChange(func() { events = append(events, "change") })
	c.OnSelect(func(i int) { events = append(events, "select") })
	c.Replace([]shapes.Shape{line(t, 5), line(t, 6), line(t, 7)})
	if c.Len() != 2 {
		t.Fatalf("len %d, want truncation to 2", c.Len())
	}
	if _, ok := c.Selected(); ok {
		t.Fatalf("selection should be cleared")
	}
	if len(events) != 2 || events[0] != "change" || events[1] != "select" {
		t.Fatalf("events %v", events)
	}
}

func TestCollectionClear(t *testing.T) {
	c := NewCollection(4)
	c.Add(line(t, 1))
	c.Add(line(t, 2))
	c.Select(1)
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("len %d", c.Len())
	}
	if _, ok := c.Selected(); ok {
		t.Fatalf("selection should be cleared")
	}
}
