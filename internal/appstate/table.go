package appstate

import (
	"image"
	"image/draw"
	"strconv"

	"github.com/example/myeditor/internal/editor"
	"github.com/example/myeditor/internal/shapes"
	"github.com/example/myeditor/internal/theme"
)

const rowHeight = 18

// TableColumns are the headings of the shape table.
var TableColumns = []string{"#", "Kind", "x1", "y1", "x2", "y2"}

// columnOffsets are the x offsets of each column inside the table.
var columnOffsets = []int{6, 34, 130, 172, 214, 256}

// TableRow is one shape as listed in the table.
type TableRow struct {
	Index          int
	Kind           shapes.Kind
	X1, Y1, X2, Y2 float64
}

// Cells formats the row in column order. Indices are shown one-based.
func (r TableRow) Cells() []string {
	return []string{
		strconv.Itoa(r.Index + 1),
		r.Kind.String(),
		formatCoord(r.X1),
		formatCoord(r.Y1),
		formatCoord(r.X2),
		formatCoord(r.Y2),
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Rows lists shapes in draw order.
func Rows(list []shapes.Shape) []TableRow {
	rows := make([]TableRow, len(list))
	for i, s := range list {
		x1, y1, x2, y2 := s.Coords()
		rows[i] = TableRow{Index: i, Kind: s.Kind(), X1: x1, Y1: y1, X2: x2, Y2: y2}
	}
	return rows
}

// TableView lists the shapes of a collection and mirrors its selection.
type TableView struct {
	rect     image.Rectangle
	rows     []TableRow
	selected int
	hover    int
	scroll   int
	detach   []func()
}

// NewTableView returns an empty table.
func NewTableView() *TableView {
	return &TableView{selected: editor.NoSelection, hover: -1}
}

// Attach subscribes the table to c and copies its current contents.
func (t *TableView) Attach(c *editor.Collection) {
	t.Detach()
	refresh := func() {
		t.rows = Rows(c.Shapes())
		t.selected = editor.NoSelection
		if i, ok := c.Selected(); ok {
			t.selected = i
		}
		t.clampScroll()
	}
	t.detach = append(t.detach,
		c.OnChange(refresh),
		c.OnSelect(func(i int) {
			t.selected = i
			t.ensureVisible(i)
		}),
	)
	refresh()
}

// Detach removes the table's collection listeners.
func (t *TableView) Detach() {
	for _, fn := range t.detach {
		fn()
	}
	t.detach = nil
}

func (t *TableView) Rect() image.Rectangle { return t.rect }
func (t *TableView) Rows() []TableRow      { return t.rows }
func (t *TableView) Selected() int         { return t.selected }

func (t *TableView) SetRect(r image.Rectangle) {
	t.rect = r
	t.clampScroll()
}

// visibleRows is the number of rows that fit below the header.
func (t *TableView) visibleRows() int {
	n := t.rect.Dy()/rowHeight - 1
	if n < 0 {
		return 0
	}
	return n
}

func (t *TableView) clampScroll() {
	max := len(t.rows) - t.visibleRows()
	if t.scroll > max {
		t.scroll = max
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

func (t *TableView) ensureVisible(i int) {
	if i < 0 {
		return
	}
	if i < t.scroll {
		t.scroll = i
	} else if n := t.visibleRows(); n > 0 && i >= t.scroll+n {
		t.scroll = i - n + 1
	}
	t.clampScroll()
}

// Scroll moves the first visible row by delta rows.
func (t *TableView) Scroll(delta int) {
	t.scroll += delta
	t.clampScroll()
}

// RowAt returns the shape index of the row under p, or NoSelection for the
// header, empty space and points outside the table.
func (t *TableView) RowAt(p image.Point) int {
	if !p.In(t.rect) {
		return editor.NoSelection
	}
	line := (p.Y - t.rect.Min.Y) / rowHeight
	if line == 0 {
		return editor.NoSelection
	}
	i := t.scroll + line - 1
	if i >= len(t.rows) {
		return editor.NoSelection
	}
	return i
}

// Hover records the row under p for highlighting.
func (t *TableView) Hover(p image.Point) {
	t.hover = t.RowAt(p)
}

func (t *TableView) Draw(dst *image.RGBA, th *theme.Theme) {
	r := t.rect
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, &image.Uniform{th.TableBackground}, image.Point{}, draw.Src)
	header := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+rowHeight)
	draw.Draw(dst, header, &image.Uniform{th.TableHeader}, image.Point{}, draw.Src)
	t.drawCells(dst, header, TableColumns, th)
	for line := 0; line < t.visibleRows(); line++ {
		i := t.scroll + line
		if i >= len(t.rows) {
			break
		}
		y := r.Min.Y + (line+1)*rowHeight
		row := image.Rect(r.Min.X, y, r.Max.X, y+rowHeight)
		switch i {
		case t.selected:
			draw.Draw(dst, row, &image.Uniform{th.TableSelected}, image.Point{}, draw.Src)
		case t.hover:
			draw.Draw(dst, row, &image.Uniform{th.ButtonBackgroundHover}, image.Point{}, draw.Src)
		}
		t.drawCells(dst, row, t.rows[i].Cells(), th)
		draw.Draw(dst, image.Rect(row.Min.X, row.Max.Y-1, row.Max.X, row.Max.Y), &image.Uniform{th.TableGrid}, image.Point{}, draw.Src)
	}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), &image.Uniform{th.TableGrid}, image.Point{}, draw.Src)
}

func (t *TableView) drawCells(dst *image.RGBA, row image.Rectangle, cells []string, th *theme.Theme) {
	clip := dst.SubImage(row).(*image.RGBA)
	for c, text := range cells {
		if c >= len(columnOffsets) {
			break
		}
		cell := image.Rect(row.Min.X+columnOffsets[c], row.Min.Y, row.Max.X, row.Max.Y)
		drawLabel(clip, cell, 0, text, th.TableText)
	}
}
