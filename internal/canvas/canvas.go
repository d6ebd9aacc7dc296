// Package canvas provides drawing surfaces for shapes: a raster canvas that
// keeps a display list of erasable items, and an SVG exporter.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/example/myeditor/internal/shapes"
	"github.com/example/myeditor/internal/theme"
)

type itemKind int

const (
	itemLine itemKind = iota
	itemRect
	itemEllipse
	itemPolygon
)

type item struct {
	handle shapes.Handle
	kind   itemKind
	pts    []shapes.Pt
	box    shapes.Box
	paint  shapes.Paint
}

// list is the display list shared by every surface in this package. Handles
// grow monotonically and are never reused, even across Clear.
type list struct {
	items []item
	next  shapes.Handle
}

func (l *list) add(it item) shapes.Handle {
	l.next++
	it.handle = l.next
	l.items = append(l.items, it)
	return it.handle
}

func (l *list) Line(a, b shapes.Pt, p shapes.Paint) shapes.Handle {
	return l.add(item{kind: itemLine, pts: []shapes.Pt{a, b}, paint: p})
}

func (l *list) Rect(b shapes.Box, p shapes.Paint) shapes.Handle {
	return l.add(item{kind: itemRect, box: b, paint: p})
}

func (l *list) Ellipse(b shapes.Box, p shapes.Paint) shapes.Handle {
	return l.add(item{kind: itemEllipse, box: b, paint: p})
}

func (l *list) Polygon(pts []shapes.Pt, p shapes.Paint) shapes.Handle {
	cp := make([]shapes.Pt, len(pts))
	copy(cp, pts)
	return l.add(item{kind: itemPolygon, pts: cp, paint: p})
}

// Erase removes the item with handle h. Unknown handles are ignored.
func (l *list) Erase(h shapes.Handle) {
	for i, it := range l.items {
		if it.handle == h {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return
		}
	}
}

// Clear removes every item.
func (l *list) Clear() { l.items = l.items[:0] }

// Len returns the number of live items.
func (l *list) Len() int { return len(l.items) }

// Canvas rasterises its display list onto an RGBA image.
type Canvas struct {
	list
	width, height int
	theme         *theme.Theme
}

// New returns an empty canvas of the given size painted with th.
func New(width, height int, th *theme.Theme) *Canvas {
	if th == nil {
		th = theme.Default()
	}
	return &Canvas{width: width, height: height, theme: th}
}

func (c *Canvas) Size() image.Point        { return image.Pt(c.width, c.height) }
func (c *Canvas) Theme() *theme.Theme      { return c.theme }
func (c *Canvas) SetTheme(th *theme.Theme) { c.theme = th }
func (c *Canvas) Resize(width, height int) { c.width, c.height = width, height }

// Image renders the canvas into a new image.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	c.Render(img, image.Point{})
	return img
}

// Render paints the background and every item into dst with the canvas
// origin at origin. Drawing is clipped to the canvas area.
func (c *Canvas) Render(dst *image.RGBA, origin image.Point) {
	area := image.Rectangle{Min: origin, Max: origin.Add(c.Size())}.Intersect(dst.Bounds())
	if area.Empty() {
		return
	}
	img := dst.SubImage(area).(*image.RGBA)
	draw.Draw(img, area, &image.Uniform{c.theme.CanvasBackground}, image.Point{}, draw.Src)
	for _, it := range c.items {
		c.paint(img, it, origin)
	}
}

func (c *Canvas) paint(img *image.RGBA, it item, origin image.Point) {
	stroke, hasStroke := InkColor(c.theme, it.paint.Stroke)
	fill, hasFill := InkColor(c.theme, it.paint.Fill)
	width := it.paint.Width
	if width < 1 {
		width = 1
	}
	off := shapes.Pt{X: float64(origin.X), Y: float64(origin.Y)}
	pt := func(p shapes.Pt) shapes.Pt { return shapes.Pt{X: p.X + off.X, Y: p.Y + off.Y} }
	switch it.kind {
	case itemLine:
		if hasStroke {
			drawLine(img, pt(it.pts[0]), pt(it.pts[1]), stroke, width, it.paint.Dash, 0)
		}
	case itemRect:
		b := it.box.Add(off)
		if hasFill {
			fillRect(img, b, fill)
		}
		if hasStroke {
			drawRect(img, b, stroke, width, it.paint.Dash)
		}
	case itemEllipse:
		ctr := pt(it.box.Center())
		rx, ry := it.box.Dx()/2, it.box.Dy()/2
		if hasFill {
			fillEllipse(img, ctr.X, ctr.Y, rx, ry, fill)
		}
		if hasStroke {
			drawEllipse(img, ctr.X, ctr.Y, rx, ry, stroke, width, it.paint.Dash)
		}
	case itemPolygon:
		pts := make([]shapes.Pt, len(it.pts))
		for i, p := range it.pts {
			pts[i] = pt(p)
		}
		if hasFill {
			fillPolygon(img, pts, fill)
		}
		if hasStroke {
			drawPolyline(img, pts, true, stroke, width, it.paint.Dash, 0)
		}
	}
}

// InkColor resolves ink through th. It reports false for InkNone and for
// fully transparent colours.
func InkColor(th *theme.Theme, ink shapes.Ink) (color.RGBA, bool) {
	var c color.RGBA
	switch ink {
	case shapes.InkOutline:
		c = th.ShapeOutline
	case shapes.InkRectFill:
		c = th.RectFill
	case shapes.InkEllipseFill:
		c = th.EllipseFill
	case shapes.InkStarFill:
		c = th.StarFill
	case shapes.InkEndpoint:
		c = th.Endpoint
	case shapes.InkPreview:
		c = th.Preview
	case shapes.InkHighlight:
		c = th.Highlight
	default:
		return color.RGBA{}, false
	}
	return c, c.A != 0
}
