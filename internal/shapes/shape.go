package shapes

import "math"

// Shape is a drawable entity defined by two corners. The set of
// implementations is closed; use New to construct one.
type Shape interface {
	Kind() Kind
	Coords() (x1, y1, x2, y2 float64)
	SetCoords(x1, y1, x2, y2 float64)
	// Bounds returns the area covered by the shape.
	Bounds() Box
	// Draw renders the committed appearance.
	Draw(s Surface)
	// DrawPreview renders the in-progress outline and returns the handles
	// needed to erase it before the next frame.
	DrawPreview(s Surface) []Handle

	sealed()
}

type corners struct {
	x1, y1, x2, y2 float64
}

func (c *corners) Coords() (x1, y1, x2, y2 float64) { return c.x1, c.y1, c.x2, c.y2 }

func (c *corners) SetCoords(x1, y1, x2, y2 float64) {
	c.x1, c.y1, c.x2, c.y2 = x1, y1, x2, y2
}

func (c *corners) box() Box { return Canon(c.x1, c.y1, c.x2, c.y2) }

func (*corners) sealed() {}

// PointRadius is the radius of the dot drawn for a Point.
const PointRadius = 3

// Point is a dot at the first corner; the second corner is ignored.
type Point struct{ corners }

func (*Point) Kind() Kind { return KindPoint }

func (p *Point) Bounds() Box { return circleBox(Pt{p.x1, p.y1}, PointRadius) }

func (p *Point) Draw(s Surface) {
	s.Ellipse(p.Bounds(), Paint{Stroke: InkOutline, Fill: InkOutline, Width: 1})
}

func (p *Point) DrawPreview(s Surface) []Handle {
	return []Handle{s.Ellipse(p.Bounds(), Paint{Stroke: InkPreview, Width: 1})}
}

// Line is a straight segment between the two corners.
type Line struct{ corners }

func (*Line) Kind() Kind { return KindLine }

func (l *Line) Bounds() Box { return l.box() }

func (l *Line) Draw(s Surface) {
	s.Line(Pt{l.x1, l.y1}, Pt{l.x2, l.y2}, finalStroke)
}

func (l *Line) DrawPreview(s Surface) []Handle {
	return []Handle{s.Line(Pt{l.x1, l.y1}, Pt{l.x2, l.y2}, previewStroke)}
}

// Rect is an axis-aligned box spanned by the two corners.
type Rect struct{ corners }

func (*Rect) Kind() Kind { return KindRect }

func (r *Rect) Bounds() Box { return r.box() }

func (r *Rect) Draw(s Surface) {
	p := finalStroke
	p.Fill = InkRectFill
	s.Rect(r.box(), p)
}

func (r *Rect) DrawPreview(s Surface) []Handle {
	return []Handle{s.Rect(r.box(), previewStroke)}
}

// Ellipse is entered from its centre: the first corner is the centre and the
// second corner sets the radii.
type Ellipse struct{ corners }

func (*Ellipse) Kind() Kind { return KindEllipse }

// Radii returns the horizontal and vertical radius.
func (e *Ellipse) Radii() (rx, ry float64) {
	return math.Abs(e.x2 - e.x1), math.Abs(e.y2 - e.y1)
}

func (e *Ellipse) Bounds() Box {
	rx, ry := e.Radii()
	return Box{Min: Pt{e.x1 - rx, e.y1 - ry}, Max: Pt{e.x1 + rx, e.y1 + ry}}
}

func (e *Ellipse) Draw(s Surface) {
	p := finalStroke
	p.Fill = InkEllipseFill
	s.Ellipse(e.Bounds(), p)
}

func (e *Ellipse) DrawPreview(s Surface) []Handle {
	return []Handle{s.Ellipse(e.Bounds(), previewStroke)}
}

const (
	starVertices   = 10
	starInnerRatio = 0.4
)

// Star is a five pointed star inscribed in the box spanned by the corners.
type Star struct{ corners }

func (*Star) Kind() Kind { return KindStar }

func (st *Star) Bounds() Box { return st.box() }

// Vertices returns the polygon, alternating outer and inner radius and
// starting with the upward pointing tip.
func (st *Star) Vertices() []Pt {
	return starPoints(st.box())
}

func starPoints(b Box) []Pt {
	c := b.Center()
	outer := math.Min(b.Dx(), b.Dy()) / 2
	inner := outer * starInnerRatio
	pts := make([]Pt, starVertices)
	for i := range pts {
		angle := math.Pi/2 + 2*math.Pi*float64(i)/starVertices
		r := outer
		if i%2 == 1 {
			r = inner
		}
		pts[i] = Pt{c.X + r*math.Cos(angle), c.Y - r*math.Sin(angle)}
	}
	return pts
}

func (st *Star) Draw(s Surface) {
	p := finalStroke
	p.Fill = InkStarFill
	s.Polygon(st.Vertices(), p)
}

func (st *Star) DrawPreview(s Surface) []Handle {
	return []Handle{s.Polygon(st.Vertices(), previewStroke)}
}
