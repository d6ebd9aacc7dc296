package shapes

import "math"

// decoration draws extra geometry for a composite shape and returns the
// handles it created.
type decoration func(s Surface, x1, y1, x2, y2 float64, p Paint) []Handle

// EndRadius is the radius of the circles drawn on both ends of a
// LineWithCircles.
const EndRadius = 5

// LineWithCircles is a Line decorated with a circle on each endpoint. The
// circles are drawn after the line so they sit on top.
type LineWithCircles struct {
	Line
}

func (*LineWithCircles) Kind() Kind { return KindLineCircles }

func (l *LineWithCircles) Bounds() Box {
	return l.Line.Bounds().Inset(-EndRadius)
}

func (l *LineWithCircles) Draw(s Surface) {
	l.Line.Draw(s)
	circleEnds(s, l.x1, l.y1, l.x2, l.y2, Paint{Stroke: InkEndpoint, Fill: InkEndpoint, Width: 2})
}

func (l *LineWithCircles) DrawPreview(s Surface) []Handle {
	hs := l.Line.DrawPreview(s)
	return append(hs, circleEnds(s, l.x1, l.y1, l.x2, l.y2, previewStroke)...)
}

var circleEnds decoration = func(s Surface, x1, y1, x2, y2 float64, p Paint) []Handle {
	return []Handle{
		s.Ellipse(circleBox(Pt{x1, y1}, EndRadius), p),
		s.Ellipse(circleBox(Pt{x2, y2}, EndRadius), p),
	}
}

// CubeFrame is a parallelepiped wireframe built over the bounding box of a
// Rect. It does not paint the rectangle itself.
type CubeFrame struct {
	Rect
}

func (*CubeFrame) Kind() Kind { return KindCube }

func (c *CubeFrame) Bounds() Box {
	front, back, _ := CubeGeometry(c.box())
	return Box{
		Min: Pt{front.Min.X, back.Min.Y},
		Max: Pt{back.Max.X, front.Max.Y},
	}
}

func (c *CubeFrame) Draw(s Surface) {
	cubeFrame(s, c.x1, c.y1, c.x2, c.y2, finalStroke)
}

func (c *CubeFrame) DrawPreview(s Surface) []Handle {
	return cubeFrame(s, c.x1, c.y1, c.x2, c.y2, previewStroke)
}

// CubeDepth returns the offset between the front and back face of a cube
// frame spanning b.
func CubeDepth(b Box) float64 {
	return math.Max(1, math.Floor(math.Min(b.Dx(), b.Dy())/4))
}

// CubeGeometry returns the front face, the back face offset by
// (depth, -depth) and the four edges joining matching corners.
func CubeGeometry(b Box) (front, back Box, edges [4][2]Pt) {
	d := CubeDepth(b)
	front = b
	back = b.Add(Pt{d, -d})
	fc := [4]Pt{front.Min, {front.Max.X, front.Min.Y}, {front.Min.X, front.Max.Y}, front.Max}
	bc := [4]Pt{back.Min, {back.Max.X, back.Min.Y}, {back.Min.X, back.Max.Y}, back.Max}
	for i := range edges {
		edges[i] = [2]Pt{fc[i], bc[i]}
	}
	return front, back, edges
}

var cubeFrame decoration = func(s Surface, x1, y1, x2, y2 float64, p Paint) []Handle {
	front, back, edges := CubeGeometry(Canon(x1, y1, x2, y2))
	p.Fill = InkNone
	hs := make([]Handle, 0, 6)
	hs = append(hs, s.Rect(front, p), s.Rect(back, p))
	for _, e := range edges {
		hs = append(hs, s.Line(e[0], e[1], p))
	}
	return hs
}
