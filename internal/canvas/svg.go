package canvas

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"github.com/example/myeditor/internal/shapes"
	"github.com/example/myeditor/internal/theme"
)

// maxSVGCoord bounds coordinates written to SVG documents.
const maxSVGCoord = 1 << 30

// SVG collects items and writes them as an SVG document.
type SVG struct {
	list
	width, height int
	theme         *theme.Theme
}

// NewSVG returns an empty SVG surface of the given size.
func NewSVG(width, height int, th *theme.Theme) *SVG {
	if th == nil {
		th = theme.Default()
	}
	return &SVG{width: width, height: height, theme: th}
}

// countWriter remembers how much was written and the first error, since the
// svg package does not report either.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

// WriteTo writes the document to w.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	doc := svg.New(cw)
	doc.Start(s.width, s.height, fmt.Sprintf(`viewBox="0 0 %d %d"`, s.width, s.height))
	doc.Rect(0, 0, s.width, s.height, "fill:"+svgColor(s.theme.CanvasBackground))
	for _, it := range s.items {
		s.element(doc, it)
	}
	doc.End()
	return cw.n, cw.err
}

func coord(v float64) int {
	return clampInt(v, -maxSVGCoord, maxSVGCoord)
}

func (s *SVG) element(doc *svg.SVG, it item) {
	style := s.style(it.paint)
	switch it.kind {
	case itemLine:
		a, b := it.pts[0], it.pts[1]
		if !finite(a.X, a.Y, b.X, b.Y) {
			return
		}
		doc.Line(coord(a.X), coord(a.Y), coord(b.X), coord(b.Y), style)
	case itemRect:
		b := it.box
		if !finite(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y) {
			return
		}
		x, y := coord(b.Min.X), coord(b.Min.Y)
		doc.Rect(x, y, coord(b.Max.X)-x, coord(b.Max.Y)-y, style)
	case itemEllipse:
		c := it.box.Center()
		rx, ry := it.box.Dx()/2, it.box.Dy()/2
		if !finite(c.X, c.Y, rx, ry) {
			return
		}
		doc.Ellipse(coord(c.X), coord(c.Y), coord(rx), coord(ry), style)
	default:
		xs := make([]int, len(it.pts))
		ys := make([]int, len(it.pts))
		for i, p := range it.pts {
			if !finite(p.X, p.Y) {
				return
			}
			xs[i], ys[i] = coord(p.X), coord(p.Y)
		}
		doc.Polygon(xs, ys, style)
	}
}

func (s *SVG) style(p shapes.Paint) string {
	style := "fill:none"
	if c, ok := InkColor(s.theme, p.Fill); ok {
		style = "fill:" + svgColor(c)
	}
	if c, ok := InkColor(s.theme, p.Stroke); ok {
		width := p.Width
		if width < 1 {
			width = 1
		}
		style += fmt.Sprintf(";stroke:%s;stroke-width:%d", svgColor(c), width)
		if p.Dash > 0 {
			style += fmt.Sprintf(";stroke-dasharray:%d,%d", p.Dash, p.Dash)
		}
	}
	return style
}

func svgColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64))
}
