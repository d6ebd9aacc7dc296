package shapes

// Handle identifies a single item placed on a Surface so it can be erased.
type Handle int

// Ink is an abstract colour role. Surfaces resolve inks through the active
// theme, which keeps the fill policy of each kind in one place.
type Ink int

const (
	InkNone Ink = iota
	InkOutline
	InkRectFill
	InkEllipseFill
	InkStarFill
	InkEndpoint
	InkPreview
	InkHighlight
)

var inkNames = [...]string{"none", "outline", "rect-fill", "ellipse-fill", "star-fill", "endpoint", "preview", "highlight"}

func (i Ink) String() string {
	if i < 0 || int(i) >= len(inkNames) {
		return "ink?"
	}
	return inkNames[i]
}

// Paint describes how an item is stroked and filled. Dash > 0 draws the
// stroke as alternating segments of that length.
type Paint struct {
	Stroke Ink
	Fill   Ink
	Width  int
	Dash   int
}

var (
	finalStroke   = Paint{Stroke: InkOutline, Width: 2}
	previewStroke = Paint{Stroke: InkPreview, Width: 1, Dash: 4}
)

// Surface is the rendering contract shapes draw against. Every call places
// one item and returns its handle.
type Surface interface {
	Line(a, b Pt, p Paint) Handle
	Rect(b Box, p Paint) Handle
	Ellipse(b Box, p Paint) Handle
	Polygon(pts []Pt, p Paint) Handle
	Erase(h Handle)
}
