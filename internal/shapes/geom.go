package shapes

import "math"

// Pt is a point in canvas coordinates. Y grows downwards.
type Pt struct {
	X, Y float64
}

// Box is an axis-aligned rectangle with Min <= Max on both axes.
type Box struct {
	Min, Max Pt
}

// Canon builds a Box from two arbitrary opposite corners.
func Canon(x1, y1, x2, y2 float64) Box {
	return Box{
		Min: Pt{math.Min(x1, x2), math.Min(y1, y2)},
		Max: Pt{math.Max(x1, x2), math.Max(y1, y2)},
	}
}

func (b Box) Dx() float64 { return b.Max.X - b.Min.X }
func (b Box) Dy() float64 { return b.Max.Y - b.Min.Y }

func (b Box) Center() Pt {
	return Pt{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2}
}

// Inset shrinks the box by n on every side. Negative n grows it.
func (b Box) Inset(n float64) Box {
	return Box{
		Min: Pt{b.Min.X + n, b.Min.Y + n},
		Max: Pt{b.Max.X - n, b.Max.Y - n},
	}
}

// Add translates the box by d.
func (b Box) Add(d Pt) Box {
	return Box{
		Min: Pt{b.Min.X + d.X, b.Min.Y + d.Y},
		Max: Pt{b.Max.X + d.X, b.Max.Y + d.Y},
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Pt) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func circleBox(c Pt, r float64) Box {
	return Box{Min: Pt{c.X - r, c.Y - r}, Max: Pt{c.X + r, c.Y + r}}
}
