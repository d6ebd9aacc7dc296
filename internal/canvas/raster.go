package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/example/myeditor/internal/shapes"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// strokeClip is the area a stroke of the given thickness can touch.
func strokeClip(img *image.RGBA, thick int) image.Rectangle {
	return img.Bounds().Inset(-(thick/2 + 1))
}

// clampInt rounds v and clamps it to [lo, hi]. NaN maps to lo.
func clampInt(v float64, lo, hi int) int {
	v = math.Round(v)
	if !(v >= float64(lo)) {
		return lo
	}
	if v > float64(hi) {
		return hi
	}
	return int(v)
}

// clipSegment clips a-b to r with the Liang-Barsky algorithm and returns the
// parameters of the visible part along a-b.
func clipSegment(a, b shapes.Pt, r image.Rectangle) (t0, t1 float64, ok bool) {
	if r.Empty() {
		return 0, 0, false
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 = 0, 1
	for _, e := range [4][2]float64{
		{-dx, a.X - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - a.X},
		{-dy, a.Y - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return t0, t1, true
}

// drawLine walks the Bresenham line between a and b after clipping it to
// the image. With dash > 0 the pixels alternate between dash painted and dash
// skipped, starting at phase; the phase after b is returned so polylines
// keep their pattern across corners.
func drawLine(img *image.RGBA, a, b shapes.Pt, col color.Color, thick, dash, phase int) int {
	if !finite(a.X, a.Y, b.X, b.Y) {
		return phase
	}
	span := math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))
	next := phase
	if dash > 0 {
		next = (phase + int(math.Mod(math.Round(span), float64(2*dash)))) % (2 * dash)
	}
	t0, t1, ok := clipSegment(a, b, strokeClip(img, thick))
	if !ok {
		return next
	}
	x0 := int(math.Round(a.X + (b.X-a.X)*t0))
	y0 := int(math.Round(a.Y + (b.Y-a.Y)*t0))
	x1 := int(math.Round(a.X + (b.X-a.X)*t1))
	y1 := int(math.Round(a.Y + (b.Y-a.Y)*t1))
	i := phase
	if dash > 0 {
		i += int(math.Mod(math.Round(t0*span), float64(2*dash)))
	}

	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for ; ; i++ {
		if dash <= 0 || (i/dash)%2 == 0 {
			setThickPixel(img, x0, y0, thick, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
	return next
}

func drawPolyline(img *image.RGBA, pts []shapes.Pt, closed bool, col color.Color, thick, dash, phase int) int {
	for i := 1; i < len(pts); i++ {
		phase = drawLine(img, pts[i-1], pts[i], col, thick, dash, phase)
	}
	if closed && len(pts) > 2 {
		phase = drawLine(img, pts[len(pts)-1], pts[0], col, thick, dash, phase)
	}
	if len(pts) == 1 {
		drawLine(img, pts[0], pts[0], col, thick, 0, 0)
	}
	return phase
}

func drawRect(img *image.RGBA, b shapes.Box, col color.Color, thick, dash int) {
	drawPolyline(img, []shapes.Pt{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}, true, col, thick, dash, 0)
}

// fillRect fills the pixels from the rounded Min corner through the rounded
// Max corner inclusive.
func fillRect(img *image.RGBA, b shapes.Box, col color.Color) {
	if !finite(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y) {
		return
	}
	bounds := img.Bounds()
	r := image.Rect(
		clampInt(b.Min.X, bounds.Min.X, bounds.Max.X),
		clampInt(b.Min.Y, bounds.Min.Y, bounds.Max.Y),
		clampInt(b.Max.X+1, bounds.Min.X, bounds.Max.X),
		clampInt(b.Max.Y+1, bounds.Min.Y, bounds.Max.Y),
	)
	draw.Draw(img, r.Intersect(bounds), &image.Uniform{col}, image.Point{}, draw.Over)
}

// outside returns how far p lies outside r, or 0 when it is inside.
func outside(p shapes.Pt, r image.Rectangle) float64 {
	dx := math.Max(0, math.Max(float64(r.Min.X)-p.X, p.X-float64(r.Max.X-1)))
	dy := math.Max(0, math.Max(float64(r.Min.Y)-p.Y, p.Y-float64(r.Max.Y-1)))
	return math.Hypot(dx, dy)
}

// drawEllipse strokes the outline of the ellipse centred at (cx, cy). The
// outline is sampled at most a pixel apart near the image and in long jumps
// away from it, so the work follows the visible arc and not the radius.
func drawEllipse(img *image.RGBA, cx, cy, rx, ry float64, col color.Color, thick, dash int) {
	if !finite(cx, cy, rx, ry) {
		return
	}
	clip := strokeClip(img, thick)
	at := func(a float64) shapes.Pt {
		return shapes.Pt{X: cx + math.Cos(a)*rx, Y: cy + math.Sin(a)*ry}
	}
	// The outline moves at speed s(a) and s changes no faster than r, so a
	// step h moves the point at most s*h + r*h*h.
	r := math.Max(math.Abs(rx), math.Abs(ry))
	step := func(a, allow float64) float64 {
		s := math.Hypot(rx*math.Sin(a), ry*math.Cos(a))
		h := 2 * allow / (s + math.Sqrt(s*s+4*r*allow))
		return math.Min(h, math.Pi/4)
	}

	phase := 0
	var run []shapes.Pt
	flush := func() {
		if len(run) > 1 {
			phase = drawPolyline(img, run, false, col, thick, dash, phase)
		} else if len(run) == 1 {
			drawPolyline(img, run, false, col, thick, 0, 0)
		}
		run = run[:0]
	}
	for a := 0.0; ; {
		if a > 2*math.Pi {
			a = 2 * math.Pi
		}
		p := at(a)
		d := outside(p, clip)
		if d <= 1 || len(run) > 0 {
			run = append(run, p)
		}
		if a == 2*math.Pi {
			break
		}
		if d > 1 {
			flush()
			a += step(a, math.Max(1, d-1))
			continue
		}
		a += step(a, 1)
	}
	flush()
}

func fillEllipse(img *image.RGBA, cx, cy, rx, ry float64, col color.Color) {
	if rx <= 0 || ry <= 0 || !finite(cx, cy, rx, ry) {
		return
	}
	b := img.Bounds()
	u := &image.Uniform{col}
	top := clampInt(math.Ceil(cy-ry), b.Min.Y, b.Max.Y)
	bottom := clampInt(math.Floor(cy+ry), b.Min.Y-1, b.Max.Y-1)
	for y := top; y <= bottom; y++ {
		dy := (float64(y) - cy) / ry
		span := rx * math.Sqrt(math.Max(0, 1-dy*dy))
		x0 := clampInt(cx-span, b.Min.X, b.Max.X)
		x1 := clampInt(cx+span, b.Min.X-1, b.Max.X-1)
		r := image.Rect(x0, y, x1+1, y+1).Intersect(b)
		draw.Draw(img, r, u, image.Point{}, draw.Over)
	}
}

// fillPolygon fills pts with the even-odd rule, one scanline per image row.
func fillPolygon(img *image.RGBA, pts []shapes.Pt, col color.Color) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if !finite(p.X, p.Y) {
			return
		}
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	b := img.Bounds()
	u := &image.Uniform{col}
	var xs []float64
	top := clampInt(minY, b.Min.Y, b.Max.Y)
	bottom := clampInt(maxY, b.Min.Y-1, b.Max.Y-1)
	for y := top; y <= bottom; y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			p := pts[i]
			q := pts[(i+1)%len(pts)]
			if (p.Y <= fy && q.Y > fy) || (q.Y <= fy && p.Y > fy) {
				t := (fy - p.Y) / (q.Y - p.Y)
				xs = append(xs, p.X+t*(q.X-p.X))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := clampInt(xs[i], b.Min.X, b.Max.X)
			x1 := clampInt(xs[i+1], b.Min.X-1, b.Max.X-1)
			r := image.Rect(x0, y, x1+1, y+1).Intersect(b)
			draw.Draw(img, r, u, image.Point{}, draw.Over)
		}
	}
}
