package appstate

import (
	"image"
	"image/color"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// labelFace is used for buttons, the table and the status bar.
var labelFace font.Face = basicfont.Face7x13

// messageFace renders the transient message overlay.
var messageFace font.Face

const messageSize = 28

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: messageSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// measure returns the advance width of text in face.
func measure(face font.Face, text string) int {
	return (&font.Drawer{Face: face}).MeasureString(text).Ceil()
}

// drawText renders text with its baseline at (x, y).
func drawText(dst *image.RGBA, face font.Face, x, y int, text string, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: face, Dot: fixed.P(x, y)}
	d.DrawString(text)
}

// drawLabel centres text vertically inside rect, indented by pad pixels.
func drawLabel(dst *image.RGBA, rect image.Rectangle, pad int, text string, col color.Color) {
	m := labelFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	y := rect.Min.Y + (rect.Dy()-ascent-descent)/2 + ascent
	drawText(dst, labelFace, rect.Min.X+pad, y, text, col)
}
