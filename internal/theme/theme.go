package theme

import (
	"image/color"
)

// Theme defines the colours of the editor window and of the shapes drawn on
// the canvas.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the canvas
	Foreground color.RGBA // Main text color

	// Toolbar & status bar
	ToolbarBackground color.RGBA
	StatusBackground  color.RGBA
	StatusText        color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Shape table
	TableBackground color.RGBA
	TableHeader     color.RGBA
	TableText       color.RGBA
	TableSelected   color.RGBA
	TableGrid       color.RGBA

	// Canvas and shape inks
	CanvasBackground color.RGBA
	ShapeOutline     color.RGBA
	RectFill         color.RGBA
	EllipseFill      color.RGBA // transparent leaves ellipses unfilled
	StarFill         color.RGBA
	Endpoint         color.RGBA
	Preview          color.RGBA
	Highlight        color.RGBA
}

// Default returns the hardcoded default light theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		StatusBackground:      color.RGBA{220, 220, 220, 255},
		StatusText:            color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextHover:       color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		TableBackground:       color.RGBA{245, 245, 245, 255},
		TableHeader:           color.RGBA{200, 200, 200, 255},
		TableText:             color.RGBA{0, 0, 0, 255},
		TableSelected:         color.RGBA{173, 216, 230, 255},
		TableGrid:             color.RGBA{192, 192, 192, 255},
		CanvasBackground:      color.RGBA{255, 255, 255, 255},
		ShapeOutline:          color.RGBA{0, 0, 0, 255},
		RectFill:              color.RGBA{255, 255, 0, 255},
		EllipseFill:           color.RGBA{0, 0, 0, 0},
		StarFill:              color.RGBA{255, 255, 0, 255},
		Endpoint:              color.RGBA{0, 0, 0, 255},
		Preview:               color.RGBA{0, 0, 0, 255},
		Highlight:             color.RGBA{255, 0, 0, 255},
	}
}
