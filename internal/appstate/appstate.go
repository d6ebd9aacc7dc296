package appstate

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"golang.org/x/mobile/event/key"

	"github.com/example/myeditor/internal/shapes"
	"github.com/example/myeditor/internal/theme"
)

const (
	toolbarHeight = 28
	statusHeight  = 24
	buttonPad     = 6
)

// tableWidth is the preferred width of the shape table on the right.
var tableWidth = 300

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// messageDuration is how long the message overlay stays up.
const messageDuration = 2 * time.Second

// layout splits the window into the toolbar, canvas, table and status bar.
type layout struct {
	toolbar image.Rectangle
	canvas  image.Rectangle
	table   image.Rectangle
	status  image.Rectangle
}

func layoutFor(width, height int) layout {
	top := toolbarHeight
	bottom := height - statusHeight
	if bottom < top {
		bottom = top
	}
	tw := tableWidth
	if tw > width/2 {
		tw = width / 2
	}
	return layout{
		toolbar: image.Rect(0, 0, width, top),
		canvas:  image.Rect(0, top, width-tw, bottom),
		table:   image.Rect(width-tw, top, width, bottom),
		status:  image.Rect(0, bottom, width, height),
	}
}

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.Invalidate()
	}
}

// Invalidate drops the cached renderings, for example after a theme change.
func (cb *CacheButton) Invalidate() { cb.cache = [3]*image.RGBA{} }

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// buttonColors picks background and text colours for state from th.
func buttonColors(th *theme.Theme, state ButtonState) (bg, fg color.RGBA) {
	switch state {
	case StateHover:
		return th.ButtonBackgroundHover, th.ButtonTextHover
	case StatePressed:
		return th.ButtonBackgroundPress, th.ButtonTextPress
	}
	return th.ButtonBackground, th.ButtonText
}

// KindButton is a toolbar button that selects the kind of the next shape.
type KindButton struct {
	label string
	kind  shapes.Kind
	rect  image.Rectangle
	theme *theme.Theme
	// onSelect is called when the button is activated.
	onSelect func(shapes.Kind)
}

func (kb *KindButton) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(kb.theme, state)
	draw.Draw(dst, kb.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	strokeRect(dst, kb.rect, kb.theme.ButtonBorder)
	drawLabel(dst, kb.rect, buttonPad, kb.label, fg)
}

func (kb *KindButton) Rect() image.Rectangle { return kb.rect }

func (kb *KindButton) SetRect(r image.Rectangle) {
	if r != kb.rect {
		kb.rect = r
	}
}

func (kb *KindButton) Activate() {
	if kb.onSelect != nil {
		kb.onSelect(kb.kind)
	}
}

// kindKeys maps each kind to the key that selects it.
var kindKeys = map[shapes.Kind]rune{
	shapes.KindPoint:       'p',
	shapes.KindLine:        'l',
	shapes.KindRect:        'r',
	shapes.KindEllipse:     'e',
	shapes.KindStar:        's',
	shapes.KindLineCircles: 'o',
	shapes.KindCube:        'k',
}

func kindButtonLabel(k shapes.Kind) string {
	return fmt.Sprintf("%c:%s", kindKeys[k]-'a'+'A', k.Label())
}

// Shortcut is a clickable hint in the status bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
	theme  *theme.Theme
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	bg, fg := buttonColors(s.theme, state)
	draw.Draw(dst, s.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	strokeRect(dst, s.rect, s.theme.ButtonBorder)
	drawLabel(dst, s.rect, 2, s.label, fg)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

// strokeRect outlines r with a one pixel border inside its bounds.
func strokeRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	if r.Empty() {
		return
	}
	u := &image.Uniform{col}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

// drawToolbar lays out the kind buttons left to right and marks the current
// kind pressed.
func drawToolbar(dst *image.RGBA, th *theme.Theme, rect image.Rectangle, buttons []*CacheButton, current shapes.Kind, hover int) {
	draw.Draw(dst, rect, &image.Uniform{th.ToolbarBackground}, image.Point{}, draw.Src)
	x := rect.Min.X + 2
	for i, cb := range buttons {
		kb := cb.Button.(*KindButton)
		w := measure(labelFace, kb.label) + 2*buttonPad
		cb.SetRect(image.Rect(x, rect.Min.Y+2, x+w, rect.Max.Y-2))
		state := StateDefault
		if kb.kind == current {
			state = StatePressed
		} else if i == hover {
			state = StateHover
		}
		cb.Draw(dst, state)
		x += w + 2
	}
}

// drawStatus renders the status text on the left and the shortcut hints
// after it.
func drawStatus(dst *image.RGBA, th *theme.Theme, rect image.Rectangle, status string, shortcuts []Shortcut, hover int) {
	draw.Draw(dst, rect, &image.Uniform{th.StatusBackground}, image.Point{}, draw.Src)
	drawLabel(dst, rect, 6, status, th.StatusText)
	x := rect.Min.X + measure(labelFace, status) + 24
	for i := range shortcuts {
		sc := &shortcuts[i]
		w := measure(labelFace, sc.label) + 4
		sc.SetRect(image.Rect(x, rect.Min.Y+3, x+w, rect.Max.Y-3))
		state := StateDefault
		if i == hover {
			state = StateHover
		}
		sc.Draw(dst, state)
		x = sc.rect.Max.X + 6
	}
}

// drawMessage centres msg over the window in a framed box.
func drawMessage(dst *image.RGBA, th *theme.Theme, msg string) {
	b := dst.Bounds()
	wmsg := measure(messageFace, msg)
	m := messageFace.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	px := b.Min.X + (b.Dx()-wmsg)/2
	py := b.Min.Y + (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
	bg := color.NRGBA{th.Background.R, th.Background.G, th.Background.B, 230}
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	strokeRect(dst, rect, th.Foreground)
	drawText(dst, messageFace, px, py, msg, th.Foreground)
}
