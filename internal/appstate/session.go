package appstate

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/myeditor/internal/canvas"
	"github.com/example/myeditor/internal/clipboard"
	"github.com/example/myeditor/internal/editor"
	"github.com/example/myeditor/internal/notify"
	"github.com/example/myeditor/internal/shapes"
	"github.com/example/myeditor/internal/theme"
)

// Clipboard access goes through these so tests can replace it.
var (
	writeDrawing = clipboard.WriteDrawing
	writeText    = clipboard.WriteText
	readText     = clipboard.ReadText
)

// session is the state behind one editor window. It is only touched from the
// window's event loop.
type session struct {
	theme    *theme.Theme
	themes   *theme.Loader
	themeIdx int
	cv       *canvas.Canvas
	ed       *editor.Editor
	table    *TableView
	notifier *notify.Notifier
	file     string

	width, height int
	layout        layout

	kindButtons   []*CacheButton
	shortcuts     []Shortcut
	hoverKind     int
	hoverShortcut int

	message      string
	messageUntil time.Time
	confirmClear bool

	// repaint asks the window for a frame once a message expires. The
	// timer calls it off the event loop, so flashMu guards the timer.
	repaint    func()
	flashMu    sync.Mutex
	flashTimer *time.Timer
	closed     bool

	actions        map[string]func()
	keyboardAction map[KeyShortcut]string
	quit           bool

	now func() time.Time
}

func newSession(a *AppState, width, height int) *session {
	s := &session{
		theme:         a.Theme,
		themes:        a.Themes,
		notifier:      a.Notifier,
		file:          a.File,
		hoverKind:     -1,
		hoverShortcut: -1,
		now:           time.Now,
	}
	if s.theme == nil {
		s.theme = theme.Default()
	}
	if s.file == "" {
		s.file = DefaultFile
	}
	s.layout = layoutFor(width, height)
	s.width, s.height = width, height
	s.cv = canvas.New(s.layout.canvas.Dx(), s.layout.canvas.Dy(), s.theme)
	s.ed = editor.New(s.cv,
		editor.WithCapacity(a.Capacity),
		editor.WithKind(a.Kind),
		editor.WithMessageListener(s.flash),
	)
	s.table = NewTableView()
	s.table.SetRect(s.layout.table)
	s.table.Attach(s.ed.Collection())

	for _, k := range shapes.Kinds() {
		s.kindButtons = append(s.kindButtons, &CacheButton{Button: &KindButton{
			label:    kindButtonLabel(k),
			kind:     k,
			theme:    s.theme,
			onSelect: s.setKind,
		}})
	}
	s.registerActions()

	if _, err := os.Stat(s.file); err == nil {
		if _, err := s.ed.LoadFile(s.file); err != nil {
			log.Printf("load: %v", err)
		}
	}
	return s
}

// close stops the message timer and detaches the session from its
// collection. repaint is never called once close returns.
func (s *session) close() {
	s.flashMu.Lock()
	s.closed = true
	if s.flashTimer != nil {
		s.flashTimer.Stop()
	}
	s.flashMu.Unlock()
	s.table.Detach()
}

func (s *session) register(name string, keys KeyboardShortcuts, fn func()) {
	s.actions[name] = fn
	if keys != nil {
		for _, sc := range keys.KeyboardShortcuts() {
			s.keyboardAction[sc] = name
		}
	}
}

// ctrl binds r with Control held, matched either by rune or by key code.
func ctrl(r rune, code key.Code, extra key.Modifiers) shortcutList {
	mods := key.ModControl | extra
	return shortcutList{{Rune: r, Modifiers: mods}, {Code: code, Modifiers: mods}}
}

func (s *session) registerActions() {
	s.actions = map[string]func(){}
	s.keyboardAction = map[KeyShortcut]string{}

	for _, k := range shapes.Kinds() {
		k := k
		s.register("kind:"+k.String(), shortcutList{{Rune: kindKeys[k]}}, func() { s.setKind(k) })
	}
	s.register("save", ctrl('s', key.CodeS, 0), s.save)
	s.register("open", ctrl('o', key.CodeO, 0), s.reload)
	s.register("export", ctrl('e', key.CodeE, 0), s.export)
	s.register("copy", ctrl('c', key.CodeC, 0), s.copy)
	s.register("copyjson", ctrl('c', key.CodeC, key.ModShift), s.copyJSON)
	s.register("paste", ctrl('v', key.CodeV, 0), s.paste)
	s.register("theme", ctrl('t', key.CodeT, 0), s.nextTheme)
	s.register("delete", shortcutList{{Code: key.CodeDeleteForward}, {Code: key.CodeDeleteBackspace}}, s.deleteSelected)
	s.register("clear", ctrl('n', key.CodeN, 0), s.clear)
	s.register("cancel", shortcutList{{Code: key.CodeEscape}}, s.cancel)
	s.register("quit", shortcutList{{Rune: 'q'}}, func() { s.quit = true })

	s.shortcuts = nil
	for _, sc := range []struct{ label, action string }{
		{"^S:save", "save"},
		{"^O:open", "open"},
		{"^E:export", "export"},
		{"^C:copy", "copy"},
		{"^V:paste", "paste"},
		{"Del:delete", "delete"},
		{"^N:clear", "clear"},
		{"Esc:cancel", "cancel"},
		{"Q:quit", "quit"},
	} {
		name := sc.action
		s.shortcuts = append(s.shortcuts, Shortcut{label: sc.label, action: func() { s.trigger(name) }})
	}
}

func (s *session) trigger(action string) {
	if action != "clear" {
		s.confirmClear = false
	}
	if fn, ok := s.actions[action]; ok {
		fn()
	}
}

// lookup resolves a key press to an action name. Shortcuts may be bound by
// rune, by key code or by both.
func (s *session) lookup(e key.Event) (string, bool) {
	r := unicode.ToLower(e.Rune)
	candidates := []KeyShortcut{
		{Rune: r, Code: e.Code, Modifiers: e.Modifiers},
		{Rune: r, Modifiers: e.Modifiers},
		{Code: e.Code, Modifiers: e.Modifiers},
	}
	for _, ks := range candidates {
		if ks.Rune <= 0 && ks.Code == key.CodeUnknown {
			continue
		}
		if name, ok := s.keyboardAction[ks]; ok {
			return name, true
		}
	}
	return "", false
}

// flash shows msg in the overlay for messageDuration.
func (s *session) flash(msg string) {
	s.message = msg
	s.messageUntil = s.now().Add(messageDuration)
	if s.repaint == nil {
		return
	}
	s.flashMu.Lock()
	defer s.flashMu.Unlock()
	if s.closed {
		return
	}
	if s.flashTimer != nil {
		s.flashTimer.Stop()
	}
	s.flashTimer = time.AfterFunc(messageDuration, s.expireFlash)
}

func (s *session) expireFlash() {
	s.flashMu.Lock()
	defer s.flashMu.Unlock()
	if !s.closed {
		s.repaint()
	}
}

// say logs msg and shows it in the overlay.
func (s *session) say(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	s.flash(msg)
}

func (s *session) messageActive() bool {
	return s.message != "" && s.now().Before(s.messageUntil)
}

func (s *session) resize(width, height int) {
	s.width, s.height = width, height
	s.layout = layoutFor(width, height)
	s.cv.Resize(s.layout.canvas.Dx(), s.layout.canvas.Dy())
	s.table.SetRect(s.layout.table)
}

func (s *session) toCanvas(p image.Point) (x, y float64) {
	return float64(p.X - s.layout.canvas.Min.X), float64(p.Y - s.layout.canvas.Min.Y)
}

func (s *session) setKind(k shapes.Kind) {
	if err := s.ed.SetShapeKind(k); err != nil {
		log.Printf("kind: %v", err)
	}
}

func (s *session) save() {
	if err := s.ed.SaveFile(s.file); err != nil {
		log.Printf("save: %v", err)
		return
	}
	s.notifier.Save(s.file)
}

func (s *session) reload() {
	if _, err := s.ed.LoadFile(s.file); err != nil {
		log.Printf("load: %v", err)
		return
	}
	s.notifier.Load(s.file)
}

// snapshot renders the committed shapes without selection or preview.
func (s *session) snapshot() *image.RGBA {
	size := s.cv.Size()
	c := canvas.New(size.X, size.Y, s.theme)
	for _, sh := range s.ed.Shapes() {
		sh.Draw(c)
	}
	return c.Image()
}

// ExportPath is the PNG written next to a drawing file.
func ExportPath(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + ".png"
}

func (s *session) export() {
	out := ExportPath(s.file)
	if err := writePNG(out, s.snapshot()); err != nil {
		log.Printf("export: %v", err)
		s.flash(fmt.Sprintf("Export failed: %v", err))
		return
	}
	s.say("Exported %s", out)
	s.notifier.Save(out)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *session) document() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.ed.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *session) copy() {
	doc, err := s.document()
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	img := s.snapshot()
	if err := writeDrawing(img, doc); err != nil {
		log.Printf("copy: %v", err)
		s.flash(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	n, _ := s.ed.Usage()
	s.say("Copied %d shapes to clipboard", n)
	s.notifier.Copy(fmt.Sprintf("%d shapes", n), img)
}

func (s *session) copyJSON() {
	doc, err := s.document()
	if err != nil {
		log.Printf("copy: %v", err)
		return
	}
	if err := writeText(string(doc)); err != nil {
		log.Printf("copy: %v", err)
		s.flash(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	s.say("Copied shapes as JSON")
	s.notifier.Copy("shapes as JSON", nil)
}

func (s *session) paste() {
	text, err := readText()
	if err != nil {
		log.Printf("paste: %v", err)
		s.flash(fmt.Sprintf("Paste failed: %v", err))
		return
	}
	if _, err := s.ed.Load(strings.NewReader(text)); err != nil {
		log.Printf("paste: %v", err)
	}
}

func (s *session) deleteSelected() {
	if !s.ed.DeleteSelected() {
		s.say("No shape selected")
	}
}

// clear asks for confirmation before removing every shape.
func (s *session) clear() {
	if n, _ := s.ed.Usage(); n == 0 {
		return
	}
	if !s.confirmClear {
		s.confirmClear = true
		s.say("Press Ctrl+N again to clear")
		return
	}
	s.confirmClear = false
	s.ed.ClearAll()
}

func (s *session) cancel() {
	if s.ed.Dragging() {
		s.ed.Abort()
		return
	}
	s.ed.SelectAt(editor.NoSelection)
}

func (s *session) nextTheme() {
	if s.themes == nil {
		return
	}
	names := s.themes.Available()
	s.themeIdx = (s.themeIdx + 1) % len(names)
	th, err := s.themes.Load(names[s.themeIdx])
	if err != nil {
		log.Printf("theme: %v", err)
		return
	}
	s.setTheme(th)
	s.say("Theme: %s", names[s.themeIdx])
}

func (s *session) setTheme(th *theme.Theme) {
	s.theme = th
	s.cv.SetTheme(th)
	for _, cb := range s.kindButtons {
		cb.Button.(*KindButton).theme = th
		cb.Invalidate()
	}
}

// handleMouse applies a pointer event and reports whether a repaint is needed.
func (s *session) handleMouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	press := e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress
	repaint := false
	if s.messageActive() && e.Direction == mouse.DirPress {
		s.messageUntil = time.Time{}
		repaint = true
	}

	if s.ed.Dragging() {
		x, y := s.toCanvas(p)
		switch {
		case e.Direction == mouse.DirNone:
			s.ed.OnPointerMove(x, y)
			return true
		case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
			s.ed.OnPointerUp(x, y)
			return true
		}
	}

	hoverKind, hoverShortcut := -1, -1
	switch {
	case p.In(s.layout.toolbar):
		for i, cb := range s.kindButtons {
			if p.In(cb.Rect()) {
				hoverKind = i
				if press {
					s.confirmClear = false
					cb.Activate()
					repaint = true
				}
				break
			}
		}
	case p.In(s.layout.status):
		for i := range s.shortcuts {
			if p.In(s.shortcuts[i].rect) {
				hoverShortcut = i
				if press {
					s.shortcuts[i].Activate()
					repaint = true
				}
				break
			}
		}
	case p.In(s.layout.table):
		switch {
		case e.Direction == mouse.DirStep && e.Button == mouse.ButtonWheelUp:
			s.table.Scroll(-1)
			repaint = true
		case e.Direction == mouse.DirStep && e.Button == mouse.ButtonWheelDown:
			s.table.Scroll(1)
			repaint = true
		case press:
			s.ed.SelectAt(s.table.RowAt(p))
			repaint = true
		}
		prev := s.table.hover
		s.table.Hover(p)
		repaint = repaint || prev != s.table.hover
	case p.In(s.layout.canvas):
		x, y := s.toCanvas(p)
		switch {
		case press:
			s.confirmClear = false
			s.ed.OnPointerDown(x, y)
			repaint = true
		case e.Button == mouse.ButtonRight && e.Direction == mouse.DirPress:
			s.ed.SelectAt(s.ed.ShapeAt(x, y))
			repaint = true
		}
	}
	if !p.In(s.layout.table) && s.table.hover != -1 {
		s.table.hover = -1
		repaint = true
	}
	if hoverKind != s.hoverKind || hoverShortcut != s.hoverShortcut {
		s.hoverKind, s.hoverShortcut = hoverKind, hoverShortcut
		repaint = true
	}
	return repaint
}

// handleKey applies a key press and reports whether a repaint is needed.
func (s *session) handleKey(e key.Event) bool {
	if e.Direction != key.DirPress {
		return false
	}
	name, ok := s.lookup(e)
	if !ok {
		return false
	}
	s.trigger(name)
	return true
}

// render composes a full frame of the window into dst.
func (s *session) render(dst *image.RGBA) {
	th := s.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	s.cv.Render(dst, s.layout.canvas.Min)
	drawToolbar(dst, th, s.layout.toolbar, s.kindButtons, s.ed.Kind(), s.hoverKind)
	s.table.Draw(dst, th)
	for i := range s.shortcuts {
		s.shortcuts[i].theme = th
	}
	drawStatus(dst, th, s.layout.status, s.ed.Status(), s.shortcuts, s.hoverShortcut)
	if s.messageActive() {
		drawMessage(dst, th, s.message)
	}
}
