package appstate

import (
	"context"
	"image"
	"image/draw"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/myeditor/internal/display"
	"github.com/example/myeditor/internal/notify"
	"github.com/example/myeditor/internal/shapes"
	"github.com/example/myeditor/internal/theme"
)

// DefaultFile is the drawing file used when none is configured.
const DefaultFile = "drawing.json"

// AppState holds application configuration for the UI.
type AppState struct {
	Theme    *theme.Theme
	Themes   *theme.Loader
	Kind     shapes.Kind
	Capacity int
	File     string
	Size     image.Point
	Notifier *notify.Notifier

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the colours of the window and the shapes.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithThemes sets the loader cycled through by Ctrl+T.
func WithThemes(l *theme.Loader) Option { return func(a *AppState) { a.Themes = l } }

// WithKind sets the kind of the first shape drawn.
func WithKind(k shapes.Kind) Option { return func(a *AppState) { a.Kind = k } }

// WithCapacity sets the maximum number of shapes.
func WithCapacity(n int) Option { return func(a *AppState) { a.Capacity = n } }

// WithFile sets the drawing file used by save and reload. An existing file is
// loaded when the window opens.
func WithFile(path string) Option { return func(a *AppState) { a.File = path } }

// WithWindowSize sets the initial window size.
func WithWindowSize(sz image.Point) Option { return func(a *AppState) { a.Size = sz } }

// WithNotifier sets the desktop notifier for save, load and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Kind: shapes.KindLine,
		File: DefaultFile,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Size.X <= 0 || a.Size.Y <= 0 {
		a.Size = display.DefaultWindowSize
	}
	return a
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	width, height := a.Size.X, a.Size.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "MyEditor"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	sess := newSession(a, width, height)
	sess.repaint = func() { w.Send(paint.Event{}) }

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan *image.RGBA, 1)
	paintDone := make(chan struct{})
	go func() {
		defer close(paintDone)
		for frame := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, frame)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}
	// Nothing may touch w once it is released.
	defer func() {
		sess.close()
		select {
		case <-paintCh:
		default:
		}
		stopPaint()
		close(paintCh)
		<-paintDone
	}()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPaint()
				return
			}
		case size.Event:
			sess.resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			frame := image.NewRGBA(image.Rect(0, 0, sess.width, sess.height))
			sess.render(frame)
			select {
			case <-paintCh:
			default:
			}
			paintCh <- frame
		case mouse.Event:
			if sess.handleMouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if sess.handleKey(e) {
				w.Send(paint.Event{})
			}
			if sess.quit {
				stopPaint()
				return
			}
		}
	}
}

// drawFrame uploads a composed frame to the window. Frames are composed on
// the event loop; this only copies and publishes, and gives up early when a
// newer frame cancels ctx.
func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, frame *image.RGBA) {
	b, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	draw.Draw(b.RGBA(), b.Bounds(), frame, frame.Bounds().Min, draw.Src)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
