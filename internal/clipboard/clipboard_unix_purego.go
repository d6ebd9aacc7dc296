//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"image"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	backend  *x11Clipboard
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		clip := &x11Clipboard{}
		if err := clip.initialize(); err != nil {
			initErr = err
			return
		}
		backend = clip
	})
	return initErr
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return publish(offer{png: data})
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	return publish(offer{text: []byte(text)})
}

// WriteDrawing publishes a rendered image together with its shape
// document. Image editors receive the PNG; text targets and other editor
// instances receive the document.
func WriteDrawing(img image.Image, doc []byte) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return publish(offer{text: doc, shapes: doc, png: data})
}

func publish(o offer) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.own(o)
}

// ReadText returns UTF-8 text data from the clipboard. A shape document
// published by another editor is preferred over plain text.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	var data []byte
	var err error
	for _, target := range []xproto.Atom{backend.atoms.shapes, backend.atoms.utf8, xproto.AtomString} {
		data, err = backend.readSelection(target)
		if err == nil && len(data) > 0 {
			break
		}
	}
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	// STRING replies from some owners carry a trailing NUL.
	if data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data), nil
}

// offer is the set of formats currently owned by this process.
type offer struct {
	text   []byte
	shapes []byte
	png    []byte
}

type x11Clipboard struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet
	mu     sync.RWMutex
	held   offer
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	shapes    xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func (c *x11Clipboard) initialize() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	c.conn = conn
	c.window = window
	c.atoms = atoms
	go c.eventLoop()
	return nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	names := []string{
		"CLIPBOARD",
		"TARGETS",
		"UTF8_STRING",
		"text/plain;charset=utf-8",
		"application/x-myeditor-shapes+json",
		"image/png",
		"MYEDITOR_CLIPBOARD",
	}
	atoms := make([]xproto.Atom, len(names))
	for i, name := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomSet{}, fmt.Errorf("intern %s: %w", name, err)
		}
		atoms[i] = reply.Atom
	}
	return atomSet{
		clipboard: atoms[0],
		targets:   atoms[1],
		utf8:      atoms[2],
		textPlain: atoms[3],
		shapes:    atoms[4],
		png:       atoms[5],
		property:  atoms[6],
	}, nil
}

func (c *x11Clipboard) own(o offer) error {
	c.mu.Lock()
	c.held = offer{
		text:   append([]byte(nil), o.text...),
		shapes: append([]byte(nil), o.shapes...),
		png:    append([]byte(nil), o.png...),
	}
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Clipboard) eventLoop() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.handleSelectionRequest(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.held = offer{}
			c.mu.Unlock()
		}
	}
}

// targets lists the atoms a requestor may ask for given the held offer.
func (c *x11Clipboard) targets(o offer) []xproto.Atom {
	list := []xproto.Atom{c.atoms.targets}
	if len(o.text) > 0 {
		list = append(list, c.atoms.utf8, xproto.AtomString, c.atoms.textPlain)
	}
	if len(o.shapes) > 0 {
		list = append(list, c.atoms.shapes)
	}
	if len(o.png) > 0 {
		list = append(list, c.atoms.png)
	}
	return list
}

func (c *x11Clipboard) handleSelectionRequest(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	held := c.held
	c.mu.RUnlock()

	var (
		targetType xproto.Atom
		format     byte = 8
		payload    []byte
		length     uint32
	)

	switch e.Target {
	case c.atoms.targets:
		payload = atomsToBytes(c.targets(held))
		targetType = xproto.AtomAtom
		format = 32
	case c.atoms.utf8, xproto.AtomString, c.atoms.textPlain:
		payload = held.text
		targetType = c.atoms.utf8
	case c.atoms.shapes:
		payload = held.shapes
		targetType = c.atoms.shapes
	case c.atoms.png:
		payload = held.png
		targetType = c.atoms.png
	}

	if len(payload) == 0 {
		property = xproto.AtomNone
	} else {
		length = uint32(len(payload))
		if format == 32 {
			length /= 4
		}
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, targetType, format, length, payload)
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func (c *x11Clipboard) readSelection(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.DeletePropertyChecked(conn, window, c.atoms.property).Check(); err != nil {
		return nil, err
	}
	if err := xproto.ConvertSelectionChecked(conn, window, c.atoms.clipboard, target, c.atoms.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}

	for {
		ev, xerr := conn.WaitForEvent()
		if xerr != nil {
			return nil, xerr
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, ErrEmpty
		}
		if e.Property != c.atoms.property {
			continue
		}
		reply, err := xproto.GetProperty(conn, false, window, c.atoms.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), reply.Value...), nil
	}
}

func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
