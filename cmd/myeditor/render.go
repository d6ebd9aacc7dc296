package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/example/myeditor/internal/canvas"
	"github.com/example/myeditor/internal/clipboard"
	"github.com/example/myeditor/internal/editor"
	"github.com/example/myeditor/internal/shapefile"
	"github.com/example/myeditor/internal/shapes"
)

// writeImageClipboard is replaced in tests.
var writeImageClipboard = clipboard.WriteImage

const (
	renderMargin = 10
	// maxRenderSize bounds each side of a rendered image.
	maxRenderSize = 8192
)

// renderCmd draws a saved drawing to a PNG or SVG file without opening a
// window.
type renderCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	output      string
	width       int
	height      int
	scale       float64
	capacity    int
	toClipboard bool
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.file, "file", defaultString(r.config.File, "drawing.json"), "drawing to render")
	fs.StringVar(&c.output, "output", "", "output file, .png or .svg (defaults to the drawing name with .png)")
	fs.IntVar(&c.width, "width", 0, "image width in pixels (0 fits the drawing)")
	fs.IntVar(&c.height, "height", 0, "image height in pixels (0 fits the drawing)")
	fs.Float64Var(&c.scale, "scale", 1, "resample PNG output by this factor")
	fs.IntVar(&c.capacity, "capacity", defaultInt(r.config.Capacity, editor.DefaultCapacity), "maximum number of shapes to read")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the rendered image to the clipboard")
	fs.BoolVar(&c.toClipboard, "to-clip", false, "copy the rendered image to the clipboard (alias)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: c}
	}
	if c.scale <= 0 || math.IsInf(c.scale, 0) || math.IsNaN(c.scale) {
		return nil, fmt.Errorf("scale must be positive, got %v", c.scale)
	}
	if c.width > maxRenderSize || c.height > maxRenderSize {
		return nil, fmt.Errorf("width and height must be at most %d", maxRenderSize)
	}
	if c.capacity <= 0 {
		return nil, fmt.Errorf("capacity must be positive, got %d", c.capacity)
	}
	if c.output == "" {
		c.output = strings.TrimSuffix(c.file, filepath.Ext(c.file)) + ".png"
	}
	if isSVG(c.output) && c.toClipboard {
		return nil, fmt.Errorf("-to-clipboard needs PNG output")
	}
	return c, nil
}

func isSVG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".svg")
}

func (c *renderCmd) Run() error {
	list, rep, err := readDrawing(c.file, c.capacity)
	if err != nil {
		return err
	}
	for _, p := range rep.Problems {
		fmt.Fprintf(c.stderr, "warning: %v\n", p)
	}
	w, h := c.width, c.height
	if w <= 0 || h <= 0 {
		fw, fh := fitSize(list)
		if w <= 0 {
			w = fw
		}
		if h <= 0 {
			h = fh
		}
	}
	if !isSVG(c.output) && (float64(w)*c.scale > maxRenderSize || float64(h)*c.scale > maxRenderSize) {
		return fmt.Errorf("scaled image would exceed %dx%d", maxRenderSize, maxRenderSize)
	}

	if isSVG(c.output) {
		s := canvas.NewSVG(w, h, c.activeTheme)
		for _, sh := range list {
			sh.Draw(s)
		}
		f, err := os.Create(c.output)
		if err != nil {
			return fmt.Errorf("create %s: %w", c.output, err)
		}
		if _, err := s.WriteTo(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(c.stderr, "saved %s\n", c.output)
		return nil
	}

	cv := canvas.New(w, h, c.activeTheme)
	for _, sh := range list {
		sh.Draw(cv)
	}
	var img image.Image = cv.Image()
	if c.scale != 1 {
		img = scaleImage(img, c.scale)
	}
	if err := writePNGFile(c.output, img); err != nil {
		return err
	}
	fmt.Fprintf(c.stderr, "saved %s\n", c.output)
	c.notifier.Save(c.output)
	if c.toClipboard {
		if err := writeImageClipboard(img); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		c.notifier.Copy(filepath.Base(c.output), img)
	}
	return nil
}

// readDrawing decodes at most capacity shapes from path, the same limit the
// editor applies when it loads a file.
func readDrawing(path string, capacity int) ([]shapes.Shape, shapefile.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, shapefile.Report{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	list, rep, err := shapefile.Decode(f, capacity)
	if err != nil {
		return nil, rep, fmt.Errorf("read %s: %w", path, err)
	}
	return list, rep, nil
}

// fitSize returns a canvas size that holds every shape plus a margin, capped
// at maxRenderSize on each side.
func fitSize(list []shapes.Shape) (int, int) {
	w, h := 0.0, 0.0
	for _, s := range list {
		b := s.Bounds()
		w = math.Max(w, b.Max.X)
		h = math.Max(h, b.Max.Y)
	}
	if len(list) == 0 {
		return 640, 480
	}
	side := func(v float64) int {
		return int(math.Min(math.Ceil(v)+renderMargin, maxRenderSize))
	}
	return side(w), side(h)
}

func scaleImage(src image.Image, factor float64) *image.RGBA {
	b := src.Bounds()
	w := int(math.Max(1, math.Round(float64(b.Dx())*factor)))
	h := int(math.Max(1, math.Round(float64(b.Dy())*factor)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func writePNGFile(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
