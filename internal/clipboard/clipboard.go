// Package clipboard publishes drawings to the desktop clipboard and reads
// shape documents back from it.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// ErrEmpty is returned when the clipboard holds nothing in the requested
// format.
var ErrEmpty = errors.New("clipboard does not contain the requested data")

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
