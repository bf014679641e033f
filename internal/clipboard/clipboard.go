// Package clipboard moves photos in and exports out through the system
// clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/example/photomark/internal/capture"
)

var (
	errNoDisplay   = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	errCGODisabled = errors.New("clipboard operations require cgo support")
	// ErrEmpty is returned when the clipboard holds nothing of the wanted kind.
	ErrEmpty = errors.New("clipboard is empty")
)

type format int

const (
	formatText format = iota
	formatImage
)

// backend is swapped out in tests.
var backend interface {
	init() error
	read(format) []byte
	write(format, []byte)
} = system{}

// WriteEncoded publishes encoded PNG bytes as the clipboard image.
func WriteEncoded(data []byte) error {
	if err := backend.init(); err != nil {
		return err
	}
	backend.write(formatImage, data)
	return nil
}

// ReadImage decodes the image on the clipboard.
func ReadImage() (*image.RGBA, error) {
	if err := backend.init(); err != nil {
		return nil, err
	}
	data := backend.read(formatImage)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no image data", ErrEmpty)
	}
	img, _, err := capture.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard: %w", err)
	}
	return img, nil
}

// WriteText publishes UTF-8 text.
func WriteText(text string) error {
	if err := backend.init(); err != nil {
		return err
	}
	backend.write(formatText, []byte(text))
	return nil
}
