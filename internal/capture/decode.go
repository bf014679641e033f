// Package capture obtains the photos to annotate: decoded from files or
// streams, or grabbed from the screen.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoImage is returned when a source yields no pixels.
var ErrNoImage = errors.New("capture: no image")

// Result is the outcome of an asynchronous decode.
type Result struct {
	Image  *image.RGBA
	Format string
	Err    error
}

// Decode reads an image in any registered format and returns it as RGBA
// with a zero origin.
func Decode(r io.Reader) (*image.RGBA, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, format, ErrNoImage
	}
	return toRGBA(img), format, nil
}

// DecodeFile decodes the image stored at path.
func DecodeFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// DecodeAsync decodes r on its own goroutine. The channel receives exactly
// one Result and is then closed.
func DecodeAsync(r io.Reader) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		img, format, err := Decode(r)
		out <- Result{Image: img, Format: format, Err: err}
	}()
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
