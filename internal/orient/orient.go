// Package orient turns portrait photos into landscape and fits them onto
// the drawing surface.
package orient

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrNoContext is returned when no drawing buffer can be obtained.
var ErrNoContext = errors.New("orient: drawing buffer unavailable")

// MaxPixels bounds the buffers NewBuffer hands out.
const MaxPixels = 1 << 26

// Allocator obtains a w×h drawing buffer.
type Allocator func(w, h int) (*image.RGBA, error)

// NewBuffer is the default Allocator.
func NewBuffer(w, h int) (*image.RGBA, error) {
	if w <= 0 || h <= 0 || w*h > MaxPixels {
		return nil, fmt.Errorf("%dx%d: %w", w, h, ErrNoContext)
	}
	return image.NewRGBA(image.Rect(0, 0, w, h)), nil
}

// Portrait reports whether img is taller than it is wide.
func Portrait(img image.Image) bool {
	b := img.Bounds()
	return b.Dy() > b.Dx()
}

// Normalize copies img into a fresh buffer, turning portrait images 90°
// clockwise so the result is never taller than wide. A nil alloc uses
// NewBuffer.
func Normalize(img image.Image, alloc Allocator) (*image.RGBA, error) {
	if alloc == nil {
		alloc = NewBuffer
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if h <= w {
		dst, err := alloc(w, h)
		if err != nil {
			return nil, err
		}
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst, nil
	}

	dst, err := alloc(h, w)
	if err != nil {
		return nil, err
	}
	// Move the centre of the source to the origin, rotate a quarter turn,
	// then move the origin to the centre of the h×w buffer.
	s2d := mul(translate(float64(h)/2, float64(w)/2),
		mul(rotate(math.Pi/2),
			translate(-float64(b.Min.X)-float64(w)/2, -float64(b.Min.Y)-float64(h)/2)))
	xdraw.NearestNeighbor.Transform(dst, s2d, img, b, xdraw.Src, nil)
	return dst, nil
}

func translate(tx, ty float64) f64.Aff3 {
	return f64.Aff3{1, 0, tx, 0, 1, ty}
}

func rotate(theta float64) f64.Aff3 {
	sin, cos := math.Sincos(theta)
	return f64.Aff3{cos, -sin, 0, sin, cos, 0}
}

// mul returns the transform that applies q then p.
func mul(p, q f64.Aff3) f64.Aff3 {
	return f64.Aff3{
		p[0]*q[0] + p[1]*q[3], p[0]*q[1] + p[1]*q[4], p[0]*q[2] + p[1]*q[5] + p[2],
		p[3]*q[0] + p[4]*q[3], p[3]*q[1] + p[4]*q[4], p[3]*q[2] + p[4]*q[5] + p[5],
	}
}
