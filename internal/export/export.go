// Package export writes the annotation list as JSON and the annotated
// surface as a raster image.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/shape"
)

// ErrUnsupportedFormat is returned for image formats other than png and jpg.
var ErrUnsupportedFormat = errors.New("unsupported format")

// AnnotationsFile is the name offered for the JSON export.
const AnnotationsFile = "annotations.json"

const (
	// DefaultMultiplier is the resolution factor applied to image exports.
	DefaultMultiplier = 2
	// DefaultQuality is the JPEG quality used when none is configured.
	DefaultQuality = 92
)

// Format is an image export encoding.
type Format string

const (
	PNG Format = "png"
	JPG Format = "jpg"
)

// ParseFormat accepts exactly "png" or "jpg".
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case PNG, JPG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FileName is the name offered for an image export in format f.
func (f Format) FileName() string {
	return "annotated-image." + string(f)
}

// Record is the exported geometry of one shape.
type Record struct {
	Left   float64      `json:"left"`
	Top    float64      `json:"top"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Angle  float64      `json:"angle"`
	Points []geom.Point `json:"points,omitempty"`
}

// Records projects shapes onto their exported geometry, in scene order.
// Lines export their box only.
func Records(shapes []*shape.Shape) []Record {
	out := make([]Record, 0, len(shapes))
	for _, s := range shapes {
		r := Record{
			Left:   s.Left,
			Top:    s.Top,
			Width:  s.Width,
			Height: s.Height,
			Angle:  s.Angle,
		}
		if s.Kind == shape.Polygon || s.Kind == shape.Polyline {
			r.Points = append([]geom.Point(nil), s.Points...)
		}
		out = append(out, r)
	}
	return out
}

// WriteAnnotations writes the records of shapes as an indented JSON array.
func WriteAnnotations(w io.Writer, shapes []*shape.Shape) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(shapes)); err != nil {
		return fmt.Errorf("write annotations: %w", err)
	}
	return nil
}

// Surface is a canvas that can be temporarily enlarged and encoded.
type Surface interface {
	Size() (int, int)
	SetSize(w, h int)
	Zoom() float64
	SetZoom(z float64)
	Render()
	EncodePNG(w io.Writer) error
	EncodeJPEG(w io.Writer, quality int) error
}

// Image encodes s in format f at multiplier times its size. The surface
// size and zoom are restored before Image returns.
func Image(w io.Writer, s Surface, f Format, multiplier float64, quality int) error {
	if _, err := ParseFormat(string(f)); err != nil {
		return err
	}
	if multiplier <= 0 {
		multiplier = 1
	}
	if quality <= 0 {
		quality = DefaultQuality
	}
	width, height := s.Size()
	zoom := s.Zoom()
	if multiplier != 1 {
		s.SetSize(int(math.Round(float64(width)*multiplier)), int(math.Round(float64(height)*multiplier)))
		s.SetZoom(zoom * multiplier)
		defer func() {
			s.SetSize(width, height)
			s.SetZoom(zoom)
			s.Render()
		}()
	}
	s.Render()
	var err error
	if f == JPG {
		err = s.EncodeJPEG(w, quality)
	} else {
		err = s.EncodePNG(w)
	}
	if err != nil {
		return fmt.Errorf("export image: %w", err)
	}
	return nil
}
