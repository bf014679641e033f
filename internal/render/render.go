// Package render rasterizes a scene of annotations over a background image.
package render

import (
	"fmt"
	"image/color"

	"github.com/gogpu/gg"

	"github.com/example/photomark/internal/shape"
)

// Layer is an image placed in scene coordinates.
type Layer struct {
	Image  *gg.ImageBuf
	X, Y   float64
	Width  float64
	Height float64
}

// Frame is everything needed to draw one picture of the scene.
type Frame struct {
	Backdrop   color.Color
	Background *Layer
	Shapes     []*shape.Shape
	Zoom       float64
}

// Draw clears dc to the backdrop and paints the frame onto it.
func Draw(dc *gg.Context, f Frame) error {
	zoom := f.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	if f.Backdrop != nil {
		dc.ClearWithColor(gg.FromColor(f.Backdrop))
	} else {
		dc.Clear()
	}
	dc.Identity()
	dc.Scale(zoom, zoom)
	if bg := f.Background; bg != nil && bg.Image != nil {
		dc.DrawImageEx(bg.Image, gg.DrawImageOptions{
			X:             bg.X,
			Y:             bg.Y,
			DstWidth:      bg.Width,
			DstHeight:     bg.Height,
			Interpolation: gg.InterpBilinear,
			Opacity:       1,
		})
	}
	for i, s := range f.Shapes {
		if err := Shape(dc, s); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

// Shape traces s and strokes it, filling first when its fill is visible.
func Shape(dc *gg.Context, s *shape.Shape) error {
	stroke, err := shape.ParseColor(s.Stroke)
	if err != nil {
		return err
	}
	fill := color.RGBA{}
	if s.Fill != "" {
		if fill, err = shape.ParseColor(s.Fill); err != nil {
			return err
		}
	}

	dc.ClearPath()
	switch s.Kind {
	case shape.Rectangle:
		dc.DrawRectangle(s.Left, s.Top, s.Width, s.Height)
	case shape.Polygon, shape.Polyline, shape.Line:
		if len(s.Points) == 0 {
			return nil
		}
		dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if s.Kind == shape.Polygon {
			dc.ClosePath()
		}
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}

	if fill.A > 0 {
		dc.SetColor(fill)
		if err := dc.FillPreserve(); err != nil {
			return err
		}
	}
	dc.SetColor(stroke)
	dc.SetLineWidth(s.StrokeWidth)
	return dc.Stroke()
}
