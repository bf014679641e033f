// Package scene is the drawing surface: a scene graph of shapes over an
// optional background image, rasterized on demand.
package scene

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"

	"github.com/gogpu/gg"

	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/render"
	"github.com/example/photomark/internal/shape"
)

// Background is the image under the annotations.
type Background struct {
	Image  *image.RGBA
	ScaleX float64
	ScaleY float64
	Left   float64
	Top    float64

	buf     *gg.ImageBuf
	encoded string
}

// Width returns the displayed width in surface units.
func (b *Background) Width() float64 {
	return float64(b.Image.Bounds().Dx()) * b.ScaleX
}

// Height returns the displayed height in surface units.
func (b *Background) Height() float64 {
	return float64(b.Image.Bounds().Dy()) * b.ScaleY
}

// Canvas holds the scene graph and its raster.
type Canvas struct {
	width, height int
	zoom          float64
	origin        geom.Point
	backdrop      color.Color

	shapes     []*shape.Shape
	background *Background

	drawingMode bool
	drag        *drag
	onModified  []func()

	dc *gg.Context
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackdrop sets the colour shown where no background image is drawn.
func WithBackdrop(c color.Color) Option {
	return func(cv *Canvas) {
		cv.backdrop = c
	}
}

// New creates an empty w×h canvas at zoom 1.
func New(w, h int, opts ...Option) *Canvas {
	c := &Canvas{
		width:    max(1, w),
		height:   max(1, h),
		zoom:     1,
		backdrop: color.White,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Add appends s to the scene.
func (c *Canvas) Add(s *shape.Shape) {
	c.shapes = append(c.shapes, s)
}

// Remove takes s out of the scene.
func (c *Canvas) Remove(s *shape.Shape) bool {
	for i, o := range c.shapes {
		if o == s {
			c.shapes = append(c.shapes[:i], c.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// Shapes returns the scene in paint order. The slice is a copy; the shapes
// are not.
func (c *Canvas) Shapes() []*shape.Shape {
	return append([]*shape.Shape(nil), c.shapes...)
}

// Len returns the number of shapes.
func (c *Canvas) Len() int {
	return len(c.shapes)
}

// Clear removes every shape and the background.
func (c *Canvas) Clear() {
	c.shapes = nil
	c.background = nil
	c.drag = nil
}

// Size returns the surface dimensions.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// SetSize resizes the surface.
func (c *Canvas) SetSize(w, h int) {
	c.width, c.height = max(1, w), max(1, h)
}

// Zoom returns the scale applied when rasterizing.
func (c *Canvas) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the rasterizing scale.
func (c *Canvas) SetZoom(z float64) {
	if z > 0 {
		c.zoom = z
	}
}

// Background returns the current background, or nil.
func (c *Canvas) Background() *Background {
	return c.background
}

// SetBackground installs img under the shapes at (left, top) stretched by
// the per-axis scale.
func (c *Canvas) SetBackground(img image.Image, scaleX, scaleY, left, top float64) {
	bg := &Background{Image: toRGBA(img), ScaleX: scaleX, ScaleY: scaleY, Left: left, Top: top}
	if err := bg.encode(); err != nil {
		log.Printf("scene: background: %v", err)
	}
	c.background = bg
}

func (b *Background) encode() error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, b.Image); err != nil {
		return err
	}
	b.encoded = base64.StdEncoding.EncodeToString(buf.Bytes())
	return nil
}

func (b *Background) imageBuf() *gg.ImageBuf {
	if b.buf == nil {
		b.buf = gg.ImageBufFromImage(b.Image)
	}
	return b.buf
}

// DrawingMode reports the native drawing flag.
func (c *Canvas) DrawingMode() bool {
	return c.drawingMode
}

// SetDrawingMode sets the native drawing flag. While it is on, pointer
// input does not move existing shapes.
func (c *Canvas) SetDrawingMode(on bool) {
	c.drawingMode = on
	if on {
		c.drag = nil
	}
}

// OnModified registers fn to run after the user changes a shape directly.
func (c *Canvas) OnModified(fn func()) {
	c.onModified = append(c.onModified, fn)
}

// NotifyModified runs the OnModified callbacks.
func (c *Canvas) NotifyModified() {
	for _, fn := range c.onModified {
		fn()
	}
}

// Render rasterizes the scene at the current size and zoom.
func (c *Canvas) Render() {
	if c.dc == nil {
		c.dc = gg.NewContext(c.width, c.height)
	} else if err := c.dc.Resize(c.width, c.height); err != nil {
		log.Printf("scene: resize: %v", err)
		return
	}
	f := render.Frame{
		Backdrop: c.backdrop,
		Shapes:   c.shapes,
		Zoom:     c.zoom,
	}
	if bg := c.background; bg != nil {
		f.Background = &render.Layer{
			Image:  bg.imageBuf(),
			X:      bg.Left,
			Y:      bg.Top,
			Width:  bg.Width(),
			Height: bg.Height(),
		}
	}
	if err := render.Draw(c.dc, f); err != nil {
		log.Printf("scene: render: %v", err)
	}
}

// Frame returns the last rendered raster, rendering first if needed.
func (c *Canvas) Frame() image.Image {
	if c.dc == nil || c.dc.Width() != c.width || c.dc.Height() != c.height {
		c.Render()
	}
	return c.dc.Image()
}

// EncodePNG writes the last rendered raster as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	c.Frame()
	if err := c.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeJPEG writes the last rendered raster as JPEG.
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	c.Frame()
	if err := c.dc.EncodeJPEG(w, quality); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

// SetOrigin records where the surface's top-left sits in window coordinates.
func (c *Canvas) SetOrigin(p geom.Point) {
	c.origin = p
}

// Pointer converts window coordinates to surface coordinates.
func (c *Canvas) Pointer(x, y float64) geom.Point {
	return geom.Pt((x-c.origin.X)/c.zoom, (y-c.origin.Y)/c.zoom)
}
