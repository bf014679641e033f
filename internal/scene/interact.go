package scene

import (
	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/shape"
)

// HitTolerance is how far outside a shape's box a press still grabs it.
const HitTolerance = 4.0

type drag struct {
	target *shape.Shape
	last   geom.Point
}

// ShapeAt returns the topmost shape under p, or nil.
func (c *Canvas) ShapeAt(p geom.Point) *shape.Shape {
	for i := len(c.shapes) - 1; i >= 0; i-- {
		if c.shapes[i].Contains(p, HitTolerance) {
			return c.shapes[i]
		}
	}
	return nil
}

// Grab starts moving the shape under p.
func (c *Canvas) Grab(p geom.Point) bool {
	if c.drawingMode {
		return false
	}
	s := c.ShapeAt(p)
	if s == nil {
		return false
	}
	c.drag = &drag{target: s, last: p}
	return true
}

// Drag moves the grabbed shape to follow p.
func (c *Canvas) Drag(p geom.Point) bool {
	d := c.drag
	if d == nil {
		return false
	}
	d.target.Translate(p.X-d.last.X, p.Y-d.last.Y)
	d.last = p
	c.Render()
	return true
}

// Release drops the grabbed shape at p and reports the modification.
func (c *Canvas) Release(p geom.Point) bool {
	if !c.Drag(p) {
		return false
	}
	c.drag = nil
	c.NotifyModified()
	return true
}

// Dragging reports whether a shape is grabbed.
func (c *Canvas) Dragging() bool {
	return c.drag != nil
}
