// Package shape defines the annotation shapes that live on the canvas and
// the factory that creates them with their default geometry and style.
package shape

import (
	"github.com/example/photomark/internal/geom"
)

// Kind tags the variant of a Shape.
type Kind string

const (
	Rectangle Kind = "rectangle"
	Polygon   Kind = "polygon"
	Polyline  Kind = "polyline"
	Line      Kind = "line"
)

// Transparent is the fill used by every drawn annotation.
const Transparent = "transparent"

// Style is the stroke applied to a shape outline.
type Style struct {
	Stroke string
	Width  float64
}

// Shape is a vector annotation. Rectangles carry Width and Height directly;
// polygons, polylines and lines carry Points and derive their box from them.
// A line has exactly two points: start then end.
type Shape struct {
	Kind        Kind         `json:"type"`
	Left        float64      `json:"left"`
	Top         float64      `json:"top"`
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Angle       float64      `json:"angle"`
	Points      []geom.Point `json:"points,omitempty"`
	Stroke      string       `json:"stroke"`
	StrokeWidth float64      `json:"strokeWidth"`
	Fill        string       `json:"fill"`
}

// HasPoints reports whether the shape geometry is an ordered point list.
func (s *Shape) HasPoints() bool {
	return s.Kind != Rectangle
}

// Sync recomputes Left, Top, Width and Height from Points.
func (s *Shape) Sync() {
	if !s.HasPoints() {
		return
	}
	lo, hi := geom.Bounds(s.Points)
	s.Left, s.Top = lo.X, lo.Y
	s.Width, s.Height = hi.X-lo.X, hi.Y-lo.Y
}

// Translate moves the whole shape by (dx, dy).
func (s *Shape) Translate(dx, dy float64) {
	if !s.HasPoints() {
		s.Left += dx
		s.Top += dy
		return
	}
	for i := range s.Points {
		s.Points[i] = s.Points[i].Add(dx, dy)
	}
	s.Sync()
}

// Start returns the first endpoint of a line.
func (s *Shape) Start() geom.Point {
	return s.Points[0]
}

// End returns the second endpoint of a line.
func (s *Shape) End() geom.Point {
	return s.Points[1]
}

// SetStart moves the first endpoint of a line.
func (s *Shape) SetStart(p geom.Point) {
	s.Points[0] = p
	s.Sync()
}

// SetEnd moves the second endpoint of a line.
func (s *Shape) SetEnd(p geom.Point) {
	s.Points[1] = p
	s.Sync()
}

// Contains reports whether p falls within the shape's box grown by tol.
func (s *Shape) Contains(p geom.Point, tol float64) bool {
	pad := tol + s.StrokeWidth/2
	return p.X >= s.Left-pad && p.X <= s.Left+s.Width+pad &&
		p.Y >= s.Top-pad && p.Y <= s.Top+s.Height+pad
}

// Clone returns a deep copy.
func (s *Shape) Clone() *Shape {
	c := *s
	if s.Points != nil {
		c.Points = append([]geom.Point(nil), s.Points...)
	}
	return &c
}
