// Package geom holds the small amount of planar geometry the editor needs.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in surface coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by (dx, dy).
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(a.vec(), b.vec()))
}

// FitScale returns the uniform factor that fits a srcW×srcH box inside
// dstW×dstH while preserving aspect ratio. The result may exceed 1.
func FitScale(srcW, srcH, dstW, dstH float64) float64 {
	return math.Min(dstW/srcW, dstH/srcH)
}

// Bounds returns the top-left and bottom-right corners of the box enclosing pts.
// An empty slice yields two zero points.
func Bounds(pts []Point) (Point, Point) {
	if len(pts) == 0 {
		return Point{}, Point{}
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
