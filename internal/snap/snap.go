// Package snap implements free-hand line drawing where a released line's
// endpoints jump onto nearby endpoints of lines already in the scene.
package snap

import (
	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/shape"
)

// DefaultThreshold is the snapping distance in surface units.
const DefaultThreshold = 10.0

// Canvas is the surface the engine draws on.
type Canvas interface {
	Add(s *shape.Shape)
	Shapes() []*shape.Shape
	Render()
	SetDrawingMode(on bool)
}

// Recorder takes a history snapshot.
type Recorder interface {
	SaveState() bool
}

// Engine tracks the drawing-mode flag and the line being dragged.
type Engine struct {
	canvas    Canvas
	history   Recorder
	threshold float64
	style     shape.Style
	drawing   bool
	line      *shape.Shape
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the snapping distance. Non-positive values are ignored.
func WithThreshold(d float64) Option {
	return func(e *Engine) {
		if d > 0 {
			e.threshold = d
		}
	}
}

// WithStyle sets the stroke of new lines.
func WithStyle(st shape.Style) Option {
	return func(e *Engine) {
		if st.Stroke != "" {
			e.style.Stroke = st.Stroke
		}
		if st.Width > 0 {
			e.style.Width = st.Width
		}
	}
}

// New creates an idle engine with drawing mode off.
func New(c Canvas, h Recorder, opts ...Option) *Engine {
	e := &Engine{
		canvas:    c,
		history:   h,
		threshold: DefaultThreshold,
		style:     shape.DefaultLineStyle,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Threshold returns the snapping distance.
func (e *Engine) Threshold() float64 {
	return e.threshold
}

// DrawingMode reports whether pointer input draws lines.
func (e *Engine) DrawingMode() bool {
	return e.drawing
}

// SetDrawingMode sets the flag and mirrors it onto the canvas. Turning
// drawing off mid-gesture finishes the line where it currently ends.
func (e *Engine) SetDrawingMode(on bool) {
	if !on && e.line != nil {
		e.finish(e.line.End())
	}
	e.drawing = on
	e.canvas.SetDrawingMode(on)
}

// Toggle flips drawing mode and returns the new value.
func (e *Engine) Toggle() bool {
	e.SetDrawingMode(!e.drawing)
	return e.drawing
}

// Dragging reports whether a line is in progress.
func (e *Engine) Dragging() bool {
	return e.line != nil
}

// PointerDown starts a zero-length line at p.
func (e *Engine) PointerDown(p geom.Point) {
	if !e.drawing || e.line != nil {
		return
	}
	e.line = shape.NewLine(p, e.style)
	e.canvas.Add(e.line)
}

// PointerMove drags the end of the line in progress.
func (e *Engine) PointerMove(p geom.Point) {
	if !e.drawing || e.line == nil {
		return
	}
	e.line.SetEnd(p)
	e.canvas.Render()
}

// PointerUp finishes the line, snaps it and records a history entry. The
// line in progress is dropped even when drawing mode is off.
func (e *Engine) PointerUp(p geom.Point) {
	if !e.drawing {
		e.line = nil
		return
	}
	e.finish(p)
}

func (e *Engine) finish(end geom.Point) {
	line := e.line
	e.line = nil
	if line == nil {
		return
	}
	line.SetEnd(end)
	Resolve(line, e.canvas.Shapes(), e.threshold)
	e.canvas.Render()
	e.history.SaveState()
}

// Resolve snaps line against every other line in others, in order. For each
// candidate the first pairing closer than threshold wins: end to start, end
// to end, start to start, start to end. Later candidates may override
// earlier matches.
func Resolve(line *shape.Shape, others []*shape.Shape, threshold float64) {
	for _, o := range others {
		if o == line || o.Kind != shape.Line {
			continue
		}
		start, end := line.Start(), line.End()
		switch {
		case geom.Distance(end, o.Start()) < threshold:
			line.SetEnd(o.Start())
		case geom.Distance(end, o.End()) < threshold:
			line.SetEnd(o.End())
		case geom.Distance(start, o.Start()) < threshold:
			line.SetStart(o.Start())
		case geom.Distance(start, o.End()) < threshold:
			line.SetStart(o.End())
		}
	}
}
