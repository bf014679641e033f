package snap

import (
	"testing"

	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/shape"
)

type fakeCanvas struct {
	shapes  []*shape.Shape
	renders int
	drawing bool
}

func (c *fakeCanvas) Add(s *shape.Shape)     { c.shapes = append(c.shapes, s) }
func (c *fakeCanvas) Shapes() []*shape.Shape { return c.shapes }
func (c *fakeCanvas) Render()                { c.renders++ }
func (c *fakeCanvas) SetDrawingMode(on bool) { c.drawing = on }

type countRecorder int

func (r *countRecorder) SaveState() bool { *r++; return true }

func line(x1, y1, x2, y2 float64) *shape.Shape {
	l := shape.NewLine(geom.Pt(x1, y1), shape.DefaultLineStyle)
	l.SetEnd(geom.Pt(x2, y2))
	return l
}

func TestDrawingModeMirrorsCanvas(t *testing.T) {
	c := &fakeCanvas{}
	var rec countRecorder
	e := New(c, &rec)
	if e.DrawingMode() {
		t.Fatal("drawing mode should start off")
	}
	if !e.Toggle() || !c.drawing {
		t.Error("toggle on not mirrored")
	}
	if e.Toggle() || c.drawing {
		t.Error("toggle off not mirrored")
	}
}

func TestPointerIgnoredWhenNotDrawing(t *testing.T) {
	c := &fakeCanvas{}
	var rec countRecorder
	e := New(c, &rec)
	e.PointerDown(geom.Pt(1, 1))
	e.PointerMove(geom.Pt(2, 2))
	e.PointerUp(geom.Pt(3, 3))
	if len(c.shapes) != 0 || rec != 0 || c.renders != 0 {
		t.Errorf("shapes=%d saves=%d renders=%d", len(c.shapes), rec, c.renders)
	}
}

func TestDrawLine(t *testing.T) {
	c := &fakeCanvas{}
	var rec countRecorder
	e := New(c, &rec)
	e.SetDrawingMode(true)

	e.PointerDown(geom.Pt(10, 10))
	if len(c.shapes) != 1 || !e.Dragging() {
		t.Fatalf("pointer-down did not start a line")
	}
	l := c.shapes[0]
	if l.Start() != geom.Pt(10, 10) || l.End() != geom.Pt(10, 10) {
		t.Errorf("new line endpoints = %v %v", l.Start(), l.End())
	}

	e.PointerMove(geom.Pt(50, 60))
	if l.End() != geom.Pt(50, 60) || rec != 0 {
		t.Errorf("move: end=%v saves=%d", l.End(), rec)
	}

	e.PointerUp(geom.Pt(80, 90))
	if l.End() != geom.Pt(80, 90) {
		t.Errorf("end = %v", l.End())
	}
	if rec != 1 || e.Dragging() {
		t.Errorf("saves=%d dragging=%v", rec, e.Dragging())
	}
}

func TestSecondPointerDownWhileDragging(t *testing.T) {
	c := &fakeCanvas{}
	var rec countRecorder
	e := New(c, &rec)
	e.SetDrawingMode(true)
	e.PointerDown(geom.Pt(0, 0))
	e.PointerDown(geom.Pt(5, 5))
	if len(c.shapes) != 1 {
		t.Errorf("shapes = %d, want 1", len(c.shapes))
	}
}

func TestSnapLaterLineOverrides(t *testing.T) {
	a := line(0, 0, 100, 0)
	b := line(105, 0, 200, 0)
	c := &fakeCanvas{shapes: []*shape.Shape{a, b}}
	var rec countRecorder
	e := New(c, &rec)
	e.SetDrawingMode(true)

	e.PointerDown(geom.Pt(50, 50))
	e.PointerUp(geom.Pt(103, 0))

	drawn := c.shapes[2]
	if drawn.End() != geom.Pt(105, 0) {
		t.Errorf("end = %v, want (105,0)", drawn.End())
	}
	if drawn.Start() != geom.Pt(50, 50) {
		t.Errorf("start moved to %v", drawn.Start())
	}
}

func TestResolvePriority(t *testing.T) {
	tests := []struct {
		name       string
		other      *shape.Shape
		drawn      *shape.Shape
		start, end geom.Point
	}{
		{"end to start", line(0, 0, 100, 100), line(300, 300, 3, 0), geom.Pt(300, 300), geom.Pt(0, 0)},
		{"end to end", line(0, 0, 100, 100), line(300, 300, 98, 99), geom.Pt(300, 300), geom.Pt(100, 100)},
		{"start to start", line(0, 0, 100, 100), line(2, 2, 300, 300), geom.Pt(0, 0), geom.Pt(300, 300)},
		{"start to end", line(0, 0, 100, 100), line(101, 101, 300, 300), geom.Pt(100, 100), geom.Pt(300, 300)},
		{"end wins over start", line(0, 0, 100, 100), line(1, 1, 99, 99), geom.Pt(1, 1), geom.Pt(100, 100)},
		{"nothing near", line(0, 0, 100, 100), line(20, 0, 50, 0), geom.Pt(20, 0), geom.Pt(50, 0)},
		{"threshold is strict", line(0, 0, 100, 100), line(300, 300, 10, 0), geom.Pt(300, 300), geom.Pt(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Resolve(tt.drawn, []*shape.Shape{tt.other, tt.drawn}, DefaultThreshold)
			if tt.drawn.Start() != tt.start || tt.drawn.End() != tt.end {
				t.Errorf("got %v-%v, want %v-%v", tt.drawn.Start(), tt.drawn.End(), tt.start, tt.end)
			}
		})
	}
}

func TestResolveIgnoresOtherKinds(t *testing.T) {
	poly, _ := shape.New("polyline")
	drawn := line(300, 300, 101, 101)
	Resolve(drawn, []*shape.Shape{poly, drawn}, DefaultThreshold)
	if drawn.End() != geom.Pt(101, 101) {
		t.Errorf("snapped to a polyline vertex: %v", drawn.End())
	}
}

func TestWithThreshold(t *testing.T) {
	e := New(&fakeCanvas{}, new(countRecorder), WithThreshold(25))
	if e.Threshold() != 25 {
		t.Errorf("threshold = %v", e.Threshold())
	}
	e = New(&fakeCanvas{}, new(countRecorder), WithThreshold(-1))
	if e.Threshold() != DefaultThreshold {
		t.Errorf("negative threshold accepted: %v", e.Threshold())
	}
}

func TestDrawingOffMidGestureFinishesLine(t *testing.T) {
	c := &fakeCanvas{}
	var rec countRecorder
	e := New(c, &rec)
	e.SetDrawingMode(true)
	e.PointerDown(geom.Pt(300, 300))
	e.PointerMove(geom.Pt(320, 300))
	e.SetDrawingMode(false)
	if e.Dragging() {
		t.Fatal("line still in progress after drawing was turned off")
	}
	if rec != 1 {
		t.Errorf("saves = %d, want 1", rec)
	}
	e.PointerUp(geom.Pt(350, 300))
	if got := c.shapes[0].End(); got != geom.Pt(320, 300) {
		t.Errorf("release moved the finished line to %v", got)
	}

	e.SetDrawingMode(true)
	e.PointerDown(geom.Pt(400, 400))
	e.PointerUp(geom.Pt(450, 400))
	if len(c.shapes) != 2 || rec != 2 {
		t.Errorf("shapes=%d saves=%d, want 2 and 2", len(c.shapes), rec)
	}
}

func TestPointerUpClearsLineWhenNotDrawing(t *testing.T) {
	c := &fakeCanvas{}
	var rec countRecorder
	e := New(c, &rec)
	e.SetDrawingMode(true)
	e.PointerDown(geom.Pt(1, 1))
	e.drawing = false
	e.PointerUp(geom.Pt(5, 5))
	if e.Dragging() || rec != 0 {
		t.Errorf("dragging=%v saves=%d", e.Dragging(), rec)
	}
}
