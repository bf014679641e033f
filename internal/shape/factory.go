package shape

import (
	"github.com/example/photomark/internal/geom"
)

// DefaultLineStyle is the stroke given to free-hand lines.
var DefaultLineStyle = Style{Stroke: "red", Width: 2}

var factories = map[Kind]func() *Shape{
	Rectangle: func() *Shape {
		return &Shape{
			Kind: Rectangle, Left: 100, Top: 100, Width: 150, Height: 100,
			Stroke: "green", StrokeWidth: 2, Fill: Transparent,
		}
	},
	Polygon: func() *Shape {
		return withPoints(Polygon, "red", 2, geom.Pt(100, 100), geom.Pt(200, 100), geom.Pt(150, 200))
	},
	Polyline: func() *Shape {
		return withPoints(Polyline, "blue", 3, geom.Pt(100, 100), geom.Pt(150, 150), geom.Pt(200, 100))
	},
}

// Kinds lists the tags accepted by New, in toolbar order.
func Kinds() []Kind {
	return []Kind{Rectangle, Polygon, Polyline}
}

// New creates a shape of the given kind with its default geometry and style.
// Unknown kinds return false.
func New(kind string) (*Shape, bool) {
	f, ok := factories[Kind(kind)]
	if !ok {
		return nil, false
	}
	return f(), true
}

// NewLine starts a line with both endpoints at p.
func NewLine(p geom.Point, st Style) *Shape {
	return withPoints(Line, st.Stroke, st.Width, p, p)
}

func withPoints(kind Kind, stroke string, width float64, pts ...geom.Point) *Shape {
	s := &Shape{
		Kind:        kind,
		Points:      pts,
		Stroke:      stroke,
		StrokeWidth: width,
		Fill:        Transparent,
	}
	s.Sync()
	return s
}
