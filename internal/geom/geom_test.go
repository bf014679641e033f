package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Point
		want float64
	}{
		{Pt(0, 0), Pt(3, 4), 5},
		{Pt(105, 0), Pt(103, 0), 2},
		{Pt(-1, -1), Pt(-1, -1), 0},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := Distance(tt.b, tt.a); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Distance is not symmetric for %v, %v", tt.a, tt.b)
		}
	}
}

func TestFitScale(t *testing.T) {
	if got := FitScale(1600, 1200, 800, 600); got != 0.5 {
		t.Errorf("FitScale landscape = %v, want 0.5", got)
	}
	if got := FitScale(400, 100, 800, 600); got != 2 {
		t.Errorf("FitScale upscale = %v, want 2", got)
	}
	if got := FitScale(1000, 300, 800, 600); got != 0.8 {
		t.Errorf("FitScale width bound = %v, want 0.8", got)
	}
}

func TestBounds(t *testing.T) {
	lo, hi := Bounds([]Point{Pt(100, 100), Pt(200, 100), Pt(150, 200)})
	if lo != Pt(100, 100) || hi != Pt(200, 200) {
		t.Errorf("Bounds = %v %v", lo, hi)
	}
	lo, hi = Bounds(nil)
	if lo != (Point{}) || hi != (Point{}) {
		t.Errorf("Bounds(nil) = %v %v", lo, hi)
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(1, 2), true},
		{Pt(math.NaN(), 0), false},
		{Pt(0, math.Inf(1)), false},
		{Pt(math.Inf(-1), math.NaN()), false},
	}
	for _, tt := range tests {
		if got := tt.p.Finite(); got != tt.want {
			t.Errorf("%v.Finite() = %v, want %v", tt.p, got, tt.want)
		}
	}
}
