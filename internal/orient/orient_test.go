package orient

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func marked(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestNormalizeLandscapeUnchanged(t *testing.T) {
	src := marked(4, 3)
	got, err := Normalize(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if got.RGBAAt(x, y) != src.RGBAAt(x, y) {
				t.Fatalf("pixel %d,%d changed", x, y)
			}
		}
	}
}

func TestNormalizeSquareUnchanged(t *testing.T) {
	got, err := Normalize(marked(5, 5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 5 || got.Bounds().Dy() != 5 {
		t.Errorf("bounds = %v", got.Bounds())
	}
}

func TestNormalizePortraitRotatesClockwise(t *testing.T) {
	const w, h = 2, 3
	src := marked(w, h)
	got, err := Normalize(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != h || got.Bounds().Dy() != w {
		t.Fatalf("bounds = %v, want %dx%d", got.Bounds(), h, w)
	}
	// A clockwise quarter turn sends source (x, y) to (h-1-y, x).
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := got.RGBAAt(h-1-y, x); c != src.RGBAAt(x, y) {
				t.Errorf("src %d,%d landed as %v", x, y, c)
			}
		}
	}
}

func TestNormalizeOffsetBounds(t *testing.T) {
	src := marked(6, 10).SubImage(image.Rect(2, 3, 4, 6)).(*image.RGBA)
	got, err := Normalize(src, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.RGBAAt(2, 0) != src.RGBAAt(2, 3) {
		t.Errorf("top-left of sub-image landed as %v", got.RGBAAt(2, 0))
	}
}

func TestNormalizeAllocatorFailure(t *testing.T) {
	fail := func(w, h int) (*image.RGBA, error) { return nil, ErrNoContext }
	if _, err := Normalize(marked(2, 3), fail); !errors.Is(err, ErrNoContext) {
		t.Errorf("err = %v", err)
	}
	if _, err := NewBuffer(0, 10); !errors.Is(err, ErrNoContext) {
		t.Errorf("NewBuffer(0, 10) err = %v", err)
	}
}

func TestFit(t *testing.T) {
	p := Fit(1600, 1200, 800, 600)
	if p.Scale != 0.5 || p.Width != 800 || p.Height != 600 {
		t.Errorf("placement = %+v", p)
	}
	if p.ScaleX != 0.5 || p.ScaleY != 0.5 {
		t.Errorf("axis scale = %v %v", p.ScaleX, p.ScaleY)
	}
}

type fakeSurface struct {
	w, h           int
	bg             image.Image
	scaleX, scaleY float64
}

func (s *fakeSurface) SetSize(w, h int) { s.w, s.h = w, h }
func (s *fakeSurface) SetBackground(img image.Image, sx, sy, left, top float64) {
	s.bg, s.scaleX, s.scaleY = img, sx, sy
}

func TestPlacePortrait(t *testing.T) {
	// A 1000×2000 portrait becomes 2000×1000 and fits 800×600 at 0.4.
	s := &fakeSurface{}
	wk, ok := Place(s, image.NewRGBA(image.Rect(0, 0, 1000, 2000)), 800, 600, nil)
	if !ok {
		t.Fatal("place failed")
	}
	if wk.NaturalWidth != 1000 || wk.NaturalHeight != 2000 {
		t.Errorf("natural = %dx%d", wk.NaturalWidth, wk.NaturalHeight)
	}
	if s.w != 800 || s.h != 400 {
		t.Errorf("surface = %dx%d, want 800x400", s.w, s.h)
	}
	if math.Abs(s.scaleX-0.4) > 1e-9 || math.Abs(s.scaleY-0.4) > 1e-9 {
		t.Errorf("scale = %v %v", s.scaleX, s.scaleY)
	}
	if s.bg.Bounds().Dx() != 2000 {
		t.Errorf("background width = %d", s.bg.Bounds().Dx())
	}
}

func TestPlaceNoBuffer(t *testing.T) {
	s := &fakeSurface{w: 10, h: 10}
	fail := func(w, h int) (*image.RGBA, error) { return nil, ErrNoContext }
	if _, ok := Place(s, marked(2, 3), 800, 600, fail); ok {
		t.Fatal("place succeeded without a buffer")
	}
	if s.bg != nil || s.w != 10 {
		t.Error("surface changed on failure")
	}
}
