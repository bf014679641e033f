package orient

import (
	"image"
	"log"
	"math"

	"github.com/example/photomark/internal/geom"
)

// Placement is where a corrected image lands on the surface.
type Placement struct {
	Scale  float64
	Width  float64
	Height float64
	// ScaleX and ScaleY stretch the corrected image to Width×Height.
	ScaleX float64
	ScaleY float64
}

// Fit scales a cw×ch image to fit surfaceW×surfaceH, preserving aspect.
func Fit(cw, ch int, surfaceW, surfaceH float64) Placement {
	scale := geom.FitScale(float64(cw), float64(ch), surfaceW, surfaceH)
	p := Placement{
		Scale:  scale,
		Width:  float64(cw) * scale,
		Height: float64(ch) * scale,
	}
	p.ScaleX = p.Width / float64(cw)
	p.ScaleY = p.Height / float64(ch)
	return p
}

// Working is the image currently being annotated.
type Working struct {
	NaturalWidth  int
	NaturalHeight int
	Corrected     *image.RGBA
	Placement     Placement
}

// Surface receives the placed image.
type Surface interface {
	SetSize(w, h int)
	SetBackground(img image.Image, scaleX, scaleY, left, top float64)
}

// Place normalizes img, fits it to the viewW×viewH viewport, resizes s to
// the placement and installs the image as its background. When no buffer
// can be obtained s is left untouched and Place returns false.
func Place(s Surface, img image.Image, viewW, viewH float64, alloc Allocator) (*Working, bool) {
	corrected, err := Normalize(img, alloc)
	if err != nil {
		log.Printf("orient: %v", err)
		return nil, false
	}
	b := corrected.Bounds()
	p := Fit(b.Dx(), b.Dy(), viewW, viewH)
	s.SetSize(pixels(p.Width), pixels(p.Height))
	s.SetBackground(corrected, p.ScaleX, p.ScaleY, 0, 0)
	nb := img.Bounds()
	return &Working{
		NaturalWidth:  nb.Dx(),
		NaturalHeight: nb.Dy(),
		Corrected:     corrected,
		Placement:     p,
	}, true
}

func pixels(v float64) int {
	return max(1, int(math.Round(v)))
}
