package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"

	"github.com/example/photomark/internal/shape"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestDrawBackdropAndBackground(t *testing.T) {
	dc := gg.NewContext(40, 20)
	blue := color.RGBA{0, 0, 255, 255}
	err := Draw(dc, Frame{
		Backdrop: color.White,
		Background: &Layer{
			Image:  gg.ImageBufFromImage(solid(10, 10, blue)),
			Width:  20,
			Height: 20,
		},
		Zoom: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	img := dc.Image()
	if got := rgbaAt(img, 10, 10); got.B < 200 || got.R > 50 {
		t.Errorf("background pixel = %v", got)
	}
	if got := rgbaAt(img, 35, 10); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("backdrop pixel = %v", got)
	}
}

func TestDrawStrokesRectangle(t *testing.T) {
	dc := gg.NewContext(300, 300)
	r, _ := shape.New("rectangle")
	r.StrokeWidth = 4
	if err := Draw(dc, Frame{Backdrop: color.White, Shapes: []*shape.Shape{r}}); err != nil {
		t.Fatal(err)
	}
	img := dc.Image()
	if got := rgbaAt(img, 175, 100); got.G < 100 || got.R > 100 {
		t.Errorf("edge pixel = %v, want green", got)
	}
	if got := rgbaAt(img, 175, 150); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("interior pixel = %v, want untouched", got)
	}
}

func TestShapeBadColor(t *testing.T) {
	dc := gg.NewContext(10, 10)
	s, _ := shape.New("polygon")
	s.Stroke = "not-a-colour"
	if err := Shape(dc, s); err == nil {
		t.Error("expected colour error")
	}
}
