package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/photomark/internal/theme"
)

const (
	toolbarHeight = 24
	statusHeight  = 20
	buttonPadding = 8
)

type toolButton struct {
	label string
	act   action
}

var toolButtons = []toolButton{
	{"Rect", actionRect},
	{"Polygon", actionPolygon},
	{"Polyline", actionPolyline},
	{"Draw", actionDraw},
	{"Undo", actionUndo},
	{"Redo", actionRedo},
	{"JSON", actionJSON},
	{"PNG", actionPNG},
	{"JPG", actionJPG},
	{"Copy", actionCopy},
	{"Exit", actionExit},
}

// layoutButtons places the toolbar buttons left to right, each sized to
// its label.
func layoutButtons() []image.Rectangle {
	d := &font.Drawer{Face: basicfont.Face7x13}
	rects := make([]image.Rectangle, len(toolButtons))
	x := 0
	for i, b := range toolButtons {
		w := d.MeasureString(b.label).Ceil() + 2*buttonPadding
		rects[i] = image.Rect(x, 0, x+w, toolbarHeight)
		x += w
	}
	return rects
}

func toolbarWidth() int {
	rects := layoutButtons()
	return rects[len(rects)-1].Max.X
}

// buttonAt returns the index of the button containing p, or -1.
func buttonAt(rects []image.Rectangle, p image.Point) int {
	for i, r := range rects {
		if p.In(r) {
			return i
		}
	}
	return -1
}

// drawToolbar paints the buttons. Buttons for which enabled reports false
// are drawn flat with their label in the border colour.
func drawToolbar(dst *image.RGBA, th *theme.Theme, rects []image.Rectangle, hover int, drawing bool, enabled func(action) bool) {
	bar := image.Rect(0, 0, dst.Bounds().Dx(), toolbarHeight)
	draw.Draw(dst, bar, image.NewUniform(th.ToolbarBackground), image.Point{}, draw.Src)
	for i, r := range rects {
		if !enabled(toolButtons[i].act) {
			outline(dst, r, th.ButtonBorder)
			label(dst, toolButtons[i].label, r.Min.X+buttonPadding, r.Min.Y+16, th.ButtonBorder)
			continue
		}
		bg := th.ButtonBackground
		switch {
		case toolButtons[i].act == actionDraw && drawing:
			bg = th.ButtonBackgroundActive
		case i == hover:
			bg = th.ButtonBackgroundHover
		}
		draw.Draw(dst, r, image.NewUniform(bg), image.Point{}, draw.Src)
		outline(dst, r, th.ButtonBorder)
		label(dst, toolButtons[i].label, r.Min.X+buttonPadding, r.Min.Y+16, th.ButtonText)
	}
}

func drawStatus(dst *image.RGBA, th *theme.Theme, text string) {
	b := dst.Bounds()
	r := image.Rect(0, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, r, image.NewUniform(th.StatusBackground), image.Point{}, draw.Src)
	label(dst, text, r.Min.X+4, r.Min.Y+14, th.StatusText)
}

func label(dst *image.RGBA, s string, x, y int, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: basicfont.Face7x13,
		Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func outline(dst *image.RGBA, r image.Rectangle, col color.Color) {
	u := image.NewUniform(col)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}
