package appstate

import (
	"fmt"
	"image"
	"image/draw"
	"log"
	"strings"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/photomark/internal/annotate"
)

func (a *AppState) paint(s screen.Screen, w screen.Window) {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Point{a.width, a.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	a.compose(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// compose draws the whole window into dst.
func (a *AppState) compose(dst *image.RGBA) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(a.theme.Background), image.Point{}, draw.Src)

	c := a.editor.Canvas()
	c.Render()
	frame := c.Frame()
	fb := frame.Bounds()
	r := fb.Sub(fb.Min).Add(canvasOrigin)
	draw.Draw(dst, r, frame, fb.Min, draw.Over)

	drawToolbar(dst, a.theme, a.buttons, a.hover, a.editor.DrawingMode(), a.enabled)
	drawStatus(dst, a.theme, statusText(a.editor, a.currentMessage()))
}

// statusText summarizes the editor state for the bottom line.
func statusText(e *annotate.Editor, msg string) string {
	var parts []string
	if wk := e.Working(); wk != nil {
		parts = append(parts, fmt.Sprintf("%dx%d @ %.2f", wk.NaturalWidth, wk.NaturalHeight, wk.Placement.Scale))
	} else {
		parts = append(parts, "no image")
	}
	mode := "select"
	if e.DrawingMode() {
		mode = "draw"
	}
	h := e.History()
	parts = append(parts,
		mode,
		fmt.Sprintf("shapes %d", e.Canvas().Len()),
		fmt.Sprintf("history %d/%d", h.Index()+1, h.Len()),
	)
	if msg != "" {
		parts = append(parts, msg)
	}
	return strings.Join(parts, " | ")
}
