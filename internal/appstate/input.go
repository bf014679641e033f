package appstate

import (
	"image"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/photomark/internal/geom"
)

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

var keyboardAction = map[KeyShortcut]action{
	{key.CodeZ, key.ModControl}: actionUndo,
	{key.CodeY, key.ModControl}: actionRedo,
	{key.CodeS, key.ModControl}: actionSave,
	{key.CodeC, key.ModControl}: actionCopy,
	{key.CodeR, 0}:              actionRect,
	{key.CodeP, 0}:              actionPolygon,
	{key.CodeL, 0}:              actionPolyline,
	{key.CodeD, 0}:              actionDraw,
	{key.CodeEscape, 0}:         actionStopDrawing,
	{key.CodeQ, 0}:              actionExit,
}

// shortcutFor maps a key press to its action. Shift is ignored.
func shortcutFor(e key.Event) (action, bool) {
	if e.Direction != key.DirPress {
		return "", false
	}
	act, ok := keyboardAction[KeyShortcut{Code: e.Code, Modifiers: e.Modifiers &^ key.ModShift}]
	return act, ok
}

func (a *AppState) handleKey(e key.Event) (repaint, quit bool) {
	act, ok := shortcutFor(e)
	if !ok {
		return false, false
	}
	if a.perform(act) {
		return false, true
	}
	return true, false
}

// canvasOrigin is where the surface's top-left corner sits in the window.
var canvasOrigin = image.Pt(0, toolbarHeight)

func (a *AppState) handleMouse(e mouse.Event) (repaint, quit bool) {
	pt := image.Pt(int(e.X), int(e.Y))
	if e.Direction == mouse.DirNone {
		if hover := buttonAt(a.buttons, pt); hover != a.hover {
			a.hover = hover
			repaint = true
		}
	}
	if e.Button != mouse.ButtonLeft && !(e.Direction == mouse.DirNone && a.pressed) {
		return repaint, false
	}

	c := a.editor.Canvas()
	c.SetOrigin(geom.Pt(float64(canvasOrigin.X), float64(canvasOrigin.Y)))
	p := c.Pointer(float64(e.X), float64(e.Y))

	switch e.Direction {
	case mouse.DirPress:
		if i := buttonAt(a.buttons, pt); i >= 0 {
			return true, a.perform(toolButtons[i].act)
		}
		if pt.Y < toolbarHeight {
			return repaint, false
		}
		a.pressed = true
		a.editor.PointerDown(p)
		return true, false
	case mouse.DirNone:
		a.editor.PointerMove(p)
		return true, false
	case mouse.DirRelease:
		if !a.pressed {
			return repaint, false
		}
		a.pressed = false
		a.editor.PointerUp(p)
		return true, false
	}
	return repaint, false
}
