package appstate

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/example/photomark/internal/clipboard"
	"github.com/example/photomark/internal/export"
	"github.com/example/photomark/internal/shape"
)

type action string

const (
	actionRect        action = "rect"
	actionPolygon     action = "polygon"
	actionPolyline    action = "polyline"
	actionDraw        action = "draw"
	actionStopDrawing action = "stop-drawing"
	actionUndo        action = "undo"
	actionRedo        action = "redo"
	actionJSON        action = "json"
	actionPNG         action = "png"
	actionJPG         action = "jpg"
	actionSave        action = "save"
	actionCopy        action = "copy"
	actionExit        action = "exit"
)

var copyImage = clipboard.WriteEncoded

// perform runs act and reports whether the window should close.
func (a *AppState) perform(act action) (quit bool) {
	e := a.editor
	switch act {
	case actionRect:
		e.AddShape(string(shape.Rectangle))
	case actionPolygon:
		e.AddShape(string(shape.Polygon))
	case actionPolyline:
		e.AddShape(string(shape.Polyline))
	case actionDraw:
		if e.ToggleDrawingMode() {
			a.say("drawing on")
		} else {
			a.say("drawing off")
		}
	case actionStopDrawing:
		if e.DrawingMode() {
			e.SetDrawingMode(false)
			a.say("drawing off")
		}
	case actionUndo:
		if !a.enabled(act) || !e.Undo() {
			a.say("nothing to undo")
		}
	case actionRedo:
		if !a.enabled(act) || !e.Redo() {
			a.say("nothing to redo")
		}
	case actionJSON:
		a.saved(e.SaveAnnotations(a.outDir))
	case actionPNG:
		a.saved(e.SaveImage(a.outDir, string(export.PNG)))
	case actionJPG:
		a.saved(e.SaveImage(a.outDir, string(export.JPG)))
	case actionSave:
		paths, err := e.SaveTo(a.outDir, string(a.format))
		for _, p := range paths {
			a.notifier.Export(p)
		}
		if err != nil {
			log.Printf("save: %v", err)
			a.say("save failed: " + err.Error())
			break
		}
		a.say("saved " + strings.Join(paths, ", "))
	case actionCopy:
		a.copy()
	case actionExit:
		return true
	default:
		log.Printf("unknown action %q", act)
	}
	return false
}

func (a *AppState) saved(path string, err error) {
	if err != nil {
		log.Printf("export: %v", err)
		a.say("export failed: " + err.Error())
		return
	}
	a.notifier.Export(path)
	a.say("saved " + path)
}

func (a *AppState) copy() {
	var buf bytes.Buffer
	if err := a.editor.ExportImage(&buf, string(export.PNG)); err != nil {
		log.Printf("copy: %v", err)
		a.say("copy failed: " + err.Error())
		return
	}
	if err := copyImage(buf.Bytes()); err != nil {
		log.Printf("copy: %v", err)
		a.say("copy failed: " + err.Error())
		return
	}
	a.notifier.Copy("annotated image")
	a.say(fmt.Sprintf("image copied to clipboard (%d bytes)", buf.Len()))
}

// enabled reports whether act can currently do anything. Undo and Redo
// follow the history cursor and are off during a gesture.
func (a *AppState) enabled(act action) bool {
	e := a.editor
	switch act {
	case actionUndo:
		return !e.Busy() && e.History().CanUndo()
	case actionRedo:
		return !e.Busy() && e.History().CanRedo()
	}
	return true
}
