// Package annotate ties the canvas, history, snapping and export together
// into the editor driven by the window and the command line.
package annotate

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/example/photomark/internal/capture"
	"github.com/example/photomark/internal/export"
	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/history"
	"github.com/example/photomark/internal/orient"
	"github.com/example/photomark/internal/scene"
	"github.com/example/photomark/internal/shape"
	"github.com/example/photomark/internal/snap"
)

const (
	DefaultViewportWidth  = 800
	DefaultViewportHeight = 600
)

// Editor is a single annotation session. It is not safe for concurrent use;
// one goroutine owns it.
type Editor struct {
	canvas  *scene.Canvas
	history *history.Manager
	snap    *snap.Engine
	working *orient.Working

	viewW, viewH float64
	alloc        orient.Allocator
	multiplier   float64
	quality      int

	historyOpts []history.Option
	snapOpts    []snap.Option
	sceneOpts   []scene.Option
}

// Option configures an Editor.
type Option func(*Editor)

// WithViewport sets the largest surface a placed image may occupy.
func WithViewport(w, h int) Option {
	return func(e *Editor) {
		if w > 0 && h > 0 {
			e.viewW, e.viewH = float64(w), float64(h)
		}
	}
}

// WithSnapThreshold sets the line snapping distance.
func WithSnapThreshold(d float64) Option {
	return func(e *Editor) {
		e.snapOpts = append(e.snapOpts, snap.WithThreshold(d))
	}
}

// WithLineStyle sets the stroke of free-hand lines.
func WithLineStyle(st shape.Style) Option {
	return func(e *Editor) {
		e.snapOpts = append(e.snapOpts, snap.WithStyle(st))
	}
}

// WithHistoryLimit caps the number of undo entries.
func WithHistoryLimit(n int) Option {
	return func(e *Editor) {
		e.historyOpts = append(e.historyOpts, history.WithLimit(n))
	}
}

// WithExportMultiplier sets the image export resolution factor.
func WithExportMultiplier(m float64) Option {
	return func(e *Editor) {
		if m > 0 {
			e.multiplier = m
		}
	}
}

// WithJPEGQuality sets the quality used for jpg exports.
func WithJPEGQuality(q int) Option {
	return func(e *Editor) {
		if q > 0 && q <= 100 {
			e.quality = q
		}
	}
}

// WithAllocator replaces the buffer allocator used to orient images.
func WithAllocator(a orient.Allocator) Option {
	return func(e *Editor) {
		e.alloc = a
	}
}

// WithSceneOptions passes options through to the canvas.
func WithSceneOptions(opts ...scene.Option) Option {
	return func(e *Editor) {
		e.sceneOpts = append(e.sceneOpts, opts...)
	}
}

// New creates an editor with an empty canvas the size of the viewport.
func New(opts ...Option) *Editor {
	e := &Editor{
		viewW:      DefaultViewportWidth,
		viewH:      DefaultViewportHeight,
		alloc:      orient.NewBuffer,
		multiplier: export.DefaultMultiplier,
		quality:    export.DefaultQuality,
	}
	for _, o := range opts {
		o(e)
	}
	e.canvas = scene.New(int(e.viewW), int(e.viewH), e.sceneOpts...)
	e.history = history.New(e.canvas, e.historyOpts...)
	e.snap = snap.New(e.canvas, e.history, e.snapOpts...)
	e.canvas.OnModified(func() { e.history.SaveState() })
	return e
}

// Canvas returns the drawing surface.
func (e *Editor) Canvas() *scene.Canvas { return e.canvas }

// History returns the undo history.
func (e *Editor) History() *history.Manager { return e.history }

// Working returns the image being annotated, or nil.
func (e *Editor) Working() *orient.Working { return e.working }

// CaptureImage decodes r off the calling goroutine and then places the
// result. If ctx ends first the editor is left untouched.
func (e *Editor) CaptureImage(ctx context.Context, r io.Reader) error {
	select {
	case res := <-capture.DecodeAsync(r):
		if res.Err != nil {
			return res.Err
		}
		e.PlaceImage(res.Image)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// OpenFile decodes the image at path and places it.
func (e *Editor) OpenFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := e.CaptureImage(ctx, f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// PlaceImage installs img as the working image: portrait images are turned
// to landscape, the result is fitted to the viewport and one history entry
// is recorded. It reports false when no drawing buffer was available.
func (e *Editor) PlaceImage(img image.Image) bool {
	w, ok := orient.Place(e.canvas, img, e.viewW, e.viewH, e.alloc)
	if !ok {
		return false
	}
	e.working = w
	e.canvas.Render()
	e.history.SaveState()
	return true
}

// ExitCaptureMode discards the scene, the history and the working image.
func (e *Editor) ExitCaptureMode() {
	e.canvas.Clear()
	e.history.Reset()
	e.working = nil
	e.canvas.Render()
}

// AddShape adds a default shape of kind. Unknown kinds do nothing.
func (e *Editor) AddShape(kind string) bool {
	s, ok := shape.New(kind)
	if !ok {
		return false
	}
	e.canvas.Add(s)
	e.canvas.Render()
	e.history.SaveState()
	return true
}

// DrawingMode reports whether pointer input draws lines.
func (e *Editor) DrawingMode() bool { return e.snap.DrawingMode() }

// SnapThreshold returns the line snapping distance.
func (e *Editor) SnapThreshold() float64 { return e.snap.Threshold() }

// SetDrawingMode turns free-hand line drawing on or off.
func (e *Editor) SetDrawingMode(on bool) { e.snap.SetDrawingMode(on) }

// ToggleDrawingMode flips drawing mode and returns the new value.
func (e *Editor) ToggleDrawingMode() bool { return e.snap.Toggle() }

// PointerDown handles a press at p in surface coordinates. In drawing mode
// it starts a line; otherwise it grabs the shape under p.
func (e *Editor) PointerDown(p geom.Point) {
	if !p.Finite() {
		return
	}
	if e.snap.DrawingMode() {
		e.snap.PointerDown(p)
		return
	}
	e.canvas.Grab(p)
}

// PointerMove handles pointer motion.
func (e *Editor) PointerMove(p geom.Point) {
	if !p.Finite() {
		return
	}
	if e.snap.DrawingMode() {
		e.snap.PointerMove(p)
		return
	}
	e.canvas.Drag(p)
}

// PointerUp handles a release. Any line in progress is ended first,
// whatever the drawing mode.
func (e *Editor) PointerUp(p geom.Point) {
	if !p.Finite() {
		return
	}
	drawing := e.snap.DrawingMode()
	e.snap.PointerUp(p)
	if !drawing {
		e.canvas.Release(p)
	}
}

// Busy reports whether a pointer gesture is in progress.
func (e *Editor) Busy() bool {
	return e.snap.Dragging() || e.canvas.Dragging()
}

// Undo restores the previous scene.
func (e *Editor) Undo() bool {
	if e.Busy() {
		return false
	}
	return e.history.Undo()
}

// Redo restores the next scene.
func (e *Editor) Redo() bool {
	if e.Busy() {
		return false
	}
	return e.history.Redo()
}

// ExportAnnotations writes the shape geometry as JSON.
func (e *Editor) ExportAnnotations(w io.Writer) error {
	return export.WriteAnnotations(w, e.canvas.Shapes())
}

// ExportImage writes the annotated surface in format, which must be "png"
// or "jpg".
func (e *Editor) ExportImage(w io.Writer, format string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Image(w, e.canvas, f, e.multiplier, e.quality)
}

// SaveAnnotations writes annotations.json into dir and returns its path.
func (e *Editor) SaveAnnotations(dir string) (string, error) {
	return saveFile(filepath.Join(dir, export.AnnotationsFile), e.ExportAnnotations)
}

// SaveImage writes annotated-image.<format> into dir and returns its path.
func (e *Editor) SaveImage(dir, format string) (string, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", err
	}
	return saveFile(filepath.Join(dir, f.FileName()), func(w io.Writer) error {
		return e.ExportImage(w, format)
	})
}

// SaveTo writes annotations.json plus one image per format into dir and
// returns the written paths. It stops at the first failure.
func (e *Editor) SaveTo(dir string, formats ...string) ([]string, error) {
	path, err := e.SaveAnnotations(dir)
	if err != nil {
		return nil, err
	}
	paths := []string{path}
	for _, f := range formats {
		path, err := e.SaveImage(dir, f)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveFile(path string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
