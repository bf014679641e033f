package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/example/photomark/internal/annotate"
	"github.com/example/photomark/internal/export"
	"github.com/example/photomark/internal/geom"
	"github.com/example/photomark/internal/notify"
	"github.com/example/photomark/internal/shape"
)

var errQuit = errors.New("quit")

// session interprets text commands against one editor. It backs both the
// render and interactive subcommands.
type session struct {
	ctx      context.Context
	editor   *annotate.Editor
	out      io.Writer
	outDir   string
	notifier *notify.Notifier
}

func newSession(ctx context.Context, e *annotate.Editor, out io.Writer, outDir string, n *notify.Notifier) *session {
	return &session{ctx: ctx, editor: e, out: out, outDir: outDir, notifier: n}
}

// run executes each line of r. With prompt set it keeps going after
// errors, printing them to the output; otherwise the first error stops it.
func (s *session) run(r io.Reader, prompt bool) error {
	scanner := bufio.NewScanner(r)
	line := 0
	for {
		if prompt {
			fmt.Fprint(s.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		line++
		err := s.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			if !prompt {
				return fmt.Errorf("line %d: %w", line, err)
			}
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

// exec runs a single command. Blank lines and # comments are ignored.
func (s *session) exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	args := strings.Fields(line)
	cmd, args := args[0], args[1:]
	e := s.editor

	switch cmd {
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open PATH")
		}
		return s.open(args[0])
	case "add":
		if len(args) != 1 {
			return fmt.Errorf("usage: add %s", kindList())
		}
		if !e.AddShape(args[0]) {
			return fmt.Errorf("unknown shape %q (want %s)", args[0], kindList())
		}
	case "draw":
		if len(args) != 1 {
			return fmt.Errorf("usage: draw on|off|toggle")
		}
		switch args[0] {
		case "on":
			e.SetDrawingMode(true)
		case "off":
			e.SetDrawingMode(false)
		case "toggle":
			e.ToggleDrawingMode()
		default:
			return fmt.Errorf("usage: draw on|off|toggle")
		}
		fmt.Fprintf(s.out, "drawing %s\n", onOff(e.DrawingMode()))
	case "down", "move", "up":
		p, err := parsePoints(args, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		switch cmd {
		case "down":
			e.PointerDown(p[0])
		case "move":
			e.PointerMove(p[0])
		case "up":
			e.PointerUp(p[0])
		}
	case "line":
		p, err := parsePoints(args, 2)
		if err != nil {
			return fmt.Errorf("line: %w", err)
		}
		was := e.DrawingMode()
		e.SetDrawingMode(true)
		e.PointerDown(p[0])
		e.PointerMove(p[1])
		e.PointerUp(p[1])
		e.SetDrawingMode(was)
	case "grab", "drag", "release":
		p, err := parsePoints(args, 1)
		if err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		c := e.Canvas()
		var ok bool
		switch cmd {
		case "grab":
			ok = c.Grab(p[0])
		case "drag":
			ok = c.Drag(p[0])
		case "release":
			ok = c.Release(p[0])
		}
		if !ok {
			return fmt.Errorf("%s: no shape at %v,%v", cmd, p[0].X, p[0].Y)
		}
	case "undo":
		if !e.Undo() {
			fmt.Fprintln(s.out, "nothing to undo")
		}
	case "redo":
		if !e.Redo() {
			fmt.Fprintln(s.out, "nothing to redo")
		}
	case "reset":
		e.ExitCaptureMode()
	case "status":
		s.status()
	case "shapes":
		return e.ExportAnnotations(s.out)
	case "export":
		if len(args) < 1 || len(args) > 2 {
			return fmt.Errorf("usage: export json|png|jpg [PATH]")
		}
		path := ""
		if len(args) == 2 {
			path = args[1]
		}
		return s.export(args[0], path)
	case "copy":
		if len(args) != 1 {
			return fmt.Errorf("usage: copy image|json")
		}
		return s.copy(args[0])
	case "exit", "quit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (s *session) open(path string) error {
	if err := s.editor.OpenFile(s.ctx, path); err != nil {
		return err
	}
	wk := s.editor.Working()
	if wk == nil {
		return fmt.Errorf("open %s: no drawing buffer for image", path)
	}
	s.notifier.Capture(path, wk.Corrected)
	w, h := s.editor.Canvas().Size()
	fmt.Fprintf(s.out, "opened %s %dx%d as %dx%d\n", path, wk.NaturalWidth, wk.NaturalHeight, w, h)
	return nil
}

func (s *session) export(kind, path string) error {
	var (
		written string
		err     error
	)
	switch {
	case kind == "json" && path == "":
		written, err = s.editor.SaveAnnotations(s.outDir)
	case kind == "json":
		written, err = s.saveAs(path, s.editor.ExportAnnotations)
	case path == "":
		written, err = s.editor.SaveImage(s.outDir, kind)
	default:
		if _, err := export.ParseFormat(kind); err != nil {
			return err
		}
		written, err = s.saveAs(path, func(w io.Writer) error {
			return s.editor.ExportImage(w, kind)
		})
	}
	if err != nil {
		return err
	}
	s.notifier.Export(written)
	fmt.Fprintf(s.out, "wrote %s\n", written)
	return nil
}

func (s *session) copy(kind string) error {
	var buf bytes.Buffer
	switch kind {
	case "image":
		if err := s.editor.ExportImage(&buf, string(export.PNG)); err != nil {
			return err
		}
		if err := writeClipboardFn(buf.Bytes()); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	case "json":
		if err := s.editor.ExportAnnotations(&buf); err != nil {
			return err
		}
		if err := writeClipboardTextFn(buf.String()); err != nil {
			return fmt.Errorf("copy json: %w", err)
		}
	default:
		return fmt.Errorf("usage: copy image|json")
	}
	s.notifier.Copy(kind)
	fmt.Fprintf(s.out, "copied %s to clipboard\n", kind)
	return nil
}

func (s *session) saveAs(path string, write func(io.Writer) error) (string, error) {
	if !filepath.IsAbs(path) && filepath.Dir(path) == "." {
		path = filepath.Join(s.outDir, path)
	}
	return writeFile(path, write)
}

func (s *session) status() {
	e := s.editor
	if wk := e.Working(); wk != nil {
		w, h := e.Canvas().Size()
		fmt.Fprintf(s.out, "image: %dx%d placed at %dx%d (scale %.3f)\n", wk.NaturalWidth, wk.NaturalHeight, w, h, wk.Placement.Scale)
	} else {
		fmt.Fprintln(s.out, "image: none")
	}
	h := e.History()
	fmt.Fprintf(s.out, "drawing: %s (snap %g)\n", onOff(e.DrawingMode()), e.SnapThreshold())
	fmt.Fprintf(s.out, "shapes: %d\n", e.Canvas().Len())
	fmt.Fprintf(s.out, "history: %d/%d\n", h.Index()+1, h.Len())
}

func parsePoints(args []string, n int) ([]geom.Point, error) {
	if len(args) != 2*n {
		return nil, fmt.Errorf("expected %d coordinates, got %d", 2*n, len(args))
	}
	pts := make([]geom.Point, n)
	for i := range pts {
		x, err := strconv.ParseFloat(args[2*i], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid x %q: %w", args[2*i], err)
		}
		y, err := strconv.ParseFloat(args[2*i+1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid y %q: %w", args[2*i+1], err)
		}
		pts[i] = geom.Pt(x, y)
		if !pts[i].Finite() {
			return nil, fmt.Errorf("coordinates must be finite, got %s %s", args[2*i], args[2*i+1])
		}
	}
	return pts, nil
}

func kindList() string {
	kinds := shape.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
