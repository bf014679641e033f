package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"github.com/example/photomark/internal/appstate"
	"github.com/example/photomark/internal/capture"
	"github.com/example/photomark/internal/clipboard"
	"github.com/example/photomark/internal/export"
)

var (
	captureScreenFn = capture.Screen
	readClipboardFn = clipboard.ReadImage
	runWindowFn     = (*appstate.AppState).Run
)

// editCmd opens the annotation window.
type editCmd struct {
	*root
	fs            *flag.FlagSet
	file          string
	fromClipboard bool
	capture       bool
	outDir        string
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	e := &editCmd{root: r, fs: fs}
	fs.StringVar(&e.file, "file", "", "image file to annotate")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "annotate the image on the clipboard")
	fs.BoolVar(&e.capture, "capture", false, "annotate a fresh screenshot of the desktop")
	fs.StringVar(&e.outDir, "out-dir", "", "directory exports are written to")
	fs.Usage = usageFunc(e)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	sources := 0
	for _, set := range []bool{e.file != "", e.fromClipboard, e.capture} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, &UsageError{of: e, reason: "-file, -from-clipboard and -capture are mutually exclusive"}
	}
	if fs.NArg() > 0 {
		return nil, &UsageError{of: e, reason: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	f, err := export.ParseFormat(e.defaultFormat())
	if err != nil {
		return fmt.Errorf("config export format: %w", err)
	}
	st := appstate.New(e.newEditor(),
		appstate.WithTheme(e.activeTheme),
		appstate.WithNotifier(e.notifier),
		appstate.WithOutputDir(e.root.outDir(e.outDir)),
		appstate.WithFormat(f),
		appstate.WithTitle(e.program),
	)
	switch {
	case e.file != "":
		data, err := os.ReadFile(e.file)
		if err != nil {
			return fmt.Errorf("edit: %w", err)
		}
		st.Open(bytes.NewReader(data), e.file)
	case e.fromClipboard:
		img, err := readClipboardFn()
		if err != nil {
			return fmt.Errorf("edit: read clipboard: %w", err)
		}
		st.OpenImage(img, "clipboard")
	case e.capture:
		img, err := captureScreenFn(capture.Options{})
		if err != nil {
			return fmt.Errorf("edit: capture screen: %w", err)
		}
		st.OpenImage(img, "screen")
	}
	runWindowFn(st)
	return nil
}
