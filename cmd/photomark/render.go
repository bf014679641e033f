package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/photomark/internal/annotate"
	"github.com/example/photomark/internal/clipboard"
	"github.com/example/photomark/internal/export"
)

var (
	writeClipboardFn     = clipboard.WriteEncoded
	writeClipboardTextFn = clipboard.WriteText
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, "; ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// renderCmd annotates an image without a window and writes the exports.
type renderCmd struct {
	*root
	fs          *flag.FlagSet
	file        string
	commands    stringList
	script      string
	outDir      string
	format      string
	multiplier  float64
	toClipboard bool
}

func (r *renderCmd) FlagSet() *flag.FlagSet {
	return r.fs
}

func parseRenderCmd(args []string, rt *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	r := &renderCmd{root: rt, fs: fs}
	fs.StringVar(&r.file, "file", "", "image file to annotate (required)")
	fs.Var(&r.commands, "e", "session command to run; may be repeated")
	fs.StringVar(&r.script, "script", "", "file of session commands, one per line")
	fs.StringVar(&r.outDir, "out-dir", "", "directory exports are written to")
	fs.StringVar(&r.format, "format", rt.defaultFormat(), "image export format (png or jpg)")
	fs.Float64Var(&r.multiplier, "multiplier", 0, "export resolution multiplier (0 uses the configured value)")
	fs.BoolVar(&r.toClipboard, "to-clipboard", false, "also copy the exported PNG to the clipboard")
	fs.Usage = usageFunc(r)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if r.file == "" {
		return nil, &UsageError{of: r, reason: "-file is required"}
	}
	if _, err := export.ParseFormat(r.format); err != nil {
		return nil, &UsageError{of: r, reason: err.Error()}
	}
	if r.multiplier < 0 {
		return nil, &UsageError{of: r, reason: "-multiplier must be positive"}
	}
	return r, nil
}

func (r *renderCmd) Run() error {
	var opts []annotate.Option
	if r.multiplier > 0 {
		opts = append(opts, annotate.WithExportMultiplier(r.multiplier))
	}
	e := r.newEditor(opts...)
	outDir := r.root.outDir(r.outDir)
	s := newSession(context.Background(), e, os.Stdout, outDir, r.notifier)

	if err := s.open(r.file); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for i, c := range r.commands {
		if err := s.exec(c); err != nil && !errors.Is(err, errQuit) {
			return fmt.Errorf("render: -e #%d %q: %w", i+1, c, err)
		}
	}
	if r.script != "" {
		f, err := os.Open(r.script)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		defer f.Close()
		if err := s.run(f, false); err != nil {
			return fmt.Errorf("render: %s: %w", r.script, err)
		}
	}

	paths, err := e.SaveTo(outDir, r.format)
	for _, p := range paths {
		r.notifier.Export(p)
		fmt.Fprintf(os.Stdout, "wrote %s\n", p)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if r.toClipboard {
		var buf bytes.Buffer
		if err := e.ExportImage(&buf, string(export.PNG)); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		if err := writeClipboardFn(buf.Bytes()); err != nil {
			return fmt.Errorf("render: copy to clipboard: %w", err)
		}
		r.notifier.Copy("annotated image")
	}
	return nil
}
