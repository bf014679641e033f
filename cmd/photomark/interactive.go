package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

var interactiveInput io.Reader = os.Stdin

type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	file   string
	outDir string
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ContinueOnError)
	i := &interactiveCmd{root: r, fs: fs}
	fs.StringVar(&i.file, "file", "", "image file to open first")
	fs.StringVar(&i.outDir, "out-dir", "", "directory exports are written to")
	fs.Usage = usageFunc(i)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	s := newSession(context.Background(), i.newEditor(), os.Stdout, i.root.outDir(i.outDir), i.notifier)
	if i.file != "" {
		if err := s.open(i.file); err != nil {
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
		}
	}
	fmt.Fprintln(os.Stdout, "Enter commands (type 'exit' to quit)")
	return s.run(interactiveInput, true)
}
