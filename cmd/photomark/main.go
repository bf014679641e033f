package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/example/photomark/internal/annotate"
	"github.com/example/photomark/internal/config"
	"github.com/example/photomark/internal/notify"
	"github.com/example/photomark/internal/scene"
	"github.com/example/photomark/internal/shape"
	"github.com/example/photomark/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	captureAlerts bool
	exportAlerts  bool
	copyAlerts    bool
	verbose       bool
	themeName     string
	activeTheme   *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	program := strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &root{
		program:       program,
		notifier:      r.notifier,
		config:        r.config,
		captureAlerts: r.captureAlerts,
		exportAlerts:  r.exportAlerts,
		copyAlerts:    r.copyAlerts,
		verbose:       r.verbose,
		themeName:     r.themeName,
		activeTheme:   r.activeTheme,
	}
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("photomark", flag.ExitOnError),
		program:  "photomark",
		notifier: notify.New(prefs),
		config:   cfg,
	}
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", cfg.Notify.Capture, "show a desktop notification after an image is placed")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after writing an export")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log rasterizer diagnostics to stderr")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark)")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventCapture, r.captureAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	}
	if r.verbose {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "edit":
		cmd, err = parseEditCmd(subArgs, r.subcommand(cmdName))
	case "render":
		cmd, err = parseRenderCmd(subArgs, r.subcommand(cmdName))
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r.subcommand(cmdName))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand(cmdName))
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func (r *root) resolveTheme() *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("PHOTOMARK_THEME")
	}
	if name == "" && r.config != nil {
		name = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[name]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

// newEditor builds an editor from the loaded configuration.
func (r *root) newEditor(opts ...annotate.Option) *annotate.Editor {
	cfg := r.config
	if cfg == nil {
		cfg = config.New()
	}
	th := r.activeTheme
	if th == nil {
		th = theme.Default()
	}
	base := []annotate.Option{
		annotate.WithViewport(cfg.Surface.Width, cfg.Surface.Height),
		annotate.WithSnapThreshold(cfg.Snap.Threshold),
		annotate.WithLineStyle(shape.Style{Stroke: cfg.Line.Stroke, Width: cfg.Line.Width}),
		annotate.WithHistoryLimit(cfg.History.Limit),
		annotate.WithExportMultiplier(cfg.Export.Multiplier),
		annotate.WithJPEGQuality(cfg.Export.Quality),
		annotate.WithSceneOptions(scene.WithBackdrop(th.CanvasBackdrop)),
	}
	return annotate.New(append(base, opts...)...)
}

func (r *root) outDir(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if r.config != nil && r.config.SaveDir != "" {
		return r.config.SaveDir
	}
	return "."
}

func (r *root) defaultFormat() string {
	if r.config != nil && r.config.Export.Format != "" {
		return r.config.Export.Format
	}
	return "png"
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
