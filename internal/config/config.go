// Package config reads and writes the photomark RC file.
package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/photomark/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Export  bool
	Copy    bool
}

// Snap holds free-hand line snapping settings.
type Snap struct {
	Threshold float64
}

// Export holds image export settings.
type Export struct {
	Multiplier float64
	Format     string
	Quality    int
}

// Surface is the largest area a placed photo may occupy.
type Surface struct {
	Width  int
	Height int
}

// History holds undo settings. A zero Limit keeps every entry.
type History struct {
	Limit int
}

// Line is the stroke of free-hand lines.
type Line struct {
	Stroke string
	Width  float64
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Snap    Snap
	Export  Export
	Surface Surface
	History History
	Line    Line
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:   "", // empty lets the environment or the built-in default win
		Snap:    Snap{Threshold: 10},
		Export:  Export{Multiplier: 2, Format: "png", Quality: 92},
		Surface: Surface{Width: 800, Height: 600},
		Line:    Line{Stroke: "red", Width: 2},
		Themes:  make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n\n", c.Notify.Copy)

	sb.WriteString("[snap]\n")
	fmt.Fprintf(&sb, "threshold = %v\n\n", c.Snap.Threshold)

	sb.WriteString("[export]\n")
	fmt.Fprintf(&sb, "multiplier = %v\n", c.Export.Multiplier)
	fmt.Fprintf(&sb, "format = %s\n", c.Export.Format)
	fmt.Fprintf(&sb, "quality = %d\n\n", c.Export.Quality)

	sb.WriteString("[surface]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Surface.Width)
	fmt.Fprintf(&sb, "height = %d\n\n", c.Surface.Height)

	sb.WriteString("[history]\n")
	fmt.Fprintf(&sb, "limit = %d\n\n", c.History.Limit)

	sb.WriteString("[line]\n")
	fmt.Fprintf(&sb, "stroke = %s\n", c.Line.Stroke)
	fmt.Fprintf(&sb, "width = %v\n\n", c.Line.Width)

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		t.Fields(func(field string, col color.RGBA) {
			fmt.Fprintf(&sb, "%s: %s\n", field, theme.Hex(col))
		})
		sb.WriteString("\n")
	}

	return sb.String()
}
