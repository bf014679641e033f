// Package theme holds the colours of the annotation window.
package theme

import (
	"image/color"
	"sort"
	"strings"
)

// Theme defines the colour palette of the window chrome.
type Theme struct {
	Name string

	// General
	Background color.RGBA // behind the canvas
	Foreground color.RGBA

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundHover  color.RGBA
	ButtonBackgroundActive color.RGBA // toggled tools such as Draw
	ButtonText             color.RGBA
	ButtonBorder           color.RGBA

	// Status line
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Canvas
	CanvasBackdrop color.RGBA // shown where no photo is placed
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:                   "default",
		Background:             color.RGBA{220, 220, 220, 255},
		Foreground:             color.RGBA{0, 0, 0, 255},
		ToolbarBackground:      color.RGBA{220, 220, 220, 255},
		ButtonBackground:       color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover:  color.RGBA{180, 180, 180, 255},
		ButtonBackgroundActive: color.RGBA{150, 190, 150, 255},
		ButtonText:             color.RGBA{0, 0, 0, 255},
		ButtonBorder:           color.RGBA{0, 0, 0, 255},
		StatusBackground:       color.RGBA{200, 200, 200, 255},
		StatusText:             color.RGBA{0, 0, 0, 255},
		CanvasBackdrop:         color.RGBA{255, 255, 255, 255},
	}
}

// Dark returns the dark theme.
func Dark() *Theme {
	return &Theme{
		Name:                   "dark",
		Background:             color.RGBA{30, 30, 30, 255},
		Foreground:             color.RGBA{230, 230, 230, 255},
		ToolbarBackground:      color.RGBA{45, 45, 45, 255},
		ButtonBackground:       color.RGBA{60, 60, 60, 255},
		ButtonBackgroundHover:  color.RGBA{80, 80, 80, 255},
		ButtonBackgroundActive: color.RGBA{40, 100, 60, 255},
		ButtonText:             color.RGBA{230, 230, 230, 255},
		ButtonBorder:           color.RGBA{110, 110, 110, 255},
		StatusBackground:       color.RGBA{45, 45, 45, 255},
		StatusText:             color.RGBA{200, 200, 200, 255},
		CanvasBackdrop:         color.RGBA{64, 64, 64, 255},
	}
}

var builtins = map[string]func() *Theme{
	"default": Default,
	"light":   Default,
	"dark":    Dark,
}

// Builtin returns a copy of the named built-in theme.
func Builtin(name string) (*Theme, bool) {
	f, ok := builtins[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return f(), true
}

// BuiltinNames lists the built-in theme names.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
