package shape

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor resolves an SVG colour name, "transparent", or a #RRGGBB or
// #RRGGBBAA hex string. Hex alpha is premultiplied into the channels.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if name == Transparent {
		return color.RGBA{}, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if !strings.HasPrefix(name, "#") || (len(name) != 7 && len(name) != 9) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(name[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(name) == 7 {
		val = val<<8 | 0xFF
	}
	a := uint32(val & 0xFF)
	pre := func(v uint64) uint8 { return uint8((uint32(v&0xFF)*a + 127) / 255) }
	return color.RGBA{R: pre(val >> 24), G: pre(val >> 16), B: pre(val >> 8), A: uint8(a)}, nil
}
