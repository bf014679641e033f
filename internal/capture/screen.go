package capture

import (
	"fmt"
	"image"
)

// Options controls a screen capture.
type Options struct {
	// Interactive lets the desktop portal ask the user what to capture.
	Interactive bool
	// IncludeCursor embeds the pointer in the capture.
	IncludeCursor bool
	// Region crops the result when non-empty.
	Region image.Rectangle
}

var (
	portalProvider = portalScreenshot
	x11Provider    = rootScreenshot
)

// Screen captures the desktop through the screenshot portal, falling back
// to reading the X11 root window.
func Screen(opts Options) (*image.RGBA, error) {
	img, err := portalProvider(opts)
	if err != nil {
		var xerr error
		img, xerr = x11Provider()
		if xerr != nil {
			return nil, fmt.Errorf("screenshot: portal: %v; x11: %w", err, xerr)
		}
	}
	if img == nil || img.Bounds().Empty() {
		return nil, ErrNoImage
	}
	if opts.Region.Empty() {
		return img, nil
	}
	return cropToRect(img, opts.Region)
}
