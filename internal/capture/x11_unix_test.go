//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image/color"
	"testing"

	"github.com/jezek/xgb/xproto"
)

func TestXImageToRGBA(t *testing.T) {
	formats := []xproto.Format{{Depth: 24, BitsPerPixel: 32}}
	// Two BGRX pixels per row, two rows.
	reply := &xproto.GetImageReply{
		Depth: 24,
		Data: []byte{
			0, 0, 255, 0, 0, 255, 0, 0,
			255, 0, 0, 0, 10, 20, 30, 0,
		},
	}
	img, err := xImageToRGBA(formats, reply, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255},
		{0, 0, 255, 255}, {30, 20, 10, 255},
	}
	for i, c := range want {
		if got := img.RGBAAt(i%2, i/2); got != c {
			t.Errorf("pixel %d = %v, want %v", i, got, c)
		}
	}
}

func TestXImageToRGBARejects(t *testing.T) {
	formats := []xproto.Format{{Depth: 16, BitsPerPixel: 16}}
	reply := &xproto.GetImageReply{Depth: 16, Data: make([]byte, 8)}
	if _, err := xImageToRGBA(formats, reply, 2, 2); err == nil {
		t.Error("expected unsupported depth error")
	}
	if _, err := xImageToRGBA(formats, nil, 2, 2); err == nil {
		t.Error("expected error for nil reply")
	}
	if _, err := xImageToRGBA(formats, reply, 0, 2); err == nil {
		t.Error("expected error for empty geometry")
	}
}
