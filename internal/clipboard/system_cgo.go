//go:build cgo || windows

package clipboard

import (
	"os"
	"runtime"
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

type system struct{}

func (system) init() error {
	initOnce.Do(func() {
		if needsDisplay() && !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = clipboard.Init()
	})
	return initErr
}

func (system) read(f format) []byte {
	return clipboard.Read(nativeFormat(f))
}

func (system) write(f format, data []byte) {
	clipboard.Write(nativeFormat(f), data)
}

func nativeFormat(f format) clipboard.Format {
	if f == formatImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}

func needsDisplay() bool {
	switch runtime.GOOS {
	case "windows", "darwin":
		return false
	}
	return true
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}
