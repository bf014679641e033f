// Package notify raises desktop notifications after captures, exports and
// clipboard copies.
package notify

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/photomark/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture fires when a photo has been placed on the canvas.
	EventCapture Event = "capture"
	// EventExport fires when an export file has been written.
	EventExport Event = "export"
	// EventCopy fires when an export has been copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification text.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "photomark",
		Templates: map[Event]string{
			EventCapture: "Loaded %s",
			EventExport:  "Exported %s",
			EventCopy:    "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies environment overrides to the defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PHOTOMARK_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range map[string]Event{
		"PHOTOMARK_NOTIFY_CAPTURE_TEXT": EventCapture,
		"PHOTOMARK_NOTIFY_EXPORT_TEXT":  EventExport,
		"PHOTOMARK_NOTIFY_COPY_TEXT":    EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

var send = platform.Notify

// Notifier sends OS-level notifications for the enabled events. A nil
// Notifier is valid and silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Enabled reports whether event will notify.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.enabled[event]
}

// Capture announces a placed photo with a thumbnail when img is non-nil.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.Enabled(EventCapture) {
		return
	}
	opts := platform.Options{}
	if img != nil {
		path, cleanup, err := createPreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, detail, opts)
}

// Export announces a written file.
func (n *Notifier) Export(path string) {
	if !n.Enabled(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if strings.HasSuffix(abs, ".png") || strings.HasSuffix(abs, ".jpg") {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.Enabled(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := template
	if strings.Contains(template, "%s") {
		body = fmt.Sprintf(template, strings.TrimSpace(detail))
	}
	if err := send(n.prefs.Title, strings.TrimSpace(body), opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "photomark-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
