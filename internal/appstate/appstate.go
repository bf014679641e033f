// Package appstate runs the annotation window.
package appstate

import (
	"image"
	"io"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/photomark/internal/annotate"
	"github.com/example/photomark/internal/capture"
	"github.com/example/photomark/internal/export"
	"github.com/example/photomark/internal/notify"
	"github.com/example/photomark/internal/theme"
)

const messageDuration = 3 * time.Second

// AppState owns the window and the editor it drives. Everything except
// Open and OpenImage runs on the event loop.
type AppState struct {
	editor   *annotate.Editor
	theme    *theme.Theme
	notifier *notify.Notifier
	outDir   string
	format   export.Format
	title    string

	width, height int
	buttons       []image.Rectangle
	hover         int
	pressed       bool

	message      string
	messageUntil time.Time
	now          func() time.Time

	mu      sync.Mutex
	send    func(any)
	pending []captureEvent

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option {
	return func(a *AppState) {
		if t != nil {
			a.theme = t
		}
	}
}

// WithNotifier sets the notifier used for capture, export and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithOutputDir sets the directory exports are written to.
func WithOutputDir(dir string) Option { return func(a *AppState) { a.outDir = dir } }

// WithFormat sets the image format written by Ctrl+S.
func WithFormat(f export.Format) Option { return func(a *AppState) { a.format = f } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState around editor.
func New(editor *annotate.Editor, opts ...Option) *AppState {
	a := &AppState{
		editor: editor,
		theme:  theme.Default(),
		outDir: ".",
		format: export.PNG,
		title:  "photomark",
		hover:  -1,
		now:    time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	a.buttons = layoutButtons()
	return a
}

// Editor returns the editor driven by the window.
func (a *AppState) Editor() *annotate.Editor { return a.editor }

// captureEvent carries a decoded image back onto the event loop.
type captureEvent struct {
	result capture.Result
	detail string
}

// Open decodes r in the background. The image is placed once the decode
// result reaches the event loop; when several are in flight the last to
// finish wins.
func (a *AppState) Open(r io.Reader, detail string) {
	ch := capture.DecodeAsync(r)
	go func() {
		a.deliver(captureEvent{result: <-ch, detail: detail})
	}()
}

// OpenImage queues an already decoded image for placement.
func (a *AppState) OpenImage(img *image.RGBA, detail string) {
	a.deliver(captureEvent{result: capture.Result{Image: img}, detail: detail})
}

func (a *AppState) deliver(ev captureEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.send == nil {
		a.pending = append(a.pending, ev)
		return
	}
	a.send(ev)
}

func (a *AppState) setSender(fn func(any)) {
	a.mu.Lock()
	a.send = fn
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()
	for _, ev := range pending {
		fn(ev)
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run opens the window and blocks until it closes.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main runs the event loop on s.
func (a *AppState) Main(s screen.Screen) {
	vw, vh := a.editor.Canvas().Size()
	a.width = max(vw, toolbarWidth())
	a.height = vh + toolbarHeight + statusHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: a.width, Height: a.height, Title: a.title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	a.setSender(w.Send)
	defer a.setSender(nil)

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case captureEvent:
			a.handleCapture(e)
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			a.width = e.WidthPx
			a.height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			a.paint(s, w)
		case mouse.Event:
			repaint, quit := a.handleMouse(e)
			if quit {
				return
			}
			if repaint {
				w.Send(paint.Event{})
			}
		case key.Event:
			repaint, quit := a.handleKey(e)
			if quit {
				return
			}
			if repaint {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (a *AppState) handleCapture(ev captureEvent) {
	if ev.result.Err != nil {
		log.Printf("open %s: %v", ev.detail, ev.result.Err)
		a.say("open failed: " + ev.result.Err.Error())
		return
	}
	if !a.editor.PlaceImage(ev.result.Image) {
		a.say("image too large to place")
		return
	}
	a.notifier.Capture(ev.detail, ev.result.Image)
	a.say("opened " + ev.detail)
}

func (a *AppState) say(msg string) {
	a.message = msg
	a.messageUntil = a.now().Add(messageDuration)
}

func (a *AppState) currentMessage() string {
	if a.message == "" || a.now().After(a.messageUntil) {
		return ""
	}
	return a.message
}
