package scene

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"

	"github.com/example/photomark/internal/shape"
)

const snapshotVersion = 1

type document struct {
	Version    int            `json:"version"`
	Objects    []*shape.Shape `json:"objects"`
	Background *backgroundDoc `json:"background,omitempty"`
}

type backgroundDoc struct {
	Src    string  `json:"src"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// Snapshot serializes the shapes and background. Equal scenes produce
// equal strings.
func (c *Canvas) Snapshot() string {
	doc := document{Version: snapshotVersion, Objects: c.shapes}
	if doc.Objects == nil {
		doc.Objects = []*shape.Shape{}
	}
	if bg := c.background; bg != nil {
		doc.Background = &backgroundDoc{
			Src:    bg.encoded,
			ScaleX: bg.ScaleX,
			ScaleY: bg.ScaleY,
			Left:   bg.Left,
			Top:    bg.Top,
		}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		log.Printf("scene: snapshot: %v", err)
		return ""
	}
	return string(b)
}

// LoadSnapshot replaces the scene with one produced by Snapshot and calls
// done once it is in place. On error the scene is unchanged and done is
// not called.
func (c *Canvas) LoadSnapshot(data string, done func()) error {
	var doc document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if doc.Version != snapshotVersion {
		return fmt.Errorf("snapshot version %d not supported", doc.Version)
	}
	bg, err := c.loadBackground(doc.Background)
	if err != nil {
		return err
	}
	c.shapes = doc.Objects
	c.background = bg
	c.drag = nil
	if done != nil {
		done()
	}
	return nil
}

func (c *Canvas) loadBackground(d *backgroundDoc) (*Background, error) {
	if d == nil {
		return nil, nil
	}
	bg := &Background{ScaleX: d.ScaleX, ScaleY: d.ScaleY, Left: d.Left, Top: d.Top, encoded: d.Src}
	if cur := c.background; cur != nil && cur.encoded == d.Src {
		bg.Image, bg.buf = cur.Image, cur.buf
		return bg, nil
	}
	raw, err := base64.StdEncoding.DecodeString(d.Src)
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode background: %w", err)
	}
	bg.Image = toRGBA(img)
	return bg, nil
}
