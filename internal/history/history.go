// Package history keeps a linear list of whole-scene snapshots with an
// undo/redo cursor.
package history

import "fmt"

// Surface is the part of the canvas the manager drives.
type Surface interface {
	// Snapshot serializes the full scene.
	Snapshot() string
	// LoadSnapshot replaces the scene with a previous snapshot and calls done
	// once the scene has been applied.
	LoadSnapshot(data string, done func()) error
	// Render redraws the surface.
	Render()
}

// Manager records snapshots of a Surface. The zero value is not usable; use New.
type Manager struct {
	surface Surface
	states  []string
	index   int
	limit   int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLimit caps the number of retained entries. Zero keeps everything.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.limit = n
		}
	}
}

// New creates an empty history over s.
func New(s Surface, opts ...Option) *Manager {
	m := &Manager{surface: s, index: -1}
	for _, o := range opts {
		o(m)
	}
	return m
}

// SaveState records the current scene. Nothing is recorded when the scene
// cannot be serialized or matches the entry under the cursor. Entries after
// the cursor are dropped.
func (m *Manager) SaveState() bool {
	snap := m.surface.Snapshot()
	if snap == "" {
		return false
	}
	if m.index >= 0 && m.states[m.index] == snap {
		return false
	}
	m.states = append(m.states[:m.index+1], snap)
	m.index++
	if m.limit > 0 && len(m.states) > m.limit {
		drop := len(m.states) - m.limit
		m.states = append(m.states[:0], m.states[drop:]...)
		m.index -= drop
	}
	return true
}

// Undo steps the cursor back and restores that scene.
func (m *Manager) Undo() bool {
	if m.index <= 0 {
		return false
	}
	m.index--
	m.restore()
	return true
}

// Redo steps the cursor forward and restores that scene.
func (m *Manager) Redo() bool {
	if m.index >= len(m.states)-1 {
		return false
	}
	m.index++
	m.restore()
	return true
}

func (m *Manager) restore() {
	err := m.surface.LoadSnapshot(m.states[m.index], m.surface.Render)
	if err != nil {
		panic(fmt.Sprintf("history: entry %d does not load: %v", m.index, err))
	}
}

// Reset forgets every entry.
func (m *Manager) Reset() {
	m.states = nil
	m.index = -1
}

// Len returns the number of entries.
func (m *Manager) Len() int {
	return len(m.states)
}

// Index returns the cursor position, -1 when empty.
func (m *Manager) Index() int {
	return m.index
}

// CanUndo reports whether Undo would move the cursor.
func (m *Manager) CanUndo() bool {
	return m.index > 0
}

// CanRedo reports whether Redo would move the cursor.
func (m *Manager) CanRedo() bool {
	return m.index < len(m.states)-1
}
