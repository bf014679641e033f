package history

import (
	"errors"
	"strconv"
	"testing"
)

// fakeSurface treats its state as an opaque counter and records every load.
type fakeSurface struct {
	state    string
	loads    []string
	renders  int
	deferred []func()
	fail     bool
}

func (f *fakeSurface) Snapshot() string { return f.state }

func (f *fakeSurface) LoadSnapshot(data string, done func()) error {
	if f.fail {
		return errors.New("corrupt")
	}
	f.state = data
	f.loads = append(f.loads, data)
	f.deferred = append(f.deferred, done)
	return nil
}

func (f *fakeSurface) Render() { f.renders++ }

func (f *fakeSurface) complete() {
	for _, d := range f.deferred {
		d()
	}
	f.deferred = nil
}

func seeded(n int) (*fakeSurface, *Manager) {
	s := &fakeSurface{}
	m := New(s)
	for i := 0; i < n; i++ {
		s.state = "s" + strconv.Itoa(i)
		m.SaveState()
	}
	return s, m
}

func TestEmpty(t *testing.T) {
	_, m := seeded(0)
	if m.Len() != 0 || m.Index() != -1 {
		t.Fatalf("empty history len=%d index=%d", m.Len(), m.Index())
	}
	if m.Undo() || m.Redo() {
		t.Error("undo/redo on empty history should be no-ops")
	}
	if m.CanUndo() || m.CanRedo() {
		t.Error("empty history reports undo/redo available")
	}
}

func TestSaveStateIdempotent(t *testing.T) {
	s, m := seeded(1)
	if m.SaveState() {
		t.Error("second save of unchanged scene recorded an entry")
	}
	if m.Len() != 1 || m.Index() != 0 {
		t.Fatalf("len=%d index=%d", m.Len(), m.Index())
	}
	s.state = "other"
	if !m.SaveState() || m.Len() != 2 || m.Index() != 1 {
		t.Fatalf("changed scene not recorded: len=%d index=%d", m.Len(), m.Index())
	}
}

func TestUndoRedoInverse(t *testing.T) {
	s, m := seeded(3)
	if !m.Undo() {
		t.Fatal("undo failed")
	}
	if s.state != "s1" || m.Index() != 1 {
		t.Fatalf("after undo state=%q index=%d", s.state, m.Index())
	}
	if !m.Redo() {
		t.Fatal("redo failed")
	}
	if s.state != "s2" || m.Index() != 2 {
		t.Fatalf("after redo state=%q index=%d", s.state, m.Index())
	}
	if m.Len() != 3 {
		t.Errorf("undo/redo changed length to %d", m.Len())
	}
}

func TestRenderWaitsForLoad(t *testing.T) {
	s, m := seeded(2)
	m.Undo()
	if s.renders != 0 {
		t.Fatalf("rendered before the load completed")
	}
	s.complete()
	if s.renders != 1 {
		t.Errorf("renders = %d, want 1", s.renders)
	}
}

func TestBoundaries(t *testing.T) {
	s, m := seeded(2)
	if m.Redo() {
		t.Error("redo at the newest entry moved")
	}
	m.Undo()
	if m.Undo() {
		t.Error("undo at index 0 moved")
	}
	if m.Index() != 0 || len(s.loads) != 1 {
		t.Errorf("index=%d loads=%d", m.Index(), len(s.loads))
	}
}

func TestSaveAfterUndoTruncates(t *testing.T) {
	s, m := seeded(3)
	m.Undo()
	m.Undo()
	s.state = "branch"
	if !m.SaveState() {
		t.Fatal("save after undo not recorded")
	}
	if m.Len() != 2 || m.Index() != 1 {
		t.Fatalf("len=%d index=%d, want 2 and 1", m.Len(), m.Index())
	}
	if m.states[0] != "s0" || m.states[1] != "branch" {
		t.Errorf("entries = %q %q", m.states[0], m.states[1])
	}
	if m.Redo() {
		t.Error("redo after branching should be unavailable")
	}
}

func TestSaveAfterUndoMatchingCursor(t *testing.T) {
	_, m := seeded(3)
	m.Undo()
	if m.SaveState() {
		t.Error("saving the restored scene should not record")
	}
	if m.Len() != 3 || !m.CanRedo() {
		t.Errorf("forward entries lost: len=%d", m.Len())
	}
}

func TestReset(t *testing.T) {
	_, m := seeded(4)
	m.Reset()
	if m.Len() != 0 || m.Index() != -1 || m.CanUndo() || m.CanRedo() {
		t.Errorf("reset left len=%d index=%d", m.Len(), m.Index())
	}
}

func TestWithLimit(t *testing.T) {
	s := &fakeSurface{}
	m := New(s, WithLimit(3))
	for i := 0; i < 5; i++ {
		s.state = "s" + strconv.Itoa(i)
		m.SaveState()
	}
	if m.Len() != 3 || m.Index() != 2 {
		t.Fatalf("len=%d index=%d", m.Len(), m.Index())
	}
	if m.states[0] != "s2" {
		t.Errorf("oldest retained = %q, want s2", m.states[0])
	}
}

func TestCorruptEntryPanics(t *testing.T) {
	s, m := seeded(2)
	s.fail = true
	defer func() {
		if recover() == nil {
			t.Error("expected panic on unloadable entry")
		}
	}()
	m.Undo()
}

func TestSaveStateSkipsUnserializableScene(t *testing.T) {
	s, m := seeded(1)
	s.state = ""
	if m.SaveState() {
		t.Fatal("empty snapshot recorded")
	}
	if m.Len() != 1 || m.Index() != 0 {
		t.Fatalf("len=%d index=%d", m.Len(), m.Index())
	}
	s.state = "s1"
	m.SaveState()
	if !m.Undo() || !m.Redo() {
		t.Fatal("undo/redo failed")
	}
	if cur := m.states[m.Index()]; cur != "s1" {
		t.Errorf("current = %q", cur)
	}
}
