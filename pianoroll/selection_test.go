package pianoroll

import (
	"testing"

	"go-pianoroll/ustx"
)

func TestSelectionHead(t *testing.T) {
	a := ustx.NewNote(0, 480, 60, "a")
	b := ustx.NewNote(480, 480, 62, "b")
	c := ustx.NewNote(960, 480, 64, "c")

	s := NewSelection()
	s.Add(b)
	s.Add(a)
	s.Add(c)
	if s.Head != b {
		t.Errorf("head is not the first note added")
	}
	if l := s.List(); l[0] != a || l[1] != b || l[2] != c {
		t.Errorf("list not ordered by position")
	}
	if s.First() != a || s.Last() != c {
		t.Errorf("first/last wrong")
	}
	s.Remove(b)
	if s.Head != a {
		t.Errorf("head after remove = %v, want earliest note", s.Head)
	}
	s.Add(b)
	s.Remove(a)
	if s.Head != b {
		t.Errorf("head after second remove = %v, want b", s.Head)
	}
	s.Clear()
	if !s.IsEmpty() || s.Head != nil || s.First() != nil {
		t.Errorf("clear left state behind")
	}
}

func TestSelectionRetain(t *testing.T) {
	part := &ustx.VoicePart{Duration: 1920}
	a := ustx.NewNote(0, 480, 60, "a")
	b := ustx.NewNote(480, 480, 62, "b")
	part.Notes = []*ustx.Note{a}

	s := NewSelection()
	s.Set(a, b)
	s.Retain(part)
	if s.Count() != 1 || !s.Contains(a) {
		t.Errorf("retain kept %d notes", s.Count())
	}
	s.Retain(nil)
	if !s.IsEmpty() {
		t.Errorf("retain(nil) kept notes")
	}
}

func TestRubberBandSelection(t *testing.T) {
	f := newRouterFixture(t)
	f.vm.HitTest = NewHitTest(f.vm)
	f.r.Hit = f.vm.HitTest
	notes := f.vm.Part.Notes

	// from above note 1 down past note 0, across columns 0..9
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, Point{X: 0.5, Y: 9.5})
	f.r.PointerMoved(CanvasNotes, Point{X: 9.5, Y: 12.5})
	if f.vm.SelectionBox == nil {
		t.Fatal("no selection box while dragging")
	}
	got := f.vm.Selection.List()
	if len(got) != 2 || got[0] != notes[0] || got[1] != notes[1] {
		t.Errorf("selected %d notes", len(got))
	}
	f.r.PointerReleased(CanvasNotes, ButtonLeft, Point{X: 9.5, Y: 12.5})
	if f.vm.SelectionBox != nil {
		t.Errorf("selection box left after release")
	}
	if f.vm.Selection.Count() != 2 {
		t.Errorf("selection lost on release")
	}
}
