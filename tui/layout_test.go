package tui

import (
	"testing"

	"go-pianoroll/document"
	pr "go-pianoroll/pianoroll"
	"go-pianoroll/ustx"
)

func newTestViewModel(t *testing.T) *pr.NotesViewModel {
	t.Helper()
	project := ustx.NewDemoProject()
	return pr.NewNotesViewModel(document.NewManager(project), project.Parts[0])
}

func TestCanvasAt(t *testing.T) {
	l := newLayout(newTestViewModel(t))
	tests := []struct {
		name   string
		x, y   int
		canvas pr.Canvas
		p      pr.Point
		ok     bool
	}{
		{"header", 5, 0, 0, pr.Point{}, false},
		{"keyboard", 1, 3, pr.CanvasKeyboard, pr.Point{X: 1, Y: 2}, true},
		{"notes origin", 4, 1, pr.CanvasNotes, pr.Point{}, true},
		{"notes", 10, 13, pr.CanvasNotes, pr.Point{X: 6, Y: 12}, true},
		{"phonemes", 6, 26, pr.CanvasPhonemes, pr.Point{X: 2, Y: 1}, true},
		{"expressions", 7, 28, pr.CanvasExpressions, pr.Point{X: 3, Y: 1}, true},
		{"panel", 70, 5, 0, pr.Point{}, false},
		{"footer", 6, 31, 0, pr.Point{}, false},
		{"left of phonemes", 1, 26, 0, pr.Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas, p, ok := l.canvasAt(tt.x, tt.y)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (canvas != tt.canvas || p != tt.p) {
				t.Errorf("canvasAt = %s %v, want %s %v", canvas, p, tt.canvas, tt.p)
			}
		})
	}
}

func TestPointInIsUnclamped(t *testing.T) {
	l := newLayout(newTestViewModel(t))
	if p := l.pointIn(pr.CanvasNotes, 2, 0); p != (pr.Point{X: -2, Y: -1}) {
		t.Errorf("pointIn = %v", p)
	}
	if p := l.pointIn(pr.CanvasExpressions, 10, 40); p != (pr.Point{X: 6, Y: 13}) {
		t.Errorf("pointIn = %v", p)
	}
}

func TestFitView(t *testing.T) {
	vm := newTestViewModel(t)
	fitView(vm, 120, 40)
	if vm.ViewWidth != 87 || vm.ViewHeight != 31 {
		t.Errorf("view = %dx%d, want 87x31", vm.ViewWidth, vm.ViewHeight)
	}
	fitView(vm, 10, 5)
	if vm.ViewWidth != minGridCols || vm.ViewHeight != minGridRows {
		t.Errorf("small view = %dx%d", vm.ViewWidth, vm.ViewHeight)
	}
	if l := newLayout(vm); l.panelLeft() != keyboardWidth+minGridCols+1 {
		t.Errorf("panelLeft = %d", l.panelLeft())
	}
}
