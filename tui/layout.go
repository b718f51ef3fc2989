package tui

import (
	pr "go-pianoroll/pianoroll"
)

const (
	keyboardWidth = 4
	panelWidth    = 28
	headerRows    = 1
	footerRows    = 2
	minGridRows   = 6
	minGridCols   = 16
)

// layout places the canvases on screen. The notes grid sits right of the
// keyboard column; the phoneme and expression strips run beneath it.
type layout struct {
	gridTop    int
	gridLeft   int
	gridW      int
	gridH      int
	phonemeTop int
	expTop     int
	footerTop  int
}

func newLayout(vm *pr.NotesViewModel) layout {
	l := layout{
		gridTop:  headerRows,
		gridLeft: keyboardWidth,
		gridW:    vm.ViewWidth,
		gridH:    vm.ViewHeight,
	}
	l.phonemeTop = l.gridTop + l.gridH
	l.expTop = l.phonemeTop + vm.PhonemeHeight
	l.footerTop = l.expTop + vm.ExpHeight
	return l
}

// fitView sizes the view model's canvases to a terminal of w x h cells
func fitView(vm *pr.NotesViewModel, w, h int) {
	vm.ViewWidth = max(minGridCols, w-keyboardWidth-panelWidth-1)
	vm.ViewHeight = max(minGridRows, h-headerRows-vm.PhonemeHeight-vm.ExpHeight-footerRows)
	vm.ScrollBy(0, 0)
}

// origin is the screen cell of a canvas's (0,0)
func (l layout) origin(c pr.Canvas) (x, y int) {
	switch c {
	case pr.CanvasKeyboard:
		return 0, l.gridTop
	case pr.CanvasPhonemes:
		return l.gridLeft, l.phonemeTop
	case pr.CanvasExpressions:
		return l.gridLeft, l.expTop
	}
	return l.gridLeft, l.gridTop
}

// pointIn converts a screen cell to canvas coordinates, unclamped, for
// drags that leave the canvas they started on
func (l layout) pointIn(c pr.Canvas, x, y int) pr.Point {
	ox, oy := l.origin(c)
	return pr.Point{X: float64(x - ox), Y: float64(y - oy)}
}

// canvasAt finds the canvas under a screen cell
func (l layout) canvasAt(x, y int) (pr.Canvas, pr.Point, bool) {
	inGrid := x >= l.gridLeft && x < l.gridLeft+l.gridW
	switch {
	case y >= l.gridTop && y < l.phonemeTop:
		if x >= 0 && x < l.gridLeft {
			return pr.CanvasKeyboard, l.pointIn(pr.CanvasKeyboard, x, y), true
		}
		if inGrid {
			return pr.CanvasNotes, l.pointIn(pr.CanvasNotes, x, y), true
		}
	case y >= l.phonemeTop && y < l.expTop && inGrid:
		return pr.CanvasPhonemes, l.pointIn(pr.CanvasPhonemes, x, y), true
	case y >= l.expTop && y < l.footerTop && inGrid:
		return pr.CanvasExpressions, l.pointIn(pr.CanvasExpressions, x, y), true
	}
	return 0, pr.Point{}, false
}

// panelLeft is the first column of the side panel
func (l layout) panelLeft() int {
	return l.gridLeft + l.gridW + 1
}
