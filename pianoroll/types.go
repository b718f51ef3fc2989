// Package pianoroll routes pointer and keyboard input on the piano-roll
// canvases to modal edit states and document commands.
package pianoroll

import "fmt"

// Point is a canvas position in cell units (fractions allowed)
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", p.X, p.Y)
}

// MouseButton identifies the button that started or ended a press
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

func (b MouseButton) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Modifiers is the set of held modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

const ModNone Modifiers = 0

// Has reports whether all of m2 are held
func (m Modifiers) Has(m2 Modifiers) bool {
	return m&m2 == m2
}

// Canvas identifies the input surface an event arrived on
type Canvas uint8

const (
	CanvasNotes Canvas = iota
	CanvasExpressions
	CanvasPhonemes
	CanvasKeyboard
)

func (c Canvas) String() string {
	switch c {
	case CanvasNotes:
		return "notes"
	case CanvasExpressions:
		return "expressions"
	case CanvasPhonemes:
		return "phonemes"
	case CanvasKeyboard:
		return "keyboard"
	default:
		return "unknown"
	}
}

// Cursor is the pointer glyph the view should show
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorHand
	CursorSizeWE
	CursorSizeNS
	CursorSizeAll
	CursorNo
	CursorCross
)

func (c Cursor) String() string {
	switch c {
	case CursorHand:
		return "hand"
	case CursorSizeWE:
		return "size-we"
	case CursorSizeNS:
		return "size-ns"
	case CursorSizeAll:
		return "size-all"
	case CursorNo:
		return "no"
	case CursorCross:
		return "cross"
	default:
		return "default"
	}
}

// Rect is an axis-aligned canvas rectangle
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints normalizes two corners into a Rect
func RectFromPoints(a, b Point) Rect {
	r := Rect{X: a.X, Y: a.Y, W: b.X - a.X, H: b.Y - a.Y}
	if r.W < 0 {
		r.X, r.W = b.X, -r.W
	}
	if r.H < 0 {
		r.Y, r.H = b.Y, -r.H
	}
	return r
}

// Contains reports whether p lies inside r (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}
