package tui

import (
	"math"
	"time"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	pr "go-pianoroll/pianoroll"
)

type namedKey struct {
	name string
	mods pr.Modifiers
}

// specialKeys names the non-rune keys the key table uses. Terminals fold
// ctrl+letter into control codes, handled separately in translateKey.
var specialKeys = map[tea.KeyType]namedKey{
	tea.KeyEnter:          {"enter", pr.ModNone},
	tea.KeyEsc:            {"esc", pr.ModNone},
	tea.KeySpace:          {"space", pr.ModNone},
	tea.KeyTab:            {"tab", pr.ModNone},
	tea.KeyShiftTab:       {"tab", pr.ModShift},
	tea.KeyBackspace:      {"backspace", pr.ModNone},
	tea.KeyDelete:         {"delete", pr.ModNone},
	tea.KeyInsert:         {"insert", pr.ModNone},
	tea.KeyHome:           {"home", pr.ModNone},
	tea.KeyEnd:            {"end", pr.ModNone},
	tea.KeyPgUp:           {"pgup", pr.ModNone},
	tea.KeyPgDown:         {"pgdown", pr.ModNone},
	tea.KeyUp:             {"up", pr.ModNone},
	tea.KeyDown:           {"down", pr.ModNone},
	tea.KeyLeft:           {"left", pr.ModNone},
	tea.KeyRight:          {"right", pr.ModNone},
	tea.KeyShiftUp:        {"up", pr.ModShift},
	tea.KeyShiftDown:      {"down", pr.ModShift},
	tea.KeyShiftLeft:      {"left", pr.ModShift},
	tea.KeyShiftRight:     {"right", pr.ModShift},
	tea.KeyCtrlUp:         {"up", pr.ModCtrl},
	tea.KeyCtrlDown:       {"down", pr.ModCtrl},
	tea.KeyCtrlLeft:       {"left", pr.ModCtrl},
	tea.KeyCtrlRight:      {"right", pr.ModCtrl},
	tea.KeyCtrlShiftUp:    {"up", pr.ModCtrl | pr.ModShift},
	tea.KeyCtrlShiftDown:  {"down", pr.ModCtrl | pr.ModShift},
	tea.KeyCtrlShiftLeft:  {"left", pr.ModCtrl | pr.ModShift},
	tea.KeyCtrlShiftRight: {"right", pr.ModCtrl | pr.ModShift},
	tea.KeyShiftHome:      {"home", pr.ModShift},
	tea.KeyShiftEnd:       {"end", pr.ModShift},
	tea.KeyCtrlHome:       {"home", pr.ModCtrl},
	tea.KeyCtrlEnd:        {"end", pr.ModCtrl},
	tea.KeyCtrlShiftHome:  {"home", pr.ModCtrl | pr.ModShift},
	tea.KeyCtrlShiftEnd:   {"end", pr.ModCtrl | pr.ModShift},
	tea.KeyF1:             {"f1", pr.ModNone},
	tea.KeyF2:             {"f2", pr.ModNone},
	tea.KeyF3:             {"f3", pr.ModNone},
	tea.KeyF4:             {"f4", pr.ModNone},
	tea.KeyF5:             {"f5", pr.ModNone},
	tea.KeyF6:             {"f6", pr.ModNone},
	tea.KeyF7:             {"f7", pr.ModNone},
	tea.KeyF8:             {"f8", pr.ModNone},
	tea.KeyF9:             {"f9", pr.ModNone},
	tea.KeyF10:            {"f10", pr.ModNone},
	tea.KeyF11:            {"f11", pr.ModNone},
	tea.KeyF12:            {"f12", pr.ModNone},
}

// shiftedBrackets are the braces terminals send for shift+[ and shift+]
var shiftedBrackets = map[rune]rune{'{': '[', '}': ']'}

// translateKey turns a terminal key into a key-table name and modifiers.
// Terminals deliver the command key as ctrl; with a meta platform command
// it is reported as ModMeta.
func translateKey(msg tea.KeyMsg, command pr.Modifiers) (string, pr.Modifiers) {
	name, mods := baseKey(msg)
	if msg.Alt {
		mods |= pr.ModAlt
	}
	return name, platformMods(mods, command)
}

// platformMods reports ctrl as meta when meta is the platform command
func platformMods(mods, command pr.Modifiers) pr.Modifiers {
	if command == pr.ModMeta && mods.Has(pr.ModCtrl) {
		mods = mods&^pr.ModCtrl | pr.ModMeta
	}
	return mods
}

func baseKey(msg tea.KeyMsg) (string, pr.Modifiers) {
	if k, ok := specialKeys[msg.Type]; ok {
		return k.name, k.mods
	}
	if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
		return string(rune('a' + int(msg.Type-tea.KeyCtrlA))), pr.ModCtrl
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return msg.String(), pr.ModNone
	}
	r := msg.Runes[0]
	switch {
	case r == ' ':
		return "space", pr.ModNone
	case unicode.IsUpper(r):
		return string(unicode.ToLower(r)), pr.ModShift
	}
	if base, ok := shiftedBrackets[r]; ok {
		return string(base), pr.ModShift
	}
	return string(r), pr.ModNone
}

func mouseModifiers(msg tea.MouseMsg) pr.Modifiers {
	mods := pr.ModNone
	if msg.Shift {
		mods |= pr.ModShift
	}
	if msg.Ctrl {
		mods |= pr.ModCtrl
	}
	if msg.Alt {
		mods |= pr.ModAlt
	}
	return mods
}

func mouseButton(b tea.MouseButton) pr.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return pr.ButtonLeft
	case tea.MouseButtonMiddle:
		return pr.ButtonMiddle
	case tea.MouseButtonRight:
		return pr.ButtonRight
	}
	return pr.ButtonNone
}

// wheelDelta returns the scroll step of a wheel button, in notches
func wheelDelta(b tea.MouseButton) (dx, dy float64, ok bool) {
	switch b {
	case tea.MouseButtonWheelUp:
		return 0, 1, true
	case tea.MouseButtonWheelDown:
		return 0, -1, true
	case tea.MouseButtonWheelLeft:
		return 1, 0, true
	case tea.MouseButtonWheelRight:
		return -1, 0, true
	}
	return 0, 0, false
}

// clickTracker detects double clicks: two left presses within the interval
// and one cell of each other
type clickTracker struct {
	interval time.Duration
	last     time.Time
	x, y     int
	armed    bool
}

func newClickTracker(ms int) clickTracker {
	if ms <= 0 {
		ms = 350
	}
	return clickTracker{interval: time.Duration(ms) * time.Millisecond}
}

// press records a left press and reports whether it completes a double click
func (c *clickTracker) press(x, y int, now time.Time) bool {
	double := c.armed &&
		now.Sub(c.last) <= c.interval &&
		math.Abs(float64(x-c.x)) <= 1 && math.Abs(float64(y-c.y)) <= 1
	if double {
		c.armed = false
		return true
	}
	c.armed = true
	c.last, c.x, c.y = now, x, y
	return false
}

func (c *clickTracker) reset() {
	c.armed = false
}
