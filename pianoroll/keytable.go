package pianoroll

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// ModClass is the modifier combination a key binding is registered under.
// Anything outside the five named classes never matches a binding.
type ModClass uint8

const (
	ModClassNone ModClass = iota
	ModClassCommand
	ModClassShift
	ModClassAlt
	ModClassCommandShift
	ModClassOther
)

var modClassNames = map[ModClass]string{
	ModClassNone:         "none",
	ModClassCommand:      "cmd",
	ModClassShift:        "shift",
	ModClassAlt:          "alt",
	ModClassCommandShift: "cmd+shift",
	ModClassOther:        "other",
}

func (c ModClass) String() string { return modClassNames[c] }

// ParseModClass parses the names used in key override files
func ParseModClass(s string) (ModClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModClassNone, nil
	case "cmd", "ctrl", "command", "meta":
		return ModClassCommand, nil
	case "shift":
		return ModClassShift, nil
	case "alt":
		return ModClassAlt, nil
	case "cmd+shift", "ctrl+shift", "both":
		return ModClassCommandShift, nil
	}
	return ModClassOther, fault.New(fmt.Sprintf("unknown modifier %q", s),
		fmsg.WithDesc("parse modifier", fmt.Sprintf("Unknown modifier %q in key overrides", s)),
		ftag.With("config"))
}

// ClassifyModifiers maps held modifiers onto a class. command is the
// platform command modifier (ModCtrl, or ModMeta on macOS).
func ClassifyModifiers(mods, command Modifiers) ModClass {
	switch mods {
	case ModNone:
		return ModClassNone
	case command:
		return ModClassCommand
	case ModShift:
		return ModClassShift
	case ModAlt:
		return ModClassAlt
	case command | ModShift:
		return ModClassCommandShift
	}
	return ModClassOther
}

// KeyChord is a key name under a modifier class
type KeyChord struct {
	Key   string
	Class ModClass
}

func (c KeyChord) String() string {
	if c.Class == ModClassNone {
		return c.Key
	}
	return c.Class.String() + "+" + c.Key
}

// Action is a named piano-roll command
type Action string

const (
	ActionPlayPause        Action = "play-pause"
	ActionEscape           Action = "escape"
	ActionHideWindow       Action = "hide-window"
	ActionEditLyric        Action = "edit-lyric"
	ActionToolCursor       Action = "tool-cursor"
	ActionToolPen          Action = "tool-pen"
	ActionToolPenPlus      Action = "tool-pen-plus"
	ActionToolEraser       Action = "tool-eraser"
	ActionToolDrawPitch    Action = "tool-draw-pitch"
	ActionToolKnife        Action = "tool-knife"
	ActionExpression1      Action = "expression-1"
	ActionExpression2      Action = "expression-2"
	ActionExpression3      Action = "expression-3"
	ActionExpression4      Action = "expression-4"
	ActionExpression5      Action = "expression-5"
	ActionToggleFinalPitch Action = "toggle-final-pitch"
	ActionToggleTips       Action = "toggle-tips"
	ActionToggleVibrato    Action = "toggle-vibrato"
	ActionTogglePitch      Action = "toggle-pitch"
	ActionTogglePhoneme    Action = "toggle-phoneme"
	ActionToggleSnap       Action = "toggle-snap"
	ActionSnapDivMenu      Action = "snap-div-menu"
	ActionToggleNoteParams Action = "toggle-note-params"
	ActionToggleWaveform   Action = "toggle-waveform"
	ActionTogglePlayTone   Action = "toggle-play-tone"
	ActionTransposeUp      Action = "transpose-up"
	ActionTransposeDown    Action = "transpose-down"
	ActionOctaveUp         Action = "octave-up"
	ActionOctaveDown       Action = "octave-down"
	ActionCursorLeft       Action = "cursor-left"
	ActionCursorRight      Action = "cursor-right"
	ActionShorten          Action = "shorten"
	ActionLengthen         Action = "lengthen"
	ActionMoveLeft         Action = "move-left"
	ActionMoveRight        Action = "move-right"
	ActionExtendLeft       Action = "extend-left"
	ActionExtendRight      Action = "extend-right"
	ActionUndo             Action = "undo"
	ActionRedo             Action = "redo"
	ActionCopy             Action = "copy"
	ActionCut              Action = "cut"
	ActionPaste            Action = "paste"
	ActionInsertNote       Action = "insert-note"
	ActionDeleteNotes      Action = "delete-notes"
	ActionPlayPosPartStart Action = "play-pos-part-start"
	ActionPlayPosPartEnd   Action = "play-pos-part-end"
	ActionExtendToFirst    Action = "extend-to-first"
	ActionExtendToLast     Action = "extend-to-last"
	ActionPlayPosBack      Action = "play-pos-back"
	ActionPlayPosForward   Action = "play-pos-forward"
	ActionPlayPosSelStart  Action = "play-pos-selection-start"
	ActionPlayPosSelEnd    Action = "play-pos-selection-end"
	ActionPlayPosViewStart Action = "play-pos-view-start"
	ActionPlayPosViewEnd   Action = "play-pos-view-end"
	ActionScrollLeft       Action = "scroll-left"
	ActionScrollRight      Action = "scroll-right"
	ActionScrollUp         Action = "scroll-up"
	ActionScrollDown       Action = "scroll-down"
	ActionSelectAll        Action = "select-all"
	ActionSelectNone       Action = "select-none"
	ActionSave             Action = "save"
	ActionFocusNote        Action = "focus-note"
	ActionPlayPosToSel     Action = "play-pos-to-selection"
	ActionZoomIn           Action = "zoom-in"
	ActionZoomOut          Action = "zoom-out"
)

// Binding pairs a chord with its action and a short description for help
type Binding struct {
	Chord  KeyChord
	Action Action
	Help   string
}

func bind(key string, class ModClass, action Action, help string) Binding {
	return Binding{Chord: KeyChord{Key: key, Class: class}, Action: action, Help: help}
}

// defaultBindings is the piano-roll key table
var defaultBindings = []Binding{
	bind("space", ModClassNone, ActionPlayPause, "play/pause"),
	bind("esc", ModClassNone, ActionEscape, "collapse selection"),
	bind("f4", ModClassAlt, ActionHideWindow, "hide"),
	bind("enter", ModClassNone, ActionEditLyric, "edit lyric"),

	bind("1", ModClassNone, ActionToolCursor, "cursor tool"),
	bind("2", ModClassNone, ActionToolPen, "pen tool"),
	bind("2", ModClassCommand, ActionToolPenPlus, "pen+ tool"),
	bind("3", ModClassNone, ActionToolEraser, "eraser tool"),
	bind("4", ModClassNone, ActionToolDrawPitch, "draw pitch tool"),
	bind("5", ModClassNone, ActionToolKnife, "knife tool"),
	bind("1", ModClassAlt, ActionExpression1, "expression 1"),
	bind("2", ModClassAlt, ActionExpression2, "expression 2"),
	bind("3", ModClassAlt, ActionExpression3, "expression 3"),
	bind("4", ModClassAlt, ActionExpression4, "expression 4"),
	bind("5", ModClassAlt, ActionExpression5, "expression 5"),

	bind("r", ModClassNone, ActionToggleFinalPitch, "final pitch"),
	bind("t", ModClassNone, ActionToggleTips, "tips"),
	bind("u", ModClassNone, ActionToggleVibrato, "vibrato"),
	bind("i", ModClassNone, ActionTogglePitch, "pitch"),
	bind("o", ModClassNone, ActionTogglePhoneme, "phonemes"),
	bind("p", ModClassNone, ActionToggleSnap, "snap"),
	bind("p", ModClassAlt, ActionSnapDivMenu, "snap division"),
	bind("|", ModClassNone, ActionToggleNoteParams, "note params"),
	bind("w", ModClassNone, ActionToggleWaveform, "waveform"),
	bind("y", ModClassNone, ActionTogglePlayTone, "play tone"),

	bind("up", ModClassNone, ActionTransposeUp, "transpose up"),
	bind("down", ModClassNone, ActionTransposeDown, "transpose down"),
	bind("up", ModClassCommand, ActionOctaveUp, "octave up"),
	bind("down", ModClassCommand, ActionOctaveDown, "octave down"),
	bind("left", ModClassNone, ActionCursorLeft, "previous note"),
	bind("right", ModClassNone, ActionCursorRight, "next note"),
	bind("left", ModClassAlt, ActionShorten, "shorten"),
	bind("right", ModClassAlt, ActionLengthen, "lengthen"),
	bind("left", ModClassCommand, ActionMoveLeft, "move left"),
	bind("right", ModClassCommand, ActionMoveRight, "move right"),
	bind("left", ModClassShift, ActionExtendLeft, "extend left"),
	bind("right", ModClassShift, ActionExtendRight, "extend right"),
	bind("+", ModClassNone, ActionLengthen, "lengthen"),
	bind("-", ModClassNone, ActionShorten, "shorten"),

	bind("z", ModClassCommandShift, ActionRedo, "redo"),
	bind("z", ModClassCommand, ActionUndo, "undo"),
	bind("y", ModClassCommand, ActionRedo, "redo"),
	bind("c", ModClassCommand, ActionCopy, "copy"),
	bind("x", ModClassCommand, ActionCut, "cut"),
	bind("v", ModClassCommand, ActionPaste, "paste"),
	bind("insert", ModClassNone, ActionInsertNote, "insert note"),
	bind("delete", ModClassNone, ActionDeleteNotes, "delete"),
	bind("backspace", ModClassNone, ActionDeleteNotes, "delete"),

	bind("home", ModClassNone, ActionPlayPosPartStart, "to part start"),
	bind("end", ModClassNone, ActionPlayPosPartEnd, "to part end"),
	bind("home", ModClassShift, ActionExtendToFirst, "extend to first"),
	bind("end", ModClassShift, ActionExtendToLast, "extend to last"),
	bind("[", ModClassNone, ActionPlayPosBack, "playhead back"),
	bind("]", ModClassNone, ActionPlayPosForward, "playhead forward"),
	bind("[", ModClassCommand, ActionPlayPosSelStart, "to selection start"),
	bind("]", ModClassCommand, ActionPlayPosSelEnd, "to selection end"),
	bind("[", ModClassShift, ActionPlayPosViewStart, "to view start"),
	bind("]", ModClassShift, ActionPlayPosViewEnd, "to view end"),

	bind("a", ModClassNone, ActionScrollLeft, "scroll left"),
	bind("a", ModClassCommand, ActionSelectAll, "select all"),
	bind("d", ModClassNone, ActionScrollRight, "scroll right"),
	bind("d", ModClassCommand, ActionSelectNone, "select none"),
	bind("w", ModClassAlt, ActionScrollUp, "scroll up"),
	bind("s", ModClassAlt, ActionScrollDown, "scroll down"),
	bind("s", ModClassCommand, ActionSave, "save"),
	bind("f", ModClassNone, ActionFocusNote, "focus selection"),
	bind("f", ModClassCommand, ActionPlayPosToSel, "playhead to selection"),
	bind("e", ModClassNone, ActionZoomIn, "zoom in"),
	bind("q", ModClassNone, ActionZoomOut, "zoom out"),
}

// KeyTable maps chords to actions
type KeyTable struct {
	entries map[KeyChord]Binding
}

// DefaultKeyTable returns a fresh copy of the built-in bindings
func DefaultKeyTable() *KeyTable {
	t := &KeyTable{entries: make(map[KeyChord]Binding, len(defaultBindings))}
	for _, b := range defaultBindings {
		t.entries[b.Chord] = b
	}
	return t
}

// Lookup returns the action bound to key under class
func (t *KeyTable) Lookup(key string, class ModClass) (Action, bool) {
	b, ok := t.entries[KeyChord{Key: key, Class: class}]
	if !ok {
		return "", false
	}
	return b.Action, true
}

// Bindings lists every binding ordered by action then chord
func (t *KeyTable) Bindings() []Binding {
	out := make([]Binding, 0, len(t.entries))
	for _, b := range t.entries {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Chord.String() < out[j].Chord.String()
	})
	return out
}

// Chords returns every chord bound to action
func (t *KeyTable) Chords(action Action) []KeyChord {
	var out []KeyChord
	for _, b := range t.Bindings() {
		if b.Action == action {
			out = append(out, b.Chord)
		}
	}
	return out
}

// Rebind moves action to chord, dropping the action's previous chords and
// whatever chord was bound before.
func (t *KeyTable) Rebind(action Action, chord KeyChord) error {
	help := ""
	found := false
	for c, b := range t.entries {
		if b.Action == action {
			help = b.Help
			found = true
			delete(t.entries, c)
		}
	}
	if !found {
		return fault.New(fmt.Sprintf("unknown action %q", action),
			fmsg.WithDesc("rebind", fmt.Sprintf("Unknown action %q in key overrides", action)),
			ftag.With("config"))
	}
	t.entries[chord] = Binding{Chord: chord, Action: action, Help: help}
	return nil
}
