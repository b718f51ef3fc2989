package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/charmbracelet/bubbles/key"

	"go-pianoroll/config"
	pr "go-pianoroll/pianoroll"
	"go-pianoroll/widgets"
)

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

// ApplyKeyOverrides rebinds table entries from a key override file. Bad
// entries are skipped and reported together.
func ApplyKeyOverrides(table *pr.KeyTable, overrides []config.KeyOverride) error {
	var errs []error
	for _, o := range overrides {
		class, err := pr.ParseModClass(o.Modifier)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if strings.TrimSpace(o.Key) == "" {
			errs = append(errs, fault.New(fmt.Sprintf("empty key for %q", o.Action),
				fmsg.WithDesc("rebind", fmt.Sprintf("Key override for %q has no key", o.Action)),
				ftag.With("config")))
			continue
		}
		if err := table.Rebind(pr.Action(o.Action), pr.KeyChord{Key: o.Key, Class: class}); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fault.Wrap(errors.Join(errs...),
		fmsg.WithDesc("apply key overrides", fmt.Sprintf("%d key overrides could not be applied", len(errs))),
		ftag.With("config"))
}

// chordKeys spells a chord the way the status line shows it
func chordKeys(c pr.KeyChord, command pr.Modifiers) string {
	prefix := ""
	switch c.Class {
	case pr.ModClassCommand:
		prefix = commandName(command) + "+"
	case pr.ModClassShift:
		prefix = "shift+"
	case pr.ModClassAlt:
		prefix = "alt+"
	case pr.ModClassCommandShift:
		prefix = commandName(command) + "+shift+"
	}
	return prefix + c.Key
}

func commandName(command pr.Modifiers) string {
	if command == pr.ModMeta {
		return "meta"
	}
	return "ctrl"
}

// keyMap feeds bubbles/help from the key table
type keyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// shortHelpActions are shown on the footer line
var shortHelpActions = []pr.Action{
	pr.ActionPlayPause,
	pr.ActionToolCursor,
	pr.ActionToolPen,
	pr.ActionEditLyric,
	pr.ActionUndo,
	pr.ActionZoomIn,
	pr.ActionZoomOut,
}

func newKeyMap(table *pr.KeyTable, command pr.Modifiers) keyMap {
	var km keyMap
	for _, a := range shortHelpActions {
		if b, ok := bindingFor(table, a, command); ok {
			km.short = append(km.short, b)
		}
	}
	km.short = append(km.short, Key("help", "?"), Key("quit", "ctrl+q"))

	for _, sec := range helpSections(table, command) {
		var col []key.Binding
		for _, k := range sec.Keys {
			col = append(col, Key(k.Desc, k.Key))
		}
		km.full = append(km.full, col)
	}
	return km
}

func bindingFor(table *pr.KeyTable, action pr.Action, command pr.Modifiers) (key.Binding, bool) {
	var keys []string
	for _, c := range table.Chords(action) {
		keys = append(keys, chordKeys(c, command))
	}
	if len(keys) == 0 {
		return key.Binding{}, false
	}
	help := string(action)
	for _, b := range table.Bindings() {
		if b.Action == action {
			help = b.Help
			break
		}
	}
	return Key(help, keys...), true
}

func (k keyMap) ShortHelp() []key.Binding  { return k.short }
func (k keyMap) FullHelp() [][]key.Binding { return k.full }

var sectionTitles = []string{"Playback", "Edit", "Notes", "Tools", "View", "Navigate"}

func sectionOf(a pr.Action) string {
	s := string(a)
	switch {
	case strings.HasPrefix(s, "play-"):
		return "Playback"
	case strings.HasPrefix(s, "tool-"), strings.HasPrefix(s, "expression-"):
		return "Tools"
	case strings.HasPrefix(s, "toggle-"), a == pr.ActionSnapDivMenu:
		return "View"
	case strings.HasPrefix(s, "transpose-"), strings.HasPrefix(s, "octave-"),
		strings.HasPrefix(s, "cursor-"), strings.HasPrefix(s, "move-"),
		strings.HasPrefix(s, "extend-"), a == pr.ActionShorten, a == pr.ActionLengthen:
		return "Notes"
	case strings.HasPrefix(s, "scroll-"), strings.HasPrefix(s, "zoom-"),
		a == pr.ActionFocusNote, a == pr.ActionHideWindow:
		return "Navigate"
	}
	return "Edit"
}

// helpSections groups the key table for the full help screen
func helpSections(table *pr.KeyTable, command pr.Modifiers) []widgets.KeySection {
	byTitle := make(map[string]*widgets.KeySection, len(sectionTitles))
	sections := make([]widgets.KeySection, len(sectionTitles))
	for i, t := range sectionTitles {
		sections[i].Title = t
		byTitle[t] = &sections[i]
	}
	for _, b := range table.Bindings() {
		sec := byTitle[sectionOf(b.Action)]
		sec.Keys = append(sec.Keys, widgets.KeyBinding{Key: chordKeys(b.Chord, command), Desc: b.Help})
	}
	return sections
}
