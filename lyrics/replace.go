// Package lyrics implements regex find/replace over the lyrics of selected notes.
package lyrics

import (
	"regexp"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// Preset is a canned find/replace pair
type Preset struct {
	Name string
	Old  string
	New  string
}

// Presets are offered in the replace dialog; the first one is blank
var Presets = []Preset{
	{Name: "-"},
	{Name: "Remove alphabet", Old: `[a-zA-Z]`},
	{Name: "Remove non-hiragana", Old: `[^\p{Hiragana}ヴ]+`},
	{Name: "Remove phonetic hint", Old: `\[.*\]`},
	{Name: "Remove tone", Old: `_?[A-G](#|b)?[1-7]`},
	{Name: "Remove space prefix", Old: `.* `},
}

// ReplaceViewModel holds one find/replace session over a set of notes
type ReplaceViewModel struct {
	part   *ustx.VoicePart
	notes  []*ustx.Note
	start  []string
	lyrics []string

	old     string
	new     string
	preview string
	err     error
}

// New starts a session. lyrics are the current lyrics of notes, in order.
func New(part *ustx.VoicePart, notes []*ustx.Note, lyrics []string) *ReplaceViewModel {
	vm := &ReplaceViewModel{
		part:   part,
		notes:  notes,
		start:  append([]string(nil), lyrics...),
		lyrics: append([]string(nil), lyrics...),
	}
	vm.preview = strings.Join(vm.lyrics, ", ")
	return vm
}

// FromNotes starts a session over notes using their current lyrics
func FromNotes(part *ustx.VoicePart, notes []*ustx.Note) *ReplaceViewModel {
	lyrics := make([]string, len(notes))
	for i, n := range notes {
		lyrics[i] = n.Lyric
	}
	return New(part, notes, lyrics)
}

func (vm *ReplaceViewModel) Old() string     { return vm.old }
func (vm *ReplaceViewModel) New() string     { return vm.new }
func (vm *ReplaceViewModel) Preview() string { return vm.preview }
func (vm *ReplaceViewModel) Err() error      { return vm.err }

// Lyrics returns the replaced lyrics
func (vm *ReplaceViewModel) Lyrics() []string {
	return append([]string(nil), vm.lyrics...)
}

func (vm *ReplaceViewModel) SetOld(s string) {
	vm.old = s
	vm.replace()
}

func (vm *ReplaceViewModel) SetNew(s string) {
	vm.new = s
	vm.replace()
}

// SelectPreset loads preset i into the old/new fields
func (vm *ReplaceViewModel) SelectPreset(i int) {
	if i < 0 || i >= len(Presets) {
		return
	}
	vm.old = Presets[i].Old
	vm.new = Presets[i].New
	vm.replace()
}

// replace recomputes lyrics from the starting lyrics. An invalid pattern
// keeps the last good preview and sets Err.
func (vm *ReplaceViewModel) replace() {
	re, err := regexp.Compile(vm.old)
	if err != nil {
		vm.err = fault.Wrap(err, fmsg.WithDesc("compile pattern", "The find pattern is not a valid regular expression"), ftag.With("lyrics"))
		return
	}
	vm.err = nil
	for i, l := range vm.start {
		vm.lyrics[i] = re.ReplaceAllString(l, vm.new)
	}
	vm.preview = strings.Join(vm.lyrics, ", ")
}

// Finish writes changed lyrics back as one undo step
func (vm *ReplaceViewModel) Finish(doc *document.Manager) error {
	if vm.err != nil {
		return vm.err
	}
	doc.StartUndoGroup()
	defer doc.EndUndoGroup()
	changed := 0
	for i := 0; i < len(vm.lyrics) && i < len(vm.notes); i++ {
		if vm.notes[i].Lyric != vm.lyrics[i] {
			doc.ExecuteCmd(&document.ChangeNoteLyricCommand{Part: vm.part, Note: vm.notes[i], NewLyric: vm.lyrics[i]})
			changed++
		}
	}
	debug.Log("lyrics", "replace %q -> %q changed %d", vm.old, vm.new, changed)
	return nil
}

// Apply runs one preset over notes directly, as a single undo step
func Apply(doc *document.Manager, part *ustx.VoicePart, notes []*ustx.Note, preset int) error {
	vm := FromNotes(part, notes)
	vm.SelectPreset(preset)
	return vm.Finish(doc)
}
