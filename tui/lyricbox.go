package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// lyricBox is the inline lyric editor. It edits one note, the note behind
// a phoneme, or several notes as a space separated list.
type lyricBox struct {
	input   textinput.Model
	doc     *document.Manager
	part    *ustx.VoicePart
	notes   []*ustx.Note
	visible bool
}

func newLyricBox(doc *document.Manager) *lyricBox {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = 40
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &lyricBox{input: ti, doc: doc}
}

// Show opens the box on a note, or on the note behind phoneme
func (b *lyricBox) Show(part *ustx.VoicePart, note *ustx.Note, phoneme *ustx.Phoneme, text string) {
	if note == nil && phoneme != nil {
		note = phoneme.Parent
	}
	if note == nil {
		return
	}
	b.open(part, []*ustx.Note{note}, text)
}

// ShowMany opens the box on several notes at once
func (b *lyricBox) ShowMany(part *ustx.VoicePart, notes []*ustx.Note) {
	if len(notes) == 0 {
		return
	}
	lyrics := make([]string, len(notes))
	for i, n := range notes {
		lyrics[i] = n.Lyric
	}
	b.open(part, notes, strings.Join(lyrics, " "))
}

func (b *lyricBox) open(part *ustx.VoicePart, notes []*ustx.Note, text string) {
	b.part = part
	b.notes = notes
	b.input.SetValue(text)
	b.input.CursorEnd()
	b.input.Focus()
	b.visible = true
}

func (b *lyricBox) IsVisible() bool { return b.visible }

// EndEdit commits the box and closes it
func (b *lyricBox) EndEdit() {
	if !b.visible {
		return
	}
	b.commit()
	b.close()
}

// Cancel closes the box without changing anything
func (b *lyricBox) Cancel() {
	b.close()
}

func (b *lyricBox) close() {
	b.visible = false
	b.notes = nil
	b.input.Blur()
	b.input.Reset()
}

func (b *lyricBox) commit() {
	var lyrics []string
	if len(b.notes) == 1 {
		lyrics = []string{strings.TrimSpace(b.input.Value())}
	} else {
		lyrics = strings.Fields(b.input.Value())
	}
	b.doc.StartUndoGroup()
	defer b.doc.EndUndoGroup()
	changed := 0
	for i := 0; i < len(lyrics) && i < len(b.notes); i++ {
		n := b.notes[i]
		if lyrics[i] == "" || lyrics[i] == n.Lyric {
			continue
		}
		b.doc.ExecuteCmd(&document.ChangeNoteLyricCommand{Part: b.part, Note: n, NewLyric: lyrics[i]})
		changed++
	}
	if changed > 0 && b.part != nil {
		b.doc.Project().ResolvePhonemes(b.part)
	}
	debug.Log("tui", "lyric edit changed %d notes", changed)
}

// Update feeds a key to the box: enter commits, esc cancels
func (b *lyricBox) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		b.EndEdit()
		return nil
	case tea.KeyEsc:
		b.Cancel()
		return nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return cmd
}

func (b *lyricBox) View() string {
	return b.input.View()
}
