package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/document"
	"go-pianoroll/lyrics"
	"go-pianoroll/ustx"
	"go-pianoroll/widgets"
)

// replaceDialog is the lyric find/replace panel. tab switches fields,
// ctrl+r cycles presets, enter applies, esc closes.
type replaceDialog struct {
	vm     *lyrics.ReplaceViewModel
	part   *ustx.VoicePart
	inputs [2]textinput.Model
	focus  int
	preset int
}

func newReplaceDialog(part *ustx.VoicePart, notes []*ustx.Note) *replaceDialog {
	d := &replaceDialog{vm: lyrics.FromNotes(part, notes), part: part}
	for i := range d.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = panelWidth - 6
		ti.Cursor.SetMode(cursor.CursorStatic)
		d.inputs[i] = ti
	}
	d.inputs[0].Focus()
	return d
}

// Update handles one key. done is true once the dialog should close.
func (d *replaceDialog) Update(msg tea.KeyMsg, doc *document.Manager) (done bool, err error) {
	switch msg.Type {
	case tea.KeyEsc:
		return true, nil
	case tea.KeyEnter:
		if err := d.vm.Finish(doc); err != nil {
			return false, err
		}
		doc.Project().ResolvePhonemes(d.part)
		return true, nil
	case tea.KeyTab, tea.KeyShiftTab:
		d.inputs[d.focus].Blur()
		d.focus = 1 - d.focus
		d.inputs[d.focus].Focus()
		return false, nil
	case tea.KeyCtrlR:
		d.preset = (d.preset + 1) % len(lyrics.Presets)
		d.vm.SelectPreset(d.preset)
		d.inputs[0].SetValue(d.vm.Old())
		d.inputs[1].SetValue(d.vm.New())
		return false, nil
	}
	d.inputs[d.focus], _ = d.inputs[d.focus].Update(msg)
	d.vm.SetOld(d.inputs[0].Value())
	d.vm.SetNew(d.inputs[1].Value())
	return false, nil
}

func (d *replaceDialog) View() string {
	var sb strings.Builder
	sb.WriteString("Replace lyrics\n")
	fmt.Fprintf(&sb, "preset: %s\n", lyrics.Presets[d.preset].Name)
	fmt.Fprintf(&sb, "find: %s\n", d.inputs[0].View())
	fmt.Fprintf(&sb, "with: %s\n\n", d.inputs[1].View())
	if err := d.vm.Err(); err != nil {
		sb.WriteString(widgets.ErrorText(err) + "\n")
	}
	sb.WriteString(d.vm.Preview())
	return sb.String()
}
