package pianoroll

import (
	"strings"

	"go-pianoroll/document"
	"go-pianoroll/lyrics"
	"go-pianoroll/ustx"
)

// presetRemoveTone indexes lyrics.Presets
const presetRemoveTone = 4

// RunMenuAction applies a context menu entry. It returns false for entries
// that need a dialog from the host (replace, edit lyrics, note defaults).
func (vm *NotesViewModel) RunMenuAction(action MenuAction, pit PitchPointHit) (bool, error) {
	switch action {
	case MenuPitchEaseInOut:
		vm.setPitchShape(pit, ustx.ShapeEaseInOut)
	case MenuPitchLinear:
		vm.setPitchShape(pit, ustx.ShapeLinear)
	case MenuPitchEaseIn:
		vm.setPitchShape(pit, ustx.ShapeEaseIn)
	case MenuPitchEaseOut:
		vm.setPitchShape(pit, ustx.ShapeEaseOut)
	case MenuPitchSnapToPrevious:
		vm.snapPitchToPrevious(pit)
	case MenuPitchDeletePoint:
		vm.editPitch(pit.Note, func(data []ustx.PitchPoint) []ustx.PitchPoint {
			if pit.Index <= 0 || pit.Index >= len(data)-1 {
				return data
			}
			return append(data[:pit.Index], data[pit.Index+1:]...)
		})
	case MenuPitchAddPoint:
		vm.editPitch(pit.Note, func(data []ustx.PitchPoint) []ustx.PitchPoint {
			if pit.Index < 0 || pit.Index >= len(data) {
				return data
			}
			at := pit.Index + 1
			pt := ustx.PitchPoint{X: pit.X, Y: pit.Y, Shape: data[pit.Index].Shape}
			return append(data[:at], append([]ustx.PitchPoint{pt}, data[at:]...)...)
		})

	case MenuNoteCopy:
		vm.CopyNotes()
	case MenuNoteDelete:
		vm.DeleteSelectedNotes()
	case MenuNotesQuantize:
		vm.batch(func(n *ustx.Note) document.Command {
			if d := vm.SnapTick(float64(n.Position)+float64(vm.SnapUnit())/2) - n.Position; d != 0 {
				return &document.MoveNoteCommand{Part: vm.Part, Note: n, DeltaPos: d}
			}
			return nil
		})
	case MenuNotesResetPitch:
		vm.batch(func(n *ustx.Note) document.Command {
			return &document.ChangePitchPointsCommand{Note: n, Points: ustx.NewPitch().Data}
		})
	case MenuNotesResetExp:
		vm.Doc.StartUndoGroup()
		for _, n := range vm.Selection.List() {
			for abbr := range n.Expressions {
				vm.Doc.ExecuteCmd(&document.SetExpressionCommand{Note: n, Abbr: abbr, Reset: true})
			}
		}
		vm.Doc.EndUndoGroup()
	case MenuNotesVibratoOn, MenuNotesVibratoOff:
		on := action == MenuNotesVibratoOn
		vm.batch(func(n *ustx.Note) document.Command {
			if n.Vibrato.Enabled == on {
				return nil
			}
			v := n.Vibrato
			v.Enabled = on
			return &document.ChangeVibratoCommand{Note: n, Vibrato: v}
		})
	case MenuLyricsLowercase:
		vm.batch(func(n *ustx.Note) document.Command {
			if l := strings.ToLower(n.Lyric); l != n.Lyric {
				return &document.ChangeNoteLyricCommand{Part: vm.Part, Note: n, NewLyric: l}
			}
			return nil
		})
	case MenuLyricsRemoveTone:
		if err := lyrics.Apply(vm.Doc, vm.Part, vm.Selection.List(), presetRemoveTone); err != nil {
			return true, err
		}
	default:
		return false, nil
	}
	if vm.Part != nil {
		vm.Project.ResolvePhonemes(vm.Part)
	}
	return true, nil
}

// batch runs one command per selected note inside a single undo group
func (vm *NotesViewModel) batch(fn func(n *ustx.Note) document.Command) {
	vm.Doc.StartUndoGroup()
	defer vm.Doc.EndUndoGroup()
	for _, n := range vm.Selection.List() {
		if cmd := fn(n); cmd != nil {
			vm.Doc.ExecuteCmd(cmd)
		}
	}
}

func (vm *NotesViewModel) editPitch(n *ustx.Note, fn func([]ustx.PitchPoint) []ustx.PitchPoint) {
	if n == nil || n.Pitch == nil {
		return
	}
	data := fn(append([]ustx.PitchPoint(nil), n.Pitch.Data...))
	vm.Doc.ExecuteCmd(&document.ChangePitchPointsCommand{Note: n, Points: data})
}

func (vm *NotesViewModel) setPitchShape(pit PitchPointHit, shape ustx.PitchShape) {
	vm.editPitch(pit.Note, func(data []ustx.PitchPoint) []ustx.PitchPoint {
		if pit.Index >= 0 && pit.Index < len(data) {
			data[pit.Index].Shape = shape
		}
		return data
	})
}

// snapPitchToPrevious starts the curve at the previous note's tone when the
// notes touch
func (vm *NotesViewModel) snapPitchToPrevious(pit PitchPointHit) {
	if vm.Part == nil || pit.Note == nil {
		return
	}
	i := vm.Part.IndexOf(pit.Note)
	if i <= 0 {
		return
	}
	prev := vm.Part.Notes[i-1]
	if prev.End() != pit.Note.Position {
		return
	}
	vm.editPitch(pit.Note, func(data []ustx.PitchPoint) []ustx.PitchPoint {
		data[0].Y = float64(prev.Tone-pit.Note.Tone) * 10
		return data
	})
}
