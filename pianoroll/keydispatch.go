package pianoroll

import (
	"math"

	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// KeyHost is the window around the piano roll
type KeyHost interface {
	HideWindow()
	OpenSnapDivMenu()
	// EditLyrics opens the multi-note lyric editor
	EditLyrics()
}

// KeyDispatcher runs key table actions against the view models
type KeyDispatcher struct {
	VM       *NotesViewModel
	Playback *PlaybackViewModel
	Table    *KeyTable
	Lyric    LyricBox
	Host     KeyHost
	Command  Modifiers
}

func NewKeyDispatcher(vm *NotesViewModel, playback *PlaybackViewModel, table *KeyTable) *KeyDispatcher {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &KeyDispatcher{VM: vm, Playback: playback, Table: table, Command: ModCtrl}
}

// HandleKey runs the action bound to key. It reports false when the key
// should propagate: the lyric box is open, no part is loaded, or nothing
// is bound. A non-nil error comes from a handled action that failed.
func (d *KeyDispatcher) HandleKey(key string, mods Modifiers) (bool, error) {
	if d.Lyric != nil && d.Lyric.IsVisible() {
		return false, nil
	}
	if d.VM.Part == nil || d.Playback == nil {
		return false, nil
	}
	class := ClassifyModifiers(mods, d.Command)
	action, ok := d.Table.Lookup(key, class)
	if !ok {
		return false, nil
	}
	debug.Log("keys", "%s -> %s", KeyChord{Key: key, Class: class}, action)
	return d.Run(action)
}

// Run executes one action. Snap values are read per call since the
// divisor can change at any time.
func (d *KeyDispatcher) Run(action Action) (bool, error) {
	vm, play := d.VM, d.Playback
	part := vm.Part
	snapUnit := vm.SnapUnit()
	deltaTicks := SnapStep(vm.Resolution(), vm.SnapDiv, vm.IsSnapOn)

	switch action {
	case ActionPlayPause:
		if err := play.PlayOrPause(); err != nil {
			return true, err
		}
	case ActionEscape:
		n := vm.Selection.Count()
		if n == 1 || n == len(part.Notes) {
			vm.DeselectNotes()
		} else if n > 1 {
			vm.SelectNote(vm.Selection.Head, true)
		}
	case ActionHideWindow:
		if d.Host != nil {
			d.Host.HideWindow()
		}
	case ActionEditLyric:
		if vm.Selection.Count() == 1 {
			if d.Lyric != nil {
				n := vm.Selection.First()
				d.Lyric.Show(part, n, nil, n.Lyric)
			}
		} else if vm.Selection.Count() > 1 && d.Host != nil {
			d.Host.EditLyrics()
		}

	case ActionToolCursor:
		vm.SelectTool("1")
	case ActionToolPen:
		vm.SelectTool("2")
	case ActionToolPenPlus:
		vm.SelectTool("2+")
	case ActionToolEraser:
		vm.SelectTool("3")
	case ActionToolDrawPitch:
		vm.SelectTool("4")
	case ActionToolKnife:
		vm.SelectTool("5")
	case ActionExpression1, ActionExpression2, ActionExpression3, ActionExpression4, ActionExpression5:
		vm.SelectExpression(int(action[len(action)-1] - '1'))

	case ActionToggleFinalPitch:
		vm.ShowFinalPitch = !vm.ShowFinalPitch
	case ActionToggleTips:
		vm.ShowTips = !vm.ShowTips
	case ActionToggleVibrato:
		vm.ShowVibrato = !vm.ShowVibrato
	case ActionTogglePitch:
		vm.ShowPitch = !vm.ShowPitch
	case ActionTogglePhoneme:
		vm.ShowPhoneme = !vm.ShowPhoneme
	case ActionToggleSnap:
		vm.IsSnapOn = !vm.IsSnapOn
	case ActionSnapDivMenu:
		// The menu opens but the key still propagates.
		if d.Host != nil {
			d.Host.OpenSnapDivMenu()
		}
		return false, nil
	case ActionToggleNoteParams:
		vm.ShowNoteParams = !vm.ShowNoteParams
	case ActionToggleWaveform:
		vm.ShowWaveform = !vm.ShowWaveform
	case ActionTogglePlayTone:
		vm.PlayTone = !vm.PlayTone

	case ActionTransposeUp:
		vm.TransposeSelection(1)
	case ActionTransposeDown:
		vm.TransposeSelection(-1)
	case ActionOctaveUp:
		vm.TransposeSelection(12)
	case ActionOctaveDown:
		vm.TransposeSelection(-12)
	case ActionCursorLeft:
		vm.MoveCursor(-1)
	case ActionCursorRight:
		vm.MoveCursor(1)
	case ActionShorten:
		vm.ResizeSelectedNotes(-deltaTicks)
	case ActionLengthen:
		vm.ResizeSelectedNotes(deltaTicks)
	case ActionMoveLeft:
		vm.MoveSelectedNotes(-deltaTicks)
	case ActionMoveRight:
		vm.MoveSelectedNotes(deltaTicks)
	case ActionExtendLeft:
		vm.ExtendSelection(-1)
	case ActionExtendRight:
		vm.ExtendSelection(1)

	case ActionUndo:
		vm.Doc.Undo()
		vm.Selection.Retain(part)
	case ActionRedo:
		vm.Doc.Redo()
		vm.Selection.Retain(part)
	case ActionCopy:
		vm.CopyNotes()
	case ActionCut:
		vm.CutNotes()
	case ActionPaste:
		vm.PasteNotes(play.PlayPosTick() - part.Position)
	case ActionInsertNote:
		vm.InsertNote(play.PlayPosTick() - part.Position)
	case ActionDeleteNotes:
		vm.DeleteSelectedNotes()

	case ActionPlayPosPartStart:
		play.MovePlayPos(part.Position)
	case ActionPlayPosPartEnd:
		play.MovePlayPos(part.End())
	case ActionExtendToFirst:
		if len(part.Notes) > 0 {
			vm.ExtendSelectionTo(part.Notes[0])
		}
	case ActionExtendToLast:
		if len(part.Notes) > 0 {
			vm.ExtendSelectionTo(part.Notes[len(part.Notes)-1])
		}
	case ActionPlayPosBack:
		play.MovePlayPos(play.PlayPosTick() - snapUnit)
	case ActionPlayPosForward:
		play.MovePlayPos(play.PlayPosTick() + snapUnit)
	case ActionPlayPosSelStart, ActionPlayPosToSel:
		if first := vm.Selection.First(); first != nil {
			play.MovePlayPos(part.Position + first.Position)
		}
	case ActionPlayPosSelEnd:
		if last := vm.Selection.Last(); last != nil {
			play.MovePlayPos(part.Position + last.RightBound())
		}
	case ActionPlayPosViewStart, ActionPlayPosViewEnd:
		// shift+] lands on the view start too, kept as the editor has always behaved.
		play.MovePlayPos(part.Position + int(vm.TickOffset))

	case ActionScrollLeft:
		vm.TickOffset = math.Max(0, vm.TickOffset-float64(snapUnit))
	case ActionScrollRight:
		vm.TickOffset = math.Min(vm.TickOffset+float64(snapUnit), vm.HScrollBarMax())
	case ActionSelectAll:
		vm.SelectAllNotes()
	case ActionSelectNone:
		// Bound to select-all, kept as the editor has always behaved.
		vm.SelectAllNotes()
	case ActionScrollUp:
		vm.TrackOffset = math.Max(vm.TrackOffset-2, 0)
	case ActionScrollDown:
		vm.TrackOffset = math.Min(vm.TrackOffset+2, vm.VScrollBarMax())
	case ActionSave:
		vm.Doc.ExecuteCmd(document.SaveRequestNotification{})
	case ActionFocusNote:
		if first := vm.Selection.First(); first != nil {
			vm.Doc.ExecuteCmd(document.FocusNoteNotification{Part: part, Note: first})
		}
	case ActionZoomIn:
		vm.OnXZoomed(d.zoomAnchor(), 0.1)
	case ActionZoomOut:
		vm.OnXZoomed(d.zoomAnchor(), -0.1)
	default:
		return false, nil
	}
	return true, nil
}

// zoomAnchor keeps the selection head in place, or the view centre once scrolled
func (d *KeyDispatcher) zoomAnchor() Point {
	vm := d.VM
	if head := vm.Selection.Head; head != nil {
		return Point{
			X: (float64(head.Position) - vm.TickOffset) / vm.ViewportTicks(),
			Y: (float64(ustx.MaxTone-1-head.Tone) - vm.TrackOffset) / vm.ViewportTracks(),
		}
	}
	if vm.TickOffset != 0 {
		return Point{X: 0.5, Y: 0.5}
	}
	return Point{}
}
