package pianoroll

import (
	"fmt"
	"math"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// NoteMoveState drags the selected notes in time and tone
type NoteMoveState struct {
	editBase
	note     *ustx.Note
	startPos int
	grabTick float64
}

func NewNoteMoveState(vm *NotesViewModel, tip *ValueTip, note *ustx.Note) *NoteMoveState {
	return &NoteMoveState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}, note: note}
}

func (s *NoteMoveState) Name() string { return "note-move" }

func (s *NoteMoveState) Begin(p Point) {
	s.begin(p, true)
	if !s.vm.Selection.Contains(s.note) {
		s.vm.SelectNote(s.note, true)
	}
	s.startPos = s.note.Position
	s.grabTick = s.vm.PointToTick(p)
}

func (s *NoteMoveState) Update(p Point) {
	target := s.vm.SnapTick(float64(s.startPos) + s.vm.PointToTick(p) - s.grabTick)
	deltaPos := target - s.note.Position
	if first := s.vm.Selection.First(); first != nil && first.Position+deltaPos < 0 {
		deltaPos = -first.Position
	}
	deltaTone := s.vm.PointToTone(p) - s.note.Tone
	for _, n := range s.vm.Selection.List() {
		if n.Tone+deltaTone < 0 || n.Tone+deltaTone >= ustx.MaxTone {
			deltaTone = 0
			break
		}
	}
	if deltaPos != 0 || deltaTone != 0 {
		for _, n := range s.vm.Selection.List() {
			s.exec(&document.MoveNoteCommand{Part: s.vm.Part, Note: n, DeltaPos: deltaPos, DeltaTone: deltaTone})
		}
	}
	s.showTip(p, fmt.Sprintf("%s %s", ToneName(s.note.Tone), FormatTick(s.note.Position, s.vm.Resolution())))
}

func (s *NoteMoveState) End(p Point) {
	s.vm.Project.ResolvePhonemes(s.vm.Part)
	s.end()
}

// NoteResizeState drags the end of a note. With resizeNext the start of an
// adjoining next note follows the same edge.
type NoteResizeState struct {
	editBase
	note       *ustx.Note
	next       *ustx.Note
	resizeNext bool
}

func NewNoteResizeState(vm *NotesViewModel, tip *ValueTip, note *ustx.Note, resizeNext bool) *NoteResizeState {
	return &NoteResizeState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}, note: note, resizeNext: resizeNext}
}

func (s *NoteResizeState) Name() string { return "note-resize" }

func (s *NoteResizeState) Begin(p Point) {
	s.begin(p, true)
	if s.resizeNext {
		if i := s.vm.Part.IndexOf(s.note); i >= 0 && i+1 < len(s.vm.Part.Notes) {
			if next := s.vm.Part.Notes[i+1]; next.Position == s.note.End() {
				s.next = next
			}
		}
	}
}

func (s *NoteResizeState) Update(p Point) {
	tick := s.vm.PointToTick(p)
	end := int(math.Round(tick))
	if s.vm.IsSnapOn {
		end = int(roundTo(tick, float64(s.vm.SnapUnit())))
	}
	if minEnd := s.note.Position + s.vm.MinDrawDuration(); end < minEnd {
		end = minEnd
	}
	delta := end - s.note.End()
	if s.next != nil && s.next.Duration-delta < document.MinDuration {
		delta = s.next.Duration - document.MinDuration
	}
	if delta != 0 {
		targets := []*ustx.Note{s.note}
		if s.next == nil && s.vm.Selection.Contains(s.note) {
			targets = s.vm.Selection.List()
		}
		for _, n := range targets {
			s.exec(&document.ResizeNoteCommand{Part: s.vm.Part, Note: n, Delta: delta})
		}
		if s.next != nil {
			s.exec(&document.ResizeNoteCommand{Part: s.vm.Part, Note: s.next, Delta: -delta, FromStart: true})
		}
	}
	s.showTip(p, fmt.Sprintf("%d ticks", s.note.Duration))
}

func (s *NoteResizeState) End(p Point) {
	s.end()
}

// NoteDrawState adds a note at the press and stretches it while dragging
type NoteDrawState struct {
	editBase
	note     *ustx.Note
	playTone bool
	preview  TonePreview
	sounding int
}

func NewNoteDrawState(vm *NotesViewModel, tip *ValueTip, playTone bool, preview TonePreview) *NoteDrawState {
	return &NoteDrawState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}, playTone: playTone, preview: preview, sounding: -1}
}

func (s *NoteDrawState) Name() string { return "note-draw" }

func (s *NoteDrawState) Begin(p Point) {
	s.begin(p, true)
	pos := s.vm.SnapTick(s.vm.PointToTick(p))
	if pos < 0 {
		pos = 0
	}
	s.note = ustx.NewNote(pos, s.vm.MinDrawDuration(), s.vm.PointToTone(p), "a")
	s.exec(&document.AddNoteCommand{Part: s.vm.Part, Note: s.note})
	s.vm.SelectNote(s.note, true)
	s.sound(s.note.Tone)
}

func (s *NoteDrawState) sound(tone int) {
	if !s.playTone || s.preview == nil || tone == s.sounding {
		return
	}
	if s.sounding >= 0 {
		s.preview.NoteOff(s.sounding)
	}
	s.preview.NoteOn(tone)
	s.sounding = tone
}

func (s *NoteDrawState) Update(p Point) {
	unit := s.vm.MinDrawDuration()
	tick := s.vm.PointToTick(p)
	end := s.note.Position + unit
	if tick > float64(s.note.Position) {
		end = s.note.Position + int(math.Ceil((tick-float64(s.note.Position))/float64(unit)))*unit
	}
	if d := end - s.note.End(); d != 0 {
		s.exec(&document.ResizeNoteCommand{Part: s.vm.Part, Note: s.note, Delta: d})
	}
	if dt := s.vm.PointToTone(p) - s.note.Tone; dt != 0 {
		s.exec(&document.MoveNoteCommand{Part: s.vm.Part, Note: s.note, DeltaTone: dt})
	}
	s.sound(s.note.Tone)
	s.showTip(p, fmt.Sprintf("%s %d ticks", ToneName(s.note.Tone), s.note.Duration))
}

func (s *NoteDrawState) End(p Point) {
	if s.sounding >= 0 && s.preview != nil {
		s.preview.NoteOff(s.sounding)
		s.sounding = -1
	}
	s.vm.Project.ResolvePhonemes(s.vm.Part)
	s.end()
}

// NoteSelectionState rubber-bands a rectangle of notes
type NoteSelectionState struct {
	editBase
	additive bool
	base     []*ustx.Note
}

func NewNoteSelectionState(vm *NotesViewModel, additive bool) *NoteSelectionState {
	return &NoteSelectionState{editBase: editBase{vm: vm, button: ButtonLeft}, additive: additive}
}

func (s *NoteSelectionState) Name() string { return "note-selection" }

func (s *NoteSelectionState) Begin(p Point) {
	s.begin(p, false)
	if s.additive {
		s.base = s.vm.Selection.List()
	}
	r := RectFromPoints(p, p)
	s.vm.SelectionBox = &r
}

func (s *NoteSelectionState) Update(p Point) {
	r := RectFromPoints(s.start, p)
	s.vm.SelectionBox = &r
	t0, t1 := s.vm.PointToTick(Point{X: r.X}), s.vm.PointToTick(Point{X: r.X + r.W})
	hiTone, loTone := s.vm.PointToTone(Point{Y: r.Y}), s.vm.PointToTone(Point{Y: r.Y + r.H})
	sel := append([]*ustx.Note(nil), s.base...)
	for _, n := range s.vm.Part.Notes {
		if float64(n.End()) > t0 && float64(n.Position) <= t1 && n.Tone >= loTone && n.Tone <= hiTone {
			sel = append(sel, n)
		}
	}
	s.vm.Selection.Set(sel...)
}

func (s *NoteSelectionState) End(p Point) {
	s.vm.SelectionBox = nil
	s.end()
}

// NoteEraseState deletes every note the pointer passes over
type NoteEraseState struct {
	editBase
}

func NewNoteEraseState(vm *NotesViewModel, button MouseButton) *NoteEraseState {
	return &NoteEraseState{editBase: editBase{vm: vm, button: button}}
}

func (s *NoteEraseState) Name() string { return "note-erase" }

func (s *NoteEraseState) Begin(p Point) { s.begin(p, true) }

func (s *NoteEraseState) Update(p Point) {
	hit := s.vm.HitTest.HitTestNote(p)
	if !hit.HitBody {
		return
	}
	s.vm.Selection.Remove(hit.Note)
	s.exec(&document.RemoveNoteCommand{Part: s.vm.Part, Note: hit.Note})
}

func (s *NoteEraseState) End(p Point) { s.end() }

// NoteSplitState cuts a note where the pointer is released
type NoteSplitState struct {
	editBase
	note *ustx.Note
	at   int
}

func NewNoteSplitState(vm *NotesViewModel, tip *ValueTip, note *ustx.Note) *NoteSplitState {
	return &NoteSplitState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}, note: note}
}

func (s *NoteSplitState) Name() string { return "note-split" }

func (s *NoteSplitState) Begin(p Point) { s.begin(p, true) }

func (s *NoteSplitState) Update(p Point) {
	s.at = s.vm.SnapTick(s.vm.PointToTick(p))
	s.showTip(p, FormatTick(s.at, s.vm.Resolution()))
}

func (s *NoteSplitState) End(p Point) {
	if s.at > s.note.Position && s.at < s.note.End() {
		s.exec(&document.SplitNoteCommand{Part: s.vm.Part, Note: s.note, At: s.at})
		s.vm.Project.ResolvePhonemes(s.vm.Part)
	}
	s.end()
}

// NotePanningState scrolls the view with the middle button
type NotePanningState struct {
	editBase
	last Point
}

func NewNotePanningState(vm *NotesViewModel) *NotePanningState {
	return &NotePanningState{editBase: editBase{vm: vm, button: ButtonMiddle}}
}

func (s *NotePanningState) Name() string { return "note-panning" }

func (s *NotePanningState) Begin(p Point) {
	s.begin(p, false)
	s.last = p
}

func (s *NotePanningState) Update(p Point) {
	dx, dy := p.X-s.last.X, p.Y-s.last.Y
	s.vm.ScrollBy(-dx*s.vm.TickWidth, -dy/float64(s.vm.TrackHeight))
	s.last = p
}

func (s *NotePanningState) End(p Point) { s.end() }
