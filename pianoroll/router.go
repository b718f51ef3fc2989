package pianoroll

import (
	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// Phase is where the router is in a pointer gesture
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseArmed
	PhaseActive
)

func (ph Phase) String() string {
	switch ph {
	case PhaseArmed:
		return "armed"
	case PhaseActive:
		return "active"
	default:
		return "idle"
	}
}

// TransitionKind names an edit-state lifecycle call
type TransitionKind uint8

const (
	TransitionBegin TransitionKind = iota
	TransitionUpdate
	TransitionEnd
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionBegin:
		return "begin"
	case TransitionUpdate:
		return "update"
	default:
		return "end"
	}
}

// Transition is reported to Router.OnTransition after each lifecycle call
type Transition struct {
	Kind  TransitionKind
	State string
	Point Point
}

// LyricBox is the inline text editor opened on double tap
type LyricBox interface {
	Show(part *ustx.VoicePart, note *ustx.Note, phoneme *ustx.Phoneme, text string)
	EndEdit()
	IsVisible() bool
}

// OtoEditor jumps an external oto editor to an entry
type OtoEditor interface {
	GotoOto(singer *ustx.Singer, oto *ustx.Oto) error
}

// Router turns pointer input on the editor canvases into edit states.
// The notes, expression and phoneme canvases share one state slot; the
// keyboard canvas has its own.
type Router struct {
	VM      *NotesViewModel
	Tip     *ValueTip
	Hit     HitTester
	Lyric   LyricBox
	Oto     OtoEditor
	Preview TonePreview

	// Command is the platform command modifier, ModCtrl or ModMeta
	Command Modifiers

	Cursor Cursor
	Menu   ContextMenu

	OnTransition func(Transition)

	active   EditState
	phase    Phase
	keyboard EditState
}

// NewRouter creates a router over vm using vm's hit tester
func NewRouter(vm *NotesViewModel, tip *ValueTip) *Router {
	if tip == nil {
		tip = NewValueTip(DefaultValueTipMargin, float64(vm.ViewHeight))
	}
	return &Router{VM: vm, Tip: tip, Hit: vm.HitTest, Command: ModCtrl}
}

func (r *Router) Active() EditState { return r.active }

func (r *Router) Phase() Phase { return r.phase }

// ContextMenu returns the items of the open menu, if any
func (r *Router) ContextMenu() []MenuItem { return r.Menu.Items }

// CloseMenu clears the context menu
func (r *Router) CloseMenu() {
	r.Menu = ContextMenu{}
}

func (r *Router) emit(kind TransitionKind, s EditState, p Point) {
	debug.Log("router", "%s %s %s", kind, s.Name(), p)
	if r.OnTransition != nil {
		r.OnTransition(Transition{Kind: kind, State: s.Name(), Point: p})
	}
}

func (r *Router) begin(s EditState, p Point) {
	r.active = s
	r.phase = PhaseArmed
	s.Begin(p)
	r.emit(TransitionBegin, s, p)
	s.Update(p)
	r.emit(TransitionUpdate, s, p)
}

func (r *Router) finish(p Point) {
	s := r.active
	s.End(p)
	r.emit(TransitionEnd, s, p)
	r.active = nil
	r.phase = PhaseIdle
	r.Cursor = CursorDefault
}

func (r *Router) endLyricEdit() {
	if r.Lyric != nil {
		r.Lyric.EndEdit()
	}
}

// PointerPressed handles a button press. It reports whether an edit state
// started or a context menu opened.
func (r *Router) PointerPressed(canvas Canvas, button MouseButton, mods Modifiers, p Point) bool {
	r.endLyricEdit()
	if r.VM.Part == nil {
		return false
	}
	r.CloseMenu()
	if canvas == CanvasKeyboard {
		if r.keyboard != nil || button != ButtonLeft {
			return false
		}
		r.keyboard = NewKeyboardPlayState(r.VM, r.Preview)
		r.keyboard.Begin(p)
		r.emit(TransitionBegin, r.keyboard, p)
		r.keyboard.Update(p)
		r.emit(TransitionUpdate, r.keyboard, p)
		return true
	}
	if r.active != nil {
		return false
	}
	r.Tip.SetPointer(p)
	var s EditState
	switch canvas {
	case CanvasNotes:
		switch button {
		case ButtonLeft:
			s = r.notesLeft(mods, p)
		case ButtonRight:
			s = r.notesRight(p)
		case ButtonMiddle:
			s = NewNotePanningState(r.VM)
			r.Cursor = CursorHand
		}
	case CanvasExpressions:
		switch button {
		case ButtonLeft:
			s = NewExpSetValueState(r.VM, r.Tip)
		case ButtonRight:
			s = NewExpResetValueState(r.VM)
			r.Cursor = CursorNo
		}
	case CanvasPhonemes:
		switch button {
		case ButtonLeft:
			s = r.phonemesLeft(mods, p)
		case ButtonRight:
			s = NewPhonemeResetState(r.VM)
			r.Cursor = CursorNo
		}
	}
	if s == nil {
		return r.Menu.IsOpen()
	}
	r.begin(s, p)
	return true
}

func (r *Router) notesLeft(mods Modifiers, p Point) EditState {
	vm := r.VM
	cmd := mods == r.Command
	if vm.Tool == ToolDrawPitch {
		vm.DeselectNotes()
		if cmd {
			return NewSmoothenPitchState(vm)
		}
		return NewDrawPitchState(vm, r.Tip)
	}
	if vm.Tool == ToolEraser {
		vm.DeselectNotes()
		r.Cursor = CursorNo
		return NewNoteEraseState(vm, ButtonLeft)
	}
	if pit := r.Hit.HitTestPitchPoint(p); pit.Note != nil {
		return NewPitchPointEditState(vm, r.Tip, pit.Note, pit.Index, pit.OnPoint, pit.X, pit.Y)
	}
	if vbr := r.Hit.HitTestVibrato(p); vbr.Hit {
		switch {
		case vbr.HitToggle:
			vm.ToggleVibrato(vbr.Note)
			return nil
		case vbr.HitStart:
			return NewVibratoChangeState(vm, r.Tip, vbr.Note, VibratoStart)
		case vbr.HitIn:
			return NewVibratoChangeState(vm, r.Tip, vbr.Note, VibratoIn)
		case vbr.HitOut:
			return NewVibratoChangeState(vm, r.Tip, vbr.Note, VibratoOut)
		case vbr.HitDepth:
			return NewVibratoChangeState(vm, r.Tip, vbr.Note, VibratoDepth)
		case vbr.HitPeriod:
			return NewVibratoChangeState(vm, r.Tip, vbr.Note, VibratoPeriod)
		case vbr.HitShift:
			return NewVibratoShiftState(vm, r.Tip, vbr.Note, vbr.Point, vbr.InitialShift)
		}
		return nil
	}
	if note := r.Hit.HitTestNote(p); note.HitBody {
		switch {
		case vm.Tool == ToolKnife:
			vm.DeselectNotes()
			return NewNoteSplitState(vm, r.Tip, note.Note)
		case note.HitResizeArea:
			r.Cursor = CursorSizeWE
			return NewNoteResizeState(vm, r.Tip, note.Note, mods == ModAlt)
		case cmd:
			vm.ToggleSelectNote(note.Note)
			return nil
		case mods == ModShift:
			vm.SelectNotesUntil(note.Note)
			return nil
		}
		r.Cursor = CursorSizeAll
		return NewNoteMoveState(vm, r.Tip, note.Note)
	}
	pen := vm.Tool == ToolPen || vm.Tool == ToolPenPlus
	if vm.Tool == ToolCursor || pen && cmd {
		switch {
		case mods == ModNone:
			vm.DeselectNotes()
			r.Cursor = CursorCross
			return NewNoteSelectionState(vm, false)
		case cmd:
			r.Cursor = CursorCross
			return NewNoteSelectionState(vm, true)
		}
		vm.DeselectNotes()
		return nil
	}
	if pen {
		vm.DeselectNotes()
		return NewNoteDrawState(vm, r.Tip, vm.PlayTone, r.Preview)
	}
	return nil
}

func (r *Router) notesRight(p Point) EditState {
	vm := r.VM
	previous := vm.Selection.List()
	vm.DeselectNotes()
	if vm.Tool == ToolDrawPitch {
		return NewResetPitchState(vm)
	}
	if vm.ShowPitch {
		if pit := r.Hit.HitTestPitchPoint(p); pit.Note != nil {
			r.Menu = ContextMenu{Items: PitchPointMenu(pit), At: p, Pitch: pit}
			return nil
		}
	}
	switch vm.Tool {
	case ToolCursor, ToolPen:
		if note := r.Hit.HitTestNote(p); note.HitBody {
			for _, n := range previous {
				if n == note.Note {
					vm.SelectNote(note.Note, false)
					break
				}
			}
		}
		if !vm.Selection.IsEmpty() {
			r.Menu = ContextMenu{Items: NoteMenu(), At: p}
		}
	case ToolEraser, ToolPenPlus:
		r.Cursor = CursorNo
		return NewNoteEraseState(vm, ButtonRight)
	}
	return nil
}

func (r *Router) phonemesLeft(mods Modifiers, p Point) EditState {
	vm := r.VM
	if mods == r.Command {
		if alias := r.Hit.HitTestAlias(p); alias.Hit {
			r.gotoOto(alias.Phoneme)
			return nil
		}
	}
	hit := r.Hit.HitTestPhoneme(p)
	if !hit.Hit {
		return nil
	}
	switch {
	case hit.HitPosition:
		return NewPhonemeMoveState(vm, r.Tip, hit.Phoneme)
	case hit.HitPreutter:
		return NewPhonemeChangePreutterState(vm, r.Tip, hit.Phoneme)
	case hit.HitOverlap:
		return NewPhonemeChangeOverlapState(vm, r.Tip, hit.Phoneme)
	}
	return nil
}

func (r *Router) gotoOto(ph *ustx.Phoneme) {
	singer := r.VM.Project.SingerOf(r.VM.Part)
	if r.Oto != nil {
		err := r.Oto.GotoOto(singer, ph.Oto)
		if err == nil {
			return
		}
		debug.Log("router", "oto editor: %v", err)
	}
	r.VM.Doc.ExecuteCmd(document.GotoOtoNotification{Singer: singer, Oto: ph.Oto})
}

// PointerMoved forwards the position to the active state, or picks a
// cursor for what lies under the pointer.
func (r *Router) PointerMoved(canvas Canvas, p Point) Cursor {
	r.Tip.SetPointer(p)
	if canvas == CanvasKeyboard {
		if r.keyboard != nil {
			r.keyboard.Update(p)
			r.emit(TransitionUpdate, r.keyboard, p)
		}
		return r.Cursor
	}
	if r.active != nil {
		r.phase = PhaseActive
		r.active.Update(p)
		r.emit(TransitionUpdate, r.active, p)
		return r.Cursor
	}
	if r.VM.Part == nil {
		return r.Cursor
	}
	r.Cursor = r.hoverCursor(canvas, p)
	return r.Cursor
}

func (r *Router) hoverCursor(canvas Canvas, p Point) Cursor {
	switch canvas {
	case CanvasNotes:
		if pit := r.Hit.HitTestPitchPoint(p); pit.Note != nil {
			return CursorHand
		}
		if vbr := r.Hit.HitTestVibrato(p); vbr.Hit {
			switch {
			case vbr.HitDepth:
				return CursorSizeNS
			case vbr.HitPeriod:
				return CursorSizeWE
			}
			return CursorHand
		}
		if note := r.Hit.HitTestNote(p); note.HitResizeArea {
			return CursorSizeWE
		}
	case CanvasPhonemes:
		if alias := r.Hit.HitTestAlias(p); alias.Hit {
			r.VM.MouseoverPhoneme(alias.Phoneme)
			return CursorDefault
		}
		r.VM.MouseoverPhoneme(nil)
		if ph := r.Hit.HitTestPhoneme(p); ph.Hit {
			return CursorSizeWE
		}
	}
	return CursorDefault
}

// PointerReleased ends the active state if button is the one that started it
func (r *Router) PointerReleased(canvas Canvas, button MouseButton, p Point) {
	if canvas == CanvasKeyboard {
		if r.keyboard == nil {
			return
		}
		s := r.keyboard
		r.keyboard = nil
		s.End(p)
		r.emit(TransitionEnd, s, p)
		return
	}
	if r.active == nil || r.active.Button() != button {
		return
	}
	r.active.Update(p)
	r.emit(TransitionUpdate, r.active, p)
	r.finish(p)
}

// DoubleTapped finishes any active state, then opens the lyric box for the
// note or phoneme under the pointer.
func (r *Router) DoubleTapped(canvas Canvas, p Point) {
	if r.active != nil {
		r.finish(p)
	}
	vm := r.VM
	if vm.Part == nil || r.Lyric == nil {
		return
	}
	switch canvas {
	case CanvasNotes:
		if hit := r.Hit.HitTestNote(p); hit.HitBody {
			r.Lyric.Show(vm.Part, hit.Note, nil, hit.Note.Lyric)
		}
	case CanvasPhonemes:
		if hit := r.Hit.HitTestAlias(p); hit.Hit {
			r.Lyric.Show(vm.Part, nil, hit.Phoneme, hit.Phoneme.Phoneme)
		}
	}
}

// Wheel scrolls with no modifier or shift, zooms tones with alt and ticks
// with the command modifier. size is the canvas size used to normalize p.
func (r *Router) Wheel(canvas Canvas, mods Modifiers, dx, dy float64, p Point, size Point) {
	r.endLyricEdit()
	vm := r.VM
	anchor := Point{}
	if size.X > 0 && size.Y > 0 {
		anchor = Point{X: p.X / size.X, Y: p.Y / size.Y}
	}
	switch {
	case mods == ModNone || mods == ModShift:
		vm.ScrollBy(-dx*vm.TickWidth*4, -dy*3)
	case mods == ModAlt:
		vm.OnYZoomed(anchor, 0.1*dy)
	case mods == r.Command:
		vm.OnXZoomed(anchor, 0.1*dy)
	}
	if r.active != nil {
		r.active.Update(p)
		r.emit(TransitionUpdate, r.active, p)
	}
}

// Cancel ends the active and keyboard states without a final update
func (r *Router) Cancel() {
	if r.active != nil {
		r.finish(Point{})
	}
	if r.keyboard != nil {
		s := r.keyboard
		r.keyboard = nil
		s.End(Point{})
		r.emit(TransitionEnd, s, Point{})
	}
}
