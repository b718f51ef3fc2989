package pianoroll

import (
	"fmt"
	"testing"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

type fakeHits struct {
	note    NoteHit
	pitch   PitchPointHit
	vibrato VibratoHit
	phoneme PhonemeHit
	alias   AliasHit
}

func (f *fakeHits) HitTestNote(Point) NoteHit             { return f.note }
func (f *fakeHits) HitTestPitchPoint(Point) PitchPointHit { return f.pitch }
func (f *fakeHits) HitTestVibrato(Point) VibratoHit       { return f.vibrato }
func (f *fakeHits) HitTestPhoneme(Point) PhonemeHit       { return f.phoneme }
func (f *fakeHits) HitTestAlias(Point) AliasHit           { return f.alias }

type fakeLyricBox struct {
	log     *[]string
	visible bool
}

func (b *fakeLyricBox) Show(part *ustx.VoicePart, note *ustx.Note, ph *ustx.Phoneme, text string) {
	*b.log = append(*b.log, "show "+text)
	b.visible = true
}

func (b *fakeLyricBox) EndEdit()        { b.visible = false }
func (b *fakeLyricBox) IsVisible() bool { return b.visible }

type recorder struct {
	cmds []any
}

func (r *recorder) OnNext(cmd any, isUndo bool) { r.cmds = append(r.cmds, cmd) }

type routerFixture struct {
	r    *Router
	vm   *NotesViewModel
	hits *fakeHits
	log  []string
	sub  *recorder
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	project := ustx.NewDemoProject()
	doc := document.NewManager(project)
	f := &routerFixture{hits: &fakeHits{}, sub: &recorder{}}
	doc.AddSubscriber(f.sub)
	f.vm = NewNotesViewModel(doc, project.Parts[0])
	f.vm.HitTest = f.hits
	f.r = NewRouter(f.vm, NewValueTip(DefaultValueTipMargin, 24))
	f.r.Lyric = &fakeLyricBox{log: &f.log}
	f.r.OnTransition = func(tr Transition) {
		f.log = append(f.log, fmt.Sprintf("%s %s", tr.Kind, tr.State))
	}
	return f
}

func (f *routerFixture) note(i int) *ustx.Note {
	return f.vm.Part.Notes[i]
}

// far from every demo note
var emptySpot = Point{X: 60, Y: 0}

func TestRouterEmptySpaceSelection(t *testing.T) {
	tests := []struct {
		name      string
		tool      Tool
		mods      Modifiers
		wantState string
		wantKept  bool
	}{
		{"cursor no modifier", ToolCursor, ModNone, "note-selection", false},
		{"cursor with command", ToolCursor, ModCtrl, "note-selection", true},
		{"pen with command", ToolPen, ModCtrl, "note-selection", true},
		{"pen plus with command", ToolPenPlus, ModCtrl, "note-selection", true},
		{"pen no modifier draws", ToolPen, ModNone, "note-draw", false},
		{"cursor with alt deselects", ToolCursor, ModAlt, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.vm.Tool = tt.tool
			pre := f.note(0)
			f.vm.SelectNote(pre, true)

			started := f.r.PointerPressed(CanvasNotes, ButtonLeft, tt.mods, emptySpot)

			if tt.wantState == "" {
				if started || f.r.Active() != nil {
					t.Fatalf("expected no state, got %v", f.r.Active())
				}
			} else {
				if !started || f.r.Active() == nil {
					t.Fatalf("expected %s state, got none", tt.wantState)
				}
				if got := f.r.Active().Name(); got != tt.wantState {
					t.Errorf("state = %s, want %s", got, tt.wantState)
				}
			}
			if got := f.vm.Selection.Contains(pre); got != tt.wantKept {
				t.Errorf("previous selection kept = %v, want %v", got, tt.wantKept)
			}
		})
	}
}

func TestRouterBeginThenUpdateOnPress(t *testing.T) {
	f := newRouterFixture(t)
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, emptySpot)
	want := []string{"begin note-selection", "update note-selection"}
	if len(f.log) != len(want) {
		t.Fatalf("log = %v, want %v", f.log, want)
	}
	for i := range want {
		if f.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, f.log[i], want[i])
		}
	}
	if f.r.Phase() != PhaseArmed {
		t.Errorf("phase = %s, want armed", f.r.Phase())
	}
}

func TestRouterGestureOrdering(t *testing.T) {
	f := newRouterFixture(t)
	n := f.note(2)
	f.hits.note = NoteHit{HitBody: true, Note: n}
	p := Point{X: 16.5, Y: f.vm.ToneToY(float64(n.Tone))}

	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, p)
	f.r.PointerMoved(CanvasNotes, Point{X: p.X + 1, Y: p.Y})
	if f.r.Phase() != PhaseActive {
		t.Errorf("phase after move = %s, want active", f.r.Phase())
	}
	f.r.PointerReleased(CanvasNotes, ButtonLeft, Point{X: p.X + 1, Y: p.Y})
	f.r.PointerMoved(CanvasNotes, p)

	want := []string{
		"begin note-move",
		"update note-move",
		"update note-move",
		"update note-move",
		"end note-move",
	}
	if len(f.log) != len(want) {
		t.Fatalf("log = %v, want %v", f.log, want)
	}
	for i := range want {
		if f.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, f.log[i], want[i])
		}
	}
	if f.r.Active() != nil || f.r.Phase() != PhaseIdle {
		t.Errorf("router not idle after release")
	}
	if f.r.Cursor != CursorDefault {
		t.Errorf("cursor = %s, want default", f.r.Cursor)
	}
}

func TestRouterReleaseWithOtherButtonIsIgnored(t *testing.T) {
	f := newRouterFixture(t)
	n := f.note(1)
	f.hits.note = NoteHit{HitBody: true, Note: n}
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, Point{X: 8.5, Y: f.vm.ToneToY(float64(n.Tone))})
	before := f.r.Active()
	if before == nil {
		t.Fatal("no state after press")
	}

	f.r.PointerReleased(CanvasNotes, ButtonRight, Point{X: 9})
	f.r.PointerReleased(CanvasNotes, ButtonMiddle, Point{X: 9})
	if f.r.Active() != before {
		t.Fatalf("state replaced or cleared by a foreign release")
	}

	f.r.PointerReleased(CanvasNotes, ButtonLeft, Point{X: 9})
	if f.r.Active() != nil {
		t.Fatalf("state still active after matching release")
	}
}

func TestRouterPressWhileActiveIsNoop(t *testing.T) {
	f := newRouterFixture(t)
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, emptySpot)
	first := f.r.Active()

	f.hits.note = NoteHit{HitBody: true, Note: f.note(0)}
	for _, b := range []MouseButton{ButtonLeft, ButtonRight, ButtonMiddle} {
		if f.r.PointerPressed(CanvasNotes, b, ModNone, emptySpot) {
			t.Errorf("%s press started something while a state was active", b)
		}
		if f.r.PointerPressed(CanvasExpressions, b, ModNone, emptySpot) {
			t.Errorf("%s press on expressions started something while a state was active", b)
		}
	}
	if f.r.Active() != first {
		t.Errorf("active state changed")
	}
}

func TestRouterVibratoToggleIsImmediate(t *testing.T) {
	f := newRouterFixture(t)
	n := f.note(3)
	f.hits.vibrato = VibratoHit{Hit: true, HitToggle: true, Note: n}
	was := n.Vibrato.Enabled

	if f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, Point{X: 30}) {
		t.Errorf("toggle reported a state")
	}
	if f.r.Active() != nil || f.r.Phase() != PhaseIdle {
		t.Fatalf("router not idle after toggle")
	}
	if n.Vibrato.Enabled == was {
		t.Errorf("vibrato not toggled")
	}
	if !f.vm.Doc.CanUndo() {
		t.Errorf("toggle not recorded for undo")
	}
	if len(f.log) != 0 {
		t.Errorf("unexpected transitions %v", f.log)
	}

	f.hits.vibrato = VibratoHit{}
	if !f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, emptySpot) {
		t.Errorf("next press did not start a state")
	}
}

func TestRouterLeftPriority(t *testing.T) {
	type setup func(f *routerFixture)
	withNote := func(f *routerFixture) { f.hits.note = NoteHit{HitBody: true, Note: f.note(0)} }
	withResize := func(f *routerFixture) {
		f.hits.note = NoteHit{HitBody: true, HitResizeArea: true, Note: f.note(0)}
	}
	withPitch := func(f *routerFixture) {
		withNote(f)
		f.hits.pitch = PitchPointHit{Note: f.note(0), Index: 1, OnPoint: true}
	}
	withVibrato := func(hit VibratoHit) setup {
		return func(f *routerFixture) {
			withNote(f)
			hit.Hit = true
			hit.Note = f.note(0)
			f.hits.vibrato = hit
		}
	}
	tests := []struct {
		name   string
		tool   Tool
		mods   Modifiers
		setup  setup
		want   string
		cursor Cursor
	}{
		{"draw pitch beats hits", ToolDrawPitch, ModNone, withPitch, "draw-pitch", CursorDefault},
		{"smoothen with command", ToolDrawPitch, ModCtrl, withNote, "smoothen-pitch", CursorDefault},
		{"eraser beats hits", ToolEraser, ModNone, withPitch, "note-erase", CursorNo},
		{"pitch point beats note", ToolCursor, ModNone, withPitch, "pitch-point-edit", CursorDefault},
		{"vibrato start", ToolCursor, ModNone, withVibrato(VibratoHit{HitStart: true}), "vibrato-change-start", CursorDefault},
		{"vibrato in", ToolCursor, ModNone, withVibrato(VibratoHit{HitIn: true}), "vibrato-change-in", CursorDefault},
		{"vibrato out", ToolCursor, ModNone, withVibrato(VibratoHit{HitOut: true}), "vibrato-change-out", CursorDefault},
		{"vibrato depth", ToolCursor, ModNone, withVibrato(VibratoHit{HitDepth: true}), "vibrato-change-depth", CursorDefault},
		{"vibrato period", ToolCursor, ModNone, withVibrato(VibratoHit{HitPeriod: true}), "vibrato-change-period", CursorDefault},
		{"vibrato shift", ToolCursor, ModNone, withVibrato(VibratoHit{HitShift: true}), "vibrato-change-shift", CursorDefault},
		{"vibrato body only", ToolCursor, ModNone, withVibrato(VibratoHit{}), "", CursorDefault},
		{"knife splits", ToolKnife, ModNone, withResize, "note-split", CursorDefault},
		{"resize area", ToolCursor, ModNone, withResize, "note-resize", CursorSizeWE},
		{"resize area with alt", ToolPen, ModAlt, withResize, "note-resize", CursorSizeWE},
		{"note body moves", ToolPen, ModNone, withNote, "note-move", CursorSizeAll},
		{"note with command toggles", ToolCursor, ModCtrl, withNote, "", CursorDefault},
		{"note with shift extends", ToolCursor, ModShift, withNote, "", CursorDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			f.vm.Tool = tt.tool
			tt.setup(f)
			f.r.PointerPressed(CanvasNotes, ButtonLeft, tt.mods, Point{X: 2, Y: 12})
			got := ""
			if f.r.Active() != nil {
				got = f.r.Active().Name()
			}
			if got != tt.want {
				t.Errorf("state = %q, want %q", got, tt.want)
			}
			if f.r.Cursor != tt.cursor {
				t.Errorf("cursor = %s, want %s", f.r.Cursor, tt.cursor)
			}
		})
	}
}

func TestRouterCommandClickTogglesSelection(t *testing.T) {
	f := newRouterFixture(t)
	n := f.note(4)
	f.hits.note = NoteHit{HitBody: true, Note: n}
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModCtrl, Point{})
	if !f.vm.Selection.Contains(n) {
		t.Fatalf("note not selected")
	}
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModCtrl, Point{})
	if f.vm.Selection.Contains(n) {
		t.Fatalf("note not deselected")
	}
}

func TestRouterShiftClickSelectsRange(t *testing.T) {
	f := newRouterFixture(t)
	f.vm.SelectNote(f.note(1), true)
	f.hits.note = NoteHit{HitBody: true, Note: f.note(4)}
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModShift, Point{})
	if got := f.vm.Selection.Count(); got != 4 {
		t.Errorf("selected %d notes, want 4", got)
	}
	if f.vm.Selection.Head != f.note(1) {
		t.Errorf("head moved")
	}
}

func TestRouterRightButton(t *testing.T) {
	t.Run("note menu keeps the clicked selected note", func(t *testing.T) {
		f := newRouterFixture(t)
		f.vm.Selection.Set(f.note(0), f.note(1))
		f.hits.note = NoteHit{HitBody: true, Note: f.note(1)}
		if !f.r.PointerPressed(CanvasNotes, ButtonRight, ModNone, Point{}) {
			t.Fatalf("menu did not open")
		}
		if f.r.Active() != nil {
			t.Errorf("right click started %s", f.r.Active().Name())
		}
		if f.vm.Selection.Count() != 1 || !f.vm.Selection.Contains(f.note(1)) {
			t.Errorf("selection = %v", f.vm.Selection.List())
		}
		if items := f.r.ContextMenu(); len(items) != 6 || items[0].Action != MenuNoteCopy {
			t.Errorf("menu = %+v", items)
		}
	})
	t.Run("unselected note opens nothing", func(t *testing.T) {
		f := newRouterFixture(t)
		f.vm.Selection.Set(f.note(0))
		f.hits.note = NoteHit{HitBody: true, Note: f.note(3)}
		if f.r.PointerPressed(CanvasNotes, ButtonRight, ModNone, Point{}) {
			t.Errorf("menu opened with empty selection")
		}
		if !f.vm.Selection.IsEmpty() {
			t.Errorf("selection not cleared")
		}
	})
	t.Run("pitch menu", func(t *testing.T) {
		f := newRouterFixture(t)
		f.hits.pitch = PitchPointHit{Note: f.note(0), Index: 0, OnPoint: true}
		f.r.PointerPressed(CanvasNotes, ButtonRight, ModNone, Point{})
		items := f.r.ContextMenu()
		if len(items) != 5 || items[4].Action != MenuPitchSnapToPrevious {
			t.Errorf("menu = %+v", items)
		}
	})
	t.Run("eraser erases with right button", func(t *testing.T) {
		f := newRouterFixture(t)
		f.vm.Tool = ToolPenPlus
		f.r.PointerPressed(CanvasNotes, ButtonRight, ModNone, emptySpot)
		s := f.r.Active()
		if s == nil || s.Name() != "note-erase" || s.Button() != ButtonRight {
			t.Fatalf("state = %v", s)
		}
		f.r.PointerReleased(CanvasNotes, ButtonLeft, emptySpot)
		if f.r.Active() == nil {
			t.Errorf("left release ended a right-button erase")
		}
		f.r.PointerReleased(CanvasNotes, ButtonRight, emptySpot)
		if f.r.Active() != nil {
			t.Errorf("right release did not end erase")
		}
	})
	t.Run("draw pitch resets", func(t *testing.T) {
		f := newRouterFixture(t)
		f.vm.Tool = ToolDrawPitch
		f.r.PointerPressed(CanvasNotes, ButtonRight, ModNone, emptySpot)
		if s := f.r.Active(); s == nil || s.Name() != "reset-pitch" {
			t.Errorf("state = %v", s)
		}
	})
}

func TestRouterMiddleButtonPans(t *testing.T) {
	f := newRouterFixture(t)
	f.vm.TickOffset = 480
	f.r.PointerPressed(CanvasNotes, ButtonMiddle, ModNone, Point{X: 10, Y: 10})
	if s := f.r.Active(); s == nil || s.Name() != "note-panning" {
		t.Fatalf("state = %v", s)
	}
	f.r.PointerMoved(CanvasNotes, Point{X: 12, Y: 10})
	if f.vm.TickOffset != 480-2*f.vm.TickWidth {
		t.Errorf("tick offset = %v", f.vm.TickOffset)
	}
}

func TestRouterDoubleTapEndsStateFirst(t *testing.T) {
	f := newRouterFixture(t)
	n := f.note(0)
	f.hits.note = NoteHit{HitBody: true, Note: n}
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, Point{})
	f.log = nil

	f.r.DoubleTapped(CanvasNotes, Point{})

	want := []string{"end note-move", "show " + n.Lyric}
	if len(f.log) != len(want) {
		t.Fatalf("log = %v, want %v", f.log, want)
	}
	for i := range want {
		if f.log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, f.log[i], want[i])
		}
	}
	if f.r.Active() != nil {
		t.Errorf("state survived double tap")
	}
}

func TestRouterDoubleTapAlias(t *testing.T) {
	f := newRouterFixture(t)
	ph := f.note(2).Phonemes[0]
	f.hits.alias = AliasHit{Hit: true, Phoneme: ph}
	f.r.DoubleTapped(CanvasPhonemes, Point{})
	if len(f.log) != 1 || f.log[0] != "show "+ph.Phoneme {
		t.Errorf("log = %v", f.log)
	}
}

func TestRouterIgnoresInputWithoutPart(t *testing.T) {
	f := newRouterFixture(t)
	f.vm.Part = nil
	for _, c := range []Canvas{CanvasNotes, CanvasExpressions, CanvasPhonemes, CanvasKeyboard} {
		if f.r.PointerPressed(c, ButtonLeft, ModNone, emptySpot) {
			t.Errorf("%s press handled without a part", c)
		}
	}
	if f.r.Active() != nil {
		t.Errorf("state created without a part")
	}
}

func TestRouterHoverCursor(t *testing.T) {
	tests := []struct {
		name string
		hits fakeHits
		want Cursor
	}{
		{"nothing", fakeHits{}, CursorDefault},
		{"pitch", fakeHits{pitch: PitchPointHit{Note: &ustx.Note{}}}, CursorHand},
		{"vibrato depth", fakeHits{vibrato: VibratoHit{Hit: true, HitDepth: true}}, CursorSizeNS},
		{"vibrato period", fakeHits{vibrato: VibratoHit{Hit: true, HitPeriod: true}}, CursorSizeWE},
		{"vibrato other", fakeHits{vibrato: VibratoHit{Hit: true, HitIn: true}}, CursorHand},
		{"resize", fakeHits{note: NoteHit{HitBody: true, HitResizeArea: true}}, CursorSizeWE},
		{"note body", fakeHits{note: NoteHit{HitBody: true}}, CursorDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t)
			*f.hits = tt.hits
			if got := f.r.PointerMoved(CanvasNotes, Point{}); got != tt.want {
				t.Errorf("cursor = %s, want %s", got, tt.want)
			}
			if f.r.Active() != nil {
				t.Errorf("hover created a state")
			}
		})
	}
}

func TestRouterExpressionCanvas(t *testing.T) {
	f := newRouterFixture(t)
	f.r.PointerPressed(CanvasExpressions, ButtonLeft, ModNone, Point{X: 0.5, Y: 0})
	if s := f.r.Active(); s == nil || s.Name() != "exp-set-value" {
		t.Fatalf("state = %v", s)
	}
	if got := f.note(0).Expressions["vel"]; got != 200 {
		t.Errorf("vel = %v, want 200", got)
	}
	f.r.PointerReleased(CanvasExpressions, ButtonLeft, Point{X: 0.5, Y: 0})

	f.r.PointerPressed(CanvasExpressions, ButtonRight, ModNone, Point{X: 0.5, Y: 0})
	if s := f.r.Active(); s == nil || s.Name() != "exp-reset-value" {
		t.Fatalf("state = %v", s)
	}
	if f.r.Cursor != CursorNo {
		t.Errorf("cursor = %s", f.r.Cursor)
	}
	if _, ok := f.note(0).Expressions["vel"]; ok {
		t.Errorf("vel not reset")
	}
}

func TestRouterPhonemeCanvas(t *testing.T) {
	t.Run("command click on alias sends goto oto", func(t *testing.T) {
		f := newRouterFixture(t)
		ph := f.note(0).Phonemes[0]
		f.hits.alias = AliasHit{Hit: true, Phoneme: ph}
		f.hits.phoneme = PhonemeHit{Hit: true, HitPosition: true, Phoneme: ph}
		f.r.PointerPressed(CanvasPhonemes, ButtonLeft, ModCtrl, Point{})
		if f.r.Active() != nil {
			t.Fatalf("state created: %s", f.r.Active().Name())
		}
		if len(f.sub.cmds) != 1 {
			t.Fatalf("published %v", f.sub.cmds)
		}
		n, ok := f.sub.cmds[0].(document.GotoOtoNotification)
		if !ok || n.Oto != ph.Oto {
			t.Errorf("published %#v", f.sub.cmds[0])
		}
	})
	for _, tt := range []struct {
		hit  PhonemeHit
		want string
	}{
		{PhonemeHit{Hit: true, HitPosition: true}, "phoneme-move"},
		{PhonemeHit{Hit: true, HitPreutter: true}, "phoneme-change-preutter"},
		{PhonemeHit{Hit: true, HitOverlap: true}, "phoneme-change-overlap"},
	} {
		t.Run(tt.want, func(t *testing.T) {
			f := newRouterFixture(t)
			tt.hit.Phoneme = f.note(0).Phonemes[0]
			f.hits.phoneme = tt.hit
			f.r.PointerPressed(CanvasPhonemes, ButtonLeft, ModNone, Point{})
			if s := f.r.Active(); s == nil || s.Name() != tt.want {
				t.Errorf("state = %v, want %s", s, tt.want)
			}
		})
	}
	t.Run("right click resets", func(t *testing.T) {
		f := newRouterFixture(t)
		f.r.PointerPressed(CanvasPhonemes, ButtonRight, ModNone, Point{})
		if s := f.r.Active(); s == nil || s.Name() != "phoneme-reset" {
			t.Errorf("state = %v", s)
		}
	})
}

type fakePreview struct {
	on []int
}

func (p *fakePreview) NoteOn(tone int)  { p.on = append(p.on, tone) }
func (p *fakePreview) NoteOff(tone int) {}

func TestRouterKeyboardSlotIsSeparate(t *testing.T) {
	f := newRouterFixture(t)
	preview := &fakePreview{}
	f.r.Preview = preview
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, emptySpot)
	if !f.r.PointerPressed(CanvasKeyboard, ButtonLeft, ModNone, Point{Y: 0}) {
		t.Fatalf("keyboard press ignored while notes state active")
	}
	if f.r.Active() == nil || f.r.Active().Name() != "note-selection" {
		t.Errorf("notes state disturbed")
	}
	f.r.PointerMoved(CanvasKeyboard, Point{Y: 1})
	f.r.PointerReleased(CanvasKeyboard, ButtonLeft, Point{Y: 1})
	if len(preview.on) != 2 || preview.on[0] != 72 || preview.on[1] != 71 {
		t.Errorf("tones = %v", preview.on)
	}
}

func TestRouterWheelUpdatesActiveState(t *testing.T) {
	f := newRouterFixture(t)
	f.r.PointerPressed(CanvasNotes, ButtonLeft, ModNone, emptySpot)
	f.log = nil
	f.r.Wheel(CanvasNotes, ModNone, 0, -1, emptySpot, Point{X: 64, Y: 24})
	if len(f.log) != 1 || f.log[0] != "update note-selection" {
		t.Errorf("log = %v", f.log)
	}
	before := f.vm.TickWidth
	f.r.Wheel(CanvasNotes, ModCtrl, 0, 1, emptySpot, Point{X: 64, Y: 24})
	if f.vm.TickWidth >= before {
		t.Errorf("command wheel did not zoom in: %v -> %v", before, f.vm.TickWidth)
	}
}
