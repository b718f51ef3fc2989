package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/document"
	pr "go-pianoroll/pianoroll"
	"go-pianoroll/singers"
	"go-pianoroll/ustx"
)

type modelFixture struct {
	m     *Model
	doc   *document.Manager
	part  *ustx.VoicePart
	clock time.Time
}

func newModelFixture(t *testing.T, opts Options) *modelFixture {
	t.Helper()
	project := ustx.NewDemoProject()
	f := &modelFixture{
		doc:   document.NewManager(project),
		part:  project.Parts[0],
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	opts.Doc = f.doc
	opts.Part = f.part
	f.m = New(opts)
	f.m.now = func() time.Time { return f.clock }
	return f
}

func (f *modelFixture) key(msg tea.KeyMsg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func (f *modelFixture) mouse(action tea.MouseAction, button tea.MouseButton, x, y int) {
	f.m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
}

func (f *modelFixture) click(button tea.MouseButton, x, y int) {
	f.mouse(tea.MouseActionPress, button, x, y)
	f.mouse(tea.MouseActionRelease, button, x, y)
	f.clock = f.clock.Add(time.Second)
}

// the first demo note, ka at C4, sits on grid row 12 across columns 0-7
const noteX, noteY = keyboardWidth + 4, headerRows + 12

func TestModelToolKeys(t *testing.T) {
	f := newModelFixture(t, Options{})
	f.key(runes("2"))
	if f.m.vm.Tool != pr.ToolPen {
		t.Errorf("tool = %s, want pen", f.m.vm.Tool)
	}
	f.key(runes("3"))
	if f.m.vm.Tool != pr.ToolEraser {
		t.Errorf("tool = %s, want eraser", f.m.vm.Tool)
	}
}

func TestModelHelpScreen(t *testing.T) {
	f := newModelFixture(t, Options{})
	f.key(runes("?"))
	if !f.m.showHelp {
		t.Fatalf("help not shown")
	}
	if view := f.m.View(); !strings.Contains(view, "Playback") || !strings.Contains(view, "play/pause") {
		t.Errorf("help view missing sections:\n%s", view)
	}
	f.key(runes("2"))
	if f.m.vm.Tool != pr.ToolCursor {
		t.Errorf("key reached the editor behind the help screen")
	}
	f.key(tea.KeyMsg{Type: tea.KeyEsc})
	if f.m.showHelp {
		t.Errorf("esc did not close help")
	}
}

func TestModelQuit(t *testing.T) {
	f := newModelFixture(t, Options{})
	if cmd := f.key(tea.KeyMsg{Type: tea.KeyCtrlQ}); cmd == nil {
		t.Errorf("no quit command")
	}
	if !f.m.quitting || f.m.View() != "" {
		t.Errorf("model not quitting")
	}
}

func TestModelCtrlCCopies(t *testing.T) {
	f := newModelFixture(t, Options{})
	f.click(tea.MouseButtonLeft, noteX, noteY)
	f.key(tea.KeyMsg{Type: tea.KeyCtrlC})
	if f.m.quitting {
		t.Errorf("ctrl+c quit while it was bound to copy")
	}
	if !f.m.vm.HasClipboard() {
		t.Errorf("ctrl+c did not copy")
	}
}

func TestModelClickSelects(t *testing.T) {
	f := newModelFixture(t, Options{})
	n := f.part.Notes[0]
	f.mouse(tea.MouseActionPress, tea.MouseButtonLeft, noteX, noteY)
	if s := f.m.router.Active(); s == nil || s.Name() != "note-move" {
		t.Fatalf("active = %v", s)
	}
	f.mouse(tea.MouseActionRelease, tea.MouseButtonLeft, noteX, noteY)
	if f.m.router.Active() != nil {
		t.Errorf("state still active after release")
	}
	if !f.m.vm.Selection.Contains(n) || f.m.vm.Selection.Count() != 1 {
		t.Errorf("selection = %v", f.m.vm.Selection.List())
	}
}

func TestModelDragMovesAndUndoes(t *testing.T) {
	f := newModelFixture(t, Options{})
	n := f.part.Notes[0]
	f.mouse(tea.MouseActionPress, tea.MouseButtonLeft, noteX, noteY)
	f.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, noteX+8, noteY)
	// X10 reports carry no button on release
	f.mouse(tea.MouseActionRelease, tea.MouseButtonNone, noteX+8, noteY)
	if n.Position != 480 || n.Tone != 60 {
		t.Fatalf("note at %d tone %d, want 480 tone 60", n.Position, n.Tone)
	}
	if f.m.router.Active() != nil {
		t.Errorf("drag not finished")
	}
	f.key(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if n.Position != 0 {
		t.Errorf("undo left note at %d", n.Position)
	}
}

func TestModelOtherButtonReleaseKeepsDrag(t *testing.T) {
	f := newModelFixture(t, Options{})
	n := f.part.Notes[0]
	f.mouse(tea.MouseActionPress, tea.MouseButtonLeft, noteX, noteY)
	state := f.m.router.Active()
	if state == nil {
		t.Fatalf("no state after left press")
	}

	f.mouse(tea.MouseActionPress, tea.MouseButtonRight, noteX, noteY)
	f.mouse(tea.MouseActionRelease, tea.MouseButtonRight, noteX, noteY)
	if f.m.router.Active() != state {
		t.Fatalf("right button replaced or ended the %s state", state.Name())
	}

	f.mouse(tea.MouseActionMotion, tea.MouseButtonLeft, noteX+8, noteY)
	f.mouse(tea.MouseActionRelease, tea.MouseButtonLeft, noteX+8, noteY)
	if f.m.router.Active() != nil {
		t.Fatalf("left release did not end %s", state.Name())
	}
	if n.Position != 480 {
		t.Errorf("note at %d, want 480", n.Position)
	}
	f.key(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if n.Position != 0 {
		t.Errorf("undo left note at %d", n.Position)
	}

	f.clock = f.clock.Add(time.Second)
	f.click(tea.MouseButtonLeft, noteX, noteY)
	if f.m.router.Active() != nil {
		t.Errorf("later click left a state active")
	}
}

func TestModelDoubleClickEditsLyric(t *testing.T) {
	f := newModelFixture(t, Options{})
	n := f.part.Notes[0]
	f.mouse(tea.MouseActionPress, tea.MouseButtonLeft, noteX, noteY)
	f.mouse(tea.MouseActionRelease, tea.MouseButtonLeft, noteX, noteY)
	f.clock = f.clock.Add(100 * time.Millisecond)
	f.mouse(tea.MouseActionPress, tea.MouseButtonLeft, noteX, noteY)
	f.mouse(tea.MouseActionRelease, tea.MouseButtonLeft, noteX, noteY)
	if !f.m.lyric.IsVisible() {
		t.Fatalf("lyric box not open after double click")
	}
	if !strings.Contains(f.m.View(), "lyric:") {
		t.Errorf("footer does not show the lyric box")
	}
	f.key(runes("n"))
	f.key(runes("2"))
	if f.m.vm.Tool != pr.ToolCursor {
		t.Errorf("typing reached the key table")
	}
	f.key(tea.KeyMsg{Type: tea.KeyEnter})
	if n.Lyric != "kan2" {
		t.Errorf("lyric = %q, want kan2", n.Lyric)
	}
}

func TestModelContextMenu(t *testing.T) {
	f := newModelFixture(t, Options{})
	f.click(tea.MouseButtonLeft, noteX, noteY)
	f.mouse(tea.MouseActionPress, tea.MouseButtonRight, noteX, noteY)
	if !f.m.menu.isOpen() {
		t.Fatalf("menu not open")
	}
	if view := f.m.View(); !strings.Contains(view, "Copy") {
		t.Errorf("panel does not show the menu:\n%s", view)
	}
	f.key(tea.KeyMsg{Type: tea.KeyDown})
	f.key(tea.KeyMsg{Type: tea.KeyEnter})
	if f.m.menu.isOpen() {
		t.Errorf("menu open after choosing delete")
	}
	if len(f.part.Notes) != 7 {
		t.Errorf("%d notes after delete, want 7", len(f.part.Notes))
	}
}

func TestModelSnapDivMenu(t *testing.T) {
	f := newModelFixture(t, Options{})
	modelHost{f.m}.OpenSnapDivMenu()
	if !f.m.menu.isOpen() {
		t.Fatalf("snap menu not open")
	}
	l := newLayout(f.m.vm)
	// entries start one row under the panel border
	f.mouse(tea.MouseActionPress, tea.MouseButtonLeft, l.panelLeft()+2, l.gridTop+1+5)
	if f.m.vm.SnapDiv != 8 || !f.m.vm.IsSnapOn {
		t.Errorf("snap = %v 1/%d, want on 1/8", f.m.vm.IsSnapOn, f.m.vm.SnapDiv)
	}
	if f.m.menu.isOpen() {
		t.Errorf("menu open after choosing")
	}
}

func TestModelWheelScrolls(t *testing.T) {
	f := newModelFixture(t, Options{})
	before := f.m.vm.TrackOffset
	f.mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, noteX, noteY)
	if f.m.vm.TrackOffset != before+3 {
		t.Errorf("track offset = %v, want %v", f.m.vm.TrackOffset, before+3)
	}
}

func TestModelErrorDialog(t *testing.T) {
	f := newModelFixture(t, Options{})
	f.m.Update(NotificationMsg{Notification: document.ErrorMessageNotification{Err: errors.New("render failed")}})
	if view := f.m.View(); !strings.Contains(view, "ERROR: render failed") {
		t.Errorf("error dialog missing:\n%s", view)
	}
	f.key(runes("2"))
	if f.m.err != nil {
		t.Errorf("key did not dismiss the error")
	}
	if f.m.vm.Tool != pr.ToolCursor {
		t.Errorf("dismissing key reached the editor")
	}
}

func TestModelConfigReload(t *testing.T) {
	f := newModelFixture(t, Options{})
	cfg := config.DefaultConfig()
	cfg.Snap.Enabled = false
	cfg.Snap.Divisor = 16
	cfg.PlatformCommand = config.CommandMeta
	f.m.Update(ConfigMsg{Config: cfg})
	if f.m.vm.IsSnapOn || f.m.vm.SnapDiv != 16 {
		t.Errorf("snap = %v 1/%d", f.m.vm.IsSnapOn, f.m.vm.SnapDiv)
	}
	if f.m.router.Command != pr.ModMeta || f.m.dispatch.Command != pr.ModMeta {
		t.Errorf("command modifier not updated")
	}
	f.m.Update(ConfigMsg{Err: errors.New("bad toml")})
	if f.m.err == nil {
		t.Errorf("config error not shown")
	}
}

func TestModelRegenerate(t *testing.T) {
	var calls int
	gen := singers.GeneratorFunc(func(ctx context.Context, wav string) error {
		calls++
		return nil
	})
	f := newModelFixture(t, Options{Regen: singers.NewRegenerator(gen, 1)})
	f.m.vm.Selection.Set(f.part.Notes[0], f.part.Notes[1])

	cmd := f.m.runMenuAction(pr.MenuNotesRegenFrq)
	if !f.m.busy.Visible {
		t.Errorf("busy dialog not shown")
	}
	for cmd != nil {
		msg, ok := cmd().(RegenMsg)
		if !ok {
			break
		}
		cmd = f.m.handleRegen(singers.Progress(msg))
	}
	if calls != 2 {
		t.Errorf("generator ran %d times, want 2", calls)
	}
	if f.m.busy.Visible || !strings.HasPrefix(f.m.status, "regenerated") {
		t.Errorf("busy=%v status=%q", f.m.busy.Visible, f.m.status)
	}
	select {
	case n := <-f.m.notes.ch:
		if _, ok := n.(document.OtoChangedNotification); !ok {
			t.Errorf("notification = %T", n)
		}
	default:
		t.Errorf("no oto change published")
	}
}

func TestModelRegenerateWithoutTool(t *testing.T) {
	f := newModelFixture(t, Options{})
	f.m.vm.Selection.Set(f.part.Notes[0])
	if cmd := f.m.runMenuAction(pr.MenuNotesRegenFrq); cmd != nil {
		t.Errorf("regen started without a tool")
	}
	if f.m.err == nil {
		t.Errorf("missing tool not reported")
	}
}

func TestModelRendersNotes(t *testing.T) {
	f := newModelFixture(t, Options{})
	view := f.m.View()
	for _, want := range []string{"ka", "sa", "C4", "cursor"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
