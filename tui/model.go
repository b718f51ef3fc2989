// Package tui is the terminal front end of the piano roll.
package tui

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/document"
	pr "go-pianoroll/pianoroll"
	"go-pianoroll/singers"
	"go-pianoroll/theme"
	"go-pianoroll/ustx"
	"go-pianoroll/widgets"
)

// Options wires a Model. Doc and Part are required.
type Options struct {
	Config    *config.Config
	Doc       *document.Manager
	Part      *ustx.VoicePart
	Theme     *theme.Theme
	Keys      *pr.KeyTable
	Preview   pr.TonePreview
	Transport pr.Transport
	Regen     *singers.Regenerator
	Oto       pr.OtoEditor
	Configs   <-chan ConfigMsg
}

type dragState struct {
	canvas pr.Canvas
	button pr.MouseButton
	active bool
}

type Model struct {
	cfg      *config.Config
	doc      *document.Manager
	vm       *pr.NotesViewModel
	play     *pr.PlaybackViewModel
	router   *pr.Router
	dispatch *pr.KeyDispatcher
	tip      *pr.ValueTip
	lyric    *lyricBox
	replace  *replaceDialog
	regen    *singers.Regenerator

	theme    *theme.Theme
	styles   styleSet
	help     help.Model
	keys     keyMap
	sections []widgets.KeySection
	showHelp bool

	menu      menuState
	menuPitch pr.PitchPointHit

	clicks     clickTracker
	drag       dragState
	lastButton pr.MouseButton
	command    pr.Modifiers
	now        func() time.Time

	notes   *notifier
	configs <-chan ConfigMsg
	regenCh <-chan singers.Progress
	busy    singers.BusyState

	ticking  bool
	lastTick time.Time
	tickFrac float64

	err      error
	status   string
	pending  []tea.Cmd
	width    int
	height   int
	quitting bool
}

func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	th := opts.Theme
	if th == nil {
		th = theme.New(nil)
	}

	vm := pr.NewNotesViewModel(opts.Doc, opts.Part)
	vm.TickWidth = float64(cfg.TickWidth)
	vm.IsSnapOn = cfg.Snap.Enabled
	vm.SnapDiv = cfg.Snap.Divisor

	command := platformModifier(cfg.PlatformCommand)
	tip := pr.NewValueTip(tipMargin(cfg.ValueTipMargin), float64(vm.ViewHeight))
	lyric := newLyricBox(opts.Doc)

	router := pr.NewRouter(vm, tip)
	router.Lyric = lyric
	router.Oto = opts.Oto
	router.Preview = opts.Preview
	router.Command = command

	play := pr.NewPlaybackViewModel(opts.Doc.Project(), opts.Part, opts.Transport)
	dispatch := pr.NewKeyDispatcher(vm, play, opts.Keys)
	dispatch.Lyric = lyric
	dispatch.Command = command

	m := &Model{
		cfg:      cfg,
		doc:      opts.Doc,
		vm:       vm,
		play:     play,
		router:   router,
		dispatch: dispatch,
		tip:      tip,
		lyric:    lyric,
		regen:    opts.Regen,
		theme:    th,
		styles:   newStyleSet(th),
		help:     help.New(),
		clicks:   newClickTracker(cfg.DoubleClickMs),
		command:  command,
		now:      time.Now,
		notes:    newNotifier(),
		configs:  opts.Configs,
	}
	dispatch.Host = modelHost{m}
	m.rebuildHelp()
	opts.Doc.AddSubscriber(m.notes)
	router.OnTransition = func(t pr.Transition) {
		debug.LogEvery(50, "tui", "%s %s %s", t.Kind, t.State, t.Point)
	}
	return m
}

func platformModifier(pc config.PlatformCommand) pr.Modifiers {
	if pc == config.CommandMeta {
		return pr.ModMeta
	}
	return pr.ModCtrl
}

// tipMargin converts the configured pixel margin to terminal rows
func tipMargin(px float64) float64 {
	return math.Max(1, math.Round(px/pr.DefaultValueTipMargin))
}

func (m *Model) rebuildHelp() {
	m.keys = newKeyMap(m.dispatch.Table, m.command)
	m.sections = helpSections(m.dispatch.Table, m.command)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForNotifications(m.notes.ch),
		ListenForConfig(m.configs),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		fitView(m.vm, msg.Width, msg.Height)
		m.tip.CanvasHeight = float64(m.vm.ViewHeight)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case NotificationMsg:
		m.handleNotification(msg.Notification)
		cmd = ListenForNotifications(m.notes.ch)

	case ConfigMsg:
		m.applyConfig(msg)
		cmd = ListenForConfig(m.configs)

	case RegenMsg:
		cmd = m.handleRegen(singers.Progress(msg))

	case playTickMsg:
		cmd = m.handlePlayTick(time.Time(msg))
	}
	return m, tea.Batch(cmd, m.drainPending(), m.ensureTicking())
}

func (m *Model) quit() tea.Cmd {
	m.router.Cancel()
	m.quitting = true
	return tea.Quit
}

func (m *Model) drainPending() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	cmds := m.pending
	m.pending = nil
	return tea.Batch(cmds...)
}

// --- keys

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.busy.Visible {
		return nil
	}
	if m.err != nil {
		m.err = nil
		return nil
	}
	if msg.Type == tea.KeyCtrlQ {
		return m.quit()
	}
	if m.lyric.IsVisible() {
		return m.lyric.Update(msg)
	}
	if m.replace != nil {
		done, err := m.replace.Update(msg, m.doc)
		if err != nil {
			m.err = err
		}
		if done {
			m.replace = nil
		}
		return nil
	}
	if m.menu.isOpen() {
		if action, ok := m.menu.handleKey(msg); ok {
			return m.runMenuAction(action)
		}
		return nil
	}
	if m.showHelp {
		if msg.Type == tea.KeyEsc || msg.String() == "?" {
			m.showHelp = false
		}
		return nil
	}

	name, mods := translateKey(msg, m.command)
	handled, err := m.dispatch.HandleKey(name, mods)
	if err != nil {
		m.err = err
		return nil
	}
	if handled {
		return nil
	}
	switch {
	case name == "?":
		m.showHelp = true
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	case msg.Type == tea.KeyEsc:
		m.router.Cancel()
	}
	return nil
}

// --- mouse

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.busy.Visible {
		return
	}
	l := newLayout(m.vm)
	if dx, dy, ok := wheelDelta(msg.Button); ok {
		if msg.Action != tea.MouseActionPress {
			return
		}
		canvas, p, in := l.canvasAt(msg.X, msg.Y)
		if !in {
			return
		}
		size := pr.Point{X: float64(l.gridW), Y: float64(l.gridH)}
		m.router.Wheel(canvas, platformMods(mouseModifiers(msg), m.command), dx, dy, p, size)
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.mousePress(l, msg)
	case tea.MouseActionMotion:
		m.mouseMotion(l, msg)
	case tea.MouseActionRelease:
		m.mouseRelease(l, msg)
	}
}

func (m *Model) mousePress(l layout, msg tea.MouseMsg) {
	if m.err != nil {
		m.err = nil
		return
	}
	if m.menu.isOpen() {
		if msg.X >= l.panelLeft() {
			// the menu box starts on the grid's first row, under its border
			if action, ok := m.menu.choose(msg.Y - l.gridTop - 1); ok {
				m.pending = append(m.pending, m.runMenuAction(action))
			}
			return
		}
		m.menu.close()
	}
	button := mouseButton(msg.Button)
	if button == pr.ButtonNone {
		return
	}
	if m.drag.active && (m.router.Active() != nil || m.drag.canvas == pr.CanvasKeyboard) {
		// a second button mid-drag; the state still waits for its own release
		return
	}
	canvas, p, ok := l.canvasAt(msg.X, msg.Y)
	if !ok {
		return
	}
	m.lastButton = button
	m.drag = dragState{canvas: canvas, button: button, active: true}
	m.router.PointerPressed(canvas, button, platformMods(mouseModifiers(msg), m.command), p)

	if button == pr.ButtonLeft {
		if m.clicks.press(msg.X, msg.Y, m.now()) {
			m.router.DoubleTapped(canvas, p)
		}
	} else {
		m.clicks.reset()
	}
	m.takeRouterMenu()
}

func (m *Model) mouseMotion(l layout, msg tea.MouseMsg) {
	if m.drag.active {
		m.router.PointerMoved(m.drag.canvas, l.pointIn(m.drag.canvas, msg.X, msg.Y))
		return
	}
	if canvas, p, ok := l.canvasAt(msg.X, msg.Y); ok {
		m.router.PointerMoved(canvas, p)
	}
}

func (m *Model) mouseRelease(l layout, msg tea.MouseMsg) {
	if !m.drag.active {
		return
	}
	button := mouseButton(msg.Button)
	if button == pr.ButtonNone {
		// X10 mouse reports do not say which button was released
		button = m.lastButton
	}
	m.router.PointerReleased(m.drag.canvas, button, l.pointIn(m.drag.canvas, msg.X, msg.Y))
	if m.router.Active() == nil {
		m.drag = dragState{}
	}
}

// takeRouterMenu moves a context menu opened by the router into the panel
func (m *Model) takeRouterMenu() {
	if !m.router.Menu.IsOpen() {
		return
	}
	m.menuPitch = m.router.Menu.Pitch
	m.menu.open(m.router.Menu.Items)
	m.router.CloseMenu()
}

// --- menus

func (m *Model) runMenuAction(action pr.MenuAction) tea.Cmd {
	if d, ok := parseSnapDiv(action); ok {
		m.vm.SnapDiv = d
		m.vm.IsSnapOn = true
		return nil
	}
	part := m.vm.Part
	selected := m.vm.Selection.List()
	switch action {
	case pr.MenuLyricsReplace:
		if len(selected) == 0 {
			m.status = "select notes"
			return nil
		}
		m.replace = newReplaceDialog(part, selected)
	case pr.MenuEditLyrics:
		m.lyric.ShowMany(part, selected)
	case pr.MenuNoteDefaults:
		v := ustx.DefaultVibrato()
		m.status = fmt.Sprintf("vibrato defaults: length %.0f%% period %.0fms depth %.0fc", v.Length, v.Period, v.Depth)
	case pr.MenuNotesRegenFrq:
		return m.startRegen(selected)
	default:
		if _, err := m.vm.RunMenuAction(action, m.menuPitch); err != nil {
			m.err = err
		}
	}
	return nil
}

// --- background work

func (m *Model) startRegen(notes []*ustx.Note) tea.Cmd {
	files := singers.FilesOf(notes)
	if len(files) == 0 {
		m.status = "no samples behind the selection"
		return nil
	}
	if m.regen == nil {
		m.err = fault.New("no frequency tool",
			fmsg.WithDesc("start regen", "No frequency tool is configured"),
			ftag.With("regen"))
		return nil
	}
	m.busy = singers.NewBusyState(len(files))
	m.regenCh = m.regen.Run(context.Background(), files)
	debug.Log("regen", "started %d files", len(files))
	return ListenForRegen(m.regenCh)
}

func (m *Model) handleRegen(p singers.Progress) tea.Cmd {
	m.busy = m.busy.Reduce(p)
	if !p.Finished {
		return ListenForRegen(m.regenCh)
	}
	m.regenCh = nil
	if p.Err != nil {
		m.err = p.Err
		return nil
	}
	m.status = fmt.Sprintf("regenerated %d files", p.Done)
	m.doc.ExecuteCmd(document.OtoChangedNotification{External: true})
	return nil
}

// --- playback

func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.play.Playing() {
		return nil
	}
	m.ticking = true
	m.lastTick = m.now()
	m.tickFrac = 0
	return playTick()
}

func (m *Model) handlePlayTick(t time.Time) tea.Cmd {
	if !m.play.Playing() {
		m.ticking = false
		return nil
	}
	elapsed := t.Sub(m.lastTick)
	m.lastTick = t
	m.tickFrac += m.vm.Project.MsToTick(float64(elapsed) / float64(time.Millisecond))
	whole := math.Floor(m.tickFrac)
	m.tickFrac -= whole
	m.play.Advance(int(whole))
	m.followPlayhead()
	if !m.play.Playing() {
		m.ticking = false
		return nil
	}
	return playTick()
}

// followPlayhead pages the view when the playhead leaves it
func (m *Model) followPlayhead() {
	if m.vm.Part == nil {
		return
	}
	tick := float64(m.play.PlayPosTick() - m.vm.Part.Position)
	if tick < m.vm.TickOffset || tick >= m.vm.TickOffset+m.vm.ViewportTicks() {
		m.vm.ScrollBy(tick-m.vm.TickOffset, 0)
	}
}

// --- notifications and config

func (m *Model) handleNotification(n any) {
	switch n := n.(type) {
	case document.FocusNoteNotification:
		if n.Part == m.vm.Part && n.Note != nil {
			m.vm.FocusNote(n.Note)
		}
	case document.ErrorMessageNotification:
		m.err = n.Err
	case document.GotoOtoNotification:
		if n.Oto != nil {
			m.status = fmt.Sprintf("oto %s: %s", n.Oto.Alias, n.Oto.File)
		}
	case document.SaveRequestNotification:
		m.status = "save requested"
	case document.OtoChangedNotification:
		if m.vm.Part != nil {
			m.vm.Project.ResolvePhonemes(m.vm.Part)
		}
	}
}

func (m *Model) applyConfig(msg ConfigMsg) {
	if msg.Err != nil {
		m.err = msg.Err
		return
	}
	if msg.Config == nil {
		return
	}
	cfg := msg.Config
	m.cfg = cfg
	m.vm.IsSnapOn = cfg.Snap.Enabled
	m.vm.SnapDiv = cfg.Snap.Divisor
	m.tip.Margin = tipMargin(cfg.ValueTipMargin)
	m.clicks = newClickTracker(cfg.DoubleClickMs)
	m.command = platformModifier(cfg.PlatformCommand)
	m.router.Command = m.command
	m.dispatch.Command = m.command
	m.rebuildHelp()
	m.status = "config reloaded"
	debug.Log("config", "reloaded: snap=%v/%d command=%s", cfg.Snap.Enabled, cfg.Snap.Divisor, cfg.PlatformCommand)
}

// modelHost opens the model's dialogs for the key dispatcher
type modelHost struct {
	m *Model
}

func (h modelHost) HideWindow() {
	h.m.pending = append(h.m.pending, tea.Suspend)
}

func (h modelHost) OpenSnapDivMenu() {
	h.m.menuPitch = pr.PitchPointHit{}
	h.m.menu.open(snapDivMenu())
}

func (h modelHost) EditLyrics() {
	h.m.lyric.ShowMany(h.m.vm.Part, h.m.vm.Selection.List())
}

// --- view

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(m.renderHeader())
	buf.WriteString("\n")
	if m.showHelp {
		buf.WriteString(widgets.RenderKeyHelpColumns(m.sections, max(m.width, 40)))
		return buf.String()
	}
	buf.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderBody(), " ", m.renderPanel()))
	buf.WriteString("\n")
	buf.WriteString(m.renderFooter())
	switch {
	case m.err != nil:
		buf.WriteString("\n")
		buf.WriteString(widgets.RenderError(m.err))
	case m.busy.Visible:
		buf.WriteString("\n")
		buf.WriteString(widgets.RenderBusy(m.busy.Text(), m.theme.Accent()))
	}
	return buf.String()
}
