package pianoroll

import (
	"math"

	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// Zoom limits in ticks per column
const (
	MinTickWidth = 5.0
	MaxTickWidth = 480.0
	MinTrackRows = 1
	MaxTrackRows = 3
)

// NotesViewModel is the state behind the piano-roll canvases
type NotesViewModel struct {
	Doc     *document.Manager
	Project *ustx.Project
	Part    *ustx.VoicePart

	Tool Tool

	ShowPitch      bool
	ShowVibrato    bool
	ShowFinalPitch bool
	ShowTips       bool
	ShowPhoneme    bool
	ShowNoteParams bool
	ShowWaveform   bool
	PlayTone       bool

	IsSnapOn bool
	SnapDiv  int

	// Geometry in terminal cells
	TickWidth   float64 // ticks per column
	TrackHeight int     // rows per tone
	TickOffset  float64 // tick at the left edge
	TrackOffset float64 // tone rows scrolled from the top
	ViewWidth   int
	ViewHeight  int

	// Expression lanes: PrimaryKey is edited on the expression canvas
	PrimaryKey    string
	SecondaryKey  string
	ExpSelectors  [5]string
	ExpHeight     int
	PhonemeHeight int

	Selection    *Selection
	SelectionBox *Rect
	Mouseover    *ustx.Phoneme

	HitTest HitTester

	clipboard []*ustx.Note
}

// NewNotesViewModel creates a view model editing part
func NewNotesViewModel(doc *document.Manager, part *ustx.VoicePart) *NotesViewModel {
	vm := &NotesViewModel{
		Doc:           doc,
		Project:       doc.Project(),
		Part:          part,
		Tool:          ToolCursor,
		ShowPitch:     true,
		ShowVibrato:   true,
		ShowPhoneme:   true,
		ShowTips:      true,
		IsSnapOn:      true,
		SnapDiv:       4,
		TickWidth:     60,
		TrackHeight:   1,
		ViewWidth:     64,
		ViewHeight:    24,
		PrimaryKey:    "vel",
		SecondaryKey:  "vol",
		ExpSelectors:  [5]string{"vel", "vol", "gen", "bre", "clr"},
		ExpHeight:     4,
		PhonemeHeight: 2,
		Selection:     NewSelection(),
	}
	vm.TrackOffset = float64(ustx.MaxTone-1-72) // C5 at the top
	vm.HitTest = NewHitTest(vm)
	return vm
}

// Resolution returns the project ticks per beat
func (vm *NotesViewModel) Resolution() int {
	if vm.Project == nil {
		return ustx.DefaultResolution
	}
	return vm.Project.Resolution
}

// SnapUnit is one snap grid step in ticks, regardless of IsSnapOn
func (vm *NotesViewModel) SnapUnit() int {
	return SnapUnit(vm.Resolution(), vm.SnapDiv)
}

// SnapTick floors tick to the grid when snapping is on
func (vm *NotesViewModel) SnapTick(tick float64) int {
	if !vm.IsSnapOn {
		return int(math.Round(tick))
	}
	unit := float64(vm.SnapUnit())
	return int(math.Floor(tick/unit) * unit)
}

// MinDrawDuration is the duration of a freshly drawn or inserted note
func (vm *NotesViewModel) MinDrawDuration() int {
	if vm.IsSnapOn {
		return vm.SnapUnit()
	}
	return document.MinDuration
}

// ViewportTicks is the number of ticks visible across the canvas
func (vm *NotesViewModel) ViewportTicks() float64 {
	return float64(vm.ViewWidth) * vm.TickWidth
}

// ViewportTracks is the number of tones visible down the canvas
func (vm *NotesViewModel) ViewportTracks() float64 {
	return float64(vm.ViewHeight) / float64(vm.TrackHeight)
}

// HScrollBarMax is the largest TickOffset
func (vm *NotesViewModel) HScrollBarMax() float64 {
	if vm.Part == nil {
		return 0
	}
	return math.Max(0, float64(vm.Part.Duration)-vm.ViewportTicks()/2)
}

// VScrollBarMax is the largest TrackOffset
func (vm *NotesViewModel) VScrollBarMax() float64 {
	return math.Max(0, float64(ustx.MaxTone)-vm.ViewportTracks())
}

// PointToTick converts a canvas x to a tick relative to the part
func (vm *NotesViewModel) PointToTick(p Point) float64 {
	return vm.TickOffset + p.X*vm.TickWidth
}

// PointToTone converts a canvas y to a tone
func (vm *NotesViewModel) PointToTone(p Point) int {
	row := vm.TrackOffset + math.Floor(p.Y)/float64(vm.TrackHeight)
	return ustx.MaxTone - 1 - int(math.Floor(row))
}

// PointToToneF is the fractional tone under y, centre of a row = integer tone
func (vm *NotesViewModel) PointToToneF(p Point) float64 {
	row := vm.TrackOffset + (p.Y-0.5*float64(vm.TrackHeight))/float64(vm.TrackHeight)
	return float64(ustx.MaxTone-1) - row
}

// TickToX converts a part-relative tick to a canvas x
func (vm *NotesViewModel) TickToX(tick float64) float64 {
	return (tick - vm.TickOffset) / vm.TickWidth
}

// ToneToY converts a tone to the top canvas row of that tone
func (vm *NotesViewModel) ToneToY(tone float64) float64 {
	return (float64(ustx.MaxTone-1) - tone - vm.TrackOffset) * float64(vm.TrackHeight)
}

// PointToLineTick returns the snapped grid ticks left and right of p
func (vm *NotesViewModel) PointToLineTick(p Point) (left, right int) {
	tick := vm.PointToTick(p)
	unit := float64(vm.SnapUnit())
	left = int(math.Floor(tick/unit) * unit)
	if left < 0 {
		left = 0
	}
	return left, left + int(unit)
}

// NotesAtTick returns notes overlapping tick
func (vm *NotesViewModel) NotesAtTick(tick float64) []*ustx.Note {
	if vm.Part == nil {
		return nil
	}
	var out []*ustx.Note
	for _, n := range vm.Part.Notes {
		if float64(n.Position) <= tick && tick < float64(n.End()) {
			out = append(out, n)
		}
	}
	return out
}

// --- tools and selection

// SelectTool switches tool by its command parameter
func (vm *NotesViewModel) SelectTool(key string) {
	if t, ok := ParseToolKey(key); ok {
		vm.Tool = t
		debug.Log("router", "tool %s", t)
	}
}

func (vm *NotesViewModel) DeselectNotes() {
	vm.Selection.Clear()
}

// SelectNote selects n, replacing the selection when deselectExisting
func (vm *NotesViewModel) SelectNote(n *ustx.Note, deselectExisting bool) {
	if deselectExisting {
		vm.Selection.Set(n)
		return
	}
	vm.Selection.Add(n)
}

func (vm *NotesViewModel) ToggleSelectNote(n *ustx.Note) {
	if vm.Selection.Contains(n) {
		vm.Selection.Remove(n)
		return
	}
	vm.Selection.Add(n)
}

// SelectNotesUntil extends the selection from Head to n, inclusive
func (vm *NotesViewModel) SelectNotesUntil(n *ustx.Note) {
	if vm.Part == nil || n == nil {
		return
	}
	head := vm.Selection.Head
	if head == nil {
		vm.Selection.Set(n)
		return
	}
	a, b := vm.Part.IndexOf(head), vm.Part.IndexOf(n)
	if a < 0 || b < 0 {
		vm.Selection.Set(n)
		return
	}
	if a > b {
		a, b = b, a
	}
	vm.Selection.Clear()
	vm.Selection.Add(head)
	for i := a; i <= b; i++ {
		vm.Selection.Add(vm.Part.Notes[i])
	}
}

func (vm *NotesViewModel) SelectAllNotes() {
	if vm.Part == nil {
		return
	}
	vm.Selection.Set(vm.Part.Notes...)
}

// MoveCursor selects the single note delta steps from Head
func (vm *NotesViewModel) MoveCursor(delta int) {
	if vm.Part == nil || len(vm.Part.Notes) == 0 {
		return
	}
	idx := 0
	if vm.Selection.Head != nil {
		idx = vm.Part.IndexOf(vm.Selection.Head) + delta
	}
	idx = clampInt(idx, 0, len(vm.Part.Notes)-1)
	vm.Selection.Set(vm.Part.Notes[idx])
}

// ExtendSelection grows the selection delta notes beyond its far edge, keeping Head
func (vm *NotesViewModel) ExtendSelection(delta int) {
	if vm.Part == nil || len(vm.Part.Notes) == 0 {
		return
	}
	if vm.Selection.IsEmpty() {
		vm.MoveCursor(0)
		return
	}
	var edge *ustx.Note
	if delta > 0 {
		edge = vm.Selection.Last()
	} else {
		edge = vm.Selection.First()
	}
	idx := clampInt(vm.Part.IndexOf(edge)+delta, 0, len(vm.Part.Notes)-1)
	vm.Selection.Add(vm.Part.Notes[idx])
}

// ExtendSelectionTo extends the selection to n (shift+home/end)
func (vm *NotesViewModel) ExtendSelectionTo(n *ustx.Note) {
	vm.SelectNotesUntil(n)
}

// --- document edits

func (vm *NotesViewModel) TransposeSelection(delta int) {
	if vm.Part == nil || vm.Selection.IsEmpty() {
		return
	}
	for _, n := range vm.Selection.List() {
		if n.Tone+delta < 0 || n.Tone+delta >= ustx.MaxTone {
			return
		}
	}
	vm.Doc.StartUndoGroup()
	for _, n := range vm.Selection.List() {
		vm.Doc.ExecuteCmd(&document.MoveNoteCommand{Part: vm.Part, Note: n, DeltaTone: delta})
	}
	vm.Doc.EndUndoGroup()
}

func (vm *NotesViewModel) MoveSelectedNotes(deltaTicks int) {
	if vm.Part == nil || vm.Selection.IsEmpty() {
		return
	}
	if first := vm.Selection.First(); first.Position+deltaTicks < 0 {
		deltaTicks = -first.Position
	}
	vm.Doc.StartUndoGroup()
	for _, n := range vm.Selection.List() {
		vm.Doc.ExecuteCmd(&document.MoveNoteCommand{Part: vm.Part, Note: n, DeltaPos: deltaTicks})
	}
	vm.Doc.EndUndoGroup()
}

func (vm *NotesViewModel) ResizeSelectedNotes(deltaTicks int) {
	if vm.Part == nil || vm.Selection.IsEmpty() {
		return
	}
	vm.Doc.StartUndoGroup()
	for _, n := range vm.Selection.List() {
		vm.Doc.ExecuteCmd(&document.ResizeNoteCommand{Part: vm.Part, Note: n, Delta: deltaTicks})
	}
	vm.Doc.EndUndoGroup()
}

func (vm *NotesViewModel) DeleteSelectedNotes() {
	if vm.Part == nil || vm.Selection.IsEmpty() {
		return
	}
	vm.Doc.StartUndoGroup()
	for _, n := range vm.Selection.List() {
		vm.Doc.ExecuteCmd(&document.RemoveNoteCommand{Part: vm.Part, Note: n})
	}
	vm.Doc.EndUndoGroup()
	vm.Selection.Clear()
}

// InsertNote adds a note at tick (part-relative) on the Head's tone
func (vm *NotesViewModel) InsertNote(tick int) *ustx.Note {
	if vm.Part == nil {
		return nil
	}
	tone := 60
	if vm.Selection.Head != nil {
		tone = vm.Selection.Head.Tone
	}
	n := ustx.NewNote(vm.SnapTick(float64(tick)), vm.MinDrawDuration(), tone, "a")
	vm.Doc.ExecuteCmd(&document.AddNoteCommand{Part: vm.Part, Note: n})
	vm.Project.ResolvePhonemes(vm.Part)
	vm.Selection.Set(n)
	return n
}

func (vm *NotesViewModel) CopyNotes() {
	vm.clipboard = nil
	for _, n := range vm.Selection.List() {
		vm.clipboard = append(vm.clipboard, n.Clone())
	}
}

func (vm *NotesViewModel) CutNotes() {
	vm.CopyNotes()
	vm.DeleteSelectedNotes()
}

// PasteNotes inserts the clipboard with its first note at tick
func (vm *NotesViewModel) PasteNotes(tick int) {
	if vm.Part == nil || len(vm.clipboard) == 0 {
		return
	}
	base := vm.clipboard[0].Position
	at := vm.SnapTick(float64(tick))
	var pasted []*ustx.Note
	vm.Doc.StartUndoGroup()
	for _, src := range vm.clipboard {
		n := src.Clone()
		n.Position = at + src.Position - base
		vm.Doc.ExecuteCmd(&document.AddNoteCommand{Part: vm.Part, Note: n})
		pasted = append(pasted, n)
	}
	vm.Doc.EndUndoGroup()
	vm.Project.ResolvePhonemes(vm.Part)
	vm.Selection.Set(pasted...)
}

// HasClipboard reports whether paste has anything to insert
func (vm *NotesViewModel) HasClipboard() bool {
	return len(vm.clipboard) > 0
}

// ToggleVibrato flips the vibrato of n as a single undo step
func (vm *NotesViewModel) ToggleVibrato(n *ustx.Note) {
	v := n.Vibrato
	v.Enabled = !v.Enabled
	vm.Doc.ExecuteCmd(&document.ChangeVibratoCommand{Note: n, Vibrato: v})
}

// --- view

// OnXZoomed zooms horizontally around a normalized anchor (0..1 across the view)
func (vm *NotesViewModel) OnXZoomed(anchor Point, delta float64) {
	anchorTick := vm.TickOffset + anchor.X*vm.ViewportTicks()
	vm.TickWidth = clampFloat(vm.TickWidth*math.Pow(2, -delta*5), MinTickWidth, MaxTickWidth)
	vm.TickOffset = clampFloat(anchorTick-anchor.X*vm.ViewportTicks(), 0, vm.HScrollBarMax())
}

// OnYZoomed changes rows per tone around a normalized anchor
func (vm *NotesViewModel) OnYZoomed(anchor Point, delta float64) {
	anchorTrack := vm.TrackOffset + anchor.Y*vm.ViewportTracks()
	switch {
	case delta > 0:
		vm.TrackHeight = clampInt(vm.TrackHeight+1, MinTrackRows, MaxTrackRows)
	case delta < 0:
		vm.TrackHeight = clampInt(vm.TrackHeight-1, MinTrackRows, MaxTrackRows)
	}
	vm.TrackOffset = clampFloat(anchorTrack-anchor.Y*vm.ViewportTracks(), 0, vm.VScrollBarMax())
}

// ScrollBy pans the view, clamped to the scroll ranges
func (vm *NotesViewModel) ScrollBy(dTicks, dTracks float64) {
	vm.TickOffset = clampFloat(vm.TickOffset+dTicks, 0, vm.HScrollBarMax())
	vm.TrackOffset = clampFloat(vm.TrackOffset+dTracks, 0, vm.VScrollBarMax())
}

// FocusNote scrolls so n is near the centre of the view
func (vm *NotesViewModel) FocusNote(n *ustx.Note) {
	vm.TickOffset = clampFloat(float64(n.Position)-vm.ViewportTicks()/2, 0, vm.HScrollBarMax())
	vm.TrackOffset = clampFloat(float64(ustx.MaxTone-1-n.Tone)-vm.ViewportTracks()/2, 0, vm.VScrollBarMax())
}

// MouseoverPhoneme records the phoneme under the pointer for highlighting
func (vm *NotesViewModel) MouseoverPhoneme(ph *ustx.Phoneme) {
	vm.Mouseover = ph
}

// ExpressionDescriptor returns the descriptor of the primary expression lane
func (vm *NotesViewModel) ExpressionDescriptor() *ustx.ExpressionDescriptor {
	if vm.Project == nil {
		return nil
	}
	return vm.Project.Expressions[vm.PrimaryKey]
}

// SelectExpression makes the expression in selector slot i primary
func (vm *NotesViewModel) SelectExpression(slot int) {
	if slot < 0 || slot >= len(vm.ExpSelectors) || vm.ExpSelectors[slot] == "" {
		return
	}
	if vm.ExpSelectors[slot] == vm.PrimaryKey {
		return
	}
	vm.SecondaryKey = vm.PrimaryKey
	vm.PrimaryKey = vm.ExpSelectors[slot]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, v))
}
