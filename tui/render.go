package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pr "go-pianoroll/pianoroll"
	"go-pianoroll/ustx"
	"go-pianoroll/widgets"
)

// area is a clipped window onto a buffer in canvas coordinates
type area struct {
	b      *buffer
	ox, oy int
	w, h   int
}

func (a area) set(x, y int, r rune, s cellStyle) {
	if x >= 0 && y >= 0 && x < a.w && y < a.h {
		a.b.set(a.ox+x, a.oy+y, r, s)
	}
}

func (a area) blank(x, y int) bool {
	return a.b.blank(a.ox+x, a.oy+y)
}

func (a area) text(x, y int, s string, st cellStyle) {
	for _, r := range s {
		a.set(x, y, r, st)
		x++
	}
}

func isBlackKey(tone int) bool {
	switch ((tone % 12) + 12) % 12 {
	case 1, 3, 6, 8, 10:
		return true
	}
	return false
}

// spanX returns the first and one-past-last column a tick range covers
func spanX(vm *pr.NotesViewModel, start, end int) (int, int) {
	x0 := int(math.Floor(vm.TickToX(float64(start))))
	x1 := int(math.Ceil(vm.TickToX(float64(end))))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	return x0, x1
}

func (m *Model) renderHeader() string {
	vm := m.vm
	snap := "off"
	if vm.IsSnapOn {
		snap = fmt.Sprintf("1/%d", vm.SnapDiv)
	}
	state := "■"
	if m.play.Playing() {
		state = "▶"
	}
	var flags []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{vm.ShowPitch, "pit"},
		{vm.ShowFinalPitch, "fin"},
		{vm.ShowVibrato, "vib"},
		{vm.ShowPhoneme, "pho"},
		{vm.ShowTips, "tip"},
		{vm.ShowNoteParams, "par"},
		{vm.ShowWaveform, "wav"},
		{vm.PlayTone, "tone"},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	pos := pr.FormatTick(m.play.PlayPosTick(), vm.Resolution())
	line := fmt.Sprintf(" %s %s │ %s │ snap %s │ %s", state, pos, vm.Tool, snap, strings.Join(flags, " "))
	return m.theme.TextStyle().Bold(true).Render(line)
}

// renderBody draws the keyboard, notes grid, phoneme strip and expression strip
func (m *Model) renderBody() string {
	vm := m.vm
	l := newLayout(vm)
	height := l.gridH + vm.PhonemeHeight + vm.ExpHeight
	b := newBuffer(l.gridLeft+l.gridW, height)

	notes := area{b: b, ox: l.gridLeft, w: l.gridW, h: l.gridH}
	phonemes := area{b: b, ox: l.gridLeft, oy: l.gridH, w: l.gridW, h: vm.PhonemeHeight}
	exps := area{b: b, ox: l.gridLeft, oy: l.gridH + vm.PhonemeHeight, w: l.gridW, h: vm.ExpHeight}
	full := area{b: b, ox: l.gridLeft, w: l.gridW, h: height}

	m.drawKeyboard(area{b: b, w: l.gridLeft, h: l.gridH})
	m.drawGrid(full)
	if vm.Part != nil {
		m.drawPlayhead(full)
		m.drawNotes(notes)
		if vm.ShowPitch {
			m.drawPitch(notes)
		}
		m.drawSelectionBox(notes)
		if vm.ShowPhoneme {
			m.drawPhonemes(phonemes)
		}
		m.drawExpressions(exps, area{b: b, oy: exps.oy, w: l.gridLeft, h: vm.ExpHeight})
	}
	m.drawTip(b, l)
	return b.render(&m.styles)
}

func (m *Model) drawKeyboard(a area) {
	vm := m.vm
	s := m.theme.Symbols
	for row := range a.h {
		tone := vm.PointToTone(pr.Point{Y: float64(row)})
		if tone < 0 || tone >= ustx.MaxTone {
			continue
		}
		glyph, st := s.WhiteKey, styleWhiteKey
		if isBlackKey(tone) {
			glyph, st = s.BlackKey, styleBlackKey
		}
		first := row == int(vm.ToneToY(float64(tone)))
		if first && tone%12 == 0 {
			a.text(0, row, pr.ToneName(tone), styleDim)
		}
		a.set(a.w-1, row, glyph, st)
	}
}

func (m *Model) drawGrid(a area) {
	vm := m.vm
	s := m.theme.Symbols
	res := float64(vm.Resolution())
	bar := res * 4
	for col := range a.w {
		start := vm.PointToTick(pr.Point{X: float64(col)})
		end := start + vm.TickWidth
		k := math.Ceil(start/res) * res
		if k >= end {
			continue
		}
		glyph, st := s.GridBeat, styleGrid
		if math.Mod(k, bar) == 0 {
			glyph, st = s.GridBar, styleBar
		} else if vm.TickWidth >= res {
			continue
		}
		for row := range a.h {
			a.set(col, row, glyph, st)
		}
	}
}

func (m *Model) drawPlayhead(a area) {
	vm := m.vm
	tick := float64(m.play.PlayPosTick() - vm.Part.Position)
	x := int(math.Floor(vm.TickToX(tick)))
	for row := range a.h {
		a.set(x, row, m.theme.Symbols.Playhead, stylePlayhead)
	}
}

func (m *Model) drawNotes(a area) {
	vm := m.vm
	s := m.theme.Symbols
	for _, n := range vm.Part.Notes {
		y0 := int(vm.ToneToY(float64(n.Tone)))
		x0, x1 := spanX(vm, n.Position, n.End())
		glyph, st := s.NoteBody, styleNote
		if vm.Selection.Contains(n) {
			glyph, st = s.NoteSelected, styleSelected
		}
		for y := y0; y < y0+vm.TrackHeight; y++ {
			for x := x0; x < x1; x++ {
				a.set(x, y, glyph, st)
			}
			if x1-x0 >= 2 {
				a.set(x1-1, y, s.NoteResize, st)
			}
		}
		if w := x1 - x0 - 1; w > 0 {
			lyric := []rune(n.Lyric)
			if len(lyric) > w {
				lyric = lyric[:w]
			}
			a.text(x0, y0, string(lyric), styleNoteText)
		}
		if vm.ShowVibrato {
			m.drawVibrato(a, n, y0+vm.TrackHeight, x0, x1)
		}
	}
}

// drawVibrato draws the lane beneath a note: the wave where vibrato runs
// and the toggle in the last column
func (m *Model) drawVibrato(a area, n *ustx.Note, y, x0, x1 int) {
	vm := m.vm
	s := m.theme.Symbols
	if n.Vibrato.Enabled {
		start, _ := pr.VibratoSpan(n)
		for x := int(math.Floor(vm.TickToX(start))); x < x1-1; x++ {
			if a.blank(x, y) {
				a.set(x, y, s.VibratoWave, styleVibrato)
			}
		}
	} else if vm.Selection.Contains(n) {
		for x := x0; x < x1-1; x++ {
			if a.blank(x, y) {
				a.set(x, y, s.VibratoOff, styleDim)
			}
		}
	}
	if a.blank(x1-1, y) {
		st := styleDim
		if n.Vibrato.Enabled {
			st = styleVibrato
		}
		a.set(x1-1, y, s.VibratoTog, st)
	}
}

func (m *Model) pitchPos(n *ustx.Note, pt ustx.PitchPoint) pr.Point {
	vm := m.vm
	tick := float64(n.Position) + vm.Project.MsToTick(pt.X)
	tone := float64(n.Tone) + pt.Y/10
	return pr.Point{X: vm.TickToX(tick), Y: vm.ToneToY(tone) + 0.5*float64(vm.TrackHeight)}
}

func (m *Model) drawPitch(a area) {
	s := m.theme.Symbols
	for _, n := range m.vm.Part.Notes {
		if n.Pitch == nil {
			continue
		}
		data := n.Pitch.Data
		for j := 0; j+1 < len(data); j++ {
			p, q := m.pitchPos(n, data[j]), m.pitchPos(n, data[j+1])
			if q.X <= p.X {
				continue
			}
			for x := int(math.Ceil(p.X)); float64(x) <= q.X; x++ {
				t := (float64(x) - p.X) / (q.X - p.X)
				y := int(math.Floor(p.Y + t*(q.Y-p.Y)))
				if a.blank(x, y) {
					a.set(x, y, s.PitchLine, stylePitch)
				}
			}
		}
		for _, pt := range data {
			pos := m.pitchPos(n, pt)
			a.set(int(math.Floor(pos.X)), int(math.Floor(pos.Y)), s.PitchPoint, stylePitch)
		}
	}
}

func (m *Model) drawSelectionBox(a area) {
	r := m.vm.SelectionBox
	if r == nil {
		return
	}
	x0, y0 := int(math.Floor(r.X)), int(math.Floor(r.Y))
	x1, y1 := int(math.Floor(r.X+r.W)), int(math.Floor(r.Y+r.H))
	for x := x0 + 1; x < x1; x++ {
		for _, y := range []int{y0, y1} {
			if a.blank(x, y) {
				a.set(x, y, '─', styleSelBox)
			}
		}
	}
	for y := y0 + 1; y < y1; y++ {
		for _, x := range []int{x0, x1} {
			if a.blank(x, y) {
				a.set(x, y, '│', styleSelBox)
			}
		}
	}
	a.set(x0, y0, '┌', styleSelBox)
	a.set(x1, y0, '┐', styleSelBox)
	a.set(x0, y1, '└', styleSelBox)
	a.set(x1, y1, '┘', styleSelBox)
}

// drawPhonemes puts aliases on the first strip row and the position,
// preutter and overlap handles on the second
func (m *Model) drawPhonemes(a area) {
	vm := m.vm
	s := m.theme.Symbols
	project := vm.Project
	for _, n := range vm.Part.Notes {
		for _, ph := range n.Phonemes {
			tick := float64(ph.Position())
			x := int(math.Floor(vm.TickToX(tick)))
			st := styleText
			if vm.Mouseover == ph {
				st = styleHover
			}
			a.text(x, 0, ph.Phoneme, st)

			pre := tick - project.MsToTick(ph.Preutter())
			ovl := pre + project.MsToTick(ph.Overlap())
			a.set(int(math.Floor(vm.TickToX(pre))), 1, s.PhonemeEnv, styleDim)
			a.set(int(math.Floor(vm.TickToX(ovl))), 1, s.PhonemeEnv, styleDim)
			a.set(x, 1, s.PhonemePos, styleText)
		}
	}
}

// drawExpressions draws a bar per note for the primary expression; label
// is the strip's share of the keyboard column
func (m *Model) drawExpressions(a, label area) {
	vm := m.vm
	d := vm.ExpressionDescriptor()
	if d == nil || a.h == 0 {
		return
	}
	label.text(0, 0, d.Abbr, styleDim)
	span := d.Max - d.Min
	for _, n := range vm.Part.Notes {
		frac := 1.0
		if span > 0 {
			frac = (n.Expression(d) - d.Min) / span
		}
		top := int(math.Round((1 - frac) * float64(a.h-1)))
		x0, x1 := spanX(vm, n.Position, n.End())
		st := styleNote
		if vm.Selection.Contains(n) {
			st = styleSelected
		}
		for y := top; y < a.h; y++ {
			a.set(x0, y, m.theme.Symbols.ExpBar, st)
		}
		for x := x0 + 1; x < x1; x++ {
			a.set(x, top, '─', styleDim)
		}
	}
}

// drawTip overlays the value tip on the canvas the drag started on
func (m *Model) drawTip(b *buffer, l layout) {
	if !m.tip.Visible() || !m.vm.ShowTips || m.tip.Text() == "" {
		return
	}
	ox, oy := l.origin(m.drag.canvas)
	oy -= l.gridTop
	pos := m.tip.Position()
	text := " " + m.tip.Text() + " "
	x := ox + int(math.Floor(pos.X)) + 1
	if w := len([]rune(text)); x+w > b.w {
		x = b.w - w
	}
	b.text(max(x, 0), oy+int(math.Floor(pos.Y)), text, styleTip)
}

func (m *Model) renderPanel() string {
	style := lipgloss.NewStyle().Width(panelWidth)
	switch {
	case m.menu.isOpen():
		return widgets.RenderMenu(m.menu.entries(), m.menu.cursor(), m.theme.FG(), m.theme.Active())
	case m.replace != nil:
		return style.Border(lipgloss.NormalBorder()).BorderForeground(m.theme.Accent()).
			Width(panelWidth - 2).Render(m.replace.View())
	}
	return style.Foreground(m.theme.FG()).Render(m.inspector())
}

// inspector lists the editor state shown beside the grid
func (m *Model) inspector() string {
	vm := m.vm
	state := m.router.Phase().String()
	if s := m.router.Active(); s != nil {
		state = s.Name() + " (" + state + ")"
	}
	lines := []string{
		"tool    " + vm.Tool.String(),
		"cursor  " + m.router.Cursor.String(),
		"state   " + state,
		fmt.Sprintf("exp     %s / %s", vm.PrimaryKey, vm.SecondaryKey),
		fmt.Sprintf("zoom    %.0f ticks/col", vm.TickWidth),
	}
	if vm.Part != nil {
		lines = append(lines, fmt.Sprintf("notes   %d  sel %d", len(vm.Part.Notes), vm.Selection.Count()))
	}
	if head := vm.Selection.Head; head != nil {
		lines = append(lines,
			"note    "+head.Lyric+" "+pr.ToneName(head.Tone),
			"at      "+pr.FormatTick(head.Position, vm.Resolution()),
		)
		if head.Vibrato.Enabled {
			lines = append(lines, fmt.Sprintf("vibrato %.0f%% %.0fms", head.Vibrato.Length, head.Vibrato.Period))
		}
	}
	lines = append(lines, fmt.Sprintf("undo    %v  redo %v", m.doc.CanUndo(), m.doc.CanRedo()))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	var first string
	switch {
	case m.lyric.IsVisible():
		first = "lyric: " + m.lyric.View()
	case m.status != "":
		first = m.theme.DimStyle().Render(m.status)
	}
	return first + "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
}
