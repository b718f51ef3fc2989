package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pianoroll/theme"
)

// cellStyle indexes the style table a buffer renders with
type cellStyle uint8

const (
	styleBlank cellStyle = iota
	styleGrid
	styleBar
	styleNote
	styleNoteText
	styleSelected
	stylePitch
	styleVibrato
	stylePlayhead
	styleText
	styleDim
	styleWhiteKey
	styleBlackKey
	styleTip
	styleSelBox
	styleHover
	styleCount
)

type styleSet [styleCount]lipgloss.Style

func newStyleSet(th *theme.Theme) styleSet {
	var s styleSet
	s[styleBlank] = lipgloss.NewStyle()
	s[styleGrid] = th.GridStyle()
	s[styleBar] = lipgloss.NewStyle().Foreground(th.Dim())
	s[styleNote] = th.NoteStyle()
	s[styleNoteText] = lipgloss.NewStyle().Foreground(th.BG()).Background(th.Accent())
	s[styleSelected] = th.SelectedStyle()
	s[stylePitch] = th.PitchStyle()
	s[styleVibrato] = lipgloss.NewStyle().Foreground(th.Cursor())
	s[stylePlayhead] = th.PlayheadStyle()
	s[styleText] = th.TextStyle()
	s[styleDim] = th.DimStyle()
	s[styleWhiteKey] = lipgloss.NewStyle().Foreground(th.FG())
	s[styleBlackKey] = lipgloss.NewStyle().Foreground(th.Muted())
	s[styleTip] = lipgloss.NewStyle().Foreground(th.BG()).Background(th.Warning())
	s[styleSelBox] = lipgloss.NewStyle().Foreground(th.Active())
	s[styleHover] = lipgloss.NewStyle().Foreground(th.Active()).Bold(true)
	return s
}

type cell struct {
	r rune
	s cellStyle
}

// buffer is a grid of styled runes. Later writes win.
type buffer struct {
	w, h  int
	cells []cell
}

func newBuffer(w, h int) *buffer {
	b := &buffer{w: max(w, 0), h: max(h, 0)}
	b.cells = make([]cell, b.w*b.h)
	for i := range b.cells {
		b.cells[i] = cell{r: ' '}
	}
	return b
}

func (b *buffer) in(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.w && y < b.h
}

func (b *buffer) set(x, y int, r rune, s cellStyle) {
	if b.in(x, y) {
		b.cells[y*b.w+x] = cell{r: r, s: s}
	}
}

func (b *buffer) at(x, y int) cell {
	if !b.in(x, y) {
		return cell{}
	}
	return b.cells[y*b.w+x]
}

// blank reports whether nothing but empty space or grid lines is at x,y
func (b *buffer) blank(x, y int) bool {
	c := b.at(x, y)
	return c.s == styleBlank || c.s == styleGrid || c.s == styleBar
}

func (b *buffer) text(x, y int, s string, st cellStyle) {
	for _, r := range s {
		b.set(x, y, r, st)
		x++
	}
}

// render styles each run of equal cells on a row together
func (b *buffer) render(styles *styleSet) string {
	lines := make([]string, b.h)
	var run strings.Builder
	for y := range b.h {
		var line strings.Builder
		cur := styleCount
		flush := func() {
			if run.Len() == 0 {
				return
			}
			line.WriteString(styles[cur].Render(run.String()))
			run.Reset()
		}
		for x := range b.w {
			c := b.cells[y*b.w+x]
			if c.s != cur {
				flush()
				cur = c.s
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[y] = line.String()
	}
	return strings.Join(lines, "\n")
}

// plain returns the buffer text without styles
func (b *buffer) plain() string {
	lines := make([]string, b.h)
	for y := range b.h {
		rs := make([]rune, b.w)
		for x := range b.w {
			rs[x] = b.cells[y*b.w+x].r
		}
		lines[y] = string(rs)
	}
	return strings.Join(lines, "\n")
}
