package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

// Symbols are the glyphs the piano roll draws with
type Symbols struct {
	NoteBody     rune // █ note cell
	NoteResize   rune // ▐ last column of a note
	NoteSelected rune // ▓ selected note cell
	PitchPoint   rune // ◆ pitch control point
	PitchLine    rune // · pitch curve
	VibratoWave  rune // ~ vibrato lane
	VibratoOff   rune // ┄ disabled vibrato lane
	VibratoTog   rune // ◉ vibrato toggle
	Playhead     rune // │ play position
	GridBeat     rune // ┊ beat line
	GridBar      rune // │ bar line
	PhonemePos   rune // ▼ phoneme position
	PhonemeEnv   rune // ╱ preutter/overlap
	ExpBar       rune // ▮ expression bar
	WhiteKey     rune // ▭ keyboard column
	BlackKey     rune // ▬ keyboard column
}

func New(palette *Palette) *Theme {
	if palette == nil {
		palette = Default()
	}
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			NoteBody:     '█',
			NoteResize:   '▐',
			NoteSelected: '▓',
			PitchPoint:   '◆',
			PitchLine:    '·',
			VibratoWave:  '~',
			VibratoOff:   '┄',
			VibratoTog:   '◉',
			Playhead:     '│',
			GridBeat:     '┊',
			GridBar:      '│',
			PhonemePos:   '▼',
			PhonemeEnv:   '╱',
			ExpBar:       '▮',
			WhiteKey:     '▭',
			BlackKey:     '▬',
		},
	}
}

// Colour roles as palette positions (0-1)
const (
	RoleBG      = 0.0
	RoleSurface = 0.1
	RoleMuted   = 0.2
	RoleDim     = 0.35
	RoleFG      = 0.45
	RoleAccent  = 0.55
	RoleCursor  = 0.65
	RoleActive  = 0.75
	RoleWarning = 0.9
	RoleSuccess = 1.0
)

func (t *Theme) BG() lipgloss.Color      { return t.Color(RoleBG) }
func (t *Theme) Surface() lipgloss.Color { return t.Color(RoleSurface) }
func (t *Theme) Muted() lipgloss.Color   { return t.Color(RoleMuted) }
func (t *Theme) Dim() lipgloss.Color     { return t.Color(RoleDim) }
func (t *Theme) FG() lipgloss.Color      { return t.Color(RoleFG) }
func (t *Theme) Accent() lipgloss.Color  { return t.Color(RoleAccent) }
func (t *Theme) Cursor() lipgloss.Color  { return t.Color(RoleCursor) }
func (t *Theme) Active() lipgloss.Color  { return t.Color(RoleActive) }
func (t *Theme) Warning() lipgloss.Color { return t.Color(RoleWarning) }
func (t *Theme) Success() lipgloss.Color { return t.Color(RoleSuccess) }

// Color returns the lipgloss colour at norm
func (t *Theme) Color(norm float64) lipgloss.Color {
	return lipgloss.Color(t.Palette.Lookup(norm).Hex())
}

// Styles used by the piano roll view
func (t *Theme) NoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent())
}

func (t *Theme) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Active())
}

func (t *Theme) GridStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted())
}

func (t *Theme) PitchStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Cursor())
}

func (t *Theme) PlayheadStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success())
}

func (t *Theme) DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Dim())
}

func (t *Theme) TextStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.FG())
}

func (t *Theme) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning())
}
