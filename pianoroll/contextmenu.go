package pianoroll

// MenuAction names what a context menu entry does
type MenuAction string

const (
	MenuPitchEaseInOut      MenuAction = "pitch-ease-in-out"
	MenuPitchLinear         MenuAction = "pitch-linear"
	MenuPitchEaseIn         MenuAction = "pitch-ease-in"
	MenuPitchEaseOut        MenuAction = "pitch-ease-out"
	MenuPitchSnapToPrevious MenuAction = "pitch-snap-to-previous"
	MenuPitchDeletePoint    MenuAction = "pitch-delete-point"
	MenuPitchAddPoint       MenuAction = "pitch-add-point"

	MenuNoteCopy         MenuAction = "note-copy"
	MenuNoteDelete       MenuAction = "note-delete"
	MenuNotesBatch       MenuAction = "notes-batch"
	MenuLyricsBatch      MenuAction = "lyrics-batch"
	MenuLyricsReplace    MenuAction = "lyrics-replace"
	MenuEditLyrics       MenuAction = "edit-lyrics"
	MenuNoteDefaults     MenuAction = "note-defaults"
	MenuNotesQuantize    MenuAction = "notes-quantize"
	MenuNotesResetPitch  MenuAction = "notes-reset-pitch"
	MenuNotesResetExp    MenuAction = "notes-reset-expressions"
	MenuNotesVibratoOn   MenuAction = "notes-vibrato-on"
	MenuNotesVibratoOff  MenuAction = "notes-vibrato-off"
	MenuNotesRegenFrq    MenuAction = "notes-regen-frq"
	MenuLyricsLowercase  MenuAction = "lyrics-lowercase"
	MenuLyricsRemoveTone MenuAction = "lyrics-remove-tone"
)

// MenuItem is one context menu entry; entries with Children are submenus
type MenuItem struct {
	Label    string
	Action   MenuAction
	Children []MenuItem
}

// ContextMenu is the open menu and the target it acts on
type ContextMenu struct {
	Items []MenuItem
	At    Point
	Pitch PitchPointHit
}

func (m *ContextMenu) IsOpen() bool { return m != nil && len(m.Items) > 0 }

// PitchPointMenu builds the menu for a right click on a pitch curve
func PitchPointMenu(hit PitchPointHit) []MenuItem {
	items := []MenuItem{
		{Label: "Ease in/out", Action: MenuPitchEaseInOut},
		{Label: "Linear", Action: MenuPitchLinear},
		{Label: "Ease in", Action: MenuPitchEaseIn},
		{Label: "Ease out", Action: MenuPitchEaseOut},
	}
	if hit.OnPoint {
		if hit.Index == 0 {
			items = append(items, MenuItem{Label: "Snap to previous note", Action: MenuPitchSnapToPrevious})
		}
		if hit.Note != nil && hit.Index != 0 && hit.Index != len(hit.Note.Pitch.Data)-1 {
			items = append(items, MenuItem{Label: "Delete point", Action: MenuPitchDeletePoint})
		}
	} else {
		items = append(items, MenuItem{Label: "Add point", Action: MenuPitchAddPoint})
	}
	return items
}

// NoteMenu builds the menu for a right click with notes selected
func NoteMenu() []MenuItem {
	return []MenuItem{
		{Label: "Copy", Action: MenuNoteCopy},
		{Label: "Delete", Action: MenuNoteDelete},
		{Label: "Notes", Children: []MenuItem{
			{Label: "Quantize", Action: MenuNotesQuantize},
			{Label: "Reset pitch", Action: MenuNotesResetPitch},
			{Label: "Reset expressions", Action: MenuNotesResetExp},
			{Label: "Vibrato on", Action: MenuNotesVibratoOn},
			{Label: "Vibrato off", Action: MenuNotesVibratoOff},
			{Label: "Regenerate frq", Action: MenuNotesRegenFrq},
		}},
		{Label: "Lyrics", Children: []MenuItem{
			{Label: "Replace...", Action: MenuLyricsReplace},
			{Label: "Lowercase", Action: MenuLyricsLowercase},
			{Label: "Remove tone suffix", Action: MenuLyricsRemoveTone},
		}},
		{Label: "Edit lyrics", Action: MenuEditLyrics},
		{Label: "Note defaults", Action: MenuNoteDefaults},
	}
}
