package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MenuEntry is one line of a popup menu
type MenuEntry struct {
	Label   string
	Submenu bool
}

// RenderMenu draws a bordered popup with the cursor row highlighted
func RenderMenu(entries []MenuEntry, cursor int, fg, hl lipgloss.Color) string {
	if len(entries) == 0 {
		return ""
	}
	width := 0
	for _, e := range entries {
		width = max(width, len([]rune(e.Label))+2)
	}
	normal := lipgloss.NewStyle().Foreground(fg)
	selected := lipgloss.NewStyle().Foreground(hl).Bold(true)

	lines := make([]string, len(entries))
	for i, e := range entries {
		label := e.Label
		pad := width - len([]rune(label))
		if e.Submenu {
			label += strings.Repeat(" ", pad-1) + "›"
		} else {
			label += strings.Repeat(" ", pad)
		}
		if i == cursor {
			lines[i] = selected.Render("> " + label)
		} else {
			lines[i] = normal.Render("  " + label)
		}
	}
	box := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(fg)
	return box.Render(strings.Join(lines, "\n"))
}
