package widgets

import (
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/charmbracelet/lipgloss"
)

// DialogWidth is the width of error and busy boxes
const DialogWidth = 50

// ErrorText is the user-facing message of err: its issue if one was set,
// else the innermost message.
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	if issue := fmsg.GetIssue(err); issue != "" {
		return issue
	}
	chain := fault.Flatten(err)
	if len(chain) == 0 {
		return err.Error()
	}
	return chain[0].Message
}

// RenderError draws the error box shown until the next key press
func RenderError(err error) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		Width(DialogWidth).
		Padding(1).
		BorderForeground(lipgloss.Color("#880000")).
		MarginLeft(2)
	return style.Render("ERROR: " + ErrorText(err))
}

// RenderBusy draws the progress box for long operations. Input is
// ignored while it is visible.
func RenderBusy(text string, accent lipgloss.Color) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Width(DialogWidth).
		Padding(1).
		Align(lipgloss.Center).
		BorderForeground(accent).
		MarginLeft(2)
	return style.Render(strings.TrimSpace(text))
}
