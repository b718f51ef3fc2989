// Package widgets renders the small text panels around the piano roll.
package widgets

import (
	"fmt"
	"strings"
)

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if len(sec.Keys) == 0 {
			continue
		}
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-16s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelpColumns lays sections out side by side, breaking into a new
// row of columns once width is used up
func RenderKeyHelpColumns(sections []KeySection, width int) string {
	var rows [][]string
	var row []string
	used := 0
	for _, sec := range sections {
		block := RenderKeyHelp([]KeySection{sec})
		if block == "" {
			continue
		}
		w := blockWidth(block) + 2
		if used > 0 && used+w > width {
			rows = append(rows, row)
			row, used = nil, 0
		}
		row = append(row, block)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var out []string
	for _, r := range rows {
		out = append(out, joinColumns(r))
	}
	return strings.Join(out, "\n\n")
}

func blockWidth(block string) int {
	w := 0
	for _, line := range strings.Split(block, "\n") {
		w = max(w, len([]rune(line)))
	}
	return w
}

func joinColumns(blocks []string) string {
	split := make([][]string, len(blocks))
	widths := make([]int, len(blocks))
	height := 0
	for i, b := range blocks {
		split[i] = strings.Split(b, "\n")
		widths[i] = blockWidth(b)
		height = max(height, len(split[i]))
	}
	lines := make([]string, height)
	for y := range height {
		var sb strings.Builder
		for i, col := range split {
			cell := ""
			if y < len(col) {
				cell = col[y]
			}
			if i < len(split)-1 {
				cell += strings.Repeat(" ", widths[i]-len([]rune(cell))+2)
			}
			sb.WriteString(cell)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return strings.Join(lines, "\n")
}
