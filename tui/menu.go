package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	pr "go-pianoroll/pianoroll"
	"go-pianoroll/widgets"
)

// snapDivPrefix marks the entries of the snap division menu
const snapDivPrefix = "snap-div-"

var snapDivisors = []int{1, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64, 96, 128, 192}

func snapDivMenu() []pr.MenuItem {
	items := make([]pr.MenuItem, len(snapDivisors))
	for i, d := range snapDivisors {
		items[i] = pr.MenuItem{
			Label:  fmt.Sprintf("1/%d", d),
			Action: pr.MenuAction(snapDivPrefix + strconv.Itoa(d)),
		}
	}
	return items
}

// parseSnapDiv reports the divisor of a snap menu action
func parseSnapDiv(a pr.MenuAction) (int, bool) {
	s, ok := strings.CutPrefix(string(a), snapDivPrefix)
	if !ok {
		return 0, false
	}
	d, err := strconv.Atoi(s)
	return d, err == nil && d > 0
}

// menuState navigates a context menu and its submenus
type menuState struct {
	levels  [][]pr.MenuItem
	cursors []int
}

func (m *menuState) open(items []pr.MenuItem) {
	m.levels = [][]pr.MenuItem{items}
	m.cursors = []int{0}
}

func (m *menuState) close() {
	m.levels = nil
	m.cursors = nil
}

func (m *menuState) isOpen() bool { return len(m.levels) > 0 }

func (m *menuState) items() []pr.MenuItem {
	if !m.isOpen() {
		return nil
	}
	return m.levels[len(m.levels)-1]
}

func (m *menuState) cursor() int {
	if !m.isOpen() {
		return 0
	}
	return m.cursors[len(m.cursors)-1]
}

func (m *menuState) move(delta int) {
	items := m.items()
	if len(items) == 0 {
		return
	}
	i := len(m.cursors) - 1
	m.cursors[i] = (m.cursors[i] + delta + len(items)) % len(items)
}

// choose activates the entry at index i. Submenus open in place; a leaf
// closes the menu and returns its action.
func (m *menuState) choose(i int) (pr.MenuAction, bool) {
	items := m.items()
	if i < 0 || i >= len(items) {
		return "", false
	}
	m.cursors[len(m.cursors)-1] = i
	item := items[i]
	if len(item.Children) > 0 {
		m.levels = append(m.levels, item.Children)
		m.cursors = append(m.cursors, 0)
		return "", false
	}
	m.close()
	return item.Action, true
}

func (m *menuState) back() {
	if len(m.levels) <= 1 {
		m.close()
		return
	}
	m.levels = m.levels[:len(m.levels)-1]
	m.cursors = m.cursors[:len(m.cursors)-1]
}

// handleKey navigates with arrows; enter or right chooses, left or esc backs out
func (m *menuState) handleKey(msg tea.KeyMsg) (pr.MenuAction, bool) {
	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyEnter, tea.KeyRight:
		return m.choose(m.cursor())
	case tea.KeyLeft, tea.KeyEsc:
		m.back()
	}
	return "", false
}

func (m *menuState) entries() []widgets.MenuEntry {
	items := m.items()
	out := make([]widgets.MenuEntry, len(items))
	for i, it := range items {
		out[i] = widgets.MenuEntry{Label: it.Label, Submenu: len(it.Children) > 0}
	}
	return out
}
