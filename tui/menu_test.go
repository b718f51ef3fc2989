package tui

import (
	"strconv"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	pr "go-pianoroll/pianoroll"
)

func TestSnapDivMenu(t *testing.T) {
	items := snapDivMenu()
	if len(items) != len(snapDivisors) {
		t.Fatalf("got %d items", len(items))
	}
	if items[3].Label != "1/4" {
		t.Errorf("label = %q", items[3].Label)
	}
	for _, it := range items {
		d, ok := parseSnapDiv(it.Action)
		if !ok || it.Label != "1/"+strconv.Itoa(d) {
			t.Errorf("parseSnapDiv(%q) = %d %v", it.Action, d, ok)
		}
	}
	for _, a := range []pr.MenuAction{pr.MenuNoteCopy, "snap-div-", "snap-div-x", "snap-div-0"} {
		if _, ok := parseSnapDiv(a); ok {
			t.Errorf("parseSnapDiv(%q) accepted", a)
		}
	}
}

func TestMenuNavigation(t *testing.T) {
	var m menuState
	m.open(pr.NoteMenu())
	if !m.isOpen() || m.cursor() != 0 {
		t.Fatalf("menu not open at first entry")
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor() != len(pr.NoteMenu())-1 {
		t.Errorf("up from top = %d, want wrap to last", m.cursor())
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	if m.items()[m.cursor()].Label != "Notes" {
		t.Fatalf("cursor on %q", m.items()[m.cursor()].Label)
	}
	if _, ok := m.handleKey(tea.KeyMsg{Type: tea.KeyRight}); ok {
		t.Errorf("submenu returned an action")
	}
	if m.items()[0].Action != pr.MenuNotesQuantize {
		t.Fatalf("submenu not open")
	}
	entries := m.entries()
	if entries[len(entries)-1].Label != "Regenerate frq" {
		t.Errorf("last entry = %+v", entries[len(entries)-1])
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor() != 2 {
		t.Errorf("back lost the parent cursor: %d", m.cursor())
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	m.handleKey(tea.KeyMsg{Type: tea.KeyDown})
	action, ok := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !ok || action != pr.MenuNotesResetPitch {
		t.Errorf("chose %q %v", action, ok)
	}
	if m.isOpen() {
		t.Errorf("menu open after choosing a leaf")
	}
}

func TestMenuEscClosesLevels(t *testing.T) {
	var m menuState
	m.open(pr.NoteMenu())
	m.choose(3)
	if len(m.levels) != 2 {
		t.Fatalf("levels = %d", len(m.levels))
	}
	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.isOpen() {
		t.Errorf("menu still open")
	}
	if _, ok := m.choose(0); ok {
		t.Errorf("choose on closed menu")
	}
	if entries := m.entries(); len(entries) != 0 {
		t.Errorf("closed menu has entries")
	}
}
