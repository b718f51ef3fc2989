package pianoroll

import (
	"sort"

	"go-pianoroll/ustx"
)

// Selection is the set of selected notes of a part.
// Head is the anchor used by keyboard navigation and range extension.
type Selection struct {
	notes map[*ustx.Note]bool
	Head  *ustx.Note
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{notes: make(map[*ustx.Note]bool)}
}

func (s *Selection) IsEmpty() bool { return len(s.notes) == 0 }

func (s *Selection) Count() int { return len(s.notes) }

func (s *Selection) Contains(n *ustx.Note) bool { return s.notes[n] }

// Add selects n; the first note added becomes Head
func (s *Selection) Add(n *ustx.Note) {
	if n == nil {
		return
	}
	s.notes[n] = true
	if s.Head == nil {
		s.Head = n
	}
}

// Remove deselects n; a removed Head passes to the earliest remaining note
func (s *Selection) Remove(n *ustx.Note) {
	delete(s.notes, n)
	if s.Head == n {
		s.Head = s.First()
	}
}

// Set replaces the selection with notes; the first becomes Head
func (s *Selection) Set(notes ...*ustx.Note) {
	s.Clear()
	for _, n := range notes {
		s.Add(n)
	}
}

func (s *Selection) Clear() {
	s.notes = make(map[*ustx.Note]bool)
	s.Head = nil
}

// List returns selected notes ordered by position
func (s *Selection) List() []*ustx.Note {
	out := make([]*ustx.Note, 0, len(s.notes))
	for n := range s.notes {
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Position == out[j].Position {
			return out[i].Tone < out[j].Tone
		}
		return out[i].Position < out[j].Position
	})
	return out
}

// First returns the earliest selected note, or nil
func (s *Selection) First() *ustx.Note {
	l := s.List()
	if len(l) == 0 {
		return nil
	}
	return l[0]
}

// Last returns the latest selected note, or nil
func (s *Selection) Last() *ustx.Note {
	l := s.List()
	if len(l) == 0 {
		return nil
	}
	return l[len(l)-1]
}

// Retain drops notes that no longer belong to part
func (s *Selection) Retain(part *ustx.VoicePart) {
	for n := range s.notes {
		if part == nil || !part.Contains(n) {
			s.Remove(n)
		}
	}
}
