package midi

import (
	"sort"

	"go-pianoroll/ustx"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is a note message at a part-relative tick
type Event struct {
	Tick     int
	Type     uint8 // NoteOn, NoteOff
	Note     uint8
	Velocity uint8
}

// EventsForPart lists the note messages of part from tick from on (part
// relative). A note already sounding at from starts at from. Offs sort
// before ons on the same tick so repeated tones retrigger.
func EventsForPart(part *ustx.VoicePart, from int, velocity uint8) []Event {
	if part == nil {
		return nil
	}
	var events []Event
	for _, n := range part.Notes {
		if n.End() <= from || n.Tone < 0 || n.Tone > 127 {
			continue
		}
		on := max(n.Position, from)
		events = append(events,
			Event{Tick: on, Type: NoteOn, Note: uint8(n.Tone), Velocity: noteVelocity(n, velocity)},
			Event{Tick: n.End(), Type: NoteOff, Note: uint8(n.Tone)},
		)
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Tick != events[j].Tick {
			return events[i].Tick < events[j].Tick
		}
		return events[i].Type == NoteOff && events[j].Type == NoteOn
	})
	return events
}

// noteVelocity scales base by the note's vel expression (100 = unchanged)
func noteVelocity(n *ustx.Note, base uint8) uint8 {
	vel, ok := n.Expressions["vel"]
	if !ok {
		return base
	}
	v := int(float64(base) * vel / 100)
	return uint8(min(max(v, 1), 127))
}
