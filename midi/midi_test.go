package midi

import (
	"testing"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-pianoroll/ustx"
)

func TestEventsForPart(t *testing.T) {
	part := &ustx.VoicePart{Duration: 1920}
	part.Notes = []*ustx.Note{
		ustx.NewNote(0, 480, 60, "a"),
		ustx.NewNote(480, 480, 60, "a"),
		ustx.NewNote(960, 480, 64, "a"),
	}
	part.Notes[2].Expressions = map[string]float64{"vel": 50}

	events := EventsForPart(part, 600, 100)
	want := []Event{
		{Tick: 600, Type: NoteOn, Note: 60, Velocity: 100},
		{Tick: 960, Type: NoteOff, Note: 60},
		{Tick: 960, Type: NoteOn, Note: 64, Velocity: 50},
		{Tick: 1440, Type: NoteOff, Note: 64},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v", events)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}
	if EventsForPart(nil, 0, 100) != nil {
		t.Errorf("nil part produced events")
	}
}

func TestTonePlayerNilSafe(t *testing.T) {
	var p *TonePlayer
	p.NoteOn(60)
	p.NoteOff(60)
	p.AllOff()
	if err := p.Close(); err != nil {
		t.Error(err)
	}
	if p.IsOpen() {
		t.Error("nil player open")
	}

	unopened := NewTonePlayer(0, 0)
	unopened.NoteOn(60)
	if unopened.Velocity() != 100 {
		t.Errorf("default velocity = %d", unopened.Velocity())
	}
}

func TestTonePlayerHeldNotes(t *testing.T) {
	var sent []gomidi.Message
	p := NewTonePlayer(2, 90)
	p.send = func(msg gomidi.Message) error {
		sent = append(sent, msg)
		return nil
	}
	p.NoteOn(60)
	p.NoteOn(64)
	p.NoteOff(60)
	p.NoteOn(200)
	p.AllOff()

	if len(sent) != 4 {
		t.Fatalf("sent %d messages", len(sent))
	}
	var ch, key, vel uint8
	if !sent[0].GetNoteOn(&ch, &key, &vel) || ch != 2 || key != 60 || vel != 90 {
		t.Errorf("first = %v", sent[0])
	}
	if !sent[3].GetNoteOff(&ch, &key, &vel) || key != 64 {
		t.Errorf("all-off released %v", sent[3])
	}
}

func TestTransportNeedsOpenPlayer(t *testing.T) {
	tr := NewTransport(NewTonePlayer(0, 100))
	project := ustx.NewDemoProject()
	if err := tr.Start(project, project.Parts[0], 0); err == nil {
		t.Error("started without an open port")
	}
	tr.Stop()
}

func TestTransportPlaysAndStops(t *testing.T) {
	sent := make(chan gomidi.Message, 64)
	p := NewTonePlayer(0, 100)
	p.send = func(msg gomidi.Message) error {
		sent <- msg
		return nil
	}
	project := ustx.NewDemoProject()
	tr := NewTransport(p)
	if err := tr.Start(project, project.Parts[0], 0); err != nil {
		t.Fatal(err)
	}
	first := <-sent
	var ch, key, vel uint8
	if !first.GetNoteOn(&ch, &key, &vel) || key != 60 {
		t.Errorf("first message = %v", first)
	}
	tr.Stop()
	if p.IsOpen() && len(p.held) != 0 {
		t.Errorf("tones held after stop: %v", p.held)
	}
}
