package midi

import (
	"context"
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"go-pianoroll/debug"
	"go-pianoroll/ustx"
)

// Transport plays a part through a TonePlayer
type Transport struct {
	player *TonePlayer

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTransport(player *TonePlayer) *Transport {
	return &Transport{player: player}
}

// Start plays part from the absolute tick fromTick until the part ends or
// Stop is called
func (t *Transport) Start(project *ustx.Project, part *ustx.VoicePart, fromTick int) error {
	if !t.player.IsOpen() {
		return fault.New("tone player not open",
			fmsg.WithDesc("no output", "No MIDI output is open"),
			ftag.With("midi"))
	}
	if project == nil || part == nil {
		return fault.New("nothing to play", fmsg.With("start transport"))
	}
	t.Stop()

	from := fromTick - part.Position
	events := EventsForPart(part, from, t.player.Velocity())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	t.mu.Lock()
	t.cancel, t.done = cancel, done
	t.mu.Unlock()

	debug.Log("midi", "play from %d: %d events", fromTick, len(events))
	go t.run(ctx, done, project, events, from)
	return nil
}

func (t *Transport) run(ctx context.Context, done chan struct{}, project *ustx.Project, events []Event, from int) {
	defer close(done)
	defer t.player.AllOff()

	t0 := time.Now()
	for _, evt := range events {
		at := t0.Add(time.Duration(project.TickToMs(float64(evt.Tick-from)) * float64(time.Millisecond)))
		if wait := time.Until(at); wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		} else if ctx.Err() != nil {
			return
		}
		switch evt.Type {
		case NoteOn:
			t.player.NoteOnVelocity(int(evt.Note), evt.Velocity)
		case NoteOff:
			t.player.NoteOff(int(evt.Note))
		}
	}
}

// Stop ends playback and waits for the output loop to release its tones
func (t *Transport) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
