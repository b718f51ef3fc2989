package midi

import (
	"sync"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-pianoroll/debug"
)

// TonePlayer sounds single tones on one output channel. A nil or unopened
// player ignores every call.
type TonePlayer struct {
	mu       sync.Mutex
	port     drivers.Out
	send     func(gomidi.Message) error
	channel  uint8
	velocity uint8
	held     map[uint8]bool
}

func NewTonePlayer(channel, velocity uint8) *TonePlayer {
	if velocity == 0 || velocity > 127 {
		velocity = 100
	}
	return &TonePlayer{channel: channel & 0x0f, velocity: velocity, held: make(map[uint8]bool)}
}

// Open connects to the output port matching portName
func (p *TonePlayer) Open(portName string, timeout time.Duration) error {
	port, err := FindOut(portName, timeout)
	if err != nil {
		return err
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return fault.Wrap(err,
			fmsg.WithDesc("open "+port.String(), "Could not open MIDI output "+port.String()),
			ftag.With("midi"))
	}
	p.mu.Lock()
	p.port = port
	p.send = send
	p.mu.Unlock()
	debug.Log("midi", "opened %s ch=%d", port.String(), p.channel+1)
	return nil
}

// IsOpen reports whether messages go anywhere
func (p *TonePlayer) IsOpen() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.send != nil
}

// Velocity is the default note-on velocity
func (p *TonePlayer) Velocity() uint8 {
	if p == nil {
		return 100
	}
	return p.velocity
}

func (p *TonePlayer) NoteOn(tone int) {
	p.sendNote(tone, true, 0)
}

func (p *TonePlayer) NoteOff(tone int) {
	p.sendNote(tone, false, 0)
}

// NoteOnVelocity starts tone at a given velocity
func (p *TonePlayer) NoteOnVelocity(tone int, velocity uint8) {
	p.sendNote(tone, true, velocity)
}

func (p *TonePlayer) sendNote(tone int, on bool, velocity uint8) {
	if p == nil || tone < 0 || tone > 127 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.send == nil {
		return
	}
	key := uint8(tone)
	var msg gomidi.Message
	if on {
		if velocity == 0 {
			velocity = p.velocity
		}
		msg = gomidi.NoteOn(p.channel, key, velocity)
		p.held[key] = true
	} else {
		msg = gomidi.NoteOff(p.channel, key)
		delete(p.held, key)
	}
	if err := p.send(msg); err != nil {
		debug.Log("midi", "send %s: %v", msg, err)
	}
}

// AllOff releases every held tone
func (p *TonePlayer) AllOff() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.send == nil {
		return
	}
	for key := range p.held {
		p.send(gomidi.NoteOff(p.channel, key))
		delete(p.held, key)
	}
}

// Close releases held tones and the port
func (p *TonePlayer) Close() error {
	if p == nil {
		return nil
	}
	p.AllOff()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.send = nil
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	if err != nil {
		return fault.Wrap(err, fmsg.With("close midi port"), ftag.With("midi"))
	}
	return nil
}
