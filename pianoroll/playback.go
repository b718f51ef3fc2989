package pianoroll

import (
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"go-pianoroll/ustx"
)

// Transport plays a part from an absolute tick
type Transport interface {
	Start(project *ustx.Project, part *ustx.VoicePart, fromTick int) error
	Stop()
}

// PlaybackViewModel tracks the play position and whether playback runs
type PlaybackViewModel struct {
	mu        sync.Mutex
	transport Transport
	project   *ustx.Project
	part      *ustx.VoicePart
	playPos   int
	playing   bool
}

func NewPlaybackViewModel(project *ustx.Project, part *ustx.VoicePart, transport Transport) *PlaybackViewModel {
	return &PlaybackViewModel{project: project, part: part, transport: transport}
}

func (p *PlaybackViewModel) PlayPosTick() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playPos
}

func (p *PlaybackViewModel) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// MovePlayPos moves the playhead, never before tick 0
func (p *PlaybackViewModel) MovePlayPos(tick int) {
	if tick < 0 {
		tick = 0
	}
	p.mu.Lock()
	p.playPos = tick
	p.mu.Unlock()
}

// Advance moves a running playhead forward and stops at the part end
func (p *PlaybackViewModel) Advance(ticks int) {
	p.mu.Lock()
	if !p.playing {
		p.mu.Unlock()
		return
	}
	p.playPos += ticks
	done := p.part != nil && p.playPos >= p.part.End()
	p.mu.Unlock()
	if done {
		p.stop()
	}
}

// PlayOrPause toggles playback from the playhead
func (p *PlaybackViewModel) PlayOrPause() error {
	if p.Playing() {
		p.stop()
		return nil
	}
	if p.transport == nil {
		return fault.New("no transport",
			fmsg.WithDesc("no playback device", "No MIDI output is configured for playback"),
			ftag.With("playback"))
	}
	if err := p.transport.Start(p.project, p.part, p.PlayPosTick()); err != nil {
		return fault.Wrap(err, fmsg.WithDesc("start playback", "Playback could not start"), ftag.With("playback"))
	}
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
	return nil
}

func (p *PlaybackViewModel) stop() {
	p.mu.Lock()
	wasPlaying := p.playing
	p.playing = false
	p.mu.Unlock()
	if wasPlaying && p.transport != nil {
		p.transport.Stop()
	}
}
