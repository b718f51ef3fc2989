package ustx

import (
	"sort"

	"github.com/google/uuid"
)

// MaxTone is the number of tone rows in the piano roll (C-1 .. B9)
const MaxTone = 12 * 11

// Default project timing
const (
	DefaultResolution = 480
	DefaultBPM        = 120.0
)

// Project is the root of a vocal-synthesis document
type Project struct {
	Name        string                           `json:"name"`
	Resolution  int                              `json:"resolution"`
	BPM         float64                          `json:"bpm"`
	Tracks      []*Track                         `json:"tracks"`
	Parts       []*VoicePart                     `json:"parts"`
	Expressions map[string]*ExpressionDescriptor `json:"expressions"`
}

// Track binds a singer to a track number
type Track struct {
	TrackNo int     `json:"trackNo"`
	Singer  *Singer `json:"-"`
}

// Singer is a voicebank with its oto entries
type Singer struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Otos     []*Oto `json:"otos"`
}

// Oto holds the timing parameters of one voicebank sample (all in ms)
type Oto struct {
	Alias     string  `json:"alias"`
	File      string  `json:"file"`
	Offset    float64 `json:"offset"`
	Consonant float64 `json:"consonant"`
	Cutoff    float64 `json:"cutoff"`
	Preutter  float64 `json:"preutter"`
	Overlap   float64 `json:"overlap"`
}

// FindOto returns the oto for an alias, or nil
func (s *Singer) FindOto(alias string) *Oto {
	if s == nil {
		return nil
	}
	for _, o := range s.Otos {
		if o.Alias == alias {
			return o
		}
	}
	return nil
}

// ExpressionDescriptor describes an editable per-note expression
type ExpressionDescriptor struct {
	Name         string  `json:"name"`
	Abbr         string  `json:"abbr"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	DefaultValue float64 `json:"defaultValue"`
}

// Clamp limits v to the descriptor's range
func (d *ExpressionDescriptor) Clamp(v float64) float64 {
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// VoicePart is a span of notes on a track, positions relative to the part
type VoicePart struct {
	TrackNo  int     `json:"trackNo"`
	Position int     `json:"position"`
	Duration int     `json:"duration"`
	Notes    []*Note `json:"notes"`
}

// End returns the absolute tick where the part ends
func (p *VoicePart) End() int {
	return p.Position + p.Duration
}

// Sort keeps notes ordered by position, then tone
func (p *VoicePart) Sort() {
	sort.SliceStable(p.Notes, func(i, j int) bool {
		if p.Notes[i].Position == p.Notes[j].Position {
			return p.Notes[i].Tone < p.Notes[j].Tone
		}
		return p.Notes[i].Position < p.Notes[j].Position
	})
}

// IndexOf returns the index of a note in the part, or -1
func (p *VoicePart) IndexOf(n *Note) int {
	for i, note := range p.Notes {
		if note == n {
			return i
		}
	}
	return -1
}

// Contains reports whether the note belongs to the part
func (p *VoicePart) Contains(n *Note) bool {
	return p.IndexOf(n) >= 0
}

// Note is a single sung note
type Note struct {
	ID          string             `json:"id"`
	Position    int                `json:"position"`
	Duration    int                `json:"duration"`
	Tone        int                `json:"tone"`
	Lyric       string             `json:"lyric"`
	Pitch       *Pitch             `json:"pitch"`
	Vibrato     Vibrato            `json:"vibrato"`
	Phonemes    []*Phoneme         `json:"-"`
	Expressions map[string]float64 `json:"expressions,omitempty"`
}

// NewNote creates a note with a default flat pitch curve
func NewNote(position, duration, tone int, lyric string) *Note {
	n := &Note{
		ID:       uuid.New().String(),
		Position: position,
		Duration: duration,
		Tone:     tone,
		Lyric:    lyric,
		Pitch:    NewPitch(),
		Vibrato:  DefaultVibrato(),
	}
	n.Phonemes = []*Phoneme{{Index: 0, Parent: n, Phoneme: lyric}}
	return n
}

// End returns the tick after the note, relative to its part
func (n *Note) End() int {
	return n.Position + n.Duration
}

// RightBound is an alias of End kept for readability at call sites
func (n *Note) RightBound() int {
	return n.End()
}

// Expression returns the note's value for abbr, or the descriptor default
func (n *Note) Expression(d *ExpressionDescriptor) float64 {
	if v, ok := n.Expressions[d.Abbr]; ok {
		return v
	}
	return d.DefaultValue
}

// Clone returns a deep copy with a fresh ID
func (n *Note) Clone() *Note {
	c := *n
	c.ID = uuid.New().String()
	c.Pitch = n.Pitch.Clone()
	c.Expressions = make(map[string]float64, len(n.Expressions))
	for k, v := range n.Expressions {
		c.Expressions[k] = v
	}
	c.Phonemes = nil
	for _, ph := range n.Phonemes {
		p := *ph
		p.Parent = &c
		c.Phonemes = append(c.Phonemes, &p)
	}
	return &c
}

// PitchShape is the easing between two pitch points
type PitchShape string

const (
	ShapeEaseInOut PitchShape = "io"
	ShapeLinear    PitchShape = "l"
	ShapeEaseIn    PitchShape = "i"
	ShapeEaseOut   PitchShape = "o"
)

// PitchPoint is a pitch control point; X in ms from note start, Y in 1/10 semitone
type PitchPoint struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	Shape PitchShape `json:"shape"`
}

// Pitch is the pitch curve of a note
type Pitch struct {
	Data []PitchPoint `json:"data"`
}

// NewPitch creates the default two-point curve
func NewPitch() *Pitch {
	return &Pitch{Data: []PitchPoint{
		{X: -25, Y: 0, Shape: ShapeEaseInOut},
		{X: 25, Y: 0, Shape: ShapeEaseInOut},
	}}
}

// Clone copies the curve
func (p *Pitch) Clone() *Pitch {
	if p == nil {
		return NewPitch()
	}
	return &Pitch{Data: append([]PitchPoint(nil), p.Data...)}
}

// Vibrato parameters: Length/In/Out/Shift in percent, Period in ms, Depth in cents
type Vibrato struct {
	Enabled bool    `json:"enabled"`
	Length  float64 `json:"length"`
	Period  float64 `json:"period"`
	Depth   float64 `json:"depth"`
	In      float64 `json:"in"`
	Out     float64 `json:"out"`
	Shift   float64 `json:"shift"`
}

// Vibrato limits
const (
	VibratoMinPeriod = 5.0
	VibratoMaxPeriod = 512.0
	VibratoMaxDepth  = 200.0
)

// DefaultVibrato returns disabled vibrato with sensible parameters
func DefaultVibrato() Vibrato {
	return Vibrato{
		Length: 75,
		Period: 175,
		Depth:  25,
		In:     10,
		Out:    10,
		Shift:  0,
	}
}

// Phoneme is one rendered phoneme of a note
type Phoneme struct {
	Index         int     `json:"index"`
	Parent        *Note   `json:"-"`
	Phoneme       string  `json:"phoneme"`
	Oto           *Oto    `json:"-"`
	PositionDelta int     `json:"positionDelta"`
	PreutterDelta float64 `json:"preutterDelta"`
	OverlapDelta  float64 `json:"overlapDelta"`
}

// Position returns the phoneme start tick relative to the part
func (ph *Phoneme) Position() int {
	if ph.Parent == nil {
		return ph.PositionDelta
	}
	return ph.Parent.Position + ph.PositionDelta
}

// Preutter returns the effective preutterance in ms
func (ph *Phoneme) Preutter() float64 {
	base := 0.0
	if ph.Oto != nil {
		base = ph.Oto.Preutter
	}
	return base + ph.PreutterDelta
}

// Overlap returns the effective overlap in ms
func (ph *Phoneme) Overlap() float64 {
	base := 0.0
	if ph.Oto != nil {
		base = ph.Oto.Overlap
	}
	return base + ph.OverlapDelta
}

// TickToMs converts ticks to milliseconds at the project tempo
func (p *Project) TickToMs(ticks float64) float64 {
	return ticks * 60000.0 / p.BPM / float64(p.Resolution)
}

// MsToTick converts milliseconds to ticks at the project tempo
func (p *Project) MsToTick(ms float64) float64 {
	return ms * p.BPM * float64(p.Resolution) / 60000.0
}

// SingerOf returns the singer of the part's track
func (p *Project) SingerOf(part *VoicePart) *Singer {
	for _, t := range p.Tracks {
		if t.TrackNo == part.TrackNo {
			return t.Singer
		}
	}
	return nil
}
