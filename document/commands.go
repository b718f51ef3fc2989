package document

import (
	"fmt"

	"go-pianoroll/ustx"
)

// AddNoteCommand inserts a note into a part
type AddNoteCommand struct {
	Part *ustx.VoicePart
	Note *ustx.Note
}

func (c *AddNoteCommand) Execute() {
	c.Part.Notes = append(c.Part.Notes, c.Note)
	c.Part.Sort()
}

func (c *AddNoteCommand) Unexecute() {
	removeNote(c.Part, c.Note)
}

func (c *AddNoteCommand) String() string { return fmt.Sprintf("add note %q", c.Note.Lyric) }

// RemoveNoteCommand deletes a note from a part
type RemoveNoteCommand struct {
	Part *ustx.VoicePart
	Note *ustx.Note
}

func (c *RemoveNoteCommand) Execute() {
	removeNote(c.Part, c.Note)
}

func (c *RemoveNoteCommand) Unexecute() {
	c.Part.Notes = append(c.Part.Notes, c.Note)
	c.Part.Sort()
}

func (c *RemoveNoteCommand) String() string { return fmt.Sprintf("remove note %q", c.Note.Lyric) }

func removeNote(part *ustx.VoicePart, n *ustx.Note) {
	if i := part.IndexOf(n); i >= 0 {
		part.Notes = append(part.Notes[:i], part.Notes[i+1:]...)
	}
}

// MoveNoteCommand shifts a note in time and tone
type MoveNoteCommand struct {
	Part       *ustx.VoicePart
	Note       *ustx.Note
	DeltaPos   int
	DeltaTone   int
	appliedPos  int
	appliedTone int
}

func (c *MoveNoteCommand) Execute() {
	pos := c.Note.Position + c.DeltaPos
	if pos < 0 {
		pos = 0
	}
	c.appliedPos = pos - c.Note.Position
	c.Note.Position = pos
	tone := clampTone(c.Note.Tone + c.DeltaTone)
	c.appliedTone = tone - c.Note.Tone
	c.Note.Tone = tone
	c.Part.Sort()
}

func (c *MoveNoteCommand) Unexecute() {
	c.Note.Position -= c.appliedPos
	c.Note.Tone -= c.appliedTone
	c.Part.Sort()
}

func (c *MoveNoteCommand) String() string {
	return fmt.Sprintf("move note %q by %d ticks %d tones", c.Note.Lyric, c.DeltaPos, c.DeltaTone)
}

func clampTone(t int) int {
	if t < 0 {
		return 0
	}
	if t > ustx.MaxTone-1 {
		return ustx.MaxTone - 1
	}
	return t
}

// MinDuration is the shortest duration a resize may produce
const MinDuration = 15

// ResizeNoteCommand changes a note's duration, optionally from its start
type ResizeNoteCommand struct {
	Part      *ustx.VoicePart
	Note      *ustx.Note
	Delta     int
	FromStart bool
	applied   int
}

func (c *ResizeNoteCommand) Execute() {
	d := c.Note.Duration + c.Delta
	if d < MinDuration {
		d = MinDuration
	}
	c.applied = d - c.Note.Duration
	c.Note.Duration = d
	if c.FromStart {
		c.Note.Position -= c.applied
		c.Part.Sort()
	}
}

func (c *ResizeNoteCommand) Unexecute() {
	c.Note.Duration -= c.applied
	if c.FromStart {
		c.Note.Position += c.applied
		c.Part.Sort()
	}
}

func (c *ResizeNoteCommand) String() string {
	return fmt.Sprintf("resize note %q by %d", c.Note.Lyric, c.Delta)
}

// ChangeNoteLyricCommand replaces a note's lyric
type ChangeNoteLyricCommand struct {
	Part     *ustx.VoicePart
	Note     *ustx.Note
	NewLyric string
	oldLyric string
}

func (c *ChangeNoteLyricCommand) Execute() {
	c.oldLyric = c.Note.Lyric
	c.Note.Lyric = c.NewLyric
}

func (c *ChangeNoteLyricCommand) Unexecute() {
	c.Note.Lyric = c.oldLyric
}

func (c *ChangeNoteLyricCommand) String() string {
	return fmt.Sprintf("lyric %q -> %q", c.oldLyric, c.NewLyric)
}

// SplitNoteCommand cuts a note at a tick relative to the part
type SplitNoteCommand struct {
	Part    *ustx.VoicePart
	Note    *ustx.Note
	At      int
	right   *ustx.Note
	oldDur  int
	skipped bool
}

func (c *SplitNoteCommand) Execute() {
	c.skipped = c.At-c.Note.Position < MinDuration || c.Note.End()-c.At < MinDuration
	if c.skipped {
		return
	}
	c.oldDur = c.Note.Duration
	if c.right == nil {
		c.right = c.Note.Clone()
		c.right.Lyric = "+"
	}
	c.right.Position = c.At
	c.right.Duration = c.Note.End() - c.At
	c.Note.Duration = c.At - c.Note.Position
	c.Part.Notes = append(c.Part.Notes, c.right)
	c.Part.Sort()
}

func (c *SplitNoteCommand) Unexecute() {
	if c.skipped {
		return
	}
	removeNote(c.Part, c.right)
	c.Note.Duration = c.oldDur
}

func (c *SplitNoteCommand) String() string {
	return fmt.Sprintf("split note %q at %d", c.Note.Lyric, c.At)
}

// ChangePitchPointsCommand swaps a note's pitch curve
type ChangePitchPointsCommand struct {
	Note   *ustx.Note
	Points []ustx.PitchPoint
	old    []ustx.PitchPoint
}

func (c *ChangePitchPointsCommand) Execute() {
	c.old = append([]ustx.PitchPoint(nil), c.Note.Pitch.Data...)
	c.Note.Pitch.Data = append([]ustx.PitchPoint(nil), c.Points...)
}

func (c *ChangePitchPointsCommand) Unexecute() {
	c.Note.Pitch.Data = c.old
}

func (c *ChangePitchPointsCommand) String() string {
	return fmt.Sprintf("pitch %q (%d points)", c.Note.Lyric, len(c.Points))
}

// ChangeVibratoCommand replaces a note's vibrato parameters
type ChangeVibratoCommand struct {
	Note    *ustx.Note
	Vibrato ustx.Vibrato
	old     ustx.Vibrato
}

func (c *ChangeVibratoCommand) Execute() {
	c.old = c.Note.Vibrato
	c.Note.Vibrato = c.Vibrato
}

func (c *ChangeVibratoCommand) Unexecute() {
	c.Note.Vibrato = c.old
}

func (c *ChangeVibratoCommand) String() string {
	return fmt.Sprintf("vibrato %q enabled=%v", c.Note.Lyric, c.Vibrato.Enabled)
}

// PhonemeField selects which phoneme offset a command changes
type PhonemeField int

const (
	PhonemePosition PhonemeField = iota
	PhonemePreutter
	PhonemeOverlap
)

// ChangePhonemeOffsetCommand sets one of a phoneme's deltas
type ChangePhonemeOffsetCommand struct {
	Phoneme *ustx.Phoneme
	Field   PhonemeField
	Value   float64
	old     float64
}

func (c *ChangePhonemeOffsetCommand) Execute() {
	switch c.Field {
	case PhonemePosition:
		c.old = float64(c.Phoneme.PositionDelta)
		c.Phoneme.PositionDelta = int(c.Value)
	case PhonemePreutter:
		c.old = c.Phoneme.PreutterDelta
		c.Phoneme.PreutterDelta = c.Value
	case PhonemeOverlap:
		c.old = c.Phoneme.OverlapDelta
		c.Phoneme.OverlapDelta = c.Value
	}
}

func (c *ChangePhonemeOffsetCommand) Unexecute() {
	switch c.Field {
	case PhonemePosition:
		c.Phoneme.PositionDelta = int(c.old)
	case PhonemePreutter:
		c.Phoneme.PreutterDelta = c.old
	case PhonemeOverlap:
		c.Phoneme.OverlapDelta = c.old
	}
}

func (c *ChangePhonemeOffsetCommand) String() string {
	return fmt.Sprintf("phoneme %q field %d = %.1f", c.Phoneme.Phoneme, c.Field, c.Value)
}

// SetExpressionCommand sets (or with Reset, clears) a note expression value
type SetExpressionCommand struct {
	Note   *ustx.Note
	Abbr   string
	Value  float64
	Reset  bool
	old    float64
	hadOld bool
}

func (c *SetExpressionCommand) Execute() {
	c.old, c.hadOld = c.Note.Expressions[c.Abbr]
	if c.Reset {
		delete(c.Note.Expressions, c.Abbr)
		return
	}
	if c.Note.Expressions == nil {
		c.Note.Expressions = make(map[string]float64)
	}
	c.Note.Expressions[c.Abbr] = c.Value
}

func (c *SetExpressionCommand) Unexecute() {
	if !c.hadOld {
		delete(c.Note.Expressions, c.Abbr)
		return
	}
	if c.Note.Expressions == nil {
		c.Note.Expressions = make(map[string]float64)
	}
	c.Note.Expressions[c.Abbr] = c.old
}

func (c *SetExpressionCommand) String() string {
	return fmt.Sprintf("expression %s %q = %.1f", c.Abbr, c.Note.Lyric, c.Value)
}
