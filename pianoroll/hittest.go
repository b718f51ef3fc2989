package pianoroll

import (
	"math"

	"go-pianoroll/ustx"
)

// NoteHit is the result of probing for a note body
type NoteHit struct {
	HitBody       bool
	HitResizeArea bool
	Note          *ustx.Note
}

// PitchPointHit is a pitch control point (OnPoint) or the segment after Index
type PitchPointHit struct {
	Note    *ustx.Note
	Index   int
	OnPoint bool
	X, Y    float64 // ms from note start, tenths of a semitone
}

// VibratoHit reports which vibrato handle lies under the pointer
type VibratoHit struct {
	Hit          bool
	HitToggle    bool
	HitStart     bool
	HitIn        bool
	HitOut       bool
	HitDepth     bool
	HitPeriod    bool
	HitShift     bool
	Note         *ustx.Note
	Point        Point
	InitialShift float64
}

// PhonemeHit reports a phoneme envelope handle
type PhonemeHit struct {
	Hit         bool
	HitPosition bool
	HitPreutter bool
	HitOverlap  bool
	Phoneme     *ustx.Phoneme
}

// AliasHit reports a phoneme alias label
type AliasHit struct {
	Hit     bool
	Phoneme *ustx.Phoneme
}

// HitTester classifies what lies under a canvas point. Implementations
// must be pure; the router calls them on every pointer move.
type HitTester interface {
	HitTestNote(p Point) NoteHit
	HitTestPitchPoint(p Point) PitchPointHit
	HitTestVibrato(p Point) VibratoHit
	HitTestPhoneme(p Point) PhonemeHit
	HitTestAlias(p Point) AliasHit
}

// HitTest is the cell-geometry hit tester for a NotesViewModel.
//
// Notes occupy their tone row. With vibrato shown, the row beneath a note
// is its vibrato lane. The phoneme strip has the alias labels on row 0 and
// the envelope handles on row 1.
type HitTest struct {
	vm *NotesViewModel
}

// NewHitTest creates a hit tester reading vm's geometry
func NewHitTest(vm *NotesViewModel) *HitTest {
	return &HitTest{vm: vm}
}

func (h *HitTest) notes() []*ustx.Note {
	if h.vm.Part == nil {
		return nil
	}
	return h.vm.Part.Notes
}

func (h *HitTest) noteRowAt(n *ustx.Note, p Point) bool {
	top := h.vm.ToneToY(float64(n.Tone))
	return p.Y >= top && p.Y < top+float64(h.vm.TrackHeight)
}

func (h *HitTest) HitTestNote(p Point) NoteHit {
	tick := h.vm.PointToTick(p)
	// later notes draw on top
	notes := h.notes()
	for i := len(notes) - 1; i >= 0; i-- {
		n := notes[i]
		if !h.noteRowAt(n, p) || tick < float64(n.Position) || tick >= float64(n.End()) {
			continue
		}
		hit := NoteHit{HitBody: true, Note: n}
		startX, endX := h.vm.TickToX(float64(n.Position)), h.vm.TickToX(float64(n.End()))
		if endX-startX >= 2 {
			hit.HitResizeArea = p.X >= endX-1
		} else {
			hit.HitResizeArea = p.X > endX-0.25
		}
		return hit
	}
	return NoteHit{}
}

// pitchPointPos returns the canvas position of point i of n
func (h *HitTest) pitchPointPos(n *ustx.Note, pt ustx.PitchPoint) Point {
	project := h.vm.Project
	tick := float64(n.Position) + project.MsToTick(pt.X)
	tone := float64(n.Tone) + pt.Y/10
	return Point{X: h.vm.TickToX(tick), Y: h.vm.ToneToY(tone) + 0.5*float64(h.vm.TrackHeight)}
}

func (h *HitTest) HitTestPitchPoint(p Point) PitchPointHit {
	if !h.vm.ShowPitch || h.vm.Project == nil {
		return PitchPointHit{}
	}
	const radius = 0.5
	notes := h.notes()
	for i := len(notes) - 1; i >= 0; i-- {
		n := notes[i]
		if n.Pitch == nil {
			continue
		}
		for j, pt := range n.Pitch.Data {
			pos := h.pitchPointPos(n, pt)
			if math.Abs(pos.X-p.X) <= radius && math.Abs(pos.Y-p.Y) <= radius {
				return PitchPointHit{Note: n, Index: j, OnPoint: true, X: pt.X, Y: pt.Y}
			}
		}
	}
	// Segments only count where the curve has left the note's own row,
	// so the note body stays grabbable.
	for i := len(notes) - 1; i >= 0; i-- {
		n := notes[i]
		if n.Pitch == nil || h.noteRowAt(n, p) {
			continue
		}
		data := n.Pitch.Data
		for j := 0; j+1 < len(data); j++ {
			a, b := h.pitchPointPos(n, data[j]), h.pitchPointPos(n, data[j+1])
			if p.X < a.X || p.X > b.X || b.X == a.X {
				continue
			}
			t := (p.X - a.X) / (b.X - a.X)
			y := a.Y + t*(b.Y-a.Y)
			if math.Abs(y-p.Y) <= radius {
				ms := data[j].X + t*(data[j+1].X-data[j].X)
				val := data[j].Y + t*(data[j+1].Y-data[j].Y)
				return PitchPointHit{Note: n, Index: j, X: ms, Y: val}
			}
		}
	}
	return PitchPointHit{}
}

// VibratoSpan returns the vibrato start tick and length in ticks
func VibratoSpan(n *ustx.Note) (start, length float64) {
	length = float64(n.Duration) * n.Vibrato.Length / 100
	return float64(n.End()) - length, length
}

func (h *HitTest) HitTestVibrato(p Point) VibratoHit {
	if !h.vm.ShowVibrato {
		return VibratoHit{}
	}
	tick := h.vm.PointToTick(p)
	notes := h.notes()
	for i := len(notes) - 1; i >= 0; i-- {
		n := notes[i]
		laneTop := h.vm.ToneToY(float64(n.Tone)) + float64(h.vm.TrackHeight)
		if p.Y < laneTop || p.Y >= laneTop+1 {
			continue
		}
		if tick < float64(n.Position) || tick >= float64(n.End()) {
			continue
		}
		if h.coveredByNote(p) {
			continue
		}
		hit := VibratoHit{Hit: true, Note: n}
		endX := h.vm.TickToX(float64(n.End()))
		if p.X >= endX-1 {
			hit.HitToggle = true
			return hit
		}
		if !n.Vibrato.Enabled {
			return hit
		}
		start, length := VibratoSpan(n)
		inTick := start + length*n.Vibrato.In/100
		outTick := float64(n.End()) - length*n.Vibrato.Out/100
		col := math.Floor(p.X)
		switch {
		case col == math.Floor(h.vm.TickToX(start)):
			hit.HitStart = true
		case col == math.Floor(h.vm.TickToX(inTick)):
			hit.HitIn = true
		case col == math.Floor(h.vm.TickToX(outTick)):
			hit.HitOut = true
		case tick > inTick && tick < outTick:
			third := (outTick - inTick) / 3
			switch {
			case tick < inTick+third:
				hit.HitDepth = true
			case tick < inTick+2*third:
				hit.HitPeriod = true
			default:
				hit.HitShift = true
				hit.Point = p
				hit.InitialShift = n.Vibrato.Shift
			}
		}
		return hit
	}
	return VibratoHit{}
}

func (h *HitTest) coveredByNote(p Point) bool {
	return h.HitTestNote(p).Note != nil
}

// phonemeX returns the canvas columns of a phoneme's position, preutter and overlap
func (h *HitTest) phonemeX(ph *ustx.Phoneme) (pos, pre, ovl float64) {
	project := h.vm.Project
	tick := float64(ph.Position())
	pos = h.vm.TickToX(tick)
	pre = h.vm.TickToX(tick - project.MsToTick(ph.Preutter()))
	ovl = h.vm.TickToX(tick - project.MsToTick(ph.Preutter()) + project.MsToTick(ph.Overlap()))
	return pos, pre, ovl
}

func (h *HitTest) HitTestPhoneme(p Point) PhonemeHit {
	if !h.vm.ShowPhoneme || h.vm.Project == nil || p.Y < 1 || p.Y >= 2 {
		return PhonemeHit{}
	}
	col := math.Floor(p.X)
	for _, n := range h.notes() {
		for _, ph := range n.Phonemes {
			pos, pre, ovl := h.phonemeX(ph)
			switch col {
			case math.Floor(pos):
				return PhonemeHit{Hit: true, HitPosition: true, Phoneme: ph}
			case math.Floor(pre):
				return PhonemeHit{Hit: true, HitPreutter: true, Phoneme: ph}
			case math.Floor(ovl):
				return PhonemeHit{Hit: true, HitOverlap: true, Phoneme: ph}
			}
		}
	}
	return PhonemeHit{}
}

func (h *HitTest) HitTestAlias(p Point) AliasHit {
	if !h.vm.ShowPhoneme || p.Y < 0 || p.Y >= 1 {
		return AliasHit{}
	}
	for _, n := range h.notes() {
		for _, ph := range n.Phonemes {
			x := math.Floor(h.vm.TickToX(float64(ph.Position())))
			w := float64(len([]rune(ph.Phoneme)))
			if w < 1 {
				w = 1
			}
			if p.X >= x && p.X < x+w {
				return AliasHit{Hit: true, Phoneme: ph}
			}
		}
	}
	return AliasHit{}
}
