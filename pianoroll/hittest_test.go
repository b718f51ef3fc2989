package pianoroll

import (
	"testing"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// In the demo view one column is 60 ticks and tone 60 sits on row 12.
func newHitFixture(t *testing.T) (*HitTest, *NotesViewModel) {
	t.Helper()
	project := ustx.NewDemoProject()
	vm := NewNotesViewModel(document.NewManager(project), project.Parts[0])
	return NewHitTest(vm), vm
}

func TestHitTestNote(t *testing.T) {
	h, vm := newHitFixture(t)
	notes := vm.Part.Notes
	tests := []struct {
		name       string
		p          Point
		want       *ustx.Note
		wantResize bool
	}{
		{"body", Point{X: 3, Y: 12.5}, notes[0], false},
		{"last column resizes", Point{X: 7.5, Y: 12.5}, notes[0], true},
		{"next note", Point{X: 8.2, Y: 10.5}, notes[1], false},
		{"wrong row", Point{X: 3, Y: 11.5}, nil, false},
		{"past the part", Point{X: 63, Y: 12.5}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := h.HitTestNote(tt.p)
			if hit.Note != tt.want || hit.HitBody != (tt.want != nil) {
				t.Fatalf("hit = %+v", hit)
			}
			if hit.HitResizeArea != tt.wantResize {
				t.Errorf("resize = %v, want %v", hit.HitResizeArea, tt.wantResize)
			}
		})
	}
}

func TestHitTestNoteNarrow(t *testing.T) {
	h, vm := newHitFixture(t)
	vm.TickWidth = 480
	n := vm.Part.Notes[0]
	if hit := h.HitTestNote(Point{X: 0.5, Y: 12.5}); hit.Note != n || hit.HitResizeArea {
		t.Errorf("middle of a one-column note = %+v", hit)
	}
	if hit := h.HitTestNote(Point{X: 0.9, Y: 12.5}); !hit.HitResizeArea {
		t.Errorf("right edge of a one-column note not a resize area")
	}
}

func TestHitTestPitchPoint(t *testing.T) {
	h, vm := newHitFixture(t)
	n := vm.Part.Notes[0]

	// second default point is 25ms after the note start: 24 ticks
	hit := h.HitTestPitchPoint(Point{X: 0.4, Y: 12.5})
	if hit.Note != n || !hit.OnPoint || hit.Index != 1 {
		t.Errorf("point hit = %+v", hit)
	}

	vm.ShowPitch = false
	if hit := h.HitTestPitchPoint(Point{X: 0.4, Y: 12.5}); hit.Note != nil {
		t.Errorf("hit with pitch hidden: %+v", hit)
	}
}

func TestHitTestPitchSegment(t *testing.T) {
	h, vm := newHitFixture(t)
	n := vm.Part.Notes[0]
	n.Pitch.Data = []ustx.PitchPoint{
		{X: 0, Y: 20, Shape: ustx.ShapeLinear},
		{X: 500, Y: 20, Shape: ustx.ShapeLinear},
	}
	// the curve runs two tones up, on row 10
	hit := h.HitTestPitchPoint(Point{X: 4, Y: 10.5})
	if hit.Note != n || hit.OnPoint || hit.Index != 0 {
		t.Fatalf("segment hit = %+v", hit)
	}
	if hit.Y != 20 {
		t.Errorf("segment value = %v", hit.Y)
	}
	// a flat curve on the note's own row belongs to the note body
	n.Pitch.Data[0].Y, n.Pitch.Data[1].Y = 0, 0
	if hit := h.HitTestPitchPoint(Point{X: 4, Y: 12.5}); hit.Note != nil {
		t.Errorf("segment hit on note row: %+v", hit)
	}
}

func TestHitTestVibrato(t *testing.T) {
	h, vm := newHitFixture(t)
	n := vm.Part.Notes[0]

	hit := h.HitTestVibrato(Point{X: 7.5, Y: 13.5})
	if !hit.Hit || !hit.HitToggle || hit.Note != n {
		t.Fatalf("toggle = %+v", hit)
	}
	if hit := h.HitTestVibrato(Point{X: 3, Y: 13.5}); !hit.Hit || hit.HitStart || hit.HitDepth {
		t.Errorf("disabled vibrato lane = %+v", hit)
	}

	n.Vibrato.Enabled = true
	// length 75% of 480 ticks starts at tick 120, column 2
	if hit := h.HitTestVibrato(Point{X: 2.5, Y: 13.5}); !hit.HitStart {
		t.Errorf("start = %+v", hit)
	}
	// in at 10%: tick 156, column 2 as well, start wins
	// out at 10% from the end: tick 444, column 7 which is the toggle
	if hit := h.HitTestVibrato(Point{X: 3.5, Y: 13.5}); !hit.HitDepth {
		t.Errorf("depth = %+v", hit)
	}
	if hit := h.HitTestVibrato(Point{X: 4.8, Y: 13.5}); !hit.HitPeriod {
		t.Errorf("period = %+v", hit)
	}
	hit = h.HitTestVibrato(Point{X: 6.5, Y: 13.5})
	if !hit.HitShift || hit.Point != (Point{X: 6.5, Y: 13.5}) {
		t.Errorf("shift = %+v", hit)
	}

	vm.ShowVibrato = false
	if hit := h.HitTestVibrato(Point{X: 3.5, Y: 13.5}); hit.Hit {
		t.Errorf("hit with vibrato hidden")
	}
}

func TestHitTestPhonemeStrip(t *testing.T) {
	h, vm := newHitFixture(t)
	notes := vm.Part.Notes

	if hit := h.HitTestAlias(Point{X: 1.5, Y: 0.5}); !hit.Hit || hit.Phoneme != notes[0].Phonemes[0] {
		t.Errorf("alias = %+v", hit)
	}
	if hit := h.HitTestAlias(Point{X: 2.5, Y: 0.5}); hit.Hit {
		t.Errorf("alias past label = %+v", hit)
	}
	if hit := h.HitTestAlias(Point{X: 8.5, Y: 0.5}); hit.Phoneme != notes[1].Phonemes[0] {
		t.Errorf("second alias = %+v", hit)
	}

	// note 1 starts at column 8; preutter 60ms is 57.6 ticks back, column 7
	if hit := h.HitTestPhoneme(Point{X: 8.5, Y: 1.5}); !hit.HitPosition || hit.Phoneme != notes[1].Phonemes[0] {
		t.Errorf("position = %+v", hit)
	}
	if hit := h.HitTestPhoneme(Point{X: 4, Y: 1.5}); hit.Hit {
		t.Errorf("empty column = %+v", hit)
	}
	if hit := h.HitTestPhoneme(Point{X: 8.5, Y: 0.5}); hit.Hit {
		t.Errorf("alias row hit as envelope")
	}
}
