package pianoroll

import (
	"fmt"
	"math"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// EditState is one modal pointer interaction. The router calls Begin once,
// Update for every pointer position and End exactly once.
type EditState interface {
	Begin(p Point)
	Update(p Point)
	End(p Point)
	Button() MouseButton
	Name() string
}

// TonePreview sounds tones while drawing notes or playing the keyboard
type TonePreview interface {
	NoteOn(tone int)
	NoteOff(tone int)
}

// editBase carries what every state needs. States that change the document
// open an undo group in Begin and close it in End.
type editBase struct {
	vm      *NotesViewModel
	tip     *ValueTip
	button  MouseButton
	start   Point
	grouped bool
}

func (s *editBase) Button() MouseButton { return s.button }

func (s *editBase) begin(p Point, group bool) {
	s.start = p
	if group {
		s.vm.Doc.StartUndoGroup()
		s.grouped = true
	}
}

func (s *editBase) end() {
	if s.grouped {
		s.vm.Doc.EndUndoGroup()
		s.grouped = false
	}
	if s.tip != nil {
		s.tip.Hide()
	}
}

func (s *editBase) showTip(p Point, text string) {
	if s.tip == nil {
		return
	}
	s.tip.Show()
	s.tip.SetPointer(p)
	s.tip.Update(text)
}

func (s *editBase) exec(cmd document.Command) {
	s.vm.Doc.ExecuteCmd(cmd)
}

var toneNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ToneName formats a tone as a note name with octave, 60 = C4
func ToneName(tone int) string {
	return fmt.Sprintf("%s%d", toneNames[((tone%12)+12)%12], tone/12-1)
}

// FormatTick formats a tick as bar.beat.tick in 4/4
func FormatTick(tick, resolution int) string {
	if resolution <= 0 {
		resolution = ustx.DefaultResolution
	}
	bar := tick / (resolution * 4)
	beat := tick % (resolution * 4) / resolution
	return fmt.Sprintf("%d.%d.%03d", bar+1, beat+1, tick%resolution)
}

func clampPitchPoint(n *ustx.Note, idx int, x float64) float64 {
	data := n.Pitch.Data
	if idx > 0 && x < data[idx-1].X {
		x = data[idx-1].X
	}
	if idx+1 < len(data) && x > data[idx+1].X {
		x = data[idx+1].X
	}
	return x
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}
