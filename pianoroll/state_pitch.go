package pianoroll

import (
	"fmt"
	"math"
	"sort"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// PitchPointEditState drags one pitch point. Pressing on a segment inserts
// a point there first.
type PitchPointEditState struct {
	editBase
	note    *ustx.Note
	index   int
	onPoint bool
	x, y    float64
}

func NewPitchPointEditState(vm *NotesViewModel, tip *ValueTip, note *ustx.Note, index int, onPoint bool, x, y float64) *PitchPointEditState {
	return &PitchPointEditState{
		editBase: editBase{vm: vm, tip: tip, button: ButtonLeft},
		note:     note,
		index:    index,
		onPoint:  onPoint,
		x:        x,
		y:        y,
	}
}

func (s *PitchPointEditState) Name() string { return "pitch-point-edit" }

func (s *PitchPointEditState) Begin(p Point) {
	s.begin(p, true)
	if s.onPoint {
		return
	}
	data := append([]ustx.PitchPoint(nil), s.note.Pitch.Data...)
	shape := ustx.ShapeEaseInOut
	if s.index < len(data) {
		shape = data[s.index].Shape
	}
	s.index++
	pt := ustx.PitchPoint{X: s.x, Y: s.y, Shape: shape}
	data = append(data[:s.index], append([]ustx.PitchPoint{pt}, data[s.index:]...)...)
	s.exec(&document.ChangePitchPointsCommand{Note: s.note, Points: data})
}

func (s *PitchPointEditState) Update(p Point) {
	tick := s.vm.PointToTick(p)
	ms := s.vm.Project.TickToMs(tick - float64(s.note.Position))
	ms = clampPitchPoint(s.note, s.index, roundTo(ms, 0.1))
	y := roundTo((s.vm.PointToToneF(p)-float64(s.note.Tone))*10, 0.1)
	data := append([]ustx.PitchPoint(nil), s.note.Pitch.Data...)
	if s.index >= len(data) {
		return
	}
	if data[s.index].X != ms || data[s.index].Y != y {
		data[s.index].X, data[s.index].Y = ms, y
		s.exec(&document.ChangePitchPointsCommand{Note: s.note, Points: data})
	}
	s.showTip(p, fmt.Sprintf("%.1fms %+.1f", ms, y/10))
}

func (s *PitchPointEditState) End(p Point) { s.end() }

// DrawPitchState sketches pitch points onto the notes under the pointer
type DrawPitchState struct {
	editBase
}

func NewDrawPitchState(vm *NotesViewModel, tip *ValueTip) *DrawPitchState {
	return &DrawPitchState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}}
}

func (s *DrawPitchState) Name() string { return "draw-pitch" }

func (s *DrawPitchState) Begin(p Point) { s.begin(p, true) }

func (s *DrawPitchState) Update(p Point) {
	tick := s.vm.PointToTick(p)
	colMs := s.vm.Project.TickToMs(s.vm.TickWidth)
	for _, n := range s.vm.NotesAtTick(tick) {
		ms := roundTo(s.vm.Project.TickToMs(tick-float64(n.Position)), 0.1)
		y := roundTo((s.vm.PointToToneF(p)-float64(n.Tone))*10, 0.1)
		var data []ustx.PitchPoint
		for _, pt := range n.Pitch.Data {
			if math.Abs(pt.X-ms) >= colMs/2 {
				data = append(data, pt)
			}
		}
		data = append(data, ustx.PitchPoint{X: ms, Y: y, Shape: ustx.ShapeLinear})
		sort.SliceStable(data, func(i, j int) bool { return data[i].X < data[j].X })
		s.exec(&document.ChangePitchPointsCommand{Note: n, Points: data})
		s.showTip(p, fmt.Sprintf("%+.1f", y/10))
	}
}

func (s *DrawPitchState) End(p Point) { s.end() }

// SmoothenPitchState averages the inner pitch points of notes under the pointer
type SmoothenPitchState struct {
	editBase
}

func NewSmoothenPitchState(vm *NotesViewModel) *SmoothenPitchState {
	return &SmoothenPitchState{editBase: editBase{vm: vm, button: ButtonLeft}}
}

func (s *SmoothenPitchState) Name() string { return "smoothen-pitch" }

func (s *SmoothenPitchState) Begin(p Point) { s.begin(p, true) }

func (s *SmoothenPitchState) Update(p Point) {
	for _, n := range s.vm.NotesAtTick(s.vm.PointToTick(p)) {
		src := n.Pitch.Data
		if len(src) < 3 {
			continue
		}
		data := append([]ustx.PitchPoint(nil), src...)
		changed := false
		for i := 1; i+1 < len(src); i++ {
			y := roundTo((src[i-1].Y+2*src[i].Y+src[i+1].Y)/4, 0.1)
			if y != data[i].Y {
				data[i].Y = y
				changed = true
			}
		}
		if changed {
			s.exec(&document.ChangePitchPointsCommand{Note: n, Points: data})
		}
	}
}

func (s *SmoothenPitchState) End(p Point) { s.end() }

// ResetPitchState restores the default curve on notes under the pointer
type ResetPitchState struct {
	editBase
}

func NewResetPitchState(vm *NotesViewModel) *ResetPitchState {
	return &ResetPitchState{editBase: editBase{vm: vm, button: ButtonRight}}
}

func (s *ResetPitchState) Name() string { return "reset-pitch" }

func (s *ResetPitchState) Begin(p Point) { s.begin(p, true) }

func (s *ResetPitchState) Update(p Point) {
	for _, n := range s.vm.NotesAtTick(s.vm.PointToTick(p)) {
		if pitchIsDefault(n.Pitch) {
			continue
		}
		s.exec(&document.ChangePitchPointsCommand{Note: n, Points: ustx.NewPitch().Data})
	}
}

func (s *ResetPitchState) End(p Point) { s.end() }

func pitchIsDefault(p *ustx.Pitch) bool {
	def := ustx.NewPitch().Data
	if p == nil || len(p.Data) != len(def) {
		return false
	}
	for i := range def {
		if p.Data[i] != def[i] {
			return false
		}
	}
	return true
}
