package pianoroll

import (
	"fmt"
	"math"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// VibratoHandle picks which vibrato parameter a drag changes
type VibratoHandle uint8

const (
	VibratoStart VibratoHandle = iota
	VibratoIn
	VibratoOut
	VibratoDepth
	VibratoPeriod
	VibratoShift
)

var vibratoStateNames = map[VibratoHandle]string{
	VibratoStart:  "vibrato-change-start",
	VibratoIn:     "vibrato-change-in",
	VibratoOut:    "vibrato-change-out",
	VibratoDepth:  "vibrato-change-depth",
	VibratoPeriod: "vibrato-change-period",
	VibratoShift:  "vibrato-change-shift",
}

// VibratoChangeState drags one vibrato handle of a note
type VibratoChangeState struct {
	editBase
	note         *ustx.Note
	handle       VibratoHandle
	initial      ustx.Vibrato
	anchor       Point
	initialShift float64
}

func NewVibratoChangeState(vm *NotesViewModel, tip *ValueTip, note *ustx.Note, handle VibratoHandle) *VibratoChangeState {
	return &VibratoChangeState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}, note: note, handle: handle}
}

// NewVibratoShiftState starts a shift drag anchored at the hit point
func NewVibratoShiftState(vm *NotesViewModel, tip *ValueTip, note *ustx.Note, anchor Point, initialShift float64) *VibratoChangeState {
	s := NewVibratoChangeState(vm, tip, note, VibratoShift)
	s.anchor = anchor
	s.initialShift = initialShift
	return s
}

func (s *VibratoChangeState) Name() string { return vibratoStateNames[s.handle] }

func (s *VibratoChangeState) Begin(p Point) {
	s.begin(p, true)
	s.initial = s.note.Vibrato
	if s.handle != VibratoShift {
		s.anchor = p
	}
}

func (s *VibratoChangeState) Update(p Point) {
	v := s.note.Vibrato
	tick := s.vm.PointToTick(p)
	start, length := VibratoSpan(s.note)
	var tip string
	switch s.handle {
	case VibratoStart:
		v.Length = clampFloat(math.Round((float64(s.note.End())-tick)/float64(s.note.Duration)*100), 0, 100)
		tip = fmt.Sprintf("length %.0f%%", v.Length)
	case VibratoIn:
		if length > 0 {
			v.In = clampFloat(math.Round((tick-start)/length*100), 0, 100-v.Out)
		}
		tip = fmt.Sprintf("in %.0f%%", v.In)
	case VibratoOut:
		if length > 0 {
			v.Out = clampFloat(math.Round((float64(s.note.End())-tick)/length*100), 0, 100-v.In)
		}
		tip = fmt.Sprintf("out %.0f%%", v.Out)
	case VibratoDepth:
		// one row up is ten cents
		v.Depth = clampFloat(s.initial.Depth+(s.anchor.Y-p.Y)*10, 0, ustx.VibratoMaxDepth)
		tip = fmt.Sprintf("depth %.0f", v.Depth)
	case VibratoPeriod:
		dms := s.vm.Project.TickToMs((p.X - s.anchor.X) * s.vm.TickWidth)
		v.Period = clampFloat(math.Round(s.initial.Period+dms), ustx.VibratoMinPeriod, ustx.VibratoMaxPeriod)
		tip = fmt.Sprintf("period %.0fms", v.Period)
	case VibratoShift:
		periodTicks := s.vm.Project.MsToTick(s.initial.Period)
		if periodTicks > 0 {
			shift := s.initialShift + (p.X-s.anchor.X)*s.vm.TickWidth/periodTicks*100
			v.Shift = math.Round(math.Mod(math.Mod(shift, 100)+100, 100))
		}
		tip = fmt.Sprintf("shift %.0f%%", v.Shift)
	}
	if v != s.note.Vibrato {
		s.exec(&document.ChangeVibratoCommand{Note: s.note, Vibrato: v})
	}
	s.showTip(p, tip)
}

func (s *VibratoChangeState) End(p Point) { s.end() }
