package pianoroll

import (
	"fmt"
	"math"

	"go-pianoroll/document"
	"go-pianoroll/ustx"
)

// phonemeDrag picks what a phoneme drag adjusts
type phonemeDrag uint8

const (
	dragPosition phonemeDrag = iota
	dragPreutter
	dragOverlap
)

// PhonemeChangeState drags a phoneme's position, preutterance or overlap
type PhonemeChangeState struct {
	editBase
	phoneme *ustx.Phoneme
	drag    phonemeDrag
	initial int
}

func NewPhonemeMoveState(vm *NotesViewModel, tip *ValueTip, ph *ustx.Phoneme) *PhonemeChangeState {
	return newPhonemeChangeState(vm, tip, ph, dragPosition)
}

func NewPhonemeChangePreutterState(vm *NotesViewModel, tip *ValueTip, ph *ustx.Phoneme) *PhonemeChangeState {
	return newPhonemeChangeState(vm, tip, ph, dragPreutter)
}

func NewPhonemeChangeOverlapState(vm *NotesViewModel, tip *ValueTip, ph *ustx.Phoneme) *PhonemeChangeState {
	return newPhonemeChangeState(vm, tip, ph, dragOverlap)
}

func newPhonemeChangeState(vm *NotesViewModel, tip *ValueTip, ph *ustx.Phoneme, drag phonemeDrag) *PhonemeChangeState {
	return &PhonemeChangeState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}, phoneme: ph, drag: drag}
}

func (s *PhonemeChangeState) Name() string {
	switch s.drag {
	case dragPreutter:
		return "phoneme-change-preutter"
	case dragOverlap:
		return "phoneme-change-overlap"
	default:
		return "phoneme-move"
	}
}

func (s *PhonemeChangeState) Begin(p Point) {
	s.begin(p, true)
	s.initial = s.phoneme.PositionDelta
}

func (s *PhonemeChangeState) Update(p Point) {
	project := s.vm.Project
	tick := s.vm.PointToTick(p)
	var oto ustx.Oto
	if s.phoneme.Oto != nil {
		oto = *s.phoneme.Oto
	}
	switch s.drag {
	case dragPosition:
		delta := s.initial + int(math.Round(tick-s.vm.PointToTick(s.start)))
		if delta != s.phoneme.PositionDelta {
			s.exec(&document.ChangePhonemeOffsetCommand{Phoneme: s.phoneme, Field: document.PhonemePosition, Value: float64(delta)})
		}
		s.showTip(p, fmt.Sprintf("%+d ticks", s.phoneme.PositionDelta))
	case dragPreutter:
		preutter := math.Max(0, project.TickToMs(float64(s.phoneme.Position())-tick))
		delta := math.Round(preutter-oto.Preutter)
		if delta != s.phoneme.PreutterDelta {
			s.exec(&document.ChangePhonemeOffsetCommand{Phoneme: s.phoneme, Field: document.PhonemePreutter, Value: delta})
		}
		s.showTip(p, fmt.Sprintf("preutter %.0fms", s.phoneme.Preutter()))
	case dragOverlap:
		left := float64(s.phoneme.Position()) - project.MsToTick(s.phoneme.Preutter())
		overlap := project.TickToMs(tick - left)
		delta := math.Round(overlap - oto.Overlap)
		if delta != s.phoneme.OverlapDelta {
			s.exec(&document.ChangePhonemeOffsetCommand{Phoneme: s.phoneme, Field: document.PhonemeOverlap, Value: delta})
		}
		s.showTip(p, fmt.Sprintf("overlap %.0fms", s.phoneme.Overlap()))
	}
}

func (s *PhonemeChangeState) End(p Point) { s.end() }

// PhonemeResetState clears the offsets of phonemes under the pointer
type PhonemeResetState struct {
	editBase
}

func NewPhonemeResetState(vm *NotesViewModel) *PhonemeResetState {
	return &PhonemeResetState{editBase: editBase{vm: vm, button: ButtonRight}}
}

func (s *PhonemeResetState) Name() string { return "phoneme-reset" }

func (s *PhonemeResetState) Begin(p Point) { s.begin(p, true) }

func (s *PhonemeResetState) Update(p Point) {
	hit := s.vm.HitTest.HitTestPhoneme(p)
	if !hit.Hit {
		return
	}
	ph := hit.Phoneme
	if ph.PositionDelta != 0 {
		s.exec(&document.ChangePhonemeOffsetCommand{Phoneme: ph, Field: document.PhonemePosition})
	}
	if ph.PreutterDelta != 0 {
		s.exec(&document.ChangePhonemeOffsetCommand{Phoneme: ph, Field: document.PhonemePreutter})
	}
	if ph.OverlapDelta != 0 {
		s.exec(&document.ChangePhonemeOffsetCommand{Phoneme: ph, Field: document.PhonemeOverlap})
	}
}

func (s *PhonemeResetState) End(p Point) { s.end() }
