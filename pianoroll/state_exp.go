package pianoroll

import (
	"fmt"
	"math"

	"go-pianoroll/document"
)

// ExpSetValueState paints the primary expression of notes the pointer crosses
type ExpSetValueState struct {
	editBase
	reset bool
	last  Point
}

func NewExpSetValueState(vm *NotesViewModel, tip *ValueTip) *ExpSetValueState {
	return &ExpSetValueState{editBase: editBase{vm: vm, tip: tip, button: ButtonLeft}}
}

// NewExpResetValueState clears the primary expression back to its default
func NewExpResetValueState(vm *NotesViewModel) *ExpSetValueState {
	return &ExpSetValueState{editBase: editBase{vm: vm, button: ButtonRight}, reset: true}
}

func (s *ExpSetValueState) Name() string {
	if s.reset {
		return "exp-reset-value"
	}
	return "exp-set-value"
}

func (s *ExpSetValueState) Begin(p Point) {
	s.begin(p, true)
	s.last = p
}

// ValueAt maps an expression canvas row to a value in the descriptor's range
func (s *ExpSetValueState) ValueAt(p Point) float64 {
	d := s.vm.ExpressionDescriptor()
	h := float64(s.vm.ExpHeight)
	if h <= 1 {
		return d.Max
	}
	frac := 1 - p.Y/(h-1)
	return d.Clamp(math.Round(d.Min + frac*(d.Max-d.Min)))
}

func (s *ExpSetValueState) Update(p Point) {
	d := s.vm.ExpressionDescriptor()
	if d == nil {
		return
	}
	t0, t1 := s.vm.PointToTick(s.last), s.vm.PointToTick(p)
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	value := s.ValueAt(p)
	for _, n := range s.vm.Part.Notes {
		if float64(n.End()) <= t0 || float64(n.Position) > t1 {
			continue
		}
		cur, has := n.Expressions[d.Abbr]
		switch {
		case s.reset && has:
			s.exec(&document.SetExpressionCommand{Note: n, Abbr: d.Abbr, Reset: true})
		case !s.reset && (!has || cur != value):
			s.exec(&document.SetExpressionCommand{Note: n, Abbr: d.Abbr, Value: value})
		}
	}
	s.last = p
	if !s.reset {
		s.showTip(p, fmt.Sprintf("%s %.0f", d.Abbr, value))
	}
}

func (s *ExpSetValueState) End(p Point) { s.end() }
