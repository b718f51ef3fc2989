package singers

import "fmt"

// BusyState is the busy dialog driven by a batch's progress events. It is
// only touched from the UI loop.
type BusyState struct {
	Visible  bool
	Done     int
	Total    int
	Finished bool
	Err      error
}

// NewBusyState opens the dialog for batches of more than one file
func NewBusyState(total int) BusyState {
	return BusyState{Visible: total > 1, Total: total}
}

// Reduce folds one progress event into the state
func (s BusyState) Reduce(p Progress) BusyState {
	s.Done = p.Done
	if p.Total > 0 {
		s.Total = p.Total
	}
	if p.Finished {
		s.Visible = false
		s.Finished = true
		s.Err = p.Err
	}
	return s
}

func (s BusyState) Text() string {
	return fmt.Sprintf("regenerating\n%d / %d", s.Done, s.Total)
}
