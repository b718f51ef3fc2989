package pianoroll

// KeyboardPlayState sounds the piano key under the pointer
type KeyboardPlayState struct {
	editBase
	preview TonePreview
	tone    int
}

func NewKeyboardPlayState(vm *NotesViewModel, preview TonePreview) *KeyboardPlayState {
	return &KeyboardPlayState{editBase: editBase{vm: vm, button: ButtonLeft}, preview: preview, tone: -1}
}

func (s *KeyboardPlayState) Name() string { return "keyboard-play" }

func (s *KeyboardPlayState) Begin(p Point) { s.begin(p, false) }

func (s *KeyboardPlayState) Update(p Point) {
	tone := s.vm.PointToTone(p)
	if tone == s.tone {
		return
	}
	s.release()
	s.tone = tone
	if s.preview != nil {
		s.preview.NoteOn(tone)
	}
}

func (s *KeyboardPlayState) End(p Point) {
	s.release()
	s.end()
}

func (s *KeyboardPlayState) release() {
	if s.tone >= 0 && s.preview != nil {
		s.preview.NoteOff(s.tone)
	}
	s.tone = -1
}
