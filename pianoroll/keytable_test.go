package pianoroll

import "testing"

func TestClassifyModifiers(t *testing.T) {
	tests := []struct {
		mods    Modifiers
		command Modifiers
		want    ModClass
	}{
		{ModNone, ModCtrl, ModClassNone},
		{ModCtrl, ModCtrl, ModClassCommand},
		{ModMeta, ModMeta, ModClassCommand},
		{ModMeta, ModCtrl, ModClassOther},
		{ModShift, ModCtrl, ModClassShift},
		{ModAlt, ModCtrl, ModClassAlt},
		{ModCtrl | ModShift, ModCtrl, ModClassCommandShift},
		{ModCtrl | ModAlt, ModCtrl, ModClassOther},
		{ModShift | ModAlt, ModCtrl, ModClassOther},
		{ModCtrl | ModShift | ModAlt, ModCtrl, ModClassOther},
	}
	for _, tt := range tests {
		if got := ClassifyModifiers(tt.mods, tt.command); got != tt.want {
			t.Errorf("ClassifyModifiers(%d, %d) = %s, want %s", tt.mods, tt.command, got, tt.want)
		}
	}
}

func TestParseModClass(t *testing.T) {
	tests := []struct {
		in      string
		want    ModClass
		wantErr bool
	}{
		{"", ModClassNone, false},
		{"none", ModClassNone, false},
		{"Ctrl", ModClassCommand, false},
		{"cmd", ModClassCommand, false},
		{" shift ", ModClassShift, false},
		{"alt", ModClassAlt, false},
		{"cmd+shift", ModClassCommandShift, false},
		{"hyper", ModClassOther, true},
	}
	for _, tt := range tests {
		got, err := ParseModClass(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseModClass(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseModClass(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDefaultKeyTableLookup(t *testing.T) {
	table := DefaultKeyTable()
	tests := []struct {
		key   string
		class ModClass
		want  Action
	}{
		{"space", ModClassNone, ActionPlayPause},
		{"esc", ModClassNone, ActionEscape},
		{"f4", ModClassAlt, ActionHideWindow},
		{"2", ModClassNone, ActionToolPen},
		{"2", ModClassCommand, ActionToolPenPlus},
		{"3", ModClassAlt, ActionExpression3},
		{"p", ModClassNone, ActionToggleSnap},
		{"p", ModClassAlt, ActionSnapDivMenu},
		{"y", ModClassNone, ActionTogglePlayTone},
		{"y", ModClassCommand, ActionRedo},
		{"z", ModClassCommand, ActionUndo},
		{"z", ModClassCommandShift, ActionRedo},
		{"up", ModClassCommand, ActionOctaveUp},
		{"left", ModClassAlt, ActionShorten},
		{"right", ModClassShift, ActionExtendRight},
		{"backspace", ModClassNone, ActionDeleteNotes},
		{"]", ModClassShift, ActionPlayPosViewEnd},
		{"d", ModClassCommand, ActionSelectNone},
		{"w", ModClassAlt, ActionScrollUp},
		{"e", ModClassNone, ActionZoomIn},
	}
	for _, tt := range tests {
		got, ok := table.Lookup(tt.key, tt.class)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q, %s) = %q, %v; want %q", tt.key, tt.class, got, ok, tt.want)
		}
	}
}

func TestKeyTableUnbound(t *testing.T) {
	table := DefaultKeyTable()
	for _, c := range []KeyChord{
		{Key: "space", Class: ModClassOther},
		{Key: "esc", Class: ModClassShift},
		{Key: "g", Class: ModClassNone},
		{Key: "f4", Class: ModClassNone},
	} {
		if a, ok := table.Lookup(c.Key, c.Class); ok {
			t.Errorf("%s bound to %s", c, a)
		}
	}
}

func TestKeyTableChordsAreUnique(t *testing.T) {
	seen := map[KeyChord]Action{}
	for _, b := range defaultBindings {
		if prev, ok := seen[b.Chord]; ok {
			t.Errorf("%s bound to both %s and %s", b.Chord, prev, b.Action)
		}
		seen[b.Chord] = b.Action
	}
	if got := len(DefaultKeyTable().Bindings()); got != len(defaultBindings) {
		t.Errorf("table has %d bindings, want %d", got, len(defaultBindings))
	}
}

func TestKeyTableEveryActionRuns(t *testing.T) {
	// every bound action must be known to the dispatcher
	d, _ := newDispatcherFixture(t)
	for _, b := range DefaultKeyTable().Bindings() {
		if b.Action == ActionSnapDivMenu || b.Action == ActionPlayPause {
			continue
		}
		if handled, err := d.Run(b.Action); !handled || err != nil {
			t.Errorf("Run(%s) = %v, %v", b.Action, handled, err)
		}
	}
}

func TestKeyTableRebind(t *testing.T) {
	table := DefaultKeyTable()
	if err := table.Rebind(ActionRedo, KeyChord{Key: "r", Class: ModClassCommand}); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Lookup("y", ModClassCommand); ok {
		t.Errorf("old redo chord still bound")
	}
	if _, ok := table.Lookup("z", ModClassCommandShift); ok {
		t.Errorf("old redo chord still bound")
	}
	if a, ok := table.Lookup("r", ModClassCommand); !ok || a != ActionRedo {
		t.Errorf("new chord = %q, %v", a, ok)
	}
	if chords := table.Chords(ActionRedo); len(chords) != 1 {
		t.Errorf("redo chords = %v", chords)
	}

	if err := table.Rebind("no-such-action", KeyChord{Key: "k"}); err == nil {
		t.Errorf("expected error for unknown action")
	}

	// the default table is not shared
	if a, ok := DefaultKeyTable().Lookup("y", ModClassCommand); !ok || a != ActionRedo {
		t.Errorf("default table modified")
	}
}

func TestKeyChordString(t *testing.T) {
	tests := []struct {
		chord KeyChord
		want  string
	}{
		{KeyChord{Key: "space"}, "space"},
		{KeyChord{Key: "z", Class: ModClassCommandShift}, "cmd+shift+z"},
		{KeyChord{Key: "p", Class: ModClassAlt}, "alt+p"},
	}
	for _, tt := range tests {
		if got := tt.chord.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
