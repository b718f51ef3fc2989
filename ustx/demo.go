package ustx

import "path/filepath"

// NewProject creates an empty project with the standard expressions
func NewProject(name string) *Project {
	return &Project{
		Name:       name,
		Resolution: DefaultResolution,
		BPM:        DefaultBPM,
		Expressions: map[string]*ExpressionDescriptor{
			"vel": {Name: "velocity", Abbr: "vel", Min: 0, Max: 200, DefaultValue: 100},
			"vol": {Name: "volume", Abbr: "vol", Min: 0, Max: 200, DefaultValue: 100},
			"gen": {Name: "gender", Abbr: "gen", Min: -100, Max: 100, DefaultValue: 0},
			"bre": {Name: "breath", Abbr: "bre", Min: 0, Max: 100, DefaultValue: 0},
			"clr": {Name: "clarity", Abbr: "clr", Min: 0, Max: 100, DefaultValue: 0},
		},
	}
}

// NewDemoProject builds a small project with one singer and one part
func NewDemoProject() *Project {
	p := NewProject("demo")

	singer := &Singer{Name: "Demo", Location: filepath.Join("voicebanks", "demo")}
	for _, alias := range []string{"a", "ka", "sa", "ta", "na", "ha", "ma", "ra", "la", "i", "u", "e", "o"} {
		singer.Otos = append(singer.Otos, &Oto{
			Alias:     alias,
			File:      filepath.Join(singer.Location, alias+".wav"),
			Offset:    40,
			Consonant: 90,
			Cutoff:    -200,
			Preutter:  60,
			Overlap:   20,
		})
	}
	p.Tracks = append(p.Tracks, &Track{TrackNo: 0, Singer: singer})

	part := &VoicePart{TrackNo: 0, Position: 0, Duration: 16 * DefaultResolution}
	lyrics := []string{"ka", "sa", "ta", "na", "ha", "ma", "ra", "la"}
	tones := []int{60, 62, 64, 65, 67, 65, 64, 62}
	for i, lyric := range lyrics {
		part.Notes = append(part.Notes, NewNote(i*DefaultResolution, DefaultResolution, tones[i], lyric))
	}
	p.Parts = append(p.Parts, part)
	p.ResolvePhonemes(part)
	return p
}

// ResolvePhonemes rebuilds each note's phoneme from its lyric and the singer's otos
func (p *Project) ResolvePhonemes(part *VoicePart) {
	singer := p.SingerOf(part)
	for _, n := range part.Notes {
		var prev *Phoneme
		if len(n.Phonemes) > 0 {
			prev = n.Phonemes[0]
		}
		ph := &Phoneme{Index: 0, Parent: n, Phoneme: n.Lyric, Oto: singer.FindOto(n.Lyric)}
		if prev != nil {
			ph.PositionDelta = prev.PositionDelta
			ph.PreutterDelta = prev.PreutterDelta
			ph.OverlapDelta = prev.OverlapDelta
		}
		n.Phonemes = []*Phoneme{ph}
	}
}
