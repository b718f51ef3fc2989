// Package singers regenerates voicebank frequency curves in the background.
package singers

import (
	"context"
	"os/exec"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"go-pianoroll/ustx"
)

// Generator writes the frequency curve for one wav file
type Generator interface {
	Generate(ctx context.Context, wavPath string) error
}

// GeneratorFunc adapts a function to Generator
type GeneratorFunc func(ctx context.Context, wavPath string) error

func (f GeneratorFunc) Generate(ctx context.Context, wavPath string) error {
	return f(ctx, wavPath)
}

// CommandGenerator runs an external tool once per file. Args may contain
// {wav}; without it the path is appended.
type CommandGenerator struct {
	Command string
	Args    []string
}

func (g CommandGenerator) Generate(ctx context.Context, wavPath string) error {
	args := g.args(wavPath)
	out, err := exec.CommandContext(ctx, g.Command, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			msg = err.Error()
		}
		return fault.Wrap(err,
			fmsg.WithDesc("run "+g.Command+" "+wavPath, "Could not regenerate "+wavPath+": "+msg),
			ftag.With("regen"))
	}
	return nil
}

func (g CommandGenerator) args(wavPath string) []string {
	args := make([]string, 0, len(g.Args)+1)
	substituted := false
	for _, a := range g.Args {
		if strings.Contains(a, "{wav}") {
			a = strings.ReplaceAll(a, "{wav}", wavPath)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, wavPath)
	}
	return args
}

// Distinct drops repeated and empty paths, keeping first-seen order
func Distinct(files []string) []string {
	seen := make(map[string]bool, len(files))
	var out []string
	for _, f := range files {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// FilesOf lists the sample files behind the phonemes of notes
func FilesOf(notes []*ustx.Note) []string {
	var files []string
	for _, n := range notes {
		for _, ph := range n.Phonemes {
			if ph.Oto != nil {
				files = append(files, ph.Oto.File)
			}
		}
	}
	return Distinct(files)
}
