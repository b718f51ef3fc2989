package singers

import (
	"os/exec"
	"strings"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"

	"go-pianoroll/debug"
	"go-pianoroll/ustx"
)

// ExternalOtoEditor opens an oto entry in a labeling tool such as vLabeler.
// Args may use {singer}, {alias} and {file}; the default passes the
// voicebank directory and the alias.
type ExternalOtoEditor struct {
	Path string
	Args []string

	start func(*exec.Cmd) error
}

// NewExternalOtoEditor returns nil when no editor path is configured, so the
// caller falls back to the built-in oto notification.
func NewExternalOtoEditor(path string, args ...string) *ExternalOtoEditor {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return &ExternalOtoEditor{Path: path, Args: args}
}

func (e *ExternalOtoEditor) GotoOto(singer *ustx.Singer, oto *ustx.Oto) error {
	if singer == nil || oto == nil {
		return fault.New("no oto to open",
			fmsg.WithDesc("goto oto", "This phoneme has no oto entry"),
			ftag.With("oto"))
	}
	cmd := exec.Command(e.Path, e.args(singer, oto)...)
	start := e.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return fault.Wrap(err,
			fmsg.WithDesc("start "+e.Path, "Could not open the oto editor at "+e.Path),
			ftag.With("oto"))
	}
	debug.Log("oto", "opened %s %q in %s", singer.Name, oto.Alias, e.Path)
	if cmd.Process != nil {
		go cmd.Wait()
	}
	return nil
}

func (e *ExternalOtoEditor) args(singer *ustx.Singer, oto *ustx.Oto) []string {
	if len(e.Args) == 0 {
		return []string{singer.Location, oto.Alias}
	}
	r := strings.NewReplacer("{singer}", singer.Location, "{alias}", oto.Alias, "{file}", oto.File)
	out := make([]string, len(e.Args))
	for i, a := range e.Args {
		out[i] = r.Replace(a)
	}
	return out
}
