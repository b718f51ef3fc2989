// Package midi sends tone previews and part playback to a MIDI output port.
package midi

import (
	"strings"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register driver

	"go-pianoroll/debug"
)

// DefaultTimeout bounds port discovery. CoreMIDI can hang indefinitely.
const DefaultTimeout = 3 * time.Second

// OutPorts lists output ports, giving up after timeout
func OutPorts(timeout time.Duration) ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()
	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(timeout):
		debug.Log("midi", "port scan timed out after %s", timeout)
		return nil, fault.New("midi port scan timed out",
			fmsg.WithDesc("port scan timeout", "MIDI ports did not respond (try: sudo killall coreaudiod midiserver)"),
			ftag.With("midi"))
	}
}

// InPorts lists input ports, giving up after timeout
func InPorts(timeout time.Duration) ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()
	select {
	case ins := <-ch:
		return ins, nil
	case <-time.After(timeout):
		return nil, fault.New("midi port scan timed out",
			fmsg.WithDesc("port scan timeout", "MIDI ports did not respond"),
			ftag.With("midi"))
	}
}

// FindOut returns the output port whose name contains name (case-insensitive).
// An empty name picks the first port.
func FindOut(name string, timeout time.Duration) (drivers.Out, error) {
	outs, err := OutPorts(timeout)
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(name)
	for _, p := range outs {
		if want == "" || strings.Contains(strings.ToLower(p.String()), want) {
			return p, nil
		}
	}
	return nil, fault.New("no matching output port "+name,
		fmsg.WithDesc("port not found", "No MIDI output named \""+name+"\""),
		ftag.With("midi"))
}
