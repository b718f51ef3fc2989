package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"

	"go-pianoroll/midi"
	pr "go-pianoroll/pianoroll"
	"go-pianoroll/ustx"
	"go-pianoroll/widgets"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "tone":
		err = playTone(os.Args[2:])
	case "demo":
		err = playDemo(os.Args[2:])
	default:
		usage()
	}
	if err != nil {
		fmt.Println(widgets.RenderError(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                - List all MIDI ports")
	fmt.Println("  tone <port> <note>  - Play one tone preview (note 0-127 or name like C4)")
	fmt.Println("  demo [port]         - Play the demo part")
}

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Printf("(waiting up to %s...)\n", midi.DefaultTimeout)
	ins, err := midi.InPorts(midi.DefaultTimeout)
	if err != nil {
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return err
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}

	fmt.Println("\n=== MIDI Output Ports ===")
	outs, err := midi.OutPorts(midi.DefaultTimeout)
	if err != nil {
		return err
	}
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	return nil
}

func parseTone(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	for tone := range ustx.MaxTone {
		if pr.ToneName(tone) == s {
			return tone, nil
		}
	}
	return 0, fault.New("unknown note "+strconv.Quote(s), fmsg.WithDesc("parse note", "Unknown note "+s+"; use 0-127 or a name like C4"))
}

func playTone(args []string) error {
	if len(args) < 2 {
		usage()
		return nil
	}
	tone, err := parseTone(args[1])
	if err != nil {
		return err
	}

	player := midi.NewTonePlayer(0, 100)
	if err := player.Open(args[0], midi.DefaultTimeout); err != nil {
		return err
	}
	defer player.Close()

	fmt.Printf("Playing %s on %q...\n", pr.ToneName(tone), args[0])
	player.NoteOn(tone)
	time.Sleep(500 * time.Millisecond)
	player.NoteOff(tone)
	return nil
}

func playDemo(args []string) error {
	port := ""
	if len(args) > 0 {
		port = args[0]
	}
	player := midi.NewTonePlayer(0, 100)
	if err := player.Open(port, midi.DefaultTimeout); err != nil {
		return err
	}
	defer player.Close()

	project := ustx.NewDemoProject()
	part := project.Parts[0]
	transport := midi.NewTransport(player)
	if err := transport.Start(project, part, part.Position); err != nil {
		return err
	}
	defer transport.Stop()

	length := time.Duration(project.TickToMs(float64(part.Duration))) * time.Millisecond
	fmt.Printf("Playing demo part (%s)...\n", length)
	time.Sleep(length)
	return nil
}
