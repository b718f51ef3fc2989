package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/midi"
	pr "go-pianoroll/pianoroll"
	"go-pianoroll/singers"
	"go-pianoroll/theme"
	"go-pianoroll/tui"
	"go-pianoroll/ustx"
	"go-pianoroll/widgets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println(widgets.RenderError(err))
		cfg = config.DefaultConfig()
	}

	if cfg.Debug || os.Getenv("PIANOROLL_DEBUG") == "1" {
		if err := debug.Enable(debug.DefaultPath()); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	palette, err := theme.LoadOrDefault(cfg.Palette)
	if err != nil {
		debug.Log("main", "palette: %v", err)
	}
	th := theme.New(palette)

	project := ustx.NewDemoProject()
	doc := document.NewManager(project)

	keys := pr.DefaultKeyTable()
	overrides, err := config.LoadKeyOverrides(cfg.KeysPath())
	if err == nil {
		err = tui.ApplyKeyOverrides(keys, overrides)
	}
	if err != nil {
		fmt.Println(widgets.RenderError(err))
	}

	// Tone preview and playback go to the first MIDI output unless one is named
	tone := midi.NewTonePlayer(cfg.TonePreview.Channel, cfg.TonePreview.Velocity)
	if err := tone.Open(cfg.TonePreview.PortName, midi.DefaultTimeout); err != nil {
		debug.Log("main", "no tone preview: %v", err)
	}
	defer tone.Close()
	transport := midi.NewTransport(tone)
	defer transport.Stop()

	regen := singers.NewRegenerator(
		singers.CommandGenerator{Command: cfg.FrqTool.Command, Args: cfg.FrqTool.Args},
		cfg.FrqTool.Parallelism,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Reload config on change
	configs := make(chan tui.ConfigMsg, 1)
	if path, err := config.Path(); err == nil {
		go func() {
			err := config.Watch(ctx, path, func(c *config.Config, err error) {
				select {
				case configs <- tui.ConfigMsg{Config: c, Err: err}:
				case <-ctx.Done():
				}
			})
			if err != nil {
				debug.Log("main", "config watch: %v", err)
			}
		}()
	}

	opts := tui.Options{
		Config:    cfg,
		Doc:       doc,
		Part:      project.Parts[0],
		Theme:     th,
		Keys:      keys,
		Preview:   tone,
		Transport: transport,
		Regen:     regen,
		Configs:   configs,
	}
	if cfg.OtoEditor.UseVLabeler {
		if ed := singers.NewExternalOtoEditor(cfg.OtoEditor.VLabelerPath, cfg.OtoEditor.Args...); ed != nil {
			opts.Oto = ed
		}
	}

	m := tui.New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
