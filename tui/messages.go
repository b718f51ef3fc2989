package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/document"
	"go-pianoroll/singers"
)

// ConfigMsg carries a reloaded config, or the error reading it
type ConfigMsg struct {
	Config *config.Config
	Err    error
}

// NotificationMsg is a document notification delivered on the UI loop
type NotificationMsg struct {
	Notification any
}

// RegenMsg is one progress event of a frequency regeneration batch
type RegenMsg singers.Progress

type playTickMsg time.Time

const playTickInterval = 30 * time.Millisecond

func ListenForConfig(ch <-chan ConfigMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func ListenForNotifications(ch <-chan any) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Notification: <-ch}
	}
}

func ListenForRegen(ch <-chan singers.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return RegenMsg(p)
	}
}

func playTick() tea.Cmd {
	return tea.Tick(playTickInterval, func(t time.Time) tea.Msg {
		return playTickMsg(t)
	})
}

// notifier forwards document notifications into the UI loop. Commands are
// not forwarded; the view redraws after every message anyway.
type notifier struct {
	ch chan any
}

func newNotifier() *notifier {
	return &notifier{ch: make(chan any, 64)}
}

func (n *notifier) OnNext(cmd any, isUndo bool) {
	if _, ok := cmd.(document.Notification); !ok {
		return
	}
	select {
	case n.ch <- cmd:
	default:
		debug.Log("tui", "notification dropped: %T", cmd)
	}
}
