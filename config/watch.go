package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/fsnotify/fsnotify"

	"go-pianoroll/debug"
)

// debounce collapses the write bursts editors produce on save
const debounce = 150 * time.Millisecond

// Watch reloads path whenever it changes and calls onChange with the result.
// The directory is watched rather than the file so atomic renames are seen.
// Blocks until ctx is done.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fault.Wrap(err, fmsg.With("create config watcher"), ftag.With("config"))
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fault.Wrap(err, fmsg.With("watch config dir"), ftag.With("config"))
	}

	name := filepath.Clean(path)
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			cfg, err := LoadFile(path)
			debug.Log("config", "reloaded %s err=%v", path, err)
			onChange(cfg, err)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			debug.Log("config", "watch error: %v", err)
		}
	}
}
