package singers

import (
	"context"
	"fmt"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"golang.org/x/sync/errgroup"

	"go-pianoroll/debug"
)

// Progress is one event from a running batch. The last event of a batch
// has Finished set and carries the batch error, if any.
type Progress struct {
	Done     int
	Total    int
	File     string
	Err      error
	Finished bool
}

// Regenerator runs a Generator over many files with bounded parallelism
type Regenerator struct {
	Gen         Generator
	Parallelism int
}

func NewRegenerator(gen Generator, parallelism int) *Regenerator {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Regenerator{Gen: gen, Parallelism: parallelism}
}

// Run starts the batch and returns its progress stream. The first failure
// stops the remaining files; files already written stay written. The
// channel is closed after the Finished event.
func (r *Regenerator) Run(ctx context.Context, files []string) <-chan Progress {
	files = Distinct(files)
	total := len(files)
	ch := make(chan Progress, total+1)

	go func() {
		defer close(ch)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.Parallelism)

		var mu sync.Mutex
		done := 0
		for _, f := range files {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := r.Gen.Generate(gctx, f); err != nil {
					return err
				}
				mu.Lock()
				done++
				ch <- Progress{Done: done, Total: total, File: f}
				mu.Unlock()
				return nil
			})
		}
		err := g.Wait()
		if err != nil {
			err = fault.Wrap(err, fmsg.With(fmt.Sprintf("regenerate %d files", total)), ftag.With("regen"))
		}

		mu.Lock()
		final := Progress{Done: done, Total: total, Err: err, Finished: true}
		mu.Unlock()
		debug.Log("regen", "finished %d/%d err=%v", final.Done, total, err)
		ch <- final
	}()
	return ch
}
