// Package batch runs a function over a list of items on a bounded worker
// pool and reports progress as items complete.
package batch

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ProgressFunc receives progress updates. Execute sends (0, max) before
// any work, (done, max) after every item and (0, 0) once at the end. An
// empty list, before or after Preprocess, sends nothing.
type ProgressFunc func(current, max int)

// Command maps items of type I to results of type O.
//
// Process reports failures inside O. A panic in Process is recovered, the
// item's result is left as the zero O and the batch carries on.
type Command[I, O any] struct {
	// Preprocess, when set, rewrites the whole list once before the
	// parallel phase. It may reorder, drop or add items.
	Preprocess func(items []I) []I
	Process    func(item I) O
	// Recovered, when set, is called with the item and the panic value
	// of every item whose Process panicked.
	Recovered func(item I, v interface{})
	// Workers bounds parallelism; values < 1 mean runtime.NumCPU().
	Workers int
}

// Execute runs the command and returns one result per preprocessed item,
// in item order.
func (c Command[I, O]) Execute(items []I, progress ProgressFunc) []O {
	return c.ExecuteContext(context.Background(), items, progress)
}

// ExecuteContext is Execute with cancellation. Items not yet started when
// ctx is done are left as the zero O.
func (c Command[I, O]) ExecuteContext(ctx context.Context, items []I, progress ProgressFunc) []O {
	if len(items) == 0 {
		return []O{}
	}
	if progress == nil {
		progress = func(int, int) {}
	}

	if c.Preprocess != nil {
		items = c.Preprocess(items)
	}
	total := len(items)
	if total == 0 {
		return []O{}
	}
	results := make([]O, total)

	progress(0, total)

	var (
		mu   sync.Mutex
		done int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers())
	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = c.run(items[i])

			mu.Lock()
			done++
			progress(done, total)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	progress(0, 0)
	return results
}

// run calls Process and turns a panic into the zero O.
func (c Command[I, O]) run(item I) (out O) {
	defer func() {
		if v := recover(); v != nil {
			var zero O
			out = zero
			if c.Recovered != nil {
				c.Recovered(item, v)
			}
		}
	}()
	return c.Process(item)
}

func (c Command[I, O]) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
