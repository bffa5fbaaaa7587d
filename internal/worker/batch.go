package worker

import (
	"context"
	"fmt"
)

type indexed[T any] struct {
	index int
	value T
}

// Map applies fn to every item on a pool of workers and returns the outputs
// in input order. It fails only if ctx is cancelled before all items finish.
func Map[In, Out any](ctx context.Context, workers int, items []In, fn func(In) Out) ([]Out, error) {
	out := make([]Out, len(items))
	if len(items) == 0 {
		return out, nil
	}
	if workers > len(items) {
		workers = len(items)
	}

	pool := NewPool[indexed[Out]](ctx, workers)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, item := range items {
			job := JobFunc[indexed[Out]](func(context.Context) indexed[Out] {
				return indexed[Out]{index: i, value: fn(item)}
			})
			if !pool.Submit(job) {
				return
			}
		}
	}()

	done := 0
	for r := range pool.Results() {
		out[r.index] = r.value
		done++
	}

	if done != len(items) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("worker: %d of %d items completed", done, len(items))
	}
	return out, nil
}
