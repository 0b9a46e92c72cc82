// Package worker provides bounded fan-out for independent catalog calls.
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result pairs a job's output with its error.
type Result[R any] struct {
	Value R
	Err   error
}

// Pool bounds how many jobs of one Map call run at once.
type Pool struct {
	limit int
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{limit: workers}
}

// Limit returns the worker count. A nil pool runs jobs one at a time.
func (p *Pool) Limit() int {
	if p == nil {
		return 1
	}
	return p.limit
}

// Map runs fn for every item with at most p.Limit() jobs in flight and
// returns the results in item order. A failing job never cancels its
// siblings. Jobs that have not started when ctx is done report ctx.Err().
func Map[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(p.Limit())
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			results[i] = Result[R]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
