package solver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// minChunk is the smallest slice of the dictionary worth a goroutine.
const minChunk = 512

// FilterParallel is Filter over contiguous chunks of dictionary evaluated
// concurrently by up to workers goroutines. Chunks are concatenated in their
// original order, so the result equals Filter(dictionary, fb).
func FilterParallel(ctx context.Context, dictionary []string, fb Feedback, workers int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c := compile(fb)
	if workers <= 1 || len(dictionary) < 2*minChunk {
		return c.filter(dictionary), nil
	}

	size := (len(dictionary) + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}
	parts := make([][]string, (len(dictionary)+size-1)/size)

	g, ctx := errgroup.WithContext(ctx)
	for i := range parts {
		lo := i * size
		hi := min(lo+size, len(dictionary))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parts[i] = c.filter(dictionary[lo:hi])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]string, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
