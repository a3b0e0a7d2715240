package picking

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// CastAll intersects every ray with c using up to workers goroutines and
// returns the hits in ray order. workers <= 0 uses GOMAXPROCS. Cancelling
// ctx stops the batch and returns its error.
func CastAll(ctx context.Context, c Caster, rays []Ray, workers int) ([]Hit, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	hits := make([]Hit, len(rays))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rays {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits[i] = c.Intersect(rays[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return hits, nil
}
