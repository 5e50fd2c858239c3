package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// RenderAll renders modules with at most limit icons in flight. Each worker
// writes only its own slot, so the slice keeps discovery order. The first
// failure cancels the rest and is returned.
func (r *Renderer) RenderAll(ctx context.Context, modules []IconModule, limit int) error {
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := range modules {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return r.Render(&modules[i])
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr
	}
	return stageError(StageGenerating, KindIO, "", err)
}
