package loop

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// Run drives sim and a terminal viewer on r/w together. It returns when the
// viewer quits, ctx is cancelled, or a tick fails.
func Run(ctx context.Context, sim *Simulation, r *bufio.Reader, w io.Writer, opts ViewerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	viewer := NewViewer(sim, r, w, opts)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return sim.Run(gctx)
	})
	g.Go(func() error {
		defer cancel()
		return viewer.Run(gctx)
	})
	return g.Wait()
}
