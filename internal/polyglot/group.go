package polyglot

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/b-macker/NAAb-sub013/internal/eval"
	"github.com/b-macker/NAAb-sub013/internal/value"
)

// RunGroup implements eval.GroupRunner: it snapshots env per task's
// declared reads, runs every task concurrently via errgroup against its
// own isolated environment, and returns the first error encountered. If
// any task fails, the whole group fails; tasks that already started are
// allowed to finish, but their writes are discarded.
func (d *Dispatcher) RunGroup(ctx context.Context, env *value.Environment, tasks []eval.Task) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, t := range tasks {
		task := t
		isolated := value.NewEnvironment()
		for name, v := range env.Snapshot(task.Reads) {
			isolated.Define(name, v)
		}
		g.Go(func() error {
			return task.Exec(isolated)
		})
	}

	return g.Wait()
}
