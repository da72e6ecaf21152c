package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tritonops/admin-gateway/internal/directory"
)

// stuckDirectory blocks every bind until released, ignoring the caller's
// context the way a hung directory server would.
type stuckDirectory struct {
	release chan struct{}
}

func (d *stuckDirectory) BindAndFetch(_ context.Context, _, _ string) (*directory.Record, error) {
	<-d.release
	return nil, directory.NewError(directory.KindConnection, context.Canceled)
}

func TestBindPoolHonorsDeadlineWithHungWorker(t *testing.T) {
	dir := &stuckDirectory{release: make(chan struct{})}
	pool := NewBindPool(dir, 1)
	t.Cleanup(func() {
		close(dir.release)
		pool.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := pool.Do(ctx, "jdoe", "hunter2")
	elapsed := time.Since(start)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, elapsed, time.Second, "caller must not wait on the hung worker")
}

func TestBindPoolDeadlineOnSubmit(t *testing.T) {
	dir := &stuckDirectory{release: make(chan struct{})}
	pool := NewBindPool(dir, 1)
	t.Cleanup(func() {
		close(dir.release)
		pool.Close()
	})

	// occupy the only worker, then submit with an already expired context
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, _ = pool.Do(ctx, "first", "pw")
	}()

	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		_, err := pool.Do(ctx, "second", "pw")
		return err == context.DeadlineExceeded
	}, time.Second, 10*time.Millisecond)
}
