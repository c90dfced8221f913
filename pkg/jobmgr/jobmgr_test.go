package jobmgr

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e.String())
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func blockUntilDone(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func TestManager_StopAndWait(t *testing.T) {
	rec := &recorder{}
	m := NewManager(rec.report)
	ctx := context.Background()

	started := make(chan struct{})
	require.NoError(t, m.Start(ctx, "discord", func(ctx context.Context) error {
		close(started)
		return blockUntilDone(ctx)
	}))
	<-started

	assert.ErrorIs(t, m.Start(ctx, "discord", blockUntilDone), ErrRunning)
	assert.Equal(t, []string{"discord"}, m.List())
	assert.Equal(t, "Running jobs: discord", m.Status())

	require.NoError(t, m.Stop("discord"))
	require.NoError(t, m.Wait())

	assert.Empty(t, m.List())
	assert.Equal(t, "No jobs are running.", m.Status())
	assert.Equal(t, []string{"running:discord", "done:discord"}, rec.list())
	assert.ErrorIs(t, m.Stop("discord"), ErrNotRunning)
}

func TestManager_ParentCancelStopsAll(t *testing.T) {
	m := NewManager(nil)
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, m.Start(ctx, "discord", blockUntilDone))
	require.NoError(t, m.Start(ctx, "telegram", blockUntilDone))
	cancel()

	assert.NoError(t, m.Wait())
	assert.Empty(t, m.List())
}

func TestManager_JoinsErrors(t *testing.T) {
	rec := &recorder{}
	m := NewManager(rec.report)
	boom := errors.New("bad token")

	require.NoError(t, m.Start(context.Background(), "telegram", func(context.Context) error { return boom }))
	err := m.Wait()

	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "telegram: bad token")
	assert.Contains(t, rec.list(), "error:telegram:bad token")
}
