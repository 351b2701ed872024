package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarita-pm/clarita/pkg/adapters/memory"
	"github.com/clarita-pm/clarita/pkg/domain"
	"github.com/clarita-pm/clarita/pkg/ports"
	"github.com/clarita-pm/clarita/pkg/session"
)

func TestManager_SaveLoadDelete(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	sess := domain.NewSession("s1", "parse", "add a save button")
	require.NoError(t, mgr.Save(ctx, sess))

	got, err := mgr.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", got.ID)
	assert.Equal(t, "add a save button", got.Fields.RawText)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, ids)

	require.NoError(t, mgr.Delete(ctx, "s1"))
	_, err = mgr.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_WithLockSerializesPerSession(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	const workers = 8
	var active, maxActive int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.WithLock(ctx, "same-session", func(context.Context) error {
				mu.Lock()
				active++
				if active > maxActive {
					maxActive = active
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxActive, "critical sections for one session must not overlap")
}

func TestManager_WithLockIndependentSessions(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	release := make(chan struct{})
	holding := make(chan struct{})

	go func() {
		_ = mgr.WithLock(ctx, "a", func(context.Context) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	// A different session ID is not blocked by the held lock on "a".
	done := make(chan struct{})
	go func() {
		_ = mgr.WithLock(ctx, "b", func(context.Context) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on one session blocked another")
	}
	close(release)
}

func TestManager_WithLockPropagatesError(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	sentinel := errors.New("boom")

	err := mgr.WithLock(context.Background(), "x", func(context.Context) error {
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

type fakeLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked []string
	fail     error
}

func (f *fakeLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	f.locked = append(f.locked, key)
	return func(context.Context) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unlocked = append(f.unlocked, key)
		return nil
	}, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &fakeLocker{}
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(locker))

	err := mgr.WithLock(context.Background(), "dist", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"dist"}, locker.locked)
	assert.Equal(t, []string{"dist"}, locker.unlocked)
}

func TestManager_DistributedLockerFailure(t *testing.T) {
	sentinel := errors.New("lock held elsewhere")
	mgr := session.NewManager(memory.NewStore(), session.WithLocker(&fakeLocker{fail: sentinel}))

	called := false
	err := mgr.WithLock(context.Background(), "dist", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, sentinel)
	assert.False(t, called, "fn must not run without the distributed lock")
}
