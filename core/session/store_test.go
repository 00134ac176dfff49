package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/majdzarai/bridge-tavus/core/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(id string) *schemas.Session {
	return &schemas.Session{
		BackendSessionID: id,
		CreatedAt:        time.Now(),
		InitialMessage:   "Hello!",
	}
}

func TestMemoryStore_GetMiss(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("absent")

	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_GetOrCreate(t *testing.T) {
	store := NewMemoryStore()

	sess, created, err := store.GetOrCreate(context.Background(), "key", func(ctx context.Context) (*schemas.Session, error) {
		return newSession("backend-1"), nil
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "backend-1", sess.BackendSessionID)

	// Second call returns the stored session without invoking create.
	again, created, err := store.GetOrCreate(context.Background(), "key", func(ctx context.Context) (*schemas.Session, error) {
		t.Fatal("create must not be called for an existing key")
		return nil, nil
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, sess, again)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_CreateErrorNotStored(t *testing.T) {
	store := NewMemoryStore()

	_, created, err := store.GetOrCreate(context.Background(), "key", func(ctx context.Context) (*schemas.Session, error) {
		return nil, errors.New("backend down")
	})

	assert.Error(t, err)
	assert.False(t, created)
	assert.Equal(t, 0, store.Len())

	// A later attempt may retry creation.
	sess, created, err := store.GetOrCreate(context.Background(), "key", func(ctx context.Context) (*schemas.Session, error) {
		return newSession("backend-2"), nil
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "backend-2", sess.BackendSessionID)
}

func TestMemoryStore_ConcurrentCreateRunsOnce(t *testing.T) {
	store := NewMemoryStore()

	var createCalls atomic.Int64
	var wg sync.WaitGroup
	sessions := make([]*schemas.Session, 16)

	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, _, err := store.GetOrCreate(context.Background(), "shared", func(ctx context.Context) (*schemas.Session, error) {
				createCalls.Add(1)
				// Widen the race window so losers pile up on the creation lock.
				time.Sleep(10 * time.Millisecond)
				return newSession("backend-shared"), nil
			})
			assert.NoError(t, err)
			sessions[i] = sess
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), createCalls.Load())
	assert.Equal(t, 1, store.Len())
	for _, sess := range sessions {
		assert.Same(t, sessions[0], sess)
	}
}

func TestMemoryStore_IndependentKeys(t *testing.T) {
	store := NewMemoryStore()

	for _, key := range []string{"a", "b", "c"} {
		_, created, err := store.GetOrCreate(context.Background(), key, func(ctx context.Context) (*schemas.Session, error) {
			return newSession("backend-" + key), nil
		})
		require.NoError(t, err)
		assert.True(t, created)
	}

	assert.Equal(t, 3, store.Len())
}
