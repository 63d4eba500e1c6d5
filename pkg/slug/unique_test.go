package slug_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/slug"
)

type takenSet struct {
	mu    sync.Mutex
	taken map[string]bool
	calls int
}

func newTakenSet(slugs ...string) *takenSet {
	s := &takenSet{taken: make(map[string]bool)}
	for _, v := range slugs {
		s.taken[v] = true
	}
	return s
}

func (s *takenSet) Exists(_ context.Context, v string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.taken[v], nil
}

func (s *takenSet) Claim(_ context.Context, v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.taken[v] {
		return slug.ErrTaken
	}
	s.taken[v] = true
	return nil
}

func TestUnique(t *testing.T) {
	t.Parallel()

	t.Run("free base slug", func(t *testing.T) {
		t.Parallel()

		got, err := slug.Unique(context.Background(), "Foo", newTakenSet())
		require.NoError(t, err)
		assert.Equal(t, "foo", got)
	})

	t.Run("skips taken suffixes", func(t *testing.T) {
		t.Parallel()

		ex := newTakenSet("foo", "foo-1")
		got, err := slug.Unique(context.Background(), "Foo", ex)
		require.NoError(t, err)
		assert.Equal(t, "foo-2", got)
		assert.Equal(t, 3, ex.calls)
	})

	t.Run("bounded by max attempts", func(t *testing.T) {
		t.Parallel()

		always := slug.ExistsFunc(func(context.Context, string) (bool, error) { return true, nil })
		_, err := slug.Unique(context.Background(), "Foo", always, slug.MaxAttempts(3))
		assert.ErrorIs(t, err, slug.ErrExhausted)
	})

	t.Run("lookup error is wrapped", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("db down")
		failing := slug.ExistsFunc(func(context.Context, string) (bool, error) { return false, boom })
		_, err := slug.Unique(context.Background(), "Foo", failing)
		assert.ErrorIs(t, err, slug.ErrLookup)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("empty title", func(t *testing.T) {
		t.Parallel()

		_, err := slug.Unique(context.Background(), "!!!", newTakenSet())
		assert.ErrorIs(t, err, slug.ErrEmpty)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := slug.Unique(ctx, "Foo", newTakenSet())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("suffix respects max length", func(t *testing.T) {
		t.Parallel()

		got, err := slug.Unique(context.Background(), "abcdef ghij", newTakenSet("abcdef-ghij"), slug.MaxLength(11))
		require.NoError(t, err)
		assert.Equal(t, "abcdef-gh-1", got)
	})
}

func TestReserve(t *testing.T) {
	t.Parallel()

	t.Run("moves past taken slugs", func(t *testing.T) {
		t.Parallel()

		cl := newTakenSet("foo")
		got, err := slug.Reserve(context.Background(), "Foo", cl)
		require.NoError(t, err)
		assert.Equal(t, "foo-1", got)
	})

	t.Run("concurrent claims never share a slug", func(t *testing.T) {
		t.Parallel()

		cl := newTakenSet()
		results := make(chan string, 10)

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := slug.Reserve(context.Background(), "Same Title", cl)
				assert.NoError(t, err)
				results <- got
			}()
		}
		wg.Wait()
		close(results)

		seen := make(map[string]bool)
		for r := range results {
			assert.False(t, seen[r], "duplicate slug %q", r)
			seen[r] = true
		}
		assert.Len(t, seen, 10)
	})

	t.Run("other errors stop the loop", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("insert failed")
		calls := 0
		cl := slug.ClaimFunc(func(context.Context, string) error {
			calls++
			return boom
		})
		_, err := slug.Reserve(context.Background(), "Foo", cl)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("wrapped taken error", func(t *testing.T) {
		t.Parallel()

		cl := slug.ClaimFunc(func(_ context.Context, s string) error {
			if s == "foo" {
				return errors.Join(errors.New("unique violation"), slug.ErrTaken)
			}
			return nil
		})
		got, err := slug.Reserve(context.Background(), "Foo", cl)
		require.NoError(t, err)
		assert.Equal(t, "foo-1", got)
	})

	t.Run("exhausted", func(t *testing.T) {
		t.Parallel()

		cl := slug.ClaimFunc(func(context.Context, string) error { return slug.ErrTaken })
		_, err := slug.Reserve(context.Background(), "Foo", cl, slug.MaxAttempts(5))
		assert.ErrorIs(t, err, slug.ErrExhausted)
	})
}
