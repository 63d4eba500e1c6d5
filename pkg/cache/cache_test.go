package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogkit/pkg/cache"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		_, err := c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[int]()
		require.NoError(t, c.Set(ctx, "k", 42, time.Minute))

		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("expired entry is gone", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		_, err := c.Get(ctx, "k")
		require.ErrorIs(t, err, cache.ErrNotFound)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("negative ttl never expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithDefaultTTL(time.Millisecond))
		require.NoError(t, c.Set(ctx, "k", "v", -1))
		time.Sleep(5 * time.Millisecond)

		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", v)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithMaxEntries(2))
		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

		_, err := c.Get(ctx, "a")
		require.NoError(t, err)

		require.NoError(t, c.Set(ctx, "c", "3", time.Minute))

		_, err = c.Get(ctx, "b")
		require.ErrorIs(t, err, cache.ErrNotFound)
		_, err = c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("overwrite keeps size", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string](cache.WithMaxEntries(1))
		require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
		require.NoError(t, c.Set(ctx, "a", "2", time.Minute))

		v, err := c.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "2", v)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Set(ctx, "a", "1", 0))
		require.NoError(t, c.Delete(ctx, "a"))
		require.NoError(t, c.Delete(ctx, "never-set"))

		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("closed cache rejects calls", func(t *testing.T) {
		t.Parallel()

		c := cache.NewMemory[string]()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		require.ErrorIs(t, c.Set(ctx, "a", "1", 0), cache.ErrClosed)
		_, err := c.Get(ctx, "a")
		require.ErrorIs(t, err, cache.ErrClosed)
	})
}

func TestLoader(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("computes once then serves cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		l := cache.NewLoader[string](cache.NewMemory[string](), time.Minute, nil)
		fn := func(context.Context) (string, error) {
			calls.Add(1)
			return "rendered", nil
		}

		for range 3 {
			v, err := l.Load(ctx, "doc", fn)
			require.NoError(t, err)
			assert.Equal(t, "rendered", v)
		}
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var calls atomic.Int32
		l := cache.NewLoader[string](cache.NewMemory[string](), time.Minute, nil)
		fn := func(context.Context) (string, error) {
			calls.Add(1)
			return "", boom
		}

		_, err := l.Load(ctx, "doc", fn)
		require.ErrorIs(t, err, boom)
		_, err = l.Load(ctx, "doc", fn)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("concurrent misses share one computation", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		l := cache.NewLoader[int](cache.NewMemory[int](), time.Minute, nil)
		fn := func(context.Context) (int, error) {
			calls.Add(1)
			<-release
			return 7, nil
		}

		var wg sync.WaitGroup
		results := make([]int, 8)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := l.Load(ctx, "k", fn)
				assert.NoError(t, err)
				results[i] = v
			}()
		}
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.LessOrEqual(t, calls.Load(), int32(2))
		for _, v := range results {
			assert.Equal(t, 7, v)
		}
	})

	t.Run("nop cache always computes", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		l := cache.NewLoader[string](cache.Nop[string]{}, time.Minute, nil)
		fn := func(context.Context) (string, error) {
			calls.Add(1)
			return "x", nil
		}
		_, _ = l.Load(ctx, "k", fn)
		_, _ = l.Load(ctx, "k", fn)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestKey(t *testing.T) {
	t.Parallel()

	a := cache.Key("render", "body", "opts")
	assert.Equal(t, a, cache.Key("render", "body", "opts"))
	assert.NotEqual(t, a, cache.Key("render", "bodyopts"))
	assert.NotEqual(t, a, cache.Key("other", "body", "opts"))
	assert.Len(t, a, len("render:")+64)
}

func TestCodecs(t *testing.T) {
	t.Parallel()

	type doc struct {
		Title string `json:"title"`
	}

	data, err := cache.JSONCodec[doc]{}.Encode(doc{Title: "Hi"})
	require.NoError(t, err)
	got, err := cache.JSONCodec[doc]{}.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "Hi", got.Title)

	_, err = cache.JSONCodec[doc]{}.Decode([]byte("{"))
	require.ErrorIs(t, err, cache.ErrDecode)
}
