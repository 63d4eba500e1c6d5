package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache is a key-value store with per-entry expiration.
//
// TTL passed to Set: positive expires after the duration, zero uses the
// backend default, negative never expires.
type Cache[V any] interface {
	Get(ctx context.Context, key string) (V, error)
	Set(ctx context.Context, key string, value V, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Codec converts values to and from bytes for byte-oriented backends.
type Codec[V any] interface {
	Encode(v V) ([]byte, error)
	Decode(data []byte) (V, error)
}

// JSONCodec stores values as JSON.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec[V]) Decode(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrDecode, err)
	}
	return v, nil
}

// Key builds a fixed-length key from a namespace and arbitrary parts.
// Parts are hashed, so large inputs such as document bodies are safe to use.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return namespace + ":" + hex.EncodeToString(h.Sum(nil))
}

// Loader fronts a Cache with a compute function. Concurrent misses for the
// same key share one computation.
type Loader[V any] struct {
	cache  Cache[V]
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewLoader wraps c. Values computed on a miss are stored with ttl.
// A nil logger discards backend warnings.
func NewLoader[V any](c Cache[V], ttl time.Duration, logger *slog.Logger) *Loader[V] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader[V]{cache: c, ttl: ttl, logger: logger}
}

// Load returns the cached value for key or computes it with fn.
// Backend failures are logged and never fail the call; errors from fn are
// returned and nothing is cached.
func (l *Loader[V]) Load(ctx context.Context, key string, fn func(ctx context.Context) (V, error)) (V, error) {
	v, err := l.cache.Get(ctx, key)
	if err == nil {
		return v, nil
	}
	if !errors.Is(err, ErrNotFound) {
		l.logger.WarnContext(ctx, "cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	res, err, _ := l.group.Do(key, func() (any, error) {
		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.cache.Set(ctx, key, val, l.ttl); err != nil {
			l.logger.WarnContext(ctx, "cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return val, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Nop is a Cache that stores nothing. Every Get misses.
type Nop[V any] struct{}

func (Nop[V]) Get(context.Context, string) (V, error) {
	var zero V
	return zero, ErrNotFound
}

func (Nop[V]) Set(context.Context, string, V, time.Duration) error { return nil }
func (Nop[V]) Delete(context.Context, string) error                { return nil }
func (Nop[V]) Close() error                                        { return nil }

var _ Cache[string] = Nop[string]{}
