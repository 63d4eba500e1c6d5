// Package cache provides small generic caches used to memoize rendered
// content.
//
// Memory is an in-process LRU with per-entry TTL, Redis stores encoded
// values in a shared Redis instance, and Nop disables caching while keeping
// call sites unchanged. Loader sits in front of any of them and collapses
// concurrent misses for the same key into a single computation:
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(512))
//	loader := cache.NewLoader[string](c, 10*time.Minute, log)
//
//	html, err := loader.Load(ctx, cache.Key("render", body), func(ctx context.Context) (string, error) {
//		return render(body), nil
//	})
//
// Key hashes its parts with SHA-256, so document bodies can be used as key
// material directly.
package cache
