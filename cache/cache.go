package cache

import "time"

// Store is the caching capability handed to services. Every method is
// best-effort: a Get that fails for any reason (missing key, expired entry,
// decode error) reports a plain miss, and Set/Invalidate never surface
// errors. Callers must stay correct with a Store that caches nothing.
type Store interface {
	// Get decodes the entry under key into dest and reports whether a
	// live entry was found.
	Get(key string, dest any) bool

	// Set stores value under key for ttl.
	Set(key string, value any, ttl time.Duration)

	// Invalidate removes every entry whose key starts with prefix.
	Invalidate(prefix string)
}

// Fetch applies the cache-first contract: return the cached value when
// present, otherwise compute fresh, store the result under key and return
// it. Compute errors propagate; cache failures only cost a recompute.
func Fetch[T any](store Store, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	var cached T
	if store.Get(key, &cached) {
		return cached, nil
	}

	fresh, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	store.Set(key, fresh, ttl)
	return fresh, nil
}

// Noop is the cache-disabled stand-in: always a miss, writes discarded.
type Noop struct{}

func (Noop) Get(string, any) bool           { return false }
func (Noop) Set(string, any, time.Duration) {}
func (Noop) Invalidate(string)              {}
