package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()

	m.Set("analytics:u1:summary", map[string]float64{"balance": 60.0}, time.Minute)

	var got map[string]float64
	require.True(t, m.Get("analytics:u1:summary", &got))
	assert.Equal(t, 60.0, got["balance"])
}

func TestMemoryMissOnUnknownKey(t *testing.T) {
	m := NewMemory()

	var got string
	assert.False(t, m.Get("nope", &got))
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory()

	m.Set("k", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	var got string
	assert.False(t, m.Get("k", &got), "expired entry must read as a miss")
	assert.Equal(t, 0, m.Len(), "expired entry is dropped on read")
}

func TestMemoryInvalidatePrefix(t *testing.T) {
	m := NewMemory()

	m.Set("analytics:u1:summary:2025-01-01:2025-01-31", 1, time.Minute)
	m.Set("analytics:u1:monthly_trend:6", 2, time.Minute)
	m.Set("analytics:u2:summary:2025-01-01:2025-01-31", 3, time.Minute)
	m.Set("transactions:u1:list", 4, time.Minute)

	m.Invalidate("analytics:u1:")

	var got int
	assert.False(t, m.Get("analytics:u1:summary:2025-01-01:2025-01-31", &got))
	assert.False(t, m.Get("analytics:u1:monthly_trend:6", &got))
	assert.True(t, m.Get("analytics:u2:summary:2025-01-01:2025-01-31", &got), "other users keep their entries")
	assert.True(t, m.Get("transactions:u1:list", &got), "other domains keep their entries")
}

func TestMemorySweepDropsExpired(t *testing.T) {
	m := NewMemory()

	m.Set("old", 1, time.Millisecond)
	m.Set("fresh", 2, time.Minute)
	time.Sleep(5 * time.Millisecond)

	m.sweep()

	assert.Equal(t, 1, m.Len())
}

func TestMemorySkipsUnmarshalableValues(t *testing.T) {
	m := NewMemory()

	m.Set("bad", make(chan int), time.Minute) // not JSON-encodable, swallowed

	var got int
	assert.False(t, m.Get("bad", &got))
}

func TestFetchMissComputesAndCaches(t *testing.T) {
	m := NewMemory()
	calls := 0

	compute := func() (string, error) {
		calls++
		return "fresh", nil
	}

	got, err := Fetch(m, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	got, err = Fetch(m, "k", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
	assert.Equal(t, 1, calls, "second call must be served from cache")
}

func TestFetchComputeErrorPropagates(t *testing.T) {
	m := NewMemory()

	_, err := Fetch(m, "k", time.Minute, func() (int, error) {
		return 0, errors.New("store down")
	})
	require.Error(t, err)

	var got int
	assert.False(t, m.Get("k", &got), "failed computations are not cached")
}

func TestFetchWithNoopAlwaysComputes(t *testing.T) {
	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(Noop{}, "k", time.Minute, compute)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	}
	assert.Equal(t, 3, calls)
}

func TestNoopGetAlwaysMisses(t *testing.T) {
	var got string
	assert.False(t, Noop{}.Get("k", &got))
}
