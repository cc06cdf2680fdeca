package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := Client
	Client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		Client.Close()
		Client = prev
	})
}

func TestSlotCacheRoundTrip(t *testing.T) {
	newTestCache(t)

	key := SlotKey("2025-06-02", 1, 3)
	_, ok := GetSlots(key)
	assert.False(t, ok)

	SetSlots(key, `[{"startTime":"09:00"}]`)
	payload, ok := GetSlots(key)
	require.True(t, ok)
	assert.Equal(t, `[{"startTime":"09:00"}]`, payload)
}

func TestInvalidateProviderDate(t *testing.T) {
	newTestCache(t)

	SetSlots(SlotKey("2025-06-02", 1, 3), "a")
	SetSlots(SlotKey("2025-06-02", 1, 4), "b")
	SetSlots(SlotKey("2025-06-02", 2, 3), "c")
	SetSlots(SlotKey("2025-06-03", 1, 3), "d")

	InvalidateProviderDate("2025-06-02", 1)

	_, ok := GetSlots(SlotKey("2025-06-02", 1, 3))
	assert.False(t, ok)
	_, ok = GetSlots(SlotKey("2025-06-02", 1, 4))
	assert.False(t, ok)
	_, ok = GetSlots(SlotKey("2025-06-02", 2, 3))
	assert.True(t, ok, "other providers keep their entries")
	_, ok = GetSlots(SlotKey("2025-06-03", 1, 3))
	assert.True(t, ok, "other dates keep their entries")
}

func TestInvalidateProviderSweepsAllDates(t *testing.T) {
	newTestCache(t)

	SetSlots(SlotKey("2025-06-02", 1, 3), "a")
	SetSlots(SlotKey("2025-06-09", 1, 3), "b")
	SetSlots(SlotKey("2025-06-02", 12, 3), "c")

	InvalidateProvider(1)

	_, ok := GetSlots(SlotKey("2025-06-02", 1, 3))
	assert.False(t, ok)
	_, ok = GetSlots(SlotKey("2025-06-09", 1, 3))
	assert.False(t, ok)
	_, ok = GetSlots(SlotKey("2025-06-02", 12, 3))
	assert.True(t, ok, "provider 12 must survive a provider 1 sweep")
}

func TestEvictDate(t *testing.T) {
	newTestCache(t)

	SetSlots(SlotKey("2025-06-02", 1, 3), "a")
	SetSlots(SlotKey("2025-06-02", 2, 3), "b")
	SetSlots(SlotKey("2025-06-03", 1, 3), "c")

	assert.Equal(t, 2, EvictDate("2025-06-02"))
	_, ok := GetSlots(SlotKey("2025-06-03", 1, 3))
	assert.True(t, ok)
}

func TestDisabledCacheIsNoop(t *testing.T) {
	prev := Client
	Client = nil
	t.Cleanup(func() { Client = prev })

	assert.False(t, Enabled())
	_, ok := GetSlots(SlotKey("2025-06-02", 1, 3))
	assert.False(t, ok)
	SetSlots(SlotKey("2025-06-02", 1, 3), "a")
	InvalidateProviderDate("2025-06-02", 1)
	InvalidateProvider(1)
	assert.Equal(t, 0, EvictDate("2025-06-02"))
}
