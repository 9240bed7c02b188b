package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readtrack/syncguard/pkg/cache"
	"github.com/readtrack/syncguard/pkg/conflicts"
)

func TestKeyTypeOrderIndependent(t *testing.T) {
	forward := cache.NewKey("b1", "b1", 1, 2, []conflicts.Type{
		conflicts.TypeProgressMismatch,
		conflicts.TypeTimestampConflict,
	})
	reversed := cache.NewKey("b1", "b1", 1, 2, []conflicts.Type{
		conflicts.TypeTimestampConflict,
		conflicts.TypeProgressMismatch,
	})

	assert.Equal(t, forward, reversed)
	assert.Equal(t, forward.String(), reversed.String())
}

func TestKeyDistinguishesContentAndTypeSet(t *testing.T) {
	base := cache.NewKey("b1", "b1", 1, 2, []conflicts.Type{conflicts.TypeProgressMismatch})

	changedA := cache.NewKey("b1", "b1", 9, 2, []conflicts.Type{conflicts.TypeProgressMismatch})
	changedB := cache.NewKey("b1", "b1", 1, 9, []conflicts.Type{conflicts.TypeProgressMismatch})
	widened := cache.NewKey("b1", "b1", 1, 2, conflicts.AllTypes())
	otherItem := cache.NewKey("b2", "b2", 1, 2, []conflicts.Type{conflicts.TypeProgressMismatch})

	for name, other := range map[string]cache.Key{
		"digest A": changedA,
		"digest B": changedB,
		"type set": widened,
		"identity": otherItem,
	} {
		assert.NotEqual(t, base.String(), other.String(), name)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m := cache.NewMemory(time.Minute, time.Minute)

	key := cache.NewKey("b1", "b1", 1, 2, conflicts.AllTypes())
	stored := []conflicts.Conflict{{
		ID:       "c1",
		ItemID:   "b1",
		Type:     conflicts.TypeProgressMismatch,
		Severity: conflicts.SeverityHigh,
	}}

	_, ok := m.Get(key)
	require.False(t, ok)

	m.Set(key, stored)
	got, ok := m.Get(key)
	require.True(t, ok)
	assert.Equal(t, stored, got)
	assert.Equal(t, 1, m.ItemCount())
}

func TestMemoryCachesEmptyResults(t *testing.T) {
	m := cache.NewMemory(time.Minute, time.Minute)

	key := cache.NewKey("b1", "b1", 1, 2, conflicts.AllTypes())
	m.Set(key, []conflicts.Conflict{})

	got, ok := m.Get(key)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestMemoryExpiry(t *testing.T) {
	m := cache.NewMemory(10*time.Millisecond, time.Hour)

	key := cache.NewKey("b1", "b1", 1, 2, conflicts.AllTypes())
	m.Set(key, []conflicts.Conflict{})

	time.Sleep(20 * time.Millisecond)
	_, ok := m.Get(key)
	assert.False(t, ok)

	m.Cleanup()
	assert.Equal(t, 0, m.ItemCount())
}

func TestMemoryFlush(t *testing.T) {
	m := cache.NewMemory(time.Minute, time.Minute)

	for i := 0; i < 5; i++ {
		m.Set(cache.NewKey(fmt.Sprintf("b%d", i), fmt.Sprintf("b%d", i), 1, 2, nil), nil)
	}
	require.Equal(t, 5, m.ItemCount())

	m.Flush()
	assert.Equal(t, 0, m.ItemCount())
}

func TestMemoryConcurrentAccess(t *testing.T) {
	m := cache.NewMemory(time.Minute, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := cache.NewKey(fmt.Sprintf("b%d", n%4), fmt.Sprintf("b%d", n%4), uint64(n), uint64(n), nil)
			m.Set(key, []conflicts.Conflict{})
			m.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 16, m.ItemCount())
}
