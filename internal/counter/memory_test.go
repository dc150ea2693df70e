package counter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStore_GetSet(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	store.Set("a", Entry{ResetAt: now, Count: 1})

	entry, ok := store.Get("a")
	assert.True(t, ok)
	assert.Equal(t, now, entry.ResetAt)
	assert.Equal(t, 1, entry.Count)

	store.Set("a", Entry{ResetAt: now, Count: 0})
	entry, _ = store.Get("a")
	assert.Equal(t, 0, entry.Count)
}

func TestMemoryStore_PurgeBefore(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	store.Set("old", Entry{ResetAt: now.Add(-48 * time.Hour)})
	store.Set("recent", Entry{ResetAt: now.Add(-time.Hour)})

	purged := store.PurgeBefore(now.Add(-24 * time.Hour))

	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get("recent")
	assert.True(t, ok)

	// вычищенный ключ виден как счётчик с нулевым временем сброса
	entry, ok := store.Get("old")
	assert.True(t, ok)
	assert.True(t, entry.ResetAt.IsZero())

	store.Set("old", Entry{ResetAt: now, Count: 1})
	entry, ok = store.Get("old")
	assert.True(t, ok)
	assert.Equal(t, now, entry.ResetAt)
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Set("key", Entry{ResetAt: now, Count: i})
			store.Get("key")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, store.Len())
}
