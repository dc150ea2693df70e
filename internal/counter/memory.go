// Package counter holds small timestamped counters in memory. Entries never
// expire on their own; owners decide staleness from the stored timestamp and
// call PurgeBefore to reclaim memory.
package counter

import (
	"sync"
	"time"
)

// Entry счётчик с моментом последнего сброса
type Entry struct {
	ResetAt time.Time
	Count   int
}

// MemoryStore хранит счётчики в памяти процесса.
// Вычищенный ключ остаётся надгробием: Get отдаёт по нему Entry с нулевым ResetAt,
// чтобы владелец видел счётчик как сколь угодно старый, а не как новый.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	expired map[string]struct{}
}

// NewMemoryStore создаёт пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]Entry),
		expired: make(map[string]struct{}),
	}
}

// Get получает счётчик по ключу
func (s *MemoryStore) Get(key string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if entry, ok := s.entries[key]; ok {
		return entry, true
	}
	if _, ok := s.expired[key]; ok {
		return Entry{}, true
	}
	return Entry{}, false
}

// Set перезаписывает счётчик
func (s *MemoryStore) Set(key string, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry
	delete(s.expired, key)
}

// PurgeBefore заменяет надгробиями счётчики, сброшенные раньше cutoff, и возвращает их количество
func (s *MemoryStore) PurgeBefore(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for key, entry := range s.entries {
		if entry.ResetAt.Before(cutoff) {
			delete(s.entries, key)
			s.expired[key] = struct{}{}
			purged++
		}
	}
	return purged
}

// Len возвращает количество живых счётчиков, без надгробий
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
