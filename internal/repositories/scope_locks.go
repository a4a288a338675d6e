package repository

import (
	"slices"
	"sync"
)

// ScopeLocks hands out one mutex per scope key. Entries are reference counted
// and dropped once nobody holds or waits on them.
type ScopeLocks struct {
	mu      sync.Mutex
	entries map[string]*scopeLock
}

type scopeLock struct {
	mu   sync.Mutex
	refs int
}

func NewScopeLocks() *ScopeLocks {
	return &ScopeLocks{entries: make(map[string]*scopeLock)}
}

// Lock acquires every key in sorted order so two callers locking overlapping
// sets cannot deadlock. The returned func releases them.
func (l *ScopeLocks) Lock(keys ...string) func() {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	held := make([]*scopeLock, 0, len(sorted))
	for _, key := range sorted {
		if key == "" {
			continue
		}
		entry := l.acquire(key)
		entry.mu.Lock()
		held = append(held, entry)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
		}
		l.mu.Lock()
		for _, key := range sorted {
			if key == "" {
				continue
			}
			entry := l.entries[key]
			entry.refs--
			if entry.refs == 0 {
				delete(l.entries, key)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ScopeLocks) acquire(key string) *scopeLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		entry = &scopeLock{}
		l.entries[key] = entry
	}
	entry.refs++
	return entry
}

func (l *ScopeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
