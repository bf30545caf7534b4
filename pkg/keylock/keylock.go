// Package keylock provides entity-keyed mutual exclusion. Operations that
// touch the same entity ids are serialized; operations over disjoint id sets
// run in parallel.
package keylock

import (
	"sort"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyLock hands out one mutex per key, created on demand and dropped once no
// holder or waiter remains.
type KeyLock struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New returns an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{entries: make(map[string]*entry)}
}

// Acquire locks every key and returns a release function. Keys are
// deduplicated and locked in sorted order, so overlapping acquisitions
// cannot deadlock.
func (k *KeyLock) Acquire(keys ...string) (release func()) {
	sorted := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	locked := make([]*entry, 0, len(sorted))
	for _, key := range sorted {
		locked = append(locked, k.acquireOne(key))
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Release in reverse acquisition order.
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].mu.Unlock()
			k.releaseOne(sorted[i])
		}
	}
}

func (k *KeyLock) acquireOne(key string) *entry {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return e
}

func (k *KeyLock) releaseOne(key string) {
	k.mu.Lock()
	if e, ok := k.entries[key]; ok {
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
	}
	k.mu.Unlock()
}
