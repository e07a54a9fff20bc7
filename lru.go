package arxivreport

import (
	"container/list"
	"sync"
)

// lruCache is a thread-safe LRU set of string keys. The history layer
// uses it to remember which paper IDs were already upserted, keeping
// overlapping runs in one process from rewriting the same rows.
type lruCache struct {
	capacity int
	keys     map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = 10000
	}
	return &lruCache{
		capacity: capacity,
		keys:     make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Contains reports whether key is in the set, marking it recently used.
func (lru *lruCache) Contains(key string) bool {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, ok := lru.keys[key]; ok {
		lru.order.MoveToFront(elem)
		return true
	}
	return false
}

// Add inserts key, evicting the least recently used key when full.
func (lru *lruCache) Add(key string) {
	lru.mu.Lock()
	defer lru.mu.Unlock()

	if elem, ok := lru.keys[key]; ok {
		lru.order.MoveToFront(elem)
		return
	}

	if lru.order.Len() >= lru.capacity {
		back := lru.order.Back()
		if back != nil {
			delete(lru.keys, back.Value.(string))
			lru.order.Remove(back)
		}
	}

	lru.keys[key] = lru.order.PushFront(key)
}

// Len returns the current number of keys.
func (lru *lruCache) Len() int {
	lru.mu.Lock()
	defer lru.mu.Unlock()
	return len(lru.keys)
}
