package cache

import (
	"container/list"
	"sync"
)

// LRU is a fixed-capacity map that evicts the least recently used key.
type LRU[V any] struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List
	mu       sync.Mutex
}

type entry[V any] struct {
	key   string
	value V
}

func NewLRU[V any](capacity int) *LRU[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.items[key]; found {
		c.order.MoveToFront(elem)
		return elem.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Set stores value under key and reports the key evicted to make room, if any.
func (c *LRU[V]) Set(key string, value V) (evicted string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.items[key]; found {
		c.order.MoveToFront(elem)
		elem.Value.(*entry[V]).value = value
		return "", false
	}

	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value})

	if c.order.Len() > c.capacity {
		back := c.order.Back()
		c.order.Remove(back)
		evicted = back.Value.(*entry[V]).key
		delete(c.items, evicted)
		return evicted, true
	}
	return "", false
}

func (c *LRU[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, found := c.items[key]; found {
		c.order.Remove(elem)
		delete(c.items, key)
	}
}

func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
