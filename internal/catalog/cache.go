package catalog

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem[T any] struct {
	value     T
	expiresAt time.Time
}

// ttlLRU is a size-bounded LRU whose entries also expire after ttl.
type ttlLRU[T any] struct {
	storage *lru.Cache[string, cacheItem[T]]
	ttl     time.Duration
	now     func() time.Time
}

func newTTLLRU[T any](size int, ttl time.Duration) *ttlLRU[T] {
	if size <= 0 {
		size = 1
	}
	// lru.New only fails for non-positive sizes.
	storage, _ := lru.New[string, cacheItem[T]](size)
	return &ttlLRU[T]{storage: storage, ttl: ttl, now: time.Now}
}

func (c *ttlLRU[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if c.now().After(item.expiresAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.value, true
}

func (c *ttlLRU[T]) Set(key string, value T) {
	c.storage.Add(key, cacheItem[T]{value: value, expiresAt: c.now().Add(c.ttl)})
}

func (c *ttlLRU[T]) Len() int {
	return c.storage.Len()
}
