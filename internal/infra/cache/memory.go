package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"follow-analyzer/internal/domain"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache хранит сессии в процессе: LRU с общим TTL и сроком на каждую запись.
// Синхронизацию обеспечивает expirable.LRU.
type MemoryCache struct {
	lru   *expirable.LRU[string, memoryItem]
	clock domain.Clock
}

var _ domain.Cache = (*MemoryCache)(nil)

// NewMemory создаёт кэш на size записей. maxTTL ограничивает жизнь любой записи.
func NewMemory(size int, maxTTL time.Duration, clock domain.Clock) *MemoryCache {
	if size <= 0 {
		size = 1
	}
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &MemoryCache{
		lru:   expirable.NewLRU[string, memoryItem](size, nil, maxTTL),
		clock: clock,
	}
}

// Set сохраняет копию значения.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	item := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = c.clock.Now().Add(ttl)
	}
	c.lru.Add(key, item)
	return nil
}

// Get возвращает копию значения или domain.ErrCacheMiss.
// Просроченная запись удаляется без блокировки: ключи сессий уникальны
// и не перезаписываются, поэтому гонка Get с Set по тому же ключу невозможна.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	item, ok := c.lru.Get(key)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if !item.expiresAt.IsZero() && !c.clock.Now().Before(item.expiresAt) {
		c.lru.Remove(key)
		return nil, domain.ErrCacheMiss
	}
	return append([]byte(nil), item.value...), nil
}

// Len возвращает число записей, включая ещё не вытесненные просроченные.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}
