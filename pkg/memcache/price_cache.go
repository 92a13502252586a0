// pkg/memcache/price_cache.go
package mem

import (
	"sync"
	"time"
)

// PriceStore caches looked-up prices. A nil price is a valid cached answer
// ("no price for that day") and is reused like any other entry.
type PriceStore interface {
	Get(key string) (*float64, bool)
	Set(key string, price *float64, ttl time.Duration)
	// Purge drops expired entries and returns how many were removed.
	Purge() int
}

type entry struct {
	price     *float64
	expiresAt time.Time
}

type PriceCache struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewPriceCache() *PriceCache {
	return &PriceCache{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (s *PriceCache) Get(key string) (*float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.price, true
}

func (s *PriceCache) Set(key string, price *float64, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{
		price:     price,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *PriceCache) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for k, e := range s.data {
		if !now.Before(e.expiresAt) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}
