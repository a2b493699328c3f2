package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process cache. It is safe for concurrent use.
type Memory struct {
	store *gocache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory creates a memory cache whose entries live for defaultTTL
// and are swept every cleanup interval.
func NewMemory(defaultTTL, cleanup time.Duration) *Memory {
	return &Memory{store: gocache.New(defaultTTL, cleanup)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v.([]byte), true, nil
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

func (m *Memory) Delete(key string) error {
	m.store.Delete(key)
	return nil
}

func (m *Memory) Flush() error {
	m.store.Flush()
	return nil
}
