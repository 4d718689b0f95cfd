package translating

import "sync"

// Cache guarda traduções já resolvidas. A implementação é injetável para que
// os testes verifiquem acertos e limpeza sem tocar o serviço externo.
type Cache interface {
	Get(key string) (string, bool)
	Put(key string, value string)
	Clear()
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemoryCache() Cache {
	return &memoryCache{
		entries: make(map[string]string),
	}
}

func (c *memoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.entries[key]
	return value, ok
}

func (c *memoryCache) Put(key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = value
}

func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]string)
}
