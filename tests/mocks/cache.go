package mocks

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/davicafu/moderlab/internal/moderation/application"
)

// DummyCache es un mock de caché en memoria, genérico y seguro para
// concurrencia. Puede almacenar cualquier tipo de objeto serializable a JSON.
type DummyCache struct {
	store map[string][]byte
	mu    sync.RWMutex
}

// Verificación estática para asegurar que implementa la interfaz compartida.
var _ application.Cache = (*DummyCache)(nil)

func NewDummyCache() *DummyCache {
	return &DummyCache{
		store: make(map[string][]byte),
	}
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.store[key]
	if !ok {
		return false, nil // Cache miss
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil // Cache hit
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// Len devuelve el número de entradas almacenadas.
func (c *DummyCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}
