// Package inmemkv provides a map-backed storage substrate, mainly for tests.
package inmemkv

import (
	"encoding/json"
	"sync"

	"madaris/core"
)

type backend struct {
	mutex       sync.RWMutex
	collections map[string][]json.RawMessage
}

var _ core.Backend = (*backend)(nil)

func NewBackend() core.Backend {
	return &backend{collections: make(map[string][]json.RawMessage)}
}

func (b *backend) ReadCollection(name string) ([]json.RawMessage, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	recs := make([]json.RawMessage, len(b.collections[name]))
	copy(recs, b.collections[name])
	return recs, nil
}

func (b *backend) WriteCollection(name string, records []json.RawMessage) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	recs := make([]json.RawMessage, len(records))
	copy(recs, records)
	b.collections[name] = recs
	return nil
}
