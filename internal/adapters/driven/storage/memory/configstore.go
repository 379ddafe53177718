package memory

import (
	"sync"

	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps preferences in a map. Nothing survives the process.
type ConfigStore struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewConfigStore returns an empty preference map.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{entries: make(map[string]any)}
}

// Lookup returns the string stored at key.
func (s *ConfigStore) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	str, ok := s.entries[key].(string)
	return str, ok
}

// LookupInt returns the integer stored at key. Floats with no fractional
// part count, matching what JSON-shaped fixtures produce.
func (s *ConfigStore) LookupInt(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch v := s.entries[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// Put stores value at key.
func (s *ConfigStore) Put(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Len reports how many keys are set.
func (s *ConfigStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
