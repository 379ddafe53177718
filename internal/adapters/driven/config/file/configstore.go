package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/shoplist/internal/core/ports/driven"
)

var _ driven.ConfigStore = (*ConfigStore)(nil)

const (
	// DirName is the per-user directory holding config, logs and the
	// local credential database.
	DirName = ".shoplist"

	// FileName is the TOML file inside DirName.
	FileName = "config.toml"
)

// DefaultDir returns ~/.shoplist.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// ConfigStore reads config.toml once at construction and rewrites it on
// every Put.
type ConfigStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]any
}

// NewConfigStore opens config.toml in dir, creating dir when needed.
// An empty dir means ~/.shoplist. A missing file is not an error; it is
// written on the first Put.
func NewConfigStore(dir string) (*ConfigStore, error) {
	if dir == "" {
		home, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = home
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &ConfigStore{path: filepath.Join(dir, FileName)}
	entries, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	s.entries = entries
	return s, nil
}

// Path returns the location of config.toml.
func (s *ConfigStore) Path() string {
	return s.path
}

// Lookup returns the string stored at key.
func (s *ConfigStore) Lookup(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	str, ok := s.entries[key].(string)
	return str, ok
}

// LookupInt returns the integer stored at key. TOML integers decode as
// int64; values set in-process may still be plain ints.
func (s *ConfigStore) LookupInt(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch v := s.entries[key].(type) {
	case int64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

// Put stores value at key and rewrites the file. When the write fails the
// previous value stays in place.
func (s *ConfigStore) Put(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.entries[key]
	s.entries[key] = value
	if err := s.write(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

// write must be called with mu held.
func (s *ConfigStore) write() error {
	data, err := toml.Marshal(nestMap(s.entries))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var tables map[string]any
	if err := toml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return flattenMap(tables, ""), nil
}

// flattenMap turns {"ui": {"theme": "dark"}} into {"ui.theme": "dark"}.
func flattenMap(tables map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)
	for name, value := range tables {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		nested, ok := value.(map[string]any)
		if !ok {
			flat[key] = value
			continue
		}
		for k, v := range flattenMap(nested, key) {
			flat[k] = v
		}
	}
	return flat
}

// nestMap is the inverse of flattenMap. A key whose prefix already holds a
// scalar stays a quoted dotted key at the top level.
func nestMap(flat map[string]any) map[string]any {
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	// Shallow keys claim their slot before deeper tables.
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	root := make(map[string]any)
	for _, key := range keys {
		if !placeNested(root, strings.Split(key, "."), flat[key]) {
			root[key] = flat[key]
		}
	}
	return root
}

func placeNested(root map[string]any, parts []string, value any) bool {
	node := root
	for _, part := range parts[:len(parts)-1] {
		next, exists := node[part]
		if !exists {
			child := make(map[string]any)
			node[part] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		node = child
	}
	leaf := parts[len(parts)-1]
	if _, taken := node[leaf]; taken {
		return false
	}
	node[leaf] = value
	return true
}
