// Package prefs persists small string preferences between sessions, playing
// the role browser local storage plays for a web page.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alexisbeaulieu97/qrforge/internal/logger"
	qrerrors "github.com/alexisbeaulieu97/qrforge/pkg/errors"
)

const fileVersion = "1.0"

// Store is a string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// file is the on-disk layout.
type file struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore keeps preferences in a JSON file and writes through on every change.
type FileStore struct {
	path   string
	log    *logger.Logger
	mu     sync.RWMutex
	values map[string]string
	// stale is set when the file on disk could not be loaded; the next
	// write replaces it even if it changes nothing in memory.
	stale bool
}

// FileStoreOption customises a FileStore.
type FileStoreOption func(*FileStore)

// WithLogger sets the logger used to report an unreadable preferences file.
func WithLogger(log *logger.Logger) FileStoreOption {
	return func(s *FileStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewFileStore opens the store at path, creating its directory. A missing
// file yields an empty store. So does an unreadable or corrupt one: the
// problem is logged as a warning and the file is rewritten on the next change.
func NewFileStore(path string, opts ...FileStoreOption) (*FileStore, error) {
	s := &FileStore{
		path:   path,
		log:    logger.Nop(),
		values: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, qrerrors.NewStoreError("open", "", fmt.Errorf("create preferences directory: %w", err))
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		s.log.Warn("preferences unreadable, starting empty", "path", path, "error", err.Error())
		s.values = make(map[string]string)
		s.stale = true
	}

	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the store from disk, replacing in-memory values.
func (s *FileStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return qrerrors.NewStoreError("load", "", fmt.Errorf("parse %s: %w", s.path, err))
	}

	s.values = f.Values
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.stale = false
	return nil
}

// Get returns the value stored under key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the store.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	s.values[key] = value
	if err := s.saveLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return qrerrors.NewStoreError("set", key, err)
	}
	return nil
}

// Delete removes key and persists the store.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok && !s.stale {
		return nil
	}
	delete(s.values, key)
	if err := s.saveLocked(); err != nil {
		return qrerrors.NewStoreError("delete", key, err)
	}
	return nil
}

// saveLocked writes the store atomically. Callers hold s.mu.
func (s *FileStore) saveLocked() error {
	data, err := json.MarshalIndent(file{Version: fileVersion, Values: s.values}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temporary file: %w", err)
	}
	s.stale = false
	return nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store seeded with initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
