package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fitslots/internal/core/model"
)

// HistoryStore keeps the spin history newest first and persists it as history.json.
type HistoryStore struct {
	mu      sync.Mutex
	path    string
	entries []model.HistoryEntry
}

// NewHistoryStore creates a store rooted at dataDir.
func NewHistoryStore(dataDir string) *HistoryStore {
	return &HistoryStore{path: filepath.Join(dataDir, historyFileName)}
}

// Path returns the history file location.
func (store *HistoryStore) Path() string {
	return store.path
}

// Load reads the history file. A missing file yields an empty history.
func (store *HistoryStore) Load() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			store.entries = nil
			return nil
		}
		return fmt.Errorf("read history file: %w", err)
	}

	var entries []model.HistoryEntry
	if err := json.Unmarshal(rawData, &entries); err != nil {
		return fmt.Errorf("parse history json: %w", err)
	}
	store.entries = entries
	return nil
}

// Add prepends entry and writes the whole history. The entry stays in memory
// even when the write fails.
func (store *HistoryStore) Add(entry model.HistoryEntry) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	entries := make([]model.HistoryEntry, 0, len(store.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, store.entries...)
	store.entries = entries

	serialized, err := encodeJSON(store.entries)
	if err != nil {
		return fmt.Errorf("marshal history json: %w", err)
	}
	if err := writeFileAtomic(store.path, serialized); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	return nil
}

// Recent returns at most limit entries, newest first.
func (store *HistoryStore) Recent(limit int) []model.HistoryEntry {
	store.mu.Lock()
	defer store.mu.Unlock()
	if limit <= 0 || limit > len(store.entries) {
		limit = len(store.entries)
	}
	return append([]model.HistoryEntry(nil), store.entries[:limit]...)
}

// Len returns the number of stored entries.
func (store *HistoryStore) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.entries)
}
