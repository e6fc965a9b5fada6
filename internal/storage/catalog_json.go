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

// CatalogStore persists the exercise catalog as exercises.json.
type CatalogStore struct {
	mu   sync.Mutex
	path string
}

// NewCatalogStore creates a store rooted at dataDir.
func NewCatalogStore(dataDir string) *CatalogStore {
	return &CatalogStore{path: filepath.Join(dataDir, catalogFileName)}
}

// Path returns the catalog file location.
func (store *CatalogStore) Path() string {
	return store.path
}

// Load reads the catalog. A missing file is replaced by the default catalog,
// which is written back immediately.
func (store *CatalogStore) Load() (model.Catalog, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			catalog := model.DefaultCatalog()
			if err := store.saveLocked(catalog); err != nil {
				return catalog, err
			}
			return catalog, nil
		}
		return model.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}

	var catalog model.Catalog
	if err := json.Unmarshal(rawData, &catalog); err != nil {
		return model.Catalog{}, fmt.Errorf("parse catalog json: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return model.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return catalog, nil
}

// Save writes the catalog.
func (store *CatalogStore) Save(catalog model.Catalog) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.saveLocked(catalog)
}

func (store *CatalogStore) saveLocked(catalog model.Catalog) error {
	serialized, err := encodeJSON(catalog)
	if err != nil {
		return fmt.Errorf("marshal catalog json: %w", err)
	}
	if err := writeFileAtomic(store.path, serialized); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}
	return nil
}
