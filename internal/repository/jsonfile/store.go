// Package jsonfile persists the folder collection as a single JSON document
// on local disk. Every mutation is a full read-modify-write of the document,
// serialized by one mutex so concurrent requests cannot clobber each other.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"registratur/internal/domain"
	"registratur/internal/domain/models"
)

// StoreConfig holds shared configuration for the store.
type StoreConfig struct {
	// Path is the location of the folders document, e.g. data/folders.json.
	Path   string
	Logger *slog.Logger
}

// Store reads and writes the folders document. It is safe for concurrent use;
// the mutex is the single serialization point for the whole collection.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a store for the document at cfg.Path. The parent directory
// is created if missing so the first save succeeds.
func NewStore(cfg *StoreConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("jsonfile: document path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data directory: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Store{path: cfg.Path, logger: logger}, nil
}

// load reads the full collection. A missing document is an empty tree; a
// corrupt one is logged and treated as empty, since every caller must tolerate
// starting from nothing. Callers hold s.mu.
func (s *Store) load() []models.Folder {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("folders document unreadable, starting empty",
				"path", s.path,
				"error", err,
			)
		}
		return []models.Folder{}
	}

	var folders []models.Folder
	if err := json.Unmarshal(data, &folders); err != nil {
		s.logger.Warn("folders document corrupt, starting empty",
			"path", s.path,
			"error", err,
		)
		return []models.Folder{}
	}

	return folders
}

// save writes the full collection back. The write goes to a temp file first
// and is renamed into place so a crash never leaves a truncated document.
// Callers hold s.mu.
func (s *Store) save(folders []models.Folder) error {
	data, err := json.MarshalIndent(folders, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode folders document: %v", domain.ErrPersistence, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write folders document: %v", domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: replace folders document: %v", domain.ErrPersistence, err)
	}

	return nil
}
