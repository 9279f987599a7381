// Package store is the flat-file JSON persistence layer: named documents in
// a single data directory, loaded and saved whole. The scheduling core only
// depends on this load/save contract.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Well-known document names.
const (
	ProductionScheduleFile = "production_schedule.json"
	ShootingScheduleFile   = "shooting_schedule.json"
	OptimizedScheduleFile  = "optimized_schedule.json"
	AIScheduleFile         = "gemini_optimized_schedule.json"
)

var (
	// ErrNotFound means the named document does not exist yet.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidJSON means the document exists but does not parse.
	ErrInvalidJSON = errors.New("document contains invalid JSON")
)

// Store reads and writes JSON documents under one directory. A single mutex
// serializes access; documents are small and requests are rare enough that
// per-file locking is not worth it.
type Store struct {
	dir string
	mu  sync.Mutex
	log *zap.Logger
}

func New(dir string, log *zap.Logger) *Store {
	return &Store{
		dir: dir,
		log: log.Named("store"),
	}
}

// Load reads the named document into v.
func (s *Store) Load(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("reading %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidJSON, name, err)
	}
	return nil
}

// Save writes v as the named document, pretty-printed the way the rest of
// the data files are, via a temp file and rename so readers never see a
// partial write.
func (s *Store) Save(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}

	s.log.Debug("Document saved", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}
