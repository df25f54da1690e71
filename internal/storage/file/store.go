package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists snapshots as JSON files under a profile directory, one file
// per slot. Writes go through a temp file and rename so a crash mid-write
// never leaves a torn snapshot behind.
type Store struct {
	dir    string
	logger *slog.Logger
}

// New creates a file-backed snapshot store rooted at dir, creating the
// directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Load reads the slot file into out. A missing file or undecodable payload
// reports (false, nil); the caller falls back to defaults.
func (s *Store) Load(ctx context.Context, slot string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(slot))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding corrupt snapshot",
			slog.String("slot", slot),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	return true, nil
}

// Save writes v as the slot's snapshot atomically.
func (s *Store) Save(ctx context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", slot, err)
	}

	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write slot %s: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path(slot)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename slot %s: %w", slot, err)
	}

	return nil
}

// Delete removes the slot file if it exists.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := os.Remove(s.path(slot)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %s: %w", slot, err)
	}
	return nil
}

func (s *Store) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
