package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore keeps each blob in its own JSON file under a data directory.
// It is the default backend for single-machine installs.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore builds a file backed store rooted at dir, creating the
// directory when missing.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Load reads and unmarshals the blob file for key. A missing file reports
// absent; a corrupt file is removed so it cannot keep failing, then reports
// absent as well.
func (s *FileStore) Load(_ context.Context, key string, out interface{}) (bool, error) {
	path := s.path(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read blob %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("discarding corrupt blob", zap.String("key", key), zap.Error(err))
		if rmErr := os.Remove(path); rmErr != nil {
			s.logger.Warn("failed removing corrupt blob", zap.String("key", key), zap.Error(rmErr))
		}
		return false, nil
	}

	return true, nil
}

// Save marshals value and replaces the blob file for key atomically.
func (s *FileStore) Save(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal blob %s: %w", key, err)
	}

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace blob %s: %w", key, err)
	}

	s.logger.Debug("blob saved", zap.String("key", key), zap.Int("bytes", len(raw)))
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close(context.Context) error { return nil }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
