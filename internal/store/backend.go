// Package store implements the persistence gateway: two whole-record JSON
// documents behind a pluggable key-value backend.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// maxRecordSize is the maximum size of a persisted record (16 MB). Records
// carry inline base64 attachments and logos, so the limit is generous, but a
// bound is still needed before reading a whole file into memory.
const maxRecordSize = 16 << 20

// Backend is a minimal durable key-value store. A missing key is reported via
// the boolean, not an error. Writes replace the prior value wholesale.
type Backend interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// FileBackend stores each key as a JSON file in a root directory. It is the
// durable per-user store; values survive process restarts and are scoped to
// one machine account.
type FileBackend struct {
	rootDir string
}

// NewFileBackend creates a backend rooted at dir. The directory is created
// lazily on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{rootDir: dir}
}

// Path returns the file path backing a key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.rootDir, sanitizeFilename(key)+".json")
}

// Get reads the value for key. Missing files report ok=false with no error.
func (b *FileBackend) Get(key string) (string, bool, error) {
	path := b.Path(key)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	if info.Size() > maxRecordSize {
		return "", false, fmt.Errorf("record %s exceeds maximum size (%d bytes > %d byte limit)", key, info.Size(), maxRecordSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	return string(data), true, nil
}

// Set writes the value for key, replacing any prior value.
func (b *FileBackend) Set(key, value string) error {
	if err := os.MkdirAll(b.rootDir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := os.WriteFile(b.Path(key), []byte(value), 0644); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}

	return nil
}

// sanitizeFilename replaces characters that are invalid in filenames with
// underscores.
func sanitizeFilename(s string) string {
	result := []rune{}
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '.' {
			result = append(result, r)
		} else {
			result = append(result, '_')
		}
	}
	return string(result)
}

// MemoryBackend is a map-backed Backend for tests and ephemeral sessions.
type MemoryBackend struct {
	values map[string]string
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get implements Backend.
func (b *MemoryBackend) Get(key string) (string, bool, error) {
	v, ok := b.values[key]
	return v, ok, nil
}

// Set implements Backend.
func (b *MemoryBackend) Set(key, value string) error {
	b.values[key] = value
	return nil
}
