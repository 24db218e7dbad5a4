/*
Package filestore provides engine.FileStore implementations.

PURPOSE:
  Lease documents are opaque blobs addressed by slash-separated keys.
  The engine only needs upload/url/remove/copy; where the bytes actually
  live is an implementation detail:

  - Memory: map-backed, for tests and development
  - Local:  files under a root directory, for single-node deployments

  A hosted object store (S3, Supabase storage) slots in behind the same
  interface without touching the engine.
*/
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound is returned when a removed or copied path does not exist.
var ErrNotFound = errors.New("file not found")

// =============================================================================
// MEMORY - Map-backed blob store
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Upload(_ context.Context, path string, content []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(content))
	copy(buf, content)
	m.blobs[path] = buf
	return m.PublicURL(path), nil
}

func (m *Memory) PublicURL(path string) string {
	return "memory://" + path
}

func (m *Memory) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[path]; !ok {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	delete(m.blobs, path)
	return nil
}

func (m *Memory) Copy(_ context.Context, src, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.blobs[src]
	if !ok {
		return fmt.Errorf("%s: %w", src, ErrNotFound)
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	m.blobs[dst] = buf
	return nil
}

// Exists reports whether a blob is stored at path. Test helper.
func (m *Memory) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[path]
	return ok
}

// Len returns the number of stored blobs. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}

// =============================================================================
// LOCAL - Disk-backed blob store
// =============================================================================

type Local struct {
	root string
}

// NewLocal stores blobs under the given root directory.
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating file store root: %w", err)
	}
	return &Local{root: root}, nil
}

func (l *Local) Upload(_ context.Context, path string, content []byte) (string, error) {
	full, err := l.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return l.PublicURL(path), nil
}

func (l *Local) PublicURL(path string) string {
	return "file://" + filepath.Join(l.root, filepath.FromSlash(path))
}

func (l *Local) Remove(_ context.Context, path string) error {
	full, err := l.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

func (l *Local) Copy(_ context.Context, src, dst string) error {
	srcFull, err := l.resolve(src)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(srcFull)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", src, ErrNotFound)
		}
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if _, err := l.Upload(context.Background(), dst, content); err != nil {
		return err
	}
	return nil
}

// resolve joins a key onto the root, refusing traversal outside it.
func (l *Local) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid file path %q", path)
	}
	return filepath.Join(l.root, clean), nil
}
