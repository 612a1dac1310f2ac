// internal/kvstore/localfs.go
package kvstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stockml/stockml/internal/core"
)

// LocalFS implements Store on the local filesystem, one file per key.
type LocalFS struct {
	basePath string
}

// NewLocalFS creates a new LocalFS store rooted at basePath.
func NewLocalFS(basePath string) (*LocalFS, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating base path: %w", err)
	}
	return &LocalFS{basePath: basePath}, nil
}

// keyPath maps a key to a file path. Path separators in keys are
// flattened so a key can never escape the base directory.
func (l *LocalFS) keyPath(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(l.basePath, safe+".json")
}

func (l *LocalFS) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(l.keyPath(key))
	if os.IsNotExist(err) {
		return nil, core.ErrKeyNotFound
	}
	return data, err
}

func (l *LocalFS) Set(ctx context.Context, key string, value []byte) error {
	return os.WriteFile(l.keyPath(key), value, 0644)
}

func (l *LocalFS) Delete(ctx context.Context, key string) error {
	err := os.Remove(l.keyPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
