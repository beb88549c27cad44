package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Source fetches the raw bytes behind a locator
type Source interface {
	Fetch(ctx context.Context, locator string) ([]byte, error)
}

// ErrPathEscapesBase is returned for file locators outside the content directory
var ErrPathEscapesBase = errors.New("path escapes the content directory")

// FileSource reads files under a base directory
type FileSource struct {
	baseDir string
}

func NewFileSource(baseDir string) *FileSource {
	return &FileSource{baseDir: baseDir}
}

// Fetch reads name relative to the base directory.
// Absolute paths, ".." segments and symlinks that leave the directory are rejected.
func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := filepath.Clean(filepath.FromSlash(name))
	if !filepath.IsLocal(cleaned) {
		return nil, fmt.Errorf("%w: %s", ErrPathEscapesBase, name)
	}

	root, err := os.OpenRoot(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("open content directory: %w", err)
	}
	defer root.Close()

	data, err := root.ReadFile(cleaned)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}
