package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// fileObjectStore stores objects as files below a root directory and
// reports URLs relative to a public base URL.
type fileObjectStore struct {
	root      string
	publicURL string
	logger    *logger.Logger
}

// NewFileObjectStore constructs an [ObjectStore] writing below root.
func NewFileObjectStore(root, publicURL string, logger *logger.Logger) (ObjectStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("error creating object store directory: %w", err)
	}

	logger.Debug().Str("root", root).Msg("creating file object store")
	return &fileObjectStore{
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}, nil
}

func (f *fileObjectStore) Put(ctx context.Context, objectPath string, data []byte) (string, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	full := filepath.Join(f.root, filepath.FromSlash(clean))
	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileObjectStore.Put").Msg("error creating object directory")
		return "", fmt.Errorf("error creating object directory: %w", err)
	}

	if err = os.WriteFile(full, data, 0o644); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileObjectStore.Put").Msg("error writing object")
		return "", fmt.Errorf("error writing object: %w", err)
	}

	return f.publicURL + "/" + clean, nil
}

func (f *fileObjectStore) Open(ctx context.Context, objectPath string) (io.ReadCloser, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(f.root, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileObjectStore.Open").Msg("error opening object")
		return nil, fmt.Errorf("error opening object: %w", err)
	}

	return file, nil
}

// cleanObjectPath normalizes a slash-separated object path and rejects
// paths that are empty or escape the store root.
func cleanObjectPath(p string) (string, error) {
	for _, segment := range strings.Split(filepath.ToSlash(p), "/") {
		if segment == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidObjectPath, p)
		}
	}

	clean := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(p)), "/")
	if clean == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectPath, p)
	}
	return clean, nil
}
