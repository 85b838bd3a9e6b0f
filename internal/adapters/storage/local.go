// Package storage implements the file store behind generated documents.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/velotrack/velotrack_backend/internal/core/ports/gateways"
	"github.com/velotrack/velotrack_backend/internal/platform/config"
)

// LocalStore writes files under a directory that the router serves at /files.
type LocalStore struct {
	root    string
	baseURL string
}

var _ gateways.FileStore = (*LocalStore)(nil)

func NewLocalStore(root, publicBaseURL string) *LocalStore {
	return &LocalStore{root: root, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Root is the directory files are written to.
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) Put(ctx context.Context, key string, contentType string, r io.Reader) (string, error) {
	clean := filepath.Clean("/" + key)
	path := filepath.Join(s.root, clean)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}
	return s.baseURL + filepath.ToSlash(clean), nil
}

// New picks the configured driver.
func New(cfg *config.Config) (gateways.FileStore, error) {
	switch cfg.StorageDriver {
	case config.StorageOSS:
		return NewOSSStore(cfg.OSSEndpoint, cfg.OSSAccessKeyID, cfg.OSSAccessKeySecret, cfg.OSSBucket, cfg.StoragePublicBaseURL)
	default:
		return NewLocalStore(cfg.StorageLocalDir, cfg.StoragePublicBaseURL), nil
	}
}
