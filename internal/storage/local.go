package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is where the local upload root is served
const PublicPrefix = "/uploads"

// LocalStore writes uploads below Root
type LocalStore struct {
	Root string
}

// NewLocalStore creates the root and both subdirectories
func NewLocalStore(root string) (*LocalStore, error) {
	for _, sub := range []string{ProfilesDir, RecipesDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory: %w", err)
		}
	}
	return &LocalStore{Root: root}, nil
}

// Save writes body to Root/subdir/name and returns /uploads/subdir/name
func (s *LocalStore) Save(ctx context.Context, subdir, name, contentType string, body io.Reader) (string, error) {
	if err := validSubdir(subdir); err != nil {
		return "", err
	}
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	dst := filepath.Join(s.Root, subdir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return path.Join(PublicPrefix, subdir, name), nil
}

// Remove deletes a file previously returned by Save
func (s *LocalStore) Remove(ctx context.Context, url string) error {
	rel := strings.TrimPrefix(url, PublicPrefix+"/")
	if rel == url {
		return fmt.Errorf("not a local upload path: %s", url)
	}
	subdir, name := path.Split(rel)
	subdir = strings.TrimSuffix(subdir, "/")
	if err := validSubdir(subdir); err != nil {
		return err
	}
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid upload path: %s", url)
	}
	return os.Remove(filepath.Join(s.Root, subdir, name))
}
