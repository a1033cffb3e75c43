// Package storage persists uploaded images on local disk or in S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/pageza/chefapp/backend/config"
)

// Upload subdirectories
const (
	ProfilesDir = "profiles"
	RecipesDir  = "recipes"
)

// DefaultExt is used when the uploaded file name has no extension
const DefaultExt = ".jpg"

// Store saves uploaded files and returns the URL they are reachable at
type Store interface {
	Save(ctx context.Context, subdir, name, contentType string, body io.Reader) (string, error)
	Remove(ctx context.Context, url string) error
}

// FileName builds a collision-resistant name: <unix-millis>-<random><ext>
func FileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if ext == "" {
		ext = DefaultExt
	}
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1e9), ext)
}

func validSubdir(subdir string) error {
	if subdir != ProfilesDir && subdir != RecipesDir {
		return fmt.Errorf("unknown upload subdirectory %q", subdir)
	}
	return nil
}

// New returns the store selected by cfg.UploadBackend
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.UploadBackend {
	case config.UploadBackendS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewS3StoreFromConfig(s3Cfg), nil
	case config.UploadBackendLocal, "":
		return NewLocalStore(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
