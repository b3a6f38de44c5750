// Package storage persists uploaded images and returns their public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/festy23/ideawaves/internal/config"
)

// Storage saves an object and returns a publicly resolvable URL for it.
type Storage interface {
	Save(ctx context.Context, originalName, contentType string, body io.Reader) (string, error)
}

// New builds the backend selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocal(cfg.UploadDir, cfg.PublicBaseURL)
	case config.StorageDriverS3:
		return NewS3FromEnv(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicURL)
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}

// ObjectKey returns a collision-free key that keeps the original extension.
func ObjectKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return uuid.NewString() + ext
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}
