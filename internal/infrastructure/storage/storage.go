// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/your-org/fashion-store/internal/config"
)

// Store writes and removes public objects such as product images
type Store interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the store selected by STORAGE_PROVIDER
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalStore(cfg.LocalPath, publicBase(cfg, cfg.PublicPath)), nil
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

func publicBase(cfg config.StorageConfig, fallback string) string {
	if cfg.CDNBaseURL != "" {
		return strings.TrimRight(cfg.CDNBaseURL, "/")
	}
	return strings.TrimRight(fallback, "/")
}

func joinURL(base, key string) string {
	return base + "/" + strings.TrimLeft(key, "/")
}
