package storage

import (
	"context"
	"fmt"
	"io"

	cfg "github.com/LackyKannauje/college-updates/pkg/config"
)

// AssetStore persists uploaded binaries on an external asset host.
// Keys are "<bucket>/<name>", e.g. "post_images/media-3f2a...".
type AssetStore interface {
	// Store uploads body under key and returns the public URL of the asset.
	Store(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Release deletes the asset stored under key. resourceType is the
	// host-specific resource class ("image", "video", "raw").
	Release(ctx context.Context, key, resourceType string) error
}

// New builds the asset store selected by ASSET_BACKEND.
func New(c *cfg.Config) (AssetStore, error) {
	switch c.AssetBackend {
	case "cloudinary":
		return NewCloudinaryStorage(c.CloudinaryURL)
	case "s3":
		return NewS3Storage(context.Background(), S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown asset backend %q", c.AssetBackend)
	}
}
