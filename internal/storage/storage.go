// Package storage holds uploaded profile photos behind a small blob-store
// interface with local-disk and S3 implementations.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/config"
)

// Object is the content handed to a BlobStore.
type Object struct {
	Body        io.ReadSeeker
	Size        int64
	ContentType string
}

// BlobStore saves objects and returns a reference clients can fetch.
type BlobStore interface {
	// Put stores obj under name and returns its public reference.
	Put(ctx context.Context, name string, obj Object) (string, error)
	// Delete removes the object behind ref. References the store does not own
	// (external URLs, placeholders) are ignored.
	Delete(ctx context.Context, ref string) error
}

// ObjectName names an upload by its timestamp in milliseconds plus the
// lower-cased extension of the original filename, e.g. "1690000000123.png".
func ObjectName(original string, at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10) + strings.ToLower(filepath.Ext(original))
}

// New builds the BlobStore selected by cfg.
func New(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	switch cfg.Backend {
	case config.StorageLocal:
		return NewLocalStore(cfg.UploadDir, LocalURLPrefix)
	case config.StorageS3:
		return NewS3Store(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
			Prefix:    cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
	}
}
