package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"taskboard/internal/storage"
)

// Photo is an uploaded image waiting to be stored.
type Photo struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// photoUploader names uploads and talks to the blob store on behalf of the
// user-facing services.
type photoUploader struct {
	store  storage.BlobStore
	now    func() time.Time
	logger *slog.Logger
}

func newPhotoUploader(store storage.BlobStore, logger *slog.Logger) *photoUploader {
	return &photoUploader{store: store, now: time.Now, logger: logger}
}

func (p *photoUploader) save(ctx context.Context, photo *Photo) (string, error) {
	name := storage.ObjectName(photo.Filename, p.now())
	ref, err := p.store.Put(ctx, name, storage.Object{
		Body:        photo.Body,
		Size:        photo.Size,
		ContentType: photo.ContentType,
	})
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return ref, nil
}

// discard deletes ref and only logs on failure; the user record is already correct.
func (p *photoUploader) discard(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := p.store.Delete(ctx, ref); err != nil {
		p.logger.WarnContext(ctx, "failed to remove photo", "photo", ref, "error", err)
	}
}
