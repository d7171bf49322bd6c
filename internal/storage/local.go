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

// LocalURLPrefix is the path under which the router serves UploadDir.
const LocalURLPrefix = "/uploads"

// LocalStore writes objects to a directory on disk.
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Dir returns the directory backing the store.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Put writes obj to <dir>/<name>. Existing files are never overwritten.
func (s *LocalStore) Put(ctx context.Context, name string, obj Object) (string, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid object name %q", name)
	}

	dst := filepath.Join(s.dir, name)
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, obj.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return s.urlPrefix + "/" + name, nil
}

// Delete removes the file behind a reference produced by Put. Both
// "/uploads/x.png" and "uploads/x.png" forms are accepted.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	if !s.owns(ref) {
		return nil
	}
	name := path.Base(ref)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) owns(ref string) bool {
	prefix := s.urlPrefix + "/"
	return strings.HasPrefix(ref, prefix) || strings.HasPrefix(ref, strings.TrimPrefix(prefix, "/"))
}
