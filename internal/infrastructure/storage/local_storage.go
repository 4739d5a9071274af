package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/you/classhub/domain"
)

// PublicPrefix is the URL prefix attachments are served under
const PublicPrefix = "/uploads"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// LocalStorage implements domain.FileStorage on the local filesystem.
// Files are named "<unix-ms>-<original name>".
type LocalStorage struct {
	dir string
	now func() time.Time
}

// NewLocalStorage creates dir if needed
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}
	return &LocalStorage{dir: dir, now: time.Now}, nil
}

// Dir is the directory files are written to
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save implements domain.FileStorage and returns the public path of the file
func (s *LocalStorage) Save(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	base := unsafeChars.ReplaceAllString(filepath.Base(name), "_")
	if base == "" || base == "." || base == ".." || base == "_" {
		base = "file"
	}
	stored := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + base

	// O_EXCL keeps two uploads in the same millisecond from overwriting each other
	f, err := os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	for i := 1; os.IsExist(err) && i < 100; i++ {
		stored = strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + strconv.Itoa(i) + "-" + base
		f, err = os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", stored, err)
	}
	defer f.Close()

	if _, err := f.Write(content); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", stored, err)
	}
	return PublicPrefix + "/" + stored, nil
}

var _ domain.FileStorage = (*LocalStorage)(nil)
