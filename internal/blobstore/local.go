package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Local writes uploads to a directory on disk, served back under /uploads.
type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Put(_ context.Context, filename string, data []byte) (string, error) {
	name := storageName(filename)
	if err := os.WriteFile(filepath.Join(l.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	return "/uploads/" + name, nil
}

// storageName builds a collision-free name from the upload time and a random
// fragment, keeping the original extension. The client-supplied filename is
// never used as a path.
func storageName(filename string) string {
	ext := filepath.Ext(filepath.Base(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}
