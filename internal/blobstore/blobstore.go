// Package blobstore abstracts upload storage behind a small put-style
// interface so handlers persist only the returned path string. Backends:
// local disk and S3-compatible object storage.
package blobstore

import "context"

// Store saves uploaded bytes and hands back the relative URL path that the
// caller persists alongside the entity record.
type Store interface {
	Put(ctx context.Context, filename string, data []byte) (string, error)
}
