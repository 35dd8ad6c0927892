// Package storage uploads post media to a bucket and hands back public URLs.
package storage

import (
	"context"
	"io"
)

// MediaStore is the blob store behind post media
type MediaStore interface {
	// Upload stores body at path and returns the object's public URL
	Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error)
	// Delete removes an object previously stored at path
	Delete(ctx context.Context, path string) error
}
