package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	gcs "cloud.google.com/go/storage"
	firebasestorage "firebase.google.com/go/v4/storage"
)

// publicReadACL makes uploaded objects readable through their storage.googleapis.com URL.
// Buckets with uniform bucket-level access reject per-object ACLs and must grant
// allUsers objectViewer instead.
const publicReadACL = "publicRead"

// FirebaseStore keeps media in a Cloud Storage bucket owned by the firebase project
type FirebaseStore struct {
	bucket *gcs.BucketHandle
	name   string
}

func NewFirebaseStore(client *firebasestorage.Client, bucket string) (*FirebaseStore, error) {
	if client == nil || bucket == "" {
		return nil, fmt.Errorf("firebase storage client and bucket are required")
	}
	handle, err := client.Bucket(bucket)
	if err != nil {
		return nil, err
	}
	return newBucketStore(handle, bucket), nil
}

func newBucketStore(handle *gcs.BucketHandle, name string) *FirebaseStore {
	return &FirebaseStore{bucket: handle, name: name}
}

func (s *FirebaseStore) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	w := s.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.PredefinedACL = publicReadACL
	if _, err := io.Copy(w, body); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.name, (&url.URL{Path: path}).EscapedPath()), nil
}

func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	return s.bucket.Object(path).Delete(ctx)
}
