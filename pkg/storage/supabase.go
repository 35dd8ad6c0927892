package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// SupabaseStore keeps media in a Supabase storage bucket.
// storage-go has no context API, so ctx is only checked before each call and
// a deadline cannot interrupt a request already in flight.
type SupabaseStore struct {
	client *storage_go.Client
	bucket string
}

// NewSupabaseStore builds a store for the project at projectURL
// (https://<ref>.supabase.co) using a service key.
func NewSupabaseStore(projectURL, apiKey, bucket string) (*SupabaseStore, error) {
	if projectURL == "" || apiKey == "" || bucket == "" {
		return nil, fmt.Errorf("supabase url, key and bucket are required")
	}
	client := storage_go.NewClient(strings.TrimRight(projectURL, "/")+"/storage/v1", apiKey, nil)
	return &SupabaseStore{client: client, bucket: bucket}, nil
}

func (s *SupabaseStore) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	opts := storage_go.FileOptions{ContentType: &contentType}
	if _, err := s.client.UploadFile(s.bucket, path, body, opts); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", path, err)
	}
	return s.client.GetPublicUrl(s.bucket, path).SignedURL, nil
}

func (s *SupabaseStore) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.client.RemoveFile(s.bucket, []string{path}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}
