package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	gcs "cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

func TestNewSupabaseStore(t *testing.T) {
	store, err := NewSupabaseStore("https://example.supabase.co/", "service-key", "post-media")
	require.NoError(t, err)
	assert.Equal(t, "post-media", store.bucket)

	_, err = NewSupabaseStore("", "service-key", "post-media")
	assert.Error(t, err)
	_, err = NewSupabaseStore("https://example.supabase.co", "", "post-media")
	assert.Error(t, err)
}

func TestSupabaseStoreHonoursCancelledContext(t *testing.T) {
	// unroutable project url: a request that got through would fail with a dial error instead
	store, err := NewSupabaseStore("http://127.0.0.1:1", "service-key", "post-media")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Upload(ctx, "posts/a.png", "image/png", strings.NewReader("png"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Delete(ctx, "posts/a.png"), context.Canceled)
}

func TestNewFirebaseStoreRequiresClient(t *testing.T) {
	_, err := NewFirebaseStore(nil, "post-media")
	assert.Error(t, err)
}

func TestFirebaseStoreUploadsPublicReadObjects(t *testing.T) {
	var (
		mu   sync.Mutex
		acls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			mu.Lock()
			acls = append(acls, r.URL.Query().Get("predefinedAcl"))
			mu.Unlock()
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bucket":"post-media","name":"posts/u1/photo one.png"}`))
	}))
	defer srv.Close()

	ctx := context.Background()
	client, err := gcs.NewClient(ctx, option.WithoutAuthentication(), option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	defer client.Close()

	store := newBucketStore(client.Bucket("post-media"), "post-media")
	url, err := store.Upload(ctx, "posts/u1/photo one.png", "image/png", strings.NewReader("png"))
	require.NoError(t, err)

	assert.Equal(t, "https://storage.googleapis.com/post-media/posts/u1/photo%20one.png", url)
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, acls)
	assert.Equal(t, "publicRead", acls[0])
}

func TestStoresImplementMediaStore(t *testing.T) {
	var _ MediaStore = (*SupabaseStore)(nil)
	var _ MediaStore = (*FirebaseStore)(nil)
}
