// Package testutil builds in-memory databases, fixtures and fakes for tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would get its own empty :memory: database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repositories.AutoMigrate(db))
	return db
}

// ProfileOption tweaks a fixture profile
type ProfileOption func(*models.Profile)

func Verified(p *models.Profile) { p.Verified = true }

func Organization(p *models.Profile) { p.Role = models.RoleOrganization }

// WithID sets the auth user id, for example a Firebase UID
func WithID(id string) ProfileOption {
	return func(p *models.Profile) { p.ID = id }
}

// CreateProfile inserts an individual, unverified profile unless options say otherwise
func CreateProfile(t *testing.T, db *gorm.DB, displayName string, opts ...ProfileOption) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		ID:          uuid.NewString(),
		DisplayName: displayName,
		Role:        models.RoleIndividual,
	}
	for _, opt := range opts {
		opt(profile)
	}
	require.NoError(t, db.Create(profile).Error)
	return profile
}

// CreatePost inserts an active needy post in category for owner
func CreatePost(t *testing.T, db *gorm.DB, owner *models.Profile, title string, category models.Category) *models.Post {
	t.Helper()

	post := &models.Post{
		UserID:    owner.ID,
		Title:     title,
		Category:  category,
		PostType:  models.PostTypeNeedy,
		MediaType: models.MediaTypeText,
		Status:    models.PostStatusActive,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

// MediaStore is an in-memory storage.MediaStore that records every call
type MediaStore struct {
	mu sync.Mutex

	Objects      map[string][]byte
	ContentTypes map[string]string
	Uploads      int
	Deleted      []string

	UploadErr error
	DeleteErr error
}

func NewMediaStore() *MediaStore {
	return &MediaStore{Objects: map[string][]byte{}, ContentTypes: map[string]string{}}
}

func (s *MediaStore) Upload(ctx context.Context, path, contentType string, body io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Uploads++
	if s.UploadErr != nil {
		return "", s.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	s.Objects[path] = buf.Bytes()
	s.ContentTypes[path] = contentType
	return fmt.Sprintf("https://media.test/%s", path), nil
}

func (s *MediaStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Deleted = append(s.Deleted, path)
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	delete(s.Objects, path)
	return nil
}

// Calls is the number of uploads and deletes seen so far
func (s *MediaStore) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Uploads + len(s.Deleted)
}
