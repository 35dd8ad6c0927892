package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/anonto42/community-connect/backend/internal/metrics"
	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/anonto42/community-connect/backend/pkg/logger"
	"github.com/anonto42/community-connect/backend/pkg/storage"
	"github.com/gabriel-vasile/mimetype"
)

// sniffLimit is how much of an upload is read to guess an undeclared MIME type
const sniffLimit = 3072

// MediaFile is the optional photo or video attached to a new post
type MediaFile struct {
	Filename string
	// ContentType is the MIME type declared by the client, possibly empty
	ContentType string
	Body        io.Reader
}

// PostDraft is the input of PostComposer.Compose
type PostDraft struct {
	Title       string
	Description string
	Category    models.Category
	PostType    models.PostType
	Latitude    *float64
	Longitude   *float64
	Media       *MediaFile
}

// PostComposer validates and publishes new posts
type PostComposer struct {
	posts repositories.PostRepository
	media storage.MediaStore
	now   func() time.Time
}

func NewPostComposer(posts repositories.PostRepository, media storage.MediaStore) *PostComposer {
	return &PostComposer{posts: posts, media: media, now: time.Now}
}

// Compose validates the draft, uploads its media and inserts an active post.
// Validation runs before any backend call. If the insert fails after an
// upload, the uploaded object is removed again.
func (c *PostComposer) Compose(ctx context.Context, session Session, draft PostDraft) (*models.Post, error) {
	if err := validateDraft(&draft); err != nil {
		return nil, err
	}
	if !session.Verified() {
		return nil, apperrors.ErrNotVerified
	}
	if !session.Profile.CanPostAs(draft.PostType) {
		return nil, apperrors.NewForbiddenError("Only organization accounts can create organization posts")
	}

	// Postgres keeps microseconds; truncating keeps expires_at - created_at exact after a round trip.
	now := c.now().UTC().Truncate(time.Microsecond)

	post := &models.Post{
		UserID:    session.UserID,
		Title:     draft.Title,
		Category:  draft.Category,
		PostType:  draft.PostType,
		MediaType: models.MediaTypeText,
		Status:    models.PostStatusActive,
		Latitude:  draft.Latitude,
		Longitude: draft.Longitude,
		ExpiresAt: ExpiryFor(draft.Category, now),
		CreatedAt: now,
	}
	if draft.Description != "" {
		description := draft.Description
		post.Description = &description
	}

	var uploadedPath string
	if draft.Media != nil {
		path, url, kind, err := c.upload(ctx, session.UserID, draft.Media, now)
		if err != nil {
			return nil, err
		}
		uploadedPath = path
		post.MediaURL = &url
		post.MediaType = kind
	}

	if err := c.posts.CreatePost(ctx, post); err != nil {
		if uploadedPath != "" {
			c.discardMedia(uploadedPath)
		}
		return nil, err
	}

	metrics.RecordPostCreated(string(post.Category), string(post.MediaType))
	logger.Info().Str("post_id", post.ID).Str("user_id", post.UserID).Str("category", string(post.Category)).Msg("Post created")
	return post, nil
}

func validateDraft(draft *PostDraft) error {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Description = strings.TrimSpace(draft.Description)
	if draft.Title == "" || draft.Category == "" {
		return apperrors.ErrMissingFields
	}

	if draft.PostType == "" {
		draft.PostType = models.PostTypeNeedy
	}
	if !draft.PostType.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("Unknown post type %q", draft.PostType))
	}
	if !draft.PostType.Allows(draft.Category) {
		return apperrors.NewValidationError(fmt.Sprintf("Category %q is not available for %s posts", draft.Category, draft.PostType))
	}
	if (draft.Latitude == nil) != (draft.Longitude == nil) {
		return apperrors.NewValidationError("Latitude and longitude must be given together")
	}
	return nil
}

func (c *PostComposer) upload(ctx context.Context, userID string, file *MediaFile, at time.Time) (path, url string, kind models.MediaType, err error) {
	contentType, body, err := resolveContentType(file)
	if err != nil {
		return "", "", "", err
	}

	path = MediaPath(userID, file.Filename, at)
	url, err = c.media.Upload(ctx, path, contentType, body)
	if err != nil {
		return "", "", "", err
	}
	return path, url, MediaKind(contentType), nil
}

// discardMedia runs detached from the request context, which may already be cancelled
func (c *PostComposer) discardMedia(path string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := c.media.Delete(ctx, path); err != nil {
		metrics.RecordOrphanedMedia()
		logger.Warn().Err(err).Str("path", path).Msg("Failed to remove media of a post that was not created")
	}
}

// ExpiryFor returns createdAt + 5h for blood posts and nil for every other category
func ExpiryFor(category models.Category, createdAt time.Time) *time.Time {
	if category != models.CategoryBlood {
		return nil
	}
	expiresAt := createdAt.Add(models.BloodPostLifetime)
	return &expiresAt
}

// MediaKind maps a MIME type to the stored media type: image/* is an image,
// anything else is treated as video.
func MediaKind(contentType string) models.MediaType {
	if strings.HasPrefix(contentType, "image/") {
		return models.MediaTypeImage
	}
	return models.MediaTypeVideo
}

// MediaPath is the object key "{user}/{unix millis}.{extension}". The
// extension is whatever follows the last dot, or the whole name without one.
func MediaPath(userID, filename string, at time.Time) string {
	ext := filename[strings.LastIndex(filename, ".")+1:]
	return fmt.Sprintf("%s/%d.%s", userID, at.UnixMilli(), ext)
}

// resolveContentType trusts the declared type unless it is missing or
// generic, in which case it sniffs the first bytes of the body.
func resolveContentType(file *MediaFile) (string, io.Reader, error) {
	declared := strings.TrimSpace(file.ContentType)
	if declared != "" && declared != "application/octet-stream" {
		return declared, file.Body, nil
	}

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(file.Body, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("failed to read media: %w", err)
	}
	head = head[:n]
	detected := mimetype.Detect(head).String()
	return detected, io.MultiReader(bytes.NewReader(head), file.Body), nil
}
