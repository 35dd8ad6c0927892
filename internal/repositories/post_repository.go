package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// GetActivePosts returns active posts, newest first
	GetActivePosts(ctx context.Context) ([]models.Post, error)
	// GetPostsByUserID returns every post of a user regardless of status, newest first
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	// the id column is a uuid; postgres rejects anything else with 22P02
	if !validPostID(id) {
		return nil, apperrors.ErrPostNotFound
	}

	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetActivePosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("status = ?", models.PostStatusActive).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// validPostID reports whether id can name a post. Post ids are always UUIDs.
func validPostID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
