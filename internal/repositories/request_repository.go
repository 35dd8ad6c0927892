package repositories

import (
	"context"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// RequestRepository defines the interface for help request operations
type RequestRepository interface {
	// CreateRequest returns apperrors.ErrDuplicateRequest when the requester
	// already asked to help on the post
	CreateRequest(ctx context.Context, request *models.PostRequest) error
	HasRequested(ctx context.Context, postID, requesterID string) (bool, error)
	GetRequestsCountByPostID(ctx context.Context, postID string) (int64, error)
}

// PostgresRequestRepository implements RequestRepository for PostgreSQL
type PostgresRequestRepository struct {
	db *gorm.DB
}

func NewPostgresRequestRepository(db *gorm.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

func (r *PostgresRequestRepository) CreateRequest(ctx context.Context, request *models.PostRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateRequest
		}
		return err
	}
	return nil
}

func (r *PostgresRequestRepository) HasRequested(ctx context.Context, postID, requesterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostRequest{}).
		Where("post_id = ? AND requester_id = ?", postID, requesterID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRequestRepository) GetRequestsCountByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PostRequest{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}
