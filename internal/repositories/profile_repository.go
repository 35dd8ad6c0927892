package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile reads. Profiles are
// written by the auth backend when users sign up.
type ProfileRepository interface {
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	// GetProfileWithBadges also loads the badges awarded to the profile
	GetProfileWithBadges(ctx context.Context, id string) (*models.Profile, error)
	// GetSummariesByIDs returns author summaries keyed by profile id
	GetSummariesByIDs(ctx context.Context, ids []string) (map[string]models.ProfileSummary, error)
}

// PostgresProfileRepository implements ProfileRepository for PostgreSQL
type PostgresProfileRepository struct {
	db *gorm.DB
}

func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *PostgresProfileRepository) GetProfileWithBadges(ctx context.Context, id string) (*models.Profile, error) {
	return r.first(r.db.WithContext(ctx).Preload("Badges"), id)
}

func (r *PostgresProfileRepository) first(q *gorm.DB, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := q.Where("id = ?", id).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresProfileRepository) GetSummariesByIDs(ctx context.Context, ids []string) (map[string]models.ProfileSummary, error) {
	result := make(map[string]models.ProfileSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var profiles []models.Profile
	err := r.db.WithContext(ctx).
		Select("id", "display_name", "avatar_url", "verified").
		Where("id IN ?", ids).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		result[profiles[i].ID] = profiles[i].ToSummary()
	}
	return result, nil
}
