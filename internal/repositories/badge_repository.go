package repositories

import (
	"context"

	"github.com/anonto42/community-connect/backend/internal/models"
	"gorm.io/gorm"
)

// BadgeRepository reads the badges awarded to profiles
type BadgeRepository interface {
	GetBadgesByUserID(ctx context.Context, userID string) ([]models.Badge, error)
}

type postgresBadgeRepository struct {
	db *gorm.DB
}

func NewPostgresBadgeRepository(db *gorm.DB) BadgeRepository {
	return &postgresBadgeRepository{db: db}
}

func (r *postgresBadgeRepository) GetBadgesByUserID(ctx context.Context, userID string) ([]models.Badge, error) {
	badges := []models.Badge{}
	err := r.db.WithContext(ctx).
		Joins("JOIN user_badges ON user_badges.badge_id = badges.id").
		Where("user_badges.user_id = ?", userID).
		Order("user_badges.awarded_at ASC").
		Find(&badges).Error
	return badges, err
}
