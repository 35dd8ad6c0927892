package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Badge is an achievement that can be awarded to a profile
type Badge struct {
	ID          string `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (b *Badge) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// UserBadge joins profiles and badges. Rows are written by the backend, never here.
type UserBadge struct {
	UserID    string    `json:"user_id" gorm:"type:text;primaryKey"`
	BadgeID   string    `json:"badge_id" gorm:"type:uuid;primaryKey"`
	AwardedAt time.Time `json:"awarded_at" gorm:"autoCreateTime"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}
