package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRequest records one user offering help on another user's post
type PostRequest struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID      string    `json:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_post_requester"`
	RequesterID string    `json:"requester_id" gorm:"type:text;not null;uniqueIndex:idx_post_requester"`
	CreatedAt   time.Time `json:"created_at"`
}

func (PostRequest) TableName() string {
	return "post_requests"
}

func (r *PostRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
