package models

import "time"

// NotificationTypeRequest marks a notification about a help request
const NotificationTypeRequest = "request"

// Notification is a message addressed to a profile
type Notification struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"type:text;index;not null"`
	Message       string    `json:"message"`
	Type          string    `json:"type" gorm:"size:30;index"` // request, badge, system
	RelatedPostID *string   `json:"related_post_id,omitempty" gorm:"type:uuid"`
	IsRead        bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}
