package repositories

import (
	"context"

	"github.com/anonto42/community-connect/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationMode selects how notifications are created
type NotificationMode string

const (
	NotificationsViaRPC   NotificationMode = "rpc"
	NotificationsViaTable NotificationMode = "table"
)

// RequestStore hands out request and notification repositories bound to a
// single transaction, so a help request is never recorded without its
// notification (or the other way round).
type RequestStore interface {
	WithinTransaction(ctx context.Context, fn func(requests RequestRepository, notifications NotificationRepository) error) error
}

type gormRequestStore struct {
	db   *gorm.DB
	mode NotificationMode
}

func NewRequestStore(db *gorm.DB, mode NotificationMode) RequestStore {
	return &gormRequestStore{db: db, mode: mode}
}

func (s *gormRequestStore) WithinTransaction(ctx context.Context, fn func(RequestRepository, NotificationRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPostgresRequestRepository(tx), NewNotificationRepository(tx, s.mode))
	})
}

// NewNotificationRepository picks the implementation for mode
func NewNotificationRepository(db *gorm.DB, mode NotificationMode) NotificationRepository {
	if mode == NotificationsViaRPC {
		return NewRPCNotificationRepository(db)
	}
	return NewPostgresNotificationRepository(db)
}

// AutoMigrate creates the tables this service owns. The managed backend
// normally provisions them; this is for local and test databases.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Profile{}, "Badges", &models.UserBadge{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.Profile{},
		&models.Badge{},
		&models.UserBadge{},
		&models.Post{},
		&models.PostRequest{},
		&models.Notification{},
	)
}
