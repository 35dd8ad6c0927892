package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/community-connect/backend/internal/metrics"
	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/pkg/apperrors"
	"github.com/anonto42/community-connect/backend/pkg/logger"
)

// RequestDispatcher records offers to help and notifies the post owner
type RequestDispatcher struct {
	posts repositories.PostRepository
	store repositories.RequestStore
}

func NewRequestDispatcher(posts repositories.PostRepository, store repositories.RequestStore) *RequestDispatcher {
	return &RequestDispatcher{posts: posts, store: store}
}

// Dispatch records that the caller wants to help with postID and notifies the
// post owner in the same transaction. A repeated request returns
// apperrors.ErrDuplicateRequest and leaves the stored data unchanged.
func (d *RequestDispatcher) Dispatch(ctx context.Context, session Session, postID string) (*models.PostRequest, error) {
	if session.Profile == nil {
		return nil, apperrors.ErrProfileNotFound
	}

	post, err := d.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID == session.UserID {
		return nil, apperrors.ErrSelfRequest
	}
	if post.Status != models.PostStatusActive {
		return nil, apperrors.ErrPostNotActive
	}

	request := &models.PostRequest{PostID: post.ID, RequesterID: session.UserID}
	err = d.store.WithinTransaction(ctx, func(requests repositories.RequestRepository, notifications repositories.NotificationRepository) error {
		if err := requests.CreateRequest(ctx, request); err != nil {
			return err
		}
		relatedPostID := post.ID
		return notifications.CreateNotification(ctx, &models.Notification{
			UserID:        post.UserID,
			Message:       RequestMessage(session.Profile.DisplayName),
			Type:          models.NotificationTypeRequest,
			RelatedPostID: &relatedPostID,
		})
	})

	switch {
	case err == nil:
		metrics.RecordHelpRequest("sent")
		logger.Info().Str("post_id", post.ID).Str("requester_id", session.UserID).Msg("Help request sent")
		return request, nil
	case errors.Is(err, apperrors.ErrDuplicateRequest):
		metrics.RecordHelpRequest("duplicate")
		return nil, err
	default:
		metrics.RecordHelpRequest("error")
		logger.Error().Err(err).Str("post_id", post.ID).Msg("Failed to send help request")
		return nil, err
	}
}

// RequestMessage is the text the post owner receives
func RequestMessage(requesterName string) string {
	return fmt.Sprintf("%s wants to help with your post", requesterName)
}
