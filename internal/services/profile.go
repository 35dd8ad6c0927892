package services

import (
	"context"

	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
)

// ProfileService assembles the profile screen
type ProfileService struct {
	profiles repositories.ProfileRepository
	posts    repositories.PostRepository
	badges   repositories.BadgeRepository
}

func NewProfileService(profiles repositories.ProfileRepository, posts repositories.PostRepository, badges repositories.BadgeRepository) *ProfileService {
	return &ProfileService{profiles: profiles, posts: posts, badges: badges}
}

// ProfileOverview is a profile with its badges and all of its posts
type ProfileOverview struct {
	Profile *models.Profile `json:"profile"`
	Badges  []models.Badge  `json:"badges"`
	Posts   []models.Post   `json:"posts"`
}

// Overview loads a profile, its badges and every post it authored, newest first
func (s *ProfileService) Overview(ctx context.Context, userID string) (*ProfileOverview, error) {
	profile, err := s.profiles.GetProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.GetPostsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	author := profile.ToSummary()
	for i := range posts {
		posts[i].Author = &author
	}

	badges, err := s.Badges(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProfileOverview{Profile: profile, Badges: badges, Posts: posts}, nil
}

// Badges returns the badges awarded to a profile
func (s *ProfileService) Badges(ctx context.Context, userID string) ([]models.Badge, error) {
	badges, err := s.badges.GetBadgesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if badges == nil {
		badges = []models.Badge{}
	}
	return badges, nil
}
