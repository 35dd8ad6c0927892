package services

import (
	"context"
	"slices"

	"github.com/anonto42/community-connect/backend/internal/metrics"
	"github.com/anonto42/community-connect/backend/internal/models"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/pkg/logger"
)

// FeedLoader builds the activity feed
type FeedLoader struct {
	posts    repositories.PostRepository
	profiles repositories.ProfileRepository
}

func NewFeedLoader(posts repositories.PostRepository, profiles repositories.ProfileRepository) *FeedLoader {
	return &FeedLoader{posts: posts, profiles: profiles}
}

// Home is what the home screen shows to the caller
type Home struct {
	Profile              *models.Profile `json:"profile"`
	Posts                []models.Post   `json:"posts"`
	VerificationRequired bool            `json:"verification_required"`
}

// Load returns active posts with their authors, blood posts first. On failure
// it still returns an empty, non-nil list alongside the error.
func (f *FeedLoader) Load(ctx context.Context) ([]models.Post, error) {
	posts, err := f.posts.GetActivePosts(ctx)
	if err == nil {
		err = attachAuthors(ctx, f.profiles, posts)
	}
	metrics.RecordFeedLoad(err)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load feed")
		return []models.Post{}, err
	}
	return RankFeed(posts), nil
}

// Home loads the caller's profile with badges next to the feed. A profile
// lookup failure is logged and the session profile is used instead.
func (f *FeedLoader) Home(ctx context.Context, session Session) (*Home, error) {
	profile, err := f.profiles.GetProfileWithBadges(ctx, session.UserID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", session.UserID).Msg("Error fetching profile")
		profile = session.Profile
	}

	posts, err := f.Load(ctx)
	home := &Home{
		Profile:              profile,
		Posts:                posts,
		VerificationRequired: profile == nil || !profile.Verified,
	}
	return home, err
}

// RankFeed moves every blood post ahead of every other post. It is a stable
// partition: posts keep their incoming order within each group.
func RankFeed(posts []models.Post) []models.Post {
	ranked := make([]models.Post, len(posts))
	copy(ranked, posts)
	slices.SortStableFunc(ranked, func(a, b models.Post) int {
		return feedPriority(a) - feedPriority(b)
	})
	return ranked
}

func feedPriority(p models.Post) int {
	if p.Category == models.CategoryBlood {
		return 0
	}
	return 1
}

// attachAuthors fills Post.Author with one batched profile lookup
func attachAuthors(ctx context.Context, profiles repositories.ProfileRepository, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	authors, err := profiles.GetSummariesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		if author, ok := authors[posts[i].UserID]; ok {
			posts[i].Author = &author
		}
	}
	return nil
}
