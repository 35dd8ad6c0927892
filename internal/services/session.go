// Package services holds the feed, post and help-request rules. Every call
// receives the caller's Session explicitly instead of reading global state.
package services

import "github.com/anonto42/community-connect/backend/internal/models"

// Session is the authenticated caller: the auth user id and its profile
type Session struct {
	UserID  string
	Profile *models.Profile
}

// Verified reports whether the caller may create posts
func (s Session) Verified() bool {
	return s.Profile != nil && s.Profile.Verified
}
