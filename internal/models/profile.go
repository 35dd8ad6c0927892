package models

import "time"

// Role is the kind of account behind a profile
type Role string

const (
	RoleIndividual   Role = "individual"
	RoleOrganization Role = "organization"
)

// Profile is the public identity of an authenticated user. ID equals the auth
// user id, a UUID for Supabase sessions or a free-form Firebase UID.
type Profile struct {
	ID          string    `json:"id" gorm:"type:text;primaryKey"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	AvatarURL   string    `json:"avatar_url"`
	Role        Role      `json:"role" gorm:"size:20;default:'individual'"`
	Verified    bool      `json:"verified" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	Badges      []Badge   `json:"badges,omitempty" gorm:"many2many:user_badges;joinForeignKey:UserID;joinReferences:BadgeID"`
}

// ProfileSummary is the author block attached to posts
type ProfileSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Verified    bool   `json:"verified"`
}

// ToSummary trims a profile down to the fields shown next to a post
func (p *Profile) ToSummary() ProfileSummary {
	return ProfileSummary{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		AvatarURL:   p.AvatarURL,
		Verified:    p.Verified,
	}
}

// CanPostAs reports whether this profile may publish posts of the given type
func (p *Profile) CanPostAs(t PostType) bool {
	if t == PostTypeOrganization {
		return p.Role == RoleOrganization
	}
	return true
}
