package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the kind of help or update a post is about
type Category string

const (
	CategoryBlood            Category = "blood"
	CategoryFood             Category = "food"
	CategoryClothes          Category = "clothes"
	CategoryBooks            Category = "books"
	CategoryBlankets         Category = "blankets"
	CategoryGeneral          Category = "general"
	CategoryCommunityService Category = "community_service"
	CategoryAchievement      Category = "achievement"
)

// PostType separates personal needs from organisation updates
type PostType string

const (
	PostTypeNeedy        PostType = "needy"
	PostTypeOrganization PostType = "organization"
)

// MediaType describes what media_url points at
type MediaType string

const (
	MediaTypeText  MediaType = "text"
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// PostStatus is the lifecycle state of a post
type PostStatus string

const (
	PostStatusActive    PostStatus = "active"
	PostStatusFulfilled PostStatus = "fulfilled"
	PostStatusExpired   PostStatus = "expired"
)

// BloodPostLifetime is how long a blood post stays relevant after creation
const BloodPostLifetime = 5 * time.Hour

var categoriesByType = map[PostType][]Category{
	PostTypeNeedy:        {CategoryBlood, CategoryFood, CategoryClothes, CategoryBooks, CategoryBlankets, CategoryGeneral},
	PostTypeOrganization: {CategoryCommunityService, CategoryAchievement, CategoryBlood},
}

// CategoriesFor returns the categories a post of the given type may use
func CategoriesFor(postType PostType) []Category {
	return categoriesByType[postType]
}

// Allows reports whether the category is selectable for this post type
func (t PostType) Allows(c Category) bool {
	for _, allowed := range categoriesByType[t] {
		if allowed == c {
			return true
		}
	}
	return false
}

// Valid reports whether t is a known post type
func (t PostType) Valid() bool {
	_, ok := categoriesByType[t]
	return ok
}

// Post is a need or an update published by a profile
type Post struct {
	ID          string     `json:"id" bson:"_id" gorm:"type:uuid;primaryKey"`
	UserID      string     `json:"user_id" bson:"user_id" gorm:"type:text;index;not null"`
	Title       string     `json:"title" bson:"title" gorm:"not null"`
	Description *string    `json:"description,omitempty" bson:"description,omitempty"`
	Category    Category   `json:"category" bson:"category" gorm:"size:30;index;not null"`
	PostType    PostType   `json:"post_type" bson:"post_type" gorm:"size:20;not null"`
	MediaURL    *string    `json:"media_url,omitempty" bson:"media_url,omitempty"`
	MediaType   MediaType  `json:"media_type" bson:"media_type" gorm:"size:10;default:'text'"`
	Status      PostStatus `json:"status" bson:"status" gorm:"size:20;index;default:'active'"`
	Latitude    *float64   `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty" bson:"longitude,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" bson:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at" gorm:"index"`

	// Author is filled in by the feed and profile loaders, never persisted
	Author *ProfileSummary `json:"author,omitempty" bson:"-" gorm:"-"`
}

// BeforeCreate assigns a UUID when the caller did not
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasLocation reports whether the post carries a geotag
func (p *Post) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// CreatePostRequest is the form or JSON body for creating a post
type CreatePostRequest struct {
	Title       string   `json:"title" form:"title" validate:"required,max=200"`
	Description string   `json:"description" form:"description" validate:"max=2000"`
	Category    string   `json:"category" form:"category" validate:"required,category"`
	PostType    string   `json:"post_type" form:"post_type" validate:"omitempty,oneof=needy organization"`
	Latitude    *float64 `json:"latitude" form:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64 `json:"longitude" form:"longitude" validate:"omitempty,longitude"`
}
