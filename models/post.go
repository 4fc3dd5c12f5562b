package models

import (
	"time"

	"gorm.io/gorm"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
)

type Post struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	Title         string         `json:"title" gorm:"size:255;not null"`
	Slug          string         `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Content       string         `json:"content" gorm:"type:text;not null"`
	Excerpt       *string        `json:"excerpt" gorm:"size:500"`
	FeaturedImage *string        `json:"featured_image" gorm:"size:255"`
	Status        PostStatus     `json:"status" gorm:"size:16;not null;default:draft;index"`
	PublishedAt   *time.Time     `json:"published_at" gorm:"index"`
	UserID        uint           `json:"user_id" gorm:"not null;index"`
	User          *User          `json:"user,omitempty"`
	CategoryID    uint           `json:"category_id" gorm:"not null;index"`
	Category      *Category      `json:"category,omitempty"`
	Comments      []Comment      `json:"comments,omitempty" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}

type CreatePostRequest struct {
	Title         string     `json:"title" binding:"required,min=3,max=255"`
	Content       string     `json:"content" binding:"required,min=10"`
	Excerpt       *string    `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage *string    `json:"featured_image" binding:"omitempty,max=255"`
	Status        PostStatus `json:"status" binding:"required,oneof=draft published"`
	CategoryID    uint       `json:"category_id" binding:"required"`
	PublishedAt   *time.Time `json:"published_at"`
}

// UpdatePostRequest only touches the fields present in the body; a present
// field must still satisfy its rules.
type UpdatePostRequest struct {
	Title         *string     `json:"title" binding:"omitempty,min=3,max=255"`
	Content       *string     `json:"content" binding:"omitempty,min=10"`
	Excerpt       *string     `json:"excerpt" binding:"omitempty,max=500"`
	FeaturedImage *string     `json:"featured_image" binding:"omitempty,max=255"`
	Status        *PostStatus `json:"status" binding:"omitempty,oneof=draft published"`
	CategoryID    *uint       `json:"category_id" binding:"omitempty,min=1"`
	PublishedAt   *time.Time  `json:"published_at"`
}

type PostFilter struct {
	Status   string
	Category string
	Search   string
	AuthorID uint
	Page     int
	PerPage  int
}

// Paginated mirrors the page envelope the SPA reads as response.data.
type Paginated[T any] struct {
	Data        []T   `json:"data"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
}

func NewPaginated[T any](items []T, page, perPage int, total int64) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return Paginated[T]{
		Data:        items,
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    lastPage,
	}
}
