package models

import "time"

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;uniqueIndex;not null"`
	Slug        string    `json:"slug" gorm:"size:255;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	PostsCount  int64     `json:"posts_count" gorm:"->;-:migration"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Posts       []Post    `json:"posts,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}
