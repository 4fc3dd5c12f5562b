package database

import (
	"fmt"
	"log"

	"blogapi/models"

	"gorm.io/gorm"
)

var defaultCategories = []models.Category{
	{Name: "Technology", Slug: "technology", Description: "Latest trends and news in technology"},
	{Name: "Web Development", Slug: "web-development", Description: "Web development tutorials and best practices"},
	{Name: "Mobile Development", Slug: "mobile-development", Description: "Mobile app development guides and tips"},
	{Name: "Programming", Slug: "programming", Description: "Programming languages and coding techniques"},
	{Name: "Design", Slug: "design", Description: "UI/UX design and visual design principles"},
}

// SeedCategories inserts the starter categories into an empty table.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := make([]models.Category, len(defaultCategories))
	copy(categories, defaultCategories)
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	log.Printf("Seeded %d categories", len(categories))
	return nil
}
