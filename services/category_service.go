package services

import (
	"errors"
	"fmt"
	"strings"

	"blogapi/models"
	"blogapi/utils"

	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

const livePostsCount = "(SELECT COUNT(*) FROM posts WHERE posts.category_id = categories.id AND posts.deleted_at IS NULL) AS posts_count"

func (s *CategoryService) List() ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.Model(&models.Category{}).
		Select("categories.*, " + livePostsCount).
		Order("categories.name ASC").
		Find(&categories).Error
	return categories, err
}

// GetBySlug loads the category with its published posts, newest first.
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Model(&models.Category{}).
		Select("categories.*, "+livePostsCount).
		Where("categories.slug = ?", slug).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.PostStatusPublished).Order("published_at DESC")
		}).
		Preload("Posts.User").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Create(req *models.CreateCategoryRequest) (*models.Category, error) {
	name, err := requiredText("name", req.Name, 1)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(name, 0); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(name, 0)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fieldError("name", "Category name already exists.")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Update(slug string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.bySlug(slug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name, err := requiredText("name", *req.Name, 1)
		if err != nil {
			return nil, err
		}
		if name != category.Name {
			if err := s.ensureNameFree(name, category.ID); err != nil {
				return nil, err
			}
			newSlug, err := s.uniqueSlug(name, category.ID)
			if err != nil {
				return nil, err
			}
			category.Name = name
			category.Slug = newSlug
		}
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := s.db.Save(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fieldError("name", "Category name already exists.")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

// Delete refuses while any post, trashed ones included, still points here.
func (s *CategoryService) Delete(slug string) error {
	category, err := s.bySlug(slug)
	if err != nil {
		return err
	}

	var count int64
	if err := s.db.Unscoped().Model(&models.Post{}).Where("category_id = ?", category.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.db.Delete(category).Error
}

func (s *CategoryService) bySlug(slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) ensureNameFree(name string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("LOWER(name) = ? AND id <> ?", strings.ToLower(name), excludeID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fieldError("name", "Category name already exists.")
	}
	return nil
}

func (s *CategoryService) uniqueSlug(name string, excludeID uint) (string, error) {
	return utils.UniqueSlug(name, "category", func(candidate string) (bool, error) {
		var count int64
		err := s.db.Model(&models.Category{}).
			Where("slug = ? AND id <> ?", candidate, excludeID).
			Count(&count).Error
		return count > 0, err
	})
}
