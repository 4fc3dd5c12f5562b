package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"blogapi/models"
	"blogapi/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPerPage  = 10
	MaxPerPage      = 100
	maxSlugAttempts = 3
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// ListPublished returns the public feed, newest publication first.
func (s *PostService) ListPublished(filter models.PostFilter) (models.Paginated[models.Post], error) {
	query := s.db.Model(&models.Post{}).Where("posts.status = ?", models.PostStatusPublished)
	if filter.AuthorID != 0 {
		query = query.Where("posts.user_id = ?", filter.AuthorID)
	}
	query = s.applySearch(query, filter)
	return s.paginate(query, filter, "posts.published_at DESC, posts.id DESC")
}

// ListByAuthor returns every live post of one user, drafts included.
func (s *PostService) ListByAuthor(userID uint, filter models.PostFilter) (models.Paginated[models.Post], error) {
	query := s.db.Model(&models.Post{}).Where("posts.user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("posts.status = ?", filter.Status)
	}
	query = s.applySearch(query, filter)
	return s.paginate(query, filter, "posts.created_at DESC, posts.id DESC")
}

func (s *PostService) applySearch(query *gorm.DB, filter models.PostFilter) *gorm.DB {
	if filter.Category != "" {
		query = query.Where("posts.category_id IN (?)",
			s.db.Model(&models.Category{}).Select("id").Where("slug = ?", filter.Category))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?)", like, like)
	}
	return query
}

func (s *PostService) paginate(query *gorm.DB, filter models.PostFilter, order string) (models.Paginated[models.Post], error) {
	page, perPage := normalizePage(filter.Page, filter.PerPage)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return models.Paginated[models.Post]{}, err
	}

	var posts []models.Post
	err := query.Session(&gorm.Session{}).
		Preload("User").
		Preload("Category").
		Order(order).
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error
	if err != nil {
		return models.Paginated[models.Post]{}, err
	}

	return models.NewPaginated(posts, page, perPage, total), nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return page, perPage
}

// GetBySlug hides drafts from everyone but their author. viewerID is zero for
// anonymous requests.
func (s *PostService) GetBySlug(slug string, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("User").Preload("Category").Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if !post.IsPublished() && post.UserID != viewerID {
		return nil, ErrPostNotFound
	}
	return &post, nil
}

func (s *PostService) Create(userID uint, req *models.CreatePostRequest) (*models.Post, error) {
	title, err := requiredText("title", req.Title, 3)
	if err != nil {
		return nil, err
	}
	content, err := requiredText("content", req.Content, 10)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCategory(req.CategoryID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:         title,
		Content:       content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		Status:        models.PostStatusDraft,
		UserID:        userID,
		CategoryID:    req.CategoryID,
	}
	applyStatus(post, req.Status, req.PublishedAt)

	var lastErr error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := s.uniqueSlug(post.Title, 0)
		if err != nil {
			return nil, err
		}
		post.Slug = slug

		lastErr = s.db.Omit(clause.Associations).Create(post).Error
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			break
		}
		post.ID = 0
	}
	if lastErr != nil {
		return nil, fmt.Errorf("create post: %w", lastErr)
	}

	return s.reload(post.ID)
}

// Update applies the fields present in req. published reports whether this
// update moved the post from draft to published.
func (s *PostService) Update(userID uint, slug string, req *models.UpdatePostRequest) (post *models.Post, published bool, err error) {
	post, err = s.ownedPost(userID, slug)
	if err != nil {
		return nil, false, err
	}
	wasPublished := post.IsPublished()

	if req.CategoryID != nil {
		if err := s.ensureCategory(*req.CategoryID); err != nil {
			return nil, false, err
		}
		post.CategoryID = *req.CategoryID
		post.Category = nil
	}
	if req.Title != nil {
		title, err := requiredText("title", *req.Title, 3)
		if err != nil {
			return nil, false, err
		}
		if title != post.Title {
			newSlug, err := s.uniqueSlug(title, post.ID)
			if err != nil {
				return nil, false, err
			}
			post.Title = title
			post.Slug = newSlug
		}
	}
	if req.Content != nil {
		content, err := requiredText("content", *req.Content, 10)
		if err != nil {
			return nil, false, err
		}
		post.Content = content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = req.FeaturedImage
	}
	if req.Status != nil {
		applyStatus(post, *req.Status, req.PublishedAt)
	} else if req.PublishedAt != nil && post.IsPublished() {
		post.PublishedAt = req.PublishedAt
	}

	if err := s.db.Omit(clause.Associations).Save(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, fieldError("title", "A post with a similar title already exists.")
		}
		return nil, false, fmt.Errorf("update post: %w", err)
	}

	post, err = s.reload(post.ID)
	if err != nil {
		return nil, false, err
	}
	return post, !wasPublished && post.IsPublished(), nil
}

// applyStatus keeps published_at in step with status: set when a post becomes
// published, cleared when it returns to draft.
func applyStatus(post *models.Post, status models.PostStatus, publishedAt *time.Time) {
	switch status {
	case models.PostStatusPublished:
		if publishedAt != nil {
			post.PublishedAt = publishedAt
		} else if !post.IsPublished() || post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	default:
		post.PublishedAt = nil
	}
	post.Status = status
}

// Delete moves a post to the trash.
func (s *PostService) Delete(userID uint, slug string) error {
	post, err := s.ownedPost(userID, slug)
	if err != nil {
		return err
	}
	return s.db.Delete(post).Error
}

func (s *PostService) ListTrashed(userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.db.Unscoped().
		Preload("Category").
		Where("user_id = ? AND deleted_at IS NOT NULL", userID).
		Order("deleted_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *PostService) Restore(userID uint, slug string) (*models.Post, error) {
	post, err := s.trashedPost(userID, slug)
	if err != nil {
		return nil, err
	}
	if err := s.db.Unscoped().Model(post).Update("deleted_at", nil).Error; err != nil {
		return nil, err
	}
	return s.reload(post.ID)
}

// ForceDelete removes a trashed post and its comments for good.
func (s *PostService) ForceDelete(userID uint, slug string) error {
	post, err := s.trashedPost(userID, slug)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(post).Error
	})
}

func (s *PostService) ownedPost(userID uint, slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrForbidden
	}
	return &post, nil
}

func (s *PostService) trashedPost(userID uint, slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Unscoped().
		Where("slug = ? AND user_id = ? AND deleted_at IS NOT NULL", slug, userID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) reload(id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("User").Preload("Category").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) ensureCategory(id uint) error {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fieldError("category_id", "Selected category does not exist.")
	}
	return nil
}

// uniqueSlug checks trashed rows too, since they keep their slug.
func (s *PostService) uniqueSlug(title string, excludeID uint) (string, error) {
	return utils.UniqueSlug(title, "post", func(candidate string) (bool, error) {
		var count int64
		err := s.db.Unscoped().Model(&models.Post{}).
			Where("slug = ? AND id <> ?", candidate, excludeID).
			Count(&count).Error
		return count > 0, err
	})
}
