package services

import (
	"errors"
	"fmt"

	"blogapi/models"

	"gorm.io/gorm"
)

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// ListForPost returns comments newest first. Only published posts expose
// their comments.
func (s *CommentService) ListForPost(slug string) ([]models.Comment, error) {
	post, err := s.publishedPost(slug)
	if err != nil {
		return nil, err
	}

	comments := []models.Comment{}
	err = s.db.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error
	return comments, err
}

// Create returns the new comment together with the post it was left on, so
// callers can notify the post's author.
func (s *CommentService) Create(userID uint, slug string, req *models.CommentRequest) (*models.Comment, *models.Post, error) {
	content, err := requiredText("content", req.Content, 1)
	if err != nil {
		return nil, nil, err
	}
	post, err := s.publishedPost(slug)
	if err != nil {
		return nil, nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PostID:  post.ID,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, nil, fmt.Errorf("create comment: %w", err)
	}

	if err := s.db.Preload("User").First(comment, comment.ID).Error; err != nil {
		return nil, nil, err
	}
	return comment, post, nil
}

func (s *CommentService) Update(userID, commentID uint, req *models.CommentRequest) (*models.Comment, error) {
	comment, err := s.byID(commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}
	content, err := requiredText("content", req.Content, 1)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(comment).Update("content", content).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("User").First(comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete is allowed for the comment's author and for the author of the post.
func (s *CommentService) Delete(userID, commentID uint) error {
	comment, err := s.byID(commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		var post models.Post
		if err := s.db.Unscoped().Select("id", "user_id").First(&post, comment.PostID).Error; err != nil {
			return err
		}
		if post.UserID != userID {
			return ErrForbidden
		}
	}

	return s.db.Delete(comment).Error
}

func (s *CommentService) byID(id uint) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) publishedPost(slug string) (*models.Post, error) {
	var post models.Post
	err := s.db.Where("slug = ? AND status = ?", slug, models.PostStatusPublished).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
