package services

import (
	"errors"
	"time"

	"blogapi/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.Preload("Posts", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", models.PostStatusPublished).Order("published_at DESC")
	}).Preload("Posts.Category").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	return &user, err
}

func (s *UserService) UpdateUser(id uint, req *models.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name, err := requiredText("name", normalizeName(*req.Name), 2)
		if err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if req.Phone != nil {
		phone, err := normalizePhone(*req.Phone)
		if err != nil {
			return nil, err
		}
		if phone != user.Phone {
			var count int64
			if err := s.db.Unscoped().Model(&models.User{}).
				Where("phone = ? AND id <> ?", phone, id).
				Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, fieldError("phone", "This phone number is already registered.")
			}
			updates["phone"] = phone
		}
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var fresh models.User
	if err := s.db.First(&fresh, id).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// DeleteUser soft deletes the account, trashes its posts and revokes every
// session.
func (s *UserService) DeleteUser(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Session{}).
			Where("user_id = ? AND revoked_at IS NULL", id).
			Update("revoked_at", time.Now()).Error
	})
}
