package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Name            string         `json:"name" gorm:"size:255;not null"`
	Email           string         `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Phone           string         `json:"phone" gorm:"size:20;uniqueIndex;not null"`
	Password        string         `json:"-" gorm:"not null"`
	Bio             *string        `json:"bio" gorm:"type:text"`
	OTPCode         *string        `json:"-" gorm:"column:otp_code;size:6"`
	OTPExpiresAt    *time.Time     `json:"-" gorm:"column:otp_expires_at"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
	Posts           []Post         `json:"posts,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

type RegisterRequest struct {
	Name                 string  `json:"name" binding:"required,min=2,max=255,alphaspace"`
	Email                string  `json:"email" binding:"required,email,max=255"`
	Phone                string  `json:"phone" binding:"required,phone"`
	Password             string  `json:"password" binding:"required,min=8"`
	PasswordConfirmation string  `json:"password_confirmation" binding:"required,eqfield=Password"`
	Bio                  *string `json:"bio" binding:"omitempty,max=1000"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPCode string `json:"otp_code" binding:"required,len=6,numeric"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=255,alphaspace"`
	Phone *string `json:"phone" binding:"omitempty,phone"`
	Bio   *string `json:"bio" binding:"omitempty,max=1000"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User          *User  `json:"user"`
	Token         string `json:"token"`
	TokenType     string `json:"token_type"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

func (u *User) HasVerifiedEmail() bool {
	return u.EmailVerifiedAt != nil
}
