package models

import "time"

// Session backs a issued JWT; its ID travels as the token's jti claim.
type Session struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	UserID    uint       `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at"`
	CreatedAt time.Time  `json:"created_at"`
	User      User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
