package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"blogapi/config"
	"blogapi/models"
	"blogapi/utils"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

const TokenType = "Bearer"

type AuthService struct {
	db        *gorm.DB
	mailer    Mailer
	jwtSecret string
	tokenTTL  time.Duration
	otpTTL    time.Duration
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer Mailer) *AuthService {
	tokenTTL := time.Duration(cfg.JWTTTLHours) * time.Hour
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	otpTTL := time.Duration(cfg.OTPTTLMinutes) * time.Minute
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &AuthService{
		db:        db,
		mailer:    mailer,
		jwtSecret: cfg.JWTSecret,
		tokenTTL:  tokenTTL,
		otpTTL:    otpTTL,
	}
}

func (s *AuthService) Register(req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	name, err := requiredText("name", normalizeName(req.Name), 2)
	if err != nil {
		return nil, err
	}
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	if taken, err := s.userExists("email = ?", email); err != nil {
		return nil, err
	} else if taken {
		return nil, fieldError("email", "This email is already registered.")
	}
	if taken, err := s.userExists("phone = ?", phone); err != nil {
		return nil, err
	} else if taken {
		return nil, fieldError("phone", "This phone number is already registered.")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}
	expiresAt := time.Now().Add(s.otpTTL)

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		Password:     req.Password,
		Bio:          req.Bio,
		OTPCode:      &code,
		OTPExpiresAt: &expiresAt,
	}
	if err := user.HashPassword(); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fieldError("email", "This email or phone number is already registered.")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.mailer.SendOTP(user.Email, user.Name, code, expiresAt); err != nil {
		log.Printf("Failed to send verification code to user %d: %v", user.ID, err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	verified := false
	return &models.AuthResponse{User: user, Token: token, TokenType: TokenType, EmailVerified: &verified}, nil
}

func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.HasVerifiedEmail() {
		return nil, ErrEmailNotVerified
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{User: &user, Token: token, TokenType: TokenType}, nil
}

// VerifyOTP checks the code first and the expiry second, so a wrong code is
// reported as wrong even after it would have expired.
func (s *AuthService) VerifyOTP(req *models.VerifyOTPRequest) error {
	user, err := s.userByEmail(req.Email)
	if err != nil {
		return err
	}
	if user.HasVerifiedEmail() {
		return ErrAlreadyVerified
	}
	if !utils.OTPMatches(user.OTPCode, req.OTPCode) {
		return ErrInvalidOTP
	}
	if utils.OTPExpired(user.OTPExpiresAt, time.Now()) {
		return ErrOTPExpired
	}

	return s.db.Model(user).Updates(map[string]interface{}{
		"email_verified_at": time.Now(),
		"otp_code":          nil,
		"otp_expires_at":    nil,
	}).Error
}

func (s *AuthService) ResendVerification(email string) error {
	user, err := s.userByEmail(email)
	if err != nil {
		return err
	}
	if user.HasVerifiedEmail() {
		return ErrAlreadyVerified
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(s.otpTTL)

	if err := s.db.Model(user).Updates(map[string]interface{}{
		"otp_code":       code,
		"otp_expires_at": expiresAt,
	}).Error; err != nil {
		return err
	}

	return s.mailer.SendOTP(user.Email, user.Name, code, expiresAt)
}

// Authenticate resolves a bearer token to its user and live session.
func (s *AuthService) Authenticate(token string) (*models.User, *models.Session, error) {
	claims, err := utils.ValidateJWT(s.jwtSecret, token)
	if err != nil {
		return nil, nil, ErrSessionInvalid
	}

	var session models.Session
	if err := s.db.Where("id = ? AND user_id = ?", claims.ID, claims.UserID).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, err
	}
	if !session.Active(time.Now()) {
		return nil, nil, ErrSessionInvalid
	}

	var user models.User
	if err := s.db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrSessionInvalid
		}
		return nil, nil, err
	}

	return &user, &session, nil
}

func (s *AuthService) Logout(sessionID string) error {
	return s.db.Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", time.Now()).Error
}

func (s *AuthService) issueToken(userID uint) (string, error) {
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.tokenTTL),
	}
	if err := s.db.Create(session).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}

	token, err := utils.GenerateJWT(s.jwtSecret, userID, session.ID, session.ExpiresAt)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) userByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// userExists includes soft deleted accounts, which still hold their unique keys.
func (s *AuthService) userExists(query string, args ...interface{}) (bool, error) {
	var count int64
	err := s.db.Unscoped().Model(&models.User{}).Where(query, args...).Count(&count).Error
	return count > 0, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizePhone stores numbers in E.164 so the same number typed two ways
// hits the unique index.
func normalizePhone(raw string) (string, error) {
	phone, ok := utils.NormalizePhone(raw)
	if !ok {
		return "", fieldError("phone", "The phone must be a valid phone number.")
	}
	return phone, nil
}

// normalizeName collapses whitespace and title-cases each word.
func normalizeName(name string) string {
	collapsed := strings.Join(strings.Fields(name), " ")
	return cases.Title(language.English).String(strings.ToLower(collapsed))
}
