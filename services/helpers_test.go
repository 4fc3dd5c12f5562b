package services

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"blogapi/config"
	"blogapi/database"
	"blogapi/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type recordingMailer struct {
	mu    sync.Mutex
	codes map[string]string
	sent  int
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{codes: map[string]string{}}
}

func (m *recordingMailer) SendOTP(to, name, code string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[to] = code
	m.sent++
	return nil
}

func (m *recordingMailer) code(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBDriver:      "sqlite",
		DBPath:        filepath.Join(t.TempDir(), "test.db"),
		DBLogLevel:    "silent",
		JWTSecret:     "test-secret",
		JWTTTLHours:   1,
		OTPTTLMinutes: 10,
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(testConfig(t))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, email, phone string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	user := &models.User{
		Name:            name,
		Email:           email,
		Phone:           phone,
		Password:        string(hash),
		EmailVerifiedAt: &now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category, err := NewCategoryService(db).Create(&models.CreateCategoryRequest{Name: name})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func createPost(t *testing.T, db *gorm.DB, userID, categoryID uint, title string, status models.PostStatus) *models.Post {
	t.Helper()
	post, err := NewPostService(db).Create(userID, &models.CreatePostRequest{
		Title:      title,
		Content:    "Some content that is long enough.",
		Status:     status,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}

func strPtr(s string) *string { return &s }
