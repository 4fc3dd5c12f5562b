package database

import (
	"path/filepath"
	"testing"

	"blogapi/config"
	"blogapi/models"
)

func TestConnectSQLiteAndSeed(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   "sqlite",
		DBPath:     filepath.Join(t.TempDir(), "nested", "test.db"),
		DBLogLevel: "silent",
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	if err := SeedCategories(db); err != nil {
		t.Fatalf("SeedCategories: %v", err)
	}
	// second run must not duplicate
	if err := SeedCategories(db); err != nil {
		t.Fatalf("SeedCategories again: %v", err)
	}

	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != int64(len(defaultCategories)) {
		t.Fatalf("categories = %d, want %d", count, len(defaultCategories))
	}

	var design models.Category
	if err := db.Where("slug = ?", "design").First(&design).Error; err != nil {
		t.Fatalf("design category missing: %v", err)
	}
}

func TestConnectUnknownDriver(t *testing.T) {
	if _, err := Connect(&config.Config{DBDriver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
