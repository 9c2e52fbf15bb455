package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/logger"
)

// The postgres schema uses partial unique indexes and uuid defaults that
// sqlite cannot express, so tests create the two tables by hand. Services
// always assign ids themselves, which keeps the shapes compatible.
var testSchema = []string{
	`CREATE TABLE "user" (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		avatar_media_key TEXT,
		avatar_url TEXT,
		avatar_color TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE "agreement" (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL,
		block_name TEXT NOT NULL,
		apartment_no INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		accepted_date DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE "apartment" (
		id TEXT PRIMARY KEY,
		block_name TEXT NOT NULL,
		apartment_no INTEGER NOT NULL,
		floor INTEGER,
		bedrooms INTEGER,
		rent_cents INTEGER,
		image_url TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// In-memory sqlite is per-connection.
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}
	return db
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()

	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}
