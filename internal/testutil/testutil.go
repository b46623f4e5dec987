// Package testutil provides database fixtures shared by package tests.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/BerylCAtieno/contract-analysis-api/internal/db"
	"github.com/BerylCAtieno/contract-analysis-api/internal/models"
	"github.com/BerylCAtieno/contract-analysis-api/internal/utils"
	"github.com/jmoiron/sqlx"
)

// NewTestDB opens a migrated SQLite database in a temporary directory.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := db.RunMigrations(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return database
}

// SeedUser inserts an active account and returns it as a principal.
func SeedUser(t *testing.T, database *sqlx.DB, username string, staff bool) *models.Principal {
	t.Helper()

	p := &models.Principal{
		ID:       utils.GenerateID(),
		Email:    username + "@example.com",
		Username: username,
		IsStaff:  staff,
		IsActive: true,
	}

	_, err := database.Exec(database.Rebind(`
		INSERT INTO users (id, email, username, is_staff, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), p.ID, p.Email, p.Username, p.IsStaff, p.IsActive, time.Now().UTC())
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return p
}

// Clock is a manually advanced utils.Clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

var _ utils.Clock = (*Clock)(nil)

func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
