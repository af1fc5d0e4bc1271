package testutil

import (
	"fmt"
	"testing"
	"time"

	"inforequests/internal/database"
	"inforequests/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory SQLite database with foreign keys on and every model migrated
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	// Every connection to :memory: is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser inserts a user with the given ID
func CreateUser(t *testing.T, db *gorm.DB, id uint) models.User {
	t.Helper()

	user := models.User{
		ID:    id,
		Name:  "Test User",
		Email: fmt.Sprintf("user%d@example.com", id),
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// CreateInfoRequest inserts an info request owned by userID and due at dueBy
func CreateInfoRequest(t *testing.T, db *gorm.DB, id, userID uint, state models.DescribedState, dueBy time.Time) models.InfoRequest {
	t.Helper()

	request := models.InfoRequest{
		ID:                     id,
		Title:                  "Request for council spending",
		UserID:                 userID,
		DescribedState:         state,
		DateResponseRequiredBy: dueBy,
	}
	require.NoError(t, db.Omit("User").Create(&request).Error)
	return request
}
