package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/chaiteam/chaiteam-backend/internal/activity"
	"github.com/chaiteam/chaiteam-backend/internal/config"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with the full
// schema. TranslateError is on so unique-constraint violations surface
// as gorm.ErrDuplicatedKey, same as in production.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Batch{},
		&models.BatchMember{},
		&models.Group{},
		&models.GroupMember{},
		&models.JoinApplication{},
		&models.Notice{},
		&models.UserActivity{},
		&models.GroupActivity{},
		&models.AdminActivity{},
		&models.SystemLog{},
	))
	return db
}

func newTestRecorder(t *testing.T, db *gorm.DB) *activity.Recorder {
	t.Helper()
	r := activity.NewRecorder(db)
	t.Cleanup(r.Stop)
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		GroupMaxSize:     4,
		AdminEmails:      "admin@chaiteam.dev",
	}
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) Identity {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return Identity{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func createTestBatch(t *testing.T, db *gorm.DB, name string) *models.Batch {
	t.Helper()
	batch := models.Batch{
		ID:       uuid.New(),
		Name:     name,
		Capacity: 40,
		Status:   models.BatchStatusActive,
	}
	require.NoError(t, db.Create(&batch).Error)
	return &batch
}

func userInGroup(t *testing.T, db *gorm.DB, userID uuid.UUID) bool {
	t.Helper()
	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return user.IsInGroup
}

func memberRows(t *testing.T, db *gorm.DB, userID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.GroupMember{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}
