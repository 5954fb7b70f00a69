package activity

import (
	"fmt"
	"testing"

	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRecorderDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.UserActivity{},
		&models.GroupActivity{},
		&models.AdminActivity{},
	))
	return db
}

func TestRecorderFlush(t *testing.T) {
	db := setupRecorderDB(t)
	r := NewRecorder(db)
	defer r.Stop()

	userID := uuid.New()
	groupID := uuid.New()
	adminID := uuid.New()

	r.User(userID, models.ActionCreatedGroup, "created a group")
	r.User(userID, models.ActionDisbandedGroup, "disbanded it again")
	r.Group(groupID, models.ActionGroupCreated, "group created")
	r.Admin(adminID, models.ActionBatchCreated, "batch created")

	// Nothing reaches the database until a flush.
	var before int64
	require.NoError(t, db.Model(&models.UserActivity{}).Count(&before).Error)
	assert.EqualValues(t, 0, before)

	r.Flush()

	var users []models.UserActivity
	require.NoError(t, db.Where("user_id = ?", userID).Find(&users).Error)
	assert.Len(t, users, 2)

	var groups int64
	require.NoError(t, db.Model(&models.GroupActivity{}).Where("group_id = ?", groupID).Count(&groups).Error)
	assert.EqualValues(t, 1, groups)

	var admins int64
	require.NoError(t, db.Model(&models.AdminActivity{}).Where("admin_id = ?", adminID).Count(&admins).Error)
	assert.EqualValues(t, 1, admins)

	// A second flush with empty buffers writes nothing new.
	r.Flush()
	var total int64
	require.NoError(t, db.Model(&models.UserActivity{}).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestRecorderStopFlushesBuffered(t *testing.T) {
	db := setupRecorderDB(t)
	r := NewRecorder(db)

	userID := uuid.New()
	r.User(userID, models.ActionJoinedGroup, "joined")
	r.Stop()

	var n int64
	require.NoError(t, db.Model(&models.UserActivity{}).Where("user_id = ?", userID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}
