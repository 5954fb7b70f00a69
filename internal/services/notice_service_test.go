package services

import (
	"testing"

	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNoticeService(t *testing.T) (*NoticeService, *gorm.DB, Identity) {
	t.Helper()
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Root", "admin@test.dev", models.RoleAdmin)
	return NewNoticeService(db, newTestRecorder(t, db)), db, admin
}

func TestCreateNotice(t *testing.T) {
	svc, db, admin := newNoticeService(t)

	notice, err := svc.CreateNotice(admin, &dto.CreateNoticeRequest{
		Title:   "Welcome",
		Content: "Groups open next week.",
	})
	require.NoError(t, err)
	assert.Equal(t, "general", notice.Category)
	assert.Nil(t, notice.BatchID)

	// Batch-scoped notices must point at a real batch.
	bad := uuid.New()
	_, err = svc.CreateNotice(admin, &dto.CreateNoticeRequest{
		Title:   "Scoped",
		Content: "x",
		BatchID: &bad,
	})
	assert.ErrorIs(t, err, ErrBatchNotFound)

	batch := createTestBatch(t, db, "Cohort 1")
	scoped, err := svc.CreateNotice(admin, &dto.CreateNoticeRequest{
		Title:    "Scoped",
		Content:  "x",
		Category: "deadline",
		BatchID:  &batch.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "deadline", scoped.Category)
}

func TestListNoticesScoping(t *testing.T) {
	svc, db, admin := newNoticeService(t)
	batchA := createTestBatch(t, db, "Cohort A")
	batchB := createTestBatch(t, db, "Cohort B")

	_, err := svc.CreateNotice(admin, &dto.CreateNoticeRequest{Title: "Global", Content: "x"})
	require.NoError(t, err)
	_, err = svc.CreateNotice(admin, &dto.CreateNoticeRequest{Title: "For A", Content: "x", BatchID: &batchA.ID})
	require.NoError(t, err)
	_, err = svc.CreateNotice(admin, &dto.CreateNoticeRequest{Title: "For B", Content: "x", BatchID: &batchB.ID})
	require.NoError(t, err)

	// A batch filter shows platform-wide notices plus that batch's own.
	visible, err := svc.ListNotices(&batchA.ID)
	require.NoError(t, err)
	require.Len(t, visible, 2)

	all, err := svc.ListNotices(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateAndDeleteNotice(t *testing.T) {
	svc, _, admin := newNoticeService(t)
	notice, err := svc.CreateNotice(admin, &dto.CreateNoticeRequest{Title: "Draft", Content: "x"})
	require.NoError(t, err)

	updated, err := svc.UpdateNotice(admin, notice.ID, &dto.UpdateNoticeRequest{
		Title:   "Final",
		Content: "y",
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "general", updated.Category)

	require.NoError(t, svc.DeleteNotice(admin, notice.ID))

	_, err = svc.GetNotice(notice.ID)
	assert.ErrorIs(t, err, ErrNoticeNotFound)
	assert.ErrorIs(t, svc.DeleteNotice(admin, notice.ID), ErrNoticeNotFound)
}
