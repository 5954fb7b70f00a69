package services

import (
	"strings"
	"testing"

	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBatchService(t *testing.T) (*BatchService, *gorm.DB, Identity) {
	t.Helper()
	db := setupTestDB(t)
	admin := createTestUser(t, db, "Root", "admin@test.dev", models.RoleAdmin)
	return NewBatchService(db, newTestRecorder(t, db)), db, admin
}

func TestCreateBatch(t *testing.T) {
	svc, _, admin := newBatchService(t)

	batch, err := svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 1", Capacity: 40})
	require.NoError(t, err)
	assert.Equal(t, models.BatchStatusActive, batch.Status)

	// Batch names are unique.
	_, err = svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 1", Capacity: 20})
	assert.ErrorIs(t, err, ErrBatchExists)
}

func TestUpdateBatch(t *testing.T) {
	svc, _, admin := newBatchService(t)
	batch, err := svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 1", Capacity: 40})
	require.NoError(t, err)

	updated, err := svc.UpdateBatch(admin, batch.ID, &dto.UpdateBatchRequest{
		Name:     "Cohort 1",
		Capacity: 50,
		Status:   models.BatchStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, 50, updated.Capacity)
	assert.Equal(t, models.BatchStatusCompleted, updated.Status)

	_, err = svc.UpdateBatch(admin, uuid.New(), &dto.UpdateBatchRequest{
		Name: "x", Capacity: 1, Status: models.BatchStatusActive,
	})
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestUploadMembers(t *testing.T) {
	svc, db, admin := newBatchService(t)
	batch, err := svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 1", Capacity: 40})
	require.NoError(t, err)

	roster := strings.NewReader(
		"name,email\n" +
			"Asha,asha@test.dev\n" +
			"Bela,BELA@test.dev\n" +
			"Asha Again,asha@test.dev\n" +
			",missing@test.dev\n")

	resp, err := svc.UploadMembers(admin, batch.ID, roster)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Added)
	assert.Equal(t, 1, resp.Skipped)

	members, err := svc.ListBatchMembers(batch.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	// Emails are normalized to lower case on the way in.
	assert.Equal(t, "bela@test.dev", members[1].Email)

	// Re-uploading the same roster adds nothing.
	resp, err = svc.UploadMembers(admin, batch.ID,
		strings.NewReader("Asha,asha@test.dev\nBela,bela@test.dev\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Added)
	assert.Equal(t, 2, resp.Skipped)

	var total int64
	require.NoError(t, db.Model(&models.BatchMember{}).Count(&total).Error)
	assert.EqualValues(t, 2, total)
}

func TestUploadMembersEmptyRoster(t *testing.T) {
	svc, _, admin := newBatchService(t)
	batch, err := svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 1", Capacity: 40})
	require.NoError(t, err)

	_, err = svc.UploadMembers(admin, batch.ID, strings.NewReader("name,email\n"))
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = svc.UploadMembers(admin, uuid.New(), strings.NewReader("Asha,asha@test.dev\n"))
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestListBatches(t *testing.T) {
	svc, _, admin := newBatchService(t)
	_, err := svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 1", Capacity: 40})
	require.NoError(t, err)
	_, err = svc.CreateBatch(admin, &dto.CreateBatchRequest{Name: "Cohort 2", Capacity: 40})
	require.NoError(t, err)

	batches, err := svc.ListBatches()
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}
