package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chaiteam/chaiteam-backend/internal/activity"
	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBatchNotFound = errors.New("batch not found")
	ErrBatchInactive = errors.New("batch is not active")
	ErrBatchExists   = errors.New("a batch with this name already exists")
	ErrEmptyRoster   = errors.New("roster file contains no members")
)

type BatchService struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewBatchService(db *gorm.DB, recorder *activity.Recorder) *BatchService {
	return &BatchService{db: db, recorder: recorder}
}

func (s *BatchService) CreateBatch(actor Identity, req *dto.CreateBatchRequest) (*models.Batch, error) {
	batch := models.Batch{
		ID:       uuid.New(),
		Name:     req.Name,
		Capacity: req.Capacity,
		Status:   models.BatchStatusActive,
	}
	if err := s.db.Create(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBatchExists
		}
		return nil, err
	}

	s.recorder.Admin(actor.ID, models.ActionBatchCreated,
		fmt.Sprintf("Batch %q created by %s", batch.Name, actor.Name))
	return &batch, nil
}

func (s *BatchService) UpdateBatch(actor Identity, batchID uuid.UUID, req *dto.UpdateBatchRequest) (*models.Batch, error) {
	var batch models.Batch
	if err := s.db.First(&batch, "id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"name":     req.Name,
		"capacity": req.Capacity,
		"status":   req.Status,
	}
	if err := s.db.Model(&batch).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBatchExists
		}
		return nil, err
	}

	s.recorder.Admin(actor.ID, models.ActionBatchUpdated,
		fmt.Sprintf("Batch %q updated by %s", batch.Name, actor.Name))
	return &batch, nil
}

func (s *BatchService) GetBatch(batchID uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	if err := s.db.First(&batch, "id = ?", batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

func (s *BatchService) ListBatches() ([]models.Batch, error) {
	var batches []models.Batch
	err := s.db.Order("created_at DESC").Find(&batches).Error
	return batches, err
}

// UploadMembers ingests a CSV roster of `name,email` rows. Rows already
// on the batch roster are skipped, not errors; a header line is detected
// and ignored.
func (s *BatchService) UploadMembers(actor Identity, batchID uuid.UUID, r io.Reader) (*dto.UploadMembersResponse, error) {
	batch, err := s.GetBatch(batchID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows []models.BatchMember
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse roster: %w", err)
		}
		if len(record) < 2 {
			continue
		}
		name := strings.TrimSpace(record[0])
		email := strings.ToLower(strings.TrimSpace(record[1]))
		if name == "" || email == "" || strings.EqualFold(email, "email") {
			continue
		}
		rows = append(rows, models.BatchMember{
			ID:      uuid.New(),
			BatchID: batch.ID,
			Name:    name,
			Email:   email,
		})
	}
	if len(rows) == 0 {
		return nil, ErrEmptyRoster
	}

	added, skipped := 0, 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			res := tx.Where("batch_id = ? AND email = ?", batchID, rows[i].Email).
				FirstOrCreate(&rows[i])
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				added++
			} else {
				skipped++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Admin(actor.ID, models.ActionMembersUploaded,
		fmt.Sprintf("%d members added to batch %q (%d duplicates skipped)", added, batch.Name, skipped))
	return &dto.UploadMembersResponse{Added: added, Skipped: skipped}, nil
}

func (s *BatchService) ListBatchMembers(batchID uuid.UUID) ([]models.BatchMember, error) {
	if _, err := s.GetBatch(batchID); err != nil {
		return nil, err
	}
	var members []models.BatchMember
	err := s.db.Where("batch_id = ?", batchID).Order("name ASC").Find(&members).Error
	return members, err
}
