package services

import (
	"errors"
	"fmt"

	"github.com/chaiteam/chaiteam-backend/internal/activity"
	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNoticeNotFound = errors.New("notice not found")

type NoticeService struct {
	db       *gorm.DB
	recorder *activity.Recorder
}

func NewNoticeService(db *gorm.DB, recorder *activity.Recorder) *NoticeService {
	return &NoticeService{db: db, recorder: recorder}
}

func (s *NoticeService) CreateNotice(actor Identity, req *dto.CreateNoticeRequest) (*models.Notice, error) {
	if req.BatchID != nil {
		var n int64
		if err := s.db.Model(&models.Batch{}).Where("id = ?", *req.BatchID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrBatchNotFound
		}
	}

	category := req.Category
	if category == "" {
		category = "general"
	}
	notice := models.Notice{
		ID:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		Category:  category,
		BatchID:   req.BatchID,
		CreatedBy: actor.ID,
	}
	if err := s.db.Create(&notice).Error; err != nil {
		return nil, err
	}

	s.recorder.Admin(actor.ID, models.ActionNoticeCreated,
		fmt.Sprintf("Notice %q posted by %s", notice.Title, actor.Name))
	return &notice, nil
}

func (s *NoticeService) UpdateNotice(actor Identity, noticeID uuid.UUID, req *dto.UpdateNoticeRequest) (*models.Notice, error) {
	notice, err := s.GetNotice(noticeID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":   req.Title,
		"content": req.Content,
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if err := s.db.Model(notice).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.recorder.Admin(actor.ID, models.ActionNoticeUpdated,
		fmt.Sprintf("Notice %q updated by %s", notice.Title, actor.Name))
	return notice, nil
}

func (s *NoticeService) DeleteNotice(actor Identity, noticeID uuid.UUID) error {
	notice, err := s.GetNotice(noticeID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(notice).Error; err != nil {
		return err
	}

	s.recorder.Admin(actor.ID, models.ActionNoticeDeleted,
		fmt.Sprintf("Notice %q deleted by %s", notice.Title, actor.Name))
	return nil
}

func (s *NoticeService) GetNotice(noticeID uuid.UUID) (*models.Notice, error) {
	var notice models.Notice
	if err := s.db.First(&notice, "id = ?", noticeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &notice, nil
}

// ListNotices returns notices visible platform-wide plus those scoped to
// the given batch. A nil batch filter returns everything.
func (s *NoticeService) ListNotices(batchID *uuid.UUID) ([]models.Notice, error) {
	q := s.db.Order("created_at DESC")
	if batchID != nil {
		q = q.Where("batch_id IS NULL OR batch_id = ?", *batchID)
	}
	var notices []models.Notice
	err := q.Find(&notices).Error
	return notices, err
}
