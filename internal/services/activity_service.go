package services

import (
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityService reads the append-only audit trail. Writes go through
// the activity recorder, never through this service.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

func (s *ActivityService) ListUserActivities(userID uuid.UUID, limit, offset int) ([]models.UserActivity, int64, error) {
	var (
		rows  []models.UserActivity
		total int64
	)
	if err := s.db.Model(&models.UserActivity{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (s *ActivityService) ListGroupActivities(groupID uuid.UUID, limit, offset int) ([]models.GroupActivity, int64, error) {
	var (
		rows  []models.GroupActivity
		total int64
	)
	if err := s.db.Model(&models.GroupActivity{}).Where("group_id = ?", groupID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Where("group_id = ?", groupID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}

func (s *ActivityService) ListAdminActivities(limit, offset int) ([]models.AdminActivity, int64, error) {
	var (
		rows  []models.AdminActivity
		total int64
	)
	if err := s.db.Model(&models.AdminActivity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error
	return rows, total, err
}
