package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notice is an announcement, either platform-wide (BatchID nil) or scoped
// to one batch.
type Notice struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"size:200;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Category  string         `gorm:"size:50;default:'general'" json:"category"`
	BatchID   *uuid.UUID     `gorm:"type:uuid;index" json:"batch_id,omitempty"`
	CreatedBy uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
