package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BatchStatusActive    = "active"
	BatchStatusInactive  = "inactive"
	BatchStatusCompleted = "completed"
)

// Batch is a cohort of students. Groups are always created inside one batch.
type Batch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Capacity  int       `gorm:"not null" json:"capacity"`
	Status    string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BatchMember is a roster row. Registration is gated on the email being
// present on some batch roster.
type BatchMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_batch_members_batch_email" json:"batch_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_batch_members_batch_email" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	Batch     Batch     `gorm:"foreignKey:BatchID" json:"-"`
}
