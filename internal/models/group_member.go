package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	GroupRoleLeader = "LEADER"
	GroupRoleMember = "MEMBER"
)

// GroupMember joins a user to a group. The unique index on UserID is the
// storage-level guarantee that a user belongs to at most one group;
// concurrent joins race to it and the loser gets a duplicate-key error.
type GroupMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	Role      string    `gorm:"size:20;not null;default:'MEMBER'" json:"role"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
