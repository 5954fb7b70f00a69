package models

import (
	"time"

	"github.com/google/uuid"
)

// Activity actions. Append-only audit trail; rows are never updated or
// deleted by application code.
const (
	ActionCreatedGroup        = "CREATED_GROUP"
	ActionAppliedToJoinGroup  = "APPLIED_TO_JOIN_GROUP"
	ActionApplicationRejected = "APPLICATION_REJECTED"
	ActionJoinedGroup         = "JOINED_GROUP"
	ActionLeftGroup           = "LEAVED_GROUP"
	ActionKickedFromGroup     = "KICKED_FROM_GROUP"
	ActionDisbandedGroup      = "DISBANDED_GROUP"

	ActionGroupCreated = "GROUP_CREATED"
	ActionMemberJoined = "MEMBER_JOINED"
	ActionMemberLeft   = "MEMBER_LEFT"
	ActionMemberKicked = "MEMBER_KICKED"
	ActionGroupUpdated = "GROUP_UPDATED"

	ActionBatchCreated    = "BATCH_CREATED"
	ActionBatchUpdated    = "BATCH_UPDATED"
	ActionMembersUploaded = "MEMBERS_UPLOADED"
	ActionNoticeCreated   = "NOTICE_CREATED"
	ActionNoticeUpdated   = "NOTICE_UPDATED"
	ActionNoticeDeleted   = "NOTICE_DELETED"
)

type UserActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

type GroupActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

type AdminActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID     uuid.UUID `gorm:"type:uuid;not null;index" json:"admin_id"`
	Action      string    `gorm:"size:50;not null" json:"action"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
