package dto

import "github.com/google/uuid"

type CreateGroupRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"required"`
	Tags        []string  `json:"tags" validate:"required,min=1,dive,required"`
	BatchID     uuid.UUID `json:"batch_id" validate:"required"`
}

type UpdateGroupRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"required,min=1,dive,required"`
	Status      string   `json:"status" validate:"required,oneof=ACTIVE INACTIVE"`
}

type ApplyToJoinRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type LeaveGroupRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type KickMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Reason string    `json:"reason" validate:"required,max=500"`
}
