package dto

import "github.com/google/uuid"

type CreateNoticeRequest struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Content  string     `json:"content" validate:"required"`
	Category string     `json:"category" validate:"omitempty,max=50"`
	BatchID  *uuid.UUID `json:"batch_id"`
}

type UpdateNoticeRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category" validate:"omitempty,max=50"`
}
