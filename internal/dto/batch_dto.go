package dto

type CreateBatchRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
}

type UpdateBatchRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Capacity int    `json:"capacity" validate:"required,min=1"`
	Status   string `json:"status" validate:"required,oneof=active inactive completed"`
}

type UploadMembersResponse struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}
