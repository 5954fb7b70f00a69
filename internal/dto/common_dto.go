package dto

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}

type DashboardResponse struct {
	TotalUsers          int64 `json:"total_users"`
	TotalBatches        int64 `json:"total_batches"`
	TotalGroups         int64 `json:"total_groups"`
	UsersInGroups       int64 `json:"users_in_groups"`
	PendingApplications int64 `json:"pending_applications"`
}
