package handlers

import (
	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats returns platform-wide totals for the admin dashboard.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	var resp dto.DashboardResponse

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&resp.TotalUsers, h.db.Model(&models.User{})},
		{&resp.TotalBatches, h.db.Model(&models.Batch{})},
		{&resp.TotalGroups, h.db.Model(&models.Group{})},
		{&resp.UsersInGroups, h.db.Model(&models.GroupMember{})},
		{&resp.PendingApplications, h.db.Model(&models.JoinApplication{}).
			Where("status = ?", models.ApplicationStatusPending)},
	}
	for _, cnt := range counts {
		if err := cnt.query.Count(cnt.dest).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	return c.JSON(resp)
}
