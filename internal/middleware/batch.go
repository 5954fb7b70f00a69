package middleware

import (
	"errors"

	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BatchValidity resolves the batch named in a create-group request and
// rejects the call before the membership engine runs if the batch is
// missing or not active. The resolved batch is stored in locals under
// "batch".
func BatchValidity(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CreateGroupRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}

		var batch models.Batch
		if err := db.First(&batch, "id = ?", req.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
					Error: true, Message: "Batch not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
		if batch.Status != models.BatchStatusActive {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Batch is not active",
			})
		}

		c.Locals("batch", &batch)
		return c.Next()
	}
}
