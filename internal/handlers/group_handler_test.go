package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestGroupErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrGroupNotFound, fiber.StatusNotFound},
		{services.ErrApplicationNotFound, fiber.StatusNotFound},
		{services.ErrMemberNotFound, fiber.StatusNotFound},
		{services.ErrNotGroupLeader, fiber.StatusForbidden},
		{services.ErrAlreadyInGroup, fiber.StatusBadRequest},
		{services.ErrAlreadyApplied, fiber.StatusBadRequest},
		{services.ErrGroupFull, fiber.StatusBadRequest},
		{services.ErrGroupNotEmpty, fiber.StatusBadRequest},
		{services.ErrLeaderCannotLeave, fiber.StatusBadRequest},
		{services.ErrCannotKickSelf, fiber.StatusBadRequest},
		{services.ErrCannotKickLeader, fiber.StatusBadRequest},
		{errors.New("database exploded"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, groupErrorStatus(tc.err), "error: %v", tc.err)
	}

	// Wrapped sentinels still map.
	wrapped := fmt.Errorf("approve failed: %w", services.ErrGroupFull)
	assert.Equal(t, fiber.StatusBadRequest, groupErrorStatus(wrapped))
}

func TestValidationMessage(t *testing.T) {
	err := validate.Struct(&dto.CreateGroupRequest{
		Description: "d",
		Tags:        []string{"go"},
	})
	assert.Equal(t, "Name is required", validationMessage(err))

	err = validate.Struct(&dto.RegisterRequest{
		Name:     "Asha",
		Email:    "not-an-email",
		Password: "password123",
	})
	assert.Equal(t, "Email must be a valid email address", validationMessage(err))

	err = validate.Struct(&dto.UpdateGroupRequest{
		Name:        "Alpha",
		Description: "d",
		Tags:        []string{"go"},
		Status:      "PAUSED",
	})
	assert.Equal(t, "Status must be one of: ACTIVE INACTIVE", validationMessage(err))
}
