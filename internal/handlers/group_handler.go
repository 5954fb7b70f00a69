package handlers

import (
	"errors"

	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/middleware"
	"github.com/chaiteam/chaiteam-backend/internal/models"
	"github.com/chaiteam/chaiteam-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// groupErrorStatus maps membership-engine sentinel errors onto statuses.
// Precondition and invariant violations are 400, missing entities 404,
// authorization failures 403.
func groupErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrApplicationNotFound),
		errors.Is(err, services.ErrMemberNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrNotGroupLeader):
		return fiber.StatusForbidden
	case errors.Is(err, services.ErrAlreadyInGroup),
		errors.Is(err, services.ErrAlreadyApplied),
		errors.Is(err, services.ErrGroupFull),
		errors.Is(err, services.ErrGroupNotEmpty),
		errors.Is(err, services.ErrLeaderCannotLeave),
		errors.Is(err, services.ErrCannotKickSelf),
		errors.Is(err, services.ErrCannotKickLeader):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func groupError(c *fiber.Ctx, err error) error {
	status := groupErrorStatus(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	batch, ok := c.Locals("batch").(*models.Batch)
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	group, err := h.groupService.CreateGroup(identity, &req, batch)
	if err != nil {
		return groupError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	group, err := h.groupService.GetGroupByID(groupID)
	if err != nil {
		return groupError(c, err)
	}
	return c.JSON(group)
}

func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	var batchID *uuid.UUID
	if raw := c.Query("batch_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid batch id",
			})
		}
		batchID = &id
	}

	groups, err := h.groupService.ListGroups(batchID)
	if err != nil {
		return groupError(c, err)
	}
	return c.JSON(groups)
}

func (h *GroupHandler) GetMyGroup(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	group, err := h.groupService.GetMyGroup(identity.ID)
	if err != nil {
		if errors.Is(err, services.ErrGroupNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "You are not in a group",
			})
		}
		return groupError(c, err)
	}
	return c.JSON(group)
}

func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	var req dto.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	group, err := h.groupService.UpdateGroup(identity, groupID, &req)
	if err != nil {
		return groupError(c, err)
	}
	return c.JSON(group)
}

func (h *GroupHandler) ApplyToJoin(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	var req dto.ApplyToJoinRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	app, err := h.groupService.ApplyToJoin(identity, groupID, req.Reason)
	if err != nil {
		return groupError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *GroupHandler) AddMember(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	member, err := h.groupService.AddMember(identity, groupID, req.UserID)
	if err != nil {
		return groupError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(member)
}

func (h *GroupHandler) LeaveGroup(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	var req dto.LeaveGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	if err := h.groupService.LeaveGroup(identity, groupID, req.Reason); err != nil {
		return groupError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Left the group"})
}

func (h *GroupHandler) KickMember(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	var req dto.KickMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	if err := h.groupService.KickMember(identity, groupID, req.UserID, req.Reason); err != nil {
		return groupError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Member removed"})
}

func (h *GroupHandler) DisbandGroup(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	if err := h.groupService.DisbandGroup(identity, groupID); err != nil {
		return groupError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Group disbanded"})
}

func (h *GroupHandler) RejectApplication(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user id",
		})
	}

	if err := h.groupService.RejectApplication(identity, groupID, userID); err != nil {
		return groupError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Application rejected"})
}

func (h *GroupHandler) ListGroupApplications(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	groupID, err := uuid.Parse(c.Params("groupId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid group id",
		})
	}

	apps, err := h.groupService.ListGroupApplications(identity, groupID)
	if err != nil {
		return groupError(c, err)
	}
	return c.JSON(apps)
}

func (h *GroupHandler) ListMyApplications(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	apps, err := h.groupService.ListUserApplications(identity.ID)
	if err != nil {
		return groupError(c, err)
	}
	return c.JSON(apps)
}

func (h *GroupHandler) WithdrawApplication(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if err := h.groupService.WithdrawApplication(identity); err != nil {
		return groupError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Application withdrawn"})
}
