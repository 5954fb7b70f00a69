package handlers

import (
	"errors"

	"github.com/chaiteam/chaiteam-backend/internal/dto"
	"github.com/chaiteam/chaiteam-backend/internal/middleware"
	"github.com/chaiteam/chaiteam-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type NoticeHandler struct {
	noticeService *services.NoticeService
}

func NewNoticeHandler(noticeService *services.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

func noticeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoticeNotFound), errors.Is(err, services.ErrBatchNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func (h *NoticeHandler) CreateNotice(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateNoticeRequest
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

	notice, err := h.noticeService.CreateNotice(identity, &req)
	if err != nil {
		return noticeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(notice)
}

func (h *NoticeHandler) UpdateNotice(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	noticeID, err := uuid.Parse(c.Params("noticeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notice id",
		})
	}

	var req dto.UpdateNoticeRequest
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

	notice, err := h.noticeService.UpdateNotice(identity, noticeID, &req)
	if err != nil {
		return noticeError(c, err)
	}
	return c.JSON(notice)
}

func (h *NoticeHandler) DeleteNotice(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}
	noticeID, err := uuid.Parse(c.Params("noticeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notice id",
		})
	}

	if err := h.noticeService.DeleteNotice(identity, noticeID); err != nil {
		return noticeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notice deleted"})
}

func (h *NoticeHandler) GetNotice(c *fiber.Ctx) error {
	noticeID, err := uuid.Parse(c.Params("noticeId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid notice id",
		})
	}

	notice, err := h.noticeService.GetNotice(noticeID)
	if err != nil {
		return noticeError(c, err)
	}
	return c.JSON(notice)
}

func (h *NoticeHandler) ListNotices(c *fiber.Ctx) error {
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

	notices, err := h.noticeService.ListNotices(batchID)
	if err != nil {
		return noticeError(c, err)
	}
	return c.JSON(notices)
}
