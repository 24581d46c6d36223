package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/service"
)

type NotificationHandler struct {
	notificationService *service.NotificationService
}

func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

func (h *NotificationHandler) GetInbox(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	notifications, err := h.notificationService.GetInbox(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(notifications, "Notifications retrieved"))
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid notification ID"))
	}

	if err := h.notificationService.MarkRead(uint(id), userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Notification marked as read"))
}

func (h *NotificationHandler) CountUnread(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	count, err := h.notificationService.CountUnread(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"unread": count}, "Unread count retrieved"))
}
