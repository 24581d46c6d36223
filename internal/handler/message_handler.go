package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/service"
	"github.com/sefazor/aimarket-backend/pkg/utils"
)

type MessageHandler struct {
	messageService *service.MessageService
	validator      *utils.Validator
}

func NewMessageHandler(messageService *service.MessageService, validator *utils.Validator) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
		validator:      validator,
	}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	message, err := h.messageService.Send(userID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(message, "Message sent"))
}

func (h *MessageHandler) GetConversations(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	conversations, err := h.messageService.GetConversations(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(conversations, "Conversations retrieved"))
}

func (h *MessageHandler) GetThread(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	partnerID, err := strconv.ParseUint(c.Params("partnerId"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid partner ID"))
	}

	messages, err := h.messageService.GetThread(userID, uint(partnerID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(messages, "Messages retrieved"))
}
