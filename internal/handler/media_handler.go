package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/service"
	"github.com/sefazor/aimarket-backend/pkg/utils"
)

type MediaHandler struct {
	mediaService *service.MediaService
	validator    *utils.Validator
}

func NewMediaHandler(mediaService *service.MediaService, validator *utils.Validator) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		validator:    validator,
	}
}

// Upload multipart: "file" zorunlu, "thumbnail" opsiyonel, meta form alanları
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("File is required"))
	}

	price, _ := strconv.ParseFloat(c.FormValue("price", "0"), 64)
	req := models.CreateMediaRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		MediaType:   c.FormValue("media_type"),
		Price:       price,
		IsPublic:    c.FormValue("is_public", "true") == "true",
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		thumbnail = nil
	}

	media, err := h.mediaService.Upload(userID, req, file, thumbnail)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(h.mediaService.ToResponse(media), "Media uploaded successfully"))
}

func (h *MediaHandler) GetPublicMedia(c *fiber.Ctx) error {
	mediaType := c.Query("type")
	if mediaType != "" && mediaType != models.MediaTypeImage &&
		mediaType != models.MediaTypeVideo && mediaType != models.MediaTypeAudio {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media type"))
	}

	items, err := h.mediaService.GetPublicMedia(mediaType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	responses := make([]models.MediaResponse, 0, len(items))
	for i := range items {
		responses = append(responses, h.mediaService.ToResponse(&items[i]))
	}

	return c.JSON(models.SuccessResponse(responses, "Media retrieved successfully"))
}

func (h *MediaHandler) GetMyMedia(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	items, err := h.mediaService.GetUserMedia(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	responses := make([]models.MediaResponse, 0, len(items))
	for i := range items {
		responses = append(responses, h.mediaService.ToResponse(&items[i]))
	}

	return c.JSON(models.SuccessResponse(responses, "Media retrieved successfully"))
}

func (h *MediaHandler) GetMedia(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	media, err := h.mediaService.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Media not found"))
	}

	return c.JSON(models.SuccessResponse(h.mediaService.ToResponse(media), "Media retrieved successfully"))
}

func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	if err := h.mediaService.Delete(uint(id), userID); err != nil {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(nil, "Media deleted successfully"))
}
