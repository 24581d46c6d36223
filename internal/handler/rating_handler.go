package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/aimarket-backend/internal/models"
	"github.com/sefazor/aimarket-backend/internal/service"
	"github.com/sefazor/aimarket-backend/pkg/utils"
)

type RatingHandler struct {
	ratingService *service.RatingService
	validator     *utils.Validator
}

func NewRatingHandler(ratingService *service.RatingService, validator *utils.Validator) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator,
	}
}

func (h *RatingHandler) RateMedia(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	mediaID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	var req models.RateMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	summary, err := h.ratingService.Rate(userID, uint(mediaID), req.Score)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(summary, "Rating saved"))
}

func (h *RatingHandler) GetSummary(c *fiber.Ctx) error {
	mediaID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid media ID"))
	}

	summary, err := h.ratingService.GetSummary(uint(mediaID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(err.Error()))
	}

	return c.JSON(models.SuccessResponse(summary, "Rating summary retrieved"))
}
