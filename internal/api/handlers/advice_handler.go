package handlers

import (
	"SpendLens-Backend/domain"
	"SpendLens-Backend/internal/api/presenters"
	"SpendLens-Backend/pkg/advice"

	"github.com/gofiber/fiber/v2"
)

type (
	AdviceHandler interface {
		GetAdvice(c *fiber.Ctx) error
		GenerateAdvice(c *fiber.Ctx) error
	}

	adviceHandler struct {
		adviceService advice.AdviceService
	}
)

func NewAdviceHandler(adviceService advice.AdviceService) AdviceHandler {
	return &adviceHandler{adviceService: adviceService}
}

func (h *adviceHandler) GetAdvice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	rows, err := h.adviceService.GetAdvice(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetAdvice, err)
	}

	return presenters.SuccessResponse(c, rows, fiber.StatusOK)
}

func (h *adviceHandler) GenerateAdvice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	row, err := h.adviceService.Generate(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGenerateAdvice, err)
	}

	return presenters.SuccessResponse(c, row, fiber.StatusCreated)
}
