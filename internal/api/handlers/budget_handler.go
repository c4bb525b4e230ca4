package handlers

import (
	"errors"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/internal/api/presenters"
	"SpendLens-Backend/pkg/budget"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	BudgetHandler interface {
		GetBudgets(c *fiber.Ctx) error
		CreateBudget(c *fiber.Ctx) error
		DeleteBudget(c *fiber.Ctx) error
		GetBudgetSummary(c *fiber.Ctx) error
		GetSpendChart(c *fiber.Ctx) error
	}

	budgetHandler struct {
		budgetService budget.BudgetService
		validator     *validator.Validate
	}
)

func NewBudgetHandler(budgetService budget.BudgetService, validator *validator.Validate) BudgetHandler {
	return &budgetHandler{
		budgetService: budgetService,
		validator:     validator,
	}
}

func (h *budgetHandler) GetBudgets(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	budgets, err := h.budgetService.GetBudgets(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBudgets, err)
	}

	return presenters.SuccessResponse(c, budgets, fiber.StatusOK)
}

func (h *budgetHandler) CreateBudget(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateBudgetRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBudget, err)
	}

	res, err := h.budgetService.CreateBudget(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) || errors.Is(err, domain.ErrNegativeLimit) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateBudget, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedCreateBudget, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *budgetHandler) DeleteBudget(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	id, err := parseIDParam(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageBudgetNotFound, err)
	}

	if err := h.budgetService.DeleteBudget(c.Context(), id, userID); err != nil {
		if errors.Is(err, domain.ErrBudgetNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageBudgetNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedDeleteBudget, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *budgetHandler) GetBudgetSummary(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	summary, err := h.budgetService.GetBudgetSummary(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBudgets, err)
	}

	return presenters.SuccessResponse(c, summary, fiber.StatusOK)
}

func (h *budgetHandler) GetSpendChart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	png, err := h.budgetService.RenderSpendChart(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoBudgetsForChart) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageBudgetNotFound, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGetBudgets, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
