package domain

import (
	"errors"
)

var (
	MessageFailedCreateBudget = "failed to create budget"
	MessageFailedGetBudgets   = "failed to retrieve budgets"
	MessageFailedDeleteBudget = "failed to delete budget"
	MessageBudgetNotFound     = "budget not found"

	ErrBudgetNotFound    = errors.New("budget not found")
	ErrInvalidPeriod     = errors.New("period must be monthly or weekly")
	ErrNegativeLimit     = errors.New("limit amount must not be negative")
	ErrNoBudgetsForChart = errors.New("no budgets to chart")
)

type (
	CreateBudgetRequest struct {
		Category    string `json:"category" validate:"required"`
		LimitAmount int64  `json:"limitAmount" validate:"gte=0"`
		Period      string `json:"period" validate:"required,oneof=monthly weekly"`
	}

	// BudgetSummaryResponse is the server-side rendering of spend-vs-limit
	// for one budget. Spent is lifetime-to-date over all of the user's
	// receipts regardless of the budget period.
	BudgetSummaryResponse struct {
		ID           uint   `json:"id"`
		Category     string `json:"category"`
		LimitAmount  int64  `json:"limitAmount"`
		Period       string `json:"period"`
		Spent        int64  `json:"spent"`
		PercentUsed  int    `json:"percentUsed"`
		IsOverBudget bool   `json:"isOverBudget"`
	}
)
