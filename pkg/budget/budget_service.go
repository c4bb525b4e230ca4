package budget

import (
	"context"
	"errors"
	"math"
	"strings"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"
	"SpendLens-Backend/internal/charts"
	"SpendLens-Backend/pkg/receipt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BudgetService interface {
		CreateBudget(ctx context.Context, req domain.CreateBudgetRequest, userID string) (*entities.Budget, error)
		GetBudgets(ctx context.Context, userID string) ([]*entities.Budget, error)
		DeleteBudget(ctx context.Context, id uint, userID string) error
		GetBudgetSummary(ctx context.Context, userID string) ([]domain.BudgetSummaryResponse, error)
		RenderSpendChart(ctx context.Context, userID string) ([]byte, error)
	}

	budgetService struct {
		budgetRepository  BudgetRepository
		receiptRepository receipt.ReceiptRepository
		chartGenerator    *charts.ChartGenerator
	}
)

func NewBudgetService(budgetRepository BudgetRepository, receiptRepository receipt.ReceiptRepository, chartGenerator *charts.ChartGenerator) BudgetService {
	return &budgetService{
		budgetRepository:  budgetRepository,
		receiptRepository: receiptRepository,
		chartGenerator:    chartGenerator,
	}
}

func (s *budgetService) CreateBudget(ctx context.Context, req domain.CreateBudgetRequest, userID string) (*entities.Budget, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if req.Period != "monthly" && req.Period != "weekly" {
		return nil, domain.ErrInvalidPeriod
	}
	if req.LimitAmount < 0 {
		return nil, domain.ErrNegativeLimit
	}

	budget := &entities.Budget{
		UserID:      userUUID,
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
		Period:      req.Period,
	}

	if err := s.budgetRepository.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

func (s *budgetService) GetBudgets(ctx context.Context, userID string) ([]*entities.Budget, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.budgetRepository.GetBudgets(ctx, userUUID)
}

func (s *budgetService) DeleteBudget(ctx context.Context, id uint, userID string) error {
	budget, err := s.budgetRepository.GetBudgetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrBudgetNotFound
		}
		return err
	}

	if budget.UserID.String() != userID {
		return domain.ErrBudgetNotFound
	}

	return s.budgetRepository.DeleteBudget(ctx, id)
}

// GetBudgetSummary computes spend-vs-limit for every budget of the user.
// Spend is summed over all fetched receipts regardless of the budget period;
// the period field is informational only.
func (s *budgetService) GetBudgetSummary(ctx context.Context, userID string) ([]domain.BudgetSummaryResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	budgets, err := s.budgetRepository.GetBudgets(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepository.GetReceipts(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.BudgetSummaryResponse, 0, len(budgets))
	for _, budget := range budgets {
		spent := SpendForCategory(budget.Category, receipts)
		summaries = append(summaries, domain.BudgetSummaryResponse{
			ID:           budget.ID,
			Category:     budget.Category,
			LimitAmount:  budget.LimitAmount,
			Period:       budget.Period,
			Spent:        spent,
			PercentUsed:  PercentUsed(spent, budget.LimitAmount),
			IsOverBudget: IsOverBudget(spent, budget.LimitAmount),
		})
	}

	return summaries, nil
}

func (s *budgetService) RenderSpendChart(ctx context.Context, userID string) ([]byte, error) {
	summaries, err := s.GetBudgetSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.chartGenerator.GenerateSpendChart(summaries)
}

// SpendForCategory sums item prices across all receipts whose item category
// matches the target case-insensitively. Pure over already-fetched data.
func SpendForCategory(category string, receipts []*entities.Receipt) int64 {
	var total int64
	for _, r := range receipts {
		for _, item := range r.Items {
			if strings.EqualFold(item.Category, category) {
				total += item.Price
			}
		}
	}
	return total
}

// PercentUsed is min(round(spent/limit*100), 100). A non-positive limit is
// defined as fully used rather than dividing by zero.
func PercentUsed(spent, limit int64) int {
	if limit <= 0 {
		return 100
	}
	percent := int(math.Round(float64(spent) / float64(limit) * 100))
	if percent > 100 {
		return 100
	}
	return percent
}

func IsOverBudget(spent, limit int64) bool {
	return spent > limit
}
