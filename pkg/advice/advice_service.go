package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"
	"SpendLens-Backend/pkg/ai"
	"SpendLens-Backend/pkg/budget"
	"SpendLens-Backend/pkg/receipt"

	"github.com/google/uuid"
)

// recentReceiptWindow bounds how many receipts feed the advice prompt.
const recentReceiptWindow = 15

type (
	AdviceService interface {
		Generate(ctx context.Context, userID string) (*entities.Advice, error)
		GetAdvice(ctx context.Context, userID string) ([]*entities.Advice, error)
	}

	adviceService struct {
		adviceRepository  AdviceRepository
		receiptRepository receipt.ReceiptRepository
		budgetRepository  budget.BudgetRepository
		aiClient          ai.Client
	}
)

func NewAdviceService(adviceRepository AdviceRepository, receiptRepository receipt.ReceiptRepository, budgetRepository budget.BudgetRepository, aiClient ai.Client) AdviceService {
	return &adviceService{
		adviceRepository:  adviceRepository,
		receiptRepository: receiptRepository,
		budgetRepository:  budgetRepository,
		aiClient:          aiClient,
	}
}

// Generate gathers the user's budgets and recent receipts, asks the advisor
// model for tips and persists the result. If the model call fails nothing is
// persisted - unlike enrichment, this path is all-or-nothing.
func (s *adviceService) Generate(ctx context.Context, userID string) (*entities.Advice, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	receipts, err := s.receiptRepository.GetReceipts(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgetRepository.GetBudgets(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	prompt := buildAdvicePrompt(budgets, receipts)

	content, err := s.aiClient.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAdviceGenerationFailed, err)
	}

	row := &entities.Advice{
		UserID:  userUUID,
		Content: content,
		Context: domain.AdviceContextManual,
	}

	if err := s.adviceRepository.CreateAdvice(ctx, row); err != nil {
		return nil, err
	}

	return row, nil
}

func (s *adviceService) GetAdvice(ctx context.Context, userID string) ([]*entities.Advice, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.adviceRepository.GetAdvice(ctx, userUUID)
}

// buildAdvicePrompt embeds the budgets verbatim, a category spend map and a
// merchant activity list, all computed from the most recent receipts only.
func buildAdvicePrompt(budgets []*entities.Budget, receipts []*entities.Receipt) string {
	recent := receipts
	if len(recent) > recentReceiptWindow {
		recent = recent[:recentReceiptWindow]
	}

	spendByCategory := make(map[string]int64)
	for _, r := range recent {
		for _, item := range r.Items {
			if item.Category == "" {
				continue
			}
			spendByCategory[item.Category] += item.Price
		}
	}

	budgetsJSON, _ := json.Marshal(budgets)
	spendJSON, _ := json.Marshal(spendByCategory)

	var activity strings.Builder
	for _, r := range recent {
		merchant := receipt.UnknownMerchant
		if r.MerchantName != nil {
			merchant = *r.MerchantName
		}
		var total int64
		if r.TotalAmount != nil {
			total = *r.TotalAmount
		}
		fmt.Fprintf(&activity, "- %s: %d cents\n", merchant, total)
	}

	return fmt.Sprintf(`Based on the following financial data, provide 3 short, actionable financial tips.
All amounts are in cents.

Budgets: %s

Spend by category: %s

Recent activity:
%s
Format: "1. Tip one... 2. Tip two... 3. Tip three..."`,
		string(budgetsJSON), string(spendJSON), activity.String())
}
