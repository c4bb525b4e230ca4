package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"
	"SpendLens-Backend/internal/charts"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeBudgetRepository struct {
	budgets []*entities.Budget
	created []*entities.Budget
	deleted []uint
}

func (f *fakeBudgetRepository) CreateBudget(_ context.Context, budget *entities.Budget) error {
	budget.ID = uint(len(f.created) + 1)
	f.created = append(f.created, budget)
	return nil
}

func (f *fakeBudgetRepository) GetBudgetByID(_ context.Context, id uint) (*entities.Budget, error) {
	for _, b := range f.budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBudgetRepository) GetBudgets(_ context.Context, _ uuid.UUID) ([]*entities.Budget, error) {
	return f.budgets, nil
}

func (f *fakeBudgetRepository) DeleteBudget(_ context.Context, id uint) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeReceiptReader struct {
	receipts []*entities.Receipt
}

func (f *fakeReceiptReader) CreateReceipt(_ context.Context, _ *entities.Receipt) error {
	return nil
}

func (f *fakeReceiptReader) GetReceiptByID(_ context.Context, _ uint) (*entities.Receipt, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReceiptReader) GetReceipts(_ context.Context, _ uuid.UUID) ([]*entities.Receipt, error) {
	return f.receipts, nil
}

func (f *fakeReceiptReader) DeleteReceipt(_ context.Context, _ uint) error { return nil }

func (f *fakeReceiptReader) CompleteReceipt(_ context.Context, _ uint, _ string, _ int64, _ time.Time, _ entities.ReceiptItemList) error {
	return nil
}

func (f *fakeReceiptReader) FailReceipt(_ context.Context, _ uint) error { return nil }

func receiptWithItems(items ...entities.ReceiptItem) *entities.Receipt {
	return &entities.Receipt{
		Status: entities.ReceiptStatusCompleted,
		Items:  items,
	}
}

func TestSpendForCategory(t *testing.T) {
	receipts := []*entities.Receipt{
		receiptWithItems(
			entities.ReceiptItem{Name: "Milk", Price: 450, Category: "Groceries"},
			entities.ReceiptItem{Name: "Bus ticket", Price: 275, Category: "Transport"},
		),
		receiptWithItems(
			entities.ReceiptItem{Name: "Bread", Price: 300, Category: "groceries"},
		),
		receiptWithItems(
			entities.ReceiptItem{Name: "Mystery", Price: 999},
		),
	}

	if got := SpendForCategory("Groceries", receipts); got != 750 {
		t.Errorf("Groceries spend = %d, want 750", got)
	}
	if got := SpendForCategory("Transport", receipts); got != 275 {
		t.Errorf("Transport spend = %d, want 275", got)
	}
	if got := SpendForCategory("Dining", receipts); got != 0 {
		t.Errorf("Dining spend = %d, want 0", got)
	}
}

func TestSpendForCategory_OrderInvariant(t *testing.T) {
	a := receiptWithItems(entities.ReceiptItem{Name: "A", Price: 100, Category: "Dining"})
	b := receiptWithItems(entities.ReceiptItem{Name: "B", Price: 200, Category: "Dining"})

	forward := SpendForCategory("Dining", []*entities.Receipt{a, b})
	reverse := SpendForCategory("Dining", []*entities.Receipt{b, a})
	if forward != reverse {
		t.Errorf("spend depends on receipt order: %d vs %d", forward, reverse)
	}
}

func TestPercentUsed(t *testing.T) {
	if got := PercentUsed(7000, 10000); got != 70 {
		t.Errorf("PercentUsed(7000, 10000) = %d, want 70", got)
	}
	if got := PercentUsed(15000, 10000); got != 100 {
		t.Errorf("PercentUsed should cap at 100, got %d", got)
	}
	if got := PercentUsed(333, 1000); got != 33 {
		t.Errorf("PercentUsed(333, 1000) = %d, want 33", got)
	}
	if got := PercentUsed(335, 1000); got != 34 {
		t.Errorf("PercentUsed should round, got %d", got)
	}
	if got := PercentUsed(0, 0); got != 100 {
		t.Errorf("zero limit should read as fully used, got %d", got)
	}
	if got := PercentUsed(500, 0); got != 100 {
		t.Errorf("zero limit with spend should read as fully used, got %d", got)
	}
}

func TestIsOverBudget(t *testing.T) {
	if IsOverBudget(10000, 10000) {
		t.Error("spend equal to limit is not over budget")
	}
	if !IsOverBudget(10001, 10000) {
		t.Error("spend above limit is over budget")
	}
	if !IsOverBudget(1, 0) {
		t.Error("any spend against a zero limit is over budget")
	}
}

func TestGetBudgetSummary(t *testing.T) {
	userID := uuid.New()
	budgetRepo := &fakeBudgetRepository{
		budgets: []*entities.Budget{
			{ID: 1, UserID: userID, Category: "Groceries", LimitAmount: 10000, Period: "monthly"},
			{ID: 2, UserID: userID, Category: "Dining", LimitAmount: 500, Period: "weekly"},
		},
	}
	receiptRepo := &fakeReceiptReader{
		receipts: []*entities.Receipt{
			receiptWithItems(
				entities.ReceiptItem{Name: "Milk", Price: 7000, Category: "Groceries"},
				entities.ReceiptItem{Name: "Pizza", Price: 800, Category: "Dining"},
			),
		},
	}

	service := NewBudgetService(budgetRepo, receiptRepo, charts.NewChartGenerator())

	summaries, err := service.GetBudgetSummary(context.Background(), userID.String())
	if err != nil {
		t.Fatalf("GetBudgetSummary: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}

	groceries := summaries[0]
	if groceries.Spent != 7000 || groceries.PercentUsed != 70 || groceries.IsOverBudget {
		t.Errorf("groceries summary = %+v", groceries)
	}

	dining := summaries[1]
	if dining.Spent != 800 || dining.PercentUsed != 100 || !dining.IsOverBudget {
		t.Errorf("dining summary = %+v", dining)
	}
}

func TestCreateBudget_Validation(t *testing.T) {
	service := NewBudgetService(&fakeBudgetRepository{}, &fakeReceiptReader{}, charts.NewChartGenerator())
	userID := uuid.New().String()

	_, err := service.CreateBudget(context.Background(), domain.CreateBudgetRequest{
		Category: "Groceries", LimitAmount: 100, Period: "yearly",
	}, userID)
	if !errors.Is(err, domain.ErrInvalidPeriod) {
		t.Errorf("unknown period: got %v, want ErrInvalidPeriod", err)
	}

	_, err = service.CreateBudget(context.Background(), domain.CreateBudgetRequest{
		Category: "Groceries", LimitAmount: -1, Period: "monthly",
	}, userID)
	if !errors.Is(err, domain.ErrNegativeLimit) {
		t.Errorf("negative limit: got %v, want ErrNegativeLimit", err)
	}

	created, err := service.CreateBudget(context.Background(), domain.CreateBudgetRequest{
		Category: "Groceries", LimitAmount: 0, Period: "monthly",
	}, userID)
	if err != nil {
		t.Fatalf("zero limit should be accepted: %v", err)
	}
	if created.LimitAmount != 0 {
		t.Errorf("limit = %d, want 0", created.LimitAmount)
	}
}

func TestDeleteBudget_ForeignBudgetReadsAsMissing(t *testing.T) {
	owner := uuid.New()
	repo := &fakeBudgetRepository{
		budgets: []*entities.Budget{{ID: 1, UserID: owner, Category: "Dining", LimitAmount: 100, Period: "monthly"}},
	}
	service := NewBudgetService(repo, &fakeReceiptReader{}, charts.NewChartGenerator())

	err := service.DeleteBudget(context.Background(), 1, uuid.New().String())
	if !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("foreign delete: got %v, want ErrBudgetNotFound", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("foreign delete must not reach the repository")
	}

	if err := service.DeleteBudget(context.Background(), 1, owner.String()); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 1 {
		t.Errorf("deleted ids = %v, want [1]", repo.deleted)
	}
}
