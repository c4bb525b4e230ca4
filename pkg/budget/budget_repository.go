package budget

import (
	"context"

	"SpendLens-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	BudgetRepository interface {
		CreateBudget(ctx context.Context, budget *entities.Budget) error
		GetBudgetByID(ctx context.Context, id uint) (*entities.Budget, error)
		GetBudgets(ctx context.Context, userID uuid.UUID) ([]*entities.Budget, error)
		DeleteBudget(ctx context.Context, id uint) error
	}

	budgetRepository struct {
		db *gorm.DB
	}
)

func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) CreateBudget(ctx context.Context, budget *entities.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *budgetRepository) GetBudgetByID(ctx context.Context, id uint) (*entities.Budget, error) {
	var budget entities.Budget
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&budget).Error; err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) GetBudgets(ctx context.Context, userID uuid.UUID) ([]*entities.Budget, error) {
	var budgets []*entities.Budget
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *budgetRepository) DeleteBudget(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Budget{}).Error
}
