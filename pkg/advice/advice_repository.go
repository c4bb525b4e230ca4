package advice

import (
	"context"

	"SpendLens-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// adviceListLimit caps how many advice rows a listing returns.
const adviceListLimit = 10

type (
	AdviceRepository interface {
		CreateAdvice(ctx context.Context, advice *entities.Advice) error
		GetAdvice(ctx context.Context, userID uuid.UUID) ([]*entities.Advice, error)
	}

	adviceRepository struct {
		db *gorm.DB
	}
)

func NewAdviceRepository(db *gorm.DB) AdviceRepository {
	return &adviceRepository{db: db}
}

func (r *adviceRepository) CreateAdvice(ctx context.Context, advice *entities.Advice) error {
	return r.db.WithContext(ctx).Create(advice).Error
}

func (r *adviceRepository) GetAdvice(ctx context.Context, userID uuid.UUID) ([]*entities.Advice, error) {
	var rows []*entities.Advice
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(adviceListLimit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
