package receipt

import (
	"context"
	"time"

	"SpendLens-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReceiptRepository interface {
		CreateReceipt(ctx context.Context, receipt *entities.Receipt) error
		GetReceiptByID(ctx context.Context, id uint) (*entities.Receipt, error)
		GetReceipts(ctx context.Context, userID uuid.UUID) ([]*entities.Receipt, error)
		DeleteReceipt(ctx context.Context, id uint) error
		CompleteReceipt(ctx context.Context, id uint, merchantName string, totalAmount int64, date time.Time, items entities.ReceiptItemList) error
		FailReceipt(ctx context.Context, id uint) error
	}

	receiptRepository struct {
		db *gorm.DB
	}
)

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) CreateReceipt(ctx context.Context, receipt *entities.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetReceiptByID(ctx context.Context, id uint) (*entities.Receipt, error) {
	var receipt entities.Receipt
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *receiptRepository) GetReceipts(ctx context.Context, userID uuid.UUID) ([]*entities.Receipt, error) {
	var receipts []*entities.Receipt
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *receiptRepository) DeleteReceipt(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Receipt{}).Error
}

// CompleteReceipt writes all enrichment fields and the terminal status in one
// update. The status guard makes the processing -> completed transition
// one-way: a receipt already in a terminal state is never touched again.
func (r *receiptRepository) CompleteReceipt(ctx context.Context, id uint, merchantName string, totalAmount int64, date time.Time, items entities.ReceiptItemList) error {
	return r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("id = ? AND status = ?", id, entities.ReceiptStatusProcessing).
		Updates(map[string]interface{}{
			"merchant_name": merchantName,
			"total_amount":  totalAmount,
			"date":          date,
			"items":         items,
			"status":        entities.ReceiptStatusCompleted,
		}).Error
}

// FailReceipt marks the receipt failed and leaves every enrichment field NULL.
func (r *receiptRepository) FailReceipt(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&entities.Receipt{}).
		Where("id = ? AND status = ?", id, entities.ReceiptStatusProcessing).
		Updates(map[string]interface{}{
			"status": entities.ReceiptStatusFailed,
		}).Error
}
