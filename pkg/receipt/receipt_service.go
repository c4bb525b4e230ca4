package receipt

import (
	"context"
	"errors"
	"strings"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"
	"SpendLens-Backend/internal/utils/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReceiptService interface {
		Submit(ctx context.Context, req domain.CreateReceiptRequest, userID string) (*entities.Receipt, error)
		GetReceipts(ctx context.Context, userID string) ([]*entities.Receipt, error)
		GetReceiptByID(ctx context.Context, id uint, userID string) (*entities.Receipt, error)
		DeleteReceipt(ctx context.Context, id uint, userID string) error
	}

	receiptService struct {
		receiptRepository ReceiptRepository
		processor         Processor
		s3                storage.AwsS3
	}
)

func NewReceiptService(receiptRepository ReceiptRepository, processor Processor, s3 storage.AwsS3) ReceiptService {
	return &receiptService{
		receiptRepository: receiptRepository,
		processor:         processor,
		s3:                s3,
	}
}

// Submit persists a receipt in "processing" state and schedules enrichment.
// The caller gets the bare record back immediately; the outcome is observable
// only by re-reading the receipt later.
func (s *receiptService) Submit(ctx context.Context, req domain.CreateReceiptRequest, userID string) (*entities.Receipt, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	// Signed upload URLs carry their signature in the query string; only
	// the durable object reference is stored.
	imageURL := strings.TrimSpace(req.ImageURL)
	if i := strings.Index(imageURL, "?"); i >= 0 {
		imageURL = imageURL[:i]
	}
	if imageURL == "" {
		return nil, domain.ErrEmptyImageURL
	}

	receipt := &entities.Receipt{
		UserID:   userUUID,
		ImageURL: imageURL,
		Currency: "USD",
		Status:   entities.ReceiptStatusProcessing,
	}

	if err := s.receiptRepository.CreateReceipt(ctx, receipt); err != nil {
		return nil, err
	}

	s.processor.Enqueue(receipt.ID, receipt.ImageURL)

	return receipt, nil
}

func (s *receiptService) GetReceipts(ctx context.Context, userID string) ([]*entities.Receipt, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	return s.receiptRepository.GetReceipts(ctx, userUUID)
}

func (s *receiptService) GetReceiptByID(ctx context.Context, id uint, userID string) (*entities.Receipt, error) {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReceiptNotFound
		}
		return nil, err
	}

	// A foreign receipt reads as absent, not as forbidden.
	if receipt.UserID.String() != userID {
		return nil, domain.ErrReceiptNotFound
	}

	return receipt, nil
}

func (s *receiptService) DeleteReceipt(ctx context.Context, id uint, userID string) error {
	receipt, err := s.receiptRepository.GetReceiptByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrReceiptNotFound
		}
		return err
	}

	if receipt.UserID.String() != userID {
		return domain.ErrReceiptNotFound
	}

	// Best effort; a stranded object is preferable to a stranded row.
	if receipt.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(receipt.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.receiptRepository.DeleteReceipt(ctx, id)
}
