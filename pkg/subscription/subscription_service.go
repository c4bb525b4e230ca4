package subscription

import (
	"context"
	"errors"
	"fmt"

	"SpendLens-Backend/domain"
	"SpendLens-Backend/entities"
	"SpendLens-Backend/internal/utils"
	"SpendLens-Backend/pkg/user"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type (
	SubscriptionService interface {
		Subscribe(ctx context.Context, userID string) (domain.SubscribeResponse, error)
		HandleNotification(ctx context.Context, notification domain.MidtransNotification) error
	}

	subscriptionService struct {
		transactionRepository TransactionRepository
		userRepository        user.UserRepository
		snapClient            snap.Client
	}
)

func NewSubscriptionService(transactionRepository TransactionRepository, userRepository user.UserRepository) SubscriptionService {
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(utils.GetConfig("SERVER_KEY"), env)

	return &subscriptionService{
		transactionRepository: transactionRepository,
		userRepository:        userRepository,
		snapClient:            client,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID string) (domain.SubscribeResponse, error) {
	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SubscribeResponse{}, domain.ErrUserNotFound
		}
		return domain.SubscribeResponse{}, err
	}

	orderID := fmt.Sprintf("spendlens-pro-%s", uuid.New().String())

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: domain.PremiumPlanPrice,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: account.Name,
			Email: account.Email,
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return domain.SubscribeResponse{}, domain.ErrCreateTransaction
	}

	transaction := &entities.Transaction{
		ID:      uuid.New(),
		UserID:  account.ID,
		OrderID: orderID,
		Amount:  domain.PremiumPlanPrice,
		Status:  "pending",
	}
	if err := s.transactionRepository.CreateTransaction(ctx, transaction); err != nil {
		return domain.SubscribeResponse{}, err
	}

	return domain.SubscribeResponse{
		OrderID:     orderID,
		Token:       snapResp.Token,
		RedirectURL: snapResp.RedirectURL,
	}, nil
}

func (s *subscriptionService) HandleNotification(ctx context.Context, notification domain.MidtransNotification) error {
	transaction, err := s.transactionRepository.GetTransactionByOrderID(ctx, notification.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	transaction.Status = notification.TransactionStatus
	if err := s.transactionRepository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	settled := notification.TransactionStatus == "settlement" ||
		(notification.TransactionStatus == "capture" && notification.FraudStatus == "accept")
	if !settled {
		return nil
	}

	account, err := s.userRepository.GetUserByID(ctx, transaction.UserID.String())
	if err != nil {
		return err
	}

	account.Premium = true
	return s.userRepository.UpdateUser(ctx, account)
}
