package domain

import (
	"errors"
)

var (
	MessageFailedSubscribe = "failed to create subscription transaction"
	MessageFailedWebhook   = "failed to process payment notification"

	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCreateTransaction   = errors.New("failed to create payment transaction")
)

// PremiumPlanPrice is the monthly SpendLens Pro price.
const PremiumPlanPrice int64 = 49000

type (
	SubscribeResponse struct {
		OrderID     string `json:"orderId"`
		Token       string `json:"token"`
		RedirectURL string `json:"redirectUrl"`
	}

	// MidtransNotification carries the fields of the payment webhook body
	// that settlement handling depends on.
	MidtransNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
	}
)
