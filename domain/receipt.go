package domain

import (
	"errors"
)

var (
	MessageFailedCreateReceipt = "failed to create receipt"
	MessageFailedGetReceipts   = "failed to retrieve receipts"
	MessageFailedDeleteReceipt = "failed to delete receipt"
	MessageReceiptNotFound     = "receipt not found"

	ErrReceiptNotFound = errors.New("receipt not found")
	ErrEmptyImageURL   = errors.New("image url must not be empty")
	ErrEmptyExtraction = errors.New("extraction returned no content")
)

// CategoryOther is the fallback for items the extraction model cannot place
// in one of the known categories.
const CategoryOther = "Other"

// ItemCategories is the closed set of categories the extraction model is
// instructed to choose from.
var ItemCategories = []string{
	"Groceries",
	"Dining",
	"Transport",
	"Utilities",
	"Entertainment",
	"Shopping",
	"Health",
	CategoryOther,
}

type (
	CreateReceiptRequest struct {
		ImageURL string `json:"imageUrl" validate:"required"`
	}

	// ExtractedItem and ExtractedReceipt mirror the JSON schema the
	// extraction model is asked to produce. Amounts arrive as floats so a
	// model answering "10.5" instead of 1050 still parses; normalization
	// rounds them to integers.
	ExtractedItem struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
	}

	ExtractedReceipt struct {
		MerchantName string          `json:"merchantName"`
		Date         string          `json:"date"`
		TotalAmount  float64         `json:"totalAmount"`
		Items        []ExtractedItem `json:"items"`
	}
)
