package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	ReceiptStatusProcessing = "processing"
	ReceiptStatusCompleted  = "completed"
	ReceiptStatusFailed     = "failed"
)

// ReceiptItem is a single line extracted from a receipt image.
// Prices are stored in minor currency units (cents).
type ReceiptItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category,omitempty"`
}

type ReceiptItemList []ReceiptItem

func (l ReceiptItemList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *ReceiptItemList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for receipt items", value)
	}
}

// Receipt starts in "processing" with every enrichment field NULL and moves
// to exactly one of "completed" or "failed". A failed receipt keeps its
// enrichment fields NULL permanently.
type Receipt struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;index" json:"userId"`
	ImageURL     string          `json:"imageUrl"`
	MerchantName *string         `json:"merchantName"`
	TotalAmount  *int64          `json:"totalAmount"` // minor currency units
	Currency     string          `gorm:"default:USD" json:"currency"`
	Date         *time.Time      `json:"date"`
	Status       string          `gorm:"default:processing" json:"status"` // "processing", "completed", "failed"
	Items        ReceiptItemList `gorm:"type:jsonb" json:"items"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
