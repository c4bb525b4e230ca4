package entities

import (
	"github.com/google/uuid"
)

type Transaction struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	OrderID string    `gorm:"unique" json:"orderId"`
	Amount  int64     `json:"amount"`
	Status  string    `json:"status"` // "pending", "settlement", "expire", "cancel"

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
