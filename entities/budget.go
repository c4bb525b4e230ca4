package entities

import (
	"github.com/google/uuid"
)

type Budget struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Category    string    `json:"category"`
	LimitAmount int64     `json:"limitAmount"` // minor currency units
	Period      string    `gorm:"default:monthly" json:"period"` // "monthly", "weekly"

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
