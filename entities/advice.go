package entities

import (
	"github.com/google/uuid"
)

// Advice rows are append-only; there is no update path.
type Advice struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Content string    `gorm:"type:text" json:"content"`
	Context string    `json:"context,omitempty"` // what triggered the advice, e.g. "manual_generation"

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
