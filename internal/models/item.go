package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item represents a product definition owning a set of sellable variants.
type Item struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string          `json:"name" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,min=1,max=255"`
	Description string          `json:"description" validate:"omitempty,max=500"`
	BasePrice   decimal.Decimal `json:"base_price" gorm:"type:decimal(10,2);not null"`
	Variants    []Variant       `json:"variants" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
