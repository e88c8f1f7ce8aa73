package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant represents a purchasable SKU of an item, carrying its own price
// and stock level. Stock is only ever changed through the inventory
// accounting operations, never through a generic update.
type Variant struct {
	ID            string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ItemID        string          `json:"item_id" gorm:"type:varchar(36);not null;index;uniqueIndex:idx_variants_item_attrs,priority:1" validate:"required"`
	SKU           string          `json:"sku" gorm:"column:sku;uniqueIndex;type:varchar(100);not null" validate:"required,min=1,max=100"`
	Size          string          `json:"size" gorm:"type:varchar(50);uniqueIndex:idx_variants_item_attrs,priority:2"`
	Color         string          `json:"color" gorm:"type:varchar(50);uniqueIndex:idx_variants_item_attrs,priority:3"`
	Material      string          `json:"material" gorm:"type:varchar(50);uniqueIndex:idx_variants_item_attrs,priority:4"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `json:"stock_quantity" gorm:"not null;default:0" validate:"gte=0"`
	MinStockLevel int             `json:"min_stock_level" gorm:"not null;default:0" validate:"gte=0"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InStock reports whether the variant has any sellable stock. Computed on
// read, never stored.
func (v *Variant) InStock() bool {
	return v.StockQuantity > 0
}

// NeedsRestock reports whether the stock level has fallen to or below the
// configured minimum.
func (v *Variant) NeedsRestock() bool {
	return v.StockQuantity <= v.MinStockLevel
}
