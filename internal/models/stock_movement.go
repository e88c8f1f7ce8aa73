package models

import "time"

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn         MovementType = "IN"
	MovementOut        MovementType = "OUT"
	MovementAdjustment MovementType = "ADJUSTMENT"
)

// StockMovement is an immutable ledger entry recording one stock-quantity
// change for a variant. IN and OUT movements carry a positive magnitude;
// ADJUSTMENT movements carry the raw signed delta. Movements are created
// once and never updated.
type StockMovement struct {
	ID           string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	VariantID    string       `json:"variant_id" gorm:"type:varchar(36);not null;index"`
	MovementType MovementType `json:"movement_type" gorm:"type:varchar(16);not null"`
	Quantity     int          `json:"quantity" gorm:"not null"`
	Reason       string       `json:"reason" gorm:"type:varchar(255)"`
	Reference    string       `json:"reference" gorm:"type:varchar(255)"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SignedEffect is the movement's contribution to the variant's stock
// quantity: IN adds, OUT subtracts, ADJUSTMENT adds its signed quantity.
func (m *StockMovement) SignedEffect() int {
	if m.MovementType == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
