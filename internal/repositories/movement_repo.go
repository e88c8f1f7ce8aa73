package repositories

import (
	"time"

	"warehouse/internal/models"
)

// MovementRepository defines the interface for stock-movement ledger
// access. Movements are append-only: there is no update operation, and
// deletion only happens as part of removing the owning variant.
type MovementRepository interface {
	Create(movement *models.StockMovement) error
	GetByVariantID(variantID string) ([]models.StockMovement, error)
	GetByVariantIDAndDateRange(variantID string, from, to time.Time) ([]models.StockMovement, error)
	TotalIn(variantID string) (int, error)
	TotalOut(variantID string) (int, error)
	DeleteByVariantID(variantID string) error
	DeleteByItemID(itemID string) error
}
