package repositories

import (
	"warehouse/internal/models"
)

// VariantRepository defines the interface for variant data access.
//
// AddQuantity and RemoveQuantity are the only ways stock_quantity is
// written. Both issue a single guarded UPDATE so that concurrent mutations
// cannot lose updates or drive the quantity negative; RemoveQuantity
// reports false when the guard rejects the decrement.
type VariantRepository interface {
	GetByID(id string) (*models.Variant, error)
	GetBySKU(sku string) (*models.Variant, error)
	GetByItemID(itemID string) ([]models.Variant, error)
	FindByItemIDAndAttributes(itemID, size, color, material string) (*models.Variant, error)
	ExistsBySKU(sku string) (bool, error)
	FindLowStock() ([]models.Variant, error)
	FindOutOfStock() ([]models.Variant, error)
	FindInStock() ([]models.Variant, error)
	Create(variant *models.Variant) error
	Update(variant *models.Variant) error
	AddQuantity(id string, quantity int) error
	RemoveQuantity(id string, quantity int) (bool, error)
	Delete(id string) error
	DeleteByItemID(itemID string) error
}
