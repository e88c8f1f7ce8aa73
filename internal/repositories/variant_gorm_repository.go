package repositories

import (
	"errors"
	"fmt"

	"warehouse/internal/apperrors"
	"warehouse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMVariantRepository is a GORM implementation of VariantRepository.
type GORMVariantRepository struct {
	db *gorm.DB
}

// NewGORMVariantRepository creates a new instance of GORMVariantRepository.
func NewGORMVariantRepository(db *gorm.DB) *GORMVariantRepository {
	return &GORMVariantRepository{
		db: db,
	}
}

// GetByID retrieves a single variant by its ID.
func (r *GORMVariantRepository) GetByID(id string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get variant by ID %s: %w", id, err)
	}
	return &variant, nil
}

// GetBySKU retrieves a single variant by its SKU.
func (r *GORMVariantRepository) GetBySKU(sku string) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.First(&variant, "sku = ?", sku).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant with SKU %s: %w", sku, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get variant by SKU %s: %w", sku, err)
	}
	return &variant, nil
}

// GetByItemID retrieves all variants belonging to an item.
func (r *GORMVariantRepository) GetByItemID(itemID string) ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.db.Where("item_id = ?", itemID).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to get variants for item %s: %w", itemID, err)
	}
	return variants, nil
}

// FindByItemIDAndAttributes retrieves the variant of an item matching the
// exact size/color/material combination, or nil when none exists.
func (r *GORMVariantRepository) FindByItemIDAndAttributes(itemID, size, color, material string) (*models.Variant, error) {
	var variant models.Variant
	err := r.db.Where("item_id = ? AND size = ? AND color = ? AND material = ?", itemID, size, color, material).
		First(&variant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find variant by attributes for item %s: %w", itemID, err)
	}
	return &variant, nil
}

// ExistsBySKU reports whether a variant with the given SKU exists.
func (r *GORMVariantRepository) ExistsBySKU(sku string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Variant{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check SKU %q: %w", sku, err)
	}
	return count > 0, nil
}

// FindLowStock retrieves variants whose stock is positive but at or below
// their minimum stock level. Zero-stock variants are out of stock, not low.
func (r *GORMVariantRepository) FindLowStock() ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.db.Where("stock_quantity <= min_stock_level AND stock_quantity > 0").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to find low stock variants: %w", err)
	}
	return variants, nil
}

// FindOutOfStock retrieves variants with zero stock.
func (r *GORMVariantRepository) FindOutOfStock() ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.db.Where("stock_quantity = 0").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to find out of stock variants: %w", err)
	}
	return variants, nil
}

// FindInStock retrieves variants with positive stock.
func (r *GORMVariantRepository) FindInStock() ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.db.Where("stock_quantity > 0").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to find in stock variants: %w", err)
	}
	return variants, nil
}

// Create creates a new variant in the database.
func (r *GORMVariantRepository) Create(variant *models.Variant) error {
	if variant.ID == "" {
		variant.ID = uuid.New().String()
	}
	if err := r.db.Create(variant).Error; err != nil {
		return fmt.Errorf("failed to create variant: %w", err)
	}
	return nil
}

// Update updates a variant's descriptive columns. stock_quantity is
// deliberately excluded: stock only changes through AddQuantity and
// RemoveQuantity so every change carries a ledger entry.
func (r *GORMVariantRepository) Update(variant *models.Variant) error {
	res := r.db.Model(variant).
		Select("sku", "size", "color", "material", "price", "min_stock_level").
		Updates(map[string]interface{}{
			"sku":             variant.SKU,
			"size":            variant.Size,
			"color":           variant.Color,
			"material":        variant.Material,
			"price":           variant.Price,
			"min_stock_level": variant.MinStockLevel,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update variant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("variant with ID %s: %w", variant.ID, apperrors.ErrNotFound)
	}
	return nil
}

// AddQuantity atomically increments a variant's stock quantity.
func (r *GORMVariantRepository) AddQuantity(id string, quantity int) error {
	res := r.db.Model(&models.Variant{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if res.Error != nil {
		return fmt.Errorf("failed to add stock to variant %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("variant with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// RemoveQuantity atomically decrements a variant's stock quantity. The
// guard predicate makes the decrement fail rather than go negative under
// concurrent mutations; it returns false when the guard rejects it.
func (r *GORMVariantRepository) RemoveQuantity(id string, quantity int) (bool, error) {
	res := r.db.Model(&models.Variant{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return false, fmt.Errorf("failed to remove stock from variant %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete deletes a variant by its ID.
func (r *GORMVariantRepository) Delete(id string) error {
	res := r.db.Delete(&models.Variant{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete variant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("variant with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteByItemID deletes all variants belonging to an item.
func (r *GORMVariantRepository) DeleteByItemID(itemID string) error {
	if err := r.db.Delete(&models.Variant{}, "item_id = ?", itemID).Error; err != nil {
		return fmt.Errorf("failed to delete variants for item %s: %w", itemID, err)
	}
	return nil
}
