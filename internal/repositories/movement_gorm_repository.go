package repositories

import (
	"fmt"
	"time"

	"warehouse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMMovementRepository is a GORM implementation of MovementRepository.
type GORMMovementRepository struct {
	db *gorm.DB
}

// NewGORMMovementRepository creates a new instance of GORMMovementRepository.
func NewGORMMovementRepository(db *gorm.DB) *GORMMovementRepository {
	return &GORMMovementRepository{
		db: db,
	}
}

// Create appends a movement to the ledger.
func (r *GORMMovementRepository) Create(movement *models.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if err := r.db.Create(movement).Error; err != nil {
		return fmt.Errorf("failed to create stock movement: %w", err)
	}
	return nil
}

// GetByVariantID retrieves all movements for a variant, newest first.
func (r *GORMMovementRepository) GetByVariantID(variantID string) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	if err := r.db.Where("variant_id = ?", variantID).Order("created_at DESC").Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to get movements for variant %s: %w", variantID, err)
	}
	return movements, nil
}

// GetByVariantIDAndDateRange retrieves a variant's movements within the
// given window, newest first.
func (r *GORMMovementRepository) GetByVariantIDAndDateRange(variantID string, from, to time.Time) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := r.db.Where("variant_id = ? AND created_at BETWEEN ? AND ?", variantID, from, to).
		Order("created_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get movements for variant %s in range: %w", variantID, err)
	}
	return movements, nil
}

// TotalIn sums the quantities of all IN movements for a variant.
func (r *GORMMovementRepository) TotalIn(variantID string) (int, error) {
	return r.sumByType(variantID, models.MovementIn)
}

// TotalOut sums the quantities of all OUT movements for a variant.
func (r *GORMMovementRepository) TotalOut(variantID string) (int, error) {
	return r.sumByType(variantID, models.MovementOut)
}

func (r *GORMMovementRepository) sumByType(variantID string, movementType models.MovementType) (int, error) {
	var total int64
	err := r.db.Model(&models.StockMovement{}).
		Where("variant_id = ? AND movement_type = ?", variantID, movementType).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum %s movements for variant %s: %w", movementType, variantID, err)
	}
	return int(total), nil
}

// DeleteByVariantID removes the ledger of a variant being deleted.
func (r *GORMMovementRepository) DeleteByVariantID(variantID string) error {
	if err := r.db.Delete(&models.StockMovement{}, "variant_id = ?", variantID).Error; err != nil {
		return fmt.Errorf("failed to delete movements for variant %s: %w", variantID, err)
	}
	return nil
}

// DeleteByItemID removes the ledgers of all variants owned by an item
// being deleted.
func (r *GORMMovementRepository) DeleteByItemID(itemID string) error {
	sub := r.db.Model(&models.Variant{}).Select("id").Where("item_id = ?", itemID)
	if err := r.db.Where("variant_id IN (?)", sub).Delete(&models.StockMovement{}).Error; err != nil {
		return fmt.Errorf("failed to delete movements for item %s: %w", itemID, err)
	}
	return nil
}
