package repositories

import (
	"errors"
	"fmt"

	"warehouse/internal/apperrors"
	"warehouse/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// GetAll retrieves all items with their variants from the database.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Preload("Variants").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByID retrieves a single item with its variants by ID.
func (r *GORMItemRepository) GetByID(id string) (*models.Item, error) {
	var item models.Item
	if err := r.db.Preload("Variants").First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("item with ID %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", id, err)
	}
	return &item, nil
}

// SearchByName retrieves items whose name contains the given substring,
// case-insensitively.
func (r *GORMItemRepository) SearchByName(name string) ([]models.Item, error) {
	var items []models.Item
	pattern := "%" + name + "%"
	if err := r.db.Preload("Variants").Where("LOWER(name) LIKE LOWER(?)", pattern).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to search items by name %q: %w", name, err)
	}
	return items, nil
}

// ExistsByName reports whether an item with the given name exists.
func (r *GORMItemRepository) ExistsByName(name string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Item{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check item name %q: %w", name, err)
	}
	return count > 0, nil
}

// Create creates a new item in the database.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update updates an existing item's own columns. Variants are never
// written through this path.
func (r *GORMItemRepository) Update(item *models.Item) error {
	res := r.db.Model(item).
		Select("name", "description", "base_price").
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"base_price":  item.BasePrice,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", item.ID, apperrors.ErrNotFound)
	}
	return nil
}

// Delete deletes an item by its ID.
func (r *GORMItemRepository) Delete(id string) error {
	res := r.db.Delete(&models.Item{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("item with ID %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
