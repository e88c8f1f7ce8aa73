package services

import (
	"fmt"
	"log"

	"warehouse/internal/apperrors"
	"warehouse/internal/models"
	"warehouse/internal/repositories"
	"warehouse/pkg/cache"
)

// VariantService handles business logic for variants: lifecycle, stock
// report lists, and sale reservations.
type VariantService struct {
	variantRepo repositories.VariantRepository
	itemRepo    repositories.ItemRepository
	uow         repositories.UnitOfWork
	mq          MovementPublisher
	cache       *cache.Cache
}

// NewVariantService creates a new VariantService.
func NewVariantService(variantRepo repositories.VariantRepository, itemRepo repositories.ItemRepository, uow repositories.UnitOfWork, mq MovementPublisher, c *cache.Cache) *VariantService {
	return &VariantService{
		variantRepo: variantRepo,
		itemRepo:    itemRepo,
		uow:         uow,
		mq:          mq,
		cache:       c,
	}
}

// CreateVariant creates a new variant for an existing item. When the
// variant starts with stock, the opening balance is recorded as an IN
// movement so the ledger reproduces the quantity from day one.
func (s *VariantService) CreateVariant(variant *models.Variant) (*models.Variant, error) {
	log.Printf("Creating new variant with SKU: %s", variant.SKU)

	exists, err := s.variantRepo.ExistsBySKU(variant.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("variant with SKU '%s' already exists: %w", variant.SKU, apperrors.ErrDuplicateResource)
	}

	if _, err := s.itemRepo.GetByID(variant.ItemID); err != nil {
		return nil, err
	}

	existing, err := s.variantRepo.FindByItemIDAndAttributes(variant.ItemID, variant.Size, variant.Color, variant.Material)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("variant with these attributes already exists for this item: %w", apperrors.ErrDuplicateResource)
	}

	var movement *models.StockMovement
	err = s.uow.Execute(func(r repositories.Repos) error {
		if err := r.Variants.Create(variant); err != nil {
			return err
		}
		if variant.StockQuantity > 0 {
			movement = &models.StockMovement{
				VariantID:    variant.ID,
				MovementType: models.MovementIn,
				Quantity:     variant.StockQuantity,
				Reason:       "Initial stock",
			}
			return r.Movements.Create(movement)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created variant with ID: %s", variant.ID)
	publishMovementEvent(s.mq, movement)
	invalidateStockCaches(s.cache)
	return variant, nil
}

// GetVariantsByItemID retrieves all variants of an item.
func (s *VariantService) GetVariantsByItemID(itemID string) ([]models.Variant, error) {
	log.Printf("Fetching variants for item ID: %s", itemID)
	return s.variantRepo.GetByItemID(itemID)
}

// GetVariantByID retrieves a single variant by its ID.
func (s *VariantService) GetVariantByID(id string) (*models.Variant, error) {
	log.Printf("Fetching variant by ID: %s", id)
	return s.variantRepo.GetByID(id)
}

// GetVariantBySKU retrieves a single variant by its SKU.
func (s *VariantService) GetVariantBySKU(sku string) (*models.Variant, error) {
	log.Printf("Fetching variant by SKU: %s", sku)
	return s.variantRepo.GetBySKU(sku)
}

// UpdateVariant updates a variant's SKU, attributes, price, and minimum
// stock level. It never touches the stock quantity: stock changes are
// routed exclusively through the inventory accounting operations.
func (s *VariantService) UpdateVariant(id string, updated *models.Variant) (*models.Variant, error) {
	log.Printf("Updating variant with ID: %s", id)

	existing, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if existing.SKU != updated.SKU {
		exists, err := s.variantRepo.ExistsBySKU(updated.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("variant with SKU '%s' already exists: %w", updated.SKU, apperrors.ErrDuplicateResource)
		}
	}

	existing.SKU = updated.SKU
	existing.Size = updated.Size
	existing.Color = updated.Color
	existing.Material = updated.Material
	existing.Price = updated.Price
	existing.MinStockLevel = updated.MinStockLevel

	if err := s.variantRepo.Update(existing); err != nil {
		return nil, err
	}

	log.Printf("Updated variant with ID: %s", existing.ID)
	// A changed min stock level can move the variant in or out of the
	// low-stock list.
	invalidateStockCaches(s.cache)
	return existing, nil
}

// DeleteVariant deletes a variant and its movement ledger in one
// transaction.
func (s *VariantService) DeleteVariant(id string) error {
	log.Printf("Deleting variant with ID: %s", id)

	err := s.uow.Execute(func(r repositories.Repos) error {
		if _, err := r.Variants.GetByID(id); err != nil {
			return err
		}
		if err := r.Movements.DeleteByVariantID(id); err != nil {
			return err
		}
		return r.Variants.Delete(id)
	})
	if err != nil {
		return err
	}

	log.Printf("Deleted variant with ID: %s", id)
	invalidateStockCaches(s.cache)
	return nil
}

// GetLowStockVariants retrieves variants with positive stock at or below
// their minimum stock level.
func (s *VariantService) GetLowStockVariants() ([]models.Variant, error) {
	log.Printf("Fetching low stock variants")
	return s.cachedList(lowStockCacheKey, s.variantRepo.FindLowStock)
}

// GetOutOfStockVariants retrieves variants with zero stock.
func (s *VariantService) GetOutOfStockVariants() ([]models.Variant, error) {
	log.Printf("Fetching out of stock variants")
	return s.cachedList(outOfStockCacheKey, s.variantRepo.FindOutOfStock)
}

// GetInStockVariants retrieves variants with positive stock.
func (s *VariantService) GetInStockVariants() ([]models.Variant, error) {
	log.Printf("Fetching in stock variants")
	return s.cachedList(inStockCacheKey, s.variantRepo.FindInStock)
}

func (s *VariantService) cachedList(key string, load func() ([]models.Variant, error)) ([]models.Variant, error) {
	var variants []models.Variant
	if s.cache.Get(key, &variants) {
		return variants, nil
	}
	variants, err := load()
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, variants)
	return variants, nil
}

// ReserveStock holds inventory against a sale: it decreases the variant's
// stock and records the hold as an OUT movement.
func (s *VariantService) ReserveStock(variantID string, quantity int) error {
	log.Printf("Reserving %d units for variant ID: %s", quantity, variantID)

	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidArgument)
	}

	var movement *models.StockMovement
	err := s.uow.Execute(func(r repositories.Repos) error {
		variant, err := r.Variants.GetByID(variantID)
		if err != nil {
			return err
		}

		if variant.StockQuantity < quantity {
			return insufficientStockError(variant, quantity)
		}

		ok, err := r.Variants.RemoveQuantity(variant.ID, quantity)
		if err != nil {
			return err
		}
		if !ok {
			return insufficientStockError(variant, quantity)
		}

		movement = &models.StockMovement{
			VariantID:    variant.ID,
			MovementType: models.MovementOut,
			Quantity:     quantity,
			Reason:       "Sale reservation",
		}
		return r.Movements.Create(movement)
	})
	if err != nil {
		return err
	}

	log.Printf("Reserved %d units for variant ID: %s", quantity, variantID)
	publishMovementEvent(s.mq, movement)
	invalidateStockCaches(s.cache)
	return nil
}
