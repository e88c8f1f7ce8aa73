package services

import (
	"fmt"
	"log"
	"time"

	"warehouse/internal/apperrors"
	"warehouse/internal/models"
	"warehouse/internal/repositories"
	"warehouse/pkg/cache"
)

// MovementPublisher publishes stock movement events to the message broker.
type MovementPublisher interface {
	PublishStockMovement(event map[string]interface{}) error
}

// Cache keys for the stock report lists. Every stock mutation invalidates
// all three, since a single quantity change can move a variant between
// the lists.
const (
	lowStockCacheKey   = "variants:low-stock"
	outOfStockCacheKey = "variants:out-of-stock"
	inStockCacheKey    = "variants:in-stock"
	stockCacheTTL      = 5 * time.Minute
)

// InventoryService handles the stock accounting operations. Every
// mutation runs load -> validate -> compute -> persist variant -> append
// movement inside one unit of work, so the variant's stock quantity and
// its movement ledger can never diverge.
type InventoryService struct {
	variantRepo  repositories.VariantRepository
	movementRepo repositories.MovementRepository
	uow          repositories.UnitOfWork
	mq           MovementPublisher
	cache        *cache.Cache
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(variantRepo repositories.VariantRepository, movementRepo repositories.MovementRepository, uow repositories.UnitOfWork, mq MovementPublisher, c *cache.Cache) *InventoryService {
	return &InventoryService{
		variantRepo:  variantRepo,
		movementRepo: movementRepo,
		uow:          uow,
		mq:           mq,
		cache:        c,
	}
}

// AddStock increases a variant's stock by the given positive quantity and
// appends an IN movement. Returns the created movement.
func (s *InventoryService) AddStock(variantID string, quantity int, reason, reference string) (*models.StockMovement, error) {
	log.Printf("Adding stock for variant ID: %s", variantID)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidArgument)
	}
	if reason == "" {
		reason = "Stock addition"
	}

	var movement *models.StockMovement
	err := s.uow.Execute(func(r repositories.Repos) error {
		variant, err := r.Variants.GetByID(variantID)
		if err != nil {
			return err
		}

		if err := r.Variants.AddQuantity(variant.ID, quantity); err != nil {
			return err
		}

		movement = &models.StockMovement{
			VariantID:    variant.ID,
			MovementType: models.MovementIn,
			Quantity:     quantity,
			Reason:       reason,
			Reference:    reference,
		}
		return r.Movements.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Added %d units to variant ID: %s", quantity, variantID)
	s.afterMovement(movement)
	return movement, nil
}

// RemoveStock decreases a variant's stock by the given positive quantity
// and appends an OUT movement. Fails when the variant holds less stock
// than requested. Returns the created movement.
func (s *InventoryService) RemoveStock(variantID string, quantity int, reason, reference string) (*models.StockMovement, error) {
	log.Printf("Removing stock for variant ID: %s", variantID)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidArgument)
	}
	if reason == "" {
		reason = "Stock removal"
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
			// Guard rejected the decrement: a concurrent mutation drained
			// the stock between the load and the update.
			return insufficientStockError(variant, quantity)
		}

		movement = &models.StockMovement{
			VariantID:    variant.ID,
			MovementType: models.MovementOut,
			Quantity:     quantity,
			Reason:       reason,
			Reference:    reference,
		}
		return r.Movements.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Removed %d units from variant ID: %s", quantity, variantID)
	s.afterMovement(movement)
	return movement, nil
}

// AdjustStock applies a signed correction to a variant's stock (zero is
// permitted) and appends an ADJUSTMENT movement carrying the raw signed
// quantity. Fails when the adjustment would drive the stock negative.
// Returns the created movement.
func (s *InventoryService) AdjustStock(variantID string, quantity int, reason, reference string) (*models.StockMovement, error) {
	log.Printf("Adjusting stock for variant ID: %s", variantID)

	if reason == "" {
		reason = "Stock adjustment"
	}

	var movement *models.StockMovement
	err := s.uow.Execute(func(r repositories.Repos) error {
		variant, err := r.Variants.GetByID(variantID)
		if err != nil {
			return err
		}

		newQuantity := variant.StockQuantity + quantity
		if newQuantity < 0 {
			return fmt.Errorf("%w: stock cannot be negative, adjustment would result in %d", apperrors.ErrInvalidStockState, newQuantity)
		}

		if quantity >= 0 {
			if err := r.Variants.AddQuantity(variant.ID, quantity); err != nil {
				return err
			}
		} else {
			ok, err := r.Variants.RemoveQuantity(variant.ID, -quantity)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: stock cannot be negative, adjustment of %d rejected", apperrors.ErrInvalidStockState, quantity)
			}
		}

		movement = &models.StockMovement{
			VariantID:    variant.ID,
			MovementType: models.MovementAdjustment,
			Quantity:     quantity,
			Reason:       reason,
			Reference:    reference,
		}
		return r.Movements.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Adjusted stock by %d units for variant ID: %s", quantity, variantID)
	s.afterMovement(movement)
	return movement, nil
}

// GetStockMovementHistory returns all movements for a variant, newest
// first.
func (s *InventoryService) GetStockMovementHistory(variantID string) ([]models.StockMovement, error) {
	log.Printf("Fetching stock movement history for variant ID: %s", variantID)
	if _, err := s.variantRepo.GetByID(variantID); err != nil {
		return nil, err
	}
	return s.movementRepo.GetByVariantID(variantID)
}

// GetStockMovementHistoryRange returns a variant's movements within the
// given time window, newest first.
func (s *InventoryService) GetStockMovementHistoryRange(variantID string, from, to time.Time) ([]models.StockMovement, error) {
	log.Printf("Fetching stock movement history for variant ID: %s between %s and %s", variantID, from, to)
	if _, err := s.variantRepo.GetByID(variantID); err != nil {
		return nil, err
	}
	return s.movementRepo.GetByVariantIDAndDateRange(variantID, from, to)
}

// GetCurrentStockLevel returns a variant's current stock quantity.
func (s *InventoryService) GetCurrentStockLevel(variantID string) (int, error) {
	variant, err := s.variantRepo.GetByID(variantID)
	if err != nil {
		return 0, err
	}
	return variant.StockQuantity, nil
}

// GetTotalStockIn returns the sum of all IN movement quantities for a
// variant, zero if it has none.
func (s *InventoryService) GetTotalStockIn(variantID string) (int, error) {
	if _, err := s.variantRepo.GetByID(variantID); err != nil {
		return 0, err
	}
	return s.movementRepo.TotalIn(variantID)
}

// GetTotalStockOut returns the sum of all OUT movement quantities for a
// variant, zero if it has none.
func (s *InventoryService) GetTotalStockOut(variantID string) (int, error) {
	if _, err := s.variantRepo.GetByID(variantID); err != nil {
		return 0, err
	}
	return s.movementRepo.TotalOut(variantID)
}

// afterMovement runs the post-commit side effects of a stock mutation:
// event publication and cache invalidation. Both are best-effort.
func (s *InventoryService) afterMovement(movement *models.StockMovement) {
	publishMovementEvent(s.mq, movement)
	invalidateStockCaches(s.cache)
}

func insufficientStockError(variant *models.Variant, requested int) error {
	return fmt.Errorf("%w for variant %s. Available: %d, Requested: %d",
		apperrors.ErrInsufficientStock, variant.SKU, variant.StockQuantity, requested)
}

// publishMovementEvent publishes a ledger entry to the broker. A publish
// failure is logged and swallowed: the movement is already committed and
// the event stream is advisory.
func publishMovementEvent(mq MovementPublisher, movement *models.StockMovement) {
	if mq == nil || movement == nil {
		return
	}
	event := map[string]interface{}{
		"movementID":   movement.ID,
		"variantID":    movement.VariantID,
		"movementType": movement.MovementType,
		"quantity":     movement.Quantity,
		"reason":       movement.Reason,
		"reference":    movement.Reference,
	}
	if err := mq.PublishStockMovement(event); err != nil {
		log.Printf("Warning: Failed to publish stock movement event for variant %s: %v", movement.VariantID, err)
	}
}

func invalidateStockCaches(c *cache.Cache) {
	c.Invalidate(lowStockCacheKey, outOfStockCacheKey, inStockCacheKey)
}
