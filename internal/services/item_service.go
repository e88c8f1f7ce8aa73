package services

import (
	"fmt"
	"log"

	"warehouse/internal/apperrors"
	"warehouse/internal/models"
	"warehouse/internal/repositories"
	"warehouse/pkg/cache"
)

// ItemService handles business logic for items.
type ItemService struct {
	itemRepo repositories.ItemRepository
	uow      repositories.UnitOfWork
	cache    *cache.Cache
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, uow repositories.UnitOfWork, c *cache.Cache) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		uow:      uow,
		cache:    c,
	}
}

// CreateItem creates a new item with no variants.
func (s *ItemService) CreateItem(item *models.Item) (*models.Item, error) {
	log.Printf("Creating new item: %s", item.Name)

	exists, err := s.itemRepo.ExistsByName(item.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("item with name '%s' already exists: %w", item.Name, apperrors.ErrDuplicateResource)
	}

	item.Variants = nil
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}

	log.Printf("Created item with ID: %s", item.ID)
	return item, nil
}

// CreateItemWithVariants creates an item and a batch of variants in one
// transaction. Variant candidates whose SKU is already taken anywhere in
// the system are skipped without failing the batch; every persisted
// variant with initial stock gets an opening IN movement. Returns the
// item reloaded with its surviving variants.
func (s *ItemService) CreateItemWithVariants(item *models.Item) (*models.Item, error) {
	log.Printf("Creating new item with variants: %s", item.Name)

	exists, err := s.itemRepo.ExistsByName(item.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("item with name '%s' already exists: %w", item.Name, apperrors.ErrDuplicateResource)
	}

	candidates := item.Variants
	item.Variants = nil

	err = s.uow.Execute(func(r repositories.Repos) error {
		if err := r.Items.Create(item); err != nil {
			return err
		}

		for i := range candidates {
			variant := candidates[i]
			taken, err := r.Variants.ExistsBySKU(variant.SKU)
			if err != nil {
				return err
			}
			if taken {
				log.Printf("Skipping variant with duplicate SKU %s for item %s", variant.SKU, item.Name)
				continue
			}

			variant.ID = ""
			variant.ItemID = item.ID
			if err := r.Variants.Create(&variant); err != nil {
				return err
			}

			if variant.StockQuantity > 0 {
				movement := &models.StockMovement{
					VariantID:    variant.ID,
					MovementType: models.MovementIn,
					Quantity:     variant.StockQuantity,
					Reason:       "Initial stock",
				}
				if err := r.Movements.Create(movement); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Created item with ID: %s", item.ID)
	invalidateStockCaches(s.cache)
	return s.itemRepo.GetByID(item.ID)
}

// GetAllItems retrieves all items with their variants.
func (s *ItemService) GetAllItems() ([]models.Item, error) {
	log.Printf("Fetching all items")
	return s.itemRepo.GetAll()
}

// GetItemByID retrieves a single item with its variants by ID.
func (s *ItemService) GetItemByID(id string) (*models.Item, error) {
	log.Printf("Fetching item by ID: %s", id)
	return s.itemRepo.GetByID(id)
}

// SearchItemsByName retrieves items whose name contains the given
// substring, case-insensitively.
func (s *ItemService) SearchItemsByName(name string) ([]models.Item, error) {
	log.Printf("Searching items by name: %s", name)
	return s.itemRepo.SearchByName(name)
}

// UpdateItem updates an item's name, description, and base price. Renames
// colliding with another item's name are rejected. Variants and stock are
// never touched through this path.
func (s *ItemService) UpdateItem(id string, updated *models.Item) (*models.Item, error) {
	log.Printf("Updating item with ID: %s", id)

	existing, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if existing.Name != updated.Name {
		exists, err := s.itemRepo.ExistsByName(updated.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("item with name '%s' already exists: %w", updated.Name, apperrors.ErrDuplicateResource)
		}
	}

	existing.Name = updated.Name
	existing.Description = updated.Description
	existing.BasePrice = updated.BasePrice

	if err := s.itemRepo.Update(existing); err != nil {
		return nil, err
	}

	log.Printf("Updated item with ID: %s", existing.ID)
	return existing, nil
}

// DeleteItem deletes an item, its variants, and their movement ledgers in
// one transaction.
func (s *ItemService) DeleteItem(id string) error {
	log.Printf("Deleting item with ID: %s", id)

	err := s.uow.Execute(func(r repositories.Repos) error {
		if _, err := r.Items.GetByID(id); err != nil {
			return err
		}
		if err := r.Movements.DeleteByItemID(id); err != nil {
			return err
		}
		if err := r.Variants.DeleteByItemID(id); err != nil {
			return err
		}
		return r.Items.Delete(id)
	})
	if err != nil {
		return err
	}

	log.Printf("Deleted item with ID: %s", id)
	invalidateStockCaches(s.cache)
	return nil
}
