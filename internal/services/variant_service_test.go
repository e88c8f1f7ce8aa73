package services_test

import (
	"fmt"
	"testing"

	"warehouse/internal/apperrors"
	"warehouse/internal/models"
	"warehouse/internal/repositories"
	"warehouse/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newVariantFixture() (*services.VariantService, *MockVariantRepository, *MockItemRepository, *MockMovementRepository) {
	variantRepo := new(MockVariantRepository)
	itemRepo := new(MockItemRepository)
	movementRepo := new(MockMovementRepository)
	uow := &fakeUnitOfWork{repos: repositories.Repos{
		Items:     itemRepo,
		Variants:  variantRepo,
		Movements: movementRepo,
	}}
	service := services.NewVariantService(variantRepo, itemRepo, uow, nil, nil)
	return service, variantRepo, itemRepo, movementRepo
}

func TestVariantService_CreateVariant(t *testing.T) {
	service, variantRepo, itemRepo, movementRepo := newVariantFixture()

	variant := &models.Variant{
		ItemID:        "item-1",
		SKU:           "TSHIRT-M-RED",
		Size:          "M",
		Color:         "Red",
		StockQuantity: 10,
		MinStockLevel: 5,
	}

	variantRepo.On("ExistsBySKU", "TSHIRT-M-RED").Return(false, nil).Once()
	itemRepo.On("GetByID", "item-1").Return(&models.Item{ID: "item-1"}, nil).Once()
	variantRepo.On("FindByItemIDAndAttributes", "item-1", "M", "Red", "").Return(nil, nil).Once()
	variantRepo.On("Create", variant).Return(nil).Once()
	movementRepo.On("Create", mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.MovementType == models.MovementIn && m.Quantity == 10 && m.Reason == "Initial stock"
	})).Return(nil).Once()

	created, err := service.CreateVariant(variant)

	assert.NoError(t, err)
	assert.Equal(t, variant, created)
	variantRepo.AssertExpectations(t)
	movementRepo.AssertExpectations(t)
}

func TestVariantService_CreateVariant_NoInitialMovementForZeroStock(t *testing.T) {
	service, variantRepo, itemRepo, movementRepo := newVariantFixture()

	variant := &models.Variant{ItemID: "item-1", SKU: "TSHIRT-L-RED", Size: "L", Color: "Red"}

	variantRepo.On("ExistsBySKU", "TSHIRT-L-RED").Return(false, nil).Once()
	itemRepo.On("GetByID", "item-1").Return(&models.Item{ID: "item-1"}, nil).Once()
	variantRepo.On("FindByItemIDAndAttributes", "item-1", "L", "Red", "").Return(nil, nil).Once()
	variantRepo.On("Create", variant).Return(nil).Once()

	_, err := service.CreateVariant(variant)

	assert.NoError(t, err)
	movementRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestVariantService_CreateVariant_DuplicateSKU(t *testing.T) {
	service, variantRepo, _, _ := newVariantFixture()

	variantRepo.On("ExistsBySKU", "TAKEN").Return(true, nil).Once()

	created, err := service.CreateVariant(&models.Variant{ItemID: "item-1", SKU: "TAKEN"})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateResource)
	variantRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestVariantService_CreateVariant_DuplicateAttributes(t *testing.T) {
	service, variantRepo, itemRepo, _ := newVariantFixture()

	variantRepo.On("ExistsBySKU", "TSHIRT-M-RED-2").Return(false, nil).Once()
	itemRepo.On("GetByID", "item-1").Return(&models.Item{ID: "item-1"}, nil).Once()
	variantRepo.On("FindByItemIDAndAttributes", "item-1", "M", "Red", "Cotton").
		Return(&models.Variant{ID: "var-existing"}, nil).Once()

	created, err := service.CreateVariant(&models.Variant{
		ItemID: "item-1", SKU: "TSHIRT-M-RED-2", Size: "M", Color: "Red", Material: "Cotton",
	})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateResource)
	variantRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestVariantService_CreateVariant_UnknownItem(t *testing.T) {
	service, variantRepo, itemRepo, _ := newVariantFixture()

	variantRepo.On("ExistsBySKU", "TSHIRT-M-RED").Return(false, nil).Once()
	itemRepo.On("GetByID", "missing").
		Return(nil, fmt.Errorf("item with ID missing: %w", apperrors.ErrNotFound)).Once()

	created, err := service.CreateVariant(&models.Variant{ItemID: "missing", SKU: "TSHIRT-M-RED"})

	assert.Nil(t, created)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVariantService_UpdateVariant_NeverTouchesStock(t *testing.T) {
	service, variantRepo, _, _ := newVariantFixture()

	existing := &models.Variant{
		ID:            "var-1",
		SKU:           "TSHIRT-M-RED",
		Size:          "M",
		StockQuantity: 17,
		MinStockLevel: 5,
	}
	variantRepo.On("GetByID", "var-1").Return(existing, nil).Once()
	variantRepo.On("Update", mock.AnythingOfType("*models.Variant")).Return(nil).Once()

	updated, err := service.UpdateVariant("var-1", &models.Variant{
		SKU:           "TSHIRT-M-RED",
		Size:          "L",
		Price:         decimal.NewFromFloat(19.99),
		MinStockLevel: 8,
		StockQuantity: 999,
	})

	assert.NoError(t, err)
	assert.Equal(t, "L", updated.Size)
	assert.Equal(t, 8, updated.MinStockLevel)
	// Stock is only ever changed through the accounting operations.
	assert.Equal(t, 17, updated.StockQuantity)
	// Unchanged SKU skips the duplicate check.
	variantRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything)
}

func TestVariantService_UpdateVariant_SKURenameCollision(t *testing.T) {
	service, variantRepo, _, _ := newVariantFixture()

	existing := &models.Variant{ID: "var-1", SKU: "OLD-SKU"}
	variantRepo.On("GetByID", "var-1").Return(existing, nil).Once()
	variantRepo.On("ExistsBySKU", "NEW-SKU").Return(true, nil).Once()

	updated, err := service.UpdateVariant("var-1", &models.Variant{SKU: "NEW-SKU"})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateResource)
	variantRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestVariantService_DeleteVariant_RemovesLedgerFirst(t *testing.T) {
	service, variantRepo, _, movementRepo := newVariantFixture()

	variantRepo.On("GetByID", "var-1").Return(&models.Variant{ID: "var-1"}, nil).Once()
	movementRepo.On("DeleteByVariantID", "var-1").Return(nil).Once()
	variantRepo.On("Delete", "var-1").Return(nil).Once()

	err := service.DeleteVariant("var-1")

	assert.NoError(t, err)
	variantRepo.AssertExpectations(t)
	movementRepo.AssertExpectations(t)
}

func TestVariantService_DeleteVariant_NotFound(t *testing.T) {
	service, variantRepo, _, movementRepo := newVariantFixture()

	variantRepo.On("GetByID", "missing").
		Return(nil, fmt.Errorf("variant with ID missing: %w", apperrors.ErrNotFound)).Once()

	err := service.DeleteVariant("missing")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	movementRepo.AssertNotCalled(t, "DeleteByVariantID", mock.Anything)
	variantRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestVariantService_StockReportLists(t *testing.T) {
	service, variantRepo, _, _ := newVariantFixture()

	low := []models.Variant{{ID: "var-low", StockQuantity: 3, MinStockLevel: 5}}
	out := []models.Variant{{ID: "var-out", StockQuantity: 0}}
	in := []models.Variant{{ID: "var-low", StockQuantity: 3}, {ID: "var-full", StockQuantity: 50}}

	variantRepo.On("FindLowStock").Return(low, nil).Once()
	variantRepo.On("FindOutOfStock").Return(out, nil).Once()
	variantRepo.On("FindInStock").Return(in, nil).Once()

	gotLow, err := service.GetLowStockVariants()
	assert.NoError(t, err)
	assert.Equal(t, low, gotLow)

	gotOut, err := service.GetOutOfStockVariants()
	assert.NoError(t, err)
	assert.Equal(t, out, gotOut)

	gotIn, err := service.GetInStockVariants()
	assert.NoError(t, err)
	assert.Len(t, gotIn, 2)
}

func TestVariantService_ReserveStock(t *testing.T) {
	service, variantRepo, _, movementRepo := newVariantFixture()

	variant := &models.Variant{ID: "var-1", SKU: "SKU-1", StockQuantity: 10}
	variantRepo.On("GetByID", "var-1").Return(variant, nil).Once()
	variantRepo.On("RemoveQuantity", "var-1", 4).Return(true, nil).Once()
	movementRepo.On("Create", mock.MatchedBy(func(m *models.StockMovement) bool {
		return m.MovementType == models.MovementOut && m.Quantity == 4 && m.Reason == "Sale reservation"
	})).Return(nil).Once()

	err := service.ReserveStock("var-1", 4)

	assert.NoError(t, err)
	variantRepo.AssertExpectations(t)
	movementRepo.AssertExpectations(t)
}

func TestVariantService_ReserveStock_Insufficient(t *testing.T) {
	service, variantRepo, _, movementRepo := newVariantFixture()

	variant := &models.Variant{ID: "var-1", SKU: "SKU-1", StockQuantity: 2}
	variantRepo.On("GetByID", "var-1").Return(variant, nil).Once()

	err := service.ReserveStock("var-1", 4)

	assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "SKU-1")
	assert.Contains(t, err.Error(), "Available: 2")
	assert.Contains(t, err.Error(), "Requested: 4")
	variantRepo.AssertNotCalled(t, "RemoveQuantity", mock.Anything, mock.Anything)
	movementRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestVariantService_ReserveStock_NonPositiveQuantity(t *testing.T) {
	service, variantRepo, _, _ := newVariantFixture()

	for _, quantity := range []int{0, -1} {
		err := service.ReserveStock("var-1", quantity)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	}
	variantRepo.AssertNotCalled(t, "GetByID", mock.Anything)
}
