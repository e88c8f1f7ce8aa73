package services_test

import (
	"time"

	"warehouse/internal/models"
	"warehouse/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll() ([]models.Item, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(id string) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) SearchByName(name string) ([]models.Item, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsByName(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockVariantRepository is a mock implementation of repositories.VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) GetByID(id string) (*models.Variant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantRepository) GetBySKU(sku string) (*models.Variant, error) {
	args := m.Called(sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantRepository) GetByItemID(itemID string) ([]models.Variant, error) {
	args := m.Called(itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByItemIDAndAttributes(itemID, size, color, material string) (*models.Variant, error) {
	args := m.Called(itemID, size, color, material)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Variant), args.Error(1)
}

func (m *MockVariantRepository) ExistsBySKU(sku string) (bool, error) {
	args := m.Called(sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariantRepository) FindLowStock() ([]models.Variant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindOutOfStock() ([]models.Variant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindInStock() ([]models.Variant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Variant), args.Error(1)
}

func (m *MockVariantRepository) Create(variant *models.Variant) error {
	args := m.Called(variant)
	return args.Error(0)
}

func (m *MockVariantRepository) Update(variant *models.Variant) error {
	args := m.Called(variant)
	return args.Error(0)
}

func (m *MockVariantRepository) AddQuantity(id string, quantity int) error {
	args := m.Called(id, quantity)
	return args.Error(0)
}

func (m *MockVariantRepository) RemoveQuantity(id string, quantity int) (bool, error) {
	args := m.Called(id, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariantRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVariantRepository) DeleteByItemID(itemID string) error {
	args := m.Called(itemID)
	return args.Error(0)
}

// MockMovementRepository is a mock implementation of repositories.MovementRepository
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) Create(movement *models.StockMovement) error {
	args := m.Called(movement)
	return args.Error(0)
}

func (m *MockMovementRepository) GetByVariantID(variantID string) ([]models.StockMovement, error) {
	args := m.Called(variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) GetByVariantIDAndDateRange(variantID string, from, to time.Time) ([]models.StockMovement, error) {
	args := m.Called(variantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockMovement), args.Error(1)
}

func (m *MockMovementRepository) TotalIn(variantID string) (int, error) {
	args := m.Called(variantID)
	return args.Int(0), args.Error(1)
}

func (m *MockMovementRepository) TotalOut(variantID string) (int, error) {
	args := m.Called(variantID)
	return args.Int(0), args.Error(1)
}

func (m *MockMovementRepository) DeleteByVariantID(variantID string) error {
	args := m.Called(variantID)
	return args.Error(0)
}

func (m *MockMovementRepository) DeleteByItemID(itemID string) error {
	args := m.Called(itemID)
	return args.Error(0)
}

// fakeUnitOfWork runs the unit-of-work function directly against the
// given mock repositories, without any transaction.
type fakeUnitOfWork struct {
	repos repositories.Repos
}

func (u *fakeUnitOfWork) Execute(fn func(repositories.Repos) error) error {
	return fn(u.repos)
}

// MockMovementPublisher is a mock implementation of services.MovementPublisher
type MockMovementPublisher struct {
	mock.Mock
}

func (m *MockMovementPublisher) PublishStockMovement(event map[string]interface{}) error {
	args := m.Called(event)
	return args.Error(0)
}
