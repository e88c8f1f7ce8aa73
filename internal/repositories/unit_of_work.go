package repositories

import (
	"gorm.io/gorm"
)

// Repos bundles the repositories participating in a transaction.
type Repos struct {
	Items     ItemRepository
	Variants  VariantRepository
	Movements MovementRepository
}

// UnitOfWork runs a function against transaction-scoped repositories.
// Everything done inside fn commits or rolls back as one atomic unit;
// services use it so a stock-quantity change and its ledger entry can
// never persist without each other.
type UnitOfWork interface {
	Execute(fn func(Repos) error) error
}

// GormUnitOfWork is a UnitOfWork backed by GORM transactions.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new instance of GormUnitOfWork.
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{
		db: db,
	}
}

// Execute runs fn inside a database transaction, handing it repositories
// bound to that transaction.
func (u *GormUnitOfWork) Execute(fn func(Repos) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		return fn(Repos{
			Items:     NewGORMItemRepository(tx),
			Variants:  NewGORMVariantRepository(tx),
			Movements: NewGORMMovementRepository(tx),
		})
	})
}
