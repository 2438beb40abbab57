package persistence

import (
	"context"

	appinv "github.com/resto/backend/internal/application/inventory"
	"github.com/resto/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to the inventory
// repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Ingredients returns the ingredient repository scoped to the current transaction
func (r *gormTransactionalRepositories) Ingredients() inventory.IngredientRepository {
	return NewGormIngredientRepository(r.tx)
}

// Batches returns the batch repository scoped to the current transaction.
// FindEligible and FindByIDForUpdate lock their rows until the transaction
// commits, which is what keeps concurrent allocations from double-spending
// the same batch.
func (r *gormTransactionalRepositories) Batches() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

// Imports returns the import repository scoped to the current transaction
func (r *gormTransactionalRepositories) Imports() inventory.ImportRepository {
	return NewGormImportRepository(r.tx)
}

// Exports returns the export repository scoped to the current transaction
func (r *gormTransactionalRepositories) Exports() inventory.ExportRepository {
	return NewGormExportRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
