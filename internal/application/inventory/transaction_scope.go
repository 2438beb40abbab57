package inventory

import (
	"context"

	"github.com/resto/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within one transaction. All repositories returned share the same
// underlying database transaction, so an allocation plan computed from
// Batches() cannot race with a concurrent export decrementing the same rows.
type TransactionalRepositories interface {
	// Ingredients returns the ingredient repository scoped to the transaction
	Ingredients() inventory.IngredientRepository
	// Batches returns the batch repository scoped to the transaction
	Batches() inventory.BatchRepository
	// Imports returns the import repository scoped to the transaction
	Imports() inventory.ImportRepository
	// Exports returns the export repository scoped to the transaction
	Exports() inventory.ExportRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for tests and for stores that do not support row locking.
type NoOpTransactionScope struct {
	ingredientRepo inventory.IngredientRepository
	batchRepo      inventory.BatchRepository
	importRepo     inventory.ImportRepository
	exportRepo     inventory.ExportRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	ingredientRepo inventory.IngredientRepository,
	batchRepo inventory.BatchRepository,
	importRepo inventory.ImportRepository,
	exportRepo inventory.ExportRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		ingredientRepo: ingredientRepo,
		batchRepo:      batchRepo,
		importRepo:     importRepo,
		exportRepo:     exportRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Ingredients returns the ingredient repository
func (s *NoOpTransactionScope) Ingredients() inventory.IngredientRepository {
	return s.ingredientRepo
}

// Batches returns the batch repository
func (s *NoOpTransactionScope) Batches() inventory.BatchRepository {
	return s.batchRepo
}

// Imports returns the import repository
func (s *NoOpTransactionScope) Imports() inventory.ImportRepository {
	return s.importRepo
}

// Exports returns the export repository
func (s *NoOpTransactionScope) Exports() inventory.ExportRepository {
	return s.exportRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
