package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/partner"
	"github.com/resto/backend/internal/domain/shared"
)

// ImportService creates and manages stock-in records
type ImportService struct {
	scope        TransactionScope
	supplierRepo partner.SupplierRepository
	publisher    shared.EventPublisher
}

// NewImportService creates a new ImportService
func NewImportService(scope TransactionScope, supplierRepo partner.SupplierRepository) *ImportService {
	return &ImportService{
		scope:        scope,
		supplierRepo: supplierRepo,
	}
}

// SetEventPublisher sets the publisher for post-commit domain events
func (s *ImportService) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// Create persists an import and all of its batches in one transaction.
// Each batch starts with remaining quantity equal to its quantity and
// status AVAILABLE; one bad batch rolls back the whole import.
func (s *ImportService) Create(ctx context.Context, req CreateImportRequest) (*ImportResponse, error) {
	specs, err := toBatchSpecs(req.Batches)
	if err != nil {
		return nil, err
	}
	if _, err := s.supplierRepo.FindActiveByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	imp, err := inventory.NewImport(req.SupplierID, req.CreatedBy, req.Note, specs)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, spec := range specs {
			if _, err := repos.Ingredients().FindActiveByID(ctx, spec.IngredientID); err != nil {
				return err
			}
		}
		return repos.Imports().Save(ctx, imp)
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, imp.PendingEvents()...)
		imp.ClearEvents()
	}

	response := ToImportResponse(imp)
	return &response, nil
}

// GetByID returns one import with its batches
func (s *ImportService) GetByID(ctx context.Context, id uuid.UUID) (*ImportResponse, error) {
	var response *ImportResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		imp, err := repos.Imports().FindByID(ctx, id)
		if err != nil {
			return err
		}
		r := ToImportResponse(imp)
		response = &r
		return nil
	})
	return response, err
}

// List returns active imports matching the filter
func (s *ImportService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ImportResponse], error) {
	var page shared.Paginated[ImportResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		imports, err := repos.Imports().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.Imports().Count(ctx, filter)
		if err != nil {
			return err
		}
		items := make([]ImportResponse, 0, len(imports))
		for idx := range imports {
			items = append(items, ToImportResponse(&imports[idx]))
		}
		page = shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete soft-deletes an import, cascading the tombstone to its batches
func (s *ImportService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		imp, err := repos.Imports().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := imp.SoftDelete(); err != nil {
			return err
		}
		return repos.Imports().Save(ctx, imp)
	})
}

// Restore reverses a soft delete. Restoring a live import is rejected.
func (s *ImportService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		imp, err := repos.Imports().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := imp.RestoreWithBatches(); err != nil {
			return err
		}
		return repos.Imports().Save(ctx, imp)
	})
}

// toBatchSpecs parses and validates the request's batch specs before any
// transaction starts
func toBatchSpecs(reqs []BatchSpecRequest) ([]inventory.BatchSpec, error) {
	if len(reqs) == 0 {
		return nil, shared.NewDomainError("EMPTY_IMPORT", "Import requires at least one batch")
	}
	specs := make([]inventory.BatchSpec, 0, len(reqs))
	for _, r := range reqs {
		expiry, err := time.Parse("2006-01-02", r.ExpiryDate)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_EXPIRY", "Expiry date must be YYYY-MM-DD: "+r.ExpiryDate)
		}
		specs = append(specs, inventory.BatchSpec{
			IngredientID: r.IngredientID,
			Quantity:     r.Quantity,
			ExpiryDate:   expiry,
			UnitPrice:    r.UnitPrice,
		})
	}
	return specs, nil
}
