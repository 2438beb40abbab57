package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// ExportService reads and manages export records. Creation always goes
// through the AllocationExecutor; an export is the durable trace of a
// completed allocation plan, never hand-assembled.
type ExportService struct {
	scope    TransactionScope
	executor *AllocationExecutor
}

// NewExportService creates a new ExportService
func NewExportService(scope TransactionScope, executor *AllocationExecutor) *ExportService {
	return &ExportService{
		scope:    scope,
		executor: executor,
	}
}

// Create consumes stock for the requested items (delegates to the executor)
func (s *ExportService) Create(ctx context.Context, req CreateExportRequest) (*ExportResponse, error) {
	return s.executor.Execute(ctx, req)
}

// GetByID returns one export with its items
func (s *ExportService) GetByID(ctx context.Context, id uuid.UUID) (*ExportResponse, error) {
	var response *ExportResponse
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exp, err := repos.Exports().FindByID(ctx, id)
		if err != nil {
			return err
		}
		r := ToExportResponse(exp)
		response = &r
		return nil
	})
	return response, err
}

// List returns active exports matching the filter
func (s *ExportService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ExportResponse], error) {
	var page shared.Paginated[ExportResponse]
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exports, err := repos.Exports().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		total, err := repos.Exports().Count(ctx, filter)
		if err != nil {
			return err
		}
		items := make([]ExportResponse, 0, len(exports))
		for idx := range exports {
			items = append(items, ToExportResponse(&exports[idx]))
		}
		page = shared.NewPaginated(items, total, filter.Page, filter.PageSize)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete soft-deletes an export record. The stock deducted by the export is
// not returned to the batches; deletion only hides the record.
func (s *ExportService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exp, err := repos.Exports().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := exp.MarkDeleted(); err != nil {
			return err
		}
		return repos.Exports().Save(ctx, exp)
	})
}

// Restore reverses a soft delete of an export record
func (s *ExportService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		exp, err := repos.Exports().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := exp.Restore(); err != nil {
			return err
		}
		return repos.Exports().Save(ctx, exp)
	})
}
