package inventory

import (
	"context"
	"time"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationExecutor turns export requests into durable Export records by
// planning FEFO allocations and applying them atomically.
//
// An export spanning several ingredients either consumes stock for all of
// them or for none: planning and application happen inside one transaction,
// and any infeasible item or stale batch rolls the whole thing back.
type AllocationExecutor struct {
	scope     TransactionScope
	publisher shared.EventPublisher
	now       func() time.Time
}

// NewAllocationExecutor creates a new AllocationExecutor
func NewAllocationExecutor(scope TransactionScope) *AllocationExecutor {
	return &AllocationExecutor{
		scope: scope,
		now:   time.Now,
	}
}

// SetEventPublisher sets the publisher for post-commit domain events
func (e *AllocationExecutor) SetEventPublisher(publisher shared.EventPublisher) {
	e.publisher = publisher
}

// Execute creates an export for the requested ingredient quantities.
//
// Within a single transaction it persists the export header, plans an
// allocation per item against row-locked batch state, re-checks every batch
// before decrementing it, and records one export item per applied
// deduction. The first failure aborts everything; no partial export is ever
// visible to readers. Callers receive *inventory.InsufficientStockError or
// shared.ErrConcurrencyConflict untouched and decide whether to retry.
func (e *AllocationExecutor) Execute(ctx context.Context, req CreateExportRequest) (*ExportResponse, error) {
	if err := validateExportRequest(req); err != nil {
		return nil, err
	}
	now := e.now()

	var (
		exp    *inventory.Export
		events []shared.DomainEvent
	)
	err := e.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		exp, err = inventory.NewExport(inventory.ExportReason(req.Reason), req.Note, req.CreatedBy)
		if err != nil {
			return err
		}
		// header first so items can reference its id
		if err := repos.Exports().Save(ctx, exp); err != nil {
			return err
		}

		for _, item := range req.Items {
			ingredient, err := repos.Ingredients().FindActiveByID(ctx, item.IngredientID)
			if err != nil {
				return err
			}

			batches, err := repos.Batches().FindEligible(ctx, item.IngredientID, now)
			if err != nil {
				return err
			}
			plan, err := inventory.PlanAllocation(item.IngredientID, item.Quantity, batches, now)
			if err != nil {
				return err
			}

			for _, allocation := range plan {
				// re-fetch inside the transaction: the plan was computed from a
				// snapshot, and the row may have been decremented since
				batch, err := repos.Batches().FindByIDForUpdate(ctx, allocation.BatchID)
				if err != nil {
					return err
				}
				if batch.RemainingQuantity.LessThan(allocation.Quantity) || !batch.IsEligible(now) {
					return shared.ErrConcurrencyConflict
				}
				if err := batch.Deduct(allocation.Quantity); err != nil {
					return err
				}
				if err := repos.Batches().Save(ctx, batch); err != nil {
					return err
				}
				if err := exp.AddItem(batch.ID, item.IngredientID, allocation.Quantity); err != nil {
					return err
				}
				if batch.Status == inventory.BatchStatusDepleted {
					events = append(events, inventory.NewBatchDepletedEvent(batch))
				}
			}

			remaining, err := repos.Batches().AvailableQuantity(ctx, item.IngredientID, now)
			if err != nil {
				return err
			}
			if ingredient.IsBelowThreshold(remaining) {
				events = append(events, inventory.NewStockBelowThresholdEvent(ingredient, remaining))
			}
		}

		return repos.Exports().Save(ctx, exp)
	})
	if err != nil {
		return nil, err
	}

	events = append(events, inventory.NewStockExportedEvent(exp))
	e.publish(ctx, events)

	response := ToExportResponse(exp)
	return &response, nil
}

func (e *AllocationExecutor) publish(ctx context.Context, events []shared.DomainEvent) {
	if e.publisher == nil || len(events) == 0 {
		return
	}
	// event delivery failures are logged by the bus, never propagated
	_ = e.publisher.Publish(ctx, events...)
}

// validateExportRequest rejects malformed input before any transaction starts
func validateExportRequest(req CreateExportRequest) error {
	if !inventory.ExportReason(req.Reason).IsValid() {
		return shared.NewDomainError("INVALID_REASON", "Unknown export reason: "+req.Reason)
	}
	if len(req.Items) == 0 {
		return shared.NewDomainError("EMPTY_EXPORT", "Export requires at least one item")
	}
	seen := make(map[string]bool, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_QUANTITY", "Export item quantity must be positive")
		}
		if seen[item.IngredientID.String()] {
			return shared.NewDomainError("DUPLICATE_INGREDIENT", "Export lists ingredient "+item.IngredientID.String()+" more than once")
		}
		seen[item.IngredientID.String()] = true
	}
	return nil
}
