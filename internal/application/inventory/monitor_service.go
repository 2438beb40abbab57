package inventory

import (
	"context"
	"time"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// MonitorService surfaces batches nearing expiry and ingredients running
// low. Pure read queries with no allocation side effects; the admin UI and
// alerting layers poll these.
type MonitorService struct {
	batchRepo      inventory.BatchRepository
	ingredientRepo inventory.IngredientRepository
	now            func() time.Time
}

// NewMonitorService creates a new MonitorService
func NewMonitorService(batchRepo inventory.BatchRepository, ingredientRepo inventory.IngredientRepository) *MonitorService {
	return &MonitorService{
		batchRepo:      batchRepo,
		ingredientRepo: ingredientRepo,
		now:            time.Now,
	}
}

// FindExpiring returns eligible batches expiring within the given number of
// days, soonest first
func (s *MonitorService) FindExpiring(ctx context.Context, withinDays int) ([]ExpiringBatchResponse, error) {
	if withinDays < 0 {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Expiry window cannot be negative")
	}
	now := s.now()
	batches, err := s.batchRepo.FindExpiringWithin(ctx, now, withinDays)
	if err != nil {
		return nil, err
	}
	responses := make([]ExpiringBatchResponse, 0, len(batches))
	for idx := range batches {
		responses = append(responses, ExpiringBatchResponse{
			BatchResponse:   ToBatchResponse(&batches[idx]),
			DaysUntilExpiry: batches[idx].DaysUntilExpiry(now),
		})
	}
	return responses, nil
}

// FindLowStock returns ingredients whose aggregate eligible stock is at or
// below their alert threshold
func (s *MonitorService) FindLowStock(ctx context.Context) ([]StockLevelResponse, error) {
	levels, err := s.ingredientRepo.FindBelowThreshold(ctx, s.now())
	if err != nil {
		return nil, err
	}
	responses := make([]StockLevelResponse, 0, len(levels))
	for idx := range levels {
		responses = append(responses, StockLevelResponse{
			Ingredient: ToIngredientResponse(&levels[idx].Ingredient),
			Available:  levels[idx].Available,
		})
	}
	return responses, nil
}
