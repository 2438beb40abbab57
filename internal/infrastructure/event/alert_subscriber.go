package event

import (
	"context"

	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AlertSubscriber turns inventory domain events into structured alert log
// entries. It is the sink the admin dashboard and ops tooling tail; alerts
// must never fail the operation that raised them, so handling never returns
// an error for unknown payloads.
type AlertSubscriber struct {
	logger *zap.Logger
}

// NewAlertSubscriber creates a new AlertSubscriber
func NewAlertSubscriber(logger *zap.Logger) *AlertSubscriber {
	return &AlertSubscriber{logger: logger.Named("alerts")}
}

// EventTypes returns the inventory events this subscriber listens for
func (s *AlertSubscriber) EventTypes() []string {
	return []string{
		inventory.EventTypeStockBelowThreshold,
		inventory.EventTypeBatchDepleted,
		inventory.EventTypeStockExported,
		inventory.EventTypeStockImported,
	}
}

// Handle logs one alert per event
func (s *AlertSubscriber) Handle(_ context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockBelowThresholdEvent:
		s.logger.Warn("ingredient below stock threshold",
			zap.String("ingredient_id", e.AggregateID().String()),
			zap.String("ingredient", e.IngredientName),
			zap.String("available", e.Available.String()),
			zap.String("threshold", e.Threshold.String()),
		)
	case *inventory.BatchDepletedEvent:
		s.logger.Info("batch depleted",
			zap.String("batch_id", e.AggregateID().String()),
			zap.String("ingredient_id", e.IngredientID.String()),
			zap.String("import_id", e.ImportID.String()),
		)
	case *inventory.StockExportedEvent:
		s.logger.Info("stock exported",
			zap.String("export_id", e.AggregateID().String()),
			zap.String("reason", e.Reason),
			zap.Int("items", e.ItemCount),
			zap.String("total_quantity", e.TotalQuantity.String()),
		)
	case *inventory.StockImportedEvent:
		s.logger.Info("stock imported",
			zap.String("import_id", e.AggregateID().String()),
			zap.String("supplier_id", e.SupplierID.String()),
			zap.Int("batches", e.BatchCount),
		)
	default:
		s.logger.Debug("unhandled inventory event",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

var _ shared.EventHandler = (*AlertSubscriber)(nil)
