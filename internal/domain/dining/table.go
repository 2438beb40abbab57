package dining

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// TableStatus is the occupancy status of a dining table
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
	TableStatusReserved  TableStatus = "reserved"
	TableStatusCleaning  TableStatus = "cleaning"
)

// IsValid checks if the status is valid
func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusReserved, TableStatusCleaning:
		return true
	}
	return false
}

// Table is a dining table guests order from by scanning its QR code
type Table struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Number   string
	Capacity int
	Status   TableStatus
}

// NewTable creates a new table, available by default
func NewTable(number string, capacity int) (*Table, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Table number cannot be empty")
	}
	if capacity <= 0 {
		return nil, shared.NewDomainError("INVALID_CAPACITY", "Table capacity must be positive")
	}
	return &Table{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Capacity:          capacity,
		Status:            TableStatusAvailable,
	}, nil
}

// ChangeStatus moves the table to a new occupancy status
func (t *Table) ChangeStatus(status TableStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown table status: "+string(status))
	}
	t.Status = status
	return nil
}

// TableRepository provides access to dining tables
type TableRepository interface {
	// FindByID finds a table by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Table, error)
	// FindAll finds active tables, optionally filtered by status
	FindAll(ctx context.Context, status *TableStatus) ([]Table, error)
	// Save persists a table (insert or update)
	Save(ctx context.Context, table *Table) error
}
