package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
)

// Supplier is a vendor that ingredient imports are sourced from
type Supplier struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Name         string
	ContactName  string
	ContactPhone string
	ContactEmail string
	Address      string
	Notes        string
}

// NewSupplier creates a new supplier
func NewSupplier(name, contactName, contactPhone, contactEmail, address string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ContactName:       contactName,
		ContactPhone:      contactPhone,
		ContactEmail:      contactEmail,
		Address:           address,
	}, nil
}

// Update changes the supplier's mutable attributes
func (s *Supplier) Update(name, contactName, contactPhone, contactEmail, address, notes string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.ContactName = contactName
	s.ContactPhone = contactPhone
	s.ContactEmail = contactEmail
	s.Address = address
	s.Notes = notes
	return nil
}

// SupplierRepository provides access to suppliers
type SupplierRepository interface {
	// FindByID finds a supplier by ID, including soft-deleted ones
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	// FindActiveByID finds a supplier by ID, excluding soft-deleted ones
	FindActiveByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	// FindAll finds active suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	// Count counts active suppliers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save persists a supplier (insert or update)
	Save(ctx context.Context, supplier *Supplier) error
}
