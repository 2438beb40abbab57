package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SoftDeletable provides an explicit tombstone for entities that are never
// physically removed while other records reference them.
type SoftDeletable struct {
	DeletedAt *time.Time
}

// IsDeleted returns true if the entity has been soft-deleted
func (s *SoftDeletable) IsDeleted() bool {
	return s.DeletedAt != nil
}

// MarkDeleted sets the tombstone. Deleting an already deleted entity is rejected.
func (s *SoftDeletable) MarkDeleted() error {
	if s.DeletedAt != nil {
		return ErrInvalidState
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

// Restore clears the tombstone. Restoring a live entity is rejected.
func (s *SoftDeletable) Restore() error {
	if s.DeletedAt == nil {
		return ErrNotDeleted
	}
	s.DeletedAt = nil
	return nil
}
