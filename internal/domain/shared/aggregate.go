package shared

// BaseAggregateRoot extends BaseEntity with an optimistic-lock version and a
// buffer of domain events recorded during a state change. Events are published
// by the application layer after the enclosing transaction commits and must be
// cleared afterwards.
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`

	pendingEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates an aggregate root at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// RecordEvent buffers a domain event for publication after commit
func (a *BaseAggregateRoot) RecordEvent(event DomainEvent) {
	a.pendingEvents = append(a.pendingEvents, event)
}

// PendingEvents returns the buffered domain events
func (a *BaseAggregateRoot) PendingEvents() []DomainEvent {
	return a.pendingEvents
}

// ClearEvents drops the buffered events once they have been published
func (a *BaseAggregateRoot) ClearEvents() {
	a.pendingEvents = nil
}
