package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchStatus is the lifecycle status of a batch
type BatchStatus string

const (
	// BatchStatusAvailable means the batch still holds stock
	BatchStatusAvailable BatchStatus = "AVAILABLE"
	// BatchStatusDepleted means the remaining quantity reached exactly zero.
	// Only the allocation executor flips this flag.
	BatchStatusDepleted BatchStatus = "DEPLETED"
)

// IsValid checks if the status is valid
func (s BatchStatus) IsValid() bool {
	return s == BatchStatusAvailable || s == BatchStatusDepleted
}

// String returns the string representation
func (s BatchStatus) String() string {
	return string(s)
}

// Batch is a discrete quantity of an ingredient received in one import,
// with its own expiry date and purchase price.
type Batch struct {
	shared.BaseEntity
	shared.SoftDeletable
	IngredientID      uuid.UUID
	ImportID          uuid.UUID
	Quantity          decimal.Decimal // original quantity, immutable once set
	RemainingQuantity decimal.Decimal
	ExpiryDate        time.Time // date-only, normalized to midnight UTC
	UnitPrice         decimal.Decimal
	Status            BatchStatus
}

// DateOnly truncates a timestamp to a date-only value in UTC.
// Expiry dates are compared at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewBatch creates a new batch with full remaining quantity
func NewBatch(ingredientID, importID uuid.UUID, quantity decimal.Decimal, expiryDate time.Time, unitPrice decimal.Decimal) (*Batch, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Batch quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Batch unit price cannot be negative")
	}
	if expiryDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_EXPIRY", "Batch expiry date is required")
	}
	return &Batch{
		BaseEntity:        shared.NewBaseEntity(),
		IngredientID:      ingredientID,
		ImportID:          importID,
		Quantity:          quantity,
		RemainingQuantity: quantity,
		ExpiryDate:        DateOnly(expiryDate),
		UnitPrice:         unitPrice,
		Status:            BatchStatusAvailable,
	}, nil
}

// IsExpired returns true if the batch expiry date is not after the given day
func (b *Batch) IsExpired(now time.Time) bool {
	return !b.ExpiryDate.After(DateOnly(now))
}

// ExpiresWithin returns true if the batch expires within the given number of
// days from now, and has not expired yet.
func (b *Batch) ExpiresWithin(now time.Time, days int) bool {
	if b.IsExpired(now) {
		return false
	}
	deadline := DateOnly(now).AddDate(0, 0, days)
	return !b.ExpiryDate.After(deadline)
}

// DaysUntilExpiry returns the number of whole days until expiry; negative if
// the batch has already expired.
func (b *Batch) DaysUntilExpiry(now time.Time) int {
	return int(b.ExpiryDate.Sub(DateOnly(now)).Hours() / 24)
}

// IsEligible reports whether this batch may be included in an allocation plan:
// available, stock remaining, not soft-deleted and not expired. Expired
// batches stay readable for reporting and disposal but are never allocated.
func (b *Batch) IsEligible(now time.Time) bool {
	return b.Status == BatchStatusAvailable &&
		b.RemainingQuantity.GreaterThan(decimal.Zero) &&
		!b.IsDeleted() &&
		!b.IsExpired(now)
}

// Deduct reduces the remaining quantity by exactly the given amount.
// Deducting more than remains is a hard error so that callers can never
// silently over-allocate; the depletion flag flips when remaining hits zero.
func (b *Batch) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if quantity.GreaterThan(b.RemainingQuantity) {
		return shared.ErrInsufficientStock
	}
	b.RemainingQuantity = b.RemainingQuantity.Sub(quantity)
	if b.RemainingQuantity.IsZero() {
		b.Status = BatchStatusDepleted
	}
	b.UpdatedAt = time.Now()
	return nil
}

// Restock returns quantity to the batch (import correction or export
// reversal). Remaining quantity can never exceed the original quantity.
func (b *Batch) Restock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}
	restored := b.RemainingQuantity.Add(quantity)
	if restored.GreaterThan(b.Quantity) {
		return shared.NewDomainError("INVALID_QUANTITY", "Remaining quantity cannot exceed original quantity")
	}
	b.RemainingQuantity = restored
	if b.Status == BatchStatusDepleted && b.RemainingQuantity.GreaterThan(decimal.Zero) {
		b.Status = BatchStatusAvailable
	}
	b.UpdatedAt = time.Now()
	return nil
}

// TotalValue returns remaining quantity times unit price
func (b *Batch) TotalValue() decimal.Decimal {
	return b.RemainingQuantity.Mul(b.UnitPrice)
}
