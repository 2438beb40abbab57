package inventory

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// BatchAllocation is a single (batch, quantity) pair in an allocation plan.
// Plans are ephemeral values: they exist only between planning and execution
// inside one transaction and are never persisted as such.
type BatchAllocation struct {
	BatchID  uuid.UUID
	Quantity decimal.Decimal
}

// InsufficientStockError is returned when an ingredient's eligible batches
// cannot cover the requested quantity. No partial plan is ever returned.
type InsufficientStockError struct {
	IngredientID uuid.UUID
	Requested    decimal.Decimal
	Available    decimal.Decimal
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for ingredient %s: requested %s, available %s",
		e.IngredientID, e.Requested, e.Available)
}

// Unwrap allows errors.Is(err, shared.ErrInsufficientStock)
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// EligibleBatches filters out batches that may not be allocated from
// (depleted, empty, soft-deleted or expired) and sorts the survivors in
// FEFO order: earliest expiry first, then oldest creation, then batch ID
// so that same-second imports still allocate deterministically.
func EligibleBatches(batches []Batch, now time.Time) []Batch {
	eligible := make([]Batch, 0, len(batches))
	for _, b := range batches {
		if b.IsEligible(now) {
			eligible = append(eligible, b)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if !eligible[i].ExpiryDate.Equal(eligible[j].ExpiryDate) {
			return eligible[i].ExpiryDate.Before(eligible[j].ExpiryDate)
		}
		if !eligible[i].CreatedAt.Equal(eligible[j].CreatedAt) {
			return eligible[i].CreatedAt.Before(eligible[j].CreatedAt)
		}
		return bytes.Compare(eligible[i].ID[:], eligible[j].ID[:]) < 0
	})
	return eligible
}

// PlanAllocation computes a FEFO allocation plan for one ingredient over a
// snapshot of its batches. It is a pure computation: no batch is mutated.
//
// The returned plan covers the required quantity exactly, drawing greedily
// from the earliest-expiring batches. If the eligible stock cannot cover the
// request, an *InsufficientStockError carrying requested vs. available
// quantities is returned instead of a partial plan.
func PlanAllocation(ingredientID uuid.UUID, required decimal.Decimal, batches []Batch, now time.Time) ([]BatchAllocation, error) {
	if required.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Required quantity must be positive")
	}

	eligible := EligibleBatches(batches, now)

	plan := make([]BatchAllocation, 0, len(eligible))
	needed := required
	for _, batch := range eligible {
		if needed.IsZero() {
			break
		}
		take := decimal.Min(batch.RemainingQuantity, needed)
		plan = append(plan, BatchAllocation{
			BatchID:  batch.ID,
			Quantity: take,
		})
		needed = needed.Sub(take)
	}

	if needed.GreaterThan(decimal.Zero) {
		available := decimal.Zero
		for _, batch := range eligible {
			available = available.Add(batch.RemainingQuantity)
		}
		return nil, &InsufficientStockError{
			IngredientID: ingredientID,
			Requested:    required,
			Available:    available,
		}
	}

	return plan, nil
}

// AvailableQuantity sums the remaining quantity of all eligible batches
func AvailableQuantity(batches []Batch, now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		if b.IsEligible(now) {
			total = total.Add(b.RemainingQuantity)
		}
	}
	return total
}
