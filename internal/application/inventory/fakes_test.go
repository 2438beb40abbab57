package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// memStore holds all inventory state for tests. Entities are stored by
// value so that repository reads hand out copies, the way a real database
// row read does.
type memStore struct {
	mu          sync.Mutex
	ingredients map[uuid.UUID]inventory.Ingredient
	batches     map[uuid.UUID]inventory.Batch
	imports     map[uuid.UUID]inventory.Import
	exports     map[uuid.UUID]inventory.Export
}

func newMemStore() *memStore {
	return &memStore{
		ingredients: make(map[uuid.UUID]inventory.Ingredient),
		batches:     make(map[uuid.UUID]inventory.Batch),
		imports:     make(map[uuid.UUID]inventory.Import),
		exports:     make(map[uuid.UUID]inventory.Export),
	}
}

func (s *memStore) putIngredient(i *inventory.Ingredient) { s.ingredients[i.ID] = *i }
func (s *memStore) putBatch(b *inventory.Batch)           { s.batches[b.ID] = *b }

func (s *memStore) snapshot() *memStore {
	clone := newMemStore()
	for k, v := range s.ingredients {
		clone.ingredients[k] = v
	}
	for k, v := range s.batches {
		clone.batches[k] = v
	}
	for k, v := range s.imports {
		clone.imports[k] = v
	}
	for k, v := range s.exports {
		clone.exports[k] = v
	}
	return clone
}

func (s *memStore) restore(from *memStore) {
	s.ingredients = from.ingredients
	s.batches = from.batches
	s.imports = from.imports
	s.exports = from.exports
}

// memScope is a TransactionScope over a memStore. It snapshots the store
// before running the function and restores the snapshot on error, giving
// tests the same commit-or-rollback behavior the database scope provides.
type memScope struct {
	store *memStore
}

func newMemScope(store *memStore) *memScope {
	return &memScope{store: store}
}

func (s *memScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	before := s.store.snapshot()
	if err := fn(&memRepos{store: s.store}); err != nil {
		s.store.restore(before)
		return err
	}
	return nil
}

type memRepos struct {
	store *memStore
}

func (r *memRepos) Ingredients() inventory.IngredientRepository {
	return &memIngredientRepo{store: r.store}
}

func (r *memRepos) Batches() inventory.BatchRepository {
	return &memBatchRepo{store: r.store}
}

func (r *memRepos) Imports() inventory.ImportRepository {
	return &memImportRepo{store: r.store}
}

func (r *memRepos) Exports() inventory.ExportRepository {
	return &memExportRepo{store: r.store}
}

type memIngredientRepo struct {
	store *memStore
}

func (r *memIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	ingredient, ok := r.store.ingredients[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &ingredient, nil
}

func (r *memIngredientRepo) FindActiveByID(ctx context.Context, id uuid.UUID) (*inventory.Ingredient, error) {
	ingredient, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ingredient.IsDeleted() {
		return nil, shared.ErrNotFound
	}
	return ingredient, nil
}

func (r *memIngredientRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Ingredient, error) {
	out := make([]inventory.Ingredient, 0, len(r.store.ingredients))
	for _, ingredient := range r.store.ingredients {
		if !ingredient.IsDeleted() {
			out = append(out, ingredient)
		}
	}
	return out, nil
}

func (r *memIngredientRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	all, err := r.FindAll(ctx, filter)
	return int64(len(all)), err
}

func (r *memIngredientRepo) Save(_ context.Context, ingredient *inventory.Ingredient) error {
	r.store.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *memIngredientRepo) FindBelowThreshold(ctx context.Context, now time.Time) ([]inventory.IngredientStockLevel, error) {
	batches := &memBatchRepo{store: r.store}
	var out []inventory.IngredientStockLevel
	for _, ingredient := range r.store.ingredients {
		if ingredient.IsDeleted() {
			continue
		}
		available, err := batches.AvailableQuantity(ctx, ingredient.ID, now)
		if err != nil {
			return nil, err
		}
		if ingredient.IsBelowThreshold(available) {
			out = append(out, inventory.IngredientStockLevel{Ingredient: ingredient, Available: available})
		}
	}
	return out, nil
}

type memBatchRepo struct {
	store *memStore
}

func (r *memBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Batch, error) {
	batch, ok := r.store.batches[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &batch, nil
}

func (r *memBatchRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	return r.FindByID(ctx, id)
}

func (r *memBatchRepo) FindEligible(_ context.Context, ingredientID uuid.UUID, now time.Time) ([]inventory.Batch, error) {
	var candidates []inventory.Batch
	for _, batch := range r.store.batches {
		if batch.IngredientID == ingredientID {
			candidates = append(candidates, batch)
		}
	}
	return inventory.EligibleBatches(candidates, now), nil
}

func (r *memBatchRepo) FindByIngredient(_ context.Context, ingredientID uuid.UUID, _ shared.Filter) ([]inventory.Batch, error) {
	var out []inventory.Batch
	for _, batch := range r.store.batches {
		if batch.IngredientID == ingredientID && !batch.IsDeleted() {
			out = append(out, batch)
		}
	}
	return out, nil
}

func (r *memBatchRepo) FindExpiringWithin(_ context.Context, now time.Time, withinDays int) ([]inventory.Batch, error) {
	var candidates []inventory.Batch
	for _, batch := range r.store.batches {
		if batch.IsEligible(now) && batch.ExpiresWithin(now, withinDays) {
			candidates = append(candidates, batch)
		}
	}
	return inventory.EligibleBatches(candidates, now), nil
}

func (r *memBatchRepo) AvailableQuantity(ctx context.Context, ingredientID uuid.UUID, now time.Time) (decimal.Decimal, error) {
	eligible, err := r.FindEligible(ctx, ingredientID, now)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.AvailableQuantity(eligible, now), nil
}

func (r *memBatchRepo) Save(_ context.Context, batch *inventory.Batch) error {
	r.store.batches[batch.ID] = *batch
	return nil
}

type memImportRepo struct {
	store *memStore
}

func (r *memImportRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Import, error) {
	imp, ok := r.store.imports[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	imp.Batches = append([]inventory.Batch(nil), imp.Batches...)
	return &imp, nil
}

func (r *memImportRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Import, error) {
	out := make([]inventory.Import, 0, len(r.store.imports))
	for _, imp := range r.store.imports {
		if !imp.IsDeleted() {
			out = append(out, imp)
		}
	}
	return out, nil
}

func (r *memImportRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	all, err := r.FindAll(ctx, filter)
	return int64(len(all)), err
}

func (r *memImportRepo) Save(_ context.Context, imp *inventory.Import) error {
	r.store.imports[imp.ID] = *imp
	for idx := range imp.Batches {
		r.store.batches[imp.Batches[idx].ID] = imp.Batches[idx]
	}
	return nil
}

type memExportRepo struct {
	store *memStore
}

func (r *memExportRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.Export, error) {
	exp, ok := r.store.exports[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	exp.Items = append([]inventory.ExportItem(nil), exp.Items...)
	return &exp, nil
}

func (r *memExportRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.Export, error) {
	out := make([]inventory.Export, 0, len(r.store.exports))
	for _, exp := range r.store.exports {
		if !exp.IsDeleted() {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (r *memExportRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	all, err := r.FindAll(ctx, filter)
	return int64(len(all)), err
}

func (r *memExportRepo) Save(_ context.Context, exp *inventory.Export) error {
	r.store.exports[exp.ID] = *exp
	return nil
}

// capturingPublisher records every published event for assertions
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}
