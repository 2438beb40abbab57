package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/inventory"
	"github.com/resto/backend/internal/domain/shared"
)

// IngredientService manages the ingredient catalog
type IngredientService struct {
	ingredientRepo inventory.IngredientRepository
	batchRepo      inventory.BatchRepository
}

// NewIngredientService creates a new IngredientService
func NewIngredientService(ingredientRepo inventory.IngredientRepository, batchRepo inventory.BatchRepository) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		batchRepo:      batchRepo,
	}
}

// Create adds a new ingredient
func (s *IngredientService) Create(ctx context.Context, req CreateIngredientRequest) (*IngredientResponse, error) {
	ingredient, err := inventory.NewIngredient(req.Name, req.Unit, req.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.ingredientRepo.Save(ctx, ingredient); err != nil {
		return nil, err
	}
	response := ToIngredientResponse(ingredient)
	return &response, nil
}

// Update changes an existing ingredient
func (s *IngredientService) Update(ctx context.Context, id uuid.UUID, req UpdateIngredientRequest) (*IngredientResponse, error) {
	ingredient, err := s.ingredientRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ingredient.Update(req.Name, req.Unit, req.LowStockThreshold); err != nil {
		return nil, err
	}
	if err := s.ingredientRepo.Save(ctx, ingredient); err != nil {
		return nil, err
	}
	response := ToIngredientResponse(ingredient)
	return &response, nil
}

// GetByID returns one active ingredient
func (s *IngredientService) GetByID(ctx context.Context, id uuid.UUID) (*IngredientResponse, error) {
	ingredient, err := s.ingredientRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToIngredientResponse(ingredient)
	return &response, nil
}

// List returns active ingredients matching the filter
func (s *IngredientService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[IngredientResponse], error) {
	ingredients, err := s.ingredientRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ingredientRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]IngredientResponse, 0, len(ingredients))
	for idx := range ingredients {
		items = append(items, ToIngredientResponse(&ingredients[idx]))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Batches returns the batches of one active ingredient
func (s *IngredientService) Batches(ctx context.Context, id uuid.UUID, filter shared.Filter) ([]BatchResponse, error) {
	if _, err := s.ingredientRepo.FindActiveByID(ctx, id); err != nil {
		return nil, err
	}
	batches, err := s.batchRepo.FindByIngredient(ctx, id, filter)
	if err != nil {
		return nil, err
	}
	items := make([]BatchResponse, 0, len(batches))
	for idx := range batches {
		items = append(items, ToBatchResponse(&batches[idx]))
	}
	return items, nil
}

// Stock returns the aggregate quantity currently available for allocation
func (s *IngredientService) Stock(ctx context.Context, id uuid.UUID) (*StockLevelResponse, error) {
	ingredient, err := s.ingredientRepo.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	available, err := s.batchRepo.AvailableQuantity(ctx, id, time.Now())
	if err != nil {
		return nil, err
	}
	return &StockLevelResponse{
		Ingredient: ToIngredientResponse(ingredient),
		Available:  available,
	}, nil
}

// Delete soft-deletes an ingredient. Its batches stay readable for
// reporting but the ingredient no longer accepts imports or exports.
func (s *IngredientService) Delete(ctx context.Context, id uuid.UUID) error {
	ingredient, err := s.ingredientRepo.FindActiveByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ingredient.MarkDeleted(); err != nil {
		return err
	}
	return s.ingredientRepo.Save(ctx, ingredient)
}

// Restore reverses a soft delete
func (s *IngredientService) Restore(ctx context.Context, id uuid.UUID) error {
	ingredient, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ingredient.Restore(); err != nil {
		return err
	}
	return s.ingredientRepo.Save(ctx, ingredient)
}
