package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// IngredientService 재료 마스터 서비스
type IngredientService struct {
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
	inventoryRepo  repository.InventoryRepository
	coordinator    *WriteCoordinator
	cache          *cache.Layer
}

func NewIngredientService(
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
	inventoryRepo repository.InventoryRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		inventoryRepo:  inventoryRepo,
		coordinator:    coordinator,
		cache:          cacheLayer,
	}
}

// SaveIngredientInput 재료 생성/수정 입력
type SaveIngredientInput struct {
	Name      string  `json:"name" binding:"required"`
	Unit      string  `json:"unit" binding:"required"`
	UnitCost  float64 `json:"unit_cost"`
	OrderUnit string  `json:"order_unit"`
}

// CreateIngredient 재료 생성. 같은 이름이 이미 있으면 거부한다.
func (s *IngredientService) CreateIngredient(storeID string, input SaveIngredientInput) (*WriteOutcome, error) {
	if input.UnitCost < 0 {
		return nil, fmt.Errorf("%w: 단가는 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("create_ingredient", []string{cache.TargetIngredients},
		map[string]interface{}{"name": input.Name},
		func() (*WriteOutcome, error) {
			existing, err := s.ingredientRepo.FindByName(storeID, input.Name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: 이미 등록된 재료입니다: %s", apperrors.ErrConflict, input.Name)
			}

			ingredient := &model.Ingredient{
				StoreID:   storeID,
				Name:      input.Name,
				Unit:      input.Unit,
				UnitCost:  input.UnitCost,
				OrderUnit: input.OrderUnit,
			}
			if err := s.ingredientRepo.Create(ingredient); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// UpdateIngredient 재료 수정
func (s *IngredientService) UpdateIngredient(storeID string, ingredientID uint, input SaveIngredientInput) (*WriteOutcome, error) {
	if input.UnitCost < 0 {
		return nil, fmt.Errorf("%w: 단가는 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("update_ingredient", []string{cache.TargetIngredients},
		map[string]interface{}{"ingredient_id": ingredientID},
		func() (*WriteOutcome, error) {
			ingredient, err := s.ingredientRepo.FindByID(storeID, ingredientID)
			if err != nil {
				return nil, err
			}
			if ingredient == nil {
				return nil, apperrors.ErrNotFound
			}

			ingredient.Name = input.Name
			ingredient.Unit = input.Unit
			ingredient.UnitCost = input.UnitCost
			ingredient.OrderUnit = input.OrderUnit
			if err := s.ingredientRepo.Update(ingredient); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// DeleteIngredient 재료 삭제. 레시피나 재고가 참조하면 거부한다.
func (s *IngredientService) DeleteIngredient(storeID string, ingredientID uint) (*WriteOutcome, error) {
	return s.coordinator.RunWrite("delete_ingredient", []string{cache.TargetIngredients},
		map[string]interface{}{"ingredient_id": ingredientID},
		func() (*WriteOutcome, error) {
			ingredient, err := s.ingredientRepo.FindByID(storeID, ingredientID)
			if err != nil {
				return nil, err
			}
			if ingredient == nil {
				return nil, apperrors.ErrNotFound
			}

			recipeCount, err := s.recipeRepo.CountByIngredient(storeID, ingredientID)
			if err != nil {
				return nil, err
			}
			inventory, err := s.inventoryRepo.FindByIngredient(storeID, ingredientID)
			if err != nil {
				return nil, err
			}
			var inventoryCount int64
			if inventory != nil {
				inventoryCount = 1
			}
			if recipeCount > 0 || inventoryCount > 0 {
				return &WriteOutcome{
					OK:     false,
					Reason: fmt.Sprintf("%s은(는) 레시피 %d건, 재고 %d건에서 사용 중이라 삭제할 수 없습니다", ingredient.Name, recipeCount, inventoryCount),
					References: map[string]int64{
						"레시피": recipeCount,
						"재고":  inventoryCount,
					},
				}, nil
			}

			if err := s.ingredientRepo.Delete(storeID, ingredientID); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// GetIngredients 매장 재료 목록 (캐시)
func (s *IngredientService) GetIngredients(storeID string) ([]model.Ingredient, error) {
	return cache.Fetch(s.cache, cache.FnIngredients, map[string]string{
		"store_id": storeID,
	}, func() ([]model.Ingredient, error) {
		return s.ingredientRepo.FindAll(storeID)
	})
}
