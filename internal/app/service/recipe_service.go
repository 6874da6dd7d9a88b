package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// RecipeService 레시피 서비스
type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	menuRepo       repository.MenuRepository
	ingredientRepo repository.IngredientRepository
	coordinator    *WriteCoordinator
	cache          *cache.Layer
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	menuRepo repository.MenuRepository,
	ingredientRepo repository.IngredientRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		menuRepo:       menuRepo,
		ingredientRepo: ingredientRepo,
		coordinator:    coordinator,
		cache:          cacheLayer,
	}
}

// SaveRecipeInput 레시피 저장 입력 (메뉴 1개당 재료 사용량)
type SaveRecipeInput struct {
	MenuID       uint    `json:"menu_id" binding:"required"`
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	Qty          float64 `json:"qty"`
}

// SaveRecipe 레시피 upsert. 메뉴·재료가 실제로 존재해야 한다.
func (s *RecipeService) SaveRecipe(storeID string, input SaveRecipeInput) (*WriteOutcome, error) {
	if input.Qty < 0 {
		return nil, fmt.Errorf("%w: 사용량은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("save_recipe", []string{cache.TargetRecipes},
		map[string]interface{}{"menu_id": input.MenuID, "ingredient_id": input.IngredientID},
		func() (*WriteOutcome, error) {
			menu, err := s.menuRepo.FindByID(storeID, input.MenuID)
			if err != nil {
				return nil, err
			}
			if menu == nil {
				return nil, fmt.Errorf("%w: 메뉴를 찾을 수 없습니다", apperrors.ErrNotFound)
			}
			ingredient, err := s.ingredientRepo.FindByID(storeID, input.IngredientID)
			if err != nil {
				return nil, err
			}
			if ingredient == nil {
				return nil, fmt.Errorf("%w: 재료를 찾을 수 없습니다", apperrors.ErrNotFound)
			}

			err = s.recipeRepo.Upsert(&model.Recipe{
				StoreID:      storeID,
				MenuID:       input.MenuID,
				IngredientID: input.IngredientID,
				Qty:          input.Qty,
			})
			if err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// DeleteRecipe 레시피 단건 삭제
func (s *RecipeService) DeleteRecipe(storeID string, recipeID uint) (*WriteOutcome, error) {
	return s.coordinator.RunWrite("delete_recipe", []string{cache.TargetRecipes},
		map[string]interface{}{"recipe_id": recipeID},
		func() (*WriteOutcome, error) {
			if err := s.recipeRepo.Delete(storeID, recipeID); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// GetRecipes 매장 전체 레시피 (캐시)
func (s *RecipeService) GetRecipes(storeID string) ([]model.Recipe, error) {
	return cache.Fetch(s.cache, cache.FnRecipes, map[string]string{
		"store_id": storeID,
	}, func() ([]model.Recipe, error) {
		return s.recipeRepo.FindAll(storeID)
	})
}

// GetRecipesByMenu 메뉴의 레시피 조회
func (s *RecipeService) GetRecipesByMenu(storeID string, menuID uint) ([]model.Recipe, error) {
	return s.recipeRepo.FindByMenu(storeID, menuID)
}
