package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// RecipeRepository 레시피 저장소 인터페이스
type RecipeRepository interface {
	Upsert(recipe *model.Recipe) error
	FindByMenu(storeID string, menuID uint) ([]model.Recipe, error)
	FindAll(storeID string) ([]model.Recipe, error)
	Delete(storeID string, recipeID uint) error
	DeleteByMenu(storeID string, menuID uint) error
	CountByMenu(storeID string, menuID uint) (int64, error)
	CountByIngredient(storeID string, ingredientID uint) (int64, error)
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 레시피 저장소 생성
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Upsert 레시피 저장. 같은 매장·메뉴·재료 행이 있으면 사용량을 갱신한다.
func (r *recipeRepository) Upsert(recipe *model.Recipe) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "menu_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty", "updated_at"}),
	}).Create(recipe).Error
	if err != nil {
		logger.Error("Failed to upsert recipe", err, map[string]interface{}{
			"store_id":      recipe.StoreID,
			"menu_id":       recipe.MenuID,
			"ingredient_id": recipe.IngredientID,
		})
		return err
	}
	return nil
}

// FindByMenu 메뉴의 레시피 조회 (재료 포함)
func (r *recipeRepository) FindByMenu(storeID string, menuID uint) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.Preload("Ingredient").
		Where("store_id = ? AND menu_id = ?", storeID, menuID).
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to find recipes by menu", err)
		return nil, err
	}
	return recipes, nil
}

// FindAll 매장의 전체 레시피 조회 (메뉴·재료 포함)
func (r *recipeRepository) FindAll(storeID string) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.Preload("Menu").Preload("Ingredient").
		Where("store_id = ?", storeID).
		Find(&recipes).Error
	if err != nil {
		logger.Error("Failed to find recipes", err)
		return nil, err
	}
	return recipes, nil
}

// Delete 레시피 단건 삭제
func (r *recipeRepository) Delete(storeID string, recipeID uint) error {
	err := r.db.Where("store_id = ? AND id = ?", storeID, recipeID).
		Delete(&model.Recipe{}).Error
	if err != nil {
		logger.Error("Failed to delete recipe", err)
		return err
	}
	return nil
}

// DeleteByMenu 메뉴의 레시피 전체 삭제
func (r *recipeRepository) DeleteByMenu(storeID string, menuID uint) error {
	err := r.db.Where("store_id = ? AND menu_id = ?", storeID, menuID).
		Delete(&model.Recipe{}).Error
	if err != nil {
		logger.Error("Failed to delete recipes by menu", err)
		return err
	}
	return nil
}

// CountByMenu 메뉴를 참조하는 레시피 수
func (r *recipeRepository) CountByMenu(storeID string, menuID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).
		Where("store_id = ? AND menu_id = ?", storeID, menuID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count recipes by menu", err)
		return 0, err
	}
	return count, nil
}

// CountByIngredient 재료를 참조하는 레시피 수. 재료 삭제 전 참조 검사에 쓴다.
func (r *recipeRepository) CountByIngredient(storeID string, ingredientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).
		Where("store_id = ? AND ingredient_id = ?", storeID, ingredientID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count recipes by ingredient", err)
		return 0, err
	}
	return count, nil
}
