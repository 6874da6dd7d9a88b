package repository

import (
	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// IngredientRepository 재료 마스터 저장소 인터페이스
type IngredientRepository interface {
	Create(ingredient *model.Ingredient) error
	FindByID(storeID string, ingredientID uint) (*model.Ingredient, error)
	FindByName(storeID, name string) (*model.Ingredient, error)
	FindAll(storeID string) ([]model.Ingredient, error)
	Update(ingredient *model.Ingredient) error
	Delete(storeID string, ingredientID uint) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 재료 저장소 생성
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Create 재료 생성
func (r *ingredientRepository) Create(ingredient *model.Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		logger.Error("Failed to create ingredient", err, map[string]interface{}{
			"store_id": ingredient.StoreID,
			"name":     ingredient.Name,
		})
		return err
	}
	return nil
}

// FindByID 재료 단건 조회. 없으면 nil.
func (r *ingredientRepository) FindByID(storeID string, ingredientID uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.Where("store_id = ? AND id = ?", storeID, ingredientID).First(&ingredient).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find ingredient by id", err)
		return nil, err
	}
	return &ingredient, nil
}

// FindByName 재료명으로 조회. 없으면 nil.
func (r *ingredientRepository) FindByName(storeID, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.Where("store_id = ? AND name = ?", storeID, name).First(&ingredient).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find ingredient by name", err)
		return nil, err
	}
	return &ingredient, nil
}

// FindAll 매장의 전체 재료 조회 (이름 오름차순)
func (r *ingredientRepository) FindAll(storeID string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.Where("store_id = ?", storeID).Order("name ASC").Find(&ingredients).Error
	if err != nil {
		logger.Error("Failed to find ingredients", err)
		return nil, err
	}
	return ingredients, nil
}

// Update 재료 수정
func (r *ingredientRepository) Update(ingredient *model.Ingredient) error {
	if err := r.db.Save(ingredient).Error; err != nil {
		logger.Error("Failed to update ingredient", err)
		return err
	}
	return nil
}

// Delete 재료 삭제. 참조 검사는 서비스 계층에서 먼저 수행한다.
func (r *ingredientRepository) Delete(storeID string, ingredientID uint) error {
	err := r.db.Where("store_id = ? AND id = ?", storeID, ingredientID).
		Delete(&model.Ingredient{}).Error
	if err != nil {
		logger.Error("Failed to delete ingredient", err)
		return err
	}
	return nil
}
