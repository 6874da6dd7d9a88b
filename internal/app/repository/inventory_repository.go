package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// InventoryRepository 재고 저장소 인터페이스
type InventoryRepository interface {
	Upsert(inventory *model.Inventory) error
	FindByIngredient(storeID string, ingredientID uint) (*model.Inventory, error)
	FindAll(storeID string) ([]model.Inventory, error)
	AdjustOnHand(tx *gorm.DB, storeID string, ingredientID uint, delta float64) error
	DeleteByIngredient(storeID string, ingredientID uint) error
}

type inventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository 재고 저장소 생성
func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

// Upsert 재고 저장. 같은 매장·재료 행이 있으면 수량을 갱신한다.
func (r *inventoryRepository) Upsert(inventory *model.Inventory) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "ingredient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"on_hand", "safety_stock", "updated_at"}),
	}).Create(inventory).Error
	if err != nil {
		logger.Error("Failed to upsert inventory", err, map[string]interface{}{
			"store_id":      inventory.StoreID,
			"ingredient_id": inventory.IngredientID,
		})
		return err
	}
	return nil
}

// FindByIngredient 재료의 재고 조회. 없으면 nil.
func (r *inventoryRepository) FindByIngredient(storeID string, ingredientID uint) (*model.Inventory, error) {
	var inventory model.Inventory
	err := r.db.Where("store_id = ? AND ingredient_id = ?", storeID, ingredientID).
		First(&inventory).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find inventory by ingredient", err)
		return nil, err
	}
	return &inventory, nil
}

// FindAll 매장의 전체 재고 조회 (재료 포함)
func (r *inventoryRepository) FindAll(storeID string) ([]model.Inventory, error) {
	var list []model.Inventory
	err := r.db.Preload("Ingredient").
		Where("store_id = ?", storeID).
		Find(&list).Error
	if err != nil {
		logger.Error("Failed to find inventory", err)
		return nil, err
	}
	return list, nil
}

// AdjustOnHand 현재고 증감. 마감 시 자동 차감과 한 트랜잭션으로 묶일 수 있다.
// 재고 행이 없는 재료는 건너뛴다 (차감은 경고성 동작이다).
// 차감 결과는 0 밑으로 내려가지 않는다.
func (r *inventoryRepository) AdjustOnHand(tx *gorm.DB, storeID string, ingredientID uint, delta float64) error {
	db := tx
	if db == nil {
		db = r.db
	}
	err := db.Model(&model.Inventory{}).
		Where("store_id = ? AND ingredient_id = ?", storeID, ingredientID).
		UpdateColumn("on_hand",
			gorm.Expr("CASE WHEN on_hand + ? < 0 THEN 0 ELSE on_hand + ? END", delta, delta)).Error
	if err != nil {
		logger.Error("Failed to adjust inventory on hand", err, map[string]interface{}{
			"store_id":      storeID,
			"ingredient_id": ingredientID,
			"delta":         delta,
		})
		return err
	}
	return nil
}

// DeleteByIngredient 재료의 재고 행 삭제 (재료 삭제 시 동반 정리)
func (r *inventoryRepository) DeleteByIngredient(storeID string, ingredientID uint) error {
	err := r.db.Where("store_id = ? AND ingredient_id = ?", storeID, ingredientID).
		Delete(&model.Inventory{}).Error
	if err != nil {
		logger.Error("Failed to delete inventory by ingredient", err)
		return err
	}
	return nil
}
