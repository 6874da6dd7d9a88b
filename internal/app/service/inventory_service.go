package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// InventoryService 재고 서비스
type InventoryService struct {
	inventoryRepo  repository.InventoryRepository
	ingredientRepo repository.IngredientRepository
	coordinator    *WriteCoordinator
	cache          *cache.Layer
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	ingredientRepo repository.IngredientRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *InventoryService {
	return &InventoryService{
		inventoryRepo:  inventoryRepo,
		ingredientRepo: ingredientRepo,
		coordinator:    coordinator,
		cache:          cacheLayer,
	}
}

// SaveInventoryInput 재고 저장 입력
type SaveInventoryInput struct {
	IngredientID uint    `json:"ingredient_id" binding:"required"`
	OnHand       float64 `json:"on_hand"`
	SafetyStock  float64 `json:"safety_stock"`
}

// SaveInventory 재고 upsert
func (s *InventoryService) SaveInventory(storeID string, input SaveInventoryInput) (*WriteOutcome, error) {
	if input.OnHand < 0 || input.SafetyStock < 0 {
		return nil, fmt.Errorf("%w: 재고 수량은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("save_inventory", []string{cache.TargetInventory},
		map[string]interface{}{"ingredient_id": input.IngredientID},
		func() (*WriteOutcome, error) {
			ingredient, err := s.ingredientRepo.FindByID(storeID, input.IngredientID)
			if err != nil {
				return nil, err
			}
			if ingredient == nil {
				return nil, fmt.Errorf("%w: 재료를 찾을 수 없습니다", apperrors.ErrNotFound)
			}

			err = s.inventoryRepo.Upsert(&model.Inventory{
				StoreID:      storeID,
				IngredientID: input.IngredientID,
				OnHand:       input.OnHand,
				SafetyStock:  input.SafetyStock,
			})
			if err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// GetInventory 매장 재고 목록 (캐시)
func (s *InventoryService) GetInventory(storeID string) ([]model.Inventory, error) {
	return cache.Fetch(s.cache, cache.FnInventory, map[string]string{
		"store_id": storeID,
	}, func() ([]model.Inventory, error) {
		return s.inventoryRepo.FindAll(storeID)
	})
}

// LowStockItem 안전재고 미달 항목
type LowStockItem struct {
	IngredientID uint    `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	OnHand       float64 `json:"on_hand"`
	SafetyStock  float64 `json:"safety_stock"`
	Shortage     float64 `json:"shortage"`
}

// GetLowStock 안전재고 미달 재료 목록
func (s *InventoryService) GetLowStock(storeID string) ([]LowStockItem, error) {
	list, err := s.GetInventory(storeID)
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItem, 0)
	for _, inv := range list {
		if inv.OnHand >= inv.SafetyStock {
			continue
		}
		items = append(items, LowStockItem{
			IngredientID: inv.IngredientID,
			Name:         inv.Ingredient.Name,
			Unit:         inv.Ingredient.Unit,
			OnHand:       inv.OnHand,
			SafetyStock:  inv.SafetyStock,
			Shortage:     inv.SafetyStock - inv.OnHand,
		})
	}
	return items, nil
}
