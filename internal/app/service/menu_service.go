package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// MenuService 메뉴 마스터 서비스
type MenuService struct {
	menuRepo    repository.MenuRepository
	recipeRepo  repository.RecipeRepository
	itemRepo    repository.DailySalesItemRepository
	coordinator *WriteCoordinator
	cache       *cache.Layer
}

func NewMenuService(
	menuRepo repository.MenuRepository,
	recipeRepo repository.RecipeRepository,
	itemRepo repository.DailySalesItemRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *MenuService {
	return &MenuService{
		menuRepo:    menuRepo,
		recipeRepo:  recipeRepo,
		itemRepo:    itemRepo,
		coordinator: coordinator,
		cache:       cacheLayer,
	}
}

// SaveMenuInput 메뉴 생성/수정 입력
type SaveMenuInput struct {
	Name          string `json:"name" binding:"required"`
	Price         int64  `json:"price"`
	Category      string `json:"category"`
	CookingMethod string `json:"cooking_method"`
	IsCore        bool   `json:"is_core"`
}

// CreateMenu 메뉴 생성. 같은 이름이 이미 있으면 거부한다.
func (s *MenuService) CreateMenu(storeID string, input SaveMenuInput) (*WriteOutcome, error) {
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: 가격은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("create_menu", []string{cache.TargetMenus},
		map[string]interface{}{"name": input.Name},
		func() (*WriteOutcome, error) {
			existing, err := s.menuRepo.FindByName(storeID, input.Name)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, fmt.Errorf("%w: 이미 등록된 메뉴입니다: %s", apperrors.ErrConflict, input.Name)
			}

			menu := &model.Menu{
				StoreID:       storeID,
				Name:          input.Name,
				Price:         input.Price,
				Category:      input.Category,
				CookingMethod: input.CookingMethod,
				IsCore:        input.IsCore,
			}
			if err := s.menuRepo.Create(menu); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// UpdateMenu 메뉴 수정
func (s *MenuService) UpdateMenu(storeID string, menuID uint, input SaveMenuInput) (*WriteOutcome, error) {
	if input.Price < 0 {
		return nil, fmt.Errorf("%w: 가격은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("update_menu", []string{cache.TargetMenus},
		map[string]interface{}{"menu_id": menuID},
		func() (*WriteOutcome, error) {
			menu, err := s.menuRepo.FindByID(storeID, menuID)
			if err != nil {
				return nil, err
			}
			if menu == nil {
				return nil, apperrors.ErrNotFound
			}

			menu.Name = input.Name
			menu.Price = input.Price
			menu.Category = input.Category
			menu.CookingMethod = input.CookingMethod
			menu.IsCore = input.IsCore
			if err := s.menuRepo.Update(menu); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// DeleteMenu 메뉴 삭제. 레시피나 판매 기록이 참조하면 아무것도 지우지 않고
// 참조 수를 담아 거부한다.
func (s *MenuService) DeleteMenu(storeID string, menuID uint) (*WriteOutcome, error) {
	return s.coordinator.RunWrite("delete_menu", []string{cache.TargetMenus},
		map[string]interface{}{"menu_id": menuID},
		func() (*WriteOutcome, error) {
			menu, err := s.menuRepo.FindByID(storeID, menuID)
			if err != nil {
				return nil, err
			}
			if menu == nil {
				return nil, apperrors.ErrNotFound
			}

			recipeCount, err := s.recipeRepo.CountByMenu(storeID, menuID)
			if err != nil {
				return nil, err
			}
			salesCount, err := s.itemRepo.CountByMenu(storeID, menuID)
			if err != nil {
				return nil, err
			}
			if recipeCount > 0 || salesCount > 0 {
				return &WriteOutcome{
					OK:     false,
					Reason: fmt.Sprintf("%s은(는) 레시피 %d건, 판매내역 %d건에서 사용 중이라 삭제할 수 없습니다", menu.Name, recipeCount, salesCount),
					References: map[string]int64{
						"레시피":  recipeCount,
						"판매내역": salesCount,
					},
				}, nil
			}

			if err := s.menuRepo.Delete(storeID, menuID); err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// GetMenus 매장 메뉴 목록 (캐시)
func (s *MenuService) GetMenus(storeID string) ([]model.Menu, error) {
	return cache.Fetch(s.cache, cache.FnMenus, map[string]string{
		"store_id": storeID,
	}, func() ([]model.Menu, error) {
		return s.menuRepo.FindAll(storeID)
	})
}
