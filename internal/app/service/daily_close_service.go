package service

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// DailyCloseService 일일 마감 서비스.
// 마감 저장은 트랜잭션으로 매출·방문자·메뉴별 수량을 함께 역기입해서
// 세 소스가 마감 직후에는 항상 일치하게 만든다.
type DailyCloseService struct {
	db            *gorm.DB
	closeRepo     repository.DailyCloseRepository
	itemRepo      repository.DailySalesItemRepository
	menuRepo      repository.MenuRepository
	recipeRepo    repository.RecipeRepository
	inventoryRepo repository.InventoryRepository
	coordinator   *WriteCoordinator
	cache         *cache.Layer
}

func NewDailyCloseService(
	db *gorm.DB,
	closeRepo repository.DailyCloseRepository,
	itemRepo repository.DailySalesItemRepository,
	menuRepo repository.MenuRepository,
	recipeRepo repository.RecipeRepository,
	inventoryRepo repository.InventoryRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *DailyCloseService {
	return &DailyCloseService{
		db:            db,
		closeRepo:     closeRepo,
		itemRepo:      itemRepo,
		menuRepo:      menuRepo,
		recipeRepo:    recipeRepo,
		inventoryRepo: inventoryRepo,
		coordinator:   coordinator,
		cache:         cacheLayer,
	}
}

// SaveDailyCloseInput 마감 저장 입력
type SaveDailyCloseInput struct {
	Date          string               `json:"date" binding:"required,kstdate"`
	CardSales     int64                `json:"card_sales"`
	CashSales     int64                `json:"cash_sales"`
	TotalSales    int64                `json:"total_sales"`
	Visitors      int                  `json:"visitors"`
	OutOfStock    bool                 `json:"out_of_stock"`
	Complaint     bool                 `json:"complaint"`
	GroupCustomer bool                 `json:"group_customer"`
	StaffIssue    bool                 `json:"staff_issue"`
	Memo          string               `json:"memo"`
	SalesItems    model.MenuQuantities `json:"sales_items"` // 메뉴명 -> 수량
}

// SaveDailyClose 공식 마감 저장. 한 트랜잭션으로:
//  1. DailyClose upsert
//  2. Sales·Visitors 역기입 (같은 날짜)
//  3. 메뉴별 수량을 DailySalesItem으로 역기입
//
// 커밋 후 레시피 기준 재고 자동 차감을 시도한다. 차감 실패는 마감을
// 되돌리지 않고 경고로만 남는다.
func (s *DailyCloseService) SaveDailyClose(storeID string, input SaveDailyCloseInput) (*WriteOutcome, error) {
	if err := validateSalesAmounts(input.CardSales, input.CashSales, input.TotalSales); err != nil {
		return nil, err
	}
	if input.Visitors < 0 {
		return nil, fmt.Errorf("%w: 방문자 수는 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}
	if _, err := timeutil.ParseDate(input.Date); err != nil {
		return nil, fmt.Errorf("%w: 날짜 형식은 YYYY-MM-DD 입니다", apperrors.ErrInvalidInput)
	}
	for name, qty := range input.SalesItems {
		if qty < 0 {
			return nil, fmt.Errorf("%w: %s 판매 수량은 음수일 수 없습니다", apperrors.ErrInvalidInput, name)
		}
	}

	total := input.TotalSales
	if total == 0 && (input.CardSales > 0 || input.CashSales > 0) {
		total = input.CardSales + input.CashSales
	}

	targets := []string{cache.TargetSales, cache.TargetVisitors, cache.TargetDailySalesItems}
	return s.coordinator.RunWrite("save_daily_close", targets,
		map[string]interface{}{"date": input.Date},
		func() (*WriteOutcome, error) {
			rows := 0
			err := s.db.Transaction(func(tx *gorm.DB) error {
				close := &model.DailyClose{
					StoreID:       storeID,
					Date:          input.Date,
					CardSales:     input.CardSales,
					CashSales:     input.CashSales,
					TotalSales:    total,
					Visitors:      input.Visitors,
					OutOfStock:    input.OutOfStock,
					Complaint:     input.Complaint,
					GroupCustomer: input.GroupCustomer,
					StaffIssue:    input.StaffIssue,
					Memo:          input.Memo,
					SalesItems:    input.SalesItems,
				}
				if err := s.closeRepo.Upsert(tx, close); err != nil {
					return err
				}
				rows++

				// 같은 날짜의 매출·방문자 행을 마감 내용으로 맞춘다
				if err := repository.NewSalesRepository(tx).Upsert(&model.Sales{
					StoreID:    storeID,
					Date:       input.Date,
					CardSales:  input.CardSales,
					CashSales:  input.CashSales,
					TotalSales: total,
				}); err != nil {
					return err
				}
				rows++

				if err := repository.NewVisitorRepository(tx).Upsert(&model.Visitor{
					StoreID:  storeID,
					Date:     input.Date,
					Visitors: input.Visitors,
				}); err != nil {
					return err
				}
				rows++

				items, err := s.buildSalesItems(tx, storeID, input.Date, input.SalesItems)
				if err != nil {
					return err
				}
				if err := s.itemRepo.UpsertMany(tx, items); err != nil {
					return err
				}
				rows += len(items)
				return nil
			})
			if err != nil {
				return nil, err
			}

			s.deductInventory(storeID, input.Date, input.SalesItems)

			return &WriteOutcome{
				OK:          true,
				RowsWritten: rows,
				Message:     fmt.Sprintf("%s 마감이 저장되었습니다", input.Date),
			}, nil
		})
}

// GetDailyClose 특정 날짜 마감 조회. 없으면 NotFound.
func (s *DailyCloseService) GetDailyClose(storeID, date string) (*model.DailyClose, error) {
	close, err := s.closeRepo.FindByDate(storeID, date)
	if err != nil {
		return nil, err
	}
	if close == nil {
		return nil, apperrors.ErrNotFound
	}
	return close, nil
}

// GetCloseRange 기간 마감 조회
func (s *DailyCloseService) GetCloseRange(storeID, startDate, endDate string) ([]model.DailyClose, error) {
	return s.closeRepo.FindByDateRange(storeID, startDate, endDate)
}

// buildSalesItems 메뉴명 기반 수량을 메뉴 ID 기반 행으로 변환한다.
// 등록되지 않은 메뉴명은 거부한다. 메뉴 조회는 마감 트랜잭션 스냅샷 안에서 이뤄진다.
func (s *DailyCloseService) buildSalesItems(tx *gorm.DB, storeID, date string, quantities model.MenuQuantities) ([]model.DailySalesItem, error) {
	if len(quantities) == 0 {
		return nil, nil
	}

	menus, err := repository.NewMenuRepository(tx).FindAll(storeID)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]uint, len(menus))
	for _, m := range menus {
		byName[m.Name] = m.ID
	}

	items := make([]model.DailySalesItem, 0, len(quantities))
	for name, qty := range quantities {
		menuID, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: 등록되지 않은 메뉴입니다: %s", apperrors.ErrInvalidInput, name)
		}
		items = append(items, model.DailySalesItem{
			StoreID: storeID,
			Date:    date,
			MenuID:  menuID,
			Qty:     qty,
		})
	}
	return items, nil
}

// deductInventory 판매 수량 × 레시피 사용량만큼 재고를 차감한다.
// 실패해도 마감은 유지된다.
func (s *DailyCloseService) deductInventory(storeID, date string, quantities model.MenuQuantities) {
	if len(quantities) == 0 {
		return
	}

	recipes, err := s.recipeRepo.FindAll(storeID)
	if err != nil {
		logger.Warn("재고 자동 차감 건너뜀: 레시피 조회 실패", map[string]interface{}{
			"store_id": storeID,
			"date":     date,
			"error":    err.Error(),
		})
		return
	}

	menus, err := s.menuRepo.FindAll(storeID)
	if err != nil {
		logger.Warn("재고 자동 차감 건너뜀: 메뉴 조회 실패", map[string]interface{}{
			"store_id": storeID,
			"date":     date,
			"error":    err.Error(),
		})
		return
	}
	nameByID := make(map[uint]string, len(menus))
	for _, m := range menus {
		nameByID[m.ID] = m.Name
	}

	// 재료별 총 사용량 집계
	usage := make(map[uint]float64)
	for _, recipe := range recipes {
		qty, ok := quantities[nameByID[recipe.MenuID]]
		if !ok || qty == 0 {
			continue
		}
		usage[recipe.IngredientID] += float64(qty) * recipe.Qty
	}

	for ingredientID, amount := range usage {
		if err := s.inventoryRepo.AdjustOnHand(nil, storeID, ingredientID, -amount); err != nil {
			logger.Warn("재고 차감 실패", map[string]interface{}{
				"store_id":      storeID,
				"ingredient_id": ingredientID,
				"amount":        amount,
			})
		}
	}
	if len(usage) > 0 {
		s.cache.SoftInvalidate("inventory_auto_deduct", []string{cache.TargetInventory})
	}
}
