package service

import (
	"fmt"
	"sort"

	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// EffectiveSalesItem 확정된 하루·메뉴별 판매 수량
type EffectiveSalesItem struct {
	Date     string `json:"date"`
	MenuID   uint   `json:"menu_id,omitempty"`
	MenuName string `json:"menu_name"`
	Qty      int    `json:"qty"`
	Source   string `json:"source"` // close | override
}

// DayRecordStatus 하루의 기록 상태. UI가 "공식 마감"과 "임시 입력"을 구분하는 데 쓴다.
type DayRecordStatus struct {
	HasClose       bool  `json:"has_close"`
	HasSales       bool  `json:"has_sales"`
	HasVisitors    bool  `json:"has_visitors"`
	BestTotalSales int64 `json:"best_total_sales"`
	VisitorsBest   int   `json:"visitors_best"`
}

// ResolverService 세 소스(마감, 매출, 수량 보정)를 하나의 정본 뷰로 합친다.
// 월 매출 합계와 메뉴별 수량은 여기만 통해서 읽어야 대시보드 숫자가 어긋나지 않는다.
type ResolverService struct {
	salesRepo   repository.SalesRepository
	visitorRepo repository.VisitorRepository
	closeRepo   repository.DailyCloseRepository
	itemRepo    repository.DailySalesItemRepository
	menuRepo    repository.MenuRepository
	cache       *cache.Layer
}

func NewResolverService(
	salesRepo repository.SalesRepository,
	visitorRepo repository.VisitorRepository,
	closeRepo repository.DailyCloseRepository,
	itemRepo repository.DailySalesItemRepository,
	menuRepo repository.MenuRepository,
	cacheLayer *cache.Layer,
) *ResolverService {
	return &ResolverService{
		salesRepo:   salesRepo,
		visitorRepo: visitorRepo,
		closeRepo:   closeRepo,
		itemRepo:    itemRepo,
		menuRepo:    menuRepo,
		cache:       cacheLayer,
	}
}

// BestAvailableDailySales 하루의 확정 메뉴별 판매 수량.
// 마감에 묻힌 수량을 깔고, (날짜, 메뉴)별 보정 행이 있으면 그 값이 이긴다.
// 둘 다 없는 메뉴는 0이 아니라 아예 등장하지 않는다.
func (s *ResolverService) BestAvailableDailySales(storeID, date string) ([]EffectiveSalesItem, error) {
	return cache.Fetch(s.cache, cache.FnBestAvailableDailySales, map[string]string{
		"store_id": storeID, "date": date,
	}, func() ([]EffectiveSalesItem, error) {
		return s.resolveDay(storeID, date)
	})
}

// BestAvailableSalesRange 기간의 확정 메뉴별 판매 수량 (분석용)
func (s *ResolverService) BestAvailableSalesRange(storeID, startDate, endDate string) ([]EffectiveSalesItem, error) {
	return cache.Fetch(s.cache, cache.FnBestAvailableDailySales, map[string]string{
		"store_id": storeID, "start": startDate, "end": endDate,
	}, func() ([]EffectiveSalesItem, error) {
		closes, err := s.closeRepo.FindByDateRange(storeID, startDate, endDate)
		if err != nil {
			return nil, err
		}
		overrides, err := s.itemRepo.FindByDateRange(storeID, startDate, endDate)
		if err != nil {
			return nil, err
		}

		menus, err := s.menuRepo.FindAll(storeID)
		if err != nil {
			return nil, err
		}
		idByName := make(map[string]uint, len(menus))
		for _, m := range menus {
			idByName[m.Name] = m.ID
		}

		// (date, menu) -> item. 마감을 먼저 깔고 보정으로 덮는다.
		merged := make(map[string]EffectiveSalesItem)
		for _, c := range closes {
			for name, qty := range c.SalesItems {
				key := c.Date + "/" + name
				merged[key] = EffectiveSalesItem{
					Date: c.Date, MenuID: idByName[name], MenuName: name,
					Qty: qty, Source: "close",
				}
			}
		}
		for _, o := range overrides {
			key := o.Date + "/" + o.Menu.Name
			merged[key] = EffectiveSalesItem{
				Date: o.Date, MenuID: o.MenuID, MenuName: o.Menu.Name,
				Qty: o.Qty, Source: "override",
			}
		}

		items := make([]EffectiveSalesItem, 0, len(merged))
		for _, item := range merged {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].Date != items[j].Date {
				return items[i].Date < items[j].Date
			}
			return items[i].MenuName < items[j].MenuName
		})
		return items, nil
	})
}

// MonthlySalesTotal 월 매출 합계의 SSOT.
// 날짜별로 마감이 있으면 마감 금액, 없으면 매출 입력 금액을 쓴다.
// 어떤 날짜도 두 번 더해지지 않는다.
func (s *ResolverService) MonthlySalesTotal(storeID string, year, month int) (int64, error) {
	return cache.Fetch(s.cache, cache.FnMonthlySalesTotal, map[string]string{
		"store_id": storeID,
		"year":     fmt.Sprintf("%d", year),
		"month":    fmt.Sprintf("%d", month),
	}, func() (int64, error) {
		start, end := timeutil.MonthRange(year, month)

		closes, err := s.closeRepo.FindByDateRange(storeID, start, end)
		if err != nil {
			return 0, err
		}
		sales, err := s.salesRepo.FindByDateRange(storeID, start, end)
		if err != nil {
			return 0, err
		}

		closedDates := make(map[string]bool, len(closes))
		var total int64
		for _, c := range closes {
			closedDates[c.Date] = true
			total += c.TotalSales
		}
		for _, row := range sales {
			if !closedDates[row.Date] {
				total += row.TotalSales
			}
		}
		return total, nil
	})
}

// GetDayRecordStatus 하루의 기록 상태 조회
func (s *ResolverService) GetDayRecordStatus(storeID, date string) (*DayRecordStatus, error) {
	return cache.Fetch(s.cache, cache.FnDayRecordStatus, map[string]string{
		"store_id": storeID, "date": date,
	}, func() (*DayRecordStatus, error) {
		status := &DayRecordStatus{}

		close, err := s.closeRepo.FindByDate(storeID, date)
		if err != nil {
			return nil, err
		}
		sales, err := s.salesRepo.FindByDate(storeID, date)
		if err != nil {
			return nil, err
		}
		visitor, err := s.visitorRepo.FindByDate(storeID, date)
		if err != nil {
			return nil, err
		}

		if close != nil {
			status.HasClose = true
			status.BestTotalSales = close.TotalSales
			status.VisitorsBest = close.Visitors
		}
		if sales != nil {
			status.HasSales = true
			if !status.HasClose {
				status.BestTotalSales = sales.TotalSales
			}
		}
		if visitor != nil {
			status.HasVisitors = true
			if !status.HasClose {
				status.VisitorsBest = visitor.Visitors
			}
		}
		return status, nil
	})
}

func (s *ResolverService) resolveDay(storeID, date string) ([]EffectiveSalesItem, error) {
	close, err := s.closeRepo.FindByDate(storeID, date)
	if err != nil {
		return nil, err
	}
	overrides, err := s.itemRepo.FindByDate(storeID, date)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]EffectiveSalesItem)
	if close != nil {
		for name, qty := range close.SalesItems {
			merged[name] = EffectiveSalesItem{
				Date: date, MenuName: name, Qty: qty, Source: "close",
			}
		}
	}
	for _, o := range overrides {
		merged[o.Menu.Name] = EffectiveSalesItem{
			Date: date, MenuID: o.MenuID, MenuName: o.Menu.Name,
			Qty: o.Qty, Source: "override",
		}
	}

	items := make([]EffectiveSalesItem, 0, len(merged))
	for _, item := range merged {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].MenuName < items[j].MenuName })
	return items, nil
}
