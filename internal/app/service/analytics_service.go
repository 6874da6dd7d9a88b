package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/analytics"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// AnalyticsService 분석 커널에 프레임을 적재해 주는 글루 계층.
// 계산 자체는 전부 internal/analytics의 순수 함수가 한다.
type AnalyticsService struct {
	menuRepo       repository.MenuRepository
	ingredientRepo repository.IngredientRepository
	recipeRepo     repository.RecipeRepository
	inventoryRepo  repository.InventoryRepository
	expenseRepo    repository.ExpenseRepository
	targetRepo     repository.TargetRepository
	salesRepo      repository.SalesRepository
	visitorRepo    repository.VisitorRepository
	resolver       *ResolverService
	cache          *cache.Layer
}

func NewAnalyticsService(
	menuRepo repository.MenuRepository,
	ingredientRepo repository.IngredientRepository,
	recipeRepo repository.RecipeRepository,
	inventoryRepo repository.InventoryRepository,
	expenseRepo repository.ExpenseRepository,
	targetRepo repository.TargetRepository,
	salesRepo repository.SalesRepository,
	visitorRepo repository.VisitorRepository,
	resolver *ResolverService,
	cacheLayer *cache.Layer,
) *AnalyticsService {
	return &AnalyticsService{
		menuRepo:       menuRepo,
		ingredientRepo: ingredientRepo,
		recipeRepo:     recipeRepo,
		inventoryRepo:  inventoryRepo,
		expenseRepo:    expenseRepo,
		targetRepo:     targetRepo,
		salesRepo:      salesRepo,
		visitorRepo:    visitorRepo,
		resolver:       resolver,
		cache:          cacheLayer,
	}
}

// GetMenuCosts 메뉴별 원가 분석 (캐시)
func (s *AnalyticsService) GetMenuCosts(storeID string) ([]analytics.MenuCostLine, error) {
	return cache.Fetch(s.cache, cache.FnMenuCost, map[string]string{
		"store_id": storeID,
	}, func() ([]analytics.MenuCostLine, error) {
		menus, err := s.menuRepo.FindAll(storeID)
		if err != nil {
			return nil, err
		}
		recipes, err := s.recipeRepo.FindAll(storeID)
		if err != nil {
			return nil, err
		}
		return analytics.ComputeMenuCosts(menus, recipes), nil
	})
}

// GetMenuABC 기간 메뉴 ABC 분석 (매출 기준, 캐시)
func (s *AnalyticsService) GetMenuABC(storeID, startDate, endDate string) ([]analytics.ABCRow, error) {
	return cache.Fetch(s.cache, cache.FnAbcAnalysis, map[string]string{
		"store_id": storeID, "start": startDate, "end": endDate, "kind": "menu",
	}, func() ([]analytics.ABCRow, error) {
		inputs, err := s.menuRevenueInputs(storeID, startDate, endDate)
		if err != nil {
			return nil, err
		}
		return analytics.ClassifyABC(inputs), nil
	})
}

// GetIngredientABC 기간 재료 ABC 분석 (지출 기준, 캐시)
func (s *AnalyticsService) GetIngredientABC(storeID, startDate, endDate string) ([]analytics.ABCRow, error) {
	return cache.Fetch(s.cache, cache.FnAbcAnalysis, map[string]string{
		"store_id": storeID, "start": startDate, "end": endDate, "kind": "ingredient",
	}, func() ([]analytics.ABCRow, error) {
		_, summaries, err := s.ingredientUsage(storeID, startDate, endDate)
		if err != nil {
			return nil, err
		}
		inputs := make([]analytics.ABCInput, 0, len(summaries))
		for _, summary := range summaries {
			inputs = append(inputs, analytics.ABCInput{
				Name:  summary.Name,
				Qty:   int(summary.TotalAmount),
				Value: summary.TotalSpend,
			})
		}
		return analytics.ClassifyABC(inputs), nil
	})
}

// IngredientUsageReport 기간 재료 사용 분석 결과
type IngredientUsageReport struct {
	Daily     []analytics.DailyIngredientUsage  `json:"daily"`
	Summaries []analytics.IngredientUsageSummary `json:"summaries"`
}

// GetIngredientUsage 기간 재료 사용량·지출 (캐시)
func (s *AnalyticsService) GetIngredientUsage(storeID, startDate, endDate string) (*IngredientUsageReport, error) {
	return cache.Fetch(s.cache, cache.FnIngredientUsage, map[string]string{
		"store_id": storeID, "start": startDate, "end": endDate,
	}, func() (*IngredientUsageReport, error) {
		daily, summaries, err := s.ingredientUsage(storeID, startDate, endDate)
		if err != nil {
			return nil, err
		}
		return &IngredientUsageReport{Daily: daily, Summaries: summaries}, nil
	})
}

// GetOrderRecommendations 기간 사용량 기반 발주 추천
func (s *AnalyticsService) GetOrderRecommendations(storeID, startDate, endDate string, leadTimeDays int) ([]analytics.OrderRecommendation, error) {
	_, summaries, err := s.ingredientUsage(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventoryRepo.FindAll(storeID)
	if err != nil {
		return nil, err
	}
	periodDays := timeutil.DaysBetween(startDate, endDate) + 1
	return analytics.RecommendOrders(summaries, inventory, periodDays, leadTimeDays), nil
}

// GetInventoryTurnover 기간 재고 회전율
func (s *AnalyticsService) GetInventoryTurnover(storeID, startDate, endDate string) ([]analytics.InventoryTurnover, error) {
	_, summaries, err := s.ingredientUsage(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	inventory, err := s.inventoryRepo.FindAll(storeID)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeTurnover(summaries, inventory), nil
}

// BreakEvenReport 월 손익분기 분석 결과
type BreakEvenReport struct {
	Year          int                    `json:"year"`
	Month         int                    `json:"month"`
	Structure     analytics.CostStructure `json:"structure"`
	BreakEven     *float64               `json:"break_even,omitempty"` // 계산 불가면 null
	ActualSales   int64                  `json:"actual_sales"`
	GapRatio      *float64               `json:"gap_ratio,omitempty"` // 실적 / 손익분기
}

// GetBreakEven 월 손익분기 분석 (캐시)
func (s *AnalyticsService) GetBreakEven(storeID string, year, month int) (*BreakEvenReport, error) {
	return cache.Fetch(s.cache, cache.FnBreakEven, map[string]string{
		"store_id": storeID,
		"year":     fmt.Sprintf("%d", year),
		"month":    fmt.Sprintf("%d", month),
	}, func() (*BreakEvenReport, error) {
		items, err := s.expenseRepo.FindByMonth(storeID, year, month)
		if err != nil {
			return nil, err
		}
		actual, err := s.resolver.MonthlySalesTotal(storeID, year, month)
		if err != nil {
			return nil, err
		}

		cs := analytics.DecomposeExpenses(items)
		report := &BreakEvenReport{
			Year:        year,
			Month:       month,
			Structure:   cs,
			BreakEven:   analytics.BreakEven(cs.FixedTotal, cs.VariableRatio),
			ActualSales: actual,
		}
		if report.BreakEven != nil && *report.BreakEven > 0 {
			ratio := float64(actual) / *report.BreakEven
			report.GapRatio = &ratio
		}
		return report, nil
	})
}

// GetScenarios 월 비용구조 기반 시나리오 시뮬레이션 (캐시)
func (s *AnalyticsService) GetScenarios(storeID string, year, month int, baseSales int64) ([]analytics.Scenario, error) {
	return cache.Fetch(s.cache, cache.FnScenarios, map[string]string{
		"store_id": storeID,
		"year":     fmt.Sprintf("%d", year),
		"month":    fmt.Sprintf("%d", month),
		"base":     fmt.Sprintf("%d", baseSales),
	}, func() ([]analytics.Scenario, error) {
		items, err := s.expenseRepo.FindByMonth(storeID, year, month)
		if err != nil {
			return nil, err
		}
		return analytics.SimulateScenarios(baseSales, analytics.DecomposeExpenses(items)), nil
	})
}

// GetDailySplit 월 목표의 주중/주말 일 단위 분해
func (s *AnalyticsService) GetDailySplit(storeID string, year, month int, weekdayPct, weekendPct float64) (*analytics.DailySplit, error) {
	target, err := s.targetRepo.FindByMonth(storeID, year, month)
	if err != nil {
		return nil, err
	}
	var monthlyTarget int64
	if target != nil {
		monthlyTarget = target.TargetSales
	}

	items, err := s.expenseRepo.FindByMonth(storeID, year, month)
	if err != nil {
		return nil, err
	}
	cs := analytics.DecomposeExpenses(items)

	return analytics.SplitWeekdayWeekend(monthlyTarget, weekdayPct, weekendPct, cs.FixedTotal, cs.VariableRatio)
}

// GetTargetAnalysis 월중 목표 진도 분석 (캐시)
func (s *AnalyticsService) GetTargetAnalysis(storeID string, year, month int) (*analytics.TargetGap, error) {
	return cache.Fetch(s.cache, cache.FnTargetAnalysis, map[string]string{
		"store_id": storeID,
		"year":     fmt.Sprintf("%d", year),
		"month":    fmt.Sprintf("%d", month),
	}, func() (*analytics.TargetGap, error) {
		target, err := s.targetRepo.FindByMonth(storeID, year, month)
		if err != nil {
			return nil, err
		}
		var targetSales int64
		if target != nil {
			targetSales = target.TargetSales
		}

		actual, err := s.resolver.MonthlySalesTotal(storeID, year, month)
		if err != nil {
			return nil, err
		}

		totalDays := timeutil.DaysInMonth(year, month)
		elapsed := elapsedDaysKST(year, month, totalDays)

		gap := analytics.AnalyzeTargetGap(actual, targetSales, elapsed, totalDays)
		return &gap, nil
	})
}

// CorrelationReport 기간 매출-방문자 상관 분석 결과
type CorrelationReport struct {
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	JoinedDays  int      `json:"joined_days"`            // 매출·방문자가 둘 다 있는 날 수
	Correlation *float64 `json:"correlation,omitempty"` // 피어슨 r. 표본 부족이면 null
}

// GetSalesVisitorCorrelation 기간 내 매출과 방문자 수의 피어슨 상관
func (s *AnalyticsService) GetSalesVisitorCorrelation(storeID, startDate, endDate string) (*CorrelationReport, error) {
	sales, err := s.salesRepo.FindByDateRange(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	visitors, err := s.visitorRepo.FindByDateRange(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	visitorsByDate := make(map[string]int, len(visitors))
	for _, v := range visitors {
		visitorsByDate[v.Date] = v.Visitors
	}

	var xs, ys []float64
	for _, day := range sales {
		v, ok := visitorsByDate[day.Date]
		if !ok {
			continue
		}
		xs = append(xs, float64(v))
		ys = append(ys, float64(day.TotalSales))
	}

	return &CorrelationReport{
		StartDate:   startDate,
		EndDate:     endDate,
		JoinedDays:  len(xs),
		Correlation: analytics.PearsonCorrelation(xs, ys),
	}, nil
}

// ingredientUsage 확정 판매 수량 x 레시피로 재료 사용량을 만든다
func (s *AnalyticsService) ingredientUsage(storeID, startDate, endDate string) ([]analytics.DailyIngredientUsage, []analytics.IngredientUsageSummary, error) {
	items, err := s.resolver.BestAvailableSalesRange(storeID, startDate, endDate)
	if err != nil {
		return nil, nil, err
	}
	recipes, err := s.recipeRepo.FindAll(storeID)
	if err != nil {
		return nil, nil, err
	}
	ingredients, err := s.ingredientRepo.FindAll(storeID)
	if err != nil {
		return nil, nil, err
	}

	quantities := make([]analytics.MenuDayQty, 0, len(items))
	for _, item := range items {
		quantities = append(quantities, analytics.MenuDayQty{
			Date:     item.Date,
			MenuID:   item.MenuID,
			MenuName: item.MenuName,
			Qty:      item.Qty,
		})
	}

	daily, summaries := analytics.ComputeIngredientUsage(quantities, recipes, ingredients)
	return daily, summaries, nil
}

// menuRevenueInputs 확정 판매 수량 x 메뉴 가격으로 ABC 입력을 만든다
func (s *AnalyticsService) menuRevenueInputs(storeID, startDate, endDate string) ([]analytics.ABCInput, error) {
	items, err := s.resolver.BestAvailableSalesRange(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	menus, err := s.menuRepo.FindAll(storeID)
	if err != nil {
		return nil, err
	}
	priceByName := make(map[string]int64, len(menus))
	for _, m := range menus {
		priceByName[m.Name] = m.Price
	}

	qtyByMenu := make(map[string]int)
	for _, item := range items {
		qtyByMenu[item.MenuName] += item.Qty
	}

	inputs := make([]analytics.ABCInput, 0, len(qtyByMenu))
	for name, qty := range qtyByMenu {
		inputs = append(inputs, analytics.ABCInput{
			Name:  name,
			Qty:   qty,
			Value: int64(qty) * priceByName[name],
		})
	}
	return inputs, nil
}

// elapsedDaysKST 해당 월에서 오늘(KST)까지 지난 일수. 지난 달이면 전체, 다음 달이면 0.
func elapsedDaysKST(year, month, totalDays int) int {
	nowYear, nowMonth := timeutil.CurrentYearMonthKST()
	switch {
	case year < nowYear || (year == nowYear && month < nowMonth):
		return totalDays
	case year > nowYear || (year == nowYear && month > nowMonth):
		return 0
	default:
		return timeutil.NowKST().Day()
	}
}
