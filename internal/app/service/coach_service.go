package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/analytics"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/minicoach"
	"github.com/jangsalab/storeops-backend/internal/salesdrop"
	"github.com/jangsalab/storeops-backend/internal/strategy"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// CoachService 하락 원인 분석, 미니코치, 전략 카드의 적재 계층.
// 엔진들은 순수 함수라서 여기서 기간을 끊고 프레임을 만들어 넘긴다.
type CoachService struct {
	salesRepo   repository.SalesRepository
	visitorRepo repository.VisitorRepository
	resolver    *ResolverService
	analytics   *AnalyticsService
}

func NewCoachService(
	salesRepo repository.SalesRepository,
	visitorRepo repository.VisitorRepository,
	resolver *ResolverService,
	analyticsService *AnalyticsService,
) *CoachService {
	return &CoachService{
		salesRepo:   salesRepo,
		visitorRepo: visitorRepo,
		resolver:    resolver,
		analytics:   analyticsService,
	}
}

// 비교 기준
const (
	CompareWeek  = "week"  // 1주 전 같은 구간
	CompareMonth = "month" // 4주 전 같은 구간
)

// AnalyzeSalesDrop 최근 구간과 비교 구간을 만들어 하락 원인을 분류한다.
// periodDays는 7, 14, 30 중 하나. baseDate가 비면 어제(KST)를 쓴다.
func (s *CoachService) AnalyzeSalesDrop(storeID string, periodDays int, compareMode, baseDate string) (*salesdrop.Result, error) {
	if periodDays != 7 && periodDays != 14 && periodDays != 30 {
		return nil, fmt.Errorf("%w: 분석 기간은 7, 14, 30일 중 하나여야 합니다", apperrors.ErrInvalidInput)
	}

	shift := 7
	switch compareMode {
	case CompareWeek:
	case CompareMonth:
		shift = 28
	default:
		return nil, fmt.Errorf("%w: 비교 기준은 week 또는 month여야 합니다", apperrors.ErrInvalidInput)
	}

	if baseDate == "" {
		baseDate = timeutil.YesterdayKST()
	} else if _, err := timeutil.ParseDate(baseDate); err != nil {
		return nil, fmt.Errorf("%w: 날짜 형식은 YYYY-MM-DD 입니다", apperrors.ErrInvalidInput)
	}

	recentStart := timeutil.AddDays(baseDate, -(periodDays - 1))
	baselineEnd := timeutil.AddDays(baseDate, -shift)
	baselineStart := timeutil.AddDays(recentStart, -shift)

	recent, err := s.loadWindow(storeID, recentStart, baseDate)
	if err != nil {
		return nil, err
	}
	baseline, err := s.loadWindow(storeID, baselineStart, baselineEnd)
	if err != nil {
		return nil, err
	}

	return salesdrop.Analyze(recent, baseline), nil
}

// GetMinicoach 홈 화면 한 줄 코칭
func (s *CoachService) GetMinicoach(storeID string) (minicoach.Advice, error) {
	end := timeutil.YesterdayKST()
	start := timeutil.AddDays(end, -29)

	sales, err := s.salesRepo.FindByDateRange(storeID, start, end)
	if err != nil {
		return minicoach.Advice{}, err
	}

	history := make([]minicoach.DaySales, 0, len(sales))
	for _, row := range sales {
		history = append(history, minicoach.DaySales{
			Date:       row.Date,
			TotalSales: row.TotalSales,
		})
	}
	return minicoach.Coach(history), nil
}

// GetStrategyCards 이번 달 지표로 전략 카드를 만든다
func (s *CoachService) GetStrategyCards(storeID string, year, month int, profile *strategy.HealthProfile) ([]strategy.Card, error) {
	ctx := strategy.Context{VisitorsTrend: "flat", OverallScore: 50}

	breakEven, err := s.analytics.GetBreakEven(storeID, year, month)
	if err != nil {
		return nil, err
	}
	if breakEven.GapRatio != nil {
		ctx.BreakEvenGapRatio = *breakEven.GapRatio
	}

	costs, err := s.analytics.GetMenuCosts(storeID)
	if err != nil {
		return nil, err
	}
	ctx.MarginMenuRatio = marginMenuRatio(costs)

	startDate, endDate := timeutil.MonthRange(year, month)
	usage, err := s.analytics.GetIngredientUsage(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	ctx.IngredientConcentration = ingredientConcentration(usage)

	trend, err := s.visitorsTrend(storeID)
	if err != nil {
		return nil, err
	}
	ctx.VisitorsTrend = trend
	ctx.OverallScore = overallScore(ctx)

	return strategy.BuildCards(ctx, profile), nil
}

// loadWindow 구간의 일별 매출·방문자·확정 메뉴 수량을 모은다.
// 매출 기록이 있는 날만 하루로 친다.
func (s *CoachService) loadWindow(storeID, startDate, endDate string) ([]salesdrop.DayData, error) {
	sales, err := s.salesRepo.FindByDateRange(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	visitors, err := s.visitorRepo.FindByDateRange(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	items, err := s.resolver.BestAvailableSalesRange(storeID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	visitorByDate := make(map[string]int, len(visitors))
	for _, v := range visitors {
		visitorByDate[v.Date] = v.Visitors
	}
	qtyByDate := make(map[string]map[string]int)
	for _, item := range items {
		if qtyByDate[item.Date] == nil {
			qtyByDate[item.Date] = make(map[string]int)
		}
		qtyByDate[item.Date][item.MenuName] = item.Qty
	}

	window := make([]salesdrop.DayData, 0, len(sales))
	for _, row := range sales {
		day := salesdrop.DayData{
			Date:       row.Date,
			TotalSales: row.TotalSales,
			MenuQty:    qtyByDate[row.Date],
		}
		if count, ok := visitorByDate[row.Date]; ok {
			v := count
			day.Visitors = &v
		}
		window = append(window, day)
	}
	return window, nil
}

// marginMenuRatio 원가율 40% 이하인 메뉴 비중
func marginMenuRatio(costs []analytics.MenuCostLine) float64 {
	if len(costs) == 0 {
		return 0
	}
	good := 0
	for _, line := range costs {
		if line.CostRate != nil && *line.CostRate <= 0.40 {
			good++
		}
	}
	return float64(good) / float64(len(costs))
}

// ingredientConcentration 상위 3개 재료의 지출 집중도
func ingredientConcentration(report *IngredientUsageReport) float64 {
	var total, top int64
	for i, summary := range report.Summaries {
		total += summary.TotalSpend
		if i < 3 {
			top += summary.TotalSpend
		}
	}
	if total == 0 {
		return 0
	}
	return float64(top) / float64(total)
}

// visitorsTrend 최근 7일 vs 직전 7일 방문자 평균 비교
func (s *CoachService) visitorsTrend(storeID string) (string, error) {
	end := timeutil.YesterdayKST()
	mid := timeutil.AddDays(end, -7)
	start := timeutil.AddDays(end, -13)

	rows, err := s.visitorRepo.FindByDateRange(storeID, start, end)
	if err != nil {
		return "", err
	}

	var recentSum, prevSum, recentDays, prevDays int
	for _, row := range rows {
		if row.Date > mid {
			recentSum += row.Visitors
			recentDays++
		} else {
			prevSum += row.Visitors
			prevDays++
		}
	}
	if recentDays == 0 || prevDays == 0 || prevSum == 0 {
		return "flat", nil
	}

	recentAvg := float64(recentSum) / float64(recentDays)
	prevAvg := float64(prevSum) / float64(prevDays)
	change := (recentAvg - prevAvg) / prevAvg * 100
	switch {
	case change < -5:
		return "down", nil
	case change > 5:
		return "up", nil
	default:
		return "flat", nil
	}
}

// overallScore 지표를 0~100 점수 하나로 거칠게 합친다
func overallScore(ctx strategy.Context) int {
	score := 50

	if ctx.BreakEvenGapRatio >= 1.0 {
		score += 20
	} else if ctx.BreakEvenGapRatio > 0 && ctx.BreakEvenGapRatio < 0.95 {
		score -= 20
	}

	if ctx.MarginMenuRatio >= 0.4 {
		score += 15
	} else if ctx.MarginMenuRatio < 0.2 {
		score -= 15
	}

	switch ctx.VisitorsTrend {
	case "up":
		score += 10
	case "down":
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
