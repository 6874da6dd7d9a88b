package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
)

// AnalyticsController 분석 읽기 전용 API. 모든 계산은 서비스·커널에서 일어난다.
type AnalyticsController struct {
	analyticsService  *service.AnalyticsService
	abcHistoryService *service.ABCHistoryService
}

func NewAnalyticsController(
	analyticsService *service.AnalyticsService,
	abcHistoryService *service.ABCHistoryService,
) *AnalyticsController {
	return &AnalyticsController{
		analyticsService:  analyticsService,
		abcHistoryService: abcHistoryService,
	}
}

// GET /api/v1/analytics/menu-costs
func (ctrl *AnalyticsController) GetMenuCosts(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	lines, err := ctrl.analyticsService.GetMenuCosts(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"menus": lines, "count": len(lines)})
}

// GET /api/v1/analytics/abc?kind=menu&start=...&end=...
func (ctrl *AnalyticsController) GetABC(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	kind := c.DefaultQuery("kind", "menu")
	switch kind {
	case "menu":
		rows, err := ctrl.analyticsService.GetMenuABC(storeID, start, end)
		if err != nil {
			errors.RespondWithKind(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "rows": rows})
	case "ingredient":
		rows, err := ctrl.analyticsService.GetIngredientABC(storeID, start, end)
		if err != nil {
			errors.RespondWithKind(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"kind": kind, "rows": rows})
	default:
		errors.BadRequest(c, errors.ValidationInvalidInput, "kind는 menu 또는 ingredient 입니다")
	}
}

// GET /api/v1/analytics/abc/history?year=2026&month=7
func (ctrl *AnalyticsController) GetABCHistory(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	rows, err := ctrl.abcHistoryService.GetHistory(storeID, year, month)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

// GET /api/v1/analytics/ingredient-usage?start=...&end=...
func (ctrl *AnalyticsController) GetIngredientUsage(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	report, err := ctrl.analyticsService.GetIngredientUsage(storeID, start, end)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/analytics/order-recommendations?start=...&end=...&lead_time=3
func (ctrl *AnalyticsController) GetOrderRecommendations(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	leadTime, err := strconv.Atoi(c.DefaultQuery("lead_time", "3"))
	if err != nil || leadTime < 0 {
		errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 lead_time 형식입니다")
		return
	}

	recs, err := ctrl.analyticsService.GetOrderRecommendations(storeID, start, end, leadTime)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

// GET /api/v1/analytics/inventory-turnover?start=...&end=...
func (ctrl *AnalyticsController) GetInventoryTurnover(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	rows, err := ctrl.analyticsService.GetInventoryTurnover(storeID, start, end)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows)})
}

// GET /api/v1/analytics/break-even?year=2026&month=8
func (ctrl *AnalyticsController) GetBreakEven(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	report, err := ctrl.analyticsService.GetBreakEven(storeID, year, month)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/analytics/scenarios?year=2026&month=8&base_sales=15000000
func (ctrl *AnalyticsController) GetScenarios(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	var baseSales int64
	if baseStr := c.Query("base_sales"); baseStr != "" {
		parsed, err := strconv.ParseInt(baseStr, 10, 64)
		if err != nil || parsed < 0 {
			errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 base_sales 형식입니다")
			return
		}
		baseSales = parsed
	}

	scenarios, err := ctrl.analyticsService.GetScenarios(storeID, year, month, baseSales)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": scenarios})
}

// GET /api/v1/analytics/daily-split?year=2026&month=8&weekday_pct=70&weekend_pct=30
func (ctrl *AnalyticsController) GetDailySplit(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	weekdayPct, err1 := strconv.ParseFloat(c.DefaultQuery("weekday_pct", "70"), 64)
	weekendPct, err2 := strconv.ParseFloat(c.DefaultQuery("weekend_pct", "30"), 64)
	if err1 != nil || err2 != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 비율 형식입니다")
		return
	}

	split, err := ctrl.analyticsService.GetDailySplit(storeID, year, month, weekdayPct, weekendPct)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, split)
}

// GET /api/v1/analytics/sales-visitor-correlation?start=...&end=...
func (ctrl *AnalyticsController) GetSalesVisitorCorrelation(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	report, err := ctrl.analyticsService.GetSalesVisitorCorrelation(storeID, start, end)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GET /api/v1/analytics/target-analysis?year=2026&month=8
func (ctrl *AnalyticsController) GetTargetAnalysis(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	gap, err := ctrl.analyticsService.GetTargetAnalysis(storeID, year, month)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gap)
}
