package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
)

type SalesController struct {
	salesService    *service.SalesService
	resolverService *service.ResolverService
}

func NewSalesController(salesService *service.SalesService, resolverService *service.ResolverService) *SalesController {
	return &SalesController{
		salesService:    salesService,
		resolverService: resolverService,
	}
}

type SaveVisitorsRequest struct {
	Date     string `json:"date" binding:"required,kstdate"`
	Visitors int    `json:"visitors"`
}

// SaveSales 일별 매출 저장
// POST /api/v1/sales
func (ctrl *SalesController) SaveSales(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)

	var req service.SaveSalesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid sales request", map[string]interface{}{"error": err.Error()})
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.salesService.SaveSales(storeID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// SaveVisitors 일별 방문자 수 저장
// POST /api/v1/visitors
func (ctrl *SalesController) SaveVisitors(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)

	var req SaveVisitorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid visitors request", map[string]interface{}{"error": err.Error()})
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.salesService.SaveVisitors(storeID, req.Date, req.Visitors)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GetSales 기간 매출 조회
// GET /api/v1/sales?start=YYYY-MM-DD&end=YYYY-MM-DD
func (ctrl *SalesController) GetSales(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	sales, err := ctrl.salesService.GetSalesRange(storeID, start, end)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sales": sales, "count": len(sales)})
}

// GetVisitors 기간 방문자 조회
// GET /api/v1/visitors?start=YYYY-MM-DD&end=YYYY-MM-DD
func (ctrl *SalesController) GetVisitors(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	visitors, err := ctrl.salesService.GetVisitorRange(storeID, start, end)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visitors": visitors, "count": len(visitors)})
}

// GetDayStatus 하루 기록 상태 조회
// GET /api/v1/sales/status/:date
func (ctrl *SalesController) GetDayStatus(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	date := c.Param("date")

	status, err := ctrl.resolverService.GetDayRecordStatus(storeID, date)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// GetEffectiveSales 하루의 확정 메뉴별 판매 수량
// GET /api/v1/sales/effective/:date
func (ctrl *SalesController) GetEffectiveSales(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	date := c.Param("date")

	items, err := ctrl.resolverService.BestAvailableDailySales(storeID, date)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// dateRangeParams start/end 쿼리 파라미터. 없으면 400으로 응답하고 false.
func dateRangeParams(c *gin.Context) (string, string, bool) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		errors.BadRequest(c, errors.SalesDateInvalid, "start, end 날짜가 필요합니다 (YYYY-MM-DD)")
		return "", "", false
	}
	return start, end, true
}
