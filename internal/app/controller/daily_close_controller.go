package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
)

type DailyCloseController struct {
	closeService *service.DailyCloseService
}

func NewDailyCloseController(closeService *service.DailyCloseService) *DailyCloseController {
	return &DailyCloseController{closeService: closeService}
}

// SaveDailyClose 공식 마감 저장
// POST /api/v1/close
func (ctrl *DailyCloseController) SaveDailyClose(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)

	var req service.SaveDailyCloseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid daily close request", map[string]interface{}{"error": err.Error()})
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.closeService.SaveDailyClose(storeID, req)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}

	log.Info("Daily close saved", map[string]interface{}{
		"store_id": storeID,
		"date":     req.Date,
	})
	c.JSON(http.StatusOK, outcome)
}

// GetDailyClose 특정 날짜 마감 조회
// GET /api/v1/close/:date
func (ctrl *DailyCloseController) GetDailyClose(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	date := c.Param("date")

	close, err := ctrl.closeService.GetDailyClose(storeID, date)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, close)
}

// GetCloseRange 기간 마감 조회
// GET /api/v1/close?start=YYYY-MM-DD&end=YYYY-MM-DD
func (ctrl *DailyCloseController) GetCloseRange(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	closes, err := ctrl.closeService.GetCloseRange(storeID, start, end)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"closes": closes, "count": len(closes)})
}
