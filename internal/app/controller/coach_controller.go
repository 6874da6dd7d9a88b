package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
	"github.com/jangsalab/storeops-backend/internal/strategy"
)

// CoachController 매출 하락 분석·미니코치·전략 카드
type CoachController struct {
	coachService *service.CoachService
}

func NewCoachController(coachService *service.CoachService) *CoachController {
	return &CoachController{coachService: coachService}
}

type StrategyCardsRequest struct {
	Year    int                      `json:"year" binding:"required"`
	Month   int                      `json:"month" binding:"required"`
	Profile *strategy.HealthProfile  `json:"health_profile"`
}

// GET /api/v1/coach/sales-drop?period=7&compare=week&base_date=2026-08-30
func (ctrl *CoachController) AnalyzeSalesDrop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)

	period, err := strconv.Atoi(c.DefaultQuery("period", "7"))
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 period 형식입니다")
		return
	}
	compareMode := c.DefaultQuery("compare", service.CompareWeek)
	baseDate := c.Query("base_date")

	result, err := ctrl.coachService.AnalyzeSalesDrop(storeID, period, compareMode, baseDate)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}

	log.Info("Sales drop analysis completed", map[string]interface{}{
		"store_id": storeID,
		"period":   period,
		"cause":    result.PrimaryCause,
	})
	c.JSON(http.StatusOK, result)
}

// GET /api/v1/coach/minicoach
func (ctrl *CoachController) GetMinicoach(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	advice, err := ctrl.coachService.GetMinicoach(storeID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, advice)
}

// POST /api/v1/coach/strategy-cards
// 건강 스냅샷은 선택 입력이다. 없으면 가중치 보정 없이 카드가 나간다.
func (ctrl *CoachController) GetStrategyCards(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req StrategyCardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	cards, err := ctrl.coachService.GetStrategyCards(storeID, req.Year, req.Month, req.Profile)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards, "count": len(cards)})
}
