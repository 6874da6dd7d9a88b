package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// ExpenseController 월별 비용구조와 목표
type ExpenseController struct {
	expenseService *service.ExpenseService
	targetService  *service.TargetService
}

func NewExpenseController(expenseService *service.ExpenseService, targetService *service.TargetService) *ExpenseController {
	return &ExpenseController{
		expenseService: expenseService,
		targetService:  targetService,
	}
}

type SaveExpensesRequest struct {
	Year  int                        `json:"year" binding:"required"`
	Month int                        `json:"month" binding:"required"`
	Items []service.ExpenseItemInput `json:"items" binding:"required"`
}

type CopyExpensesRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

type SaveTargetRequest struct {
	Year  int                     `json:"year" binding:"required"`
	Month int                     `json:"month" binding:"required"`
	service.SaveTargetInput
}

// yearMonthParams year/month 쿼리 파라미터. 없으면 이번 달 (KST).
func yearMonthParams(c *gin.Context) (int, int, bool) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" && monthStr == "" {
		year, month := timeutil.CurrentYearMonthKST()
		return year, month, true
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 year 형식입니다")
		return 0, 0, false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		errors.BadRequest(c, errors.ValidationInvalidInput, "올바르지 않은 month 형식입니다")
		return 0, 0, false
	}
	return year, month, true
}

// GET /api/v1/expenses?year=2026&month=8
func (ctrl *ExpenseController) GetExpenses(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	items, err := ctrl.expenseService.GetExpenses(storeID, year, month)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// POST /api/v1/expenses
func (ctrl *ExpenseController) SaveExpenses(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)

	var req SaveExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid expenses request", map[string]interface{}{"error": err.Error()})
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.expenseService.SaveExpenses(storeID, req.Year, req.Month, req.Items)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// DELETE /api/v1/expenses/:id
func (ctrl *ExpenseController) DeleteExpense(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	expenseID, ok := idParam(c)
	if !ok {
		return
	}

	outcome, err := ctrl.expenseService.DeleteExpense(storeID, expenseID)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// POST /api/v1/expenses/copy-previous
func (ctrl *ExpenseController) CopyFromPreviousMonth(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req CopyExpensesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.expenseService.CopyFromPreviousMonth(storeID, req.Year, req.Month)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}

// GET /api/v1/targets?year=2026&month=8
func (ctrl *ExpenseController) GetTarget(c *gin.Context) {
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	target, err := ctrl.targetService.GetTarget(storeID, year, month)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, target)
}

// POST /api/v1/targets
func (ctrl *ExpenseController) SaveTarget(c *gin.Context) {
	storeID := middleware.GetStoreID(c)

	var req SaveTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	outcome, err := ctrl.targetService.SaveTarget(storeID, req.Year, req.Month, req.SaveTargetInput)
	if err != nil {
		errors.RespondWithKind(c, err)
		return
	}
	writeResponse(c, outcome)
}
