package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/internal/middleware"
)

type ReportController struct {
	reportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// DownloadMonthlyReport 월간 리포트 엑셀 다운로드
// GET /api/v1/reports/monthly?year=2026&month=8
func (ctrl *ReportController) DownloadMonthlyReport(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	storeID := middleware.GetStoreID(c)
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	file, err := ctrl.reportService.BuildMonthlyReport(storeID, year, month)
	if err != nil {
		log.Error("Failed to build monthly report", err, map[string]interface{}{
			"store_id": storeID,
			"year":     year,
			"month":    month,
		})
		errors.RespondWithKind(c, err)
		return
	}
	defer file.Close()

	filename := fmt.Sprintf("monthly-report-%04d-%02d.xlsx", year, month)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		log.Error("Failed to stream monthly report", err, nil)
		return
	}
	c.Status(http.StatusOK)
}
