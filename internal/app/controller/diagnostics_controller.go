package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/internal/audit"
	"github.com/jangsalab/storeops-backend/internal/cache"
)

// DiagnosticsController 진단 패널용 API.
// 최근 쓰기 감사 로그와 마지막 캐시 invalidation 기록을 노출한다.
type DiagnosticsController struct {
	auditRing *audit.Ring
}

func NewDiagnosticsController(auditRing *audit.Ring) *DiagnosticsController {
	return &DiagnosticsController{auditRing: auditRing}
}

// GET /api/v1/diagnostics/audit
func (ctrl *DiagnosticsController) GetAuditLog(c *gin.Context) {
	entries := ctrl.auditRing.Entries()
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
		"max":     audit.MaxEntries,
	})
}

// GET /api/v1/diagnostics/cache
func (ctrl *DiagnosticsController) GetCacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"last_invalidation": cache.LastInvalidation(),
	})
}

// GET /health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
