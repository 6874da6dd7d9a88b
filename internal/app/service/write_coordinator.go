package service

import (
	"time"

	"github.com/jangsalab/storeops-backend/internal/audit"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// ConflictInfo 기존 공식 마감을 덮어쓰는 쓰기의 경고 정보.
// 쓰기 자체는 진행되고, 사용자가 이전 값을 보고 판단한다.
type ConflictInfo struct {
	HasDailyClose      bool  `json:"has_daily_close"`
	ExistingTotalSales int64 `json:"existing_total_sales"`
}

// WriteOutcome 모든 쓰기의 구조화된 결과
type WriteOutcome struct {
	OK           bool                   `json:"ok"`
	RowsWritten  int                    `json:"rows_written"`
	ConflictInfo *ConflictInfo          `json:"conflict_info,omitempty"`
	Reason       string                 `json:"reason,omitempty"`     // 거부 사유 (참조 무결성 등)
	References   map[string]int64       `json:"references,omitempty"` // 참조 수 (삭제 거부 시)
	Message      string                 `json:"message,omitempty"`
	Extra        map[string]interface{} `json:"extra,omitempty"`
}

// WriteCoordinator 모든 변이의 관문. 실행 시간을 재고, 감사 로그에 남기고,
// 성공 시 영향 타깃의 캐시를 soft invalidation 한다.
// 쓰기 쪽 캐시 무효화는 이 컴포넌트에서만 일어난다.
type WriteCoordinator struct {
	cache *cache.Layer
	audit *audit.Ring
}

func NewWriteCoordinator(cacheLayer *cache.Layer, auditRing *audit.Ring) *WriteCoordinator {
	return &WriteCoordinator{cache: cacheLayer, audit: auditRing}
}

// Audit 감사 로그 조회용 접근자
func (w *WriteCoordinator) Audit() *audit.Ring {
	return w.audit
}

// RunWrite 변이 실행. fn이 성공하면 targets의 캐시를 비우고 ok 감사 항목을,
// 실패하면 에러 종류·메시지를 담은 감사 항목을 남긴 뒤 에러를 그대로 올린다.
// 감사 기록 없이 조용히 성공하는 쓰기는 없다.
func (w *WriteCoordinator) RunWrite(action string, targets []string, extra map[string]interface{}, fn func() (*WriteOutcome, error)) (*WriteOutcome, error) {
	start := time.Now()
	outcome, err := fn()
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		w.audit.Append(audit.Entry{
			Action:    action,
			OK:        false,
			Ms:        elapsed,
			Targets:   targets,
			ErrorType: apperrors.Kind(err),
			ErrorMsg:  err.Error(),
			Extra:     extra,
		})
		logger.Error("Write action failed", err, map[string]interface{}{
			"action": action,
			"ms":     elapsed,
		})
		return outcome, err
	}

	// 참조 무결성 거부 등 ok:false 결과도 실패로 기록한다. 캐시는 건드리지 않는다.
	if outcome != nil && !outcome.OK {
		w.audit.Append(audit.Entry{
			Action:    action,
			OK:        false,
			Ms:        elapsed,
			Targets:   targets,
			ErrorType: "Conflict",
			ErrorMsg:  outcome.Reason,
			Extra:     extra,
		})
		return outcome, nil
	}

	// invalidation 실패는 변이를 실패시키지 않는다 (로그만 남는다)
	w.cache.SoftInvalidate(action, targets)

	w.audit.Append(audit.Entry{
		Action:  action,
		OK:      true,
		Ms:      elapsed,
		Targets: targets,
		Extra:   extra,
	})

	logger.Debug("Write action completed", map[string]interface{}{
		"action":  action,
		"ms":      elapsed,
		"targets": targets,
	})
	return outcome, nil
}
