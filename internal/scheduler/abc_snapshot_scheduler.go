package scheduler

import (
	"github.com/robfig/cron/v3"

	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// ABCSnapshotScheduler 월별 ABC 분석 스냅샷 스케줄러.
// 매월 1일 새벽에 전월 메뉴 ABC 결과를 매장별로 저장한다.
type ABCSnapshotScheduler struct {
	cron              *cron.Cron
	storeRepo         repository.StoreRepository
	abcHistoryService *service.ABCHistoryService
}

// NewABCSnapshotScheduler ABC 스냅샷 스케줄러 생성
func NewABCSnapshotScheduler(
	storeRepo repository.StoreRepository,
	abcHistoryService *service.ABCHistoryService,
) *ABCSnapshotScheduler {
	return &ABCSnapshotScheduler{
		cron:              cron.New(cron.WithLocation(timeutil.KST())),
		storeRepo:         storeRepo,
		abcHistoryService: abcHistoryService,
	}
}

// Start 스케줄러 시작
func (s *ABCSnapshotScheduler) Start() error {
	// 매월 1일 02:00 KST에 전월 스냅샷
	_, err := s.cron.AddFunc("0 2 1 * *", s.SnapshotPreviousMonth)
	if err != nil {
		logger.Error("Failed to add cron job for ABC snapshot", err)
		return err
	}

	s.cron.Start()
	logger.Info("ABC snapshot scheduler started (monthly, 1st day 02:00 KST)", nil)
	return nil
}

// Stop 스케줄러 중지
func (s *ABCSnapshotScheduler) Stop() {
	logger.Info("Stopping ABC snapshot scheduler...", nil)
	s.cron.Stop()
}

// SnapshotPreviousMonth 전월 ABC 결과를 전체 매장에 대해 저장한다.
// 매장 하나가 실패해도 나머지는 계속 진행한다.
func (s *ABCSnapshotScheduler) SnapshotPreviousMonth() {
	year, month := timeutil.CurrentYearMonthKST()
	month--
	if month == 0 {
		year, month = year-1, 12
	}

	logger.Info("Starting scheduled ABC snapshot", map[string]interface{}{
		"year":  year,
		"month": month,
	})

	stores, err := s.storeRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list stores for ABC snapshot", err)
		return
	}

	succeeded := 0
	for _, store := range stores {
		if err := s.abcHistoryService.SnapshotMonth(store.ID, year, month); err != nil {
			logger.Error("ABC snapshot failed for store", err, map[string]interface{}{
				"store_id": store.ID,
			})
			continue
		}
		succeeded++
	}

	logger.Info("ABC snapshot completed", map[string]interface{}{
		"year":      year,
		"month":     month,
		"stores":    len(stores),
		"succeeded": succeeded,
	})
}
