package service

import (
	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// ABCHistoryService 월별 ABC 스냅샷 서비스. 스케줄러가 매월 초에 지난달을 찍는다.
type ABCHistoryService struct {
	abcRepo   repository.ABCHistoryRepository
	storeRepo repository.StoreRepository
	analytics *AnalyticsService
}

func NewABCHistoryService(
	abcRepo repository.ABCHistoryRepository,
	storeRepo repository.StoreRepository,
	analyticsService *AnalyticsService,
) *ABCHistoryService {
	return &ABCHistoryService{
		abcRepo:   abcRepo,
		storeRepo: storeRepo,
		analytics: analyticsService,
	}
}

// SnapshotMonth 해당 월의 메뉴 ABC 결과를 이력으로 저장한다. 재실행에 멱등하다.
func (s *ABCHistoryService) SnapshotMonth(storeID string, year, month int) error {
	startDate, endDate := timeutil.MonthRange(year, month)
	rows, err := s.analytics.GetMenuABC(storeID, startDate, endDate)
	if err != nil {
		return err
	}

	history := make([]model.ABCHistory, 0, len(rows))
	for _, row := range rows {
		history = append(history, model.ABCHistory{
			StoreID:  storeID,
			Year:     year,
			Month:    month,
			MenuName: row.Name,
			Qty:      row.Qty,
			Revenue:  row.Value,
			Share:    row.Share,
			CumShare: row.CumShare,
			Grade:    row.Grade,
		})
	}

	if err := s.abcRepo.ReplaceMonth(storeID, year, month, history); err != nil {
		return err
	}

	logger.Info("월별 ABC 스냅샷 저장", map[string]interface{}{
		"store_id": storeID,
		"year":     year,
		"month":    month,
		"rows":     len(history),
	})
	return nil
}

// GetHistory 특정 월의 스냅샷 조회
func (s *ABCHistoryService) GetHistory(storeID string, year, month int) ([]model.ABCHistory, error) {
	return s.abcRepo.FindByMonth(storeID, year, month)
}
