package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// SalesService 일별 매출·방문자 기록 서비스
type SalesService struct {
	salesRepo   repository.SalesRepository
	visitorRepo repository.VisitorRepository
	closeRepo   repository.DailyCloseRepository
	coordinator *WriteCoordinator
	cache       *cache.Layer
}

func NewSalesService(
	salesRepo repository.SalesRepository,
	visitorRepo repository.VisitorRepository,
	closeRepo repository.DailyCloseRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *SalesService {
	return &SalesService{
		salesRepo:   salesRepo,
		visitorRepo: visitorRepo,
		closeRepo:   closeRepo,
		coordinator: coordinator,
		cache:       cacheLayer,
	}
}

// SaveSalesInput 매출 저장 입력. 합계만 알면 카드/현금은 0으로 둔다.
type SaveSalesInput struct {
	Date       string `json:"date" binding:"required,kstdate"`
	CardSales  int64  `json:"card_sales"`
	CashSales  int64  `json:"cash_sales"`
	TotalSales int64  `json:"total_sales"`
}

// SaveSales 일별 매출 upsert. 같은 날짜에 공식 마감이 있으면
// conflict_info로 경고하되 덮어쓰기는 진행한다 (사용자가 보정을 승인한 것).
func (s *SalesService) SaveSales(storeID string, input SaveSalesInput) (*WriteOutcome, error) {
	if err := validateSalesAmounts(input.CardSales, input.CashSales, input.TotalSales); err != nil {
		return nil, err
	}
	if _, err := timeutil.ParseDate(input.Date); err != nil {
		return nil, fmt.Errorf("%w: 날짜 형식은 YYYY-MM-DD 입니다", apperrors.ErrInvalidInput)
	}

	total := input.TotalSales
	if total == 0 && (input.CardSales > 0 || input.CashSales > 0) {
		total = input.CardSales + input.CashSales
	}

	return s.coordinator.RunWrite("save_sales", []string{cache.TargetSales},
		map[string]interface{}{"date": input.Date},
		func() (*WriteOutcome, error) {
			conflict, err := s.dailyCloseConflict(storeID, input.Date)
			if err != nil {
				return nil, err
			}

			err = s.salesRepo.Upsert(&model.Sales{
				StoreID:    storeID,
				Date:       input.Date,
				CardSales:  input.CardSales,
				CashSales:  input.CashSales,
				TotalSales: total,
			})
			if err != nil {
				return nil, err
			}

			outcome := &WriteOutcome{OK: true, RowsWritten: 1, ConflictInfo: conflict}
			if conflict != nil {
				outcome.Message = fmt.Sprintf("이 날짜는 이미 마감되었습니다 (기존 매출 %d원). 입력값으로 덮어썼습니다.", conflict.ExistingTotalSales)
			}
			return outcome, nil
		})
}

// SaveVisitors 일별 방문자 수 upsert. 마감 충돌 처리 방식은 SaveSales와 같다.
func (s *SalesService) SaveVisitors(storeID, date string, visitors int) (*WriteOutcome, error) {
	if visitors < 0 {
		return nil, fmt.Errorf("%w: 방문자 수는 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: 날짜 형식은 YYYY-MM-DD 입니다", apperrors.ErrInvalidInput)
	}

	return s.coordinator.RunWrite("save_visitors", []string{cache.TargetVisitors},
		map[string]interface{}{"date": date},
		func() (*WriteOutcome, error) {
			conflict, err := s.dailyCloseConflict(storeID, date)
			if err != nil {
				return nil, err
			}

			err = s.visitorRepo.Upsert(&model.Visitor{
				StoreID:  storeID,
				Date:     date,
				Visitors: visitors,
			})
			if err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1, ConflictInfo: conflict}, nil
		})
}

// GetSalesRange 기간 매출 조회 (캐시)
func (s *SalesService) GetSalesRange(storeID, startDate, endDate string) ([]model.Sales, error) {
	return cache.Fetch(s.cache, cache.FnSales, map[string]string{
		"store_id": storeID, "start": startDate, "end": endDate,
	}, func() ([]model.Sales, error) {
		return s.salesRepo.FindByDateRange(storeID, startDate, endDate)
	})
}

// GetVisitorRange 기간 방문자 조회 (캐시)
func (s *SalesService) GetVisitorRange(storeID, startDate, endDate string) ([]model.Visitor, error) {
	return cache.Fetch(s.cache, cache.FnVisitors, map[string]string{
		"store_id": storeID, "start": startDate, "end": endDate,
	}, func() ([]model.Visitor, error) {
		return s.visitorRepo.FindByDateRange(storeID, startDate, endDate)
	})
}

// dailyCloseConflict 해당 날짜에 공식 마감이 있으면 충돌 정보를 만든다
func (s *SalesService) dailyCloseConflict(storeID, date string) (*ConflictInfo, error) {
	existing, err := s.closeRepo.FindByDate(storeID, date)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}
	logger.Debug("Write over officially closed date", map[string]interface{}{
		"store_id": storeID,
		"date":     date,
	})
	return &ConflictInfo{
		HasDailyClose:      true,
		ExistingTotalSales: existing.TotalSales,
	}, nil
}

func validateSalesAmounts(card, cash, total int64) error {
	if card < 0 || cash < 0 || total < 0 {
		return fmt.Errorf("%w: 금액은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}
	// 카드·현금·합계가 모두 주어졌으면 합이 맞아야 한다
	if card > 0 && cash > 0 && total > 0 && card+cash != total {
		return fmt.Errorf("%w: 총 매출이 카드+현금 합계와 다릅니다", apperrors.ErrInvalidInput)
	}
	return nil
}
