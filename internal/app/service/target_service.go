package service

import (
	"fmt"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// TargetService 월별 목표 서비스
type TargetService struct {
	targetRepo  repository.TargetRepository
	coordinator *WriteCoordinator
	cache       *cache.Layer
}

func NewTargetService(
	targetRepo repository.TargetRepository,
	coordinator *WriteCoordinator,
	cacheLayer *cache.Layer,
) *TargetService {
	return &TargetService{
		targetRepo:  targetRepo,
		coordinator: coordinator,
		cache:       cacheLayer,
	}
}

// SaveTargetInput 목표 저장 입력. 비율은 0~100 퍼센트.
type SaveTargetInput struct {
	TargetSales      int64   `json:"target_sales"`
	TargetCostRate   float64 `json:"target_cost_rate"`
	TargetLaborRate  float64 `json:"target_labor_rate"`
	TargetRentRate   float64 `json:"target_rent_rate"`
	TargetUtilRate   float64 `json:"target_util_rate"`
	TargetOtherRate  float64 `json:"target_other_rate"`
	TargetProfitRate float64 `json:"target_profit_rate"`
}

// SaveTarget 월별 목표 upsert
func (s *TargetService) SaveTarget(storeID string, year, month int, input SaveTargetInput) (*WriteOutcome, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: 월은 1~12 사이여야 합니다", apperrors.ErrInvalidInput)
	}
	if input.TargetSales < 0 {
		return nil, fmt.Errorf("%w: 목표 매출은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	}
	rates := []float64{
		input.TargetCostRate, input.TargetLaborRate, input.TargetRentRate,
		input.TargetUtilRate, input.TargetOtherRate, input.TargetProfitRate,
	}
	for _, rate := range rates {
		if rate < 0 || rate > 100 {
			return nil, fmt.Errorf("%w: 비율은 0~100 사이여야 합니다", apperrors.ErrInvalidInput)
		}
	}

	return s.coordinator.RunWrite("save_target", []string{cache.TargetTargets},
		map[string]interface{}{"year": year, "month": month},
		func() (*WriteOutcome, error) {
			err := s.targetRepo.Upsert(&model.Target{
				StoreID:          storeID,
				Year:             year,
				Month:            month,
				TargetSales:      input.TargetSales,
				TargetCostRate:   input.TargetCostRate,
				TargetLaborRate:  input.TargetLaborRate,
				TargetRentRate:   input.TargetRentRate,
				TargetUtilRate:   input.TargetUtilRate,
				TargetOtherRate:  input.TargetOtherRate,
				TargetProfitRate: input.TargetProfitRate,
			})
			if err != nil {
				return nil, err
			}
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
}

// GetTarget 월별 목표 조회 (캐시). 없으면 nil.
func (s *TargetService) GetTarget(storeID string, year, month int) (*model.Target, error) {
	return cache.Fetch(s.cache, cache.FnTargets, map[string]string{
		"store_id": storeID,
		"year":     fmt.Sprintf("%d", year),
		"month":    fmt.Sprintf("%d", month),
	}, func() (*model.Target, error) {
		return s.targetRepo.FindByMonth(storeID, year, month)
	})
}
