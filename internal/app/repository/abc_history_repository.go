package repository

import (
	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// ABCHistoryRepository 월별 ABC 스냅샷 저장소 인터페이스
type ABCHistoryRepository interface {
	ReplaceMonth(storeID string, year, month int, rows []model.ABCHistory) error
	FindByMonth(storeID string, year, month int) ([]model.ABCHistory, error)
	FindRecentMonths(storeID string, limit int) ([]model.ABCHistory, error)
}

type abcHistoryRepository struct {
	db *gorm.DB
}

// NewABCHistoryRepository ABC 스냅샷 저장소 생성
func NewABCHistoryRepository(db *gorm.DB) ABCHistoryRepository {
	return &abcHistoryRepository{db: db}
}

// ReplaceMonth 해당 월 스냅샷을 통째로 교체한다. 스케줄러 재실행에 멱등하다.
func (r *abcHistoryRepository) ReplaceMonth(storeID string, year, month int, rows []model.ABCHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ? AND year = ? AND month = ?", storeID, year, month).
			Delete(&model.ABCHistory{}).Error; err != nil {
			logger.Error("Failed to clear abc history month", err)
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			logger.Error("Failed to insert abc history rows", err, map[string]interface{}{
				"store_id": storeID,
				"year":     year,
				"month":    month,
				"count":    len(rows),
			})
			return err
		}
		return nil
	})
}

// FindByMonth 특정 월의 스냅샷 조회 (등급, 매출 내림차순)
func (r *abcHistoryRepository) FindByMonth(storeID string, year, month int) ([]model.ABCHistory, error) {
	var rows []model.ABCHistory
	err := r.db.
		Where("store_id = ? AND year = ? AND month = ?", storeID, year, month).
		Order("grade ASC, revenue DESC").
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to find abc history by month", err)
		return nil, err
	}
	return rows, nil
}

// FindRecentMonths 최근 스냅샷 행 조회 (최신 월부터)
func (r *abcHistoryRepository) FindRecentMonths(storeID string, limit int) ([]model.ABCHistory, error) {
	var rows []model.ABCHistory
	err := r.db.
		Where("store_id = ?", storeID).
		Order("year DESC, month DESC, revenue DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		logger.Error("Failed to find recent abc history", err)
		return nil, err
	}
	return rows, nil
}
