package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// TargetRepository 월별 목표 저장소 인터페이스
type TargetRepository interface {
	Upsert(target *model.Target) error
	FindByMonth(storeID string, year, month int) (*model.Target, error)
}

type targetRepository struct {
	db *gorm.DB
}

// NewTargetRepository 목표 저장소 생성
func NewTargetRepository(db *gorm.DB) TargetRepository {
	return &targetRepository{db: db}
}

// Upsert 목표 저장. 같은 매장·연·월 행이 있으면 갱신한다.
func (r *targetRepository) Upsert(target *model.Target) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"target_sales", "target_cost_rate", "target_labor_rate",
			"target_rent_rate", "target_util_rate", "target_other_rate",
			"target_profit_rate", "updated_at",
		}),
	}).Create(target).Error
	if err != nil {
		logger.Error("Failed to upsert target", err, map[string]interface{}{
			"store_id": target.StoreID,
			"year":     target.Year,
			"month":    target.Month,
		})
		return err
	}
	return nil
}

// FindByMonth 특정 월의 목표 조회. 없으면 nil.
func (r *targetRepository) FindByMonth(storeID string, year, month int) (*model.Target, error) {
	var target model.Target
	err := r.db.Where("store_id = ? AND year = ? AND month = ?", storeID, year, month).
		First(&target).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find target by month", err)
		return nil, err
	}
	return &target, nil
}
