package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// SalesRepository 일별 매출 저장소 인터페이스
type SalesRepository interface {
	Upsert(sales *model.Sales) error
	FindByDate(storeID, date string) (*model.Sales, error)
	FindByDateRange(storeID, startDate, endDate string) ([]model.Sales, error)
	Delete(storeID, date string) error
}

type salesRepository struct {
	db *gorm.DB
}

// NewSalesRepository 매출 저장소 생성
func NewSalesRepository(db *gorm.DB) SalesRepository {
	return &salesRepository{db: db}
}

// Upsert 매출 저장. 같은 매장·날짜 행이 있으면 금액만 갱신한다.
func (r *salesRepository) Upsert(sales *model.Sales) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"card_sales", "cash_sales", "total_sales", "updated_at",
		}),
	}).Create(sales).Error
	if err != nil {
		logger.Error("Failed to upsert sales", err, map[string]interface{}{
			"store_id": sales.StoreID,
			"date":     sales.Date,
		})
		return err
	}
	return nil
}

// FindByDate 특정 날짜 매출 조회. 없으면 nil.
func (r *salesRepository) FindByDate(storeID, date string) (*model.Sales, error) {
	var sales model.Sales
	err := r.db.Where("store_id = ? AND date = ?", storeID, date).First(&sales).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find sales by date", err)
		return nil, err
	}
	return &sales, nil
}

// FindByDateRange 기간 매출 조회 (날짜 오름차순)
func (r *salesRepository) FindByDateRange(storeID, startDate, endDate string) ([]model.Sales, error) {
	var list []model.Sales
	err := r.db.
		Where("store_id = ? AND date >= ? AND date <= ?", storeID, startDate, endDate).
		Order("date ASC").
		Find(&list).Error
	if err != nil {
		logger.Error("Failed to find sales by date range", err)
		return nil, err
	}
	return list, nil
}

// Delete 특정 날짜 매출 삭제
func (r *salesRepository) Delete(storeID, date string) error {
	err := r.db.Where("store_id = ? AND date = ?", storeID, date).
		Delete(&model.Sales{}).Error
	if err != nil {
		logger.Error("Failed to delete sales", err)
		return err
	}
	return nil
}
