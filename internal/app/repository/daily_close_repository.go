package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// DailyCloseRepository 일일 마감 저장소 인터페이스
type DailyCloseRepository interface {
	Upsert(tx *gorm.DB, close *model.DailyClose) error
	FindByDate(storeID, date string) (*model.DailyClose, error)
	FindByDateRange(storeID, startDate, endDate string) ([]model.DailyClose, error)
	ExistsByDate(storeID, date string) (bool, error)
	FindLatest(storeID string) (*model.DailyClose, error)
}

type dailyCloseRepository struct {
	db *gorm.DB
}

// NewDailyCloseRepository 일일 마감 저장소 생성
func NewDailyCloseRepository(db *gorm.DB) DailyCloseRepository {
	return &dailyCloseRepository{db: db}
}

// Upsert 마감 저장. 같은 매장·날짜 행이 있으면 전체 필드를 갱신한다.
// 마감은 매출/판매수량 역기입과 한 트랜잭션으로 묶이므로 tx를 받는다.
func (r *dailyCloseRepository) Upsert(tx *gorm.DB, close *model.DailyClose) error {
	db := tx
	if db == nil {
		db = r.db
	}
	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"card_sales", "cash_sales", "total_sales", "visitors",
			"out_of_stock", "complaint", "group_customer", "staff_issue",
			"memo", "sales_items", "updated_at",
		}),
	}).Create(close).Error
	if err != nil {
		logger.Error("Failed to upsert daily close", err, map[string]interface{}{
			"store_id": close.StoreID,
			"date":     close.Date,
		})
		return err
	}
	return nil
}

// FindByDate 특정 날짜 마감 조회. 없으면 nil.
func (r *dailyCloseRepository) FindByDate(storeID, date string) (*model.DailyClose, error) {
	var close model.DailyClose
	err := r.db.Where("store_id = ? AND date = ?", storeID, date).First(&close).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find daily close by date", err)
		return nil, err
	}
	return &close, nil
}

// FindByDateRange 기간 마감 조회 (날짜 오름차순)
func (r *dailyCloseRepository) FindByDateRange(storeID, startDate, endDate string) ([]model.DailyClose, error) {
	var list []model.DailyClose
	err := r.db.
		Where("store_id = ? AND date >= ? AND date <= ?", storeID, startDate, endDate).
		Order("date ASC").
		Find(&list).Error
	if err != nil {
		logger.Error("Failed to find daily closes by date range", err)
		return nil, err
	}
	return list, nil
}

// ExistsByDate 해당 날짜에 공식 마감이 있는지 확인
func (r *dailyCloseRepository) ExistsByDate(storeID, date string) (bool, error) {
	var count int64
	err := r.db.Model(&model.DailyClose{}).
		Where("store_id = ? AND date = ?", storeID, date).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to check daily close existence", err)
		return false, err
	}
	return count > 0, nil
}

// FindLatest 가장 최근 마감 조회. 없으면 nil.
func (r *dailyCloseRepository) FindLatest(storeID string) (*model.DailyClose, error) {
	var close model.DailyClose
	err := r.db.Where("store_id = ?", storeID).
		Order("date DESC").
		First(&close).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find latest daily close", err)
		return nil, err
	}
	return &close, nil
}
