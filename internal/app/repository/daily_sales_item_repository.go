package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// DailySalesItemRepository 메뉴별 판매 수량 보정 저장소 인터페이스
type DailySalesItemRepository interface {
	UpsertMany(tx *gorm.DB, items []model.DailySalesItem) error
	FindByDate(storeID, date string) ([]model.DailySalesItem, error)
	FindByDateRange(storeID, startDate, endDate string) ([]model.DailySalesItem, error)
	CountByMenu(storeID string, menuID uint) (int64, error)
}

type dailySalesItemRepository struct {
	db *gorm.DB
}

// NewDailySalesItemRepository 판매 수량 저장소 생성
func NewDailySalesItemRepository(db *gorm.DB) DailySalesItemRepository {
	return &dailySalesItemRepository{db: db}
}

// UpsertMany 수량 일괄 저장. qty=0도 "판매 없음"의 명시적 기록으로 저장한다.
func (r *dailySalesItemRepository) UpsertMany(tx *gorm.DB, items []model.DailySalesItem) error {
	if len(items) == 0 {
		return nil
	}
	db := tx
	if db == nil {
		db = r.db
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "date"}, {Name: "menu_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"qty", "updated_at"}),
	}).Create(&items).Error
	if err != nil {
		logger.Error("Failed to upsert daily sales items", err, map[string]interface{}{
			"store_id": items[0].StoreID,
			"date":     items[0].Date,
			"count":    len(items),
		})
		return err
	}
	return nil
}

// FindByDate 특정 날짜 수량 조회 (메뉴 포함)
func (r *dailySalesItemRepository) FindByDate(storeID, date string) ([]model.DailySalesItem, error) {
	var items []model.DailySalesItem
	err := r.db.Preload("Menu").
		Where("store_id = ? AND date = ?", storeID, date).
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find daily sales items by date", err)
		return nil, err
	}
	return items, nil
}

// FindByDateRange 기간 수량 조회 (메뉴 포함, 날짜 오름차순)
func (r *dailySalesItemRepository) FindByDateRange(storeID, startDate, endDate string) ([]model.DailySalesItem, error) {
	var items []model.DailySalesItem
	err := r.db.Preload("Menu").
		Where("store_id = ? AND date >= ? AND date <= ?", storeID, startDate, endDate).
		Order("date ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find daily sales items by date range", err)
		return nil, err
	}
	return items, nil
}

// CountByMenu 메뉴를 참조하는 판매 기록 수. 메뉴 삭제 전 참조 검사에 쓴다.
func (r *dailySalesItemRepository) CountByMenu(storeID string, menuID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.DailySalesItem{}).
		Where("store_id = ? AND menu_id = ?", storeID, menuID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count sales items by menu", err)
		return 0, err
	}
	return count, nil
}
