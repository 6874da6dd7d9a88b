package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// ExpenseRepository 월별 비용구조 저장소 인터페이스
type ExpenseRepository interface {
	UpsertMany(items []model.ExpenseItem) error
	FindByMonth(storeID string, year, month int) ([]model.ExpenseItem, error)
	Delete(storeID string, expenseID uint) error
	DeleteByMonth(storeID string, year, month int) error
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository 비용 저장소 생성
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// UpsertMany 비용 항목 일괄 저장. 자연키(매장·연·월·카테고리·항목명) 충돌 시 갱신한다.
func (r *expenseRepository) UpsertMany(items []model.ExpenseItem) error {
	if len(items) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "store_id"}, {Name: "year"}, {Name: "month"},
			{Name: "category"}, {Name: "item_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "notes", "updated_at"}),
	}).Create(&items).Error
	if err != nil {
		logger.Error("Failed to upsert expense items", err, map[string]interface{}{
			"store_id": items[0].StoreID,
			"year":     items[0].Year,
			"month":    items[0].Month,
			"count":    len(items),
		})
		return err
	}
	return nil
}

// FindByMonth 특정 월의 비용 항목 조회 (카테고리, 항목명 순)
func (r *expenseRepository) FindByMonth(storeID string, year, month int) ([]model.ExpenseItem, error) {
	var items []model.ExpenseItem
	err := r.db.
		Where("store_id = ? AND year = ? AND month = ?", storeID, year, month).
		Order("category ASC, item_name ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find expense items by month", err)
		return nil, err
	}
	return items, nil
}

// Delete 비용 항목 단건 삭제
func (r *expenseRepository) Delete(storeID string, expenseID uint) error {
	err := r.db.Where("store_id = ? AND id = ?", storeID, expenseID).
		Delete(&model.ExpenseItem{}).Error
	if err != nil {
		logger.Error("Failed to delete expense item", err)
		return err
	}
	return nil
}

// DeleteByMonth 특정 월의 비용 항목 전체 삭제
func (r *expenseRepository) DeleteByMonth(storeID string, year, month int) error {
	err := r.db.Where("store_id = ? AND year = ? AND month = ?", storeID, year, month).
		Delete(&model.ExpenseItem{}).Error
	if err != nil {
		logger.Error("Failed to delete expense items by month", err)
		return err
	}
	return nil
}
