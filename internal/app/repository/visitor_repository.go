package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// VisitorRepository 일별 방문자 저장소 인터페이스
type VisitorRepository interface {
	Upsert(visitor *model.Visitor) error
	FindByDate(storeID, date string) (*model.Visitor, error)
	FindByDateRange(storeID, startDate, endDate string) ([]model.Visitor, error)
}

type visitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository 방문자 저장소 생성
func NewVisitorRepository(db *gorm.DB) VisitorRepository {
	return &visitorRepository{db: db}
}

// Upsert 방문자 수 저장. 같은 매장·날짜 행이 있으면 갱신한다.
func (r *visitorRepository) Upsert(visitor *model.Visitor) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "store_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"visitors", "updated_at"}),
	}).Create(visitor).Error
	if err != nil {
		logger.Error("Failed to upsert visitors", err, map[string]interface{}{
			"store_id": visitor.StoreID,
			"date":     visitor.Date,
		})
		return err
	}
	return nil
}

// FindByDate 특정 날짜 방문자 조회. 없으면 nil.
func (r *visitorRepository) FindByDate(storeID, date string) (*model.Visitor, error) {
	var visitor model.Visitor
	err := r.db.Where("store_id = ? AND date = ?", storeID, date).First(&visitor).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find visitors by date", err)
		return nil, err
	}
	return &visitor, nil
}

// FindByDateRange 기간 방문자 조회 (날짜 오름차순)
func (r *visitorRepository) FindByDateRange(storeID, startDate, endDate string) ([]model.Visitor, error) {
	var list []model.Visitor
	err := r.db.
		Where("store_id = ? AND date >= ? AND date <= ?", storeID, startDate, endDate).
		Order("date ASC").
		Find(&list).Error
	if err != nil {
		logger.Error("Failed to find visitors by date range", err)
		return nil, err
	}
	return list, nil
}
