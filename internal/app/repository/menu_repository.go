package repository

import (
	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// MenuRepository 메뉴 마스터 저장소 인터페이스
type MenuRepository interface {
	Create(menu *model.Menu) error
	FindByID(storeID string, menuID uint) (*model.Menu, error)
	FindByName(storeID, name string) (*model.Menu, error)
	FindAll(storeID string) ([]model.Menu, error)
	Update(menu *model.Menu) error
	Delete(storeID string, menuID uint) error
}

type menuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 메뉴 저장소 생성
func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

// Create 메뉴 생성
func (r *menuRepository) Create(menu *model.Menu) error {
	if err := r.db.Create(menu).Error; err != nil {
		logger.Error("Failed to create menu", err, map[string]interface{}{
			"store_id": menu.StoreID,
			"name":     menu.Name,
		})
		return err
	}
	return nil
}

// FindByID 메뉴 단건 조회. 없으면 nil.
func (r *menuRepository) FindByID(storeID string, menuID uint) (*model.Menu, error) {
	var menu model.Menu
	err := r.db.Where("store_id = ? AND id = ?", storeID, menuID).First(&menu).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find menu by id", err)
		return nil, err
	}
	return &menu, nil
}

// FindByName 메뉴명으로 조회. 없으면 nil.
func (r *menuRepository) FindByName(storeID, name string) (*model.Menu, error) {
	var menu model.Menu
	err := r.db.Where("store_id = ? AND name = ?", storeID, name).First(&menu).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		logger.Error("Failed to find menu by name", err)
		return nil, err
	}
	return &menu, nil
}

// FindAll 매장의 전체 메뉴 조회 (이름 오름차순)
func (r *menuRepository) FindAll(storeID string) ([]model.Menu, error) {
	var menus []model.Menu
	err := r.db.Where("store_id = ?", storeID).Order("name ASC").Find(&menus).Error
	if err != nil {
		logger.Error("Failed to find menus", err)
		return nil, err
	}
	return menus, nil
}

// Update 메뉴 수정
func (r *menuRepository) Update(menu *model.Menu) error {
	if err := r.db.Save(menu).Error; err != nil {
		logger.Error("Failed to update menu", err)
		return err
	}
	return nil
}

// Delete 메뉴 삭제. 참조 검사는 서비스 계층에서 먼저 수행한다.
func (r *menuRepository) Delete(storeID string, menuID uint) error {
	err := r.db.Where("store_id = ? AND id = ?", storeID, menuID).
		Delete(&model.Menu{}).Error
	if err != nil {
		logger.Error("Failed to delete menu", err)
		return err
	}
	return nil
}
