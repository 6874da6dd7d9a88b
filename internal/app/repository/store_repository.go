package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// StoreRepository 매장 저장소 인터페이스
type StoreRepository interface {
	Create(store *model.Store) error
	FindByID(storeID string) (*model.Store, error)
	FindByUser(userID string) ([]model.Store, error)
	FindAll() ([]model.Store, error)
	AddMember(userStore *model.UserStore) error
	IsMember(ctx context.Context, userID, storeID string) (string, bool, error)
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository 매장 저장소 생성
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// Create 매장 생성
func (r *storeRepository) Create(store *model.Store) error {
	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store", err)
		return err
	}
	return nil
}

// FindByID 매장 단건 조회
func (r *storeRepository) FindByID(storeID string) (*model.Store, error) {
	var store model.Store
	if err := r.db.Where("id = ?", storeID).First(&store).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find store by id", err)
		return nil, err
	}
	return &store, nil
}

// FindByUser 사용자가 소속된 매장 목록 조회
func (r *storeRepository) FindByUser(userID string) ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.
		Joins("JOIN user_stores ON user_stores.store_id = stores.id").
		Where("user_stores.user_id = ?", userID).
		Order("stores.created_at ASC").
		Find(&stores).Error; err != nil {
		logger.Error("Failed to find stores by user", err)
		return nil, err
	}
	return stores, nil
}

// FindAll 전체 매장 목록 (배치 작업용)
func (r *storeRepository) FindAll() ([]model.Store, error) {
	var stores []model.Store
	if err := r.db.Order("created_at ASC").Find(&stores).Error; err != nil {
		logger.Error("Failed to find all stores", err)
		return nil, err
	}
	return stores, nil
}

// AddMember 사용자-매장 연결 추가
func (r *storeRepository) AddMember(userStore *model.UserStore) error {
	if err := r.db.Create(userStore).Error; err != nil {
		logger.Error("Failed to add store member", err)
		return err
	}
	return nil
}

// IsMember 사용자의 매장 소속 여부와 역할 조회
func (r *storeRepository) IsMember(ctx context.Context, userID, storeID string) (string, bool, error) {
	var userStore model.UserStore
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&userStore).Error
	if err == gorm.ErrRecordNotFound {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Failed to check store membership", err)
		return "", false, err
	}
	return string(userStore.Role), true, nil
}
