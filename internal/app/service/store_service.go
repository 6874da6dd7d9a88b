package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// StoreService 매장 서비스
type StoreService struct {
	storeRepo repository.StoreRepository
}

func NewStoreService(storeRepo repository.StoreRepository) *StoreService {
	return &StoreService{storeRepo: storeRepo}
}

// CreateStore 매장 생성. 만든 사용자가 점주로 연결된다.
func (s *StoreService) CreateStore(userID, name string) (*model.Store, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: 매장명이 비어 있습니다", apperrors.ErrInvalidInput)
	}

	store := &model.Store{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.storeRepo.Create(store); err != nil {
		return nil, err
	}

	err := s.storeRepo.AddMember(&model.UserStore{
		UserID:  userID,
		StoreID: store.ID,
		Role:    model.RoleOwner,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("매장 생성", map[string]interface{}{
		"store_id": store.ID,
		"user_id":  userID,
	})
	return store, nil
}

// GetMyStores 사용자가 소속된 매장 목록
func (s *StoreService) GetMyStores(userID string) ([]model.Store, error) {
	return s.storeRepo.FindByUser(userID)
}

// GetStore 매장 단건 조회
func (s *StoreService) GetStore(storeID string) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, apperrors.ErrNotFound
	}
	return store, nil
}
