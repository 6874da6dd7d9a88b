package model

import (
	"time"
)

type StoreRole string // 매장 내 역할

const (
	RoleOwner   StoreRole = "owner"   // 점주
	RoleManager StoreRole = "manager" // 매니저
)

// Store 매장. 모든 데이터의 테넌트 격리 경계.
type Store struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`         // 매장 ID (uuid)
	Name      string    `gorm:"type:varchar(100);not null" json:"name"` // 매장명
	CreatedAt time.Time `json:"created_at"`                             // 생성 시각
	UpdatedAt time.Time `json:"updated_at"`                             // 수정 시각
}

func (Store) TableName() string {
	return "stores"
}

// UserStore 사용자-매장 연결 (다대다 + 역할)
type UserStore struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_store" json:"user_id"`  // 사용자 ID
	StoreID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_store" json:"store_id"` // 매장 ID
	Role      StoreRole `gorm:"type:varchar(20);not null;default:'owner'" json:"role"`         // owner | manager
	CreatedAt time.Time `json:"created_at"`

	Store Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
}

func (UserStore) TableName() string {
	return "user_stores"
}
