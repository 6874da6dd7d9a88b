package model

import (
	"time"
)

// Menu 메뉴 마스터 (매장·이름 유일)
type Menu struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	StoreID       string    `gorm:"type:uuid;not null;uniqueIndex:idx_menu_store_name" json:"store_id"`  // 매장 ID
	Name          string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_menu_store_name" json:"name"` // 메뉴명
	Price         int64     `gorm:"not null;default:0" json:"price"`                                     // 판매가 (원)
	Category      string    `gorm:"type:varchar(50)" json:"category,omitempty"`                          // 분류 (선택)
	CookingMethod string    `gorm:"type:varchar(50)" json:"cooking_method,omitempty"`                    // 조리 방식 (선택)
	IsCore        bool      `gorm:"not null;default:false" json:"is_core"`                               // 핵심 메뉴 여부
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Menu) TableName() string {
	return "menu_master"
}

// Ingredient 재료 마스터 (매장·이름 유일)
type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_ingredient_store_name" json:"store_id"`   // 매장 ID
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_ingredient_store_name" json:"name"` // 재료명
	Unit      string    `gorm:"type:varchar(20);not null" json:"unit"`                                      // 단위 (g, ml, 개 등)
	UnitCost  float64   `gorm:"not null;default:0" json:"unit_cost"`                                        // 단위당 단가 (원)
	OrderUnit string    `gorm:"type:varchar(20)" json:"order_unit,omitempty"`                               // 발주 단위 (선택)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// Recipe 메뉴 1단위당 재료 사용량 (매장·메뉴·재료 유일)
type Recipe struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	StoreID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_key" json:"store_id"` // 매장 ID
	MenuID       uint      `gorm:"not null;uniqueIndex:idx_recipe_key;index" json:"menu_id"`      // 메뉴 ID
	IngredientID uint      `gorm:"not null;uniqueIndex:idx_recipe_key;index" json:"ingredient_id"` // 재료 ID
	Qty          float64   `gorm:"not null;default:0" json:"qty"`                                 // 메뉴 1개당 사용량
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Menu       Menu       `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// Inventory 재고 (매장·재료 유일)
type Inventory struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	StoreID      string    `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_key" json:"store_id"` // 매장 ID
	IngredientID uint      `gorm:"not null;uniqueIndex:idx_inventory_key;index" json:"ingredient_id"` // 재료 ID
	OnHand       float64   `gorm:"not null;default:0" json:"on_hand"`                                // 현재고
	SafetyStock  float64   `gorm:"not null;default:0" json:"safety_stock"`                           // 안전재고
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Ingredient Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}

func (Inventory) TableName() string {
	return "inventory"
}
