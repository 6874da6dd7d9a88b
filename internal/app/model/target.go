package model

import (
	"time"
)

// Target 월별 목표 (매장·연·월 유일). 비율은 0~100 퍼센트.
type Target struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	StoreID          string    `gorm:"type:uuid;not null;uniqueIndex:idx_target_key" json:"store_id"` // 매장 ID
	Year             int       `gorm:"not null;uniqueIndex:idx_target_key" json:"year"`               // 연도
	Month            int       `gorm:"not null;uniqueIndex:idx_target_key" json:"month"`              // 월 (1-12)
	TargetSales      int64     `gorm:"not null;default:0" json:"target_sales"`                        // 목표 매출 (원)
	TargetCostRate   float64   `gorm:"not null;default:0" json:"target_cost_rate"`                    // 목표 원가율 (%)
	TargetLaborRate  float64   `gorm:"not null;default:0" json:"target_labor_rate"`                   // 목표 인건비율 (%)
	TargetRentRate   float64   `gorm:"not null;default:0" json:"target_rent_rate"`                    // 목표 임차료율 (%)
	TargetUtilRate   float64   `gorm:"not null;default:0" json:"target_util_rate"`                    // 목표 공과금율 (%)
	TargetOtherRate  float64   `gorm:"not null;default:0" json:"target_other_rate"`                   // 목표 기타비율 (%)
	TargetProfitRate float64   `gorm:"not null;default:0" json:"target_profit_rate"`                  // 목표 순이익률 (%)
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Target) TableName() string {
	return "targets"
}

// ABCHistory 월별 ABC 분석 스냅샷 (스케줄러가 기록)
type ABCHistory struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   string    `gorm:"type:uuid;not null;index:idx_abc_store_ym" json:"store_id"` // 매장 ID
	Year      int       `gorm:"not null;index:idx_abc_store_ym" json:"year"`               // 연도
	Month     int       `gorm:"not null;index:idx_abc_store_ym" json:"month"`              // 월
	MenuName  string    `gorm:"type:varchar(100);not null" json:"menu_name"`               // 메뉴명
	Qty       int       `gorm:"not null;default:0" json:"qty"`                             // 판매량
	Revenue   int64     `gorm:"not null;default:0" json:"revenue"`                         // 매출 (원)
	Share     float64   `gorm:"not null;default:0" json:"share"`                           // 매출 비중 (%)
	CumShare  float64   `gorm:"not null;default:0" json:"cum_share"`                       // 누적 비중 (%)
	Grade     string    `gorm:"type:varchar(1);not null" json:"grade"`                     // A | B | C
	CreatedAt time.Time `json:"created_at"`
}

func (ABCHistory) TableName() string {
	return "abc_history"
}
