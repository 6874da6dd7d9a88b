package model

import (
	"time"
)

// Sales 일별 매출 (매장·날짜당 1행). 금액은 원 단위 정수.
// 합계만 아는 날은 카드/현금이 0일 수 있다.
type Sales struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	StoreID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_sales_store_date" json:"store_id"` // 매장 ID
	Date       string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_sales_store_date" json:"date"` // 영업일 (KST, YYYY-MM-DD)
	CardSales  int64     `gorm:"not null;default:0" json:"card_sales"`                                // 카드 매출 (원)
	CashSales  int64     `gorm:"not null;default:0" json:"cash_sales"`                                // 현금 매출 (원)
	TotalSales int64     `gorm:"not null;default:0" json:"total_sales"`                               // 총 매출 (원)
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Sales) TableName() string {
	return "sales"
}

// Visitor 일별 방문자 수 (매장·날짜당 1행)
type Visitor struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_visitors_store_date" json:"store_id"` // 매장 ID
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_visitors_store_date" json:"date"` // 영업일 (KST, YYYY-MM-DD)
	Visitors  int       `gorm:"not null;default:0" json:"visitors"`                                     // 방문자 수
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Visitor) TableName() string {
	return "visitors"
}
