package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MenuQuantities 마감 시점의 메뉴별 판매 수량. DB에는 JSON 텍스트로 저장.
type MenuQuantities map[string]int

func (q MenuQuantities) Value() (driver.Value, error) {
	if q == nil {
		return "{}", nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (q *MenuQuantities) Scan(value interface{}) error {
	if value == nil {
		*q = MenuQuantities{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for MenuQuantities: %T", value)
	}
	if len(raw) == 0 {
		*q = MenuQuantities{}
		return nil
	}
	return json.Unmarshal(raw, q)
}

// DailyClose 공식 일일 마감 기록 (매장·날짜당 1행)
// 이 행이 존재하면 해당 날짜는 "공식 마감됨"을 의미한다.
type DailyClose struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	StoreID       string         `gorm:"type:uuid;not null;uniqueIndex:idx_close_store_date" json:"store_id"` // 매장 ID
	Date          string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_close_store_date" json:"date"` // 영업일 (KST, YYYY-MM-DD)
	CardSales     int64          `gorm:"not null;default:0" json:"card_sales"`                                // 카드 매출 (원)
	CashSales     int64          `gorm:"not null;default:0" json:"cash_sales"`                                // 현금 매출 (원)
	TotalSales    int64          `gorm:"not null;default:0" json:"total_sales"`                               // 총 매출 (원)
	Visitors      int            `gorm:"not null;default:0" json:"visitors"`                                  // 방문자 수
	OutOfStock    bool           `gorm:"not null;default:false" json:"out_of_stock"`                          // 품절 발생
	Complaint     bool           `gorm:"not null;default:false" json:"complaint"`                             // 컴플레인 발생
	GroupCustomer bool           `gorm:"not null;default:false" json:"group_customer"`                        // 단체손님
	StaffIssue    bool           `gorm:"not null;default:false" json:"staff_issue"`                           // 직원 이슈
	Memo          string         `gorm:"type:text" json:"memo,omitempty"`                                     // 메모
	SalesItems    MenuQuantities `gorm:"type:text" json:"sales_items"`                                        // 메뉴별 판매 수량 (JSON)
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (DailyClose) TableName() string {
	return "daily_close"
}

// DailySalesItem 마감 이후 메뉴별 판매 수량 보정 행.
// qty=0도 "판매 없음"의 명시적 기록이므로 그대로 저장된다.
type DailySalesItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_dsi_store_date_menu" json:"store_id"` // 매장 ID
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_dsi_store_date_menu" json:"date"` // 영업일 (KST, YYYY-MM-DD)
	MenuID    uint      `gorm:"not null;uniqueIndex:idx_dsi_store_date_menu;index" json:"menu_id"`      // 메뉴 ID
	Qty       int       `gorm:"not null;default:0" json:"qty"`                                          // 판매 수량 (0 이상)
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Menu Menu `gorm:"foreignKey:MenuID" json:"menu,omitempty"`
}

func (DailySalesItem) TableName() string {
	return "daily_sales_items"
}
