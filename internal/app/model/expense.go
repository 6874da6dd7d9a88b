package model

import (
	"time"
)

// 비용 카테고리. 고정비는 월 금액(원), 변동비는 매출 대비 비율(%)로 해석된다.
// 카테고리 문자열 자체가 인터페이스의 일부이므로 자유 입력이 아니다.
const (
	ExpenseRent    = "임차료"          // 고정비
	ExpenseLabor   = "인건비"          // 고정비
	ExpenseUtility = "공과금"          // 고정비
	ExpenseFood    = "재료비"          // 변동비 (%)
	ExpenseVATCard = "부가세&카드수수료" // 변동비 (%)
)

// FixedCategories 월 금액(원)으로 해석되는 카테고리
var FixedCategories = []string{ExpenseRent, ExpenseLabor, ExpenseUtility}

// VariableCategories 매출 대비 비율(%)로 해석되는 카테고리
var VariableCategories = []string{ExpenseFood, ExpenseVATCard}

// IsFixedCategory 고정비 카테고리 여부
func IsFixedCategory(category string) bool {
	for _, c := range FixedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidExpenseCategory 허용된 카테고리 여부
func IsValidExpenseCategory(category string) bool {
	if IsFixedCategory(category) {
		return true
	}
	for _, c := range VariableCategories {
		if c == category {
			return true
		}
	}
	return false
}

// ExpenseItem 월별 비용구조 항목 (매장·연·월·카테고리·항목명 유일)
// 고정비 카테고리의 Amount는 원 단위 금액, 변동비 카테고리의 Amount는 0~100 퍼센트.
type ExpenseItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	StoreID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_expense_key" json:"store_id"`        // 매장 ID
	Year      int       `gorm:"not null;uniqueIndex:idx_expense_key" json:"year"`                      // 연도
	Month     int       `gorm:"not null;uniqueIndex:idx_expense_key" json:"month"`                     // 월 (1-12)
	Category  string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_expense_key" json:"category"` // 카테고리
	ItemName  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_expense_key" json:"item_name"` // 항목명
	Amount    float64   `gorm:"not null;default:0" json:"amount"`                                      // 금액(원) 또는 비율(%)
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`                                      // 비고
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ExpenseItem) TableName() string {
	return "expense_structure"
}
