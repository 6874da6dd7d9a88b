// Package analytics 프레임 입력, 프레임 출력의 순수 계산 커널.
// DB나 캐시를 직접 만지지 않고, 호출자가 적재한 데이터만 가지고 계산한다.
package analytics

import (
	"sort"

	"github.com/jangsalab/storeops-backend/internal/app/model"
)

// MenuCostLine 메뉴 1개당 원가 분해 결과
type MenuCostLine struct {
	MenuID   uint     `json:"menu_id"`
	MenuName string   `json:"menu_name"`
	Price    int64    `json:"price"`
	Cost     float64  `json:"cost"`                // 레시피 합산 원가 (원)
	CostRate *float64 `json:"cost_rate,omitempty"` // 원가율. 가격 0이면 null (무한대 금지)
	Margin   float64  `json:"margin"`              // 공헌이익 (원)
}

// ComputeMenuCosts 메뉴별 원가 = Σ (레시피 사용량 × 재료 단가).
// 레시피가 없는 메뉴는 원가 0으로 나온다.
func ComputeMenuCosts(menus []model.Menu, recipes []model.Recipe) []MenuCostLine {
	costByMenu := make(map[uint]float64)
	for _, recipe := range recipes {
		costByMenu[recipe.MenuID] += recipe.Qty * recipe.Ingredient.UnitCost
	}

	lines := make([]MenuCostLine, 0, len(menus))
	for _, menu := range menus {
		cost := costByMenu[menu.ID]
		line := MenuCostLine{
			MenuID:   menu.ID,
			MenuName: menu.Name,
			Price:    menu.Price,
			Cost:     cost,
			Margin:   float64(menu.Price) - cost,
		}
		if menu.Price > 0 {
			rate := cost / float64(menu.Price)
			line.CostRate = &rate
		}
		lines = append(lines, line)
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].MenuName < lines[j].MenuName })
	return lines
}
