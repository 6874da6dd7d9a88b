package analytics

import (
	"sort"

	"github.com/jangsalab/storeops-backend/internal/app/model"
)

// MenuDayQty 하루·메뉴별 판매 수량 (resolver가 확정한 값)
type MenuDayQty struct {
	Date     string `json:"date"`
	MenuID   uint   `json:"menu_id"`
	MenuName string `json:"menu_name"`
	Qty      int    `json:"qty"`
}

// DailyIngredientUsage 하루·재료별 사용량
type DailyIngredientUsage struct {
	Date         string  `json:"date"`
	IngredientID uint    `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	Amount       float64 `json:"amount"`
}

// IngredientUsageSummary 기간 재료별 사용량·지출 합계
type IngredientUsageSummary struct {
	IngredientID uint    `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	TotalAmount  float64 `json:"total_amount"`
	TotalSpend   int64   `json:"total_spend"` // 사용량 × 단가 (원)
}

// ComputeIngredientUsage 하루·메뉴별 수량과 레시피를 곱해
// (날짜, 재료)별 사용량을 내고, 기간 전체의 재료별 합계와 지출도 같이 돌려준다.
func ComputeIngredientUsage(quantities []MenuDayQty, recipes []model.Recipe, ingredients []model.Ingredient) ([]DailyIngredientUsage, []IngredientUsageSummary) {
	recipesByMenu := make(map[uint][]model.Recipe)
	for _, recipe := range recipes {
		recipesByMenu[recipe.MenuID] = append(recipesByMenu[recipe.MenuID], recipe)
	}
	ingredientByID := make(map[uint]model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		ingredientByID[ing.ID] = ing
	}

	type dayKey struct {
		date         string
		ingredientID uint
	}
	daily := make(map[dayKey]float64)
	totals := make(map[uint]float64)

	for _, q := range quantities {
		if q.Qty == 0 {
			continue
		}
		for _, recipe := range recipesByMenu[q.MenuID] {
			amount := float64(q.Qty) * recipe.Qty
			daily[dayKey{q.Date, recipe.IngredientID}] += amount
			totals[recipe.IngredientID] += amount
		}
	}

	dailyRows := make([]DailyIngredientUsage, 0, len(daily))
	for key, amount := range daily {
		ing := ingredientByID[key.ingredientID]
		dailyRows = append(dailyRows, DailyIngredientUsage{
			Date:         key.date,
			IngredientID: key.ingredientID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			Amount:       amount,
		})
	}
	sort.Slice(dailyRows, func(i, j int) bool {
		if dailyRows[i].Date != dailyRows[j].Date {
			return dailyRows[i].Date < dailyRows[j].Date
		}
		return dailyRows[i].Name < dailyRows[j].Name
	})

	summaries := make([]IngredientUsageSummary, 0, len(totals))
	for ingredientID, amount := range totals {
		ing := ingredientByID[ingredientID]
		summaries = append(summaries, IngredientUsageSummary{
			IngredientID: ingredientID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			TotalAmount:  amount,
			TotalSpend:   int64(amount * ing.UnitCost),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].TotalSpend != summaries[j].TotalSpend {
			return summaries[i].TotalSpend > summaries[j].TotalSpend
		}
		return summaries[i].Name < summaries[j].Name
	})

	return dailyRows, summaries
}

// OrderRecommendation 재료별 발주 추천
type OrderRecommendation struct {
	IngredientID uint    `json:"ingredient_id"`
	Name         string  `json:"name"`
	Unit         string  `json:"unit"`
	OnHand       float64 `json:"on_hand"`
	SafetyStock  float64 `json:"safety_stock"`
	DailyUsage   float64 `json:"daily_usage"`          // 기간 평균 일 사용량
	DaysCover    *float64 `json:"days_cover,omitempty"` // 현재고 소진까지 일수. 사용량 0이면 null
	RecommendQty float64 `json:"recommend_qty"`         // 발주 추천량
}

// RecommendOrders 평균 일 사용량과 안전재고를 바탕으로 발주량을 추천한다.
// 추천량 = max(0, 안전재고 + 리드타임 소요량 − 현재고). periodDays는 사용량 집계 기간.
func RecommendOrders(summaries []IngredientUsageSummary, inventory []model.Inventory, periodDays, leadTimeDays int) []OrderRecommendation {
	if periodDays <= 0 {
		periodDays = 1
	}
	if leadTimeDays <= 0 {
		leadTimeDays = 3
	}

	usageByID := make(map[uint]float64, len(summaries))
	for _, s := range summaries {
		usageByID[s.IngredientID] = s.TotalAmount / float64(periodDays)
	}

	recs := make([]OrderRecommendation, 0, len(inventory))
	for _, inv := range inventory {
		dailyUsage := usageByID[inv.IngredientID]
		rec := OrderRecommendation{
			IngredientID: inv.IngredientID,
			Name:         inv.Ingredient.Name,
			Unit:         inv.Ingredient.Unit,
			OnHand:       inv.OnHand,
			SafetyStock:  inv.SafetyStock,
			DailyUsage:   dailyUsage,
		}
		if dailyUsage > 0 {
			cover := inv.OnHand / dailyUsage
			rec.DaysCover = &cover
		}
		need := inv.SafetyStock + dailyUsage*float64(leadTimeDays) - inv.OnHand
		if need > 0 {
			rec.RecommendQty = need
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].RecommendQty != recs[j].RecommendQty {
			return recs[i].RecommendQty > recs[j].RecommendQty
		}
		return recs[i].Name < recs[j].Name
	})
	return recs
}

// InventoryTurnover 재료별 재고 회전 지표
type InventoryTurnover struct {
	IngredientID uint     `json:"ingredient_id"`
	Name         string   `json:"name"`
	UsedAmount   float64  `json:"used_amount"`
	AvgOnHand    float64  `json:"avg_on_hand"`
	Turnover     *float64 `json:"turnover,omitempty"` // 사용량 / 평균 재고. 재고 0이면 null
}

// ComputeTurnover 기간 사용량 대비 현재고 기준의 단순 회전율
func ComputeTurnover(summaries []IngredientUsageSummary, inventory []model.Inventory) []InventoryTurnover {
	usageByID := make(map[uint]IngredientUsageSummary, len(summaries))
	for _, s := range summaries {
		usageByID[s.IngredientID] = s
	}

	rows := make([]InventoryTurnover, 0, len(inventory))
	for _, inv := range inventory {
		used := usageByID[inv.IngredientID].TotalAmount
		row := InventoryTurnover{
			IngredientID: inv.IngredientID,
			Name:         inv.Ingredient.Name,
			UsedAmount:   used,
			AvgOnHand:    inv.OnHand,
		}
		if inv.OnHand > 0 {
			turnover := used / inv.OnHand
			row.Turnover = &turnover
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}
