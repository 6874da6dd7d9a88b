// Package strategy 분석 결과에서 우선순위가 매겨진 전략 카드를 만든다.
// 카드 후보는 지표 임계값이 걸릴 때 나오고, 건강 진단 스냅샷이 있으면
// 가중치 규칙으로 우선순위·성공확률이 보정된다.
package strategy

import (
	"sort"
)

// 전략 카드 유형
const (
	TypeSurvival    = "SURVIVAL"    // 손익분기 미달 생존 전략
	TypeMargin      = "MARGIN"      // 수익성 개선
	TypeCost        = "COST"        // 원가 구조 개선
	TypePortfolio   = "PORTFOLIO"   // 메뉴 구성 다변화
	TypeAcquisition = "ACQUISITION" // 신규 방문 유치
	TypeOperations  = "OPERATIONS"  // 운영 루틴 개선
)

const maxCards = 6

// Context 카드 생성에 쓰는 매장 지표 묶음
type Context struct {
	StoreState              string  `json:"store_state"`
	OverallScore            int     `json:"overall_score"`             // 0~100 종합 점수
	BreakEvenGapRatio       float64 `json:"break_even_gap_ratio"`      // 매출 / 손익분기 매출
	MarginMenuRatio         float64 `json:"margin_menu_ratio"`         // 마진 양호 메뉴 비중 [0,1]
	IngredientConcentration float64 `json:"ingredient_concentration"`  // 상위 재료 지출 집중도 [0,1]
	VisitorsTrend           string  `json:"visitors_trend"`            // up | flat | down
}

// Card 전략 카드
type Card struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Priority    int      `json:"priority"`
	Probability float64  `json:"probability"` // 성공 확률 [0.25, 0.80]
	Reasons     []string `json:"reasons"`     // 최대 3개
	CTA         string   `json:"cta"`
}

// BuildCards 임계값 규칙으로 후보를 만들고, 스냅샷이 있으면 가중치를 적용한 뒤
// 우선순위 내림차순으로 최대 6장을 돌려준다.
func BuildCards(ctx Context, profile *HealthProfile) []Card {
	cards := emitCandidates(ctx)

	if profile != nil {
		applyHealthWeighting(cards, profile)
	}

	for i := range cards {
		cards[i].Probability = clampProbability(cards[i].Probability)
		if len(cards[i].Reasons) > 3 {
			cards[i].Reasons = cards[i].Reasons[:3]
		}
	}

	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Priority > cards[j].Priority
	})
	if len(cards) > maxCards {
		cards = cards[:maxCards]
	}
	return cards
}

func emitCandidates(ctx Context) []Card {
	cards := []Card{}

	if ctx.BreakEvenGapRatio > 0 && ctx.BreakEvenGapRatio < 0.95 || ctx.OverallScore < 40 {
		cards = append(cards, Card{
			Type:        TypeSurvival,
			Title:       "손익분기부터 넘기기",
			Priority:    100,
			Probability: 0.65,
			Reasons:     []string{"매출이 손익분기에 미치지 못하고 있어요"},
			CTA:         "break_even",
		})
	}

	if ctx.MarginMenuRatio < 0.20 || ctx.OverallScore < 50 {
		cards = append(cards, Card{
			Type:        TypeMargin,
			Title:       "마진 좋은 메뉴 키우기",
			Priority:    100,
			Probability: 0.60,
			Reasons:     []string{"마진이 좋은 메뉴 비중이 낮아요"},
			CTA:         "menu_cost",
		})
	}

	if ctx.IngredientConcentration > 0.70 {
		cards = append(cards, Card{
			Type:        TypeCost,
			Title:       "주력 재료 의존 줄이기",
			Priority:    100,
			Probability: 0.55,
			Reasons:     []string{"재료 지출이 소수 품목에 몰려 있어요"},
			CTA:         "ingredient_abc",
		})
	}

	if ctx.MarginMenuRatio < 0.30 {
		cards = append(cards, Card{
			Type:        TypePortfolio,
			Title:       "메뉴 구성 다시 짜기",
			Priority:    100,
			Probability: 0.50,
			Reasons:     []string{"돈이 되는 메뉴 폭이 좁아요"},
			CTA:         "abc_analysis",
		})
	}

	if ctx.VisitorsTrend == "down" {
		cards = append(cards, Card{
			Type:        TypeAcquisition,
			Title:       "신규 방문 늘리기",
			Priority:    100,
			Probability: 0.50,
			Reasons:     []string{"방문자가 줄고 있어요"},
			CTA:         "drop_analysis",
		})
	}

	// 여섯 장이 안 되면 운영 카드로 채운다
	operations := []Card{
		{Type: TypeOperations, Title: "일일 마감 루틴 만들기", Priority: 60, Probability: 0.60,
			Reasons: []string{"기록이 쌓여야 분석이 정확해져요"}, CTA: "daily_close"},
		{Type: TypeOperations, Title: "주간 재고 점검", Priority: 55, Probability: 0.60,
			Reasons: []string{"재고 손실은 보이지 않는 비용이에요"}, CTA: "inventory"},
		{Type: TypeOperations, Title: "월간 목표 설정", Priority: 50, Probability: 0.60,
			Reasons: []string{"목표가 있어야 진도를 잴 수 있어요"}, CTA: "targets"},
	}
	for _, op := range operations {
		if len(cards) >= maxCards {
			break
		}
		cards = append(cards, op)
	}
	return cards
}

func clampProbability(p float64) float64 {
	if p < 0.25 {
		return 0.25
	}
	if p > 0.80 {
		return 0.80
	}
	return p
}
