package strategy

import (
	"time"

	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// 건강 진단의 위험 카테고리
const (
	HealthProfitability = "profitability" // 수익성
	HealthCost          = "cost"          // 비용 구조
	HealthTraffic       = "traffic"       // 집객
	HealthOperations    = "operations"    // 운영 습관
)

// HealthProfile 매장 건강 진단 스냅샷. RedCategories는 위험 판정을 받은 카테고리.
type HealthProfile struct {
	RedCategories []string  `json:"red_categories"`
	TakenAt       time.Time `json:"taken_at"`
}

// weightRule 카테고리 x 카드 유형별 보정값
type weightRule struct {
	PriorityDelta    int
	ProbabilityDelta float64
}

// weightRules (위험 카테고리, 카드 유형) -> 보정. 제어 흐름이 아니라 데이터로 둔다.
var weightRules = map[string]map[string]weightRule{
	HealthProfitability: {
		TypeSurvival: {PriorityDelta: 30, ProbabilityDelta: 0.05},
		TypeMargin:   {PriorityDelta: 25, ProbabilityDelta: 0.05},
	},
	HealthCost: {
		TypeCost:   {PriorityDelta: 30, ProbabilityDelta: 0.05},
		TypeMargin: {PriorityDelta: 10, ProbabilityDelta: 0},
	},
	HealthTraffic: {
		TypeAcquisition: {PriorityDelta: 30, ProbabilityDelta: 0.05},
		TypePortfolio:   {PriorityDelta: 10, ProbabilityDelta: 0},
	},
	HealthOperations: {
		TypeOperations: {PriorityDelta: 20, ProbabilityDelta: 0.10},
	},
}

// 30일이 지난 스냅샷은 0.7배 강도로만 반영한다
const (
	staleAfterDays = 30
	staleFactor    = 0.7
)

// applyHealthWeighting 위험 카테고리에 해당하는 카드의 우선순위·확률을 끌어올린다
func applyHealthWeighting(cards []Card, profile *HealthProfile) {
	factor := 1.0
	if timeutil.NowKST().Sub(profile.TakenAt) > staleAfterDays*24*time.Hour {
		factor = staleFactor
	}

	for _, category := range profile.RedCategories {
		rules, ok := weightRules[category]
		if !ok {
			continue
		}
		for i := range cards {
			rule, ok := rules[cards[i].Type]
			if !ok {
				continue
			}
			cards[i].Priority += int(float64(rule.PriorityDelta) * factor)
			cards[i].Probability += rule.ProbabilityDelta * factor
		}
	}
}
