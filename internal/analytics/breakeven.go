package analytics

import (
	"fmt"
	"math"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

// CostStructure 월 비용구조 분해 결과
type CostStructure struct {
	FixedTotal    int64              `json:"fixed_total"`    // 월 고정비 합 (원)
	VariableRatio float64            `json:"variable_ratio"` // 변동비율 [0,1]
	FixedLines    map[string]int64   `json:"fixed_lines"`    // 카테고리별 고정비 (원)
	VariableLines map[string]float64 `json:"variable_lines"` // 카테고리별 변동비율 (%)
}

// DecomposeExpenses 비용 항목을 고정비 합계와 변동비율로 분해한다.
// 변동비 퍼센트는 여기서 [0,1] 비율로 변환된다. 내부 계산은 비율만 쓴다.
func DecomposeExpenses(items []model.ExpenseItem) CostStructure {
	cs := CostStructure{
		FixedLines:    make(map[string]int64),
		VariableLines: make(map[string]float64),
	}
	for _, item := range items {
		if model.IsFixedCategory(item.Category) {
			cs.FixedLines[item.Category] += int64(item.Amount)
			cs.FixedTotal += int64(item.Amount)
		} else {
			cs.VariableLines[item.Category] += item.Amount
			cs.VariableRatio += item.Amount / 100
		}
	}
	return cs
}

// BreakEven 손익분기 매출 = F / (1 − v).
// F > 0이고 0 < v < 1일 때만 값이 있고, 아니면 null이다 (0으로 뭉개지 않는다).
func BreakEven(fixedTotal int64, variableRatio float64) *float64 {
	if fixedTotal <= 0 || variableRatio <= 0 || variableRatio >= 1 {
		return nil
	}
	value := float64(fixedTotal) / (1 - variableRatio)
	return &value
}

// DailySplit 주중/주말 일 목표 분해 결과
type DailySplit struct {
	WeekdayDaily       float64 `json:"weekday_daily"`        // 주중 일 목표 매출 (원)
	WeekendDaily       float64 `json:"weekend_daily"`        // 주말 일 목표 매출 (원)
	WeekdayDailyFixed  float64 `json:"weekday_daily_fixed"`  // 주중 일 고정비 (원)
	WeekendDailyFixed  float64 `json:"weekend_daily_fixed"`  // 주말 일 고정비 (원)
	WeekdayDailyProfit float64 `json:"weekday_daily_profit"` // 주중 일 영업이익 (원)
	WeekendDailyProfit float64 `json:"weekend_daily_profit"` // 주말 일 영업이익 (원)
}

// 주중 22일 / 주말 8일의 고정 캘린더 비율
const (
	weekdayCount = 22
	weekendCount = 8
	monthDays    = 30
)

// SplitWeekdayWeekend 월 목표 T를 주중/주말 일 단위로 쪼갠다.
// 주중·주말 비중(퍼센트)의 합이 100 ± 0.1pp를 벗어나면 부분 결과 없이 거부한다.
func SplitWeekdayWeekend(monthlyTarget int64, weekdayPct, weekendPct float64, fixedTotal int64, variableRatio float64) (*DailySplit, error) {
	if math.Abs(weekdayPct+weekendPct-100) > 0.1 {
		return nil, fmt.Errorf("%w: 주중·주말 비중 합이 100%%가 아닙니다 (%.1f%%)", apperrors.ErrInvalidInput, weekdayPct+weekendPct)
	}

	w := weekdayPct / 100
	weekdayDaily := float64(monthlyTarget) * w / weekdayCount
	weekendDaily := float64(monthlyTarget) * (1 - w) / weekendCount

	weekdayFixed := float64(fixedTotal) * weekdayCount / monthDays / weekdayCount
	weekendFixed := float64(fixedTotal) * weekendCount / monthDays / weekendCount

	return &DailySplit{
		WeekdayDaily:       weekdayDaily,
		WeekendDaily:       weekendDaily,
		WeekdayDailyFixed:  weekdayFixed,
		WeekendDailyFixed:  weekendFixed,
		WeekdayDailyProfit: weekdayDaily*(1-variableRatio) - weekdayFixed,
		WeekendDailyProfit: weekendDaily*(1-variableRatio) - weekendFixed,
	}, nil
}

// Scenario 매출 수준별 손익 시뮬레이션 한 줄
type Scenario struct {
	Sales         int64              `json:"sales"`          // 매출 수준 (원)
	FixedLines    map[string]int64   `json:"fixed_lines"`    // 고정비 (원)
	VariableLines map[string]int64   `json:"variable_lines"` // 변동비 = 매출 × 비율 (원)
	TotalCost     int64              `json:"total_cost"`
	Profit        int64              `json:"profit"`
}

// scenarioOffsets 기준 매출 T에 대한 여섯 수준 (원)
var scenarioOffsets = []int64{-10_000_000, -5_000_000, 0, 5_000_000, 10_000_000, 15_000_000}

// SimulateScenarios T−10M부터 T+15M까지 여섯 매출 수준의 비용·이익을 계산한다.
// 매출이 음수가 되는 수준은 결과에서 뺀다.
func SimulateScenarios(baseSales int64, cs CostStructure) []Scenario {
	scenarios := make([]Scenario, 0, len(scenarioOffsets))
	for _, offset := range scenarioOffsets {
		sales := baseSales + offset
		if sales < 0 {
			continue
		}

		variableLines := make(map[string]int64, len(cs.VariableLines))
		var variableTotal int64
		for category, pct := range cs.VariableLines {
			amount := int64(float64(sales) * pct / 100)
			variableLines[category] = amount
			variableTotal += amount
		}

		fixedLines := make(map[string]int64, len(cs.FixedLines))
		for category, amount := range cs.FixedLines {
			fixedLines[category] = amount
		}

		totalCost := cs.FixedTotal + variableTotal
		scenarios = append(scenarios, Scenario{
			Sales:         sales,
			FixedLines:    fixedLines,
			VariableLines: variableLines,
			TotalCost:     totalCost,
			Profit:        sales - totalCost,
		})
	}
	return scenarios
}
