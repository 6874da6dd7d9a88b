package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangsalab/storeops-backend/internal/app/model"
)

func TestBreakEven_StandardCase(t *testing.T) {
	// 고정비 850만원, 변동비율 43% -> 손익분기 약 14,912,280원
	items := []model.ExpenseItem{
		{Category: model.ExpenseRent, ItemName: "월세", Amount: 3_000_000},
		{Category: model.ExpenseLabor, ItemName: "직원", Amount: 5_000_000},
		{Category: model.ExpenseUtility, ItemName: "전기", Amount: 500_000},
		{Category: model.ExpenseFood, ItemName: "식자재", Amount: 30},
		{Category: model.ExpenseVATCard, ItemName: "수수료", Amount: 13},
	}

	cs := DecomposeExpenses(items)
	assert.Equal(t, int64(8_500_000), cs.FixedTotal)
	assert.InDelta(t, 0.43, cs.VariableRatio, 0.0001)

	be := BreakEven(cs.FixedTotal, cs.VariableRatio)
	require.NotNil(t, be)
	assert.InDelta(t, 14_912_280, *be, 1)
}

func TestBreakEven_UndefinedCases(t *testing.T) {
	// F=0, v>=1, v<=0 은 전부 null이어야 한다 (0으로 뭉개면 안 된다)
	assert.Nil(t, BreakEven(0, 0.4))
	assert.Nil(t, BreakEven(1_000_000, 0))
	assert.Nil(t, BreakEven(1_000_000, 1.0))
	assert.Nil(t, BreakEven(1_000_000, 1.2))
	assert.Nil(t, BreakEven(-500, 0.4))
}

func TestSplitWeekdayWeekend(t *testing.T) {
	split, err := SplitWeekdayWeekend(30_000_000, 60, 40, 9_000_000, 0.4)
	require.NoError(t, err)

	// 주중 일 목표 = 3000만 x 0.6 / 22
	assert.InDelta(t, 30_000_000*0.6/22, split.WeekdayDaily, 0.01)
	assert.InDelta(t, 30_000_000*0.4/8, split.WeekendDaily, 0.01)

	// 일 고정비는 주중/주말 모두 F/30
	assert.InDelta(t, 9_000_000.0/30, split.WeekdayDailyFixed, 0.01)
	assert.InDelta(t, 9_000_000.0/30, split.WeekendDailyFixed, 0.01)

	assert.InDelta(t, split.WeekdayDaily*0.6-300_000, split.WeekdayDailyProfit, 0.01)
}

func TestSplitWeekdayWeekend_RefusesBadShares(t *testing.T) {
	_, err := SplitWeekdayWeekend(30_000_000, 60, 45, 9_000_000, 0.4)
	assert.Error(t, err)

	// 0.1pp 허용 오차 안이면 통과
	_, err = SplitWeekdayWeekend(30_000_000, 60.05, 40, 9_000_000, 0.4)
	assert.NoError(t, err)
}

func TestSimulateScenarios(t *testing.T) {
	cs := CostStructure{
		FixedTotal:    8_500_000,
		FixedLines:    map[string]int64{model.ExpenseRent: 3_000_000, model.ExpenseLabor: 5_000_000, model.ExpenseUtility: 500_000},
		VariableLines: map[string]float64{model.ExpenseFood: 30, model.ExpenseVATCard: 13},
	}

	scenarios := SimulateScenarios(15_000_000, cs)
	require.Len(t, scenarios, 6)

	// 기준 매출 행: 변동비 = 1500만 x 43%
	base := scenarios[2]
	assert.Equal(t, int64(15_000_000), base.Sales)
	assert.Equal(t, int64(4_500_000), base.VariableLines[model.ExpenseFood])
	assert.Equal(t, int64(1_950_000), base.VariableLines[model.ExpenseVATCard])
	assert.Equal(t, base.Sales-base.TotalCost, base.Profit)
}

func TestSimulateScenarios_ClipsNegativeSales(t *testing.T) {
	cs := CostStructure{FixedTotal: 1_000_000, FixedLines: map[string]int64{}, VariableLines: map[string]float64{}}

	// 기준 700만이면 -10M 수준은 음수라 빠진다
	scenarios := SimulateScenarios(7_000_000, cs)
	require.Len(t, scenarios, 5)
	assert.Equal(t, int64(2_000_000), scenarios[0].Sales)
}
