package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

func healthyContext() Context {
	return Context{
		OverallScore:            75,
		BreakEvenGapRatio:       1.2,
		MarginMenuRatio:         0.5,
		IngredientConcentration: 0.4,
		VisitorsTrend:           "flat",
	}
}

func TestBuildCards_HealthyStoreGetsOperationsPadding(t *testing.T) {
	cards := BuildCards(healthyContext(), nil)

	require.NotEmpty(t, cards)
	for _, card := range cards {
		assert.Equal(t, TypeOperations, card.Type)
	}
}

func TestBuildCards_SurvivalOnBreakEvenGap(t *testing.T) {
	ctx := healthyContext()
	ctx.BreakEvenGapRatio = 0.85

	cards := BuildCards(ctx, nil)
	assert.Equal(t, TypeSurvival, cards[0].Type)
}

func TestBuildCards_StruggleEmitsMultipleTypes(t *testing.T) {
	ctx := Context{
		OverallScore:            35,
		BreakEvenGapRatio:       0.80,
		MarginMenuRatio:         0.15,
		IngredientConcentration: 0.80,
		VisitorsTrend:           "down",
	}

	cards := BuildCards(ctx, nil)
	require.Len(t, cards, 6)

	types := make(map[string]bool)
	for _, card := range cards {
		types[card.Type] = true
	}
	assert.True(t, types[TypeSurvival])
	assert.True(t, types[TypeMargin])
	assert.True(t, types[TypeCost])
	assert.True(t, types[TypePortfolio])
	assert.True(t, types[TypeAcquisition])
}

func TestBuildCards_ProbabilityClamped(t *testing.T) {
	ctx := healthyContext()
	ctx.BreakEvenGapRatio = 0.80
	ctx.MarginMenuRatio = 0.10

	profile := &HealthProfile{
		RedCategories: []string{HealthProfitability, HealthCost},
		TakenAt:       timeutil.NowKST(),
	}

	cards := BuildCards(ctx, profile)
	for _, card := range cards {
		assert.GreaterOrEqual(t, card.Probability, 0.25)
		assert.LessOrEqual(t, card.Probability, 0.80)
		assert.LessOrEqual(t, len(card.Reasons), 3)
	}
}

func TestBuildCards_HealthWeightingBoostsPriority(t *testing.T) {
	ctx := healthyContext()
	ctx.BreakEvenGapRatio = 0.80 // SURVIVAL 후보
	ctx.VisitorsTrend = "down"   // ACQUISITION 후보

	profile := &HealthProfile{
		RedCategories: []string{HealthTraffic},
		TakenAt:       timeutil.NowKST(),
	}

	cards := BuildCards(ctx, profile)
	// traffic 위험이면 ACQUISITION이 SURVIVAL보다 앞으로 온다 (100+30 > 100)
	require.GreaterOrEqual(t, len(cards), 2)
	assert.Equal(t, TypeAcquisition, cards[0].Type)
	assert.Equal(t, 130, cards[0].Priority)
}

func TestBuildCards_StaleSnapshotWeakened(t *testing.T) {
	ctx := healthyContext()
	ctx.VisitorsTrend = "down"

	profile := &HealthProfile{
		RedCategories: []string{HealthTraffic},
		TakenAt:       timeutil.NowKST().Add(-40 * 24 * time.Hour),
	}

	cards := BuildCards(ctx, profile)
	var acquisition *Card
	for i := range cards {
		if cards[i].Type == TypeAcquisition {
			acquisition = &cards[i]
		}
	}
	require.NotNil(t, acquisition)
	// 30일 지난 스냅샷은 0.7배: 100 + int(30x0.7) = 121
	assert.Equal(t, 121, acquisition.Priority)
}

func TestBuildCards_TruncatedToSix(t *testing.T) {
	ctx := Context{
		OverallScore:            30,
		BreakEvenGapRatio:       0.7,
		MarginMenuRatio:         0.1,
		IngredientConcentration: 0.9,
		VisitorsTrend:           "down",
	}
	cards := BuildCards(ctx, nil)
	assert.LessOrEqual(t, len(cards), 6)
}
