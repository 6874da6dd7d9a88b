package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangsalab/storeops-backend/internal/app/model"
)

func TestComputeMenuCosts(t *testing.T) {
	menus := []model.Menu{
		{ID: 1, Name: "김치찌개", Price: 9000},
		{ID: 2, Name: "공깃밥", Price: 1000},
	}
	recipes := []model.Recipe{
		{MenuID: 1, IngredientID: 10, Qty: 200, Ingredient: model.Ingredient{ID: 10, UnitCost: 5}},  // 1000원
		{MenuID: 1, IngredientID: 11, Qty: 150, Ingredient: model.Ingredient{ID: 11, UnitCost: 12}}, // 1800원
		{MenuID: 2, IngredientID: 12, Qty: 100, Ingredient: model.Ingredient{ID: 12, UnitCost: 3}},  // 300원
	}

	lines := ComputeMenuCosts(menus, recipes)
	require.Len(t, lines, 2)

	// 이름 오름차순: 공깃밥, 김치찌개
	assert.Equal(t, "공깃밥", lines[0].MenuName)
	assert.InDelta(t, 300, lines[0].Cost, 0.001)
	require.NotNil(t, lines[0].CostRate)
	assert.InDelta(t, 0.3, *lines[0].CostRate, 0.0001)

	assert.Equal(t, "김치찌개", lines[1].MenuName)
	assert.InDelta(t, 2800, lines[1].Cost, 0.001)
	require.NotNil(t, lines[1].CostRate)
	assert.InDelta(t, 2800.0/9000.0, *lines[1].CostRate, 0.0001)
}

func TestComputeMenuCosts_ZeroPriceHasNullRate(t *testing.T) {
	menus := []model.Menu{{ID: 1, Name: "서비스안주", Price: 0}}
	recipes := []model.Recipe{
		{MenuID: 1, IngredientID: 10, Qty: 50, Ingredient: model.Ingredient{ID: 10, UnitCost: 10}},
	}

	lines := ComputeMenuCosts(menus, recipes)
	require.Len(t, lines, 1)
	assert.InDelta(t, 500, lines[0].Cost, 0.001)
	assert.Nil(t, lines[0].CostRate) // 무한대가 아니라 null
}

func TestComputeMenuCosts_NoRecipe(t *testing.T) {
	menus := []model.Menu{{ID: 1, Name: "음료", Price: 2000}}

	lines := ComputeMenuCosts(menus, nil)
	require.Len(t, lines, 1)
	assert.Zero(t, lines[0].Cost)
	require.NotNil(t, lines[0].CostRate)
	assert.Zero(t, *lines[0].CostRate)
}
