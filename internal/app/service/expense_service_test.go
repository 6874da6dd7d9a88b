package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/audit"
	"github.com/jangsalab/storeops-backend/internal/cache"
	"github.com/jangsalab/storeops-backend/internal/db"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

func setupExpenseServiceTest(t *testing.T) (*ExpenseService, *gorm.DB, string) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cacheLayer := cache.NewLayer(cache.NewMemoryStore(), false)
	coordinator := NewWriteCoordinator(cacheLayer, audit.NewRing())
	expenseService := NewExpenseService(repository.NewExpenseRepository(testDB), coordinator, cacheLayer)

	storeID := "33333333-3333-3333-3333-333333333333"
	testDB.Create(&model.Store{ID: storeID, Name: "테스트 분식집"})

	return expenseService, testDB, storeID
}

func TestExpenseService_SaveExpenses_Success(t *testing.T) {
	expenseService, testDB, storeID := setupExpenseServiceTest(t)

	outcome, err := expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: model.ExpenseRent, ItemName: "월세", Amount: 2500000},
		{Category: model.ExpenseFood, ItemName: "식자재", Amount: 35},
		{Category: model.ExpenseVATCard, ItemName: "부가세", Amount: 8},
	})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	assert.Equal(t, 3, outcome.RowsWritten)

	var count int64
	testDB.Model(&model.ExpenseItem{}).Where("store_id = ? AND year = ? AND month = ?", storeID, 2026, 8).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestExpenseService_SaveExpenses_UnknownCategory(t *testing.T) {
	expenseService, _, storeID := setupExpenseServiceTest(t)

	_, err := expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: "광고비", ItemName: "전단지", Amount: 100000},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// 변동비 비율 합은 저장 후 상태 기준으로 100%를 넘을 수 없다.
// 기존 항목과 합쳐서 넘으면 전체가 거부된다.
func TestExpenseService_SaveExpenses_VariableSumOverLimit(t *testing.T) {
	expenseService, testDB, storeID := setupExpenseServiceTest(t)

	_, err := expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: model.ExpenseFood, ItemName: "식자재", Amount: 60},
	})
	require.NoError(t, err)

	_, err = expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: model.ExpenseVATCard, ItemName: "부가세", Amount: 45},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	// 거부된 항목은 저장되지 않는다
	var count int64
	testDB.Model(&model.ExpenseItem{}).Where("store_id = ? AND category = ?", storeID, model.ExpenseVATCard).Count(&count)
	assert.Equal(t, int64(0), count)
}

// 같은 자연키로 덮어쓰는 항목은 기존 값 대신 입력값으로 합산한다.
func TestExpenseService_SaveExpenses_OverwriteRecalculatesSum(t *testing.T) {
	expenseService, _, storeID := setupExpenseServiceTest(t)

	_, err := expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: model.ExpenseFood, ItemName: "식자재", Amount: 80},
	})
	require.NoError(t, err)

	// 80% -> 50%로 낮추면서 다른 변동비 40% 추가: 합 90%로 허용
	outcome, err := expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: model.ExpenseFood, ItemName: "식자재", Amount: 50},
		{Category: model.ExpenseVATCard, ItemName: "부가세", Amount: 40},
	})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
}

func TestExpenseService_CopyFromPreviousMonth(t *testing.T) {
	expenseService, testDB, storeID := setupExpenseServiceTest(t)

	_, err := expenseService.SaveExpenses(storeID, 2026, 7, []ExpenseItemInput{
		{Category: model.ExpenseRent, ItemName: "월세", Amount: 2500000},
		{Category: model.ExpenseFood, ItemName: "식자재", Amount: 35},
	})
	require.NoError(t, err)

	outcome, err := expenseService.CopyFromPreviousMonth(storeID, 2026, 8)
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	assert.Equal(t, 2, outcome.RowsWritten)

	var count int64
	testDB.Model(&model.ExpenseItem{}).Where("store_id = ? AND year = ? AND month = ?", storeID, 2026, 8).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestExpenseService_CopyFromPreviousMonth_RefusedWhenNotEmpty(t *testing.T) {
	expenseService, _, storeID := setupExpenseServiceTest(t)

	_, err := expenseService.SaveExpenses(storeID, 2026, 7, []ExpenseItemInput{
		{Category: model.ExpenseRent, ItemName: "월세", Amount: 2500000},
	})
	require.NoError(t, err)
	_, err = expenseService.SaveExpenses(storeID, 2026, 8, []ExpenseItemInput{
		{Category: model.ExpenseLabor, ItemName: "주방", Amount: 3000000},
	})
	require.NoError(t, err)

	outcome, err := expenseService.CopyFromPreviousMonth(storeID, 2026, 8)
	require.NoError(t, err)
	assert.False(t, outcome.OK)
	assert.NotEmpty(t, outcome.Reason)
}

func TestExpenseService_CopyFromPreviousMonth_EmptySource(t *testing.T) {
	expenseService, _, storeID := setupExpenseServiceTest(t)

	outcome, err := expenseService.CopyFromPreviousMonth(storeID, 2026, 8)
	require.NoError(t, err)
	assert.False(t, outcome.OK)
}

func TestExpenseService_CopyFromPreviousMonth_January(t *testing.T) {
	expenseService, testDB, storeID := setupExpenseServiceTest(t)

	_, err := expenseService.SaveExpenses(storeID, 2025, 12, []ExpenseItemInput{
		{Category: model.ExpenseRent, ItemName: "월세", Amount: 2400000},
	})
	require.NoError(t, err)

	outcome, err := expenseService.CopyFromPreviousMonth(storeID, 2026, 1)
	require.NoError(t, err)
	assert.True(t, outcome.OK)

	var item model.ExpenseItem
	require.NoError(t, testDB.Where("store_id = ? AND year = ? AND month = ?", storeID, 2026, 1).First(&item).Error)
	assert.Equal(t, float64(2400000), item.Amount)
}
