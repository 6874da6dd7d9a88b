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

func setupSalesServiceTest(t *testing.T) (*SalesService, *gorm.DB, string) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cacheLayer := cache.NewLayer(cache.NewMemoryStore(), false)
	coordinator := NewWriteCoordinator(cacheLayer, audit.NewRing())

	salesService := NewSalesService(
		repository.NewSalesRepository(testDB),
		repository.NewVisitorRepository(testDB),
		repository.NewDailyCloseRepository(testDB),
		coordinator,
		cacheLayer,
	)

	storeID := "55555555-5555-5555-5555-555555555555"
	testDB.Create(&model.Store{ID: storeID, Name: "테스트 김밥집"})

	return salesService, testDB, storeID
}

func TestSalesService_SaveSales_Upsert(t *testing.T) {
	salesService, testDB, storeID := setupSalesServiceTest(t)

	outcome, err := salesService.SaveSales(storeID, SaveSalesInput{
		Date: "2026-08-20", CardSales: 60000, CashSales: 10000, TotalSales: 70000,
	})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	assert.Nil(t, outcome.ConflictInfo)

	outcome, err = salesService.SaveSales(storeID, SaveSalesInput{
		Date: "2026-08-20", TotalSales: 75000,
	})
	require.NoError(t, err)
	assert.True(t, outcome.OK)

	var count int64
	testDB.Model(&model.Sales{}).Where("store_id = ? AND date = ?", storeID, "2026-08-20").Count(&count)
	assert.Equal(t, int64(1), count)

	var sales model.Sales
	require.NoError(t, testDB.Where("store_id = ? AND date = ?", storeID, "2026-08-20").First(&sales).Error)
	assert.Equal(t, int64(75000), sales.TotalSales)
}

func TestSalesService_SaveSales_NegativeAmount(t *testing.T) {
	salesService, _, storeID := setupSalesServiceTest(t)

	_, err := salesService.SaveSales(storeID, SaveSalesInput{
		Date: "2026-08-20", CardSales: -1000,
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// 공식 마감이 있는 날짜에 매출을 다시 저장하면 덮어쓰기는 진행하되
// conflict_info로 기존 마감 매출을 알려준다.
func TestSalesService_SaveSales_OverDailyCloseCarriesConflictInfo(t *testing.T) {
	salesService, testDB, storeID := setupSalesServiceTest(t)

	testDB.Create(&model.DailyClose{
		StoreID:    storeID,
		Date:       "2026-08-20",
		TotalSales: 80000,
		Visitors:   12,
	})
	testDB.Create(&model.Sales{
		StoreID: storeID, Date: "2026-08-20", TotalSales: 80000,
	})

	outcome, err := salesService.SaveSales(storeID, SaveSalesInput{
		Date: "2026-08-20", TotalSales: 65000,
	})
	require.NoError(t, err)

	assert.True(t, outcome.OK)
	require.NotNil(t, outcome.ConflictInfo)
	assert.True(t, outcome.ConflictInfo.HasDailyClose)
	assert.Equal(t, int64(80000), outcome.ConflictInfo.ExistingTotalSales)
	assert.Contains(t, outcome.Message, "이미 마감")

	// 경고와 무관하게 덮어쓰기는 일어난다
	var sales model.Sales
	require.NoError(t, testDB.Where("store_id = ? AND date = ?", storeID, "2026-08-20").First(&sales).Error)
	assert.Equal(t, int64(65000), sales.TotalSales)
}

func TestSalesService_SaveVisitors_OverDailyCloseCarriesConflictInfo(t *testing.T) {
	salesService, testDB, storeID := setupSalesServiceTest(t)

	testDB.Create(&model.DailyClose{
		StoreID:    storeID,
		Date:       "2026-08-20",
		TotalSales: 80000,
		Visitors:   12,
	})

	outcome, err := salesService.SaveVisitors(storeID, "2026-08-20", 15)
	require.NoError(t, err)

	assert.True(t, outcome.OK)
	require.NotNil(t, outcome.ConflictInfo)
	assert.True(t, outcome.ConflictInfo.HasDailyClose)
	assert.Equal(t, int64(80000), outcome.ConflictInfo.ExistingTotalSales)

	var visitor model.Visitor
	require.NoError(t, testDB.Where("store_id = ? AND date = ?", storeID, "2026-08-20").First(&visitor).Error)
	assert.Equal(t, 15, visitor.Visitors)
}
