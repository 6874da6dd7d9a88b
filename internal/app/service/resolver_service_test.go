package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/cache"
	"github.com/jangsalab/storeops-backend/internal/db"
)

func setupResolverServiceTest(t *testing.T) (*ResolverService, *gorm.DB, string) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cacheLayer := cache.NewLayer(cache.NewMemoryStore(), false)
	resolver := NewResolverService(
		repository.NewSalesRepository(testDB),
		repository.NewVisitorRepository(testDB),
		repository.NewDailyCloseRepository(testDB),
		repository.NewDailySalesItemRepository(testDB),
		repository.NewMenuRepository(testDB),
		cacheLayer,
	)

	storeID := "22222222-2222-2222-2222-222222222222"
	testDB.Create(&model.Store{ID: storeID, Name: "테스트 국밥집"})

	return resolver, testDB, storeID
}

// 마감에 묻힌 수량 위에 (날짜, 메뉴)별 보정 행이 있으면 보정 값이 이긴다.
func TestResolverService_BestAvailableDailySales_OverrideWins(t *testing.T) {
	resolver, testDB, storeID := setupResolverServiceTest(t)

	ramen := &model.Menu{StoreID: storeID, Name: "라면", Price: 5000}
	gimbap := &model.Menu{StoreID: storeID, Name: "김밥", Price: 4500}
	testDB.Create(ramen)
	testDB.Create(gimbap)

	testDB.Create(&model.DailyClose{
		StoreID: storeID, Date: "2026-08-10", TotalSales: 95000,
		SalesItems: model.MenuQuantities{"라면": 10, "김밥": 10},
	})
	// 마감 후 수량 보정: 라면은 실제로 7개였다
	testDB.Create(&model.DailySalesItem{
		StoreID: storeID, Date: "2026-08-10", MenuID: ramen.ID, Qty: 7,
	})

	items, err := resolver.BestAvailableDailySales(storeID, "2026-08-10")
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := make(map[string]EffectiveSalesItem)
	for _, item := range items {
		byName[item.MenuName] = item
	}
	assert.Equal(t, 7, byName["라면"].Qty)
	assert.Equal(t, "override", byName["라면"].Source)
	assert.Equal(t, 10, byName["김밥"].Qty)
	assert.Equal(t, "close", byName["김밥"].Source)
}

func TestResolverService_BestAvailableDailySales_NoData(t *testing.T) {
	resolver, _, storeID := setupResolverServiceTest(t)

	items, err := resolver.BestAvailableDailySales(storeID, "2026-08-10")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestResolverService_BestAvailableSalesRange_MergesSources(t *testing.T) {
	resolver, testDB, storeID := setupResolverServiceTest(t)

	ramen := &model.Menu{StoreID: storeID, Name: "라면", Price: 5000}
	testDB.Create(ramen)

	testDB.Create(&model.DailyClose{
		StoreID: storeID, Date: "2026-08-10", TotalSales: 50000,
		SalesItems: model.MenuQuantities{"라면": 10},
	})
	testDB.Create(&model.DailySalesItem{
		StoreID: storeID, Date: "2026-08-11", MenuID: ramen.ID, Qty: 4,
	})

	items, err := resolver.BestAvailableSalesRange(storeID, "2026-08-01", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "2026-08-10", items[0].Date)
	assert.Equal(t, "close", items[0].Source)
	assert.Equal(t, "2026-08-11", items[1].Date)
	assert.Equal(t, "override", items[1].Source)
	assert.Equal(t, 4, items[1].Qty)
}

// 월 합계는 날짜별로 마감 금액이 우선이고, 어떤 날짜도 두 번 더해지지 않는다.
func TestResolverService_MonthlySalesTotal_NoDoubleCount(t *testing.T) {
	resolver, testDB, storeID := setupResolverServiceTest(t)

	// 8/10: 마감(80,000)과 매출 입력(75,000)이 모두 있다 -> 마감만 집계
	testDB.Create(&model.DailyClose{StoreID: storeID, Date: "2026-08-10", TotalSales: 80000})
	testDB.Create(&model.Sales{StoreID: storeID, Date: "2026-08-10", TotalSales: 75000})
	// 8/11: 매출 입력만 있다
	testDB.Create(&model.Sales{StoreID: storeID, Date: "2026-08-11", TotalSales: 60000})
	// 8/12: 마감만 있다
	testDB.Create(&model.DailyClose{StoreID: storeID, Date: "2026-08-12", TotalSales: 70000})

	total, err := resolver.MonthlySalesTotal(storeID, 2026, 8)
	require.NoError(t, err)
	assert.Equal(t, int64(80000+60000+70000), total)
}

func TestResolverService_MonthlySalesTotal_EmptyMonth(t *testing.T) {
	resolver, _, storeID := setupResolverServiceTest(t)

	total, err := resolver.MonthlySalesTotal(storeID, 2026, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestResolverService_GetDayRecordStatus(t *testing.T) {
	resolver, testDB, storeID := setupResolverServiceTest(t)

	testDB.Create(&model.Sales{StoreID: storeID, Date: "2026-08-11", TotalSales: 60000})
	testDB.Create(&model.Visitor{StoreID: storeID, Date: "2026-08-11", Visitors: 42})

	status, err := resolver.GetDayRecordStatus(storeID, "2026-08-11")
	require.NoError(t, err)
	assert.False(t, status.HasClose)
	assert.True(t, status.HasSales)
	assert.True(t, status.HasVisitors)
	assert.Equal(t, int64(60000), status.BestTotalSales)
	assert.Equal(t, 42, status.VisitorsBest)
}

func TestResolverService_GetDayRecordStatus_ClosePrecedes(t *testing.T) {
	resolver, testDB, storeID := setupResolverServiceTest(t)

	testDB.Create(&model.DailyClose{StoreID: storeID, Date: "2026-08-12", TotalSales: 80000, Visitors: 50})
	testDB.Create(&model.Sales{StoreID: storeID, Date: "2026-08-12", TotalSales: 75000})

	status, err := resolver.GetDayRecordStatus(storeID, "2026-08-12")
	require.NoError(t, err)
	assert.True(t, status.HasClose)
	assert.Equal(t, int64(80000), status.BestTotalSales)
	assert.Equal(t, 50, status.VisitorsBest)
}
