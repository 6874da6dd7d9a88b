package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/db"
)

func setupSalesTest(t *testing.T) (*gorm.DB, SalesRepository, string) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	storeID := uuid.New().String()
	testDB.Create(&model.Store{ID: storeID, Name: "테스트 매장"})

	return testDB, NewSalesRepository(testDB), storeID
}

func TestSalesRepository_UpsertIsIdempotent(t *testing.T) {
	testDB, repo, storeID := setupSalesTest(t)
	defer db.CleanupTestDB(testDB)

	first := &model.Sales{
		StoreID: storeID, Date: "2026-08-01",
		CardSales: 300000, CashSales: 100000, TotalSales: 400000,
	}
	require.NoError(t, repo.Upsert(first))

	// 같은 날짜 재저장은 새 행을 만들지 않고 금액만 바꾼다
	second := &model.Sales{
		StoreID: storeID, Date: "2026-08-01",
		CardSales: 350000, CashSales: 100000, TotalSales: 450000,
	}
	require.NoError(t, repo.Upsert(second))

	var count int64
	testDB.Model(&model.Sales{}).Where("store_id = ?", storeID).Count(&count)
	assert.Equal(t, int64(1), count)

	found, err := repo.FindByDate(storeID, "2026-08-01")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(450000), found.TotalSales)
}

func TestSalesRepository_FindByDateMissing(t *testing.T) {
	testDB, repo, storeID := setupSalesTest(t)
	defer db.CleanupTestDB(testDB)

	found, err := repo.FindByDate(storeID, "2026-08-15")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSalesRepository_FindByDateRange(t *testing.T) {
	testDB, repo, storeID := setupSalesTest(t)
	defer db.CleanupTestDB(testDB)

	for _, date := range []string{"2026-08-01", "2026-08-02", "2026-08-05"} {
		require.NoError(t, repo.Upsert(&model.Sales{
			StoreID: storeID, Date: date, TotalSales: 100000,
		}))
	}

	list, err := repo.FindByDateRange(storeID, "2026-08-01", "2026-08-03")
	assert.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-08-01", list[0].Date)
	assert.Equal(t, "2026-08-02", list[1].Date)
}

func TestSalesRepository_ScopedByStore(t *testing.T) {
	testDB, repo, storeID := setupSalesTest(t)
	defer db.CleanupTestDB(testDB)

	otherStore := uuid.New().String()
	testDB.Create(&model.Store{ID: otherStore, Name: "다른 매장"})

	require.NoError(t, repo.Upsert(&model.Sales{StoreID: storeID, Date: "2026-08-01", TotalSales: 100000}))
	require.NoError(t, repo.Upsert(&model.Sales{StoreID: otherStore, Date: "2026-08-01", TotalSales: 999999}))

	found, err := repo.FindByDate(storeID, "2026-08-01")
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, int64(100000), found.TotalSales)
}
