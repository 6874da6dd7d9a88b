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

func setupSalesItemTest(t *testing.T) (*gorm.DB, DailySalesItemRepository, string, *model.Menu) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	storeID := uuid.New().String()
	testDB.Create(&model.Store{ID: storeID, Name: "테스트 매장"})

	menu := &model.Menu{StoreID: storeID, Name: "김치찌개", Price: 9000}
	testDB.Create(menu)

	return testDB, NewDailySalesItemRepository(testDB), storeID, menu
}

func TestDailySalesItemRepository_ZeroQtyPersisted(t *testing.T) {
	testDB, repo, storeID, menu := setupSalesItemTest(t)
	defer db.CleanupTestDB(testDB)

	// qty=0은 "이 날 이 메뉴는 안 팔렸다"는 명시적 기록이다
	err := repo.UpsertMany(nil, []model.DailySalesItem{
		{StoreID: storeID, Date: "2026-08-10", MenuID: menu.ID, Qty: 0},
	})
	require.NoError(t, err)

	items, err := repo.FindByDate(storeID, "2026-08-10")
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 0, items[0].Qty)
}

func TestDailySalesItemRepository_UpsertOverwritesQty(t *testing.T) {
	testDB, repo, storeID, menu := setupSalesItemTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.UpsertMany(nil, []model.DailySalesItem{
		{StoreID: storeID, Date: "2026-08-10", MenuID: menu.ID, Qty: 12},
	}))
	require.NoError(t, repo.UpsertMany(nil, []model.DailySalesItem{
		{StoreID: storeID, Date: "2026-08-10", MenuID: menu.ID, Qty: 15},
	}))

	items, err := repo.FindByDate(storeID, "2026-08-10")
	assert.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 15, items[0].Qty)
}

func TestDailySalesItemRepository_CountByMenu(t *testing.T) {
	testDB, repo, storeID, menu := setupSalesItemTest(t)
	defer db.CleanupTestDB(testDB)

	require.NoError(t, repo.UpsertMany(nil, []model.DailySalesItem{
		{StoreID: storeID, Date: "2026-08-10", MenuID: menu.ID, Qty: 3},
		{StoreID: storeID, Date: "2026-08-11", MenuID: menu.ID, Qty: 5},
	}))

	count, err := repo.CountByMenu(storeID, menu.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
