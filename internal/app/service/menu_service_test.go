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

func setupMenuServiceTest(t *testing.T) (*MenuService, *gorm.DB, string) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cacheLayer := cache.NewLayer(cache.NewMemoryStore(), false)
	coordinator := NewWriteCoordinator(cacheLayer, audit.NewRing())

	menuService := NewMenuService(
		repository.NewMenuRepository(testDB),
		repository.NewRecipeRepository(testDB),
		repository.NewDailySalesItemRepository(testDB),
		coordinator,
		cacheLayer,
	)

	storeID := "11111111-1111-1111-1111-111111111111"
	testDB.Create(&model.Store{ID: storeID, Name: "테스트 김밥집"})

	return menuService, testDB, storeID
}

func TestMenuService_CreateMenu_Success(t *testing.T) {
	menuService, testDB, storeID := setupMenuServiceTest(t)

	outcome, err := menuService.CreateMenu(storeID, SaveMenuInput{
		Name: "김밥", Price: 4500, Category: "분식",
	})
	require.NoError(t, err)
	assert.True(t, outcome.OK)
	assert.Equal(t, 1, outcome.RowsWritten)

	var count int64
	testDB.Model(&model.Menu{}).Where("store_id = ? AND name = ?", storeID, "김밥").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMenuService_CreateMenu_DuplicateName(t *testing.T) {
	menuService, _, storeID := setupMenuServiceTest(t)

	_, err := menuService.CreateMenu(storeID, SaveMenuInput{Name: "김밥", Price: 4500})
	require.NoError(t, err)

	_, err = menuService.CreateMenu(storeID, SaveMenuInput{Name: "김밥", Price: 5000})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestMenuService_CreateMenu_NegativePrice(t *testing.T) {
	menuService, _, storeID := setupMenuServiceTest(t)

	_, err := menuService.CreateMenu(storeID, SaveMenuInput{Name: "김밥", Price: -100})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// 레시피가 참조하는 메뉴 삭제는 아무것도 지우지 않고 참조 수를 담아 거부한다.
func TestMenuService_DeleteMenu_RefusedByRecipeReference(t *testing.T) {
	menuService, testDB, storeID := setupMenuServiceTest(t)

	menu := &model.Menu{StoreID: storeID, Name: "김밥", Price: 4500}
	testDB.Create(menu)
	ingredient := &model.Ingredient{StoreID: storeID, Name: "김", Unit: "장", UnitCost: 100}
	testDB.Create(ingredient)
	testDB.Create(&model.Recipe{StoreID: storeID, MenuID: menu.ID, IngredientID: ingredient.ID, Qty: 2})

	outcome, err := menuService.DeleteMenu(storeID, menu.ID)
	require.NoError(t, err)
	assert.False(t, outcome.OK)
	assert.NotEmpty(t, outcome.Reason)
	assert.Equal(t, int64(1), outcome.References["레시피"])

	// 메뉴 행은 그대로 남아 있어야 한다
	var count int64
	testDB.Model(&model.Menu{}).Where("id = ?", menu.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestMenuService_DeleteMenu_RefusedBySalesReference(t *testing.T) {
	menuService, testDB, storeID := setupMenuServiceTest(t)

	menu := &model.Menu{StoreID: storeID, Name: "라면", Price: 5000}
	testDB.Create(menu)
	testDB.Create(&model.DailySalesItem{StoreID: storeID, Date: "2026-08-01", MenuID: menu.ID, Qty: 3})

	outcome, err := menuService.DeleteMenu(storeID, menu.ID)
	require.NoError(t, err)
	assert.False(t, outcome.OK)
	assert.Equal(t, int64(1), outcome.References["판매내역"])
}

func TestMenuService_DeleteMenu_NoReferences(t *testing.T) {
	menuService, testDB, storeID := setupMenuServiceTest(t)

	menu := &model.Menu{StoreID: storeID, Name: "단무지 추가", Price: 500}
	testDB.Create(menu)

	outcome, err := menuService.DeleteMenu(storeID, menu.ID)
	require.NoError(t, err)
	assert.True(t, outcome.OK)

	var count int64
	testDB.Model(&model.Menu{}).Where("id = ?", menu.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestMenuService_DeleteMenu_NotFound(t *testing.T) {
	menuService, _, storeID := setupMenuServiceTest(t)

	_, err := menuService.DeleteMenu(storeID, 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
