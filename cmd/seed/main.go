package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/jangsalab/storeops-backend/config"
	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/db"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// 개발용 시드 데이터. 매장 하나와 분식집 마스터 데이터, 최근 2주 매출을 만든다.
//
// Usage: go run cmd/seed/main.go [store_name]
func main() {
	storeName := "시드 분식"
	if len(os.Args) > 1 {
		storeName = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate:", err)
	}

	gdb := db.GetDB()

	storeID := uuid.New().String()
	userID := uuid.New().String()

	store := &model.Store{ID: storeID, Name: storeName}
	if err := gdb.Create(store).Error; err != nil {
		log.Fatal("Failed to create store:", err)
	}
	if err := gdb.Create(&model.UserStore{
		UserID: userID, StoreID: storeID, Role: model.RoleOwner,
	}).Error; err != nil {
		log.Fatal("Failed to link user to store:", err)
	}

	menus := []model.Menu{
		{StoreID: storeID, Name: "김밥", Price: 4500, Category: "분식", IsCore: true},
		{StoreID: storeID, Name: "라면", Price: 5000, Category: "분식", IsCore: true},
		{StoreID: storeID, Name: "떡볶이", Price: 6000, Category: "분식"},
		{StoreID: storeID, Name: "돈까스", Price: 9500, Category: "식사"},
	}
	if err := gdb.Create(&menus).Error; err != nil {
		log.Fatal("Failed to create menus:", err)
	}

	ingredients := []model.Ingredient{
		{StoreID: storeID, Name: "김", Unit: "장", UnitCost: 120},
		{StoreID: storeID, Name: "밥", Unit: "g", UnitCost: 2},
		{StoreID: storeID, Name: "면", Unit: "개", UnitCost: 450},
		{StoreID: storeID, Name: "떡", Unit: "g", UnitCost: 4},
	}
	if err := gdb.Create(&ingredients).Error; err != nil {
		log.Fatal("Failed to create ingredients:", err)
	}

	recipes := []model.Recipe{
		{StoreID: storeID, MenuID: menus[0].ID, IngredientID: ingredients[0].ID, Qty: 2},
		{StoreID: storeID, MenuID: menus[0].ID, IngredientID: ingredients[1].ID, Qty: 200},
		{StoreID: storeID, MenuID: menus[1].ID, IngredientID: ingredients[2].ID, Qty: 1},
		{StoreID: storeID, MenuID: menus[2].ID, IngredientID: ingredients[3].ID, Qty: 300},
	}
	if err := gdb.Create(&recipes).Error; err != nil {
		log.Fatal("Failed to create recipes:", err)
	}

	inventory := []model.Inventory{
		{StoreID: storeID, IngredientID: ingredients[0].ID, OnHand: 300, SafetyStock: 100},
		{StoreID: storeID, IngredientID: ingredients[1].ID, OnHand: 20000, SafetyStock: 5000},
		{StoreID: storeID, IngredientID: ingredients[2].ID, OnHand: 80, SafetyStock: 30},
		{StoreID: storeID, IngredientID: ingredients[3].ID, OnHand: 12000, SafetyStock: 3000},
	}
	if err := gdb.Create(&inventory).Error; err != nil {
		log.Fatal("Failed to create inventory:", err)
	}

	year, month := timeutil.CurrentYearMonthKST()
	expenses := []model.ExpenseItem{
		{StoreID: storeID, Year: year, Month: month, Category: model.ExpenseRent, ItemName: "월세", Amount: 2500000},
		{StoreID: storeID, Year: year, Month: month, Category: model.ExpenseLabor, ItemName: "주방 인건비", Amount: 4200000},
		{StoreID: storeID, Year: year, Month: month, Category: model.ExpenseUtility, ItemName: "전기·수도", Amount: 550000},
		{StoreID: storeID, Year: year, Month: month, Category: model.ExpenseFood, ItemName: "식자재", Amount: 35},
		{StoreID: storeID, Year: year, Month: month, Category: model.ExpenseVATCard, ItemName: "부가세·수수료", Amount: 8},
	}
	if err := gdb.Create(&expenses).Error; err != nil {
		log.Fatal("Failed to create expenses:", err)
	}

	if err := gdb.Create(&model.Target{
		StoreID: storeID, Year: year, Month: month,
		TargetSales: 25000000, TargetCostRate: 35, TargetProfitRate: 20,
	}).Error; err != nil {
		log.Fatal("Failed to create target:", err)
	}

	// 최근 14일 매출·방문자
	for i := 14; i >= 1; i-- {
		date := timeutil.AddDays(timeutil.TodayKST(), -i)
		base := int64(600000 + (i%5)*45000)
		if err := gdb.Create(&model.Sales{
			StoreID: storeID, Date: date,
			CardSales: base * 8 / 10, CashSales: base * 2 / 10, TotalSales: base,
		}).Error; err != nil {
			log.Fatal("Failed to create sales:", err)
		}
		if err := gdb.Create(&model.Visitor{
			StoreID: storeID, Date: date, Visitors: 60 + (i % 7 * 5),
		}).Error; err != nil {
			log.Fatal("Failed to create visitors:", err)
		}
	}

	fmt.Println("Seed completed.")
	fmt.Printf("  store_id: %s\n", storeID)
	fmt.Printf("  user_id:  %s (DEV_STORE_ID로 쓰려면 store_id를 .env에 넣으세요)\n", userID)
}
