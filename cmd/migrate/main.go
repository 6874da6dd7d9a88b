package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jangsalab/storeops-backend/config"
	"github.com/jangsalab/storeops-backend/internal/app/model"
	"github.com/jangsalab/storeops-backend/internal/db"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

const batchSize = 1000

// 기존 시스템에서 내려받은 매출 CSV를 일회성으로 적재한다.
//
// CSV 컬럼: date,card_sales,cash_sales,total_sales[,visitors]
// date는 YYYY-MM-DD, 금액은 원 단위 정수. visitors 컬럼이 있으면 방문자도 함께 적재한다.
//
// Usage: go run cmd/migrate/main.go <store_id> <csv_path>
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run cmd/migrate/main.go <store_id> <csv_path>")
		os.Exit(1)
	}
	storeID := os.Args[1]
	csvPath := os.Args[2]

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

	var store model.Store
	if err := gdb.Where("id = ?", storeID).First(&store).Error; err != nil {
		log.Fatal("Store not found:", err)
	}

	sales, visitors, err := readSalesCSV(csvPath, storeID)
	if err != nil {
		log.Fatal("Failed to read CSV:", err)
	}

	fmt.Printf("Store: %s (%s)\n", store.Name, store.ID)
	fmt.Printf("Rows: %d sales, %d visitors\n", len(sales), len(visitors))
	fmt.Print("Do you want to proceed with the import? (yes/no): ")

	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(answer) != "yes" {
		fmt.Println("Aborted.")
		return
	}

	for start := 0; start < len(sales); start += batchSize {
		end := start + batchSize
		if end > len(sales) {
			end = len(sales)
		}
		if err := gdb.Create(sales[start:end]).Error; err != nil {
			log.Fatal("Failed to insert sales batch:", err)
		}
	}
	for start := 0; start < len(visitors); start += batchSize {
		end := start + batchSize
		if end > len(visitors) {
			end = len(visitors)
		}
		if err := gdb.Create(visitors[start:end]).Error; err != nil {
			log.Fatal("Failed to insert visitors batch:", err)
		}
	}

	fmt.Println("Import completed.")
}

func readSalesCSV(path, storeID string) ([]model.Sales, []model.Visitor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("헤더를 읽을 수 없습니다: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "card_sales", "cash_sales", "total_sales"} {
		if _, ok := col[required]; !ok {
			return nil, nil, fmt.Errorf("필수 컬럼이 없습니다: %s", required)
		}
	}
	visitorCol, hasVisitors := col["visitors"]

	var sales []model.Sales
	var visitors []model.Visitor
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++

		date := strings.TrimSpace(record[col["date"]])
		if _, err := timeutil.ParseDate(date); err != nil {
			return nil, nil, fmt.Errorf("line %d: 날짜 형식 오류 %q", line, date)
		}
		card, err := parseAmount(record[col["card_sales"]])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: card_sales: %w", line, err)
		}
		cash, err := parseAmount(record[col["cash_sales"]])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: cash_sales: %w", line, err)
		}
		total, err := parseAmount(record[col["total_sales"]])
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: total_sales: %w", line, err)
		}

		sales = append(sales, model.Sales{
			StoreID: storeID, Date: date,
			CardSales: card, CashSales: cash, TotalSales: total,
		})

		if hasVisitors && visitorCol < len(record) && strings.TrimSpace(record[visitorCol]) != "" {
			v, err := strconv.Atoi(strings.TrimSpace(record[visitorCol]))
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: visitors: %w", line, err)
			}
			visitors = append(visitors, model.Visitor{StoreID: storeID, Date: date, Visitors: v})
		}
	}
	return sales, visitors, nil
}

func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
