package cache

import (
	"sync"
	"time"

	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// 논리 타깃. 쓰기 작업은 자신이 건드린 타깃만 선언하고,
// 타깃을 소비하는 읽기 함수 목록은 이 역인덱스가 정적으로 들고 있다.
const (
	TargetSales           = "sales"
	TargetVisitors        = "visitors"
	TargetDailySalesItems = "daily_sales_items"
	TargetMenus           = "menus"
	TargetIngredients     = "ingredients"
	TargetRecipes         = "recipes"
	TargetInventory       = "inventory"
	TargetExpense         = "expense_structure"
	TargetTargets         = "targets"
)

// targetConsumers 타깃 -> 그 타깃을 소비하는 읽기 함수
var targetConsumers = map[string][]string{
	TargetSales: {
		FnSales, FnMonthlySalesTotal, FnBestAvailableDailySales, FnDayRecordStatus,
	},
	TargetVisitors: {
		FnVisitors, FnBestAvailableDailySales, FnDayRecordStatus,
	},
	TargetDailySalesItems: {
		FnDailySalesItems, FnBestAvailableDailySales, FnDayRecordStatus,
		FnAbcAnalysis, FnIngredientUsage,
	},
	TargetMenus: {
		FnMenus, FnMenuCost, FnAbcAnalysis,
	},
	TargetIngredients: {
		FnIngredients, FnMenuCost, FnIngredientUsage,
	},
	TargetRecipes: {
		FnRecipes, FnMenuCost, FnIngredientUsage,
	},
	TargetInventory: {
		FnInventory,
	},
	TargetExpense: {
		FnExpenseStructure, FnBreakEven, FnScenarios,
	},
	TargetTargets: {
		FnTargets, FnTargetAnalysis,
	},
}

// ConsumersOf 타깃을 소비하는 함수 목록 (없으면 nil)
func ConsumersOf(target string) []string {
	return targetConsumers[target]
}

// Invalidation 마지막 invalidation 기록 (진단 패널용)
type Invalidation struct {
	Reason    string    `json:"reason"`
	Targets   []string  `json:"targets"`
	Functions []string  `json:"functions"`
	Evicted   int       `json:"evicted"`
	HardClear bool      `json:"hard_clear"`
	At        time.Time `json:"at"` // KST
}

var (
	lastInvalidationMu sync.Mutex
	lastInvalidation   *Invalidation
)

// SoftInvalidate targets가 가리키는 읽기 함수의 캐시 엔트리만 비운다.
// ForceHardClear가 켜져 있으면 전체 플러시로 대체된다 (dev 전용).
// 호출은 항상 기록된다. 멱등이다.
func (l *Layer) SoftInvalidate(reason string, targets []string) {
	record := Invalidation{
		Reason:  reason,
		Targets: targets,
		At:      timeutil.NowKST(),
	}

	if l.forceHardClear {
		l.store.Flush()
		record.HardClear = true
		setLastInvalidation(record)
		logger.Warn("Hard cache clear (force_hard_clear enabled)", map[string]interface{}{
			"reason":  reason,
			"targets": targets,
		})
		return
	}

	seen := make(map[string]bool)
	for _, target := range targets {
		for _, fn := range targetConsumers[target] {
			if seen[fn] {
				continue
			}
			seen[fn] = true
			record.Functions = append(record.Functions, fn)
			record.Evicted += l.store.DeleteFunc(fn)
		}
	}
	setLastInvalidation(record)

	logger.Debug("Soft invalidation", map[string]interface{}{
		"reason":    reason,
		"targets":   targets,
		"functions": record.Functions,
		"evicted":   record.Evicted,
	})
}

func setLastInvalidation(record Invalidation) {
	lastInvalidationMu.Lock()
	defer lastInvalidationMu.Unlock()
	lastInvalidation = &record
}

// LastInvalidation 마지막 invalidation 기록 조회 (없으면 nil)
func LastInvalidation() *Invalidation {
	lastInvalidationMu.Lock()
	defer lastInvalidationMu.Unlock()
	if lastInvalidation == nil {
		return nil
	}
	copied := *lastInvalidation
	return &copied
}
