// Package cache 순수 읽기 질의의 키·TTL 기반 메모이제이션.
// 키는 (함수 이름, 정규화된 인자)이고, 쓰기 경로는 soft invalidation으로
// 영향 받은 함수의 엔트리만 골라서 비운다.
package cache

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/jangsalab/storeops-backend/pkg/logger"
)

// 캐시되는 읽기 함수 이름. invalidation 역인덱스의 키로도 쓰인다.
const (
	FnSales                   = "sales"
	FnVisitors                = "visitors"
	FnDailySalesItems         = "daily_sales_items"
	FnBestAvailableDailySales = "best_available_daily_sales"
	FnMonthlySalesTotal       = "monthly_sales_total"
	FnDayRecordStatus         = "day_record_status"
	FnMenus                   = "menus"
	FnIngredients             = "ingredients"
	FnRecipes                 = "recipes"
	FnInventory               = "inventory"
	FnMenuCost                = "menu_cost"
	FnAbcAnalysis             = "abc_analysis"
	FnIngredientUsage         = "ingredient_usage"
	FnExpenseStructure        = "expense_structure"
	FnBreakEven               = "break_even"
	FnScenarios               = "scenarios"
	FnTargets                 = "targets"
	FnTargetAnalysis          = "target_analysis"
)

// DefaultTTL 함수별 TTL이 없을 때의 기본값
const DefaultTTL = 5 * time.Minute

// 함수별 TTL. 비용구조는 설계실에서 저장 직후 바로 다시 읽는 화면이라 짧게 둔다.
var functionTTL = map[string]time.Duration{
	FnExpenseStructure: 30 * time.Second,
}

// TTLFor 함수의 캐시 TTL
func TTLFor(fn string) time.Duration {
	if ttl, ok := functionTTL[fn]; ok {
		return ttl
	}
	return DefaultTTL
}

// Store 캐시 백엔드. 값은 JSON 직렬화된 바이트로 보관한다.
type Store interface {
	Get(fn, key string) ([]byte, bool)
	Set(fn, key string, data []byte, ttl time.Duration)
	DeleteFunc(fn string) int
	Flush()
}

// Layer 캐시 계층. 백엔드 선택(메모리/Redis)과 invalidation 기록을 담당한다.
type Layer struct {
	store          Store
	forceHardClear bool
}

func NewLayer(store Store, forceHardClear bool) *Layer {
	return &Layer{store: store, forceHardClear: forceHardClear}
}

// Key kwargs를 정렬된 "k=v&k=v" 문자열로 정규화
func Key(kwargs map[string]string) string {
	if len(kwargs) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+kwargs[k])
	}
	return strings.Join(parts, "&")
}

// Fetch 캐시 조회, 미스면 compute 실행 후 저장.
// 미스는 진단용으로 debug 레벨에 기록된다. compute 실패는 캐시하지 않는다.
func Fetch[T any](l *Layer, fn string, kwargs map[string]string, compute func() (T, error)) (T, error) {
	key := Key(kwargs)

	if data, ok := l.store.Get(fn, key); ok {
		var cached T
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		// 역직렬화 실패 시 미스로 취급하고 재계산
	}

	logger.Debug("Cache miss", map[string]interface{}{
		"fn":  fn,
		"key": key,
	})

	value, err := compute()
	if err != nil {
		return value, err
	}

	if data, err := json.Marshal(value); err == nil {
		l.store.Set(fn, key, data, TTLFor(fn))
	}
	return value, nil
}
