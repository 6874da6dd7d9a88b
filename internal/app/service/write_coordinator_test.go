package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jangsalab/storeops-backend/internal/audit"
	"github.com/jangsalab/storeops-backend/internal/cache"
	apperrors "github.com/jangsalab/storeops-backend/internal/errors"
)

func setupCoordinatorTest() (*WriteCoordinator, *cache.Layer, *audit.Ring) {
	cacheLayer := cache.NewLayer(cache.NewMemoryStore(), false)
	ring := audit.NewRing()
	return NewWriteCoordinator(cacheLayer, ring), cacheLayer, ring
}

// 캐시를 채워두는 헬퍼. compute가 호출됐는지로 히트/미스를 구분한다.
func primeCache(t *testing.T, layer *cache.Layer, fn, value string) {
	_, err := cache.Fetch(layer, fn, map[string]string{"k": "v"}, func() (string, error) {
		return value, nil
	})
	require.NoError(t, err)
}

func cacheHit(t *testing.T, layer *cache.Layer, fn string) bool {
	computed := false
	_, err := cache.Fetch(layer, fn, map[string]string{"k": "v"}, func() (string, error) {
		computed = true
		return "recomputed", nil
	})
	require.NoError(t, err)
	return !computed
}

func TestWriteCoordinator_SuccessAuditAndInvalidation(t *testing.T) {
	coordinator, cacheLayer, ring := setupCoordinatorTest()

	primeCache(t, cacheLayer, cache.FnSales, "cached-sales")
	primeCache(t, cacheLayer, cache.FnMenus, "cached-menus")

	outcome, err := coordinator.RunWrite("save_sales", []string{cache.TargetSales}, nil,
		func() (*WriteOutcome, error) {
			return &WriteOutcome{OK: true, RowsWritten: 1}, nil
		})
	require.NoError(t, err)
	assert.True(t, outcome.OK)

	// sales 타깃을 소비하는 함수만 비워지고, menus 캐시는 남는다
	assert.False(t, cacheHit(t, cacheLayer, cache.FnSales))
	assert.True(t, cacheHit(t, cacheLayer, cache.FnMenus))

	entries := ring.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "save_sales", entries[0].Action)
	assert.True(t, entries[0].OK)
	assert.Equal(t, []string{cache.TargetSales}, entries[0].Targets)
	assert.NotEmpty(t, entries[0].TsKST)
	assert.GreaterOrEqual(t, entries[0].Ms, 0.0)
}

func TestWriteCoordinator_ErrorAuditWithoutInvalidation(t *testing.T) {
	coordinator, cacheLayer, ring := setupCoordinatorTest()

	primeCache(t, cacheLayer, cache.FnSales, "cached-sales")

	boom := fmt.Errorf("%w: 금액은 음수일 수 없습니다", apperrors.ErrInvalidInput)
	_, err := coordinator.RunWrite("save_sales", []string{cache.TargetSales}, nil,
		func() (*WriteOutcome, error) {
			return nil, boom
		})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	// 실패한 쓰기는 캐시를 건드리지 않는다
	assert.True(t, cacheHit(t, cacheLayer, cache.FnSales))

	entries := ring.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OK)
	assert.Equal(t, "InvalidInput", entries[0].ErrorType)
	assert.Contains(t, entries[0].ErrorMsg, "음수")
}

// 참조 무결성 거부(ok:false, err:nil)도 실패로 감사되고 캐시는 유지된다.
func TestWriteCoordinator_RefusalAuditedAsFailure(t *testing.T) {
	coordinator, cacheLayer, ring := setupCoordinatorTest()

	primeCache(t, cacheLayer, cache.FnMenus, "cached-menus")

	outcome, err := coordinator.RunWrite("delete_menu", []string{cache.TargetMenus}, nil,
		func() (*WriteOutcome, error) {
			return &WriteOutcome{OK: false, Reason: "레시피 2건에서 사용 중"}, nil
		})
	require.NoError(t, err)
	assert.False(t, outcome.OK)

	assert.True(t, cacheHit(t, cacheLayer, cache.FnMenus))

	entries := ring.Entries()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].OK)
	assert.Equal(t, "Conflict", entries[0].ErrorType)
	assert.Equal(t, "레시피 2건에서 사용 중", entries[0].ErrorMsg)
}

func TestWriteCoordinator_InvalidationIsIdempotent(t *testing.T) {
	coordinator, cacheLayer, _ := setupCoordinatorTest()

	primeCache(t, cacheLayer, cache.FnSales, "cached-sales")

	run := func() {
		_, err := coordinator.RunWrite("save_sales", []string{cache.TargetSales}, nil,
			func() (*WriteOutcome, error) {
				return &WriteOutcome{OK: true}, nil
			})
		require.NoError(t, err)
	}
	run()
	run() // 이미 빈 캐시를 다시 비워도 에러가 나지 않는다

	record := cache.LastInvalidation()
	require.NotNil(t, record)
	assert.Equal(t, "save_sales", record.Reason)
	assert.Contains(t, record.Functions, cache.FnSales)
	assert.Equal(t, 0, record.Evicted) // 두 번째 호출 기준
}
