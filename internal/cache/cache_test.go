package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_Normalization(t *testing.T) {
	assert.Equal(t, "-", Key(nil))
	assert.Equal(t, "-", Key(map[string]string{}))

	// 인자 순서와 무관하게 같은 키가 나온다
	a := Key(map[string]string{"store_id": "s1", "date": "2026-08-20"})
	b := Key(map[string]string{"date": "2026-08-20", "store_id": "s1"})
	assert.Equal(t, a, b)
	assert.Equal(t, "date=2026-08-20&store_id=s1", a)
}

func TestFetch_ComputesOnceThenHits(t *testing.T) {
	layer := NewLayer(NewMemoryStore(), false)
	calls := 0

	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := Fetch(layer, FnSales, map[string]string{"store_id": "s1"}, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = Fetch(layer, FnSales, map[string]string{"store_id": "s1"}, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	// 다른 kwargs는 다른 엔트리다
	_, err = Fetch(layer, FnSales, map[string]string{"store_id": "s2"}, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetch_ErrorNotCached(t *testing.T) {
	layer := NewLayer(NewMemoryStore(), false)
	calls := 0

	compute := func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("backend down")
		}
		return "ok", nil
	}

	_, err := Fetch(layer, FnMenus, nil, compute)
	assert.Error(t, err)

	v, err := Fetch(layer, FnMenus, nil, compute)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 2, calls)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	current := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Set(FnSales, "k", []byte(`1`), time.Minute)

	_, ok := store.Get(FnSales, "k")
	assert.True(t, ok)

	current = current.Add(61 * time.Second)
	_, ok = store.Get(FnSales, "k")
	assert.False(t, ok)
}

func TestTTLFor(t *testing.T) {
	assert.Equal(t, 30*time.Second, TTLFor(FnExpenseStructure))
	assert.Equal(t, DefaultTTL, TTLFor(FnSales))
}

// soft invalidation은 타깃을 소비하는 함수의 엔트리만 비운다.
func TestSoftInvalidate_Targeted(t *testing.T) {
	store := NewMemoryStore()
	layer := NewLayer(store, false)

	store.Set(FnSales, "k", []byte(`1`), time.Minute)
	store.Set(FnMonthlySalesTotal, "k", []byte(`2`), time.Minute)
	store.Set(FnMenus, "k", []byte(`3`), time.Minute)

	layer.SoftInvalidate("save_sales", []string{TargetSales})

	_, ok := store.Get(FnSales, "k")
	assert.False(t, ok)
	_, ok = store.Get(FnMonthlySalesTotal, "k")
	assert.False(t, ok)
	_, ok = store.Get(FnMenus, "k")
	assert.True(t, ok)

	record := LastInvalidation()
	require.NotNil(t, record)
	assert.Equal(t, "save_sales", record.Reason)
	assert.Equal(t, 2, record.Evicted)
	assert.False(t, record.HardClear)
	assert.Contains(t, record.Functions, FnSales)
	assert.NotContains(t, record.Functions, FnMenus)
}

func TestSoftInvalidate_ForceHardClear(t *testing.T) {
	store := NewMemoryStore()
	layer := NewLayer(store, true)

	store.Set(FnSales, "k", []byte(`1`), time.Minute)
	store.Set(FnMenus, "k", []byte(`3`), time.Minute)

	layer.SoftInvalidate("save_sales", []string{TargetSales})

	_, ok := store.Get(FnMenus, "k")
	assert.False(t, ok)

	record := LastInvalidation()
	require.NotNil(t, record)
	assert.True(t, record.HardClear)
}

func TestConsumersOf_UnknownTarget(t *testing.T) {
	assert.Nil(t, ConsumersOf("no_such_target"))
}
