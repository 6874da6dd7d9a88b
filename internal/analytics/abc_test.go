package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyABC_FiveMenus(t *testing.T) {
	rows := ClassifyABC([]ABCInput{
		{Name: "가", Qty: 70, Value: 700},
		{Name: "나", Qty: 15, Value: 150},
		{Name: "다", Qty: 8, Value: 80},
		{Name: "라", Qty: 4, Value: 40},
		{Name: "마", Qty: 3, Value: 30},
	})
	require.Len(t, rows, 5)

	cums := []float64{70, 85, 93, 97, 100}
	grades := []string{"A", "B", "B", "C", "C"}
	for i, row := range rows {
		assert.InDelta(t, cums[i], row.CumShare, 0.001, "rank %d", i+1)
		assert.Equal(t, grades[i], row.Grade, "rank %d", i+1)
	}
}

func TestClassifyABC_CumShareMonotone(t *testing.T) {
	rows := ClassifyABC([]ABCInput{
		{Name: "a", Qty: 1, Value: 120},
		{Name: "b", Qty: 2, Value: 340},
		{Name: "c", Qty: 3, Value: 90},
		{Name: "d", Qty: 4, Value: 450},
	})
	require.Len(t, rows, 4)

	prev := 0.0
	for _, row := range rows {
		assert.GreaterOrEqual(t, row.CumShare, prev)
		prev = row.CumShare
	}
	// 마지막 누적 비중은 100%에 닿아야 한다
	assert.GreaterOrEqual(t, rows[len(rows)-1].CumShare, 99.99)
}

func TestClassifyABC_TieBreak(t *testing.T) {
	// 금액 동률은 수량 많은 쪽이 먼저, 수량도 같으면 이름 사전순
	rows := ClassifyABC([]ABCInput{
		{Name: "국밥", Qty: 5, Value: 100},
		{Name: "김밥", Qty: 10, Value: 100},
		{Name: "라면", Qty: 5, Value: 100},
	})
	require.Len(t, rows, 3)
	assert.Equal(t, "김밥", rows[0].Name)
	assert.Equal(t, "국밥", rows[1].Name)
	assert.Equal(t, "라면", rows[2].Name)
}

func TestClassifyABC_EmptyAndZero(t *testing.T) {
	assert.Empty(t, ClassifyABC(nil))
	assert.Empty(t, ClassifyABC([]ABCInput{{Name: "x", Qty: 0, Value: 0}}))
}
