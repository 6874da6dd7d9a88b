package minicoach

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func history(values ...int64) []DaySales {
	days := make([]DaySales, 0, len(values))
	for i, v := range values {
		days = append(days, DaySales{
			Date:       fmt.Sprintf("2026-08-%02d", i+1),
			TotalSales: v,
		})
	}
	return days
}

func TestCoach_NeedSales(t *testing.T) {
	advice := Coach(nil)
	assert.Equal(t, StatusNeedSales, advice.Status)
	assert.Equal(t, "sales_input", advice.CTA)
}

func TestCoach_FirstSale(t *testing.T) {
	advice := Coach(history(500_000))
	assert.Equal(t, StatusFirstSale, advice.Status)
	assert.Contains(t, advice.ActionLine, "내일도 매출 1개만 입력")
}

func TestCoach_FirstSale_NoUsableBaseline(t *testing.T) {
	// 기록 3건: 어제를 빼면 기준이 2일뿐이라 비교 불가
	advice := Coach(history(500_000, 520_000, 480_000))
	assert.Equal(t, StatusFirstSale, advice.Status)
}

func TestCoach_DownStrong(t *testing.T) {
	// 평균 100만, 어제 70만 = 0.70 < 0.80
	advice := Coach(history(
		1_000_000, 1_000_000, 1_000_000, 1_000_000,
		1_000_000, 1_000_000, 1_000_000, 700_000,
	))
	assert.Equal(t, StatusDownStrong, advice.Status)
	assert.Contains(t, advice.CoachLine, "30%")
	assert.Equal(t, "drop_analysis", advice.CTA)
}

func TestCoach_DownMild(t *testing.T) {
	advice := Coach(history(
		1_000_000, 1_000_000, 1_000_000, 1_000_000,
		1_000_000, 1_000_000, 1_000_000, 900_000,
	))
	assert.Equal(t, StatusDownMild, advice.Status)
}

func TestCoach_UpStrong(t *testing.T) {
	advice := Coach(history(
		1_000_000, 1_000_000, 1_000_000, 1_000_000,
		1_000_000, 1_000_000, 1_000_000, 1_300_000,
	))
	assert.Equal(t, StatusUpStrong, advice.Status)
	assert.Contains(t, advice.CoachLine, "30%")
}

func TestCoach_Stable(t *testing.T) {
	advice := Coach(history(
		1_000_000, 1_000_000, 1_000_000, 1_000_000,
		1_000_000, 1_000_000, 1_000_000, 1_020_000,
	))
	assert.Equal(t, StatusStable, advice.Status)
}

func TestCoach_ThreeDayFallback(t *testing.T) {
	// 기준 4일뿐이면 최근 3일 평균으로 비교한다
	advice := Coach(history(2_000_000, 1_000_000, 1_000_000, 1_000_000, 700_000))
	assert.Equal(t, StatusDownStrong, advice.Status)
}

func TestCoach_BoundaryRatios(t *testing.T) {
	// 정확히 0.80은 DOWN_STRONG이 아니라 DOWN_MILD
	advice := Coach(history(
		1_000_000, 1_000_000, 1_000_000, 1_000_000,
		1_000_000, 1_000_000, 1_000_000, 800_000,
	))
	assert.Equal(t, StatusDownMild, advice.Status)

	// 정확히 1.20은 UP_STRONG이 아니라 STABLE
	advice = Coach(history(
		1_000_000, 1_000_000, 1_000_000, 1_000_000,
		1_000_000, 1_000_000, 1_000_000, 1_200_000,
	))
	assert.Equal(t, StatusStable, advice.Status)
}
