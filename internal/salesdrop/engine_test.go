package salesdrop

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

// makeWindow 일별 매출·방문자·수량이 일정한 구간을 만든다
func makeWindow(startDay int, days int, sales int64, visitors int, menuQty map[string]int) []DayData {
	window := make([]DayData, 0, days)
	for i := 0; i < days; i++ {
		window = append(window, DayData{
			Date:       fmt.Sprintf("2026-08-%02d", startDay+i),
			TotalSales: sales,
			Visitors:   intPtr(visitors),
			MenuQty:    menuQty,
		})
	}
	return window
}

func TestAnalyze_TrafficCause(t *testing.T) {
	// 매출 -20%, 방문자 -22%, 객단가 +1% 수준, 수량 -5%
	baseline := makeWindow(1, 7, 1_000_000, 100, map[string]int{"김치찌개": 20})
	recent := makeWindow(8, 7, 800_000, 78, map[string]int{"김치찌개": 19})

	result := Analyze(recent, baseline)

	assert.Equal(t, CauseTraffic, result.PrimaryCause)
	assert.GreaterOrEqual(t, result.Confidence, 40)

	found := false
	for _, e := range result.Evidence {
		if e == "방문자 -22%" {
			found = true
		}
	}
	assert.True(t, found, "evidence should include the visitor drop: %v", result.Evidence)
}

func TestAnalyze_MenuCause(t *testing.T) {
	// 매출 -18%, 방문자 -3%, 수량 -20%, 상위 3개 메뉴 각각 -18%
	baseline := makeWindow(1, 7, 1_000_000, 100,
		map[string]int{"김치찌개": 50, "된장찌개": 40, "제육볶음": 30})
	recent := makeWindow(8, 7, 820_000, 97,
		map[string]int{"김치찌개": 41, "된장찌개": 33, "제육볶음": 22})

	result := Analyze(recent, baseline)

	assert.Equal(t, CauseMenu, result.PrimaryCause)
	assert.GreaterOrEqual(t, result.Confidence, 50)
}

func TestAnalyze_PriceCause(t *testing.T) {
	// 방문자 유지, 수량 유지, 객단가 -10%
	baseline := makeWindow(1, 7, 1_000_000, 100, map[string]int{"김치찌개": 30})
	recent := makeWindow(8, 7, 900_000, 100, map[string]int{"김치찌개": 30})

	result := Analyze(recent, baseline)

	assert.Equal(t, CausePrice, result.PrimaryCause)
	assert.GreaterOrEqual(t, result.Confidence, 25)
}

func TestAnalyze_StructureFallback(t *testing.T) {
	// 모든 지표가 완만하면 structure로 떨어진다
	baseline := makeWindow(1, 7, 1_000_000, 100, map[string]int{"김치찌개": 30})
	recent := makeWindow(8, 7, 960_000, 98, map[string]int{"김치찌개": 29})

	result := Analyze(recent, baseline)
	assert.Equal(t, CauseStructure, result.PrimaryCause)
}

func TestAnalyze_MissingVisitorsFallsToStructure(t *testing.T) {
	// 기준 구간에 방문자 기록이 없으면 traffic 신호를 만들 수 없다
	baseline := makeWindow(1, 7, 1_000_000, 0, map[string]int{"김치찌개": 30})
	for i := range baseline {
		baseline[i].Visitors = nil
	}
	recent := makeWindow(8, 7, 850_000, 80, map[string]int{"김치찌개": 28})

	result := Analyze(recent, baseline)
	assert.Nil(t, result.Delta.Visitors)
	assert.Equal(t, CauseStructure, result.PrimaryCause)
	assert.LessOrEqual(t, result.Confidence, 40)
}

func TestAnalyze_ZeroVisitorsTicketNull(t *testing.T) {
	baseline := makeWindow(1, 7, 1_000_000, 0, map[string]int{"김치찌개": 30})
	recent := makeWindow(8, 7, 900_000, 0, map[string]int{"김치찌개": 28})

	result := Analyze(recent, baseline)
	assert.Nil(t, result.Recent.AvgTicket)
	assert.Nil(t, result.Delta.Ticket)
}

func TestAnalyze_DropStartDetection(t *testing.T) {
	baseline := makeWindow(1, 7, 1_000_000, 100, nil)

	// 8~10일 정상, 11일부터 급락
	recent := makeWindow(8, 3, 1_000_000, 100, nil)
	recent = append(recent, makeWindow(11, 4, 400_000, 100, nil)...)

	result := Analyze(recent, baseline)
	// 3일 이동평균은 11일에 처음 기준 아래로 내려가(800k) 이후 3일 연속
	// 유지되므로, 하락 시작일은 급락 첫날인 11일이어야 한다
	assert.Equal(t, "2026-08-11", result.DropStartDate)
}

// 기준 아래 구간이 3일 연속에 못 미치면 구간 시작일로 떨어진다.
func TestAnalyze_DropStartFallsBackToWindowStart(t *testing.T) {
	baseline := makeWindow(1, 7, 1_000_000, 100, nil)

	// 하루짜리 급락 후 강한 회복: 이동평균이 기준 아래에 3일 연속 머무는 구간이 없다
	recent := makeWindow(8, 3, 1_000_000, 100, nil)
	recent = append(recent, DayData{Date: "2026-08-11", TotalSales: 100_000, Visitors: intPtr(100)})
	recent = append(recent, makeWindow(12, 3, 2_000_000, 100, nil)...)

	result := Analyze(recent, baseline)
	assert.Equal(t, "2026-08-08", result.DropStartDate)
}

func TestAnalyze_TrendWorsening(t *testing.T) {
	baseline := makeWindow(1, 7, 1_000_000, 100, nil)
	recent := makeWindow(8, 4, 900_000, 100, nil)
	recent = append(recent, makeWindow(12, 3, 700_000, 100, nil)...)

	result := Analyze(recent, baseline)
	assert.Equal(t, TrendWorsening, result.Trend)
}

func TestAnalyze_EmptyWindows(t *testing.T) {
	result := Analyze(nil, nil)
	assert.Equal(t, CauseStructure, result.PrimaryCause)
	assert.Nil(t, result.Delta.Sales)
	assert.Empty(t, result.MenuChanges)
}
