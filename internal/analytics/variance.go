package analytics

import "math"

// 목표 대비 방향
const (
	DirectionAbove   = "above"
	DirectionBelow   = "below"
	DirectionOnTrack = "on_track"
)

// TargetVariance 실적 vs 목표 비교 결과
type TargetVariance struct {
	ActualSales int64    `json:"actual_sales"`
	TargetSales int64    `json:"target_sales"`
	Achievement *float64 `json:"achievement,omitempty"` // S/T. 목표 0이면 null
	Gap         int64    `json:"gap"`                   // S − T
	Direction   string   `json:"direction"`             // above | below | on_track
}

// CompareToTarget 달성률과 방향을 계산한다. |S−T|/T < 2%면 on_track.
func CompareToTarget(actualSales, targetSales int64) TargetVariance {
	v := TargetVariance{
		ActualSales: actualSales,
		TargetSales: targetSales,
		Gap:         actualSales - targetSales,
	}
	if targetSales <= 0 {
		v.Direction = DirectionOnTrack
		return v
	}

	achievement := float64(actualSales) / float64(targetSales)
	v.Achievement = &achievement

	gapRatio := math.Abs(float64(actualSales-targetSales)) / float64(targetSales)
	switch {
	case gapRatio < 0.02:
		v.Direction = DirectionOnTrack
	case actualSales > targetSales:
		v.Direction = DirectionAbove
	default:
		v.Direction = DirectionBelow
	}
	return v
}

// 월중 진도 신호등
const (
	PaceGood    = "good"    // 예상 달성률 100% 이상
	PaceWarning = "warning" // 90~100%
	PaceDanger  = "danger"  // 90% 미만
)

// TargetGap 월중 목표 진도 분석
type TargetGap struct {
	Variance      TargetVariance `json:"variance"`
	ElapsedDays   int            `json:"elapsed_days"`
	TotalDays     int            `json:"total_days"`
	ExpectedSales int64          `json:"expected_sales"` // 일할 기대 매출
	ForecastSales int64          `json:"forecast_sales"` // 현재 속도의 월말 예상
	Pace          string         `json:"pace"`           // good | warning | danger
	DailyNeeded   int64          `json:"daily_needed"`   // 남은 기간 일 평균 필요 매출
}

// AnalyzeTargetGap 월 경과 일수 기준으로 진도와 월말 예상을 계산한다.
// elapsedDays가 0이면 예측 없이 현재 상태만 돌려준다.
func AnalyzeTargetGap(actualSales, targetSales int64, elapsedDays, totalDays int) TargetGap {
	gap := TargetGap{
		Variance:    CompareToTarget(actualSales, targetSales),
		ElapsedDays: elapsedDays,
		TotalDays:   totalDays,
		Pace:        PaceDanger,
	}
	if totalDays <= 0 || targetSales <= 0 {
		return gap
	}

	gap.ExpectedSales = targetSales * int64(elapsedDays) / int64(totalDays)

	if elapsedDays > 0 {
		gap.ForecastSales = actualSales * int64(totalDays) / int64(elapsedDays)
	}

	remaining := totalDays - elapsedDays
	if remaining > 0 {
		need := targetSales - actualSales
		if need < 0 {
			need = 0
		}
		gap.DailyNeeded = need / int64(remaining)
	}

	forecastRatio := float64(gap.ForecastSales) / float64(targetSales)
	switch {
	case forecastRatio >= 1.0:
		gap.Pace = PaceGood
	case forecastRatio >= 0.9:
		gap.Pace = PaceWarning
	}
	return gap
}
