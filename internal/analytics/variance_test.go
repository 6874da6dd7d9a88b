package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareToTarget(t *testing.T) {
	v := CompareToTarget(12_000_000, 10_000_000)
	require.NotNil(t, v.Achievement)
	assert.InDelta(t, 1.2, *v.Achievement, 0.0001)
	assert.Equal(t, int64(2_000_000), v.Gap)
	assert.Equal(t, DirectionAbove, v.Direction)

	v = CompareToTarget(8_000_000, 10_000_000)
	assert.Equal(t, DirectionBelow, v.Direction)

	// |S−T|/T < 2% 는 on_track
	v = CompareToTarget(10_150_000, 10_000_000)
	assert.Equal(t, DirectionOnTrack, v.Direction)
}

func TestCompareToTarget_ZeroTarget(t *testing.T) {
	v := CompareToTarget(5_000_000, 0)
	assert.Nil(t, v.Achievement)
	assert.Equal(t, DirectionOnTrack, v.Direction)
}

func TestAnalyzeTargetGap(t *testing.T) {
	// 15일 경과, 목표 3000만, 실적 1200만 -> 월말 예상 2400만 (80%, danger)
	gap := AnalyzeTargetGap(12_000_000, 30_000_000, 15, 30)
	assert.Equal(t, int64(15_000_000), gap.ExpectedSales)
	assert.Equal(t, int64(24_000_000), gap.ForecastSales)
	assert.Equal(t, PaceDanger, gap.Pace)
	assert.Equal(t, int64(1_200_000), gap.DailyNeeded)

	gap = AnalyzeTargetGap(16_000_000, 30_000_000, 15, 30)
	assert.Equal(t, PaceGood, gap.Pace)

	gap = AnalyzeTargetGap(14_000_000, 30_000_000, 15, 30)
	assert.Equal(t, PaceWarning, gap.Pace)
}
