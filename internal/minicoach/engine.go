// Package minicoach 홈 화면 한 줄 코칭.
// 어제 매출과 최근 평균을 비교해 여섯 상태 중 하나와 행동 문구를 만든다.
package minicoach

import (
	"fmt"
	"math"
)

// 코칭 상태
const (
	StatusNeedSales  = "NEED_SALES"  // 매출 기록 없음
	StatusFirstSale  = "FIRST_SALE"  // 기록 1건뿐이거나 기준 평균을 만들 수 없음
	StatusDownStrong = "DOWN_STRONG" // 어제 < 0.80 x 평균
	StatusDownMild   = "DOWN_MILD"   // 0.80 x 평균 <= 어제 < 0.95 x 평균
	StatusUpStrong   = "UP_STRONG"   // 어제 > 1.20 x 평균
	StatusStable     = "STABLE"
)

// DaySales 하루치 매출 입력 (날짜 오름차순으로 전달)
type DaySales struct {
	Date       string
	TotalSales int64
}

// Advice 한 줄 코칭 결과
type Advice struct {
	Status     string `json:"status"`
	CoachLine  string `json:"coach_line"`
	ActionLine string `json:"action_line"`
	CTA        string `json:"cta,omitempty"`
}

// Coach 최근 매출 이력에서 상태를 판정한다.
// "어제"는 매출이 있는 가장 최근 날로 대체되고,
// 7일 평균이 안 되면 최근 3일 평균으로 대체된다.
func Coach(history []DaySales) Advice {
	if len(history) == 0 {
		return Advice{
			Status:     StatusNeedSales,
			CoachLine:  "아직 매출 기록이 없어요.",
			ActionLine: "오늘 매출 1건만 입력해 보세요. 분석은 거기서 시작돼요.",
			CTA:        "sales_input",
		}
	}

	yesterday := history[len(history)-1]
	baselineDays := history[:len(history)-1]

	avg, ok := baselineAvg(baselineDays)
	if !ok {
		return Advice{
			Status:     StatusFirstSale,
			CoachLine:  "첫 매출 기록, 좋은 시작이에요!",
			ActionLine: "내일도 매출 1개만 입력하면 비교가 시작돼요.",
			CTA:        "sales_input",
		}
	}

	ratio := float64(yesterday.TotalSales) / avg
	pct := int(math.Round(math.Abs(ratio-1) * 100))

	switch {
	case ratio < 0.80:
		return Advice{
			Status:     StatusDownStrong,
			CoachLine:  fmt.Sprintf("어제 매출이 평소보다 %d%% 낮았어요.", pct),
			ActionLine: "하락 원인 분석에서 무엇이 떨어졌는지 확인해 보세요.",
			CTA:        "drop_analysis",
		}
	case ratio < 0.95:
		return Advice{
			Status:     StatusDownMild,
			CoachLine:  fmt.Sprintf("어제 매출이 평소보다 %d%% 낮아요.", pct),
			ActionLine: "아직 걱정할 수준은 아니에요. 이틀 더 지켜보세요.",
		}
	case ratio > 1.20:
		return Advice{
			Status:     StatusUpStrong,
			CoachLine:  fmt.Sprintf("어제 매출이 평소보다 %d%% 높았어요!", pct),
			ActionLine: "뭐가 잘 팔렸는지 메뉴 분석에서 확인해 두세요.",
			CTA:        "abc_analysis",
		}
	default:
		return Advice{
			Status:     StatusStable,
			CoachLine:  "매출이 안정적으로 유지되고 있어요.",
			ActionLine: "이럴 때 원가율 점검 한 번 해 두면 좋아요.",
		}
	}
}

// baselineAvg 최근 7일 평균, 부족하면 최근 3일 평균. 둘 다 안 되면 기준 없음.
func baselineAvg(days []DaySales) (float64, bool) {
	if len(days) >= 7 {
		return avgOf(days[len(days)-7:]), true
	}
	if len(days) >= 3 {
		return avgOf(days[len(days)-3:]), true
	}
	return 0, false
}

func avgOf(days []DaySales) float64 {
	var sum int64
	for _, d := range days {
		sum += d.TotalSales
	}
	return float64(sum) / float64(len(days))
}
