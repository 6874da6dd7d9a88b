// Package salesdrop 매출 하락 원인 분류 엔진.
// 최근 구간과 비교 구간(1주 또는 4주 전)의 지표 차이에서
// {traffic, menu, price, cost, structure} 중 주원인을 골라낸다.
package salesdrop

import (
	"fmt"
	"sort"
)

// 원인 분류
const (
	CauseTraffic   = "traffic"   // 방문자 감소
	CauseMenu      = "menu"      // 메뉴 판매량 붕괴
	CausePrice     = "price"     // 객단가 하락
	CauseCost      = "cost"      // 매출 감소 없이 수익성 악화 패턴
	CauseStructure = "structure" // 구조적/불명
)

// 추세
const (
	TrendRecovering = "recovering"
	TrendWorsening  = "worsening"
	TrendFlat       = "flat"
)

// DayData 하루치 입력. Visitors가 nil이면 그날 방문자 기록이 없는 것이다.
type DayData struct {
	Date       string
	TotalSales int64
	Visitors   *int
	MenuQty    map[string]int
}

// WindowMetrics 한 구간의 집계 지표
type WindowMetrics struct {
	Days        int      `json:"days"`
	AvgSales    float64  `json:"avg_sales"`
	AvgVisitors *float64 `json:"avg_visitors,omitempty"` // 방문자 기록이 없으면 null
	AvgTicket   *float64 `json:"avg_ticket,omitempty"`   // 방문자 0이면 null (NaN 금지)
	TotalQty    int      `json:"total_qty"`
}

// Deltas 구간 간 변화율 (%). 기준값이 없으면 null.
type Deltas struct {
	Sales    *float64 `json:"sales,omitempty"`
	Visitors *float64 `json:"visitors,omitempty"`
	Ticket   *float64 `json:"ticket,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
}

// MenuChange 상위 메뉴의 구간 간 변화
type MenuChange struct {
	MenuName    string   `json:"menu_name"`
	RecentQty   int      `json:"recent_qty"`
	BaselineQty int      `json:"baseline_qty"`
	DeltaPct    *float64 `json:"delta_pct,omitempty"`
	BigDrop     bool     `json:"big_drop"`  // 수량 15% 이상 감소
	RankDrop    bool     `json:"rank_drop"` // 순위 하락
}

// Result 분류 결과
type Result struct {
	Summary       string        `json:"summary"`
	Recent        WindowMetrics `json:"recent"`
	Baseline      WindowMetrics `json:"baseline"`
	Delta         Deltas        `json:"delta"`
	DropStartDate string        `json:"drop_start_date"`
	Trend         string        `json:"trend"`
	MenuChanges   []MenuChange  `json:"menu_changes"`
	PrimaryCause  string        `json:"primary_cause"`
	Confidence    int           `json:"confidence"`
	Evidence      []string      `json:"evidence"`
}

// Analyze 두 구간의 일별 데이터를 받아 하락 원인을 분류한다.
// recent와 baseline은 날짜 오름차순이어야 한다.
func Analyze(recent, baseline []DayData) *Result {
	result := &Result{
		Recent:   summarize(recent),
		Baseline: summarize(baseline),
	}

	result.Delta = Deltas{
		Sales:    pctDelta(result.Recent.AvgSales, result.Baseline.AvgSales),
		Quantity: pctDelta(float64(result.Recent.TotalQty), float64(result.Baseline.TotalQty)),
	}
	if result.Recent.AvgVisitors != nil && result.Baseline.AvgVisitors != nil {
		result.Delta.Visitors = pctDelta(*result.Recent.AvgVisitors, *result.Baseline.AvgVisitors)
	}
	if result.Recent.AvgTicket != nil && result.Baseline.AvgTicket != nil {
		result.Delta.Ticket = pctDelta(*result.Recent.AvgTicket, *result.Baseline.AvgTicket)
	}

	result.DropStartDate = findDropStart(recent, result.Baseline.AvgSales)
	result.Trend = recentTrend(recent)
	result.MenuChanges = compareTopMenus(recent, baseline)

	classify(result)
	result.Summary = buildSummary(result)
	return result
}

func summarize(days []DayData) WindowMetrics {
	m := WindowMetrics{Days: len(days)}
	if len(days) == 0 {
		return m
	}

	var salesSum int64
	var visitorSum, visitorDays, qtySum int
	for _, d := range days {
		salesSum += d.TotalSales
		if d.Visitors != nil {
			visitorSum += *d.Visitors
			visitorDays++
		}
		for _, qty := range d.MenuQty {
			qtySum += qty
		}
	}

	m.AvgSales = float64(salesSum) / float64(len(days))
	m.TotalQty = qtySum
	if visitorDays > 0 {
		avgVisitors := float64(visitorSum) / float64(visitorDays)
		m.AvgVisitors = &avgVisitors
		if avgVisitors > 0 {
			ticket := m.AvgSales / avgVisitors
			m.AvgTicket = &ticket
		}
	}
	return m
}

func pctDelta(recent, baseline float64) *float64 {
	if baseline == 0 {
		return nil
	}
	delta := (recent - baseline) / baseline * 100
	return &delta
}

// findDropStart 3일 이동평균이 기준 평균 아래로 내려가 3일 연속 머무는
// 첫 구간을 찾아, 그 구간의 첫 이동평균이 끝나는 날을 반환한다.
// 즉 "하락이 처음 확인된 가장 이른 날"이다. 없으면 구간 시작일.
func findDropStart(recent []DayData, baselineAvg float64) string {
	if len(recent) == 0 {
		return ""
	}
	start := recent[0].Date
	if baselineAvg <= 0 || len(recent) < 5 {
		return start
	}

	rolling := make([]float64, 0, len(recent))
	for i := 2; i < len(recent); i++ {
		sum := recent[i].TotalSales + recent[i-1].TotalSales + recent[i-2].TotalSales
		rolling = append(rolling, float64(sum)/3)
	}
	for i := 0; i+2 < len(rolling); i++ {
		if rolling[i] < baselineAvg && rolling[i+1] < baselineAvg && rolling[i+2] < baselineAvg {
			return recent[i+2].Date // 이동평균 창의 끝 날짜 = 하락이 확인된 날
		}
	}
	return start
}

// recentTrend 마지막 3일 평균 vs 직전 3일 평균
func recentTrend(recent []DayData) string {
	if len(recent) < 6 {
		return TrendFlat
	}
	n := len(recent)
	last := avgSales(recent[n-3:])
	prev := avgSales(recent[n-6 : n-3])
	if prev == 0 {
		return TrendFlat
	}
	change := (last - prev) / prev * 100
	switch {
	case change > 5:
		return TrendRecovering
	case change < -5:
		return TrendWorsening
	default:
		return TrendFlat
	}
}

func avgSales(days []DayData) float64 {
	if len(days) == 0 {
		return 0
	}
	var sum int64
	for _, d := range days {
		sum += d.TotalSales
	}
	return float64(sum) / float64(len(days))
}

// compareTopMenus 기준 구간 상위 5개 메뉴의 수량 변화를 비교한다
func compareTopMenus(recent, baseline []DayData) []MenuChange {
	recentQty := totalMenuQty(recent)
	baselineQty := totalMenuQty(baseline)

	top := topMenus(baselineQty, 5)
	recentRank := rankOf(topMenus(recentQty, len(recentQty)))

	changes := make([]MenuChange, 0, len(top))
	for i, name := range top {
		change := MenuChange{
			MenuName:    name,
			RecentQty:   recentQty[name],
			BaselineQty: baselineQty[name],
			DeltaPct:    pctDelta(float64(recentQty[name]), float64(baselineQty[name])),
		}
		if change.DeltaPct != nil && *change.DeltaPct <= -15 {
			change.BigDrop = true
		}
		if r, ok := recentRank[name]; ok && r > i {
			change.RankDrop = true
		} else if !ok {
			change.RankDrop = true
		}
		changes = append(changes, change)
	}
	return changes
}

func totalMenuQty(days []DayData) map[string]int {
	total := make(map[string]int)
	for _, d := range days {
		for name, qty := range d.MenuQty {
			total[name] += qty
		}
	}
	return total
}

func topMenus(qty map[string]int, n int) []string {
	names := make([]string, 0, len(qty))
	for name := range qty {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if qty[names[i]] != qty[names[j]] {
			return qty[names[i]] > qty[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func rankOf(names []string) map[string]int {
	rank := make(map[string]int, len(names))
	for i, name := range names {
		rank[name] = i
	}
	return rank
}

// classify 우선순위 규칙으로 주원인을 정하고, 발동한 신호의 가중치를
// 합산해 신뢰도를 만든다 (100 상한).
func classify(r *Result) {
	confidence := 0
	evidence := []string{}

	trafficHit := r.Delta.Visitors != nil && *r.Delta.Visitors < -15
	if trafficHit {
		confidence += 40
		evidence = append(evidence, fmt.Sprintf("방문자 %+.0f%%", *r.Delta.Visitors))
	}

	bigDrops := 0
	for i, change := range r.MenuChanges {
		if i < 3 && change.BigDrop {
			bigDrops++
		}
	}
	menuQtyHit := r.Delta.Quantity != nil && *r.Delta.Quantity < -15
	menuHit := menuQtyHit || bigDrops >= 2
	if menuQtyHit {
		confidence += 30
		evidence = append(evidence, fmt.Sprintf("판매 수량 %+.0f%%", *r.Delta.Quantity))
	}
	if bigDrops >= 2 {
		confidence += 20
		evidence = append(evidence, fmt.Sprintf("상위 3개 메뉴 중 %d개가 15%% 이상 감소", bigDrops))
	}

	priceHit := r.Delta.Ticket != nil && *r.Delta.Ticket < -8
	if priceHit {
		confidence += 25
		evidence = append(evidence, fmt.Sprintf("객단가 %+.0f%%", *r.Delta.Ticket))
	}

	costHit := r.Delta.Sales != nil && *r.Delta.Sales < -10 &&
		r.Delta.Ticket != nil && *r.Delta.Ticket > 0 &&
		r.Delta.Visitors != nil && *r.Delta.Visitors > -5
	if costHit {
		confidence += 15
		evidence = append(evidence, fmt.Sprintf("매출 %+.0f%% 감소에도 객단가 상승, 방문자 유지", *r.Delta.Sales))
	}

	switch {
	case trafficHit:
		r.PrimaryCause = CauseTraffic
	case menuHit:
		r.PrimaryCause = CauseMenu
	case priceHit:
		r.PrimaryCause = CausePrice
	case costHit:
		r.PrimaryCause = CauseCost
	default:
		r.PrimaryCause = CauseStructure
		if len(evidence) == 0 {
			evidence = append(evidence, "뚜렷한 단일 신호 없음")
			confidence = 10
		}
	}

	if confidence > 100 {
		confidence = 100
	}
	r.Confidence = confidence
	r.Evidence = evidence
}

var causeLabels = map[string]string{
	CauseTraffic:   "방문자 감소",
	CauseMenu:      "메뉴 판매 부진",
	CausePrice:     "객단가 하락",
	CauseCost:      "비용 구조 악화",
	CauseStructure: "구조적 요인",
}

func buildSummary(r *Result) string {
	salesPart := "매출 변화를 비교할 기준이 부족합니다"
	if r.Delta.Sales != nil {
		salesPart = fmt.Sprintf("일평균 매출이 %+.0f%% 변했습니다", *r.Delta.Sales)
	}
	return fmt.Sprintf("%s. 주원인은 %s(신뢰도 %d%%)으로 보입니다.",
		salesPart, causeLabels[r.PrimaryCause], r.Confidence)
}
