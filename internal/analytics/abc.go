package analytics

import "sort"

// ABCInput ABC 분류 입력 한 줄. 메뉴(매출 기준)든 재료(지출 기준)든 같은 절차를 쓴다.
type ABCInput struct {
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Value int64  `json:"value"` // 매출 또는 지출 (원)
}

// ABCRow ABC 분류 결과 한 줄
type ABCRow struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Value    int64   `json:"value"`
	Share    float64 `json:"share"`     // 비중 (%)
	CumShare float64 `json:"cum_share"` // 누적 비중 (%)
	Grade    string  `json:"grade"`     // A | B | C
}

// ClassifyABC 금액 내림차순으로 누적 비중을 쌓아 70/90 경계로 등급을 나눈다.
// 동률은 수량 많은 쪽, 그다음 이름 사전순으로 정렬한다 (안정적).
// 입력이 비었거나 총액이 0이면 빈 결과를 돌려준다.
func ClassifyABC(inputs []ABCInput) []ABCRow {
	if len(inputs) == 0 {
		return []ABCRow{}
	}

	var total int64
	for _, input := range inputs {
		total += input.Value
	}
	if total <= 0 {
		return []ABCRow{}
	}

	sorted := make([]ABCInput, len(inputs))
	copy(sorted, inputs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Value != sorted[j].Value {
			return sorted[i].Value > sorted[j].Value
		}
		if sorted[i].Qty != sorted[j].Qty {
			return sorted[i].Qty > sorted[j].Qty
		}
		return sorted[i].Name < sorted[j].Name
	})

	rows := make([]ABCRow, 0, len(sorted))
	var cumValue int64
	for i, input := range sorted {
		// 등급은 이 항목이 더해지기 전의 누적 비중으로 결정한다.
		// 70% 경계에 걸친 항목까지 A로 들어간다.
		prevCum := float64(cumValue) / float64(total) * 100

		cumValue += input.Value
		share := float64(input.Value) / float64(total) * 100
		cumShare := float64(cumValue) / float64(total) * 100

		grade := "C"
		switch {
		case prevCum < 70:
			grade = "A"
		case prevCum < 90:
			grade = "B"
		}

		rows = append(rows, ABCRow{
			Rank:     i + 1,
			Name:     input.Name,
			Qty:      input.Qty,
			Value:    input.Value,
			Share:    share,
			CumShare: cumShare,
			Grade:    grade,
		})
	}
	return rows
}
