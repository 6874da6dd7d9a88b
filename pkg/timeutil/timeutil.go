// Package timeutil 한국 시간(KST) 기준 시간 유틸리티
// 앱 전체에서 "현재 시각/오늘/이번달" 기준을 KST로 통일하기 위한 공통 함수
package timeutil

import (
	"time"
)

// DateLayout ISO 날짜 포맷 (DB date 컬럼과 동일)
const DateLayout = "2006-01-02"

var kst = mustLoadKST()

func mustLoadKST() *time.Location {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		// tzdata가 없는 환경에서는 고정 오프셋으로 대체
		return time.FixedZone("KST", 9*60*60)
	}
	return loc
}

// KST returns the Asia/Seoul location.
func KST() *time.Location {
	return kst
}

// NowKST 현재 시각을 KST로 반환
func NowKST() time.Time {
	return time.Now().In(kst)
}

// TodayKST 오늘 날짜를 KST 기준 ISO 문자열로 반환
func TodayKST() string {
	return NowKST().Format(DateLayout)
}

// YesterdayKST 어제 날짜를 KST 기준 ISO 문자열로 반환
func YesterdayKST() string {
	return NowKST().AddDate(0, 0, -1).Format(DateLayout)
}

// CurrentYearMonthKST KST 기준 현재 (연도, 월)
func CurrentYearMonthKST() (int, int) {
	now := NowKST()
	return now.Year(), int(now.Month())
}

// ParseDate ISO 날짜 문자열 파싱 (KST 기준 자정)
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, kst)
}

// FormatDate time.Time을 ISO 날짜 문자열로 변환
func FormatDate(t time.Time) string {
	return t.In(kst).Format(DateLayout)
}

// AddDays ISO 날짜 문자열에 일수를 더한 날짜 반환. 잘못된 입력은 원본 유지.
func AddDays(date string, days int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(DateLayout)
}

// DaysBetween 두 ISO 날짜 사이의 일수 (inclusive 아님: end-start)
func DaysBetween(start, end string) int {
	s, err1 := ParseDate(start)
	e, err2 := ParseDate(end)
	if err1 != nil || err2 != nil {
		return 0
	}
	return int(e.Sub(s).Hours() / 24)
}

// DaysInMonth 해당 연월의 일수
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, kst).Day()
}

// MonthRange 해당 연월의 (시작일, 종료일) ISO 문자열
func MonthRange(year, month int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, kst)
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, kst)
	return first.Format(DateLayout), last.Format(DateLayout)
}
