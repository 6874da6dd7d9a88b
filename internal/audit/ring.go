// Package audit 쓰기 작업 감사 로그. 세션당 최근 N건만 유지하는 링 버퍼로,
// "저장이 됐나?"를 UI에서 바로 확인하는 용도다.
package audit

import (
	"sync"

	"github.com/jangsalab/storeops-backend/pkg/timeutil"
)

// MaxEntries 링 버퍼 용량
const MaxEntries = 20

// Entry 쓰기 작업 감사 항목
type Entry struct {
	TsKST     string                 `json:"ts_kst"`               // KST ISO 타임스탬프
	Action    string                 `json:"action"`               // 작업 이름 (save_sales 등)
	OK        bool                   `json:"ok"`                   // 성공 여부
	Ms        float64                `json:"ms"`                   // 소요 시간 (밀리초)
	Targets   []string               `json:"targets"`              // 무효화 대상
	ErrorType string                 `json:"error_type,omitempty"` // 실패 시 에러 종류
	ErrorMsg  string                 `json:"error_msg,omitempty"`  // 실패 시 에러 메시지
	Extra     map[string]interface{} `json:"extra,omitempty"`      // 추가 정보 (날짜 등)
}

// Ring 크기 고정 감사 로그
type Ring struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

func NewRing() *Ring {
	return &Ring{max: MaxEntries}
}

// Append 항목 추가. 용량을 넘으면 가장 오래된 항목부터 버린다.
func (r *Ring) Append(entry Entry) {
	if entry.TsKST == "" {
		entry.TsKST = timeutil.NowKST().Format("2006-01-02T15:04:05+09:00")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
}

// Entries 현재 항목 사본 (오래된 것부터)
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]Entry, len(r.entries))
	copy(copied, r.entries)
	return copied
}

// Clear 전체 비우기
func (r *Ring) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
