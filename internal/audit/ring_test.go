package audit

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRing_AppendAndEntries(t *testing.T) {
	ring := NewRing()

	ring.Append(Entry{Action: "save_sales", OK: true, Ms: 12.5, Targets: []string{"sales"}})
	ring.Append(Entry{Action: "save_visitors", OK: false, ErrorType: "InvalidInput", ErrorMsg: "방문자 수는 음수일 수 없습니다"})

	entries := ring.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "save_sales", entries[0].Action)
	assert.True(t, entries[0].OK)
	assert.NotEmpty(t, entries[0].TsKST)
	assert.Equal(t, "InvalidInput", entries[1].ErrorType)
}

func TestRing_CapacityBound(t *testing.T) {
	ring := NewRing()

	for i := 0; i < MaxEntries+7; i++ {
		ring.Append(Entry{Action: fmt.Sprintf("action_%d", i), OK: true})
	}

	entries := ring.Entries()
	assert.Len(t, entries, MaxEntries)
	// 가장 오래된 7건이 밀려났는지 확인
	assert.Equal(t, "action_7", entries[0].Action)
	assert.Equal(t, fmt.Sprintf("action_%d", MaxEntries+6), entries[len(entries)-1].Action)
}

func TestRing_Clear(t *testing.T) {
	ring := NewRing()
	ring.Append(Entry{Action: "save_daily_close", OK: true})
	ring.Clear()
	assert.Empty(t, ring.Entries())
}

func TestRing_EntriesReturnsCopy(t *testing.T) {
	ring := NewRing()
	ring.Append(Entry{Action: "save_expenses", OK: true})

	entries := ring.Entries()
	entries[0].Action = "mutated"

	assert.Equal(t, "save_expenses", ring.Entries()[0].Action)
}
