package cache

import (
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore 프로세스 내 캐시 백엔드. 만료는 다음 접근 시점에 게으르게 처리된다.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]map[string]memoryEntry // fn -> key -> entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(fn, key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.entries[fn]
	if !ok {
		return nil, false
	}
	entry, ok := byKey[key]
	if !ok {
		return nil, false
	}
	if s.now().After(entry.expiresAt) {
		delete(byKey, key)
		return nil, false
	}
	return entry.data, true
}

func (s *MemoryStore) Set(fn, key string, data []byte, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.entries[fn]
	if !ok {
		byKey = make(map[string]memoryEntry)
		s.entries[fn] = byKey
	}
	byKey[key] = memoryEntry{data: data, expiresAt: s.now().Add(ttl)}
}

func (s *MemoryStore) DeleteFunc(fn string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.entries[fn]
	if !ok {
		return 0
	}
	count := len(byKey)
	delete(s.entries, fn)
	return count
}

func (s *MemoryStore) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]map[string]memoryEntry)
}
