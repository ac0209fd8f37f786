package cachex

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Snapshot 带TTL的单值快照缓存
// 别名表和费率表由外部后台工具修改，核心无法感知，
// 因此缓存只能在有限时间内使用，到期或收到失效信号后重新加载。
type Snapshot struct {
	mu       sync.RWMutex
	value    interface{}
	loadedAt time.Time
	ttl      time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewSnapshot 创建快照缓存
// ttl <= 0 表示不过期，只能通过 Invalidate 失效
func NewSnapshot(ttl time.Duration) *Snapshot {
	return &Snapshot{ttl: ttl}
}

// Get 读取缓存值，过期或未加载时返回 false
func (s *Snapshot) Get() (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.value == nil {
		s.misses.Inc()
		return nil, false
	}
	if s.ttl > 0 && time.Since(s.loadedAt) > s.ttl {
		s.misses.Inc()
		return nil, false
	}

	s.hits.Inc()
	return s.value, true
}

// Set 写入缓存值并刷新加载时间
func (s *Snapshot) Set(v interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.loadedAt = time.Now()
}

// Invalidate 显式失效（配置变更信号触发）
func (s *Snapshot) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = nil
}

// Stats 返回命中/未命中计数
func (s *Snapshot) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}
