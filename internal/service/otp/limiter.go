package otp

import (
	"sync"
	"time"
)

// bucket 单个手机号的令牌桶
type bucket struct {
	tokens     int
	lastRefill time.Time
}

// limiter 以手机号为键的令牌桶限流器
// 每个窗口补满一次，防止对同一号码刷短信
type limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	window    time.Duration
	capacity  int
	lastSweep time.Time
}

func newLimiter(window time.Duration, capacity int) *limiter {
	if capacity <= 0 {
		capacity = 5
	}
	if window <= 0 {
		window = time.Minute
	}
	return &limiter{
		buckets:   map[string]*bucket{},
		window:    window,
		capacity:  capacity,
		lastSweep: time.Now(),
	}
}

// allow 消费一个令牌，桶空则拒绝
func (l *limiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	l.sweep(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.capacity, lastRefill: now}
		l.buckets[key] = b
	}

	if now.Sub(b.lastRefill) >= l.window {
		b.tokens = l.capacity
		b.lastRefill = now
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// sweep 每个窗口清理一次过期的桶，防止按手机号无限增长
// 过期的桶下次访问会补满，删除不改变语义。调用方需持有锁
func (l *limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.window {
		return
	}
	for key, b := range l.buckets {
		if now.Sub(b.lastRefill) >= l.window {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}
