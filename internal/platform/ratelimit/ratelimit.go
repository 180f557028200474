package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Rule is a per-minute budget for one action.
type Rule struct {
	PerMinute int
}

// Limiter enforces per-identifier, per-action budgets. Identifiers are
// typically owner ids; actions are route names. The zero budget means
// the action is not limited.
type Limiter struct {
	mu      sync.Mutex
	rules   map[string]Rule
	buckets map[string]*rate.Limiter
	now     func() time.Time
}

func NewLimiter(rules map[string]Rule) *Limiter {
	return &Limiter{
		rules:   rules,
		buckets: make(map[string]*rate.Limiter),
		now:     time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow reports whether the identifier may perform the action now. When
// denied it returns the wait until the next token is available.
func (l *Limiter) Allow(identifier string, action string) (bool, time.Duration) {
	rule, limited := l.rules[action]
	if !limited || rule.PerMinute <= 0 {
		return true, 0
	}

	l.mu.Lock()
	key := identifier + "|" + action
	bucket, exists := l.buckets[key]
	if !exists {
		bucket = rate.NewLimiter(rate.Limit(float64(rule.PerMinute)/60.0), rule.PerMinute)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	now := l.now()
	reservation := bucket.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Minute
	}
	delay := reservation.DelayFrom(now)
	if delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}
