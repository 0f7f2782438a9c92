// pkg/memcache/login_limiter.go
package mem

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per key (identifier plus client
// address).
type LoginLimiter interface {
	Allow(key string) bool

	// Sweep drops limiters idle for longer than maxIdle and returns how
	// many were removed.
	Sweep(maxIdle time.Duration) int
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type LoginLimiterStore struct {
	mu    sync.Mutex
	data  map[string]*entry
	limit rate.Limit
	burst int
	now   func() time.Time
}

func NewLoginLimiter(attemptsPerMinute int, burst int) *LoginLimiterStore {
	return &LoginLimiterStore{
		data:  make(map[string]*entry),
		limit: rate.Limit(float64(attemptsPerMinute) / 60.0),
		burst: burst,
		now:   time.Now,
	}
}

func (s *LoginLimiterStore) Allow(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.data[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.data[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

func (s *LoginLimiterStore) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for key, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			delete(s.data, key)
			removed++
		}
	}
	return removed
}

func (s *LoginLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}
