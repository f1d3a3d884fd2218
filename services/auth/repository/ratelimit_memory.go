package repository

import (
	"context"
	"sync"
	"time"

	"github.com/piresc/storefront/internal/pkg/models"
)

type rateShard struct {
	mu      sync.Mutex
	records map[string]*models.RateLimitRecord
}

// RateLimitMemoryRepo keeps daily OTP counters in process memory
type RateLimitMemoryRepo struct {
	maxPerDay int
	now       func() time.Time
	shards    [shardCount]*rateShard
}

// NewRateLimitMemoryRepo creates an in-memory rate limiter
func NewRateLimitMemoryRepo(maxPerDay int) *RateLimitMemoryRepo {
	r := &RateLimitMemoryRepo{
		maxPerDay: maxPerDay,
		now:       time.Now,
	}
	for i := range r.shards {
		r.shards[i] = &rateShard{records: make(map[string]*models.RateLimitRecord)}
	}
	return r
}

// SetNowFunc replaces the clock
func (r *RateLimitMemoryRepo) SetNowFunc(now func() time.Time) {
	r.now = now
}

// Allow counts a send against today's UTC quota
func (r *RateLimitMemoryRepo) Allow(_ context.Context, mobile string) (bool, error) {
	today := r.now().UTC().Format(dateLayout)
	s := r.shards[shardIndex(mobile)]

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[mobile]
	if !ok || rec.WindowDate != today {
		s.records[mobile] = &models.RateLimitRecord{Mobile: mobile, Count: 1, WindowDate: today}
		return true, nil
	}
	if rec.Count < r.maxPerDay {
		rec.Count++
		return true, nil
	}
	return false, nil
}

// Record returns a copy of the stored counter
func (r *RateLimitMemoryRepo) Record(mobile string) (models.RateLimitRecord, bool) {
	s := r.shards[shardIndex(mobile)]
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[mobile]
	if !ok {
		return models.RateLimitRecord{}, false
	}
	return *rec, true
}

// Sweep drops counters from previous days and reports how many were removed
func (r *RateLimitMemoryRepo) Sweep(now time.Time) int {
	today := now.UTC().Format(dateLayout)
	removed := 0
	for _, s := range r.shards {
		s.mu.Lock()
		for mobile, rec := range s.records {
			if rec.WindowDate != today {
				delete(s.records, mobile)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}
