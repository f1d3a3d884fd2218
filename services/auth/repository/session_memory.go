package repository

import (
	"context"
	"sync"
	"time"

	"github.com/piresc/storefront/internal/pkg/models"
	"github.com/piresc/storefront/services/auth"
)

type sessionShard struct {
	mu       sync.Mutex
	sessions map[string]*models.OTPSession
}

// SessionMemoryRepo keeps OTP sessions in process memory
type SessionMemoryRepo struct {
	ttl    time.Duration
	now    func() time.Time
	shards [shardCount]*sessionShard
}

// NewSessionMemoryRepo creates an in-memory session store. Sessions older
// than ttl are treated as absent; a zero ttl disables expiry.
func NewSessionMemoryRepo(ttl time.Duration) *SessionMemoryRepo {
	r := &SessionMemoryRepo{
		ttl: ttl,
		now: time.Now,
	}
	for i := range r.shards {
		r.shards[i] = &sessionShard{sessions: make(map[string]*models.OTPSession)}
	}
	return r
}

// SetNowFunc replaces the clock
func (r *SessionMemoryRepo) SetNowFunc(now func() time.Time) {
	r.now = now
}

func (r *SessionMemoryRepo) shard(mobile string) *sessionShard {
	return r.shards[shardIndex(mobile)]
}

func (r *SessionMemoryRepo) expired(session *models.OTPSession, now time.Time) bool {
	return r.ttl > 0 && !now.Before(session.CreatedAt.Add(r.ttl))
}

// lookup must be called with the shard lock held
func (r *SessionMemoryRepo) lookup(s *sessionShard, mobile string) (*models.OTPSession, bool) {
	session, ok := s.sessions[mobile]
	if !ok {
		return nil, false
	}
	if r.expired(session, r.now()) {
		delete(s.sessions, mobile)
		return nil, false
	}
	return session, true
}

// Put creates or replaces the session with a zero attempt count
func (r *SessionMemoryRepo) Put(_ context.Context, mobile, providerSessionID string) error {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[mobile] = &models.OTPSession{
		Mobile:            mobile,
		ProviderSessionID: providerSessionID,
		Attempts:          0,
		CreatedAt:         r.now(),
	}
	return nil
}

// Get returns a copy of the live session
func (r *SessionMemoryRepo) Get(_ context.Context, mobile string) (*models.OTPSession, error) {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := r.lookup(s, mobile)
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	cp := *session
	return &cp, nil
}

// IncrementAttempts bumps the attempt counter and returns the new value
func (r *SessionMemoryRepo) IncrementAttempts(_ context.Context, mobile string) (int, error) {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := r.lookup(s, mobile)
	if !ok {
		return 0, auth.ErrSessionNotFound
	}
	session.Attempts++
	return session.Attempts, nil
}

// Remove deletes the session if present
func (r *SessionMemoryRepo) Remove(_ context.Context, mobile string) error {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, mobile)
	return nil
}

// Refresh moves the session's expiry base to now
func (r *SessionMemoryRepo) Refresh(_ context.Context, mobile string) error {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := r.lookup(s, mobile)
	if !ok {
		return auth.ErrSessionNotFound
	}
	session.CreatedAt = r.now()
	return nil
}

// Attempt charges one verify attempt under the shard lock
func (r *SessionMemoryRepo) Attempt(_ context.Context, mobile string, maxAttempts int) (*models.OTPSession, error) {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := r.lookup(s, mobile)
	if !ok {
		return nil, auth.ErrSessionNotFound
	}
	if session.Attempts >= maxAttempts {
		delete(s.sessions, mobile)
		return nil, auth.ErrAttemptsExhausted
	}
	session.Attempts++
	cp := *session
	return &cp, nil
}

// Consume deletes the session only while it still belongs to providerSessionID
func (r *SessionMemoryRepo) Consume(_ context.Context, mobile, providerSessionID string) (bool, error) {
	s := r.shard(mobile)
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := r.lookup(s, mobile)
	if !ok || session.ProviderSessionID != providerSessionID {
		return false, nil
	}
	delete(s.sessions, mobile)
	return true, nil
}

// Sweep drops expired sessions and reports how many were removed
func (r *SessionMemoryRepo) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	removed := 0
	for _, s := range r.shards {
		s.mu.Lock()
		for mobile, session := range s.sessions {
			if r.expired(session, now) {
				delete(s.sessions, mobile)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}
