package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/piresc/storefront/internal/pkg/logger"
	"github.com/piresc/storefront/internal/utils"
	"github.com/piresc/storefront/services/auth"
)

const (
	localCodeLength = 6
	localCodeTTL    = 10 * time.Minute
)

var errUnknownSession = errors.New("unknown provider session")

type localSession struct {
	mobile    string
	hash      []byte
	expiresAt time.Time
}

// LocalProvider generates codes in-process for development. Codes are stored
// as bcrypt hashes and written to the debug log instead of being sent by SMS.
type LocalProvider struct {
	mu       sync.Mutex
	sessions map[string]*localSession
	now      func() time.Time
	deliver  func(mobile, code string)
}

// NewLocalProvider creates a development OTP provider
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{
		sessions: make(map[string]*localSession),
		now:      time.Now,
		deliver: func(mobile, code string) {
			logger.Debug("Local OTP generated",
				logger.Mobile(mobile),
				logger.String("otp", code))
		},
	}
}

// SendOTP generates a code and returns the id of a new provider session
func (p *LocalProvider) SendOTP(_ context.Context, mobile string) (string, error) {
	code, hash, err := newCode()
	if err != nil {
		return "", err
	}

	sessionID := uuid.NewString()
	p.mu.Lock()
	p.sweepLocked()
	p.sessions[sessionID] = &localSession{mobile: mobile, hash: hash, expiresAt: p.now().Add(localCodeTTL)}
	p.mu.Unlock()

	p.deliver(mobile, code)
	return sessionID, nil
}

// VerifyOTP compares code with the stored hash. A matched session is spent.
func (p *LocalProvider) VerifyOTP(_ context.Context, sessionID, code string) error {
	p.mu.Lock()
	session, ok := p.sessions[sessionID]
	if ok && !p.now().Before(session.expiresAt) {
		delete(p.sessions, sessionID)
		ok = false
	}
	var hash []byte
	if ok {
		hash = session.hash
	}
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %v", auth.ErrCodeRejected, errUnknownSession)
	}

	// compare outside the lock
	if err := bcrypt.CompareHashAndPassword(hash, []byte(code)); err != nil {
		return fmt.Errorf("%w: code mismatch", auth.ErrCodeRejected)
	}

	p.mu.Lock()
	// a resend in the meantime replaced the code this one matched
	if current, ok := p.sessions[sessionID]; !ok || !bytes.Equal(current.hash, hash) {
		p.mu.Unlock()
		return fmt.Errorf("%w: code superseded", auth.ErrCodeRejected)
	}
	delete(p.sessions, sessionID)
	p.mu.Unlock()
	return nil
}

// ResendOTP issues a fresh code for an existing session and restarts its expiry
func (p *LocalProvider) ResendOTP(_ context.Context, sessionID string) error {
	code, hash, err := newCode()
	if err != nil {
		return err
	}

	p.mu.Lock()
	session, ok := p.sessions[sessionID]
	if ok {
		session.hash = hash
		session.expiresAt = p.now().Add(localCodeTTL)
	}
	p.mu.Unlock()

	if !ok {
		return errUnknownSession
	}

	p.deliver(session.mobile, code)
	return nil
}

// sweepLocked drops expired sessions; the caller holds p.mu
func (p *LocalProvider) sweepLocked() {
	now := p.now()
	for id, s := range p.sessions {
		if !now.Before(s.expiresAt) {
			delete(p.sessions, id)
		}
	}
}

func newCode() (string, []byte, error) {
	code, err := utils.GenerateNumericCode(localCodeLength)
	if err != nil {
		return "", nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash otp: %w", err)
	}
	return code, hash, nil
}
