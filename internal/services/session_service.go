package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

// Session is the explicit replacement for a global "current account"
// variable: a token handed out at login, resolved on every later action.
type Session struct {
	Token     string
	Username  string
	Sorted    bool // one-way latch, see MarkSorted
	ExpiresAt time.Time
}

// SessionManager owns all live sessions. A session ends by TTL expiry,
// by explicit destruction, or when its account is closed.
type SessionManager interface {
	Create(username string) Session
	Get(token string) (Session, bool)
	// MarkSorted flips the session into ascending-by-amount rendering.
	// The latch is one-way: once sorted, later toggles do not restore the
	// chronological order.
	MarkSorted(token string)
	Destroy(token string)
	// DestroyByUsername drops every session of an account, used when the
	// account is closed.
	DestroyByUsername(username string)
	Stop()
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *zap.Logger
	stop     chan struct{}
}

func NewSessionManager(logger *zap.Logger, ttl time.Duration) SessionManager {
	m := &sessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		logger:   logger,
		stop:     make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

func (m *sessionManager) Create(username string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &Session{
		Token:     uuid.New().String(),
		Username:  username,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	m.sessions[s.Token] = s
	m.logger.Debug("session_created", zap.String("username", username))
	return *s
}

func (m *sessionManager) Get(token string) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, token)
		return Session{}, false
	}
	return *s, true
}

func (m *sessionManager) MarkSorted(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		s.Sorted = true
	}
}

func (m *sessionManager) Destroy(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *sessionManager) DestroyByUsername(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, s := range m.sessions {
		if s.Username == username {
			delete(m.sessions, token)
		}
	}
}

func (m *sessionManager) Stop() {
	close(m.stop)
}

func (m *sessionManager) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stop:
			return
		}
	}
}

func (m *sessionManager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
		}
	}
}
