package repositories

import (
	"errors"
	"sync"

	"github.com/bankist-labs/bankist-api/internal/models"
	"github.com/bankist-labs/bankist-api/pkg"
	"go.uber.org/zap"
)

// Store-level errors. The service layer maps these onto its outcome
// taxonomy; nothing here knows about HTTP or sessions.
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("sender and receiver are the same account")
)

// AccountStore is the in-memory system of record for accounts.
type AccountStore interface {
	// FindByUsername returns a snapshot of the matching account. Absence
	// is a normal outcome, not a failure.
	FindByUsername(username string) (models.Account, bool)
	// AppendMovement records a signed movement against an account.
	AppendMovement(username string, amount float64) error
	// Transfer debits the sender and credits the receiver. Both writes and
	// the balance check happen inside one critical section, so no reader
	// can observe the debit without the credit.
	Transfer(from, to string, amount float64) error
	// Remove deletes an account. Returns false when no account matched.
	Remove(username string) bool
	// Len reports how many accounts remain.
	Len() int
}

// InMemoryStore guards an ordered account list with a single mutex. Accounts
// are seeded once at startup and only ever removed afterwards; movements are
// append-only.
type InMemoryStore struct {
	mu     sync.Mutex
	accts  []*models.Account
	logger *zap.Logger
}

func NewInMemoryStore(logger *zap.Logger, seed []models.Account) *InMemoryStore {
	accts := make([]*models.Account, 0, len(seed))
	for i := range seed {
		a := seed[i]
		a.Movements = append([]float64(nil), a.Movements...)
		accts = append(accts, &a)
	}
	return &InMemoryStore{accts: accts, logger: logger}
}

func (s *InMemoryStore) FindByUsername(username string) (models.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.find(username)
	if a == nil {
		return models.Account{}, false
	}
	return snapshot(a), true
}

func (s *InMemoryStore) AppendMovement(username string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.find(username)
	if a == nil {
		return ErrAccountNotFound
	}
	a.Movements = append(a.Movements, amount)
	s.logger.Debug("movement_recorded",
		zap.String("username", username),
		zap.String("type", string(pkg.MovementTypeOf(amount))),
		zap.Float64("amount", amount),
	)
	return nil
}

func (s *InMemoryStore) Transfer(from, to string, amount float64) error {
	if from == to {
		return ErrSameAccount
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sender := s.find(from)
	receiver := s.find(to)
	if sender == nil || receiver == nil {
		return ErrAccountNotFound
	}
	if models.Balance(sender.Movements) < amount {
		return ErrInsufficientFunds
	}

	sender.Movements = append(sender.Movements, -amount)
	receiver.Movements = append(receiver.Movements, amount)
	s.logger.Debug("transfer_recorded",
		zap.String("from", from),
		zap.String("to", to),
		zap.Float64("amount", amount),
	)
	return nil
}

func (s *InMemoryStore) Remove(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.accts {
		if a.Username == username {
			s.accts = append(s.accts[:i], s.accts[i+1:]...)
			s.logger.Info("account_removed", zap.String("username", username))
			return true
		}
	}
	return false
}

func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.accts)
}

// find must be called with the mutex held.
func (s *InMemoryStore) find(username string) *models.Account {
	for _, a := range s.accts {
		if a.Username == username {
			return a
		}
	}
	return nil
}

// snapshot copies an account so callers cannot mutate store state through
// the returned movements slice.
func snapshot(a *models.Account) models.Account {
	cp := *a
	cp.Movements = append([]float64(nil), a.Movements...)
	return cp
}
