package services

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/bankist-labs/bankist-api/internal/models"
	"github.com/bankist-labs/bankist-api/internal/repositories"
	"github.com/bankist-labs/bankist-api/internal/views"
	"github.com/bankist-labs/bankist-api/pkg"
	"go.uber.org/zap"
)

// Outcome names the exact precondition an action failed on. The HTTP
// surface presents every failure identically; the distinction exists for
// logging and tests.
type Outcome string

const (
	OutcomeOK                  Outcome = "ok"
	OutcomeUnknownUser         Outcome = "unknown_user"
	OutcomeWrongPin            Outcome = "wrong_pin"
	OutcomeInsufficientFunds   Outcome = "insufficient_funds"
	OutcomeSelfTransfer        Outcome = "self_transfer"
	OutcomeInvalidAmount       Outcome = "invalid_amount"
	OutcomeNoQualifyingDeposit Outcome = "no_qualifying_deposit"
	OutcomeNotLoggedIn         Outcome = "not_logged_in"
)

// OK reports whether the action went through.
func (o Outcome) OK() bool { return o == OutcomeOK }

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token string
	View  views.AccountView
}

// loanFactor: a loan is granted only if some past movement reaches a tenth
// of the requested amount.
const loanFactor = 10.0

type BankService interface {
	// Login authenticates a username/PIN pair and opens a session.
	Login(ctx context.Context, traceID, username, pin string) (Outcome, LoginResult)
	// Transfer moves amount from the session account to the receiver.
	Transfer(ctx context.Context, traceID, token, to, amount string) (Outcome, views.AccountView)
	// RequestLoan credits the session account when a qualifying deposit exists.
	RequestLoan(ctx context.Context, traceID, token, amount string) (Outcome, views.AccountView)
	// CloseAccount removes the session account after re-confirming credentials.
	CloseAccount(ctx context.Context, traceID, token, username, pin string) Outcome
	// ToggleSort switches the session's movement rendering to ascending by
	// amount. The switch is one-way; see SessionManager.MarkSorted.
	ToggleSort(ctx context.Context, traceID, token string) (Outcome, views.AccountView)
	// Render returns the current view without mutating anything.
	Render(ctx context.Context, traceID, token string) (Outcome, views.AccountView)
}

type BankServiceImpl struct {
	logger   *zap.Logger
	store    repositories.AccountStore
	sessions SessionManager
}

func NewBankService(logger *zap.Logger, store repositories.AccountStore, sessions SessionManager) BankService {
	return &BankServiceImpl{logger: logger, store: store, sessions: sessions}
}

func (s *BankServiceImpl) Login(ctx context.Context, traceID, username, pin string) (Outcome, LoginResult) {
	acct, ok := s.store.FindByUsername(username)
	if !ok {
		return s.reject(traceID, "login", OutcomeUnknownUser), LoginResult{}
	}
	if !pinMatches(pin, acct.PIN) {
		return s.reject(traceID, "login", OutcomeWrongPin), LoginResult{}
	}

	sess := s.sessions.Create(acct.Username)
	s.logger.Info("login_succeeded",
		zap.String(pkg.TraceId, traceID),
		zap.String("username", acct.Username),
	)
	return OutcomeOK, LoginResult{
		Token: sess.Token,
		View:  s.render(acct, sess),
	}
}

func (s *BankServiceImpl) Transfer(ctx context.Context, traceID, token, to, amount string) (Outcome, views.AccountView) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return s.reject(traceID, "transfer", OutcomeNotLoggedIn), views.AccountView{}
	}

	amt, ok := parseAmount(amount)
	if !ok || amt <= 0 {
		return s.reject(traceID, "transfer", OutcomeInvalidAmount), views.AccountView{}
	}
	if _, ok := s.store.FindByUsername(to); !ok {
		return s.reject(traceID, "transfer", OutcomeUnknownUser), views.AccountView{}
	}

	if err := s.store.Transfer(sess.Username, to, amt); err != nil {
		switch {
		case errors.Is(err, repositories.ErrSameAccount):
			return s.reject(traceID, "transfer", OutcomeSelfTransfer), views.AccountView{}
		case errors.Is(err, repositories.ErrInsufficientFunds):
			return s.reject(traceID, "transfer", OutcomeInsufficientFunds), views.AccountView{}
		default:
			return s.reject(traceID, "transfer", OutcomeNotLoggedIn), views.AccountView{}
		}
	}

	s.logger.Info("transfer_succeeded",
		zap.String(pkg.TraceId, traceID),
		zap.String("from", sess.Username),
		zap.String("to", to),
		zap.Float64("amount", amt),
	)
	return OutcomeOK, s.renderUsername(sess)
}

func (s *BankServiceImpl) RequestLoan(ctx context.Context, traceID, token, amount string) (Outcome, views.AccountView) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return s.reject(traceID, "loan", OutcomeNotLoggedIn), views.AccountView{}
	}

	amt, ok := parseAmount(amount)
	if !ok || amt <= 0 {
		return s.reject(traceID, "loan", OutcomeInvalidAmount), views.AccountView{}
	}

	acct, ok := s.store.FindByUsername(sess.Username)
	if !ok {
		return s.reject(traceID, "loan", OutcomeNotLoggedIn), views.AccountView{}
	}
	if !hasQualifyingDeposit(acct.Movements, amt) {
		return s.reject(traceID, "loan", OutcomeNoQualifyingDeposit), views.AccountView{}
	}

	if err := s.store.AppendMovement(sess.Username, amt); err != nil {
		return s.reject(traceID, "loan", OutcomeNotLoggedIn), views.AccountView{}
	}
	s.logger.Info("loan_granted",
		zap.String(pkg.TraceId, traceID),
		zap.String("username", sess.Username),
		zap.Float64("amount", amt),
	)
	return OutcomeOK, s.renderUsername(sess)
}

func (s *BankServiceImpl) CloseAccount(ctx context.Context, traceID, token, username, pin string) Outcome {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return s.reject(traceID, "close", OutcomeNotLoggedIn)
	}

	acct, ok := s.store.FindByUsername(sess.Username)
	if !ok {
		return s.reject(traceID, "close", OutcomeNotLoggedIn)
	}
	if username != acct.Username {
		return s.reject(traceID, "close", OutcomeUnknownUser)
	}
	if !pinMatches(pin, acct.PIN) {
		return s.reject(traceID, "close", OutcomeWrongPin)
	}

	s.store.Remove(acct.Username)
	s.sessions.DestroyByUsername(acct.Username)
	s.logger.Info("account_closed",
		zap.String(pkg.TraceId, traceID),
		zap.String("username", acct.Username),
	)
	return OutcomeOK
}

func (s *BankServiceImpl) ToggleSort(ctx context.Context, traceID, token string) (Outcome, views.AccountView) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return s.reject(traceID, "sort", OutcomeNotLoggedIn), views.AccountView{}
	}
	s.sessions.MarkSorted(sess.Token)
	sess.Sorted = true
	return OutcomeOK, s.renderUsername(sess)
}

func (s *BankServiceImpl) Render(ctx context.Context, traceID, token string) (Outcome, views.AccountView) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return s.reject(traceID, "render", OutcomeNotLoggedIn), views.AccountView{}
	}
	return OutcomeOK, s.renderUsername(sess)
}

// reject logs the precise failure cause at debug level and passes the
// outcome through unchanged. The caller surfaces nothing beyond "no".
func (s *BankServiceImpl) reject(traceID, action string, outcome Outcome) Outcome {
	s.logger.Debug("action_rejected",
		zap.String(pkg.TraceId, traceID),
		zap.String("action", action),
		zap.String("outcome", string(outcome)),
	)
	return outcome
}

func (s *BankServiceImpl) renderUsername(sess Session) views.AccountView {
	acct, ok := s.store.FindByUsername(sess.Username)
	if !ok {
		return views.AccountView{}
	}
	return s.render(acct, sess)
}

func (s *BankServiceImpl) render(acct models.Account, sess Session) views.AccountView {
	summary := models.Summarize(acct.Movements, acct.InterestRate)
	movements := acct.Movements
	if sess.Sorted {
		movements = models.SortedAscending(movements)
	}
	return views.AccountView{
		Welcome:   "Welcome back, " + acct.FirstName(),
		Username:  acct.Username,
		Movements: movements,
		Balance:   summary.Balance,
		Income:    summary.Income,
		Expense:   summary.Expense,
		Interest:  summary.Interest,
		Sorted:    sess.Sorted,
	}
}

// parseAmount parses a user-supplied numeric string permissively. Anything
// that does not come out as a finite number fails the precondition.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func pinMatches(input string, pin int) bool {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return false
	}
	return v == pin
}

func hasQualifyingDeposit(movements []float64, amount float64) bool {
	for _, m := range movements {
		if m >= amount/loanFactor {
			return true
		}
	}
	return false
}
