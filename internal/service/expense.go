package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// ExpenseService errors.
var (
	ErrExpenseNotFound        = errors.New("expense claim not found")
	ErrInvalidExpense         = errors.New("invalid expense claim")
	ErrIllegalStatusChange    = errors.New("illegal expense status transition")
	ErrNonPositiveAmount      = errors.New("expense amount must be positive")
	ErrInvalidExpenseCategory = errors.New("invalid expense category")
)

// ExpenseService manages reimbursement claims through the lifecycle
// pending -> approved -> paid, or pending -> rejected.
type ExpenseService struct {
	store  store.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewExpenseService creates a new ExpenseService.
func NewExpenseService(st store.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: st, logger: logger}
}

// Submit files a new claim in pending status.
func (s *ExpenseService) Submit(userID string, category hr.ExpenseCategory, amount decimal.Decimal, date, description string) (*hr.ExpenseClaim, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExpenseCategory, category)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrNonPositiveAmount, amount)
	}
	if _, err := inclusiveDays(date, date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidExpense, date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.loadClaims()
	if err != nil {
		return nil, err
	}
	claim := hr.ExpenseClaim{
		ID:          uuid.NewString(),
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		Description: description,
		Date:        date,
		Status:      hr.ExpensePending,
		CreatedAt:   time.Now().UTC(),
	}
	claims = append(claims, claim)
	if err := s.store.Set(store.KeyExpenses, claims); err != nil {
		return nil, fmt.Errorf("persist expenses: %w", err)
	}

	s.logger.Info("expense submitted", "user_id", userID, "category", category, "amount", amount)
	return &claim, nil
}

// Transition moves a claim to the next status, enforcing the lifecycle.
func (s *ExpenseService) Transition(claimID string, next hr.ExpenseStatus, deciderID string) (*hr.ExpenseClaim, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrIllegalStatusChange, next)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.loadClaims()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range claims {
		if claims[i].ID == claimID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrExpenseNotFound
	}
	if !claims[idx].Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalStatusChange, claims[idx].Status, next)
	}

	claims[idx].Status = next
	claims[idx].DecidedBy = deciderID
	if err := s.store.Set(store.KeyExpenses, claims); err != nil {
		return nil, fmt.Errorf("persist expenses: %w", err)
	}

	s.logger.Info("expense transitioned", "claim_id", claimID, "status", next, "by", deciderID)
	claim := claims[idx]
	return &claim, nil
}

// List returns claims, optionally filtered by user and status (empty
// matches all).
func (s *ExpenseService) List(userID string, status hr.ExpenseStatus) ([]hr.ExpenseClaim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.loadClaims()
	if err != nil {
		return nil, err
	}
	var result []hr.ExpenseClaim
	for i := range claims {
		if userID != "" && claims[i].UserID != userID {
			continue
		}
		if status != "" && claims[i].Status != status {
			continue
		}
		result = append(result, claims[i])
	}
	return result, nil
}

// PendingTotal sums the amounts of all pending claims.
func (s *ExpenseService) PendingTotal() (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims, err := s.loadClaims()
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range claims {
		if claims[i].Status == hr.ExpensePending {
			total = total.Add(claims[i].Amount)
		}
	}
	return total, nil
}

// loadClaims reads the expenses collection. Caller must hold s.mu.
func (s *ExpenseService) loadClaims() ([]hr.ExpenseClaim, error) {
	var claims []hr.ExpenseClaim
	if _, err := s.store.Get(store.KeyExpenses, &claims); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	return claims, nil
}
