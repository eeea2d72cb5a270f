package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// LeaveService errors.
var (
	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrLeaveNotPending     = errors.New("leave request is not pending")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrInvalidLeaveType    = errors.New("invalid leave type")
	ErrInvalidDateRange    = errors.New("invalid date range")
)

// LeaveService manages leave requests and balances. Approval deducts the
// requested days from the balance for the leave type; rejection does not.
type LeaveService struct {
	store  store.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewLeaveService creates a new LeaveService.
func NewLeaveService(st store.Store, logger *slog.Logger) *LeaveService {
	return &LeaveService{store: st, logger: logger}
}

// Request files a leave request. The span is inclusive of both dates and
// must not exceed the remaining balance for the type (unpaid is exempt).
func (s *LeaveService) Request(userID string, leaveType hr.LeaveType, from, to, reason string) (*hr.LeaveRequest, error) {
	if !leaveType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLeaveType, leaveType)
	}
	days, err := inclusiveDays(from, to)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.balanceFor(userID)
	if err != nil {
		return nil, err
	}
	if balance.Remaining(leaveType) < days {
		return nil, fmt.Errorf("%w: %d %s day(s) requested, %d remaining",
			ErrInsufficientBalance, days, leaveType, balance.Remaining(leaveType))
	}

	var requests []hr.LeaveRequest
	if _, err := s.store.Get(store.KeyLeaveRequests, &requests); err != nil {
		return nil, fmt.Errorf("load leave requests: %w", err)
	}

	request := hr.LeaveRequest{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      leaveType,
		From:      from,
		To:        to,
		Days:      days,
		Reason:    reason,
		Status:    hr.LeavePending,
		CreatedAt: time.Now().UTC(),
	}
	requests = append(requests, request)
	if err := s.store.Set(store.KeyLeaveRequests, requests); err != nil {
		return nil, fmt.Errorf("persist leave requests: %w", err)
	}

	s.logger.Info("leave requested", "user_id", userID, "type", leaveType, "days", days)
	return &request, nil
}

// Approve moves a pending request to approved and deducts the balance.
func (s *LeaveService) Approve(requestID, approverID string) (*hr.LeaveRequest, error) {
	return s.decide(requestID, approverID, hr.LeaveApproved)
}

// Reject moves a pending request to rejected. The balance is untouched.
func (s *LeaveService) Reject(requestID, approverID string) (*hr.LeaveRequest, error) {
	return s.decide(requestID, approverID, hr.LeaveRejected)
}

// decide transitions a pending request to the given terminal status.
func (s *LeaveService) decide(requestID, approverID string, status hr.LeaveStatus) (*hr.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []hr.LeaveRequest
	if _, err := s.store.Get(store.KeyLeaveRequests, &requests); err != nil {
		return nil, fmt.Errorf("load leave requests: %w", err)
	}
	idx := -1
	for i := range requests {
		if requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrLeaveNotFound
	}
	if requests[idx].Status != hr.LeavePending {
		return nil, fmt.Errorf("%w: %s", ErrLeaveNotPending, requests[idx].Status)
	}

	if status == hr.LeaveApproved {
		if err := s.deductBalance(requests[idx].UserID, requests[idx].Type, requests[idx].Days); err != nil {
			return nil, err
		}
	}

	requests[idx].Status = status
	requests[idx].DecidedBy = approverID
	if err := s.store.Set(store.KeyLeaveRequests, requests); err != nil {
		return nil, fmt.Errorf("persist leave requests: %w", err)
	}

	s.logger.Info("leave decided", "request_id", requestID, "status", status, "by", approverID)
	request := requests[idx]
	return &request, nil
}

// List returns requests, optionally filtered by user (empty matches all)
// and status (empty matches all).
func (s *LeaveService) List(userID string, status hr.LeaveStatus) ([]hr.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var requests []hr.LeaveRequest
	if _, err := s.store.Get(store.KeyLeaveRequests, &requests); err != nil {
		return nil, fmt.Errorf("load leave requests: %w", err)
	}
	var result []hr.LeaveRequest
	for i := range requests {
		if userID != "" && requests[i].UserID != userID {
			continue
		}
		if status != "" && requests[i].Status != status {
			continue
		}
		result = append(result, requests[i])
	}
	return result, nil
}

// Balance returns the user's leave balance, granting the default when none
// is stored yet.
func (s *LeaveService) Balance(userID string) (*hr.LeaveBalance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceFor(userID)
}

// balanceFor finds or defaults the user's balance. Caller must hold s.mu.
func (s *LeaveService) balanceFor(userID string) (*hr.LeaveBalance, error) {
	var balances []hr.LeaveBalance
	if _, err := s.store.Get(store.KeyLeaveBalances, &balances); err != nil {
		return nil, fmt.Errorf("load leave balances: %w", err)
	}
	for i := range balances {
		if balances[i].UserID == userID {
			b := balances[i]
			return &b, nil
		}
	}
	return &hr.LeaveBalance{
		UserID: userID,
		Sick:   hr.DefaultSickBalance,
		Casual: hr.DefaultCasualBalance,
		Paid:   hr.DefaultPaidBalance,
	}, nil
}

// deductBalance subtracts days from the user's stored balance, creating the
// default record first when absent. Caller must hold s.mu.
func (s *LeaveService) deductBalance(userID string, leaveType hr.LeaveType, days int) error {
	var balances []hr.LeaveBalance
	if _, err := s.store.Get(store.KeyLeaveBalances, &balances); err != nil {
		return fmt.Errorf("load leave balances: %w", err)
	}
	idx := -1
	for i := range balances {
		if balances[i].UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		balances = append(balances, hr.LeaveBalance{
			UserID: userID,
			Sick:   hr.DefaultSickBalance,
			Casual: hr.DefaultCasualBalance,
			Paid:   hr.DefaultPaidBalance,
		})
		idx = len(balances) - 1
	}

	if balances[idx].Remaining(leaveType) < days {
		return fmt.Errorf("%w: %d %s day(s), %d remaining",
			ErrInsufficientBalance, days, leaveType, balances[idx].Remaining(leaveType))
	}
	balances[idx].Deduct(leaveType, days)
	if err := s.store.Set(store.KeyLeaveBalances, balances); err != nil {
		return fmt.Errorf("persist leave balances: %w", err)
	}
	return nil
}

// inclusiveDays counts the days in [from, to], both YYYY-MM-DD.
func inclusiveDays(from, to string) (int, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDateRange, from)
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDateRange, to)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, to, from)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}
