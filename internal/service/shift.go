package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// ErrInvalidShift is returned for unknown shift types.
var ErrInvalidShift = errors.New("invalid shift type")

// ShiftService manages the roster: one assignment per user per date,
// reassignment replaces the existing slot.
type ShiftService struct {
	store  store.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewShiftService creates a new ShiftService.
func NewShiftService(st store.Store, logger *slog.Logger) *ShiftService {
	return &ShiftService{store: st, logger: logger}
}

// Assign places the user on a shift for the date, replacing any existing
// assignment for the same user and date.
func (s *ShiftService) Assign(userID, date string, shift hr.ShiftType) (*hr.ShiftAssignment, error) {
	if !shift.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidShift, shift)
	}
	if _, err := inclusiveDays(date, date); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var assignments []hr.ShiftAssignment
	if _, err := s.store.Get(store.KeyShifts, &assignments); err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}

	assignment := hr.ShiftAssignment{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   date,
		Shift:  shift,
	}
	replaced := false
	for i := range assignments {
		if assignments[i].UserID == userID && assignments[i].Date == date {
			assignment.ID = assignments[i].ID
			assignments[i] = assignment
			replaced = true
			break
		}
	}
	if !replaced {
		assignments = append(assignments, assignment)
	}

	if err := s.store.Set(store.KeyShifts, assignments); err != nil {
		return nil, fmt.Errorf("persist shifts: %w", err)
	}
	s.logger.Info("shift assigned", "user_id", userID, "date", date, "shift", shift, "replaced", replaced)
	return &assignment, nil
}

// Roster returns all assignments for a date, sorted by shift then user.
func (s *ShiftService) Roster(date string) ([]hr.ShiftAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var assignments []hr.ShiftAssignment
	if _, err := s.store.Get(store.KeyShifts, &assignments); err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	var result []hr.ShiftAssignment
	for i := range assignments {
		if assignments[i].Date == date {
			result = append(result, assignments[i])
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Shift != result[j].Shift {
			return result[i].Shift < result[j].Shift
		}
		return result[i].UserID < result[j].UserID
	})
	return result, nil
}

// ForUser returns the user's assignments, sorted by date.
func (s *ShiftService) ForUser(userID string) ([]hr.ShiftAssignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var assignments []hr.ShiftAssignment
	if _, err := s.store.Get(store.KeyShifts, &assignments); err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	var result []hr.ShiftAssignment
	for i := range assignments {
		if assignments[i].UserID == userID {
			result = append(result, assignments[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}
