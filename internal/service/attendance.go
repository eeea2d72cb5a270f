package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// AttendanceService errors.
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
)

// DefaultLateThreshold is the check-in cutoff after which attendance is
// marked late, unless company settings override it.
const DefaultLateThreshold = "09:30"

// AttendanceService records daily check-ins and check-outs and computes
// monthly statistics.
type AttendanceService struct {
	store store.Store
	// lateThreshold is the configured HH:MM cutoff, used when company
	// settings do not override it.
	lateThreshold string
	logger        *slog.Logger
	mu            sync.Mutex
	// now is stubbed in tests.
	now func() time.Time
}

// NewAttendanceService creates a new AttendanceService. An empty
// lateThreshold falls back to DefaultLateThreshold.
func NewAttendanceService(st store.Store, lateThreshold string, logger *slog.Logger) *AttendanceService {
	if lateThreshold == "" {
		lateThreshold = DefaultLateThreshold
	}
	return &AttendanceService{
		store:         st,
		lateThreshold: lateThreshold,
		logger:        logger,
		now:           time.Now,
	}
}

// CheckIn records the user's arrival for today. Arrivals after the late
// threshold are marked late. A second check-in on the same day is rejected.
func (s *AttendanceService) CheckIn(userID string) (*hr.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := now.Format("2006-01-02")

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].UserID == userID && records[i].Date == today {
			return nil, ErrAlreadyCheckedIn
		}
	}

	status := hr.AttendancePresent
	if s.isLate(now) {
		status = hr.AttendanceLate
	}

	record := hr.AttendanceRecord{
		ID:      uuid.NewString(),
		UserID:  userID,
		Date:    today,
		CheckIn: now,
		Status:  status,
	}
	records = append(records, record)
	if err := s.store.Set(store.KeyAttendance, records); err != nil {
		return nil, fmt.Errorf("persist attendance: %w", err)
	}

	s.logger.Info("checked in", "user_id", userID, "status", status)
	return &record, nil
}

// CheckOut stamps today's record with the departure time and the hours
// worked. Requires a prior check-in; a second check-out is rejected.
func (s *AttendanceService) CheckOut(userID string) (*hr.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	today := now.Format("2006-01-02")

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range records {
		if records[i].UserID == userID && records[i].Date == today {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotCheckedIn
	}
	if records[idx].CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	out := now
	records[idx].CheckOut = &out
	records[idx].WorkedHours = out.Sub(records[idx].CheckIn).Hours()
	if err := s.store.Set(store.KeyAttendance, records); err != nil {
		return nil, fmt.Errorf("persist attendance: %w", err)
	}

	s.logger.Info("checked out", "user_id", userID, "worked_hours", records[idx].WorkedHours)
	record := records[idx]
	return &record, nil
}

// History returns the user's records, most recent first, capped at limit
// (0 means all).
func (s *AttendanceService) History(userID string, limit int) ([]hr.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}
	var result []hr.AttendanceRecord
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].UserID != userID {
			continue
		}
		result = append(result, records[i])
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

// MonthStats summarizes the user's given month (format YYYY-MM).
func (s *AttendanceService) MonthStats(userID, month string) (*hr.AttendanceStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadRecords()
	if err != nil {
		return nil, err
	}
	stats := &hr.AttendanceStats{}
	for i := range records {
		if records[i].UserID != userID || !strings.HasPrefix(records[i].Date, month) {
			continue
		}
		switch records[i].Status {
		case hr.AttendancePresent:
			stats.Present++
		case hr.AttendanceLate:
			stats.Late++
			stats.Present++ // late still counts as attended
		case hr.AttendanceAbsent:
			stats.Absent++
		}
	}
	return stats, nil
}

// isLate reports whether t falls after the late threshold on its own day.
// Company settings take precedence over the configured threshold.
func (s *AttendanceService) isLate(t time.Time) bool {
	threshold := s.lateThreshold
	var settings hr.CompanySettings
	if found, err := s.store.Get(store.KeyCompanySettings, &settings); err == nil && found && settings.LateThreshold != "" {
		threshold = settings.LateThreshold
	}

	cutoff, err := time.ParseInLocation("2006-01-02 15:04", t.Format("2006-01-02")+" "+threshold, t.Location())
	if err != nil {
		s.logger.Warn("invalid late threshold, using default", "threshold", threshold)
		cutoff, _ = time.ParseInLocation("2006-01-02 15:04", t.Format("2006-01-02")+" "+DefaultLateThreshold, t.Location())
	}
	return t.After(cutoff)
}

// loadRecords reads the attendance collection. Caller must hold s.mu.
func (s *AttendanceService) loadRecords() ([]hr.AttendanceRecord, error) {
	var records []hr.AttendanceRecord
	if _, err := s.store.Get(store.KeyAttendance, &records); err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	return records, nil
}
