package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// DashboardSummary is the aggregated snapshot shown on the dashboard.
type DashboardSummary struct {
	Headcount         int            `json:"headcount"`
	HeadcountByDept   map[string]int `json:"headcountByDepartment"`
	PendingLeave      int            `json:"pendingLeave"`
	PendingExpenses   int            `json:"pendingExpenses"`
	PresentToday      int            `json:"presentToday"`
	LateToday         int            `json:"lateToday"`
	OpenJobs          int            `json:"openJobs"`
	ActiveEnrollments int            `json:"activeEnrollments"`
}

// DashboardService computes read-only aggregations over the collections.
type DashboardService struct {
	store  store.Store
	logger *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(st store.Store, logger *slog.Logger) *DashboardService {
	return &DashboardService{store: st, logger: logger}
}

// Summary builds the dashboard snapshot for today.
func (s *DashboardService) Summary() (*DashboardSummary, error) {
	summary := &DashboardSummary{HeadcountByDept: map[string]int{}}

	var users []auth.User
	if _, err := s.store.Get(store.KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	summary.Headcount = len(users)
	for i := range users {
		if users[i].Department != "" {
			summary.HeadcountByDept[users[i].Department]++
		}
	}

	var leaves []hr.LeaveRequest
	if _, err := s.store.Get(store.KeyLeaveRequests, &leaves); err != nil {
		return nil, fmt.Errorf("load leave requests: %w", err)
	}
	for i := range leaves {
		if leaves[i].Status == hr.LeavePending {
			summary.PendingLeave++
		}
	}

	var claims []hr.ExpenseClaim
	if _, err := s.store.Get(store.KeyExpenses, &claims); err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	for i := range claims {
		if claims[i].Status == hr.ExpensePending {
			summary.PendingExpenses++
		}
	}

	today := time.Now().Format("2006-01-02")
	var records []hr.AttendanceRecord
	if _, err := s.store.Get(store.KeyAttendance, &records); err != nil {
		return nil, fmt.Errorf("load attendance: %w", err)
	}
	for i := range records {
		if records[i].Date != today {
			continue
		}
		switch records[i].Status {
		case hr.AttendancePresent:
			summary.PresentToday++
		case hr.AttendanceLate:
			summary.PresentToday++
			summary.LateToday++
		}
	}

	var jobs []hr.JobPosting
	if _, err := s.store.Get(store.KeyJobs, &jobs); err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	for i := range jobs {
		if jobs[i].Open {
			summary.OpenJobs++
		}
	}

	var enrollments []hr.Enrollment
	if _, err := s.store.Get(store.KeyEnrollments, &enrollments); err != nil {
		return nil, fmt.Errorf("load enrollments: %w", err)
	}
	for i := range enrollments {
		if enrollments[i].Status != hr.EnrollmentCompleted {
			summary.ActiveEnrollments++
		}
	}

	return summary, nil
}
