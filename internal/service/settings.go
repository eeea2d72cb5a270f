package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// SettingsService errors.
var (
	ErrDuplicateName   = errors.New("name already exists")
	ErrNameNotFound    = errors.New("name not found")
	ErrInvalidSettings = errors.New("invalid company settings")
)

// SettingsService manages company settings, the department and designation
// lists, and the bounded audit log. Every mutation appends an audit entry;
// the log keeps only the most recent hr.MaxAuditEntries entries.
type SettingsService struct {
	store  store.Store
	logger *slog.Logger
	val    *validator.Validate
	mu     sync.Mutex
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(st store.Store, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		store:  st,
		logger: logger,
		val:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Company returns the stored company settings, or defaults when unset.
func (s *SettingsService) Company() (*hr.CompanySettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settings hr.CompanySettings
	found, err := s.store.Get(store.KeyCompanySettings, &settings)
	if err != nil {
		return nil, fmt.Errorf("load company settings: %w", err)
	}
	if !found {
		return &hr.CompanySettings{
			WorkingHours:  hr.WorkingHours{Start: "09:00", End: "18:00", BreakDuration: 60},
			Weekends:      []string{"Saturday", "Sunday"},
			LateThreshold: DefaultLateThreshold,
		}, nil
	}
	return &settings, nil
}

// UpdateCompany validates and persists the settings and audits the change.
func (s *SettingsService) UpdateCompany(actorID string, settings hr.CompanySettings) error {
	if err := s.val.Struct(settings); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(store.KeyCompanySettings, settings); err != nil {
		return fmt.Errorf("persist company settings: %w", err)
	}
	s.recordAudit(actorID, "updated company settings")
	s.logger.Info("company settings updated", "by", actorID)
	return nil
}

// Departments returns the department list.
func (s *SettingsService) Departments() ([]hr.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var departments []hr.Department
	if _, err := s.store.Get(store.KeyDepartments, &departments); err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	return departments, nil
}

// AddDepartment appends a department; duplicate names are rejected.
func (s *SettingsService) AddDepartment(actorID, name string) (*hr.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var departments []hr.Department
	if _, err := s.store.Get(store.KeyDepartments, &departments); err != nil {
		return nil, fmt.Errorf("load departments: %w", err)
	}
	for i := range departments {
		if strings.EqualFold(departments[i].Name, name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	dept := hr.Department{ID: uuid.NewString(), Name: name}
	departments = append(departments, dept)
	if err := s.store.Set(store.KeyDepartments, departments); err != nil {
		return nil, fmt.Errorf("persist departments: %w", err)
	}
	s.recordAudit(actorID, "added department "+name)
	return &dept, nil
}

// RemoveDepartment deletes a department by name.
func (s *SettingsService) RemoveDepartment(actorID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var departments []hr.Department
	if _, err := s.store.Get(store.KeyDepartments, &departments); err != nil {
		return fmt.Errorf("load departments: %w", err)
	}
	for i := range departments {
		if strings.EqualFold(departments[i].Name, name) {
			departments = append(departments[:i], departments[i+1:]...)
			if err := s.store.Set(store.KeyDepartments, departments); err != nil {
				return fmt.Errorf("persist departments: %w", err)
			}
			s.recordAudit(actorID, "removed department "+name)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNameNotFound, name)
}

// Designations returns the designation list.
func (s *SettingsService) Designations() ([]hr.Designation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var designations []hr.Designation
	if _, err := s.store.Get(store.KeyDesignations, &designations); err != nil {
		return nil, fmt.Errorf("load designations: %w", err)
	}
	return designations, nil
}

// AddDesignation appends a designation; duplicate names are rejected.
func (s *SettingsService) AddDesignation(actorID, name string) (*hr.Designation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var designations []hr.Designation
	if _, err := s.store.Get(store.KeyDesignations, &designations); err != nil {
		return nil, fmt.Errorf("load designations: %w", err)
	}
	for i := range designations {
		if strings.EqualFold(designations[i].Name, name) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	desig := hr.Designation{ID: uuid.NewString(), Name: name}
	designations = append(designations, desig)
	if err := s.store.Set(store.KeyDesignations, designations); err != nil {
		return nil, fmt.Errorf("persist designations: %w", err)
	}
	s.recordAudit(actorID, "added designation "+name)
	return &desig, nil
}

// Holidays returns the holiday calendar, sorted by date.
func (s *SettingsService) Holidays() ([]hr.Holiday, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var holidays []hr.Holiday
	if _, err := s.store.Get(store.KeyHolidays, &holidays); err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	sort.Slice(holidays, func(i, j int) bool { return holidays[i].Date < holidays[j].Date })
	return holidays, nil
}

// AddHoliday appends a holiday; a duplicate date is rejected.
func (s *SettingsService) AddHoliday(actorID, name, date string) (*hr.Holiday, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidSettings)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var holidays []hr.Holiday
	if _, err := s.store.Get(store.KeyHolidays, &holidays); err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	for i := range holidays {
		if holidays[i].Date == date {
			return nil, fmt.Errorf("%w: holiday on %s", ErrDuplicateName, date)
		}
	}
	holiday := hr.Holiday{ID: uuid.NewString(), Name: name, Date: date}
	holidays = append(holidays, holiday)
	if err := s.store.Set(store.KeyHolidays, holidays); err != nil {
		return nil, fmt.Errorf("persist holidays: %w", err)
	}
	s.recordAudit(actorID, "added holiday "+name+" on "+date)
	return &holiday, nil
}

// RemoveHoliday deletes a holiday by date.
func (s *SettingsService) RemoveHoliday(actorID, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var holidays []hr.Holiday
	if _, err := s.store.Get(store.KeyHolidays, &holidays); err != nil {
		return fmt.Errorf("load holidays: %w", err)
	}
	for i := range holidays {
		if holidays[i].Date == date {
			holidays = append(holidays[:i], holidays[i+1:]...)
			if err := s.store.Set(store.KeyHolidays, holidays); err != nil {
				return fmt.Errorf("persist holidays: %w", err)
			}
			s.recordAudit(actorID, "removed holiday on "+date)
			return nil
		}
	}
	return fmt.Errorf("%w: no holiday on %s", ErrNameNotFound, date)
}

// AuditLog returns the retained audit entries, most recent first.
func (s *SettingsService) AuditLog() ([]hr.AuditEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var entries []hr.AuditEntry
	if _, err := s.store.Get(store.KeyAuditLogs, &entries); err != nil {
		return nil, fmt.Errorf("load audit log: %w", err)
	}
	return entries, nil
}

// recordAudit prepends an entry and trims the log to hr.MaxAuditEntries.
// Failures are logged, not returned: audit must not block the mutation
// that already happened. Caller must hold s.mu.
func (s *SettingsService) recordAudit(actorID, action string) {
	var entries []hr.AuditEntry
	if _, err := s.store.Get(store.KeyAuditLogs, &entries); err != nil {
		s.logger.Warn("failed to load audit log", "error", err)
		return
	}
	entries = append([]hr.AuditEntry{{
		ID:        uuid.NewString(),
		Actor:     actorID,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}}, entries...)
	if len(entries) > hr.MaxAuditEntries {
		entries = entries[:hr.MaxAuditEntries]
	}
	if err := s.store.Set(store.KeyAuditLogs, entries); err != nil {
		s.logger.Warn("failed to persist audit log", "error", err)
	}
}
