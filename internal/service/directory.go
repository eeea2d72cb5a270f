// Package service implements the HR modules over the persisted store:
// employee directory, attendance, leave, shifts, expenses, recruitment,
// training, settings, and the dashboard aggregations. Each service is the
// writer for its own collection keys; read access is unrestricted, write
// access is gated by the authorization evaluator at the CLI boundary.
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
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// DirectoryService errors.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrInvalidRole    = errors.New("invalid role")
)

// DirectoryService provides CRUD operations on the employee directory with
// validation and Argon2id password hashing.
type DirectoryService struct {
	store  store.Store
	logger *slog.Logger
	val    *validator.Validate
	mu     sync.Mutex // serializes read-modify-write cycles on the users key
}

// NewDirectoryService creates a new DirectoryService.
func NewDirectoryService(st store.Store, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		store:  st,
		logger: logger,
		val:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateEmployeeInput holds the input for creating a directory record.
type CreateEmployeeInput struct {
	Email       string       `validate:"required,email"`
	Password    string       `validate:"required,min=8"`
	Role        auth.Role    `validate:"required"`
	Permissions []string     `validate:"-"`
	FirstName   string       `validate:"required"`
	LastName    string       `validate:"-"`
	Phone       string       `validate:"omitempty,len=10,numeric"`
	Department  string       `validate:"-"`
	Designation string       `validate:"-"`
	DateOfBirth string       `validate:"omitempty,datetime=2006-01-02"`
	JoiningDate string       `validate:"omitempty,datetime=2006-01-02"`
	Skills      []string     `validate:"-"`
	Salary      *auth.Salary `validate:"-"`
}

// CreateEmployee validates the input, hashes the password, and appends the
// record to the directory. New employees receive the default leave balance.
func (s *DirectoryService) CreateEmployee(in CreateEmployeeInput) (*auth.Identity, error) {
	if err := s.val.Struct(in); err != nil {
		return nil, fmt.Errorf("validate employee: %w", err)
	}
	if !in.Role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, in.Email) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEmail, in.Email)
		}
	}

	now := time.Now().UTC()
	user := auth.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Permissions:  in.Permissions,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Department:   in.Department,
		Designation:  in.Designation,
		DateOfBirth:  in.DateOfBirth,
		JoiningDate:  in.JoiningDate,
		Skills:       in.Skills,
		Salary:       in.Salary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	users = append(users, user)
	if err := s.store.Set(store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}

	// Grant the default leave balance alongside the record.
	if err := s.grantDefaultBalance(user.ID); err != nil {
		s.logger.Warn("failed to grant default leave balance", "user_id", user.ID, "error", err)
	}

	s.logger.Info("employee created", "email", user.Email, "role", user.Role)
	return user.Identity(), nil
}

// ListEmployees returns sanitized directory records, sorted by name.
// An empty department filter matches everyone.
func (s *DirectoryService) ListEmployees(department string) ([]*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	var result []*auth.Identity
	for i := range users {
		if department != "" && !strings.EqualFold(users[i].Department, department) {
			continue
		}
		result = append(result, users[i].Identity())
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].FullName() < result[j].FullName()
	})
	return result, nil
}

// GetEmployee returns the sanitized record for the given user ID.
func (s *DirectoryService) GetEmployee(id string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return users[i].Identity(), nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateEmployeeInput holds mutable directory fields; nil pointers leave
// the stored value unchanged.
type UpdateEmployeeInput struct {
	Phone       *string
	Department  *string
	Designation *string
	Role        *auth.Role
	Permissions *[]string
	Skills      *[]string
	Salary      *auth.Salary
}

// UpdateEmployee applies the non-nil fields to the record.
func (s *DirectoryService) UpdateEmployee(id string, in UpdateEmployeeInput) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrUserNotFound
	}

	u := &users[idx]
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Department != nil {
		u.Department = *in.Department
	}
	if in.Designation != nil {
		u.Designation = *in.Designation
	}
	if in.Role != nil {
		if !in.Role.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, *in.Role)
		}
		u.Role = *in.Role
	}
	if in.Permissions != nil {
		u.Permissions = *in.Permissions
	}
	if in.Skills != nil {
		u.Skills = *in.Skills
	}
	if in.Salary != nil {
		u.Salary = in.Salary
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.val.Struct(u); err != nil {
		return nil, fmt.Errorf("validate employee: %w", err)
	}
	if err := s.store.Set(store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("persist users: %w", err)
	}

	s.logger.Info("employee updated", "user_id", id)
	return u.Identity(), nil
}

// DeleteEmployee removes the record from the directory.
func (s *DirectoryService) DeleteEmployee(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	idx := -1
	for i := range users {
		if users[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUserNotFound
	}
	users = append(users[:idx], users[idx+1:]...)
	if err := s.store.Set(store.KeyUsers, users); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	s.logger.Info("employee deleted", "user_id", id)
	return nil
}

// loadUsers reads the users collection. Caller must hold s.mu.
func (s *DirectoryService) loadUsers() ([]auth.User, error) {
	var users []auth.User
	if _, err := s.store.Get(store.KeyUsers, &users); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return users, nil
}

// grantDefaultBalance appends a default leave balance for the user.
// Caller must hold s.mu.
func (s *DirectoryService) grantDefaultBalance(userID string) error {
	var balances []hr.LeaveBalance
	if _, err := s.store.Get(store.KeyLeaveBalances, &balances); err != nil {
		return err
	}
	balances = append(balances, hr.LeaveBalance{
		UserID: userID,
		Sick:   hr.DefaultSickBalance,
		Casual: hr.DefaultCasualBalance,
		Paid:   hr.DefaultPaidBalance,
	})
	return s.store.Set(store.KeyLeaveBalances, balances)
}
