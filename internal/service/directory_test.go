package service

import (
	"errors"
	"testing"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

func newDirectoryService(t *testing.T) (*DirectoryService, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewDirectoryService(st, testLogger()), st
}

func validEmployee() CreateEmployeeInput {
	return CreateEmployeeInput{
		Email:      "jane@hrms.com",
		Password:   "secret123",
		Role:       auth.RoleEmployee,
		FirstName:  "Jane",
		LastName:   "Roe",
		Department: "Engineering",
	}
}

// ---------------------------------------------------------------------------
// CreateEmployee
// ---------------------------------------------------------------------------

func TestCreateEmployee_StoresHashedPassword(t *testing.T) {
	svc, st := newDirectoryService(t)

	identity, err := svc.CreateEmployee(validEmployee())
	if err != nil {
		t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
	}
	if identity.ID == "" {
		t.Error("expected generated ID")
	}

	var users []auth.User
	if _, err := st.Get(store.KeyUsers, &users); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users))
	}
	if users[0].PasswordHash == "secret123" {
		t.Error("expected password to be hashed, found plaintext")
	}
	if !auth.IsHashed(users[0].PasswordHash) {
		t.Errorf("expected Argon2id hash, got %q", users[0].PasswordHash)
	}
}

func TestCreateEmployee_GrantsDefaultLeaveBalance(t *testing.T) {
	svc, st := newDirectoryService(t)

	identity, err := svc.CreateEmployee(validEmployee())
	if err != nil {
		t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
	}

	var balances []hr.LeaveBalance
	if _, err := st.Get(store.KeyLeaveBalances, &balances); err != nil {
		t.Fatalf("Get() returned unexpected error: %v", err)
	}
	if len(balances) != 1 {
		t.Fatalf("expected 1 balance record, got %d", len(balances))
	}
	b := balances[0]
	if b.UserID != identity.ID {
		t.Errorf("expected balance for %s, got %s", identity.ID, b.UserID)
	}
	if b.Sick != hr.DefaultSickBalance || b.Casual != hr.DefaultCasualBalance || b.Paid != hr.DefaultPaidBalance {
		t.Errorf("expected default balances, got %+v", b)
	}
}

func TestCreateEmployee_DuplicateEmailRejected(t *testing.T) {
	svc, _ := newDirectoryService(t)

	if _, err := svc.CreateEmployee(validEmployee()); err != nil {
		t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
	}

	dup := validEmployee()
	dup.Email = "JANE@hrms.com" // same address, different case
	if _, err := svc.CreateEmployee(dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestCreateEmployee_ValidationFailures(t *testing.T) {
	svc, _ := newDirectoryService(t)

	tests := []struct {
		name   string
		mutate func(*CreateEmployeeInput)
	}{
		{"missing email", func(in *CreateEmployeeInput) { in.Email = "" }},
		{"malformed email", func(in *CreateEmployeeInput) { in.Email = "not-an-email" }},
		{"short password", func(in *CreateEmployeeInput) { in.Password = "short" }},
		{"missing first name", func(in *CreateEmployeeInput) { in.FirstName = "" }},
		{"bad phone", func(in *CreateEmployeeInput) { in.Phone = "12345" }},
		{"bad joining date", func(in *CreateEmployeeInput) { in.JoiningDate = "01/02/2026" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validEmployee()
			tt.mutate(&in)
			if _, err := svc.CreateEmployee(in); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCreateEmployee_UnknownRoleRejected(t *testing.T) {
	svc, _ := newDirectoryService(t)

	in := validEmployee()
	in.Role = "superuser"
	if _, err := svc.CreateEmployee(in); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// List / Get / Update / Delete
// ---------------------------------------------------------------------------

func TestListEmployees_SortedAndFiltered(t *testing.T) {
	svc, _ := newDirectoryService(t)

	for _, e := range []struct{ first, email, dept string }{
		{"Zoe", "zoe@hrms.com", "Finance"},
		{"Adam", "adam@hrms.com", "Engineering"},
		{"Mia", "mia@hrms.com", "Engineering"},
	} {
		in := validEmployee()
		in.FirstName = e.first
		in.LastName = ""
		in.Email = e.email
		in.Department = e.dept
		if _, err := svc.CreateEmployee(in); err != nil {
			t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
		}
	}

	all, err := svc.ListEmployees("")
	if err != nil {
		t.Fatalf("ListEmployees() returned unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 employees, got %d", len(all))
	}
	if all[0].FirstName != "Adam" || all[2].FirstName != "Zoe" {
		t.Errorf("expected name-sorted order, got [%s %s %s]", all[0].FirstName, all[1].FirstName, all[2].FirstName)
	}

	eng, err := svc.ListEmployees("engineering")
	if err != nil {
		t.Fatalf("ListEmployees() returned unexpected error: %v", err)
	}
	if len(eng) != 2 {
		t.Errorf("expected 2 engineering employees (case-insensitive filter), got %d", len(eng))
	}
}

func TestGetEmployee_Unknown(t *testing.T) {
	svc, _ := newDirectoryService(t)

	if _, err := svc.GetEmployee("missing"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateEmployee_AppliesOnlyProvidedFields(t *testing.T) {
	svc, _ := newDirectoryService(t)

	identity, err := svc.CreateEmployee(validEmployee())
	if err != nil {
		t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
	}

	dept := "Product Management"
	role := auth.RoleManager
	updated, err := svc.UpdateEmployee(identity.ID, UpdateEmployeeInput{
		Department: &dept,
		Role:       &role,
	})
	if err != nil {
		t.Fatalf("UpdateEmployee() returned unexpected error: %v", err)
	}
	if updated.Department != dept {
		t.Errorf("expected department %q, got %q", dept, updated.Department)
	}
	if updated.Role != auth.RoleManager {
		t.Errorf("expected role manager, got %s", updated.Role)
	}
	if updated.Designation != "" {
		t.Errorf("expected untouched designation, got %q", updated.Designation)
	}
}

func TestUpdateEmployee_InvalidRoleRejected(t *testing.T) {
	svc, _ := newDirectoryService(t)

	identity, err := svc.CreateEmployee(validEmployee())
	if err != nil {
		t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
	}

	bad := auth.Role("root")
	if _, err := svc.UpdateEmployee(identity.ID, UpdateEmployeeInput{Role: &bad}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}

func TestDeleteEmployee_RemovesRecord(t *testing.T) {
	svc, _ := newDirectoryService(t)

	identity, err := svc.CreateEmployee(validEmployee())
	if err != nil {
		t.Fatalf("CreateEmployee() returned unexpected error: %v", err)
	}
	if err := svc.DeleteEmployee(identity.ID); err != nil {
		t.Fatalf("DeleteEmployee() returned unexpected error: %v", err)
	}
	if _, err := svc.GetEmployee(identity.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := svc.DeleteEmployee(identity.ID); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
	}
}
