// Package auth contains the domain types and logic for authentication and
// authorization: user records, the closed role enumeration, password
// hashing, and the pure role/permission evaluator.
package auth

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role represents a user role for authorization purposes.
type Role string

const (
	// RoleAdmin has full access and bypasses all permission checks.
	RoleAdmin Role = "admin"
	// RoleManager can approve leave, expenses, and manage rosters.
	RoleManager Role = "manager"
	// RoleEmployee has standard self-service access.
	RoleEmployee Role = "employee"
	// RoleHR manages the directory, recruitment, and training.
	RoleHR Role = "hr"
)

// IsValid returns true if the role is a known valid role.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee, RoleHR:
		return true
	default:
		return false
	}
}

// Roles returns all valid roles.
func Roles() []Role {
	return []Role{RoleAdmin, RoleManager, RoleEmployee, RoleHR}
}

// PermissionAll grants every capability; the seed admin carries it.
const PermissionAll = "all"

// EmergencyContact is a person to reach in an emergency.
type EmergencyContact struct {
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" validate:"omitempty,len=10,numeric"`
}

// Address is a postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Salary holds the monthly salary components.
type Salary struct {
	Basic     decimal.Decimal `json:"basic"`
	HRA       decimal.Decimal `json:"hra"`
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
}

// Total returns the sum of all salary components.
func (s Salary) Total() decimal.Decimal {
	return s.Basic.Add(s.HRA).Add(s.Transport).Add(s.Medical)
}

// User is the full directory record, including the password hash. It is
// persisted under the "users" key and must never leave the auth/directory
// boundary unsanitized.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email" validate:"required,email"`
	PasswordHash string            `json:"password" validate:"required"`
	Role         Role              `json:"role" validate:"required"`
	Permissions  []string          `json:"permissions,omitempty"`
	FirstName    string            `json:"firstName" validate:"required"`
	LastName     string            `json:"lastName"`
	Phone        string            `json:"phone" validate:"omitempty,len=10,numeric"`
	Department   string            `json:"department"`
	Designation  string            `json:"designation"`
	DateOfBirth  string            `json:"dateOfBirth,omitempty"`
	JoiningDate  string            `json:"joiningDate,omitempty"`
	Skills       []string          `json:"skills,omitempty"`
	Emergency    *EmergencyContact `json:"emergencyContact,omitempty"`
	Address      *Address          `json:"address,omitempty"`
	Salary       *Salary           `json:"salary,omitempty"`
	CreatedAt    time.Time         `json:"createdAt,omitempty"`
	UpdatedAt    time.Time         `json:"updatedAt,omitempty"`
}

// Identity is the sanitized snapshot of a user held by a session. It is the
// User record with the password hash stripped; this is what gets persisted
// under the "currentUser" key and handed to callers.
type Identity struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Department  string   `json:"department,omitempty"`
	Designation string   `json:"designation,omitempty"`
}

// Identity returns the sanitized snapshot of this user.
func (u *User) Identity() *Identity {
	perms := make([]string, len(u.Permissions))
	copy(perms, u.Permissions)
	return &Identity{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Permissions: perms,
		Department:  u.Department,
		Designation: u.Designation,
	}
}

// FullName returns "First Last", trimming when LastName is empty.
func (i *Identity) FullName() string {
	if i.LastName == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.LastName
}
