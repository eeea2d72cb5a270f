// Package store provides the persisted key-value storage that stands in for
// a backend database. Values are JSON-serializable structures; keys are
// namespaced so unrelated data in the same file or table cannot collide.
//
// Three backends implement the contract: a single JSON file with atomic
// writes and file locking (default), a SQLite table, and an in-memory map
// for tests. Access is synchronous and single-writer; the store performs no
// conflict resolution.
package store

import "errors"

// DefaultNamespace prefixes every key written by PeopleDesk.
const DefaultNamespace = "hrms_"

// ErrClosed is returned by operations on a store that has been closed.
var ErrClosed = errors.New("store is closed")

// Store is the synchronous key-value contract consumed by the session
// manager and the HR services.
//
// Get unmarshals the stored value into out and reports whether the key was
// present. Set marshals value as JSON and persists it. Remove deletes a
// single key; removing an absent key is not an error. Clear removes every
// key in this store's namespace and nothing else.
type Store interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any) error
	Remove(key string) error
	Clear() error
}

// Keys owned by the session core. All other keys belong to the HR domain
// services and are opaque to the session manager.
const (
	KeyCurrentUser   = "currentUser"
	KeySessionExpiry = "sessionExpiry"
)

// Keys owned by the HR domain services.
const (
	KeyUsers           = "users"
	KeyAttendance      = "attendance"
	KeyLeaveRequests   = "leaveRequests"
	KeyLeaveBalances   = "leaveBalances"
	KeyShifts          = "shifts"
	KeyExpenses        = "expenses"
	KeyJobs            = "jobs"
	KeyCandidates      = "candidates"
	KeyCourses         = "courses"
	KeyEnrollments     = "enrollments"
	KeyDepartments     = "departments"
	KeyDesignations    = "designations"
	KeyCompanySettings = "companySettings"
	KeyAuditLogs       = "auditLogs"
	KeyHolidays        = "holidays"
)
