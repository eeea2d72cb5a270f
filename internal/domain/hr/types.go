// Package hr contains the domain types for the HR collections: attendance,
// leave, shifts, expenses, recruitment, training, and company settings.
// Enumerations are closed string types with IsValid, matching the auth.Role
// convention.
package hr

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Attendance
// ---------------------------------------------------------------------------

// AttendanceStatus is the per-day attendance classification.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceOnLeave AttendanceStatus = "on_leave"
)

// IsValid returns true if the status is a known valid status.
func (s AttendanceStatus) IsValid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceHalfDay, AttendanceOnLeave:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one user's attendance for one calendar day.
type AttendanceRecord struct {
	ID       string           `json:"id"`
	UserID   string           `json:"userId"`
	Date     string           `json:"date"` // YYYY-MM-DD
	CheckIn  time.Time        `json:"checkIn"`
	CheckOut *time.Time       `json:"checkOut,omitempty"`
	Status   AttendanceStatus `json:"status"`
	// WorkedHours is filled at check-out.
	WorkedHours float64 `json:"workedHours,omitempty"`
}

// AttendanceStats summarizes one user's month.
type AttendanceStats struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// ---------------------------------------------------------------------------
// Leave
// ---------------------------------------------------------------------------

// LeaveType is the category a leave request draws its balance from.
type LeaveType string

const (
	LeaveSick   LeaveType = "sick"
	LeaveCasual LeaveType = "casual"
	LeavePaid   LeaveType = "paid"
	LeaveUnpaid LeaveType = "unpaid"
)

// IsValid returns true if the leave type is known.
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveSick, LeaveCasual, LeavePaid, LeaveUnpaid:
		return true
	default:
		return false
	}
}

// LeaveStatus is the approval state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// IsValid returns true if the status is known.
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	default:
		return false
	}
}

// LeaveRequest is a request for a span of days off.
type LeaveRequest struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Type      LeaveType   `json:"type"`
	From      string      `json:"from"` // YYYY-MM-DD, inclusive
	To        string      `json:"to"`   // YYYY-MM-DD, inclusive
	Days      int         `json:"days"`
	Reason    string      `json:"reason"`
	Status    LeaveStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	// DecidedBy is the approver's user ID, set on approval/rejection.
	DecidedBy string `json:"decidedBy,omitempty"`
}

// LeaveBalance tracks one user's remaining days per leave type. Unpaid
// leave has no balance.
type LeaveBalance struct {
	UserID string `json:"userId"`
	Sick   int    `json:"sick"`
	Casual int    `json:"casual"`
	Paid   int    `json:"paid"`
}

// Default leave balances granted to every new employee.
const (
	DefaultSickBalance   = 10
	DefaultCasualBalance = 12
	DefaultPaidBalance   = 15
)

// Remaining returns the balance for the given type. Unpaid leave is
// unbounded and reports a large sentinel.
func (b *LeaveBalance) Remaining(t LeaveType) int {
	switch t {
	case LeaveSick:
		return b.Sick
	case LeaveCasual:
		return b.Casual
	case LeavePaid:
		return b.Paid
	default:
		return int(^uint(0) >> 1)
	}
}

// Deduct subtracts days from the balance for the given type. Unpaid leave
// is a no-op.
func (b *LeaveBalance) Deduct(t LeaveType, days int) {
	switch t {
	case LeaveSick:
		b.Sick -= days
	case LeaveCasual:
		b.Casual -= days
	case LeavePaid:
		b.Paid -= days
	}
}

// ---------------------------------------------------------------------------
// Shifts
// ---------------------------------------------------------------------------

// ShiftType is the roster slot.
type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftEvening ShiftType = "evening"
	ShiftNight   ShiftType = "night"
	ShiftGeneral ShiftType = "general"
)

// IsValid returns true if the shift type is known.
func (t ShiftType) IsValid() bool {
	switch t {
	case ShiftMorning, ShiftEvening, ShiftNight, ShiftGeneral:
		return true
	default:
		return false
	}
}

// ShiftAssignment places one user on one shift for one date. A user holds
// at most one assignment per date; reassigning replaces it.
type ShiftAssignment struct {
	ID     string    `json:"id"`
	UserID string    `json:"userId"`
	Date   string    `json:"date"` // YYYY-MM-DD
	Shift  ShiftType `json:"shift"`
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

// ExpenseCategory classifies a claim.
type ExpenseCategory string

const (
	ExpenseTravel        ExpenseCategory = "travel"
	ExpenseFood          ExpenseCategory = "food"
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseSupplies      ExpenseCategory = "office_supplies"
	ExpenseOther         ExpenseCategory = "other"
)

// IsValid returns true if the category is known.
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseTravel, ExpenseFood, ExpenseAccommodation, ExpenseSupplies, ExpenseOther:
		return true
	default:
		return false
	}
}

// ExpenseStatus is the claim's position in its lifecycle:
// pending -> approved -> paid, or pending -> rejected.
type ExpenseStatus string

const (
	ExpensePending  ExpenseStatus = "pending"
	ExpenseApproved ExpenseStatus = "approved"
	ExpenseRejected ExpenseStatus = "rejected"
	ExpensePaid     ExpenseStatus = "paid"
)

// IsValid returns true if the status is known.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpensePending, ExpenseApproved, ExpenseRejected, ExpensePaid:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the status may move to next.
func (s ExpenseStatus) CanTransitionTo(next ExpenseStatus) bool {
	switch s {
	case ExpensePending:
		return next == ExpenseApproved || next == ExpenseRejected
	case ExpenseApproved:
		return next == ExpensePaid
	default:
		return false
	}
}

// ExpenseClaim is a reimbursement claim.
type ExpenseClaim struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Category    ExpenseCategory `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD, expense date
	Status      ExpenseStatus   `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	DecidedBy   string          `json:"decidedBy,omitempty"`
}

// ---------------------------------------------------------------------------
// Recruitment
// ---------------------------------------------------------------------------

// CandidateStage is a candidate's position in the pipeline:
// applied -> screening -> interview -> offer -> hired, with rejected
// reachable from every non-terminal stage.
type CandidateStage string

const (
	StageApplied   CandidateStage = "applied"
	StageScreening CandidateStage = "screening"
	StageInterview CandidateStage = "interview"
	StageOffer     CandidateStage = "offer"
	StageHired     CandidateStage = "hired"
	StageRejected  CandidateStage = "rejected"
)

// IsValid returns true if the stage is known.
func (s CandidateStage) IsValid() bool {
	switch s {
	case StageApplied, StageScreening, StageInterview, StageOffer, StageHired, StageRejected:
		return true
	default:
		return false
	}
}

// next returns the stage that follows s in the pipeline, or "" for
// terminal stages.
func (s CandidateStage) next() CandidateStage {
	switch s {
	case StageApplied:
		return StageScreening
	case StageScreening:
		return StageInterview
	case StageInterview:
		return StageOffer
	case StageOffer:
		return StageHired
	default:
		return ""
	}
}

// CanTransitionTo reports whether the stage may move to next: one step
// forward along the pipeline, or to rejected from any non-terminal stage.
func (s CandidateStage) CanTransitionTo(next CandidateStage) bool {
	if s == StageHired || s == StageRejected {
		return false
	}
	if next == StageRejected {
		return true
	}
	return s.next() == next
}

// JobPosting is an open or closed position.
type JobPosting struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Description string    `json:"description,omitempty"`
	Open        bool      `json:"open"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Candidate is an applicant attached to a job posting.
type Candidate struct {
	ID        string         `json:"id"`
	JobID     string         `json:"jobId"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Stage     CandidateStage `json:"stage"`
	AppliedAt time.Time      `json:"appliedAt"`
	Notes     string         `json:"notes,omitempty"`
}

// ---------------------------------------------------------------------------
// Training
// ---------------------------------------------------------------------------

// EnrollmentStatus tracks progress through a course.
type EnrollmentStatus string

const (
	EnrollmentEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentInProgress EnrollmentStatus = "in_progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

// IsValid returns true if the status is known.
func (s EnrollmentStatus) IsValid() bool {
	switch s {
	case EnrollmentEnrolled, EnrollmentInProgress, EnrollmentCompleted:
		return true
	default:
		return false
	}
}

// Course is a training course on offer.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DurationHrs int    `json:"durationHours,omitempty"`
}

// Enrollment links a user to a course, at most once per pair.
type Enrollment struct {
	ID       string           `json:"id"`
	UserID   string           `json:"userId"`
	CourseID string           `json:"courseId"`
	Status   EnrollmentStatus `json:"status"`
	// Progress is a completion percentage, 0-100.
	Progress   int       `json:"progress"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// ---------------------------------------------------------------------------
// Settings and audit
// ---------------------------------------------------------------------------

// WorkingHours is the company's standard day.
type WorkingHours struct {
	Start         string `json:"start" validate:"required"` // HH:MM
	End           string `json:"end" validate:"required"`   // HH:MM
	BreakDuration int    `json:"breakDuration"`             // minutes
}

// CompanySettings holds org-wide configuration edited from the settings
// module.
type CompanySettings struct {
	Name         string       `json:"name" validate:"required"`
	Email        string       `json:"email" validate:"omitempty,email"`
	Phone        string       `json:"phone,omitempty"`
	Address      string       `json:"address,omitempty"`
	WorkingHours WorkingHours `json:"workingHours"`
	Weekends     []string     `json:"weekends,omitempty"`
	// LateThreshold is the HH:MM check-in cutoff after which attendance is
	// marked late.
	LateThreshold string `json:"lateThreshold,omitempty"`
}

// Department is a named org unit.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Designation is a job title.
type Designation struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Holiday is a company-wide day off.
type Holiday struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}

// AuditEntry records one settings mutation. The audit log keeps only the
// most recent MaxAuditEntries entries.
type AuditEntry struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"` // user ID
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxAuditEntries bounds the persisted audit log.
const MaxAuditEntries = 100
