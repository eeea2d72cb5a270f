// Package seed initializes a fresh store with the demo dataset: an admin
// account, sample employees, departments, designations, and company
// settings. Passwords are stored Argon2id-hashed; the well-known demo
// credentials are admin@hrms.com/admin123 and <name>@hrms.com/employee123.
package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/peopledesk/peopledesk/internal/adapter/outbound/store"
	"github.com/peopledesk/peopledesk/internal/domain/auth"
	"github.com/peopledesk/peopledesk/internal/domain/hr"
)

// Departments seeded into a fresh store.
var Departments = []string{
	"Engineering",
	"Human Resources",
	"Finance",
	"Marketing",
	"Sales",
	"Operations",
	"Customer Support",
	"Product Management",
}

// Designations seeded into a fresh store.
var Designations = []string{
	"Software Engineer",
	"Senior Software Engineer",
	"Team Lead",
	"Engineering Manager",
	"HR Manager",
	"HR Executive",
	"Finance Manager",
	"Accountant",
	"Marketing Manager",
	"Sales Executive",
	"Product Manager",
	"Support Engineer",
}

// Run populates the store with the demo dataset. It is a no-op when a
// users collection already exists, so it is safe to call on every start.
func Run(st store.Store, logger *slog.Logger) error {
	var existing []auth.User
	found, err := st.Get(store.KeyUsers, &existing)
	if err != nil {
		return fmt.Errorf("seed: check users: %w", err)
	}
	if found && len(existing) > 0 {
		logger.Debug("seed skipped, users already present", "count", len(existing))
		return nil
	}

	users, err := demoUsers()
	if err != nil {
		return err
	}
	if err := st.Set(store.KeyUsers, users); err != nil {
		return fmt.Errorf("seed: persist users: %w", err)
	}

	balances := make([]hr.LeaveBalance, 0, len(users))
	for i := range users {
		balances = append(balances, hr.LeaveBalance{
			UserID: users[i].ID,
			Sick:   hr.DefaultSickBalance,
			Casual: hr.DefaultCasualBalance,
			Paid:   hr.DefaultPaidBalance,
		})
	}
	if err := st.Set(store.KeyLeaveBalances, balances); err != nil {
		return fmt.Errorf("seed: persist leave balances: %w", err)
	}

	departments := make([]hr.Department, 0, len(Departments))
	for _, name := range Departments {
		departments = append(departments, hr.Department{ID: uuid.NewString(), Name: name})
	}
	if err := st.Set(store.KeyDepartments, departments); err != nil {
		return fmt.Errorf("seed: persist departments: %w", err)
	}

	designations := make([]hr.Designation, 0, len(Designations))
	for _, name := range Designations {
		designations = append(designations, hr.Designation{ID: uuid.NewString(), Name: name})
	}
	if err := st.Set(store.KeyDesignations, designations); err != nil {
		return fmt.Errorf("seed: persist designations: %w", err)
	}

	settings := hr.CompanySettings{
		Name:    "TechCorp Solutions",
		Email:   "info@techcorp.com",
		Phone:   "1800-123-4567",
		Address: "Tech Park, Bangalore, Karnataka - 560001",
		WorkingHours: hr.WorkingHours{
			Start:         "09:00",
			End:           "18:00",
			BreakDuration: 60,
		},
		Weekends:      []string{"Saturday", "Sunday"},
		LateThreshold: "09:30",
	}
	if err := st.Set(store.KeyCompanySettings, settings); err != nil {
		return fmt.Errorf("seed: persist company settings: %w", err)
	}

	holidays := []hr.Holiday{
		{ID: uuid.NewString(), Name: "New Year's Day", Date: "2026-01-01"},
		{ID: uuid.NewString(), Name: "Republic Day", Date: "2026-01-26"},
		{ID: uuid.NewString(), Name: "Independence Day", Date: "2026-08-15"},
		{ID: uuid.NewString(), Name: "Christmas", Date: "2026-12-25"},
	}
	if err := st.Set(store.KeyHolidays, holidays); err != nil {
		return fmt.Errorf("seed: persist holidays: %w", err)
	}

	logger.Info("demo data seeded", "users", len(users), "departments", len(departments))
	return nil
}

// demoUsers builds the seed accounts with freshly hashed passwords.
func demoUsers() ([]auth.User, error) {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return nil, fmt.Errorf("seed: hash admin password: %w", err)
	}
	employeeHash, err := auth.HashPassword("employee123")
	if err != nil {
		return nil, fmt.Errorf("seed: hash employee password: %w", err)
	}
	now := time.Now().UTC()

	return []auth.User{
		{
			ID:           uuid.NewString(),
			Email:        "admin@hrms.com",
			PasswordHash: adminHash,
			Role:         auth.RoleAdmin,
			Permissions:  []string{auth.PermissionAll},
			FirstName:    "Admin",
			LastName:     "User",
			Phone:        "9876543210",
			Department:   "Human Resources",
			Designation:  "HR Manager",
			DateOfBirth:  "1985-05-15",
			JoiningDate:  "2020-01-01",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Email:        "john.doe@hrms.com",
			PasswordHash: employeeHash,
			Role:         auth.RoleEmployee,
			Permissions:  []string{"attendance.view", "leave.request", "expense.submit"},
			FirstName:    "John",
			LastName:     "Doe",
			Phone:        "9876543211",
			Department:   "Engineering",
			Designation:  "Senior Software Engineer",
			DateOfBirth:  "1990-03-20",
			JoiningDate:  "2021-06-15",
			Skills:       []string{"JavaScript", "React", "Node.js"},
			Emergency: &auth.EmergencyContact{
				Name:         "Jane Doe",
				Relationship: "Spouse",
				Phone:        "9876543212",
			},
			Address: &auth.Address{
				Street:  "123 Main St",
				City:    "Mumbai",
				State:   "Maharashtra",
				Pincode: "400001",
			},
			Salary: &auth.Salary{
				Basic:     decimal.NewFromInt(50000),
				HRA:       decimal.NewFromInt(20000),
				Transport: decimal.NewFromInt(5000),
				Medical:   decimal.NewFromInt(3000),
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           uuid.NewString(),
			Email:        "sarah.smith@hrms.com",
			PasswordHash: employeeHash,
			Role:         auth.RoleManager,
			Permissions:  []string{"leave.approve", "expense.approve", "shift.assign"},
			FirstName:    "Sarah",
			LastName:     "Smith",
			Phone:        "9876543213",
			Department:   "Engineering",
			Designation:  "Engineering Manager",
			DateOfBirth:  "1988-07-12",
			JoiningDate:  "2020-03-10",
			Skills:       []string{"Leadership", "Project Management", "JavaScript"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Email:        "mike.wilson@hrms.com",
			PasswordHash: employeeHash,
			Role:         auth.RoleEmployee,
			Permissions:  []string{"attendance.view", "leave.request"},
			FirstName:    "Mike",
			LastName:     "Wilson",
			Phone:        "9876543215",
			Department:   "Marketing",
			Designation:  "Marketing Manager",
			DateOfBirth:  "1992-11-05",
			JoiningDate:  "2022-01-20",
			Skills:       []string{"Marketing Strategy", "Communication", "Data Analysis"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewString(),
			Email:        "emily.brown@hrms.com",
			PasswordHash: employeeHash,
			Role:         auth.RoleHR,
			Permissions:  []string{"directory.manage", "recruitment.manage", "training.manage"},
			FirstName:    "Emily",
			LastName:     "Brown",
			Phone:        "9876543216",
			Department:   "Human Resources",
			Designation:  "HR Executive",
			DateOfBirth:  "1989-02-28",
			JoiningDate:  "2021-09-01",
			Skills:       []string{"Data Analysis", "Problem Solving"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}, nil
}
