package auth

import "testing"

func employeeIdentity() *Identity {
	return &Identity{
		ID:          "u-1",
		Email:       "john.doe@hrms.com",
		FirstName:   "John",
		LastName:    "Doe",
		Role:        RoleEmployee,
		Permissions: []string{"attendance.view", "leave.request"},
	}
}

// ---------------------------------------------------------------------------
// HasRole / HasAnyRole
// ---------------------------------------------------------------------------

func TestHasRole_NilIdentityDenied(t *testing.T) {
	for _, r := range Roles() {
		if HasRole(nil, r) {
			t.Errorf("HasRole(nil, %q) = true, want false", r)
		}
	}
	if HasAnyRole(nil, RoleAdmin, RoleManager) {
		t.Error("HasAnyRole(nil, ...) = true, want false")
	}
}

func TestHasRole_ExactMatchOnly(t *testing.T) {
	id := employeeIdentity()

	if !HasRole(id, RoleEmployee) {
		t.Error("expected employee role to match")
	}
	for _, r := range []Role{RoleAdmin, RoleManager, RoleHR} {
		if HasRole(id, r) {
			t.Errorf("HasRole(employee, %q) = true, want false", r)
		}
	}
}

func TestHasAnyRole_SetMembership(t *testing.T) {
	id := employeeIdentity()

	if HasAnyRole(id, RoleAdmin, RoleManager) {
		t.Error("employee should not match {admin, manager}")
	}
	if !HasAnyRole(id, RoleManager, RoleEmployee) {
		t.Error("employee should match {manager, employee}")
	}
	if HasAnyRole(id) {
		t.Error("empty role set should deny")
	}
}

// ---------------------------------------------------------------------------
// HasPermission
// ---------------------------------------------------------------------------

func TestHasPermission_AdminBypassesAll(t *testing.T) {
	admin := &Identity{ID: "a-1", Role: RoleAdmin}

	for _, perm := range []string{"anything", "settings.write", "never-granted"} {
		if !HasPermission(admin, perm) {
			t.Errorf("admin denied %q, want allowed", perm)
		}
	}
}

func TestHasPermission_NonAdminNeedsGrant(t *testing.T) {
	id := employeeIdentity()

	if !HasPermission(id, "leave.request") {
		t.Error("granted permission denied")
	}
	if HasPermission(id, "settings.write") {
		t.Error("ungranted permission allowed")
	}
}

func TestHasPermission_TotalOnMissingData(t *testing.T) {
	if HasPermission(nil, "anything") {
		t.Error("nil identity should be denied")
	}

	noPerms := &Identity{ID: "u-2", Role: RoleManager} // nil permission list
	if HasPermission(noPerms, "leave.approve") {
		t.Error("nil permission list should deny, not error")
	}
}

// ---------------------------------------------------------------------------
// Role enum
// ---------------------------------------------------------------------------

func TestRole_IsValid(t *testing.T) {
	for _, r := range Roles() {
		if !r.IsValid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	for _, r := range []Role{"", "superuser", "Admin"} {
		if r.IsValid() {
			t.Errorf("role %q should be invalid", r)
		}
	}
}
