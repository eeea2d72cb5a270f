package auth

// The authorization evaluator. All functions are total: a nil identity, an
// unknown role, or a missing permission list means "access denied", never a
// panic or an error.

// HasRole returns true if the identity is authenticated and holds exactly
// the required role.
func HasRole(identity *Identity, required Role) bool {
	if identity == nil {
		return false
	}
	return identity.Role == required
}

// HasAnyRole returns true if the identity is authenticated and its role is
// one of the required roles. An empty set denies.
func HasAnyRole(identity *Identity, required ...Role) bool {
	if identity == nil {
		return false
	}
	for _, r := range required {
		if identity.Role == r {
			return true
		}
	}
	return false
}

// HasPermission returns true if the identity may exercise the capability.
// Admin bypasses all permission checks; everyone else needs the permission
// present in their permission list.
func HasPermission(identity *Identity, permission string) bool {
	if identity == nil {
		return false
	}
	if identity.Role == RoleAdmin {
		return true
	}
	for _, p := range identity.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
