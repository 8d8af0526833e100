package classroom

// Authorize gates a resolved principal against an explicit set of allowed
// roles. It is a pure function of its inputs: ErrNoRole when the account
// has no role at all, ErrForbidden when its role is not in the set. The
// role-absent check runs first so the two denials stay distinguishable.
func Authorize(principal *User, allowedRoles ...UserRole) error {
	if principal == nil {
		return ErrUnknownPrincipal
	}

	if principal.Role == "" {
		return ErrNoRole
	}

	for _, role := range allowedRoles {
		if principal.Role == role {
			return nil
		}
	}

	return ErrForbidden
}
