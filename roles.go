package classroom

// UserRole is the account's role label. Accounts may hold no role at all;
// role-gated routes reject those with a distinct error.
type UserRole = string

const (
	// RoleStudent can read published content
	RoleStudent UserRole = "student"
	// RoleStaff can author and edit content
	RoleStaff UserRole = "staff"
	// RoleAdmin can manage accounts
	RoleAdmin UserRole = "admin"
)

// IsValidRole checks a role label supplied at registration or through a
// profile update. The empty string is allowed: it means no role yet.
func IsValidRole(r UserRole) bool {
	switch r {
	case "", RoleStudent, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}
