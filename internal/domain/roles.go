package domain

type Role string

const (
	// User can manage only their own tasks.
	RoleUser Role = "user"
	// Admin additionally gets single-task access to any user's tasks by id.
	RoleAdmin Role = "admin"
)

func IsValidRole(r string) bool {
	return r == string(RoleUser) || r == string(RoleAdmin)
}

// NormalizeRequestedRole maps the caller-supplied role at registration.
// Only the literal "admin" elevates; anything else becomes "user".
// Registration performs no authorization on this elevation.
func NormalizeRequestedRole(requested string) string {
	if requested == string(RoleAdmin) {
		return string(RoleAdmin)
	}
	return string(RoleUser)
}
