// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account can have in the system.
type Role string

const (
	// RoleAdmin indicates an administrator role.
	RoleAdmin Role = "Admin"
	// RoleUser indicates a regular user role.
	RoleUser Role = "User"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller of an operation: the facts that
// end up as claims in a session token.
type Identity struct {
	Login string
	Role  Role
}

// IsAdmin reports whether the identity carries the administrator role.
func (id Identity) IsAdmin() bool {
	return id.Role == RoleAdmin
}
