// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an end-user can have in the system.
// Shops carry no role; their identity alone grants shop-scoped access.
type Role string

const (
	// RoleAdmin indicates an administrative user role.
	RoleAdmin Role = "admin"
	// RoleUser indicates a regular end-user role.
	RoleUser Role = "user"
	// RoleNone is the default: a user without any assigned role.
	RoleNone Role = ""
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser, RoleNone:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
