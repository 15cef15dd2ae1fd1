// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to a console account.
type UserRole string

const (
	// Full access, including settings changes
	RoleAdmin UserRole = "admin"

	// Uploads and reports for the vividh kshetra organisations
	RoleVividhKshetra UserRole = "vividhkshetra"

	// Default role for prant-level operators
	RoleUser UserRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	return r.level() > 0
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleVividhKshetra:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
