// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role is the authorization state of an account. The set is closed and the
// numeric values are persisted in users.user_role.
type Role int

const (
	// No session.
	RoleGuest Role = 0

	// Registered user whose e-mail has been verified.
	RoleAuthUser Role = 1

	// Registered user who has not verified their e-mail yet.
	RoleUnauthUser Role = 2

	// Registered user barred by an administrator.
	RoleSuspensionUser Role = 3

	// Unrestricted system access.
	RoleAdmin Role = 9
)

// Predicate decides whether a role may perform an action.
type Predicate func(Role) bool

// # Role Predicates
//
// Roles are not ordered. Every check compares for equality so that a new role
// never silently gains access through a numeric comparison.

// IsAdmin reports whether r is ADMIN.
func IsAdmin(r Role) bool { return r == RoleAdmin }

// IsAuthenticated reports whether r is a verified user (AUTH_USER).
func IsAuthenticated(r Role) bool { return r == RoleAuthUser }

// IsSuspended reports whether r is SUSPENSION_USER.
func IsSuspended(r Role) bool { return r == RoleSuspensionUser }

// IsEmailUnverified reports whether r is UNAUTH_USER.
func IsEmailUnverified(r Role) bool { return r == RoleUnauthUser }

// IsGuest reports whether r is GUEST.
func IsGuest(r Role) bool { return r == RoleGuest }

// IsWriter reports whether r may author content: ADMIN or AUTH_USER.
func IsWriter(r Role) bool { return r == RoleAdmin || r == RoleAuthUser }

// IsValid reports whether r is a member of the closed role set.
func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleAuthUser, RoleUnauthUser, RoleSuspensionUser, RoleAdmin:
		return true
	}
	return false
}

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleAuthUser:
		return "AUTH_USER"
	case RoleUnauthUser:
		return "UNAUTH_USER"
	case RoleSuspensionUser:
		return "SUSPENSION_USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "GUEST"
	}
}
