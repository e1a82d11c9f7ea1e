// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Principal is the identity of the caller of a single request.
//
// It is resolved once by the session middleware and passed explicitly into
// every service call. The zero value is the anonymous guest.
type Principal struct {
	UserID string
	Role   Role
}

// Anonymous returns the principal of a request without a session.
func Anonymous() Principal {
	return Principal{Role: RoleGuest}
}

// LoggedIn reports whether the principal carries a user id.
func (p Principal) LoggedIn() bool {
	return p.UserID != ""
}

// Is reports whether the principal is the given user.
func (p Principal) Is(userID string) bool {
	return p.LoggedIn() && p.UserID == userID
}
