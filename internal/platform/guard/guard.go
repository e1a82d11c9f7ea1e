// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guard authorizes a principal before a service touches any data.

Every mutating service method calls a guard as its first statement. A missing
session is Unauthorized; a session whose role fails the predicate is Forbidden.
*/
package guard

import (
	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/sec"
)

// Login requires a session and returns its user id.
func Login(principal sec.Principal) (string, error) {
	if !principal.LoggedIn() {
		return "", apperr.Unauthorized("Authentication required")
	}
	return principal.UserID, nil
}

// Require requires a session whose role satisfies pred.
func Require(principal sec.Principal, pred sec.Predicate, message string) (string, error) {
	userID, err := Login(principal)
	if err != nil {
		return "", err
	}
	if !pred(principal.Role) {
		return "", apperr.Forbidden(message)
	}
	return userID, nil
}

// Admin requires an ADMIN session.
func Admin(principal sec.Principal) (string, error) {
	return Require(principal, sec.IsAdmin, "Administrator role required")
}

// Writer requires an ADMIN or AUTH_USER session.
func Writer(principal sec.Principal) (string, error) {
	return Require(principal, sec.IsWriter, "Verified account required")
}

// OwnerOrAdmin requires the principal to be the owner of a resource or an admin.
func OwnerOrAdmin(principal sec.Principal, ownerID string) error {
	if _, err := Login(principal); err != nil {
		return err
	}
	if principal.Is(ownerID) || sec.IsAdmin(principal.Role) {
		return nil
	}
	return apperr.Forbidden("Only the author or an administrator may do this")
}
