// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user registration, login, profile updates and e-mail
verification.

# Lifecycle

  - Signup creates an UNAUTH_USER and mails a verification link.
  - Following the link promotes the account to AUTH_USER.
  - Login starts a session for AUTH_USER and ADMIN accounts only; suspended and
    unverified accounts get a sentinel result and no session.
  - Signout deletes the row and ends every session of the user.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/nooblol/internal/platform/sec"
)

// # Login Sentinels

// Results returned by login instead of a user object. No session is created.
const (
	LoginSuspended  = "SUSPENSION_USER"
	LoginUnverified = "UNAUTH_USER"
)

// # Domain Entities

// User is a registered account.
type User struct {
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	Password  string    `json:"-"`
	Level     int       `json:"level"`
	Exp       int       `json:"exp"`
	UserRole  sec.Role  `json:"userRole"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Profile is the public view of a user. It carries neither e-mail nor password.
type Profile struct {
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Level     int       `json:"level"`
	Exp       int       `json:"exp"`
	UserRole  sec.Role  `json:"userRole"`
	CreatedAt time.Time `json:"createdAt"`
}

// Profile returns the public view of the user.
func (user *User) Profile() *Profile {
	return &Profile{
		UserID:    user.UserID,
		UserName:  user.UserName,
		Level:     user.Level,
		Exp:       user.Exp,
		UserRole:  user.UserRole,
		CreatedAt: user.CreatedAt,
	}
}

// # Inputs

// SignUpInput is the registration payload. Admin accounts are created with the same shape.
type SignUpInput struct {
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	Password  string `json:"password"`
}

// LoginInput is the login payload.
type LoginInput struct {
	UserEmail    string `json:"userEmail"`
	UserPassword string `json:"userPassword"`
}

// UpdateInput changes the caller's name and/or password. Blank fields keep
// their persisted value.
type UpdateInput struct {
	NewUserName string `json:"newUserName"`
	OrgPassword string `json:"orgPassword"`
	NewPassword string `json:"newPassword"`
}

// SignOutInput deletes an account after a password check.
type SignOutInput struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// LoginResult is either a logged-in user with its session, or a sentinel.
type LoginResult struct {
	User      *User
	SessionID string
	Sentinel  string
}

// # Field Identifiers

const (
	FieldUserEmail   = "userEmail"
	FieldUserName    = "userName"
	FieldPassword    = "password"
	FieldNewPassword = "newPassword"
	FieldOrgPassword = "orgPassword"
	FieldUserID      = "userId"
	FieldToken       = "token"
)

// Validation limits.
const (
	MaxUserNameLength = 50
	MinPasswordLength = 6
)

// # Repository Contract

// Repository defines the persistence contract for user accounts.
type Repository interface {

	/*
		FindByID retrieves a user by id.

		Returns:
		  - *User: Loaded account
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, userID string) (*User, error)

	/*
		FindByEmail retrieves a user by e-mail address.

		Returns:
		  - *User: Loaded account
		  - error: apperr.NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	// Create inserts a new user. A duplicate e-mail yields apperr.Conflict.
	Create(context context.Context, user *User) error

	// UpdateProfile writes name, password and updated_at. It reports whether a row changed.
	UpdateProfile(context context.Context, user *User) (bool, error)

	// UpdateRole changes the role of a user. It reports whether a row changed.
	UpdateRole(context context.Context, userID string, role sec.Role) (bool, error)

	// Delete removes a user row. It reports whether a row was deleted.
	Delete(context context.Context, userID string) (bool, error)

	// List returns users ordered by creation, newest first.
	List(context context.Context, limit, offset int) ([]*User, error)
}
