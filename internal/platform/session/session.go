// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session keeps the server-side login state of nooblol users.

A session maps an opaque id (carried in the NOOBLOL_SESSION cookie) to the
user id and role captured at login. Every successful read extends the expiry
(sliding TTL). A per-user index lets administrative actions end every session
of a user at once.
*/
package session

import (
	"context"
	"errors"
	"time"

	"github.com/taibuivan/nooblol/internal/platform/sec"
)

// ErrNotFound is returned when the session id is unknown or expired.
var ErrNotFound = errors.New("session: not found")

// Session is the state stored for one login.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"userId"`
	Role      sec.Role  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Principal converts the session into the request principal.
func (s *Session) Principal() sec.Principal {
	return sec.Principal{UserID: s.UserID, Role: s.Role}
}

// Store defines the session persistence contract.
type Store interface {

	/*
		Create starts a new session for the user.

		Returns:
		  - *Session: The new session, including its generated id
		  - error: Storage failures
	*/
	Create(context context.Context, userID string, role sec.Role) (*Session, error)

	/*
		Get resolves a session id and extends its expiry.

		Returns:
		  - *Session: The stored session
		  - error: ErrNotFound when absent or expired, storage failures otherwise
	*/
	Get(context context.Context, id string) (*Session, error)

	// Delete ends one session. Deleting an unknown id is not an error.
	Delete(context context.Context, id string) error

	// DeleteUser ends every session of the user.
	DeleteUser(context context.Context, userID string) error
}
