// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package letter implements private messages between members.

Each letter has two independent status columns, one per side. The recipient
side moves UNREAD -> READ on first read; either side can delete its copy
without affecting the other.
*/
package letter

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/nooblol/internal/platform/validate"
)

// # Status & Side

// Status is the per-side state of a letter.
type Status int

const (
	StatusUnread Status = 1
	StatusRead   Status = 2
	StatusDelete Status = 9
)

// Side selects the recipient ("to") or sender ("from") copy of a letter.
type Side string

const (
	SideTo   Side = "to"
	SideFrom Side = "from"
)

// ParseSide reads a side from a path segment, ignoring case.
func ParseSide(raw string) (Side, error) {
	side := strings.ToLower(strings.TrimSpace(raw))

	validator := &validate.Validator{}
	validator.OneOf(FieldType, side, string(SideTo), string(SideFrom))
	if err := validator.Err(); err != nil {
		return "", err
	}
	return Side(side), nil
}

// # Domain Entities

// Letter is a private message.
type Letter struct {
	LetterID      int64     `json:"letterId"`
	LetterTitle   string    `json:"letterTitle"`
	LetterContent string    `json:"letterContent"`
	ToUserID      string    `json:"toUserId"`
	ToStatus      Status    `json:"toStatus"`
	FromUserID    string    `json:"fromUserId"`
	FromStatus    Status    `json:"fromStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StatusOf returns the status of the given side.
func (letter *Letter) StatusOf(side Side) Status {
	if side == SideTo {
		return letter.ToStatus
	}
	return letter.FromStatus
}

// SendInput is the payload for sending a letter.
type SendInput struct {
	ToUserID      string `json:"toUserId"`
	LetterTitle   string `json:"letterTitle"`
	LetterContent string `json:"letterContent"`
}

// Field identifiers and limits.
const (
	FieldToUserID      = "toUserId"
	FieldLetterTitle   = "letterTitle"
	FieldLetterContent = "letterContent"
	FieldLetterID      = "letterId"
	FieldType          = "type"

	MaxTitleLength = 100
)

// # Repository Contract

// Repository defines the persistence contract for letters.
type Repository interface {

	/*
		FindByID retrieves one letter regardless of its status.

		Returns:
		  - *Letter: Loaded letter
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, letterID int64) (*Letter, error)

	/*
		List returns the letters on one side of a user, newest first, excluding
		copies deleted on that side.
	*/
	List(context context.Context, side Side, userID string, limit, offset int) ([]*Letter, error)

	// Create inserts a letter and fills its id and creation time.
	Create(context context.Context, letter *Letter) error

	// UpdateStatus sets the status of one side, matched by letter id and that side's user id.
	UpdateStatus(context context.Context, side Side, letterID int64, userID string, status Status) (bool, error)
}
