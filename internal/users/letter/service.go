// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package letter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/validate"
	"github.com/taibuivan/nooblol/internal/users/account"
	"github.com/taibuivan/nooblol/pkg/pagination"
)

// UserFinder resolves recipients.
type UserFinder interface {
	FindByID(context context.Context, userID string) (*account.User, error)
}

// Service handles reading, listing, sending and deleting letters.
type Service struct {
	repository Repository
	users      UserFinder
	logger     *slog.Logger
}

// NewService constructs a new letter [Service].
func NewService(repository Repository, users UserFinder, logger *slog.Logger) *Service {
	return &Service{repository: repository, users: users, logger: logger}
}

/*
Get returns one letter to its sender or recipient.

Description: The recipient's first read of an UNREAD letter marks it READ and
the returned letter reflects that. A copy deleted on the caller's side is
reported as missing.

Returns:
  - *Letter: The letter
  - error: NotFound, Forbidden for third parties, Unauthorized without a session
*/
func (service *Service) Get(context context.Context, principal sec.Principal, letterID int64) (*Letter, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return nil, err
	}

	letter, err := service.repository.FindByID(context, letterID)
	if err != nil {
		return nil, fmt.Errorf("letter_service_get_failed: %w", err)
	}

	var side Side
	switch userID {
	case letter.ToUserID:
		side = SideTo
	case letter.FromUserID:
		side = SideFrom
	default:
		return nil, apperr.Forbidden("Only the sender or recipient may read this letter")
	}

	if letter.StatusOf(side) == StatusDelete {
		return nil, apperr.NotFound("Letter")
	}

	if side == SideTo && letter.ToStatus == StatusUnread {
		if _, err := service.repository.UpdateStatus(context, SideTo, letter.LetterID, userID, StatusRead); err != nil {
			return nil, fmt.Errorf("letter_service_mark_read_failed: %w", err)
		}
		letter.ToStatus = StatusRead
	}

	return letter, nil
}

// List returns the caller's letters on one side.
func (service *Service) List(context context.Context, principal sec.Principal, side Side, page pagination.Params) ([]*Letter, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return nil, err
	}

	letters, err := service.repository.List(context, side, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("letter_service_list_failed: %w", err)
	}
	return letters, nil
}

/*
Send delivers a new letter.

Returns:
  - bool: true on success
  - error: BadRequest for self-sends or invalid input, NotFound for an unknown recipient
*/
func (service *Service) Send(context context.Context, principal sec.Principal, input SendInput) (bool, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return false, err
	}

	validator := &validate.Validator{}
	validator.
		Required(FieldToUserID, input.ToUserID).
		Required(FieldLetterTitle, input.LetterTitle).
		MaxLen(FieldLetterTitle, input.LetterTitle, MaxTitleLength).
		Required(FieldLetterContent, input.LetterContent).
		Custom(FieldToUserID, input.ToUserID == userID, "Cannot send a letter to yourself")
	if err := validator.Err(); err != nil {
		return false, err
	}

	if _, err := service.users.FindByID(context, input.ToUserID); err != nil {
		return false, fmt.Errorf("letter_service_recipient_lookup_failed: %w", err)
	}

	letter := &Letter{
		LetterTitle:   input.LetterTitle,
		LetterContent: input.LetterContent,
		ToUserID:      input.ToUserID,
		ToStatus:      StatusUnread,
		FromUserID:    userID,
		FromStatus:    StatusRead,
	}
	if err := service.repository.Create(context, letter); err != nil {
		return false, fmt.Errorf("letter_service_send_failed: %w", err)
	}

	service.logger.Info("letter_sent",
		slog.Int64("letter_id", letter.LetterID),
		slog.String("from_user_id", userID),
	)
	return true, nil
}

/*
Delete removes the caller's copy on one side.

Returns false when the letter does not exist or the caller is not that side's user.
*/
func (service *Service) Delete(context context.Context, principal sec.Principal, side Side, letterID int64) (bool, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return false, err
	}

	deleted, err := service.repository.UpdateStatus(context, side, letterID, userID, StatusDelete)
	if err != nil {
		return false, fmt.Errorf("letter_service_delete_failed: %w", err)
	}
	return deleted, nil
}
