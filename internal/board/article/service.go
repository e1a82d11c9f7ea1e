// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/nooblol/internal/board/category"
	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/validate"
	"github.com/taibuivan/nooblol/pkg/pagination"
	"github.com/taibuivan/nooblol/pkg/pointer"
)

// BoardFinder resolves the parent board of an article.
type BoardFinder interface {
	FindBbs(context context.Context, bbsID int64) (*category.Bbs, error)
}

// Service handles article reads, writes and votes.
type Service struct {
	repository Repository
	boards     BoardFinder
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new article [Service].
func NewService(repository Repository, boards BoardFinder, logger *slog.Logger) *Service {
	return &Service{repository: repository, boards: boards, logger: logger, now: time.Now}
}

// # Reads

/*
Get returns an article, counts the read and reports the caller's permission level.

Returns:
  - *Article: The article with AuthMessage set
  - error: apperr.NotFound
*/
func (service *Service) Get(context context.Context, principal sec.Principal, articleID int64) (*Article, error) {
	article, err := service.repository.FindByID(context, articleID)
	if err != nil {
		return nil, fmt.Errorf("article_service_get_failed: %w", err)
	}

	if err := service.repository.IncrementReadCount(context, articleID); err != nil {
		return nil, fmt.Errorf("article_service_read_count_failed: %w", err)
	}
	article.ArticleReadCount++

	article.AuthMessage = AuthMessage(principal, article.CreatedUserID)
	return article, nil
}

// AuthMessage reports what the principal may do with an article written by authorID.
func AuthMessage(principal sec.Principal, authorID string) string {
	if !principal.LoggedIn() {
		return AuthGuest
	}
	if sec.IsAdmin(principal.Role) {
		return AuthAdmin
	}
	if principal.Is(authorID) {
		return AuthAuthor
	}
	if sec.IsAuthenticated(principal.Role) {
		return AuthAuthUser
	}
	return AuthGuest
}

// Find returns an article without counting a read.
func (service *Service) Find(context context.Context, articleID int64) (*Article, error) {
	article, err := service.repository.FindByID(context, articleID)
	if err != nil {
		return nil, fmt.Errorf("article_service_find_failed: %w", err)
	}
	return article, nil
}

// List returns a page of a board's articles.
func (service *Service) List(context context.Context, bbsID int64, page pagination.Params) ([]*Article, error) {
	articles, err := service.repository.ListByBbs(context, bbsID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("article_service_list_failed: %w", err)
	}
	return articles, nil
}

// # Writes

/*
Create inserts an article on an existing board.

Returns:
  - bool: true on success
  - error: Unauthorized/Forbidden for non-writers, BadRequest, NotFound for an unknown board
*/
func (service *Service) Create(context context.Context, principal sec.Principal, input CreateInput) (bool, error) {
	userID, err := guard.Writer(principal)
	if err != nil {
		return false, err
	}

	status := pointer.Fallback(input.Status, StatusActive)
	validator := &validate.Validator{}
	validator.
		Positive(FieldBbsID, input.BbsID).
		Required(FieldArticleTitle, input.ArticleTitle).
		MaxLen(FieldArticleTitle, input.ArticleTitle, MaxTitleLength).
		Required(FieldArticleContent, input.ArticleContent).
		Custom(FieldStatus, !status.IsValid(), "Unknown status")
	if err := validator.Err(); err != nil {
		return false, err
	}

	if _, err := service.boards.FindBbs(context, input.BbsID); err != nil {
		return false, fmt.Errorf("article_service_board_lookup_failed: %w", err)
	}

	currentTime := service.now().UTC()
	article := &Article{
		BbsID:          input.BbsID,
		ArticleTitle:   strings.TrimSpace(input.ArticleTitle),
		ArticleContent: input.ArticleContent,
		Status:         status,
		CreatedUserID:  userID,
		CreatedAt:      currentTime,
		UpdatedUserID:  userID,
		UpdatedAt:      currentTime,
	}
	if err := service.repository.Create(context, article); err != nil {
		return false, fmt.Errorf("article_service_create_failed: %w", err)
	}

	service.logger.Info("article_created", slog.Int64("article_id", article.ArticleID), slog.String("user_id", userID))
	return true, nil
}

/*
Update changes an article.

Description: Checks run in order NotFound, then Forbidden unless the caller is
the author or an administrator. Blank fields keep the persisted value and a
request that changes nothing is rejected.
*/
func (service *Service) Update(context context.Context, principal sec.Principal, input UpdateInput) (bool, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return false, err
	}

	validator := &validate.Validator{}
	validator.
		Positive(FieldArticleID, input.ArticleID).
		MaxLen(FieldArticleTitle, input.ArticleTitle, MaxTitleLength)
	if input.Status != nil {
		validator.Custom(FieldStatus, !input.Status.IsValid(), "Unknown status")
	}
	if input.BbsID != nil {
		validator.Positive(FieldBbsID, *input.BbsID)
	}
	if err := validator.Err(); err != nil {
		return false, err
	}

	stored, err := service.repository.FindByID(context, input.ArticleID)
	if err != nil {
		return false, fmt.Errorf("article_service_update_lookup_failed: %w", err)
	}

	if err := guard.OwnerOrAdmin(principal, stored.CreatedUserID); err != nil {
		return false, err
	}

	candidate := *stored
	candidate.BbsID = pointer.Fallback(input.BbsID, stored.BbsID)
	candidate.ArticleTitle = pointer.Text(strings.TrimSpace(input.ArticleTitle), stored.ArticleTitle)
	candidate.ArticleContent = pointer.Text(input.ArticleContent, stored.ArticleContent)
	candidate.Status = pointer.Fallback(input.Status, stored.Status)

	if candidate.BbsID == stored.BbsID &&
		candidate.ArticleTitle == stored.ArticleTitle &&
		candidate.ArticleContent == stored.ArticleContent &&
		candidate.Status == stored.Status {
		return false, apperr.ErrNothingToUpdate
	}

	if candidate.BbsID != stored.BbsID {
		if _, err := service.boards.FindBbs(context, candidate.BbsID); err != nil {
			return false, fmt.Errorf("article_service_board_lookup_failed: %w", err)
		}
	}

	candidate.UpdatedUserID = userID
	candidate.UpdatedAt = service.now().UTC()

	updated, err := service.repository.Update(context, &candidate)
	if err != nil {
		return false, fmt.Errorf("article_service_update_failed: %w", err)
	}
	return updated, nil
}

// Delete removes an article with its replies and votes. Only the author or an administrator may delete.
func (service *Service) Delete(context context.Context, principal sec.Principal, articleID int64) (bool, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return false, err
	}

	stored, err := service.repository.FindByID(context, articleID)
	if err != nil {
		return false, fmt.Errorf("article_service_delete_lookup_failed: %w", err)
	}

	if err := guard.OwnerOrAdmin(principal, stored.CreatedUserID); err != nil {
		return false, err
	}

	deleted, err := service.repository.Delete(context, articleID)
	if err != nil {
		return false, fmt.Errorf("article_service_delete_failed: %w", err)
	}

	service.logger.Warn("article_deleted", slog.Int64("article_id", articleID), slog.String("user_id", userID))
	return deleted, nil
}

// # Votes

// Votes returns the like/not-like tally of an existing article.
func (service *Service) Votes(context context.Context, articleID int64) (*VoteCount, error) {
	if _, err := service.repository.FindByID(context, articleID); err != nil {
		return nil, fmt.Errorf("article_service_votes_lookup_failed: %w", err)
	}

	count, err := service.repository.CountVotes(context, articleID)
	if err != nil {
		return nil, fmt.Errorf("article_service_votes_failed: %w", err)
	}
	return count, nil
}

/*
Vote toggles the caller's vote.

Description: No prior vote inserts one, the same vote again removes it, and
the opposite vote replaces it.
*/
func (service *Service) Vote(context context.Context, principal sec.Principal, articleID int64, vote VoteType) (bool, error) {
	userID, err := guard.Writer(principal)
	if err != nil {
		return false, err
	}

	if _, err := service.repository.FindByID(context, articleID); err != nil {
		return false, fmt.Errorf("article_service_vote_lookup_failed: %w", err)
	}

	current, found, err := service.repository.FindVote(context, articleID, userID)
	if err != nil {
		return false, fmt.Errorf("article_service_vote_read_failed: %w", err)
	}

	if found && current == vote {
		err = service.repository.DeleteVote(context, articleID, userID)
	} else {
		err = service.repository.SaveVote(context, articleID, userID, vote)
	}
	if err != nil {
		return false, fmt.Errorf("article_service_vote_write_failed: %w", err)
	}
	return true, nil
}
