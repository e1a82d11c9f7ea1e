// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/nooblol/internal/board/article"
	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/validate"
)

// ArticleFinder checks that the parent article exists.
type ArticleFinder interface {
	Find(context context.Context, articleID int64) (*article.Article, error)
}

// Service handles reply reads and writes.
type Service struct {
	repository Repository
	articles   ArticleFinder
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new reply [Service].
func NewService(repository Repository, articles ArticleFinder, logger *slog.Logger) *Service {
	return &Service{repository: repository, articles: articles, logger: logger, now: time.Now}
}

// Get returns one reply.
func (service *Service) Get(context context.Context, replyID int64) (*Reply, error) {
	reply, err := service.repository.FindByID(context, replyID)
	if err != nil {
		return nil, fmt.Errorf("reply_service_get_failed: %w", err)
	}
	return reply, nil
}

// List returns the replies of an existing article.
func (service *Service) List(context context.Context, articleID int64) ([]*Reply, error) {
	if _, err := service.articles.Find(context, articleID); err != nil {
		return nil, fmt.Errorf("reply_service_list_article_lookup_failed: %w", err)
	}

	replies, err := service.repository.ListByArticle(context, articleID)
	if err != nil {
		return nil, fmt.Errorf("reply_service_list_failed: %w", err)
	}
	return replies, nil
}

/*
Create adds a reply at the end of an article's thread.

Returns:
  - bool: true on success
  - error: Unauthorized/Forbidden for non-writers, BadRequest, NotFound for an unknown article
*/
func (service *Service) Create(context context.Context, principal sec.Principal, input CreateInput) (bool, error) {
	userID, err := guard.Writer(principal)
	if err != nil {
		return false, err
	}

	validator := &validate.Validator{}
	validator.
		Positive(FieldArticleID, input.ArticleID).
		Required(FieldReplyContent, input.ReplyContent).
		MaxLen(FieldReplyContent, input.ReplyContent, MaxContentLength)
	if err := validator.Err(); err != nil {
		return false, err
	}

	if _, err := service.articles.Find(context, input.ArticleID); err != nil {
		return false, fmt.Errorf("reply_service_article_lookup_failed: %w", err)
	}

	reply := &Reply{
		ArticleID:     input.ArticleID,
		ReplyContent:  input.ReplyContent,
		Status:        StatusActive,
		CreatedUserID: userID,
		CreatedAt:     service.now().UTC(),
	}
	if err := service.repository.Create(context, reply); err != nil {
		return false, fmt.Errorf("reply_service_create_failed: %w", err)
	}

	service.logger.Info("reply_created",
		slog.Int64("reply_id", reply.ReplyID),
		slog.Int64("article_id", reply.ArticleID),
		slog.Int("sort_no", reply.SortNo),
	)
	return true, nil
}

// Update replaces a reply's content. Only the author or an administrator may update.
func (service *Service) Update(context context.Context, principal sec.Principal, input UpdateInput) (bool, error) {
	if _, err := guard.Login(principal); err != nil {
		return false, err
	}

	validator := &validate.Validator{}
	validator.
		Positive(FieldReplyID, input.ReplyID).
		Required(FieldReplyContent, input.ReplyContent).
		MaxLen(FieldReplyContent, input.ReplyContent, MaxContentLength)
	if err := validator.Err(); err != nil {
		return false, err
	}

	stored, err := service.repository.FindByID(context, input.ReplyID)
	if err != nil {
		return false, fmt.Errorf("reply_service_update_lookup_failed: %w", err)
	}

	if err := guard.OwnerOrAdmin(principal, stored.CreatedUserID); err != nil {
		return false, err
	}

	if stored.ReplyContent == input.ReplyContent {
		return false, apperr.ErrNothingToUpdate
	}

	updated, err := service.repository.UpdateContent(context, stored.ReplyID, input.ReplyContent)
	if err != nil {
		return false, fmt.Errorf("reply_service_update_failed: %w", err)
	}
	return updated, nil
}

// Delete marks a reply as deleted. Only the author or an administrator may delete.
func (service *Service) Delete(context context.Context, principal sec.Principal, replyID int64) (bool, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return false, err
	}

	stored, err := service.repository.FindByID(context, replyID)
	if err != nil {
		return false, fmt.Errorf("reply_service_delete_lookup_failed: %w", err)
	}

	if err := guard.OwnerOrAdmin(principal, stored.CreatedUserID); err != nil {
		return false, err
	}

	deleted, err := service.repository.UpdateStatus(context, replyID, StatusDelete)
	if err != nil {
		return false, fmt.Errorf("reply_service_delete_failed: %w", err)
	}

	service.logger.Info("reply_deleted", slog.Int64("reply_id", replyID), slog.String("user_id", userID))
	return deleted, nil
}
