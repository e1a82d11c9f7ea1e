// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package reply implements comments on board articles.
package reply

import (
	"context"
	"time"
)

// Status is the visibility of a reply.
type Status int

const (
	StatusActive Status = 1
	StatusDelete Status = 9
)

// Reply is a comment on an article. SortNo orders replies within an article.
type Reply struct {
	ReplyID       int64     `json:"replyId"`
	ArticleID     int64     `json:"articleId"`
	ReplyContent  string    `json:"replyContent"`
	Status        Status    `json:"status"`
	SortNo        int       `json:"sortNo"`
	CreatedUserID string    `json:"createdUserId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateInput adds a reply to an article.
type CreateInput struct {
	ArticleID    int64  `json:"articleId"`
	ReplyContent string `json:"replyContent"`
}

// UpdateInput replaces the content of a reply.
type UpdateInput struct {
	ReplyID      int64  `json:"replyId"`
	ReplyContent string `json:"replyContent"`
}

const (
	FieldArticleID    = "articleId"
	FieldReplyID      = "replyId"
	FieldReplyContent = "replyContent"

	MaxContentLength = 1000
)

// Repository defines the persistence contract for replies.
type Repository interface {

	/*
		FindByID retrieves an active reply.

		Returns:
		  - *Reply: Loaded reply
		  - error: apperr.NotFound when absent or deleted, storage failures otherwise
	*/
	FindByID(context context.Context, replyID int64) (*Reply, error)

	// ListByArticle returns the active replies of an article ordered by SortNo.
	ListByArticle(context context.Context, articleID int64) ([]*Reply, error)

	// Create inserts a reply with the next SortNo of its article and fills id and SortNo.
	Create(context context.Context, reply *Reply) error

	// UpdateContent replaces the content. It reports whether a row changed.
	UpdateContent(context context.Context, replyID int64, content string) (bool, error)

	// UpdateStatus changes the status. It reports whether a row changed.
	UpdateStatus(context context.Context, replyID int64, status Status) (bool, error)
}
