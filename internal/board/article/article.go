// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package article implements board articles and their like/not-like votes.

# Permissions

  - Reading is public and increments the read count.
  - Writing requires an AUTH_USER or ADMIN session.
  - Updating and deleting require the author or an administrator.
  - Deleting removes the article together with its replies and votes.
*/
package article

import (
	"context"
	"time"
)

// # Status & Votes

// Status is the visibility of an article.
type Status int

const (
	StatusActive   Status = 1
	StatusInactive Status = 2
	StatusDelete   Status = 9
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive || s == StatusDelete
}

// VoteType is the kind of a vote row.
type VoteType int

const (
	VoteLike    VoteType = 1
	VoteNotLike VoteType = 2
)

// Permission levels reported with a single article.
const (
	AuthAdmin    = "ADMIN"
	AuthAuthor   = "AUTHOR"
	AuthAuthUser = "AUTH_USER"
	AuthGuest    = "GUEST"
)

// # Domain Entities

// Article is a post on a board.
type Article struct {
	ArticleID        int64     `json:"articleId"`
	BbsID            int64     `json:"bbsId"`
	ArticleTitle     string    `json:"articleTitle"`
	ArticleContent   string    `json:"articleContent"`
	ArticleReadCount int       `json:"articleReadCount"`
	Status           Status    `json:"status"`
	CreatedUserID    string    `json:"createdUserId"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedUserID    string    `json:"updatedUserId"`
	UpdatedAt        time.Time `json:"updatedAt"`

	// AuthMessage is set only on single-article reads.
	AuthMessage string `json:"authMessage,omitempty"`
}

// VoteCount is the like/not-like tally of an article.
type VoteCount struct {
	LikeCnt    int `json:"likeCnt"`
	NotLikeCnt int `json:"notLikeCnt"`
}

// # Inputs

// CreateInput is the payload for a new article. Status defaults to ACTIVE.
type CreateInput struct {
	BbsID          int64   `json:"bbsId"`
	ArticleTitle   string  `json:"articleTitle"`
	ArticleContent string  `json:"articleContent"`
	Status         *Status `json:"status"`
}

// UpdateInput changes an article. Absent fields keep their persisted value.
type UpdateInput struct {
	ArticleID      int64   `json:"articleId"`
	BbsID          *int64  `json:"bbsId"`
	ArticleTitle   string  `json:"articleTitle"`
	ArticleContent string  `json:"articleContent"`
	Status         *Status `json:"status"`
}

// Field identifiers and limits.
const (
	FieldArticleID      = "articleId"
	FieldBbsID          = "bbsId"
	FieldArticleTitle   = "articleTitle"
	FieldArticleContent = "articleContent"
	FieldStatus         = "status"

	MaxTitleLength = 100
)

// # Repository Contract

// Repository defines the persistence contract for articles and votes.
type Repository interface {

	/*
		FindByID retrieves one article.

		Returns:
		  - *Article: Loaded article
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, articleID int64) (*Article, error)

	// IncrementReadCount adds one to the read counter.
	IncrementReadCount(context context.Context, articleID int64) error

	// ListByBbs returns a page of non-deleted articles of a board, newest first.
	ListByBbs(context context.Context, bbsID int64, limit, offset int) ([]*Article, error)

	// Create inserts an article and fills its id.
	Create(context context.Context, article *Article) error

	// Update writes the mutable columns. It reports whether a row changed.
	Update(context context.Context, article *Article) (bool, error)

	// Delete removes an article with its replies and votes in one transaction.
	Delete(context context.Context, articleID int64) (bool, error)

	// FindVote returns the caller's vote. It reports false when there is none.
	FindVote(context context.Context, articleID int64, userID string) (VoteType, bool, error)

	// SaveVote inserts or replaces the caller's vote.
	SaveVote(context context.Context, articleID int64, userID string, vote VoteType) error

	// DeleteVote removes the caller's vote.
	DeleteVote(context context.Context, articleID int64, userID string) error

	// CountVotes tallies the votes of an article.
	CountVotes(context context.Context, articleID int64) (*VoteCount, error)
}
