// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/nooblol/internal/platform/dberr"
	"github.com/taibuivan/nooblol/internal/platform/postgres"
)

const replyColumns = `reply_id, article_id, reply_content, status, sort_no, created_user_id, created_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Postgres implementation for replies.
func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID retrieves an active reply.
func (repository *PostgresRepository) FindByID(context context.Context, replyID int64) (*Reply, error) {
	const query = `SELECT ` + replyColumns + ` FROM article_reply WHERE reply_id = $1 AND status <> $2`

	reply, err := scanReply(repository.db.QueryRow(context, query, replyID, int(StatusDelete)))
	if err != nil {
		return nil, dberr.Wrap(err, "Reply", "postgres_reply_repo_find_failed")
	}
	return reply, nil
}

// ListByArticle returns the active replies of an article.
func (repository *PostgresRepository) ListByArticle(context context.Context, articleID int64) ([]*Reply, error) {
	const query = `
		SELECT ` + replyColumns + ` FROM article_reply
		WHERE article_id = $1 AND status <> $2
		ORDER BY sort_no`

	rows, err := repository.db.Query(context, query, articleID, int(StatusDelete))
	if err != nil {
		return nil, dberr.Wrap(err, "Reply", "postgres_reply_repo_list_failed")
	}
	defer rows.Close()

	replies := []*Reply{}
	for rows.Next() {
		reply, err := scanReply(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_reply_repo_list_scan_failed: %w", err)
		}
		replies = append(replies, reply)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_reply_repo_list_rows_failed: %w", err)
	}
	return replies, nil
}

// Create inserts a reply with the next sort number of its article.
func (repository *PostgresRepository) Create(context context.Context, reply *Reply) error {
	const query = `
		INSERT INTO article_reply (article_id, reply_content, status, sort_no, created_user_id, created_at)
		SELECT $1::integer, $2::text, $3::smallint, COALESCE(MAX(sort_no), 0) + 1, $4::text, $5::timestamptz
		FROM article_reply
		WHERE article_id = $1
		RETURNING reply_id, sort_no`

	err := repository.db.QueryRow(context, query,
		reply.ArticleID,
		reply.ReplyContent,
		int(reply.Status),
		reply.CreatedUserID,
		reply.CreatedAt,
	).Scan(&reply.ReplyID, &reply.SortNo)
	if err != nil {
		return dberr.Wrap(err, "Reply", "postgres_reply_repo_create_failed")
	}
	return nil
}

// UpdateContent replaces the content of a reply.
func (repository *PostgresRepository) UpdateContent(context context.Context, replyID int64, content string) (bool, error) {
	const query = `UPDATE article_reply SET reply_content = $2 WHERE reply_id = $1`

	tag, err := repository.db.Exec(context, query, replyID, content)
	if err != nil {
		return false, dberr.Wrap(err, "Reply", "postgres_reply_repo_update_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus changes the status of a reply.
func (repository *PostgresRepository) UpdateStatus(context context.Context, replyID int64, status Status) (bool, error) {
	const query = `UPDATE article_reply SET status = $2 WHERE reply_id = $1`

	tag, err := repository.db.Exec(context, query, replyID, int(status))
	if err != nil {
		return false, dberr.Wrap(err, "Reply", "postgres_reply_repo_update_status_failed")
	}
	return tag.RowsAffected() > 0, nil
}

func scanReply(row pgx.Row) (*Reply, error) {
	reply := &Reply{}
	err := row.Scan(
		&reply.ReplyID,
		&reply.ArticleID,
		&reply.ReplyContent,
		&reply.Status,
		&reply.SortNo,
		&reply.CreatedUserID,
		&reply.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reply, nil
}
