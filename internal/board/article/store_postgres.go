// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/nooblol/internal/platform/dberr"
	"github.com/taibuivan/nooblol/internal/platform/postgres"
)

const articleColumns = `article_id, bbs_id, article_title, article_content, article_read_count, status,
	created_user_id, created_at, updated_user_id, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Postgres implementation for articles.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Articles

// FindByID retrieves one article.
func (repository *PostgresRepository) FindByID(context context.Context, articleID int64) (*Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM article WHERE article_id = $1`

	article, err := scanArticle(repository.pool.QueryRow(context, query, articleID))
	if err != nil {
		return nil, dberr.Wrap(err, "Article", "postgres_article_repo_find_failed")
	}
	return article, nil
}

// IncrementReadCount adds one to the read counter in a single statement.
func (repository *PostgresRepository) IncrementReadCount(context context.Context, articleID int64) error {
	const query = `UPDATE article SET article_read_count = article_read_count + 1 WHERE article_id = $1`

	if _, err := repository.pool.Exec(context, query, articleID); err != nil {
		return dberr.Wrap(err, "Article", "postgres_article_repo_read_count_failed")
	}
	return nil
}

// ListByBbs returns a page of a board's articles.
func (repository *PostgresRepository) ListByBbs(context context.Context, bbsID int64, limit, offset int) ([]*Article, error) {
	const query = `
		SELECT ` + articleColumns + ` FROM article
		WHERE bbs_id = $1 AND status <> $2
		ORDER BY article_id DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(context, query, bbsID, int(StatusDelete), limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Article", "postgres_article_repo_list_failed")
	}
	defer rows.Close()

	articles := []*Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_article_repo_list_scan_failed: %w", err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_article_repo_list_rows_failed: %w", err)
	}
	return articles, nil
}

// Create inserts an article.
func (repository *PostgresRepository) Create(context context.Context, article *Article) error {
	const query = `
		INSERT INTO article (bbs_id, article_title, article_content, status,
			created_user_id, created_at, updated_user_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING article_id`

	err := repository.pool.QueryRow(context, query,
		article.BbsID,
		article.ArticleTitle,
		article.ArticleContent,
		int(article.Status),
		article.CreatedUserID,
		article.CreatedAt,
		article.UpdatedUserID,
		article.UpdatedAt,
	).Scan(&article.ArticleID)
	if err != nil {
		return dberr.Wrap(err, "Article", "postgres_article_repo_create_failed")
	}
	return nil
}

// Update writes the mutable columns of an article.
func (repository *PostgresRepository) Update(context context.Context, article *Article) (bool, error) {
	const query = `
		UPDATE article
		SET bbs_id = $2, article_title = $3, article_content = $4, status = $5,
			updated_user_id = $6, updated_at = $7
		WHERE article_id = $1`

	tag, err := repository.pool.Exec(context, query,
		article.ArticleID,
		article.BbsID,
		article.ArticleTitle,
		article.ArticleContent,
		int(article.Status),
		article.UpdatedUserID,
		article.UpdatedAt,
	)
	if err != nil {
		return false, dberr.Wrap(err, "Article", "postgres_article_repo_update_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes the article, its replies and its votes atomically.
func (repository *PostgresRepository) Delete(context context.Context, articleID int64) (bool, error) {
	var deleted bool

	err := postgres.WithTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, `DELETE FROM article_reply WHERE article_id = $1`, articleID); err != nil {
			return fmt.Errorf("delete replies: %w", err)
		}
		if _, err := tx.Exec(context, `DELETE FROM article_status WHERE article_id = $1`, articleID); err != nil {
			return fmt.Errorf("delete votes: %w", err)
		}

		tag, err := tx.Exec(context, `DELETE FROM article WHERE article_id = $1`, articleID)
		if err != nil {
			return fmt.Errorf("delete article: %w", err)
		}
		deleted = tag.RowsAffected() > 0
		return nil
	})
	if err != nil {
		return false, dberr.Wrap(err, "Article", "postgres_article_repo_delete_failed")
	}
	return deleted, nil
}

// # Votes

// FindVote returns the caller's vote on an article.
func (repository *PostgresRepository) FindVote(context context.Context, articleID int64, userID string) (VoteType, bool, error) {
	const query = `SELECT type FROM article_status WHERE article_id = $1 AND user_id = $2`

	var vote VoteType
	err := repository.pool.QueryRow(context, query, articleID, userID).Scan(&vote)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, dberr.Wrap(err, "Vote", "postgres_article_repo_find_vote_failed")
	}
	return vote, true, nil
}

// SaveVote inserts or replaces the caller's vote.
func (repository *PostgresRepository) SaveVote(context context.Context, articleID int64, userID string, vote VoteType) error {
	const query = `
		INSERT INTO article_status (article_id, user_id, type, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (article_id, user_id)
		DO UPDATE SET type = EXCLUDED.type, created_at = EXCLUDED.created_at`

	if _, err := repository.pool.Exec(context, query, articleID, userID, int(vote)); err != nil {
		return dberr.Wrap(err, "Vote", "postgres_article_repo_save_vote_failed")
	}
	return nil
}

// DeleteVote removes the caller's vote.
func (repository *PostgresRepository) DeleteVote(context context.Context, articleID int64, userID string) error {
	const query = `DELETE FROM article_status WHERE article_id = $1 AND user_id = $2`

	if _, err := repository.pool.Exec(context, query, articleID, userID); err != nil {
		return dberr.Wrap(err, "Vote", "postgres_article_repo_delete_vote_failed")
	}
	return nil
}

// CountVotes tallies likes and not-likes.
func (repository *PostgresRepository) CountVotes(context context.Context, articleID int64) (*VoteCount, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE type = $2),
			COUNT(*) FILTER (WHERE type = $3)
		FROM article_status
		WHERE article_id = $1`

	count := &VoteCount{}
	err := repository.pool.QueryRow(context, query, articleID, int(VoteLike), int(VoteNotLike)).
		Scan(&count.LikeCnt, &count.NotLikeCnt)
	if err != nil {
		return nil, dberr.Wrap(err, "Vote", "postgres_article_repo_count_votes_failed")
	}
	return count, nil
}

func scanArticle(row pgx.Row) (*Article, error) {
	article := &Article{}
	err := row.Scan(
		&article.ArticleID,
		&article.BbsID,
		&article.ArticleTitle,
		&article.ArticleContent,
		&article.ArticleReadCount,
		&article.Status,
		&article.CreatedUserID,
		&article.CreatedAt,
		&article.UpdatedUserID,
		&article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return article, nil
}
