// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/nooblol/internal/platform/dberr"
	"github.com/taibuivan/nooblol/internal/platform/postgres"
)

const (
	categoryColumns = `category_id, category_name, status, created_user_id, created_at, updated_user_id, updated_at`
	bbsColumns      = `bbs_id, category_id, bbs_name, status, created_user_id, created_at, updated_user_id, updated_at`
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Postgres implementation for categories and boards.
func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Categories

// ListCategories returns categories with the given status.
func (repository *PostgresRepository) ListCategories(context context.Context, status Status) ([]*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM category WHERE status = $1 ORDER BY category_id`

	rows, err := repository.db.Query(context, query, int(status))
	if err != nil {
		return nil, dberr.Wrap(err, "Category", "postgres_category_repo_list_failed")
	}
	return collect(rows, scanCategory, "postgres_category_repo_list")
}

// FindCategory retrieves one category.
func (repository *PostgresRepository) FindCategory(context context.Context, categoryID int64) (*Category, error) {
	const query = `SELECT ` + categoryColumns + ` FROM category WHERE category_id = $1`

	category, err := scanCategory(repository.db.QueryRow(context, query, categoryID))
	if err != nil {
		return nil, dberr.Wrap(err, "Category", "postgres_category_repo_find_failed")
	}
	return category, nil
}

// CreateCategory inserts a category.
func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	const query = `
		INSERT INTO category (category_name, status, created_user_id, created_at, updated_user_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING category_id`

	err := repository.db.QueryRow(context, query,
		category.CategoryName,
		int(category.Status),
		category.CreatedUserID,
		category.CreatedAt,
		category.UpdatedUserID,
		category.UpdatedAt,
	).Scan(&category.CategoryID)
	if err != nil {
		return dberr.Wrap(err, "Category", "postgres_category_repo_create_failed")
	}
	return nil
}

// UpdateCategory writes the mutable columns of a category.
func (repository *PostgresRepository) UpdateCategory(context context.Context, category *Category) (bool, error) {
	const query = `
		UPDATE category
		SET category_name = $2, status = $3, updated_user_id = $4, updated_at = $5
		WHERE category_id = $1`

	tag, err := repository.db.Exec(context, query,
		category.CategoryID,
		category.CategoryName,
		int(category.Status),
		category.UpdatedUserID,
		category.UpdatedAt,
	)
	if err != nil {
		return false, dberr.Wrap(err, "Category", "postgres_category_repo_update_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// # Boards

// ListBbs returns boards of one category with the given status.
func (repository *PostgresRepository) ListBbs(context context.Context, categoryID int64, status Status) ([]*Bbs, error) {
	const query = `SELECT ` + bbsColumns + ` FROM bbs WHERE category_id = $1 AND status = $2 ORDER BY bbs_id`

	rows, err := repository.db.Query(context, query, categoryID, int(status))
	if err != nil {
		return nil, dberr.Wrap(err, "Bbs", "postgres_bbs_repo_list_failed")
	}
	return collect(rows, scanBbs, "postgres_bbs_repo_list")
}

// ListAllBbs returns every board that is not deleted.
func (repository *PostgresRepository) ListAllBbs(context context.Context) ([]*Bbs, error) {
	const query = `SELECT ` + bbsColumns + ` FROM bbs WHERE status <> $1 ORDER BY category_id, bbs_id`

	rows, err := repository.db.Query(context, query, int(StatusDelete))
	if err != nil {
		return nil, dberr.Wrap(err, "Bbs", "postgres_bbs_repo_list_all_failed")
	}
	return collect(rows, scanBbs, "postgres_bbs_repo_list_all")
}

// FindBbs retrieves one board.
func (repository *PostgresRepository) FindBbs(context context.Context, bbsID int64) (*Bbs, error) {
	const query = `SELECT ` + bbsColumns + ` FROM bbs WHERE bbs_id = $1`

	bbs, err := scanBbs(repository.db.QueryRow(context, query, bbsID))
	if err != nil {
		return nil, dberr.Wrap(err, "Bbs", "postgres_bbs_repo_find_failed")
	}
	return bbs, nil
}

// CreateBbs inserts a board.
func (repository *PostgresRepository) CreateBbs(context context.Context, bbs *Bbs) error {
	const query = `
		INSERT INTO bbs (category_id, bbs_name, status, created_user_id, created_at, updated_user_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING bbs_id`

	err := repository.db.QueryRow(context, query,
		bbs.CategoryID,
		bbs.BbsName,
		int(bbs.Status),
		bbs.CreatedUserID,
		bbs.CreatedAt,
		bbs.UpdatedUserID,
		bbs.UpdatedAt,
	).Scan(&bbs.BbsID)
	if err != nil {
		return dberr.Wrap(err, "Bbs", "postgres_bbs_repo_create_failed")
	}
	return nil
}

// UpdateBbs writes the mutable columns of a board.
func (repository *PostgresRepository) UpdateBbs(context context.Context, bbs *Bbs) (bool, error) {
	const query = `
		UPDATE bbs
		SET category_id = $2, bbs_name = $3, status = $4, updated_user_id = $5, updated_at = $6
		WHERE bbs_id = $1`

	tag, err := repository.db.Exec(context, query,
		bbs.BbsID,
		bbs.CategoryID,
		bbs.BbsName,
		int(bbs.Status),
		bbs.UpdatedUserID,
		bbs.UpdatedAt,
	)
	if err != nil {
		return false, dberr.Wrap(err, "Bbs", "postgres_bbs_repo_update_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// # Scanning

func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error), operation string) ([]*T, error) {
	defer rows.Close()

	items := []*T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("%s_scan_failed: %w", operation, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s_rows_failed: %w", operation, err)
	}
	return items, nil
}

func scanCategory(row pgx.Row) (*Category, error) {
	category := &Category{}
	err := row.Scan(
		&category.CategoryID,
		&category.CategoryName,
		&category.Status,
		&category.CreatedUserID,
		&category.CreatedAt,
		&category.UpdatedUserID,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

func scanBbs(row pgx.Row) (*Bbs, error) {
	bbs := &Bbs{}
	err := row.Scan(
		&bbs.BbsID,
		&bbs.CategoryID,
		&bbs.BbsName,
		&bbs.Status,
		&bbs.CreatedUserID,
		&bbs.CreatedAt,
		&bbs.UpdatedUserID,
		&bbs.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return bbs, nil
}
