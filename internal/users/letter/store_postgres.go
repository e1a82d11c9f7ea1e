// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package letter

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/nooblol/internal/platform/dberr"
	"github.com/taibuivan/nooblol/internal/platform/postgres"
)

const letterColumns = `letter_id, letter_title, letter_content, to_user_id, to_status, from_user_id, from_status, created_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Postgres implementation for letters.
func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID retrieves one letter.
func (repository *PostgresRepository) FindByID(context context.Context, letterID int64) (*Letter, error) {
	const query = `SELECT ` + letterColumns + ` FROM letter WHERE letter_id = $1`

	letter, err := scanLetter(repository.db.QueryRow(context, query, letterID))
	if err != nil {
		return nil, dberr.Wrap(err, "Letter", "postgres_letter_repo_find_by_id_failed")
	}
	return letter, nil
}

// List returns one side of a user's letters, excluding deleted copies.
func (repository *PostgresRepository) List(context context.Context, side Side, userID string, limit, offset int) ([]*Letter, error) {
	const toQuery = `
		SELECT ` + letterColumns + ` FROM letter
		WHERE to_user_id = $1 AND to_status <> $2
		ORDER BY letter_id DESC
		LIMIT $3 OFFSET $4`
	const fromQuery = `
		SELECT ` + letterColumns + ` FROM letter
		WHERE from_user_id = $1 AND from_status <> $2
		ORDER BY letter_id DESC
		LIMIT $3 OFFSET $4`

	query := toQuery
	if side == SideFrom {
		query = fromQuery
	}

	rows, err := repository.db.Query(context, query, userID, int(StatusDelete), limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "Letter", "postgres_letter_repo_list_failed")
	}
	defer rows.Close()

	letters := []*Letter{}
	for rows.Next() {
		letter, err := scanLetter(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_letter_repo_list_scan_failed: %w", err)
		}
		letters = append(letters, letter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_letter_repo_list_rows_failed: %w", err)
	}
	return letters, nil
}

// Create inserts a letter.
func (repository *PostgresRepository) Create(context context.Context, letter *Letter) error {
	const query = `
		INSERT INTO letter (letter_title, letter_content, to_user_id, to_status, from_user_id, from_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING letter_id, created_at`

	err := repository.db.QueryRow(context, query,
		letter.LetterTitle,
		letter.LetterContent,
		letter.ToUserID,
		int(letter.ToStatus),
		letter.FromUserID,
		int(letter.FromStatus),
	).Scan(&letter.LetterID, &letter.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "Letter", "postgres_letter_repo_create_failed")
	}
	return nil
}

// UpdateStatus sets one side's status.
func (repository *PostgresRepository) UpdateStatus(context context.Context, side Side, letterID int64, userID string, status Status) (bool, error) {
	const toQuery = `UPDATE letter SET to_status = $3 WHERE letter_id = $1 AND to_user_id = $2`
	const fromQuery = `UPDATE letter SET from_status = $3 WHERE letter_id = $1 AND from_user_id = $2`

	query := toQuery
	if side == SideFrom {
		query = fromQuery
	}

	tag, err := repository.db.Exec(context, query, letterID, userID, int(status))
	if err != nil {
		return false, dberr.Wrap(err, "Letter", "postgres_letter_repo_update_status_failed")
	}
	return tag.RowsAffected() > 0, nil
}

func scanLetter(row pgx.Row) (*Letter, error) {
	letter := &Letter{}
	err := row.Scan(
		&letter.LetterID,
		&letter.LetterTitle,
		&letter.LetterContent,
		&letter.ToUserID,
		&letter.ToStatus,
		&letter.FromUserID,
		&letter.FromStatus,
		&letter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return letter, nil
}
