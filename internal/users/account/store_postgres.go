// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/nooblol/internal/platform/database/schema"
	"github.com/taibuivan/nooblol/internal/platform/dberr"
	"github.com/taibuivan/nooblol/internal/platform/postgres"
	"github.com/taibuivan/nooblol/internal/platform/sec"
)

// # Repository Implementation

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Postgres implementation for user accounts.
func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
FindByID retrieves a user record from the users table.

Returns:
  - *User: Hydrated account
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, userID string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Users.Select(), schema.Users.Table, schema.Users.ID,
	)

	user, err := scanUser(repository.db.QueryRow(context, query, userID))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_find_by_id_failed")
	}
	return user, nil
}

// FindByEmail retrieves a user record by its unique e-mail.
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.Users.Select(), schema.Users.Table, schema.Users.Email,
	)

	user, err := scanUser(repository.db.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_find_by_email_failed")
	}
	return user, nil
}

// Create inserts a new user row.
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.Users.Table, schema.Users.Select(),
	)

	_, err := repository.db.Exec(context, query,
		user.UserID,
		user.UserEmail,
		user.UserName,
		user.Password,
		user.Level,
		user.Exp,
		int(user.UserRole),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "User", "postgres_user_repo_create_failed")
	}
	return nil
}

// UpdateProfile writes the mutable profile columns.
func (repository *PostgresRepository) UpdateProfile(context context.Context, user *User) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1`,
		schema.Users.Table,
		schema.Users.Name, schema.Users.Password, schema.Users.UpdatedAt,
		schema.Users.ID,
	)

	tag, err := repository.db.Exec(context, query, user.UserID, user.UserName, user.Password, user.UpdatedAt)
	if err != nil {
		return false, dberr.Wrap(err, "User", "postgres_user_repo_update_profile_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateRole changes the role column and refreshes updated_at.
func (repository *PostgresRepository) UpdateRole(context context.Context, userID string, role sec.Role) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.Users.Table, schema.Users.Role, schema.Users.UpdatedAt, schema.Users.ID,
	)

	tag, err := repository.db.Exec(context, query, userID, int(role))
	if err != nil {
		return false, dberr.Wrap(err, "User", "postgres_user_repo_update_role_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// Delete physically removes a user row.
func (repository *PostgresRepository) Delete(context context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Users.Table, schema.Users.ID)

	tag, err := repository.db.Exec(context, query, userID)
	if err != nil {
		return false, dberr.Wrap(err, "User", "postgres_user_repo_delete_failed")
	}
	return tag.RowsAffected() > 0, nil
}

// List returns a page of users, newest first.
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*User, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2`,
		schema.Users.Select(), schema.Users.Table, schema.Users.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "postgres_user_repo_list_failed")
	}
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_user_repo_list_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_list_rows_failed: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.UserID,
		&user.UserEmail,
		&user.UserName,
		&user.Password,
		&user.Level,
		&user.Exp,
		&user.UserRole,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
