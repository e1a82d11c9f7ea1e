// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/dberr"
)

/*
TestWrap verifies the classification of driver errors into application kinds.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"no rows", pgx.ErrNoRows, apperr.KindNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperr.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, apperr.KindConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, apperr.KindNotFound},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, apperr.KindServerError},
		{"plain error", errors.New("boom"), apperr.KindServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := dberr.Wrap(tt.err, "User", "select_user")
			assert.Equal(t, tt.kind, apperr.KindOf(wrapped))
		})
	}
}

/*
TestWrap_Nil verifies that a nil error stays nil.
*/
func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "User", "select_user"))
}

/*
TestIsUniqueViolation verifies detection through wrapping.
*/
func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, dberr.IsUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, dberr.IsUniqueViolation(errors.New("boom")))
}
