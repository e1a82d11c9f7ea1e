// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/session"
	"github.com/taibuivan/nooblol/internal/users/account"
	"github.com/taibuivan/nooblol/internal/users/account/accounttest"
)

// recordingMailer captures the last verification link.
type recordingMailer struct {
	email string
	link  string
	sent  int
}

func (m *recordingMailer) SendVerification(_ context.Context, email, link string) error {
	m.email, m.link = email, link
	m.sent++
	return nil
}

type fixture struct {
	service  *account.Service
	repo     *accounttest.MemoryRepository
	sessions *session.RedisStore
	tokens   *sec.MailTokenService
	mailer   *recordingMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens, err := sec.NewMailTokenService("test-secret", "nooblol.gg", time.Hour)
	require.NoError(t, err)

	f := &fixture{
		repo:     accounttest.NewMemoryRepository(),
		sessions: session.NewRedisStore(client, 30*time.Minute),
		tokens:   tokens,
		mailer:   &recordingMailer{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = account.NewService(f.repo, f.sessions, f.tokens, f.mailer, "http://localhost:8080/", nil, logger)
	return f
}

// seed inserts a user with the given role and plain password.
func (f *fixture) seed(t *testing.T, id, email, password string, role sec.Role) *account.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	user := &account.User{
		UserID:    id,
		UserEmail: email,
		UserName:  "name-" + id,
		Password:  hash,
		Level:     1,
		UserRole:  role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, f.repo.Create(context.Background(), user))
	return user
}
