// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/session"
	"github.com/taibuivan/nooblol/internal/users/account"
	"github.com/taibuivan/nooblol/internal/users/account/accounttest"
	"github.com/taibuivan/nooblol/internal/users/admin"
	"github.com/taibuivan/nooblol/pkg/pagination"
)

var adminPrincipal = sec.Principal{UserID: "root", Role: sec.RoleAdmin}

type fixture struct {
	service  *admin.Service
	repo     *accounttest.MemoryRepository
	sessions *session.RedisStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens, err := sec.NewMailTokenService("test-secret", "nooblol.gg", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := accounttest.NewMemoryRepository()
	sessions := session.NewRedisStore(client, 30*time.Minute)
	accounts := account.NewService(repo, sessions, tokens, account.NewLogMailer(logger), "http://localhost:8080", nil, logger)

	return &fixture{
		service:  admin.NewService(repo, accounts, sessions, logger),
		repo:     repo,
		sessions: sessions,
	}
}

func (f *fixture) seed(t *testing.T, id string, role sec.Role) {
	t.Helper()
	require.NoError(t, f.repo.Create(context.Background(), &account.User{
		UserID:    id,
		UserEmail: id + "@nooblol.gg",
		UserName:  id,
		UserRole:  role,
		CreatedAt: time.Now(),
	}))
}

/*
TestAdmin_RequiresAdmin verifies the role guard on every operation.
*/
func TestAdmin_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := sec.Principal{UserID: "u1", Role: sec.RoleAuthUser}

	_, err := f.service.AddAdmin(ctx, user, account.SignUpInput{UserEmail: "a@nooblol.gg", UserName: "a", Password: "secret1"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = f.service.Suspend(ctx, user, "u2")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = f.service.ListMembers(ctx, sec.Anonymous(), pagination.Default())
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

/*
TestAdmin_AnonymousWritesNothing verifies that every administrative write
refuses an empty session before the member store is touched.
*/
func TestAdmin_AnonymousWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "u1", sec.RoleAuthUser)

	cases := []struct {
		name string
		call func() error
	}{
		{"add admin", func() error {
			_, err := f.service.AddAdmin(ctx, sec.Anonymous(), account.SignUpInput{UserEmail: "a@nooblol.gg", UserName: "a", Password: "secret1"})
			return err
		}},
		{"activate", func() error {
			_, err := f.service.Activate(ctx, sec.Anonymous(), "u1")
			return err
		}},
		{"suspend", func() error {
			_, err := f.service.Suspend(ctx, sec.Anonymous(), "u1")
			return err
		}},
		{"delete member", func() error {
			_, err := f.service.DeleteMember(ctx, sec.Anonymous(), "u1")
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writes := f.repo.Writes()
			err := tc.call()
			assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
			assert.Equal(t, writes, f.repo.Writes())
		})
	}

	stored, err := f.repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAuthUser, stored.UserRole)
}

/*
TestAddAdmin_CreatesAdminRole verifies role assignment and the duplicate rule.
*/
func TestAddAdmin_CreatesAdminRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := account.SignUpInput{UserEmail: "ops@nooblol.gg", UserName: "ops", Password: "secret1"}

	ok, err := f.service.AddAdmin(ctx, adminPrincipal, input)
	require.NoError(t, err)
	assert.True(t, ok)

	created, err := f.repo.FindByEmail(ctx, "ops@nooblol.gg")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleAdmin, created.UserRole)

	_, err = f.service.AddAdmin(ctx, adminPrincipal, input)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
}

/*
TestSuspend_EndsSessions verifies that suspension is effective immediately.
*/
func TestSuspend_EndsSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "u1", sec.RoleAuthUser)

	live, err := f.sessions.Create(ctx, "u1", sec.RoleAuthUser)
	require.NoError(t, err)

	ok, err := f.service.Suspend(ctx, adminPrincipal, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	stored, _ := f.repo.FindByID(ctx, "u1")
	assert.Equal(t, sec.RoleSuspensionUser, stored.UserRole)

	_, err = f.sessions.Get(ctx, live.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	ok, err = f.service.Activate(ctx, adminPrincipal, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	stored, _ = f.repo.FindByID(ctx, "u1")
	assert.Equal(t, sec.RoleAuthUser, stored.UserRole)
}

/*
TestRoleChange_UnknownMember verifies NotFound for absent targets.
*/
func TestRoleChange_UnknownMember(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Activate(context.Background(), adminPrincipal, "ghost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = f.service.DeleteMember(context.Background(), adminPrincipal, "ghost")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

/*
TestDeleteMember_RemovesUserAndSessions verifies the forced delete.
*/
func TestDeleteMember_RemovesUserAndSessions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, "u1", sec.RoleAuthUser)
	live, err := f.sessions.Create(ctx, "u1", sec.RoleAuthUser)
	require.NoError(t, err)

	ok, err := f.service.DeleteMember(ctx, adminPrincipal, "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = f.repo.FindByID(ctx, "u1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	_, err = f.sessions.Get(ctx, live.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

/*
TestListMembers_Pages verifies paging and that an empty page is an empty slice.
*/
func TestListMembers_Pages(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.service.ListMembers(ctx, adminPrincipal, pagination.Default())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	f.seed(t, "u1", sec.RoleAuthUser)
	f.seed(t, "u2", sec.RoleAuthUser)
	f.seed(t, "u3", sec.RoleAuthUser)

	page, err := f.service.ListMembers(ctx, adminPrincipal, pagination.Params{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "AUTH_USER", page[0].RoleName)
}
