// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/board/article"
	"github.com/taibuivan/nooblol/internal/board/reply"
	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/sec"
)

// memoryReplies is an in-memory [reply.Repository] that counts writes.
type memoryReplies struct {
	replies map[int64]*reply.Reply
	nextID  int64
	writes  int
}

func (r *memoryReplies) FindByID(_ context.Context, replyID int64) (*reply.Reply, error) {
	stored, ok := r.replies[replyID]
	if !ok || stored.Status == reply.StatusDelete {
		return nil, apperr.NotFound("Reply")
	}
	copied := *stored
	return &copied, nil
}

func (r *memoryReplies) ListByArticle(_ context.Context, articleID int64) ([]*reply.Reply, error) {
	result := []*reply.Reply{}
	for _, stored := range r.replies {
		if stored.ArticleID == articleID && stored.Status != reply.StatusDelete {
			copied := *stored
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SortNo < result[j].SortNo })
	return result, nil
}

func (r *memoryReplies) Create(_ context.Context, created *reply.Reply) error {
	r.writes++
	maxSort := 0
	for _, stored := range r.replies {
		if stored.ArticleID == created.ArticleID && stored.SortNo > maxSort {
			maxSort = stored.SortNo
		}
	}
	r.nextID++
	created.ReplyID = r.nextID
	created.SortNo = maxSort + 1
	copied := *created
	r.replies[created.ReplyID] = &copied
	return nil
}

func (r *memoryReplies) UpdateContent(_ context.Context, replyID int64, content string) (bool, error) {
	r.writes++
	stored, ok := r.replies[replyID]
	if !ok {
		return false, nil
	}
	stored.ReplyContent = content
	return true, nil
}

func (r *memoryReplies) UpdateStatus(_ context.Context, replyID int64, status reply.Status) (bool, error) {
	r.writes++
	stored, ok := r.replies[replyID]
	if !ok {
		return false, nil
	}
	stored.Status = status
	return true, nil
}

// articleSet resolves a fixed set of article ids.
type articleSet map[int64]bool

func (a articleSet) Find(_ context.Context, articleID int64) (*article.Article, error) {
	if !a[articleID] {
		return nil, apperr.NotFound("Article")
	}
	return &article.Article{ArticleID: articleID}, nil
}

var (
	author = sec.Principal{UserID: "author", Role: sec.RoleAuthUser}
	other  = sec.Principal{UserID: "other", Role: sec.RoleAuthUser}
	admin  = sec.Principal{UserID: "root", Role: sec.RoleAdmin}
)

func newService(t *testing.T) (*reply.Service, *memoryReplies) {
	t.Helper()
	repo := &memoryReplies{replies: map[int64]*reply.Reply{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return reply.NewService(repo, articleSet{1: true, 2: true}, logger), repo
}

/*
TestCreate_AppendsSortNo verifies per-article sort numbering.
*/
func TestCreate_AppendsSortNo(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	for _, articleID := range []int64{1, 1, 2, 1} {
		ok, err := service.Create(ctx, author, reply.CreateInput{ArticleID: articleID, ReplyContent: "gg"})
		require.NoError(t, err)
		assert.True(t, ok)
	}

	replies, err := service.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, replies, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{replies[0].SortNo, replies[1].SortNo, replies[2].SortNo})

	others, err := service.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, 1, others[0].SortNo)
}

/*
TestCreate_Rules covers the writer guard and the article check.
*/
func TestCreate_Rules(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.Create(ctx, sec.Principal{UserID: "x", Role: sec.RoleUnauthUser}, reply.CreateInput{ArticleID: 1, ReplyContent: "gg"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Create(ctx, author, reply.CreateInput{ArticleID: 9, ReplyContent: "gg"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = service.Create(ctx, author, reply.CreateInput{ArticleID: 1, ReplyContent: " "})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	_, err = service.List(ctx, 9)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

/*
TestUpdate_CheckOrder verifies NotFound, Forbidden and the unchanged rule.
*/
func TestUpdate_CheckOrder(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, author, reply.UpdateInput{ReplyID: 1, ReplyContent: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = service.Create(ctx, author, reply.CreateInput{ArticleID: 1, ReplyContent: "gg"})
	require.NoError(t, err)

	_, err = service.Update(ctx, other, reply.UpdateInput{ReplyID: 1, ReplyContent: "x"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Update(ctx, author, reply.UpdateInput{ReplyID: 1, ReplyContent: "gg"})
	assert.ErrorIs(t, err, apperr.ErrNothingToUpdate)

	ok, err := service.Update(ctx, admin, reply.UpdateInput{ReplyID: 1, ReplyContent: "wp"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "wp", repo.replies[1].ReplyContent)
}

/*
TestDelete_SoftDeletes verifies the delete guard and that deleted replies disappear.
*/
func TestDelete_SoftDeletes(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()
	_, err := service.Create(ctx, author, reply.CreateInput{ArticleID: 1, ReplyContent: "gg"})
	require.NoError(t, err)

	_, err = service.Delete(ctx, other, 1)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	ok, err := service.Delete(ctx, author, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, reply.StatusDelete, repo.replies[1].Status)

	_, err = service.Get(ctx, 1)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	replies, err := service.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

/*
TestWrites_AnonymousRejectedFirst verifies that an empty session is refused
before the repository sees any write.
*/
func TestWrites_AnonymousRejectedFirst(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()
	_, err := service.Create(ctx, author, reply.CreateInput{ArticleID: 1, ReplyContent: "gg"})
	require.NoError(t, err)

	cases := []struct {
		name string
		call func() error
	}{
		{"create", func() error {
			_, err := service.Create(ctx, sec.Anonymous(), reply.CreateInput{ArticleID: 1, ReplyContent: "gg"})
			return err
		}},
		{"update", func() error {
			_, err := service.Update(ctx, sec.Anonymous(), reply.UpdateInput{ReplyID: 1, ReplyContent: "x"})
			return err
		}},
		{"delete", func() error {
			_, err := service.Delete(ctx, sec.Anonymous(), 1)
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			writes := repo.writes
			err := tc.call()
			assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
			assert.Equal(t, writes, repo.writes)
		})
	}
	assert.Equal(t, "gg", repo.replies[1].ReplyContent)
	assert.Equal(t, reply.StatusActive, repo.replies[1].Status)
}
