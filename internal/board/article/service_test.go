// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/board/article"
	"github.com/taibuivan/nooblol/internal/board/category"
	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/pkg/pagination"
	"github.com/taibuivan/nooblol/pkg/pointer"
)

type voteKey struct {
	articleID int64
	userID    string
}

// memoryArticles is an in-memory [article.Repository] that counts writes.
// Read counter increments are not writes.
type memoryArticles struct {
	articles map[int64]*article.Article
	votes    map[voteKey]article.VoteType
	nextID   int64
	writes   int
}

func newMemoryArticles() *memoryArticles {
	return &memoryArticles{articles: map[int64]*article.Article{}, votes: map[voteKey]article.VoteType{}}
}

func (r *memoryArticles) FindByID(_ context.Context, articleID int64) (*article.Article, error) {
	stored, ok := r.articles[articleID]
	if !ok {
		return nil, apperr.NotFound("Article")
	}
	copied := *stored
	return &copied, nil
}

func (r *memoryArticles) IncrementReadCount(_ context.Context, articleID int64) error {
	if stored, ok := r.articles[articleID]; ok {
		stored.ArticleReadCount++
	}
	return nil
}

func (r *memoryArticles) ListByBbs(_ context.Context, bbsID int64, limit, offset int) ([]*article.Article, error) {
	result := []*article.Article{}
	for id := r.nextID; id >= 1; id-- {
		stored, ok := r.articles[id]
		if ok && stored.BbsID == bbsID && stored.Status != article.StatusDelete {
			copied := *stored
			result = append(result, &copied)
		}
	}
	if offset >= len(result) {
		return []*article.Article{}, nil
	}
	return result[offset:min(offset+limit, len(result))], nil
}

func (r *memoryArticles) Create(_ context.Context, created *article.Article) error {
	r.writes++
	r.nextID++
	created.ArticleID = r.nextID
	copied := *created
	r.articles[created.ArticleID] = &copied
	return nil
}

func (r *memoryArticles) Update(_ context.Context, updated *article.Article) (bool, error) {
	r.writes++
	if _, ok := r.articles[updated.ArticleID]; !ok {
		return false, nil
	}
	copied := *updated
	r.articles[updated.ArticleID] = &copied
	return true, nil
}

func (r *memoryArticles) Delete(_ context.Context, articleID int64) (bool, error) {
	r.writes++
	_, ok := r.articles[articleID]
	delete(r.articles, articleID)
	for key := range r.votes {
		if key.articleID == articleID {
			delete(r.votes, key)
		}
	}
	return ok, nil
}

func (r *memoryArticles) FindVote(_ context.Context, articleID int64, userID string) (article.VoteType, bool, error) {
	vote, ok := r.votes[voteKey{articleID, userID}]
	return vote, ok, nil
}

func (r *memoryArticles) SaveVote(_ context.Context, articleID int64, userID string, vote article.VoteType) error {
	r.writes++
	r.votes[voteKey{articleID, userID}] = vote
	return nil
}

func (r *memoryArticles) DeleteVote(_ context.Context, articleID int64, userID string) error {
	r.writes++
	delete(r.votes, voteKey{articleID, userID})
	return nil
}

func (r *memoryArticles) CountVotes(_ context.Context, articleID int64) (*article.VoteCount, error) {
	count := &article.VoteCount{}
	for key, vote := range r.votes {
		if key.articleID != articleID {
			continue
		}
		if vote == article.VoteLike {
			count.LikeCnt++
		} else {
			count.NotLikeCnt++
		}
	}
	return count, nil
}

// boardSet resolves a fixed set of board ids.
type boardSet map[int64]bool

func (b boardSet) FindBbs(_ context.Context, bbsID int64) (*category.Bbs, error) {
	if !b[bbsID] {
		return nil, apperr.NotFound("Bbs")
	}
	return &category.Bbs{BbsID: bbsID, CategoryID: 1, Status: category.StatusActive}, nil
}

var (
	author   = sec.Principal{UserID: "author", Role: sec.RoleAuthUser}
	reader   = sec.Principal{UserID: "reader", Role: sec.RoleAuthUser}
	admin    = sec.Principal{UserID: "root", Role: sec.RoleAdmin}
	fresh    = sec.Principal{UserID: "fresh", Role: sec.RoleUnauthUser}
	anyBoard = int64(10)
)

func newService(t *testing.T) (*article.Service, *memoryArticles) {
	t.Helper()
	repo := newMemoryArticles()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return article.NewService(repo, boardSet{anyBoard: true, 11: true}, logger), repo
}

func write(t *testing.T, service *article.Service, repo *memoryArticles) int64 {
	t.Helper()
	ok, err := service.Create(context.Background(), author, article.CreateInput{
		BbsID:          anyBoard,
		ArticleTitle:   "Jungle tips",
		ArticleContent: "Ward the river",
	})
	require.NoError(t, err)
	require.True(t, ok)
	return repo.nextID
}

/*
TestAuthMessage covers every permission level.
*/
func TestAuthMessage(t *testing.T) {
	tests := []struct {
		name      string
		principal sec.Principal
		want      string
	}{
		{"guest", sec.Anonymous(), article.AuthGuest},
		{"admin_author", sec.Principal{UserID: "author", Role: sec.RoleAdmin}, article.AuthAdmin},
		{"author", author, article.AuthAuthor},
		{"other_user", reader, article.AuthAuthUser},
		{"unverified", fresh, article.AuthGuest},
		{"suspended", sec.Principal{UserID: "x", Role: sec.RoleSuspensionUser}, article.AuthGuest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, article.AuthMessage(tt.principal, "author"))
		})
	}
}

/*
TestGet_CountsReads verifies the read counter and the NotFound path.
*/
func TestGet_CountsReads(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	_, err := service.Get(ctx, reader, 1)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	id := write(t, service, repo)

	first, err := service.Get(ctx, reader, id)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ArticleReadCount)
	assert.Equal(t, article.AuthAuthUser, first.AuthMessage)

	second, err := service.Get(ctx, author, id)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ArticleReadCount)
	assert.Equal(t, article.AuthAuthor, second.AuthMessage)
}

/*
TestCreate_Rules covers the writer guard and the parent board check.
*/
func TestCreate_Rules(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()
	input := article.CreateInput{BbsID: anyBoard, ArticleTitle: "t", ArticleContent: "c"}

	_, err := service.Create(ctx, sec.Anonymous(), input)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))

	_, err = service.Create(ctx, fresh, input)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Create(ctx, author, article.CreateInput{BbsID: 99, ArticleTitle: "t", ArticleContent: "c"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = service.Create(ctx, author, article.CreateInput{BbsID: anyBoard, ArticleContent: "c"})
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
}

/*
TestUpdate_CheckOrder verifies NotFound, then Forbidden, then the update pattern.
*/
func TestUpdate_CheckOrder(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, reader, article.UpdateInput{ArticleID: 5, ArticleTitle: "x"})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	id := write(t, service, repo)

	_, err = service.Update(ctx, reader, article.UpdateInput{ArticleID: id, ArticleTitle: "x"})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Update(ctx, author, article.UpdateInput{ArticleID: id, ArticleTitle: "Jungle tips"})
	assert.ErrorIs(t, err, apperr.ErrNothingToUpdate)

	ok, err := service.Update(ctx, admin, article.UpdateInput{ArticleID: id, BbsID: pointer.To(int64(11))})
	require.NoError(t, err)
	assert.True(t, ok)

	stored := repo.articles[id]
	assert.Equal(t, int64(11), stored.BbsID)
	assert.Equal(t, "Jungle tips", stored.ArticleTitle)
	assert.Equal(t, "root", stored.UpdatedUserID)
	assert.Equal(t, "author", stored.CreatedUserID)
}

/*
TestWrites_AnonymousRejectedFirst verifies that an empty session is refused
before the repository sees any write.
*/
func TestWrites_AnonymousRejectedFirst(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()
	id := write(t, service, repo)

	cases := []struct {
		name string
		call func() error
	}{
		{"create", func() error {
			_, err := service.Create(ctx, sec.Anonymous(), article.CreateInput{BbsID: anyBoard, ArticleTitle: "t", ArticleContent: "c"})
			return err
		}},
		{"update", func() error {
			_, err := service.Update(ctx, sec.Anonymous(), article.UpdateInput{ArticleID: id, ArticleTitle: "x"})
			return err
		}},
		{"delete", func() error {
			_, err := service.Delete(ctx, sec.Anonymous(), id)
			return err
		}},
		{"vote", func() error {
			_, err := service.Vote(ctx, sec.Anonymous(), id, article.VoteLike)
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
	assert.Contains(t, repo.articles, id)
}

/*
TestDelete_OwnerOrAdmin verifies the delete guard.
*/
func TestDelete_OwnerOrAdmin(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()
	id := write(t, service, repo)

	_, err := service.Delete(ctx, reader, id)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	ok, err := service.Delete(ctx, author, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = service.Delete(ctx, admin, id)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

/*
TestVote_Toggle verifies insert, switch and removal of a vote.
*/
func TestVote_Toggle(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()
	id := write(t, service, repo)

	count := func() *article.VoteCount {
		t.Helper()
		votes, err := service.Votes(ctx, id)
		require.NoError(t, err)
		return votes
	}

	_, err := service.Vote(ctx, reader, id, article.VoteLike)
	require.NoError(t, err)
	assert.Equal(t, &article.VoteCount{LikeCnt: 1}, count())

	_, err = service.Vote(ctx, reader, id, article.VoteNotLike)
	require.NoError(t, err)
	assert.Equal(t, &article.VoteCount{NotLikeCnt: 1}, count())

	_, err = service.Vote(ctx, reader, id, article.VoteNotLike)
	require.NoError(t, err)
	assert.Equal(t, &article.VoteCount{}, count())

	_, err = service.Vote(ctx, fresh, id, article.VoteLike)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = service.Votes(ctx, 404)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

/*
TestList_Pages verifies newest-first paging.
*/
func TestList_Pages(t *testing.T) {
	service, repo := newService(t)
	ctx := context.Background()

	empty, err := service.List(ctx, anyBoard, pagination.Default())
	require.NoError(t, err)
	assert.Empty(t, empty)

	write(t, service, repo)
	latest := write(t, service, repo)

	page, err := service.List(ctx, anyBoard, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, latest, page[0].ArticleID)
}
