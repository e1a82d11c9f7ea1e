// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package summoner_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/summoner"
)

// memoryStore is an in-memory [summoner.Repository] that counts writes.
type memoryStore struct {
	mu        sync.Mutex
	summoners map[string]summoner.Summoner
	history   map[string]summoner.LeagueEntry
	inserts   int
	updates   int
	upserts   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{summoners: map[string]summoner.Summoner{}, history: map[string]summoner.LeagueEntry{}}
}

func (m *memoryStore) FindSummoner(_ context.Context, summonerID string) (*summoner.Summoner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.summoners[summonerID]
	if !ok {
		return nil, apperr.NotFound("Summoner")
	}
	return &stored, nil
}

func (m *memoryStore) InsertSummoner(_ context.Context, s *summoner.Summoner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inserts++
	m.summoners[s.ID] = *s
	return nil
}

func (m *memoryStore) UpdateSummoner(_ context.Context, s *summoner.Summoner) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	m.summoners[s.ID] = *s
	return nil
}

func (m *memoryStore) ListHistory(_ context.Context, summonerID string) ([]*summoner.LeagueEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := []*summoner.LeagueEntry{}
	for _, entry := range m.history {
		if entry.SummonerID == summonerID {
			copied := entry
			entries = append(entries, &copied)
		}
	}
	return entries, nil
}

func (m *memoryStore) UpsertHistory(_ context.Context, entry *summoner.LeagueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.history[entry.LeagueID+"/"+entry.SummonerID] = *entry
	return nil
}

// stubRiot serves canned Riot responses.
type stubRiot struct {
	summoner *summoner.Summoner
	entries  []*summoner.LeagueEntry
	err      error
	calls    int
}

func (s *stubRiot) FetchSummonerByName(_ context.Context, _ string) (*summoner.Summoner, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.summoner
	return &copied, nil
}

func (s *stubRiot) FetchLeagueEntries(_ context.Context, _ string) ([]*summoner.LeagueEntry, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func newService(riot *stubRiot) (*summoner.Service, *memoryStore) {
	store := newMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return summoner.NewService(store, riot, logger), store
}

func faker() *summoner.Summoner {
	return &summoner.Summoner{ID: "s1", AccountID: "a1", PUUID: "p1", Name: "Hide on bush", ProfileIconID: 6, SummonerLevel: 700}
}

/*
TestSummoner_Reconcile verifies insert when absent, no write when equal and update when changed.
*/
func TestSummoner_Reconcile(t *testing.T) {
	riot := &stubRiot{summoner: faker()}
	service, store := newService(riot)
	ctx := context.Background()

	found, err := service.Summoner(ctx, "Hide on bush")
	require.NoError(t, err)
	assert.Equal(t, "s1", found.ID)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.updates)

	_, err = service.Summoner(ctx, "Hide on bush")
	require.NoError(t, err)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 0, store.updates)

	riot.summoner.SummonerLevel = 701
	_, err = service.Summoner(ctx, "Hide on bush")
	require.NoError(t, err)
	assert.Equal(t, 1, store.inserts)
	assert.Equal(t, 1, store.updates)
	assert.Equal(t, 701, store.summoners["s1"].SummonerLevel)
}

/*
TestSummoner_Rejections verifies the blank name check and Riot error pass-through.
*/
func TestSummoner_Rejections(t *testing.T) {
	riot := &stubRiot{err: apperr.NotFound("Summoner")}
	service, store := newService(riot)

	_, err := service.Summoner(context.Background(), "  ")
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))
	assert.Equal(t, 0, riot.calls)

	_, err = service.Summoner(context.Background(), "nobody")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, 0, store.inserts)
}

/*
TestHistory_SyncServesStoredRows verifies that sync=true skips Riot when rows exist.
*/
func TestHistory_SyncServesStoredRows(t *testing.T) {
	riot := &stubRiot{entries: []*summoner.LeagueEntry{
		{LeagueID: "l1", SummonerID: "s1", QueueType: "RANKED_SOLO_5x5"},
		{LeagueID: "l2", SummonerID: "s1", QueueType: "RANKED_FLEX_SR"},
	}}
	service, store := newService(riot)
	ctx := context.Background()

	entries, err := service.History(ctx, "s1", true)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, riot.calls)
	assert.Equal(t, 2, store.upserts)

	entries, err = service.History(ctx, "s1", true)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 1, riot.calls)

	_, err = service.History(ctx, "s1", false)
	require.NoError(t, err)
	assert.Equal(t, 2, riot.calls)
	assert.Equal(t, 4, store.upserts)
	assert.Len(t, store.history, 2)
}

/*
TestHistory_Rejections verifies the blank id check and entries without ids.
*/
func TestHistory_Rejections(t *testing.T) {
	riot := &stubRiot{entries: []*summoner.LeagueEntry{
		{LeagueID: "l1", SummonerID: "s1"},
		{LeagueID: "", SummonerID: "s1"},
	}}
	service, store := newService(riot)

	_, err := service.History(context.Background(), "", false)
	assert.True(t, apperr.Is(err, apperr.KindBadRequest))

	_, err = service.History(context.Background(), "s1", false)
	assert.True(t, apperr.Is(err, apperr.KindServerError))
	assert.Equal(t, 0, store.upserts)
}
