// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package summoner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/postgres/pgtest"
	"github.com/taibuivan/nooblol/internal/summoner"
)

/*
TestPostgres_SummonerAndHistory verifies account writes and the history upsert key.
*/
func TestPostgres_SummonerAndHistory(t *testing.T) {
	repository := summoner.NewRepository(pgtest.NewPool(t))
	ctx := context.Background()

	_, err := repository.FindSummoner(ctx, "s1")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	account := faker()
	require.NoError(t, repository.InsertSummoner(ctx, account))

	account.SummonerLevel = 701
	require.NoError(t, repository.UpdateSummoner(ctx, account))

	stored, err := repository.FindSummoner(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, *account, *stored)

	entry := &summoner.LeagueEntry{LeagueID: "l1", SummonerID: "s1", QueueType: "RANKED_SOLO_5x5", Tier: "GRANDMASTER", Rank: "I", LeaguePoints: 800}
	require.NoError(t, repository.UpsertHistory(ctx, entry))

	entry.Tier = "CHALLENGER"
	entry.LeaguePoints = 1200
	require.NoError(t, repository.UpsertHistory(ctx, entry))

	history, err := repository.ListHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "CHALLENGER", history[0].Tier)
	assert.Equal(t, 1200, history[0].LeaguePoints)
}
