// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package summoner_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/metrics"
	"github.com/taibuivan/nooblol/internal/summoner"
)

func newRiot(t *testing.T, handler http.HandlerFunc) (*summoner.RiotClient, *metrics.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	collectors := metrics.New(prometheus.NewRegistry())
	return summoner.NewRiotClient(server.URL+"/", "riot-key", time.Second, collectors), collectors
}

/*
TestRiotClient_FetchSummonerByName verifies the request path, the API key header and decoding.
*/
func TestRiotClient_FetchSummonerByName(t *testing.T) {
	client, collectors := newRiot(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lol/summoner/v4/summoners/by-name/Hideonbush", r.URL.Path)
		assert.Equal(t, "riot-key", r.Header.Get("X-Riot-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"s1","accountId":"a1","puuid":"p1","name":"Hide on bush","profileIconId":6,"revisionDate":1700000000000,"summonerLevel":700}`))
	})

	found, err := client.FetchSummonerByName(context.Background(), " Hide on bush ")
	require.NoError(t, err)
	assert.Equal(t, "s1", found.ID)
	assert.Equal(t, 700, found.SummonerLevel)
	assert.Equal(t, int64(1700000000000), found.RevisionDate)
	assert.Equal(t, 1.0, testutil.ToFloat64(collectors.RiotRequests.WithLabelValues("summoner", "ok")))
}

/*
TestRiotClient_Failures verifies how Riot failures are classified.
*/
func TestRiotClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		kind   apperr.Kind
	}{
		{"not_found", http.StatusNotFound, `{}`, apperr.KindNotFound},
		{"rate_limited", http.StatusTooManyRequests, `{}`, apperr.KindServerError},
		{"forbidden_key", http.StatusForbidden, `{}`, apperr.KindServerError},
		{"bad_body", http.StatusOK, `not json`, apperr.KindServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newRiot(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchSummonerByName(context.Background(), "faker")
			assert.True(t, apperr.Is(err, tt.kind), err)
		})
	}
}

/*
TestRiotClient_Unreachable verifies that a transport failure is a server error.
*/
func TestRiotClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	domain := server.URL
	server.Close()

	client := summoner.NewRiotClient(domain, "riot-key", time.Second, nil)
	_, err := client.FetchLeagueEntries(context.Background(), "s1")
	assert.True(t, apperr.Is(err, apperr.KindServerError))
}

/*
TestRiotClient_FetchLeagueEntries verifies list decoding.
*/
func TestRiotClient_FetchLeagueEntries(t *testing.T) {
	client, _ := newRiot(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lol/league/v4/entries/by-summoner/s1", r.URL.Path)
		_, _ = w.Write([]byte(`[{"leagueId":"l1","summonerId":"s1","queueType":"RANKED_SOLO_5x5","tier":"CHALLENGER","rank":"I","leaguePoints":1200,"wins":300,"losses":200,"hotStreak":true}]`))
	})

	entries, err := client.FetchLeagueEntries(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CHALLENGER", entries[0].Tier)
	assert.True(t, entries[0].HotStreak)
}
