// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package summoner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/metrics"
	"github.com/taibuivan/nooblol/pkg/normalize"
)

// # Riot endpoints

const (
	summonerByNamePath = "/lol/summoner/v4/summoners/by-name/"
	entriesBySummoner  = "/lol/league/v4/entries/by-summoner/"

	headerRiotToken = "X-Riot-Token"

	endpointSummoner = "summoner"
	endpointLeague   = "league"

	outcomeOK       = "ok"
	outcomeNotFound = "not_found"
	outcomeError    = "error"

	// maxRiotBody bounds how much of a Riot response is read.
	maxRiotBody = 1 << 20
)

// RiotClient calls the Riot Games REST API.
type RiotClient struct {
	httpClient *http.Client
	domain     string
	apiKey     string
	collectors *metrics.Metrics
}

// NewRiotClient creates a client for domain (e.g. https://kr.api.riotgames.com).
// collectors may be nil.
func NewRiotClient(domain, apiKey string, timeout time.Duration, collectors *metrics.Metrics) *RiotClient {
	return &RiotClient{
		httpClient: &http.Client{Timeout: timeout},
		domain:     strings.TrimSuffix(domain, "/"),
		apiKey:     apiKey,
		collectors: collectors,
	}
}

/*
FetchSummonerByName looks up an account by its display name.

The name is NFC-composed and stripped of whitespace before the call.

Returns:
  - *Summoner: The account Riot knows
  - error: apperr.NotFound on a Riot 404, apperr.Internal on any other failure
*/
func (client *RiotClient) FetchSummonerByName(context context.Context, name string) (*Summoner, error) {
	var summoner Summoner
	path := summonerByNamePath + url.PathEscape(normalize.SummonerName(name))
	if err := client.get(context, endpointSummoner, path, "Summoner", &summoner); err != nil {
		return nil, err
	}
	return &summoner, nil
}

// FetchLeagueEntries returns the ranked entries of a summoner id.
func (client *RiotClient) FetchLeagueEntries(context context.Context, summonerID string) ([]*LeagueEntry, error) {
	entries := []*LeagueEntry{}
	path := entriesBySummoner + url.PathEscape(strings.TrimSpace(summonerID))
	if err := client.get(context, endpointLeague, path, "Summoner history", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (client *RiotClient) get(context context.Context, endpoint, path, resource string, target any) error {
	request, err := http.NewRequestWithContext(context, http.MethodGet, client.domain+path, nil)
	if err != nil {
		client.collectors.IncRiot(endpoint, outcomeError)
		return apperr.Internal(fmt.Errorf("riot_request_build_failed: %w", err))
	}
	request.Header.Set(headerRiotToken, client.apiKey)
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		client.collectors.IncRiot(endpoint, outcomeError)
		return apperr.Internal(fmt.Errorf("riot_%s_call_failed: %w", endpoint, err))
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		client.collectors.IncRiot(endpoint, outcomeNotFound)
		return apperr.NotFound(resource)
	case response.StatusCode != http.StatusOK:
		client.collectors.IncRiot(endpoint, outcomeError)
		return apperr.Internal(fmt.Errorf("riot_%s_unexpected_status: %d", endpoint, response.StatusCode))
	}

	if err := json.NewDecoder(io.LimitReader(response.Body, maxRiotBody)).Decode(target); err != nil {
		client.collectors.IncRiot(endpoint, outcomeError)
		return apperr.Internal(fmt.Errorf("riot_%s_decode_failed: %w", endpoint, err))
	}

	client.collectors.IncRiot(endpoint, outcomeOK)
	return nil
}
