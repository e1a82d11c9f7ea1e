// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package summoner looks up League of Legends accounts through the Riot API and
keeps a local copy of every account and ranked entry it has seen.

# Flow

A lookup always goes to Riot first. The fetched account is then reconciled
with the stored row: inserted when absent, rewritten when it changed and left
alone when equal. Ranked history can be served from the local table when the
caller asks for the synced copy and one exists.
*/
package summoner

import (
	"context"
)

// Summoner is a Riot account as returned by the summoner-v4 API.
type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	PUUID         string `json:"puuid"`
	Name          string `json:"name"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

// LeagueEntry is one ranked queue standing as returned by the league-v4 API.
type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	SummonerName string `json:"summonerName"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Veteran      bool   `json:"veteran"`
	Inactive     bool   `json:"inactive"`
	FreshBlood   bool   `json:"freshBlood"`
	HotStreak    bool   `json:"hotStreak"`
}

const (
	FieldSummonerName = "summonerName"
	FieldSummonerID   = "summonerId"
)

// Repository defines the persistence contract for cached Riot data.
type Repository interface {

	/*
		FindSummoner retrieves a stored account by its Riot id.

		Returns:
		  - *Summoner: Stored account
		  - error: apperr.NotFound when absent, storage failures otherwise
	*/
	FindSummoner(context context.Context, summonerID string) (*Summoner, error)

	// InsertSummoner stores a new account.
	InsertSummoner(context context.Context, summoner *Summoner) error

	// UpdateSummoner rewrites a stored account.
	UpdateSummoner(context context.Context, summoner *Summoner) error

	// ListHistory returns the stored ranked entries of a summoner.
	ListHistory(context context.Context, summonerID string) ([]*LeagueEntry, error)

	// UpsertHistory inserts or rewrites one entry keyed by league and summoner.
	UpsertHistory(context context.Context, entry *LeagueEntry) error
}
