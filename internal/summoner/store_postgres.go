// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package summoner

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/nooblol/internal/platform/dberr"
	"github.com/taibuivan/nooblol/internal/platform/postgres"
)

const historyColumns = `league_id, summoner_id, queue_type, tier, rank, summoner_name,
	league_points, wins, losses, veteran, inactive, fresh_blood, hot_streak`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.Querier
}

// NewRepository creates a new Postgres implementation for summoner data.
func NewRepository(db postgres.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Accounts

// FindSummoner retrieves a stored account.
func (repository *PostgresRepository) FindSummoner(context context.Context, summonerID string) (*Summoner, error) {
	const query = `
		SELECT id, account_id, puuid, name, profile_icon_id, revision_date, summoner_level
		FROM summoner WHERE id = $1`

	var summoner Summoner
	err := repository.db.QueryRow(context, query, summonerID).Scan(
		&summoner.ID, &summoner.AccountID, &summoner.PUUID, &summoner.Name,
		&summoner.ProfileIconID, &summoner.RevisionDate, &summoner.SummonerLevel,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Summoner", "postgres_summoner_repo_find_failed")
	}
	return &summoner, nil
}

// InsertSummoner stores a new account.
func (repository *PostgresRepository) InsertSummoner(context context.Context, summoner *Summoner) error {
	const query = `
		INSERT INTO summoner (id, account_id, puuid, name, profile_icon_id, revision_date, summoner_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.db.Exec(context, query,
		summoner.ID, summoner.AccountID, summoner.PUUID, summoner.Name,
		summoner.ProfileIconID, summoner.RevisionDate, summoner.SummonerLevel,
	)
	if err != nil {
		return dberr.Wrap(err, "Summoner", "postgres_summoner_repo_insert_failed")
	}
	return nil
}

// UpdateSummoner rewrites a stored account.
func (repository *PostgresRepository) UpdateSummoner(context context.Context, summoner *Summoner) error {
	const query = `
		UPDATE summoner
		SET account_id = $2, puuid = $3, name = $4, profile_icon_id = $5,
		    revision_date = $6, summoner_level = $7, updated_at = NOW()
		WHERE id = $1`

	_, err := repository.db.Exec(context, query,
		summoner.ID, summoner.AccountID, summoner.PUUID, summoner.Name,
		summoner.ProfileIconID, summoner.RevisionDate, summoner.SummonerLevel,
	)
	if err != nil {
		return dberr.Wrap(err, "Summoner", "postgres_summoner_repo_update_failed")
	}
	return nil
}

// # Ranked history

// ListHistory returns the stored entries of a summoner.
func (repository *PostgresRepository) ListHistory(context context.Context, summonerID string) ([]*LeagueEntry, error) {
	const query = `SELECT ` + historyColumns + ` FROM summoner_history WHERE summoner_id = $1 ORDER BY queue_type`

	rows, err := repository.db.Query(context, query, summonerID)
	if err != nil {
		return nil, dberr.Wrap(err, "Summoner history", "postgres_summoner_repo_history_failed")
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*LeagueEntry, error) {
		var entry LeagueEntry
		err := row.Scan(
			&entry.LeagueID, &entry.SummonerID, &entry.QueueType, &entry.Tier, &entry.Rank,
			&entry.SummonerName, &entry.LeaguePoints, &entry.Wins, &entry.Losses,
			&entry.Veteran, &entry.Inactive, &entry.FreshBlood, &entry.HotStreak,
		)
		return &entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("postgres_summoner_repo_history_scan_failed: %w", err)
	}
	return entries, nil
}

// UpsertHistory inserts an entry or rewrites the one with the same league and summoner.
func (repository *PostgresRepository) UpsertHistory(context context.Context, entry *LeagueEntry) error {
	const query = `
		INSERT INTO summoner_history (` + historyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (league_id, summoner_id) DO UPDATE SET
			queue_type = EXCLUDED.queue_type,
			tier = EXCLUDED.tier,
			rank = EXCLUDED.rank,
			summoner_name = EXCLUDED.summoner_name,
			league_points = EXCLUDED.league_points,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			veteran = EXCLUDED.veteran,
			inactive = EXCLUDED.inactive,
			fresh_blood = EXCLUDED.fresh_blood,
			hot_streak = EXCLUDED.hot_streak,
			updated_at = NOW()`

	_, err := repository.db.Exec(context, query,
		entry.LeagueID, entry.SummonerID, entry.QueueType, entry.Tier, entry.Rank,
		entry.SummonerName, entry.LeaguePoints, entry.Wins, entry.Losses,
		entry.Veteran, entry.Inactive, entry.FreshBlood, entry.HotStreak,
	)
	if err != nil {
		return dberr.Wrap(err, "Summoner history", "postgres_summoner_repo_history_upsert_failed")
	}
	return nil
}
