// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package summoner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/validate"
)

// historyWriteLimit bounds the concurrent upserts of one history sync.
const historyWriteLimit = 4

// Riot is the subset of [RiotClient] used by the service.
type Riot interface {
	FetchSummonerByName(context context.Context, name string) (*Summoner, error)
	FetchLeagueEntries(context context.Context, summonerID string) ([]*LeagueEntry, error)
}

// Service coordinates Riot lookups with the local copy.
type Service struct {
	repository Repository
	riot       Riot
	logger     *slog.Logger
}

// NewService constructs a new summoner [Service].
func NewService(repository Repository, riot Riot, logger *slog.Logger) *Service {
	return &Service{repository: repository, riot: riot, logger: logger}
}

/*
Summoner fetches an account from Riot and reconciles the stored copy.

Returns:
  - *Summoner: The freshly fetched account
  - error: BadRequest for a blank name, NotFound when Riot does not know it
*/
func (service *Service) Summoner(context context.Context, name string) (*Summoner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, validate.RequiredError(FieldSummonerName, "This field is required")
	}

	fetched, err := service.riot.FetchSummonerByName(context, name)
	if err != nil {
		return nil, fmt.Errorf("summoner_service_fetch_failed: %w", err)
	}

	if err := service.reconcile(context, fetched); err != nil {
		return nil, err
	}
	return fetched, nil
}

// reconcile inserts an unknown account, rewrites a changed one and skips an equal one.
func (service *Service) reconcile(context context.Context, fetched *Summoner) error {
	stored, err := service.repository.FindSummoner(context, fetched.ID)
	switch {
	case apperr.Is(err, apperr.KindNotFound):
		if err := service.repository.InsertSummoner(context, fetched); err != nil {
			return fmt.Errorf("summoner_service_insert_failed: %w", err)
		}
		service.logger.Info("summoner_inserted", slog.String("summoner_id", fetched.ID))
		return nil
	case err != nil:
		return fmt.Errorf("summoner_service_lookup_failed: %w", err)
	}

	if *stored == *fetched {
		return nil
	}

	if err := service.repository.UpdateSummoner(context, fetched); err != nil {
		return fmt.Errorf("summoner_service_update_failed: %w", err)
	}
	service.logger.Info("summoner_updated", slog.String("summoner_id", fetched.ID))
	return nil
}

/*
History returns the ranked entries of a summoner.

With synced set and stored entries present, the stored entries are returned
without calling Riot. Otherwise the entries are fetched from Riot and upserted.

Returns:
  - []*LeagueEntry: Stored or freshly fetched entries
  - error: BadRequest for a blank id, NotFound from Riot, ServerError for entries without ids
*/
func (service *Service) History(context context.Context, summonerID string, synced bool) ([]*LeagueEntry, error) {
	if strings.TrimSpace(summonerID) == "" {
		return nil, validate.RequiredError(FieldSummonerID, "This field is required")
	}

	if synced {
		stored, err := service.repository.ListHistory(context, summonerID)
		if err != nil {
			return nil, fmt.Errorf("summoner_service_history_list_failed: %w", err)
		}
		if len(stored) > 0 {
			return stored, nil
		}
	}

	entries, err := service.riot.FetchLeagueEntries(context, summonerID)
	if err != nil {
		return nil, fmt.Errorf("summoner_service_history_fetch_failed: %w", err)
	}

	if err := service.storeHistory(context, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (service *Service) storeHistory(context context.Context, entries []*LeagueEntry) error {
	for _, entry := range entries {
		if entry.LeagueID == "" || entry.SummonerID == "" {
			return apperr.Internal(errors.New("summoner_service_history_entry_missing_id"))
		}
	}

	group, groupContext := errgroup.WithContext(context)
	group.SetLimit(historyWriteLimit)

	for _, entry := range entries {
		group.Go(func() error {
			return service.repository.UpsertHistory(groupContext, entry)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("summoner_service_history_upsert_failed: %w", err)
	}

	service.logger.Info("summoner_history_synced", slog.Int("entries", len(entries)))
	return nil
}
