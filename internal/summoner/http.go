// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package summoner

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
)

// Handler implements the HTTP layer for summoner lookups.
type Handler struct {
	summonerService *Service
}

// NewHandler constructs a new summoner [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{summonerService: service}
}

// Routes returns a [chi.Router] mounted under /summoner.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/history/{summonerId}", handler.history)
	router.Get("/{summonerName}", handler.lookup)

	return router
}

/*
GET /api/v1/summoner/{summonerName}.

Description: Looks the account up on Riot and refreshes the stored copy.

Response:
  - 200: Summoner
  - 404: Riot does not know the name
*/
func (handler *Handler) lookup(writer http.ResponseWriter, request *http.Request) {
	summoner, err := handler.summonerService.Summoner(request.Context(), requestutil.Param(request, "summonerName"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summoner)
}

/*
GET /api/v1/summoner/history/{summonerId}?sync=true.

Description: Returns ranked entries. sync=true serves the stored copy when one exists.

Response:
  - 200: []LeagueEntry
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	entries, err := handler.summonerService.History(
		request.Context(),
		requestutil.Param(request, "summonerId"),
		requestutil.BoolQuery(request, "sync"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.List(writer, entries)
}
