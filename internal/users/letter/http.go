// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package letter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/middleware"
	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
)

// Handler implements the HTTP layer for letters.
type Handler struct {
	letterService *Service
}

// NewHandler constructs a new letter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{letterService: service}
}

// Routes returns a [chi.Router] for the letter endpoints. Every route requires a session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireLogin)

	router.Get("/list/{type}", handler.list)
	router.Get("/{letterId}", handler.get)
	router.Post("/", handler.send)
	router.Delete("/{type}/{letterId}", handler.delete)

	return router
}

/*
GET /api/v1/letter/{letterId}.

Response:
  - 200: Letter
  - 403: Caller is neither sender nor recipient
  - 404: Unknown letter or deleted on the caller's side
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	letterID, err := requestutil.IDParam(request, "letterId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	letter, err := handler.letterService.Get(request.Context(), requestutil.Principal(request), letterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, letter)
}

/*
GET /api/v1/letter/list/{type}.

Request:
  - type: "to" or "from", case-insensitive
  - page, limit: query parameters

Response:
  - 200: []Letter (always an array)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	side, err := ParseSide(requestutil.Param(request, "type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	letters, err := handler.letterService.List(request.Context(), requestutil.Principal(request), side, requestutil.Page(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, letters)
}

/*
POST /api/v1/letter/.

Response:
  - 200: true
  - 400: Self-send or validation failure
  - 404: Unknown recipient
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	var input SendInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.letterService.Send(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// DELETE /api/v1/letter/{type}/{letterId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	side, err := ParseSide(requestutil.Param(request, "type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	letterID, err := requestutil.IDParam(request, "letterId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.letterService.Delete(request.Context(), requestutil.Principal(request), side, letterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}
