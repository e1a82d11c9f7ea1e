// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reply

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/middleware"
	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
)

// Handler implements the HTTP layer for replies.
type Handler struct {
	replyService *Service
}

// NewHandler constructs a new reply [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{replyService: service}
}

// Routes returns a [chi.Router] mounted under /article/reply.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{replyId}", handler.get)
	router.Get("/list/{articleId}", handler.list)

	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireLogin)

		member.Post("/add", handler.create)
		member.Post("/update", handler.update)
		member.Delete("/delete/{replyId}", handler.delete)
	})

	return router
}

/*
GET /api/v1/article/reply/{replyId}.

Response:
  - 200: Reply
  - 404: Unknown or deleted reply
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	replyID, err := requestutil.IDParam(request, "replyId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reply, err := handler.replyService.Get(request.Context(), replyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reply)
}

/*
GET /api/v1/article/reply/list/{articleId}.

Response:
  - 200: []Reply, or null when the article has no replies
  - 404: Unknown article
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	articleID, err := requestutil.IDParam(request, "articleId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	replies, err := handler.replyService.List(request.Context(), articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Nullable(writer, replies)
}

// POST /api/v1/article/reply/add.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.replyService.Create(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// POST /api/v1/article/reply/update.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.replyService.Update(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// DELETE /api/v1/article/reply/delete/{replyId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	replyID, err := requestutil.IDParam(request, "replyId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.replyService.Delete(request.Context(), requestutil.Principal(request), replyID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}
