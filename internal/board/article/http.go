// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package article

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/middleware"
	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
)

// Handler implements the HTTP layer for articles.
type Handler struct {
	articleService *Service
}

// NewHandler constructs a new article [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{articleService: service}
}

// Routes returns a [chi.Router] mounted under /article.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public reads
	router.Get("/{articleId}", handler.get)
	router.Get("/list/{bbsId}", handler.list)
	router.Get("/status/{articleId}", handler.votes)

	// Session required; role checks happen in the service
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireLogin)

		member.Post("/", handler.create)
		member.Put("/", handler.update)
		member.Delete("/{articleId}", handler.delete)
		member.Post("/status/like/{articleId}", handler.like)
		member.Post("/status/notLike/{articleId}", handler.notLike)
	})

	return router
}

/*
GET /api/v1/article/{articleId}.

Description: Returns the article, counts the read and reports the caller's
permission level in authMessage.

Response:
  - 200: Article
  - 404: Unknown article
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	articleID, err := requestutil.IDParam(request, "articleId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	article, err := handler.articleService.Get(request.Context(), requestutil.Principal(request), articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, article)
}

/*
GET /api/v1/article/list/{bbsId}.

Response:
  - 200: []Article, or null when the page is empty
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	bbsID, err := requestutil.IDParam(request, "bbsId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	articles, err := handler.articleService.List(request.Context(), bbsID, requestutil.Page(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Nullable(writer, articles)
}

// POST /api/v1/article/.
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.articleService.Create(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
PUT /api/v1/article/.

Response:
  - 200: bool
  - 400: Nothing changed or validation failure
  - 403: Caller is neither author nor administrator
  - 404: Unknown article
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.articleService.Update(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// DELETE /api/v1/article/{articleId}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	articleID, err := requestutil.IDParam(request, "articleId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.articleService.Delete(request.Context(), requestutil.Principal(request), articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// # Vote Endpoints

/*
GET /api/v1/article/status/{articleId}.

Response:
  - 200: VoteCount
  - 404: Unknown article
*/
func (handler *Handler) votes(writer http.ResponseWriter, request *http.Request) {
	articleID, err := requestutil.IDParam(request, "articleId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count, err := handler.articleService.Votes(request.Context(), articleID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, count)
}

// POST /api/v1/article/status/like/{articleId}.
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, VoteLike)
}

// POST /api/v1/article/status/notLike/{articleId}.
func (handler *Handler) notLike(writer http.ResponseWriter, request *http.Request) {
	handler.vote(writer, request, VoteNotLike)
}

func (handler *Handler) vote(writer http.ResponseWriter, request *http.Request, vote VoteType) {
	articleID, err := requestutil.IDParam(request, "articleId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.articleService.Vote(request.Context(), requestutil.Principal(request), articleID, vote)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}
