// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/middleware"
	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
	"github.com/taibuivan/nooblol/internal/platform/sec"
)

// Handler implements the HTTP layer for categories and boards.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new category [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] mounted under /board.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public listings
	router.Get("/categoryList", handler.listCategories)
	router.Get("/bbsList/{categoryId}", handler.listBbs)
	router.Get("/bbsList/{categoryId}/{status}", handler.listBbs)
	router.Get("/bbsAllList", handler.listAllBbs)

	// Administration
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.IsAdmin, "Administrator role required"))

		admin.Post("/category", handler.createCategory)
		admin.Put("/category", handler.updateCategory)
		admin.Delete("/category/{categoryId}", handler.deleteCategory)

		admin.Post("/bbs", handler.createBbs)
		admin.Put("/bbs", handler.updateBbs)
		admin.Delete("/bbs/{bbsId}", handler.deleteBbs)
	})

	return router
}

// parseStatus reads a status; blank input yields ACTIVE.
func parseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StatusActive, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || !Status(value).IsValid() {
		return 0, ErrUnknownStatus
	}
	return Status(value), nil
}

// # Listing Endpoints

/*
GET /api/v1/board/categoryList?status=1.

Response:
  - 200: []Category (always an array)
  - 400: Unknown status
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	status, err := parseStatus(request.URL.Query().Get("status"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	categories, err := handler.categoryService.ListCategories(request.Context(), status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, categories)
}

/*
GET /api/v1/board/bbsList/{categoryId}[/{status}].

Response:
  - 200: []Bbs (always an array)
  - 400: Missing category id or unknown status
*/
func (handler *Handler) listBbs(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.IDParam(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status, err := parseStatus(requestutil.Param(request, "status"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	boards, err := handler.categoryService.ListBbs(request.Context(), categoryID, status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, boards)
}

// GET /api/v1/board/bbsAllList.
func (handler *Handler) listAllBbs(writer http.ResponseWriter, request *http.Request) {
	boards, err := handler.categoryService.ListAllBbs(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, boards)
}

// # Administration Endpoints

// POST /api/v1/board/category.
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input CreateCategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.categoryService.CreateCategory(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
PUT /api/v1/board/category.

Response:
  - 200: bool
  - 400: No optional field given, nothing changed or unknown status
  - 404: Unknown category
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	var input UpdateCategoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := ValidateUpdateCategory(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.categoryService.UpdateCategory(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// DELETE /api/v1/board/category/{categoryId}.
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.IDParam(request, "categoryId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.categoryService.DeleteCategory(request.Context(), requestutil.Principal(request), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// POST /api/v1/board/bbs.
func (handler *Handler) createBbs(writer http.ResponseWriter, request *http.Request) {
	var input CreateBbsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.categoryService.CreateBbs(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// PUT /api/v1/board/bbs.
func (handler *Handler) updateBbs(writer http.ResponseWriter, request *http.Request) {
	var input UpdateBbsInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.categoryService.UpdateBbs(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// DELETE /api/v1/board/bbs/{bbsId}.
func (handler *Handler) deleteBbs(writer http.ResponseWriter, request *http.Request) {
	bbsID, err := requestutil.IDParam(request, "bbsId")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.categoryService.DeleteBbs(request.Context(), requestutil.Principal(request), bbsID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}
