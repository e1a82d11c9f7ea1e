// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/middleware"
	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/users/account"
)

// Handler implements the HTTP layer for member administration.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] restricted to administrators.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.IsAdmin, "Administrator role required"))

	router.Post("/member", handler.addAdmin)
	router.Delete("/member/{userId}", handler.deleteMember)
	router.Get("/members", handler.listMembers)
	router.Put("/member/{userId}/active", handler.activate)
	router.Put("/member/{userId}/suspend", handler.suspend)

	return router
}

/*
POST /api/v1/admin/member.

Description: Creates a new administrator account.

Response:
  - 200: true
  - 400: Validation failure
  - 409: E-mail already registered
*/
func (handler *Handler) addAdmin(writer http.ResponseWriter, request *http.Request) {
	var input account.SignUpInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.adminService.AddAdmin(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
DELETE /api/v1/admin/member/{userId}.

Response:
  - 200: bool
  - 404: Unknown member
*/
func (handler *Handler) deleteMember(writer http.ResponseWriter, request *http.Request) {
	ok, err := handler.adminService.DeleteMember(request.Context(), requestutil.Principal(request), requestutil.Param(request, "userId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
GET /api/v1/admin/members.

Response:
  - 200: []Member (always an array)
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.adminService.ListMembers(request.Context(), requestutil.Principal(request), requestutil.Page(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, users)
}

// PUT /api/v1/admin/member/{userId}/active.
func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	ok, err := handler.adminService.Activate(request.Context(), requestutil.Principal(request), requestutil.Param(request, "userId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// PUT /api/v1/admin/member/{userId}/suspend.
func (handler *Handler) suspend(writer http.ResponseWriter, request *http.Request) {
	ok, err := handler.adminService.Suspend(request.Context(), requestutil.Principal(request), requestutil.Param(request, "userId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}
