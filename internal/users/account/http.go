// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/ctxutil"
	"github.com/taibuivan/nooblol/internal/platform/middleware"
	requestutil "github.com/taibuivan/nooblol/internal/platform/request"
	"github.com/taibuivan/nooblol/internal/platform/respond"
	"github.com/taibuivan/nooblol/internal/platform/validate"
)

// Handler implements the HTTP layer for user accounts.
type Handler struct {
	accountService *Service
	sessionTTL     time.Duration
	secureCookie   bool
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service, sessionTTL time.Duration, secureCookie bool) *Handler {
	return &Handler{accountService: service, sessionTTL: sessionTTL, secureCookie: secureCookie}
}

// Routes returns a [chi.Router] configured with the account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Registration & Verification
	router.Post("/signup", handler.signUp)
	router.Get("/resend-authmail/{email}", handler.resendAuthMail)
	router.Get("/auth/{token}", handler.verifyMail)

	// Session
	router.With(middleware.LoginRateLimit()).Post("/login", handler.login)
	router.With(middleware.RequireLogin).Post("/logout", handler.logout)

	// Account Management
	router.With(middleware.RequireLogin).Post("/", handler.update)
	router.Delete("/signout", handler.signOut)

	// Public Profile
	router.Get("/{userId}", handler.getProfile)

	return router
}

// # Registration Endpoints

/*
POST /api/v1/user/signup.

Description: Registers an unverified account and mails a verification link.

Request:
  - body: SignUpInput

Response:
  - 200: true
  - 400: Validation failure
  - 409: E-mail already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input SignUpInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.accountService.SignUp(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
GET /api/v1/user/resend-authmail/{email}.

Response:
  - 200: true
  - 400: Malformed address or account already verified
  - 404: Unknown address
*/
func (handler *Handler) resendAuthMail(writer http.ResponseWriter, request *http.Request) {
	ok, err := handler.accountService.ResendVerification(request.Context(), requestutil.Param(request, "email"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
GET /api/v1/user/auth/{token}.

Response:
  - 200: bool
  - 400: Invalid or expired token, or account already verified
  - 404: Account no longer exists
*/
func (handler *Handler) verifyMail(writer http.ResponseWriter, request *http.Request) {
	ok, err := handler.accountService.Verify(request.Context(), requestutil.Param(request, "token"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

// # Session Endpoints

/*
POST /api/v1/user/login.

Description: Starts a session and sets the session cookie. Suspended and
unverified accounts receive their role name as result and no cookie.

Response:
  - 200: User or sentinel string
  - 400: Unknown e-mail or wrong password
  - 429: Too many attempts
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.accountService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if result.Sentinel != "" {
		respond.OK(writer, result.Sentinel)
		return
	}

	middleware.SetSessionCookie(writer, result.SessionID, handler.sessionTTL, handler.secureCookie)
	respond.OK(writer, result.User)
}

/*
POST /api/v1/user/logout.

Response:
  - 200: null
  - 401: No session
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	sessionID := ctxutil.GetSessionID(request.Context())
	if err := handler.accountService.Logout(request.Context(), requestutil.Principal(request), sessionID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	middleware.ClearSessionCookie(writer, handler.secureCookie)
	respond.OK(writer, nil)
}

// # Account Endpoints

/*
POST /api/v1/user/.

Description: Changes the caller's name and/or password.

Response:
  - 200: bool
  - 400: Nothing to change, wrong password or validation failure
  - 403: Account is not verified or is suspended
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Binding: at least one of the new fields must be present
	if err := (&validate.Validator{}).AnyOf(FieldUserName, input.NewUserName, input.NewPassword).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.accountService.Update(request.Context(), requestutil.Principal(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ok)
}

/*
DELETE /api/v1/user/signout.

Response:
  - 200: bool
  - 400: Wrong password
  - 404: Unknown user
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	var input SignOutInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ok, err := handler.accountService.SignOut(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if ok && requestutil.Principal(request).Is(input.UserID) {
		middleware.ClearSessionCookie(writer, handler.secureCookie)
	}
	respond.OK(writer, ok)
}

/*
GET /api/v1/user/{userId}.

Response:
  - 200: Profile
  - 404: Unknown user
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	profile, err := handler.accountService.GetProfile(request.Context(), requestutil.Param(request, "userId"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}
