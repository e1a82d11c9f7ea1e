// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/ctxutil"
	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/respond"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/session"
)

// SessionResolver defines the session lookup needed by [Authenticate].
type SessionResolver interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

// Authenticate resolves the session cookie into a [sec.Principal].
//
// # Flow
//  1. No cookie: the request proceeds as the anonymous guest.
//  2. Unknown or expired session: the stale cookie is cleared and the request
//     proceeds as the anonymous guest.
//  3. Store failure: the request proceeds as the anonymous guest and the
//     failure is logged. Routes that need a session will answer 401.
//  4. Otherwise the principal and session id are injected into the context.
func Authenticate(resolver SessionResolver, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			current, err := resolver.Get(request.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNotFound) {
					ClearSessionCookie(writer, secure)
				} else {
					ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "session_lookup_failed",
						slog.String("error", err.Error()),
					)
				}
				next.ServeHTTP(writer, request)
				return
			}

			recordUser(request.Context(), current.UserID)
			ctx := ctxutil.WithPrincipal(request.Context(), current.Principal())
			ctx = ctxutil.WithSessionID(ctx, current.ID)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireLogin blocks requests without a session.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if _, err := guard.Login(ctxutil.GetPrincipal(request.Context())); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose principal fails pred. It implies [RequireLogin].
func RequireRole(pred sec.Predicate, message string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if _, err := guard.Require(ctxutil.GetPrincipal(request.Context()), pred, message); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// LoginRateLimit limits login attempts per client IP.
func LoginRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(
		constants.LoginRateLimit,
		constants.LoginRateWindow,
		httprate.WithKeyFuncs(func(request *http.Request) (string, error) {
			return RealIP(request), nil
		}),
		httprate.WithLimitHandler(func(writer http.ResponseWriter, request *http.Request) {
			respond.JSON(writer, http.StatusTooManyRequests, nil)
		}),
	)
}

// # Session Cookie

// SetSessionCookie writes the session cookie.
func SetSessionCookie(writer http.ResponseWriter, id string, ttl time.Duration, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    id,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie on the client.
func ClearSessionCookie(writer http.ResponseWriter, secure bool) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
