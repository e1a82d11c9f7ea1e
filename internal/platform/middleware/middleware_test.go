// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/ctxutil"
	"github.com/taibuivan/nooblol/internal/platform/metrics"
	"github.com/taibuivan/nooblol/internal/platform/middleware"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/session"
)

type fakeResolver struct {
	sessions map[string]*session.Session
	err      error
}

func (resolver *fakeResolver) Get(_ context.Context, id string) (*session.Session, error) {
	if resolver.err != nil {
		return nil, resolver.err
	}
	current, ok := resolver.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return current, nil
}

func principalEcho(t *testing.T, got *sec.Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = ctxutil.GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

/*
TestAuthenticate verifies cookie to principal resolution.
*/
func TestAuthenticate(t *testing.T) {
	resolver := &fakeResolver{sessions: map[string]*session.Session{
		"sid": {ID: "sid", UserID: "u1", Role: sec.RoleAuthUser},
	}}

	t.Run("valid session", func(t *testing.T) {
		var got sec.Principal
		handler := middleware.Authenticate(resolver, false)(principalEcho(t, &got))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "sid"})
		handler.ServeHTTP(httptest.NewRecorder(), request)

		assert.Equal(t, sec.Principal{UserID: "u1", Role: sec.RoleAuthUser}, got)
	})

	t.Run("no cookie", func(t *testing.T) {
		var got sec.Principal
		handler := middleware.Authenticate(resolver, false)(principalEcho(t, &got))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, got.LoggedIn())
	})

	t.Run("expired session clears cookie", func(t *testing.T) {
		var got sec.Principal
		handler := middleware.Authenticate(resolver, false)(principalEcho(t, &got))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "gone"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.False(t, got.LoggedIn())
		assert.Contains(t, recorder.Header().Get("Set-Cookie"), "Max-Age=0")
	})

	t.Run("store failure degrades to guest", func(t *testing.T) {
		var got sec.Principal
		failing := &fakeResolver{err: errors.New("redis down")}
		handler := middleware.Authenticate(failing, false)(principalEcho(t, &got))

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "sid"})
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.False(t, got.LoggedIn())
	})
}

/*
TestRequireLogin verifies the 401 envelope for anonymous requests.
*/
func TestRequireLogin(t *testing.T) {
	handler := middleware.RequireLogin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"resultCode":401,"result":null}`, recorder.Body.String())

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), sec.Principal{UserID: "u1", Role: sec.RoleUnauthUser}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequireRole verifies 401 and 403 outcomes.
*/
func TestRequireRole(t *testing.T) {
	handler := middleware.RequireRole(sec.IsAdmin, "admin only")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name      string
		principal sec.Principal
		status    int
	}{
		{"anonymous", sec.Anonymous(), http.StatusUnauthorized},
		{"auth user", sec.Principal{UserID: "u1", Role: sec.RoleAuthUser}, http.StatusForbidden},
		{"admin", sec.Principal{UserID: "u2", Role: sec.RoleAdmin}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request = request.WithContext(ctxutil.WithPrincipal(request.Context(), tt.principal))
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)
			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

/*
TestPanicRecovery verifies that a panic becomes a 500 envelope.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.JSONEq(t, `{"resultCode":500,"result":null}`, recorder.Body.String())
}

/*
TestRequestID verifies generation and propagation of X-Request-ID.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

type corsConfig struct {
	dev     bool
	origins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.dev }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

/*
TestCORS verifies the origin allow list outside development.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(corsConfig{origins: []string{"https://nooblol.gg"}})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://nooblol.gg")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "https://nooblol.gg", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://nooblol.gg")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestLoginRateLimit verifies that the eleventh attempt within a minute is rejected.
*/
func TestLoginRateLimit(t *testing.T) {
	handler := middleware.LoginRateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for range constants.LoginRateLimit + 1 {
		request := httptest.NewRequest(http.MethodPost, "/user/login", nil)
		request.RemoteAddr = "10.0.0.1:1234"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		last = recorder.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

/*
TestMetrics verifies that requests are counted under the route pattern.
*/
func TestMetrics(t *testing.T) {
	collectors := metrics.New(prometheus.NewRegistry())

	router := chi.NewRouter()
	router.Use(middleware.Metrics(collectors))
	router.Get("/article/{articleId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/article/1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/article/2", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(collectors.Requests.WithLabelValues("GET", "/article/{articleId}", "200")))
}
