// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/nooblol/internal/platform/constants"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/users/account"
)

type envelope struct {
	ResultCode int             `json:"resultCode"`
	Result     json.RawMessage `json:"result"`
}

func serve(t *testing.T, handler http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	var decoded envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

/*
TestHandler_Login_SetsCookie verifies that a successful login writes the
session cookie and omits the password hash.
*/
func TestHandler_Login_SetsCookie(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "active", "active@nooblol.gg", "secret1", sec.RoleAuthUser)
	router := account.NewHandler(f.service, 30*time.Minute, false).Routes()

	recorder, body := serve(t, router, http.MethodPost, "/login",
		`{"userEmail":"active@nooblol.gg","userPassword":"secret1"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, http.StatusOK, body.ResultCode)
	assert.NotContains(t, string(body.Result), "password")

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

/*
TestHandler_Login_Sentinel verifies that suspended accounts get the sentinel and no cookie.
*/
func TestHandler_Login_Sentinel(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "banned", "banned@nooblol.gg", "secret1", sec.RoleSuspensionUser)
	router := account.NewHandler(f.service, 30*time.Minute, false).Routes()

	recorder, body := serve(t, router, http.MethodPost, "/login",
		`{"userEmail":"banned@nooblol.gg","userPassword":"secret1"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `"SUSPENSION_USER"`, string(body.Result))
	assert.Empty(t, recorder.Result().Cookies())
}

/*
TestHandler_Update_RequiresLogin verifies the route guard.
*/
func TestHandler_Update_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	router := account.NewHandler(f.service, 30*time.Minute, false).Routes()

	recorder, body := serve(t, router, http.MethodPost, "/", `{"newUserName":"x","orgPassword":"secret1"}`)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, "null", string(body.Result))
}

/*
TestHandler_SignUp_Conflict verifies the fixed conflict result.
*/
func TestHandler_SignUp_Conflict(t *testing.T) {
	f := newFixture(t)
	f.seed(t, "u1", "taken@nooblol.gg", "secret1", sec.RoleAuthUser)
	router := account.NewHandler(f.service, 30*time.Minute, false).Routes()

	recorder, body := serve(t, router, http.MethodPost, "/signup",
		`{"userEmail":"taken@nooblol.gg","userName":"dup","password":"secret1"}`)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.JSONEq(t, `"이미 존재하는 데이터 입니다"`, string(body.Result))
}

/*
TestHandler_GetProfile_NotFound verifies the public profile lookup.
*/
func TestHandler_GetProfile_NotFound(t *testing.T) {
	f := newFixture(t)
	router := account.NewHandler(f.service, 30*time.Minute, false).Routes()

	recorder, body := serve(t, router, http.MethodGet, "/ghost", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, http.StatusNotFound, body.ResultCode)
}
