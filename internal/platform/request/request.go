// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/nooblol/internal/platform/ctxutil"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/validate"
	"github.com/taibuivan/nooblol/pkg/pagination"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IDParam parses a positive numeric URL parameter.

Returns a BadRequest error when the parameter is missing or not a positive integer.
*/
func IDParam(request *http.Request, name string) (int64, error) {
	return validate.ParseID(name, chi.URLParam(request, name))
}

/*
BoolQuery reads a boolean query parameter. Absent or malformed values are false.
*/
func BoolQuery(request *http.Request, name string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(request.URL.Query().Get(name)))
	return err == nil && value
}

/*
Page reads page/limit query parameters into [pagination.Params].
*/
func Page(request *http.Request) pagination.Params {
	return pagination.FromRequest(request)
}

/*
Principal returns the principal resolved by the session middleware.
*/
func Principal(request *http.Request) sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}
