// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Every response (Success or Error) across the entire application uses the same
// envelope:
//
//	{"resultCode": 200, "result": ...}
//
// resultCode always equals the HTTP status written on the wire.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/ctxutil"
)

// Envelope is the uniform JSON response shape.
type Envelope struct {
	ResultCode int `json:"resultCode"`
	Result     any `json:"result"`
}

// JSON writes an envelope with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, result any) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(Envelope{ResultCode: statusCode, Result: result})
}

// OK writes a 200 envelope carrying result.
func OK(writer http.ResponseWriter, result any) {
	JSON(writer, http.StatusOK, result)
}

// Nullable writes a 200 envelope whose result is null when value is nil or an
// empty collection.
func Nullable(writer http.ResponseWriter, value any) {
	if isEmpty(value) {
		JSON(writer, http.StatusOK, nil)
		return
	}
	JSON(writer, http.StatusOK, value)
}

// List writes a 200 envelope whose result is always a JSON array.
func List[T any](writer http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	JSON(writer, http.StatusOK, items)
}

// Error converts any Go error into an error envelope.
//
// Errors outside the [apperr.AppError] taxonomy become a 500 with a null result;
// their cause is logged and never sent.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	logger := ctxutil.GetLogger(request.Context())

	appError := apperr.As(err)
	if appError == nil {
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	status := appError.Status()
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Kind.String()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, status, resultOf(appError))
}

// resultOf picks the client-visible result for an error envelope.
func resultOf(appError *apperr.AppError) any {
	switch appError.Kind {
	case apperr.KindConflict:
		return apperr.ConflictResult
	case apperr.KindBadRequest:
		if len(appError.Details) > 0 {
			return appError.Details
		}
	}
	return nil
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
